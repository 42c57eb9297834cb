package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"job-board-backend/internal/domain"
)

type vacancyRepo struct {
	db DB
}

func NewVacancyRepository(db DB) domain.VacancyRepository {
	return &vacancyRepo{db: db}
}

const vacancySelect = `
	SELECT
		v.id, v.title, v.company_id, v.location, v.description, v.responsibilities, v.requirements,
		v.salary_from, v.salary_to, v.currency, v.show_salary,
		v.employment_type, v.work_format, v.experience_required,
		v.is_active, v.views, v.author_id, v.created_at, v.updated_at,
		c.owner_id, c.name, c.description, c.website, c.logo_url, c.created_at, c.updated_at,
		u.username
	FROM vacancies v
	JOIN companies c ON c.id = v.company_id
	JOIN users u ON u.id = v.author_id`

func scanVacancy(row interface{ Scan(...any) error }) (*domain.Vacancy, error) {
	var (
		v domain.Vacancy
		c domain.Company
	)
	err := row.Scan(
		&v.ID, &v.Title, &v.CompanyID, &v.Location, &v.Description, &v.Responsibilities, &v.Requirements,
		&v.SalaryFrom, &v.SalaryTo, &v.Currency, &v.ShowSalary,
		&v.EmploymentType, &v.WorkFormat, &v.ExperienceRequired,
		&v.IsActive, &v.Views, &v.AuthorID, &v.CreatedAt, &v.UpdatedAt,
		&c.OwnerID, &c.Name, &c.Description, &c.Website, &c.LogoURL, &c.CreatedAt, &c.UpdatedAt,
		&v.AuthorUsername,
	)
	if err != nil {
		return nil, mapError(err)
	}
	c.ID = v.CompanyID
	v.Company = &c
	return &v, nil
}

func (r *vacancyRepo) Create(ctx context.Context, v *domain.Vacancy) error {
	query := `INSERT INTO vacancies (
                title, company_id, location, description, responsibilities, requirements,
                salary_from, salary_to, currency, show_salary,
                employment_type, work_format, experience_required, is_active, author_id)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
              RETURNING id, views, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		v.Title, v.CompanyID, v.Location, v.Description, v.Responsibilities, v.Requirements,
		v.SalaryFrom, v.SalaryTo, v.Currency, v.ShowSalary,
		v.EmploymentType, v.WorkFormat, v.ExperienceRequired, v.IsActive, v.AuthorID,
	).Scan(&v.ID, &v.Views, &v.CreatedAt, &v.UpdatedAt)
	return mapError(err)
}

func (r *vacancyRepo) GetByID(ctx context.Context, id int64) (*domain.Vacancy, error) {
	return scanVacancy(r.db.QueryRow(ctx, vacancySelect+` WHERE v.id = $1`, id))
}

// IncrementViews bumps the counter in the row itself so concurrent readers
// never lose an update.
func (r *vacancyRepo) IncrementViews(ctx context.Context, id int64) (*domain.Vacancy, error) {
	query := `WITH bumped AS (
                UPDATE vacancies SET views = views + 1 WHERE id = $1 RETURNING *
              )` + strings.Replace(vacancySelect, "FROM vacancies v", "FROM bumped v", 1)
	return scanVacancy(r.db.QueryRow(ctx, query, id))
}

func (r *vacancyRepo) Fetch(ctx context.Context, filter domain.VacancyFilter) ([]domain.Vacancy, int64, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Title != "" {
		args = append(args, "%"+escapeLike(filter.Title)+"%")
		conds = append(conds, fmt.Sprintf("v.title ILIKE $%d", len(args)))
	}
	if filter.Date != nil {
		y, m, d := filter.Date.UTC().Date()
		start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		args = append(args, start, start.AddDate(0, 0, 1))
		conds = append(conds, fmt.Sprintf("v.created_at >= $%d AND v.created_at < $%d", len(args)-1, len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM vacancies v`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := vacancySelect + where + ` ORDER BY v.created_at DESC, v.id DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit, filter.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	vacancies, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return vacancies, total, nil
}

func (r *vacancyRepo) FetchByAuthor(ctx context.Context, authorID int64) ([]domain.Vacancy, error) {
	return r.query(ctx, vacancySelect+` WHERE v.author_id = $1 ORDER BY v.created_at DESC, v.id DESC`, authorID)
}

func (r *vacancyRepo) FetchByCompany(ctx context.Context, companyID int64) ([]domain.Vacancy, error) {
	return r.query(ctx, vacancySelect+` WHERE v.company_id = $1 ORDER BY v.created_at DESC, v.id DESC`, companyID)
}

func (r *vacancyRepo) query(ctx context.Context, query string, args ...any) ([]domain.Vacancy, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vacancies := make([]domain.Vacancy, 0)
	for rows.Next() {
		v, err := scanVacancy(rows)
		if err != nil {
			return nil, err
		}
		vacancies = append(vacancies, *v)
	}
	return vacancies, rows.Err()
}

// Update writes every mutable column. Author and views are left alone.
func (r *vacancyRepo) Update(ctx context.Context, v *domain.Vacancy) error {
	query := `UPDATE vacancies SET
                title = $2, company_id = $3, location = $4, description = $5,
                responsibilities = $6, requirements = $7, salary_from = $8, salary_to = $9,
                currency = $10, show_salary = $11, employment_type = $12, work_format = $13,
                experience_required = $14, is_active = $15, updated_at = now()
              WHERE id = $1
              RETURNING author_id, views, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		v.ID, v.Title, v.CompanyID, v.Location, v.Description,
		v.Responsibilities, v.Requirements, v.SalaryFrom, v.SalaryTo,
		v.Currency, v.ShowSalary, v.EmploymentType, v.WorkFormat,
		v.ExperienceRequired, v.IsActive,
	).Scan(&v.AuthorID, &v.Views, &v.CreatedAt, &v.UpdatedAt)
	return mapError(err)
}

// Delete removes the vacancy with its applications and favorites. The row
// lock makes a concurrent apply or favorite wait for the delete and then
// fail its foreign key check.
func (r *vacancyRepo) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return mapError(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := lockRow(ctx, tx, `SELECT id FROM vacancies WHERE id = $1 FOR UPDATE`, id); err != nil {
		return err
	}
	if err := execAll(ctx, tx, id,
		`DELETE FROM applications WHERE vacancy_id = $1`,
		`DELETE FROM favorites WHERE vacancy_id = $1`,
		`DELETE FROM vacancies WHERE id = $1`,
	); err != nil {
		return err
	}
	return mapError(tx.Commit(ctx))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
