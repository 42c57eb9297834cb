package postgres

import (
	"context"

	"job-board-backend/internal/domain"
)

type companyRepo struct {
	db DB
}

func NewCompanyRepository(db DB) domain.CompanyRepository {
	return &companyRepo{db: db}
}

const companyColumns = `id, owner_id, name, description, website, logo_url, created_at, updated_at`

func (r *companyRepo) Create(ctx context.Context, company *domain.Company) error {
	query := `INSERT INTO companies (owner_id, name, description, website, logo_url)
              VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		company.OwnerID, company.Name, company.Description, company.Website, company.LogoURL,
	).Scan(&company.ID, &company.CreatedAt, &company.UpdatedAt)
	return mapError(err)
}

func (r *companyRepo) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	var c domain.Company
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.OwnerID, &c.Name, &c.Description, &c.Website, &c.LogoURL, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}

func (r *companyRepo) Fetch(ctx context.Context) ([]domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	companies := make([]domain.Company, 0)
	for rows.Next() {
		var c domain.Company
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Description, &c.Website, &c.LogoURL, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

func (r *companyRepo) Update(ctx context.Context, company *domain.Company) error {
	query := `UPDATE companies SET name = $2, description = $3, website = $4, logo_url = $5, updated_at = now()
              WHERE id = $1 RETURNING owner_id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		company.ID, company.Name, company.Description, company.Website, company.LogoURL,
	).Scan(&company.OwnerID, &company.CreatedAt, &company.UpdatedAt)
	return mapError(err)
}

// Delete removes the company, its vacancies and their applications and
// favorites in one transaction.
func (r *companyRepo) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return mapError(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := lockRow(ctx, tx, `SELECT id FROM companies WHERE id = $1 FOR UPDATE`, id); err != nil {
		return err
	}
	if err := execAll(ctx, tx, id,
		`SELECT id FROM vacancies WHERE company_id = $1 FOR UPDATE`,
		`DELETE FROM applications WHERE vacancy_id IN (SELECT id FROM vacancies WHERE company_id = $1)`,
		`DELETE FROM favorites WHERE vacancy_id IN (SELECT id FROM vacancies WHERE company_id = $1)`,
		`DELETE FROM vacancies WHERE company_id = $1`,
		`DELETE FROM companies WHERE id = $1`,
	); err != nil {
		return err
	}
	return mapError(tx.Commit(ctx))
}
