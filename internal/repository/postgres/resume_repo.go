package postgres

import (
	"context"
	"sort"
	"strings"

	"job-board-backend/internal/domain"
)

type resumeRepo struct {
	db DB
}

func NewResumeRepository(db DB) domain.ResumeRepository {
	return &resumeRepo{db: db}
}

const resumeSelect = `
	SELECT
		r.id, r.user_id, r.full_name, r.desired_position, r.location, r.phone, r.email,
		r.salary_expectation, r.experience_years, r.about, r.is_active, r.file_url,
		r.created_at, r.updated_at, u.username
	FROM resumes r
	JOIN users u ON u.id = r.user_id`

func scanResume(row interface{ Scan(...any) error }) (*domain.Resume, error) {
	var res domain.Resume
	err := row.Scan(
		&res.ID, &res.UserID, &res.FullName, &res.DesiredPosition, &res.Location, &res.Phone, &res.Email,
		&res.SalaryExpectation, &res.ExperienceYears, &res.About, &res.IsActive, &res.FileURL,
		&res.CreatedAt, &res.UpdatedAt, &res.Username,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &res, nil
}

func (r *resumeRepo) Create(ctx context.Context, res *domain.Resume) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO resumes (
                user_id, full_name, desired_position, location, phone, email,
                salary_expectation, experience_years, about, is_active, file_url)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
              RETURNING id, created_at, updated_at`
	err = tx.QueryRow(ctx, query,
		res.UserID, res.FullName, res.DesiredPosition, res.Location, res.Phone, res.Email,
		res.SalaryExpectation, res.ExperienceYears, res.About, res.IsActive, res.FileURL,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return mapError(err)
	}

	skills, err := replaceSkills(ctx, tx, res.ID, res.Skills)
	if err != nil {
		return err
	}
	res.Skills = skills
	return tx.Commit(ctx)
}

func (r *resumeRepo) GetByID(ctx context.Context, id int64) (*domain.Resume, error) {
	return r.getOne(ctx, resumeSelect+` WHERE r.id = $1`, id)
}

func (r *resumeRepo) GetByUserID(ctx context.Context, userID int64) (*domain.Resume, error) {
	return r.getOne(ctx, resumeSelect+` WHERE r.user_id = $1`, userID)
}

func (r *resumeRepo) getOne(ctx context.Context, query string, arg int64) (*domain.Resume, error) {
	res, err := scanResume(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		return nil, err
	}
	skills, err := loadSkills(ctx, r.db, []int64{res.ID})
	if err != nil {
		return nil, err
	}
	res.Skills = skills[res.ID]
	return res, nil
}

func (r *resumeRepo) Fetch(ctx context.Context, filter domain.ResumeFilter) ([]domain.Resume, error) {
	query := resumeSelect + `
	WHERE ($1::boolean IS NULL OR r.is_active = $1)
	  AND ($2 = '' OR EXISTS (
	        SELECT 1 FROM resume_skills rs JOIN skills s ON s.id = rs.skill_id
	        WHERE rs.resume_id = r.id AND lower(s.name) = lower($2)))
	ORDER BY r.id DESC`

	rows, err := r.db.Query(ctx, query, filter.Active, filter.Skill)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	resumes := make([]domain.Resume, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		resumes = append(resumes, *res)
		ids = append(ids, res.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	skills, err := loadSkills(ctx, r.db, ids)
	if err != nil {
		return nil, err
	}
	for i := range resumes {
		resumes[i].Skills = skills[resumes[i].ID]
	}
	return resumes, nil
}

func (r *resumeRepo) Update(ctx context.Context, res *domain.Resume) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `UPDATE resumes SET
                full_name = $2, desired_position = $3, location = $4, phone = $5, email = $6,
                salary_expectation = $7, experience_years = $8, about = $9, is_active = $10,
                file_url = $11, updated_at = now()
              WHERE id = $1
              RETURNING user_id, created_at, updated_at`
	err = tx.QueryRow(ctx, query,
		res.ID, res.FullName, res.DesiredPosition, res.Location, res.Phone, res.Email,
		res.SalaryExpectation, res.ExperienceYears, res.About, res.IsActive, res.FileURL,
	).Scan(&res.UserID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return mapError(err)
	}

	skills, err := replaceSkills(ctx, tx, res.ID, res.Skills)
	if err != nil {
		return err
	}
	res.Skills = skills
	return tx.Commit(ctx)
}

// Delete removes the resume and nulls the reference on applications in the
// same transaction. An apply naming this resume waits on the row lock.
func (r *resumeRepo) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return mapError(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := lockRow(ctx, tx, `SELECT id FROM resumes WHERE id = $1 FOR UPDATE`, id); err != nil {
		return err
	}
	if err := execAll(ctx, tx, id,
		`UPDATE applications SET resume_id = NULL WHERE resume_id = $1`,
		`DELETE FROM resume_skills WHERE resume_id = $1`,
		`DELETE FROM resumes WHERE id = $1`,
	); err != nil {
		return err
	}
	return mapError(tx.Commit(ctx))
}

// replaceSkills sets the resume's skill set to names, creating unknown
// skills. Returns the stored spelling of each skill, sorted.
func replaceSkills(ctx context.Context, q querier, resumeID int64, names []string) ([]string, error) {
	if _, err := q.Exec(ctx, `DELETE FROM resume_skills WHERE resume_id = $1`, resumeID); err != nil {
		return nil, err
	}

	stored := make([]string, 0, len(names))
	for _, name := range normalizeSkills(names) {
		if _, err := q.Exec(ctx, `INSERT INTO skills (name) VALUES ($1) ON CONFLICT (lower(name)) DO NOTHING`, name); err != nil {
			return nil, err
		}
		var (
			skillID int64
			spelled string
		)
		if err := q.QueryRow(ctx, `SELECT id, name FROM skills WHERE lower(name) = lower($1)`, name).Scan(&skillID, &spelled); err != nil {
			return nil, err
		}
		if _, err := q.Exec(ctx, `INSERT INTO resume_skills (resume_id, skill_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, resumeID, skillID); err != nil {
			return nil, err
		}
		stored = append(stored, spelled)
	}
	sort.Strings(stored)
	return stored, nil
}

func loadSkills(ctx context.Context, q querier, resumeIDs []int64) (map[int64][]string, error) {
	out := make(map[int64][]string, len(resumeIDs))
	if len(resumeIDs) == 0 {
		return out, nil
	}

	rows, err := q.Query(ctx, `
		SELECT rs.resume_id, s.name
		FROM resume_skills rs JOIN skills s ON s.id = rs.skill_id
		WHERE rs.resume_id = ANY($1)
		ORDER BY s.name`, resumeIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		out[id] = append(out[id], name)
	}
	return out, rows.Err()
}

func normalizeSkills(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)
	}
	return out
}
