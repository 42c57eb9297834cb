package postgres

import (
	"context"

	"job-board-backend/internal/domain"
)

type applicationRepo struct {
	db DB
}

func NewApplicationRepository(db DB) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

const applicationSelect = `
	SELECT
		a.id, a.applicant_id, a.vacancy_id, a.resume_id, a.cover_letter, a.status, a.applied_at, a.updated_at,
		u.username, v.title, v.author_id,
		r.full_name, r.desired_position, r.file_url
	FROM applications a
	JOIN users u ON u.id = a.applicant_id
	JOIN vacancies v ON v.id = a.vacancy_id
	LEFT JOIN resumes r ON r.id = a.resume_id`

func scanApplication(row interface{ Scan(...any) error }) (*domain.Application, error) {
	var (
		app             domain.Application
		status          string
		fullName        *string
		desiredPosition *string
		fileURL         *string
	)
	err := row.Scan(
		&app.ID, &app.ApplicantID, &app.VacancyID, &app.ResumeID, &app.CoverLetter, &status, &app.AppliedAt, &app.UpdatedAt,
		&app.ApplicantUsername, &app.VacancyTitle, &app.VacancyAuthorID,
		&fullName, &desiredPosition, &fileURL,
	)
	if err != nil {
		return nil, mapError(err)
	}
	app.Status = domain.ApplicationStatus(status)
	if app.ResumeID != nil && fullName != nil {
		app.Resume = &domain.Resume{
			ID:       *app.ResumeID,
			UserID:   app.ApplicantID,
			FullName: *fullName,
			FileURL:  fileURL,
		}
		if desiredPosition != nil {
			app.Resume.DesiredPosition = *desiredPosition
		}
	}
	return &app, nil
}

func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `INSERT INTO applications (applicant_id, vacancy_id, resume_id, cover_letter, status)
              VALUES ($1, $2, $3, $4, $5) RETURNING id, applied_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		app.ApplicantID, app.VacancyID, app.ResumeID, app.CoverLetter, string(app.Status),
	).Scan(&app.ID, &app.AppliedAt, &app.UpdatedAt)
	return mapError(err)
}

func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	return scanApplication(r.db.QueryRow(ctx, applicationSelect+` WHERE a.id = $1`, id))
}

func (r *applicationRepo) FetchByApplicant(ctx context.Context, applicantID int64) ([]domain.Application, error) {
	return r.query(ctx, applicationSelect+` WHERE a.applicant_id = $1 ORDER BY a.applied_at DESC, a.id DESC`, applicantID)
}

func (r *applicationRepo) FetchByVacancyAuthor(ctx context.Context, authorID int64) ([]domain.Application, error) {
	return r.query(ctx, applicationSelect+` WHERE v.author_id = $1 ORDER BY a.applied_at DESC, a.id DESC`, authorID)
}

func (r *applicationRepo) query(ctx context.Context, query string, args ...any) ([]domain.Application, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := make([]domain.Application, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

// UpdateStatus only writes when the row still holds from, so two racing
// transitions cannot both succeed.
func (r *applicationRepo) UpdateStatus(ctx context.Context, id int64, from, to domain.ApplicationStatus) (*domain.Application, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE applications SET status = $2, updated_at = now() WHERE id = $1 AND status = $3`,
		id, string(to), string(from),
	)
	if err != nil {
		return nil, mapError(err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM applications WHERE id = $1)`, id).Scan(&exists); err != nil {
			return nil, mapError(err)
		}
		if !exists {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrConflict
	}
	return r.GetByID(ctx, id)
}
