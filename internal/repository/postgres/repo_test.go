package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-board-backend/internal/domain"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func sqlText(s string) string {
	return regexp.QuoteMeta(s)
}

var created = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func vacancyRows(id, views int64) *pgxmock.Rows {
	from, to := 1000.0, 2000.0
	return pgxmock.NewRows([]string{
		"id", "title", "company_id", "location", "description", "responsibilities", "requirements",
		"salary_from", "salary_to", "currency", "show_salary",
		"employment_type", "work_format", "experience_required",
		"is_active", "views", "author_id", "created_at", "updated_at",
		"owner_id", "name", "description", "website", "logo_url", "created_at", "updated_at",
		"username",
	}).AddRow(
		id, "Go developer", int64(3), "Dushanbe", "Backend", "", "",
		&from, &to, "TJS", true,
		domain.EmploymentFullTime, domain.WorkFormatOnSite, domain.ExperienceNone,
		true, views, int64(7), created, created,
		int64(7), "Acme", "", "", (*string)(nil), created, created,
		"acme-hr",
	)
}

func TestVacancyRepo_IncrementViews(t *testing.T) {
	ctx := context.Background()
	bump := `(?s)WITH bumped AS \(\s*UPDATE vacancies SET views = views \+ 1 WHERE id = \$1 RETURNING \*\s*\).*FROM bumped v`

	t.Run("bumps in the same statement that reads", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(bump).WithArgs(int64(5)).WillReturnRows(vacancyRows(5, 8))

		v, err := NewVacancyRepository(mock).IncrementViews(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, int64(8), v.Views)
		assert.Equal(t, "1000 – 2000 TJS", v.SalaryDisplay())
		require.NotNil(t, v.Company)
		assert.Equal(t, "Acme", v.Company.Name)
		assert.Equal(t, int64(3), v.Company.ID)
		assert.Equal(t, "acme-hr", v.AuthorUsername)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing vacancy", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(bump).WithArgs(int64(404)).WillReturnRows(pgxmock.NewRows([]string{"id"}))

		_, err := NewVacancyRepository(mock).IncrementViews(ctx, 404)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestVacancyRepo_FetchFilters(t *testing.T) {
	ctx := context.Background()
	mock := newMock(t)

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	where := `WHERE v.title ILIKE $1 AND v.created_at >= $2 AND v.created_at < $3`

	mock.ExpectQuery(sqlText(`SELECT COUNT(*) FROM vacancies v `+where)).
		WithArgs(`%go\_dev%`, day, day.AddDate(0, 0, 1)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(41)))
	mock.ExpectQuery(`(?s)FROM vacancies v.*`+sqlText(where+` ORDER BY v.created_at DESC, v.id DESC LIMIT $4 OFFSET $5`)).
		WithArgs(`%go\_dev%`, day, day.AddDate(0, 0, 1), 20, 40).
		WillReturnRows(vacancyRows(9, 0))

	date := time.Date(2024, 3, 1, 17, 45, 0, 0, time.UTC)
	vacancies, total, err := NewVacancyRepository(mock).Fetch(ctx, domain.VacancyFilter{
		Title:  "go_dev",
		Date:   &date,
		Limit:  20,
		Offset: 40,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(41), total)
	require.Len(t, vacancies, 1)
	assert.Equal(t, int64(9), vacancies[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVacancyRepo_Delete(t *testing.T) {
	ctx := context.Background()
	lock := sqlText(`SELECT id FROM vacancies WHERE id = $1 FOR UPDATE`)

	t.Run("locks then cascades in order", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(lock).WithArgs(int64(5)).WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(5)))
		mock.ExpectExec(sqlText(`DELETE FROM applications WHERE vacancy_id = $1`)).WithArgs(int64(5)).WillReturnResult(pgxmock.NewResult("DELETE", 2))
		mock.ExpectExec(sqlText(`DELETE FROM favorites WHERE vacancy_id = $1`)).WithArgs(int64(5)).WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectExec(sqlText(`DELETE FROM vacancies WHERE id = $1`)).WithArgs(int64(5)).WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectCommit()

		require.NoError(t, NewVacancyRepository(mock).Delete(ctx, 5))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing vacancy rolls back", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(lock).WithArgs(int64(404)).WillReturnRows(pgxmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		assert.ErrorIs(t, NewVacancyRepository(mock).Delete(ctx, 404), domain.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("driver errors are mapped and roll back", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(lock).WithArgs(int64(5)).WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(5)))
		mock.ExpectExec(sqlText(`DELETE FROM applications WHERE vacancy_id = $1`)).WithArgs(int64(5)).WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mock.ExpectExec(sqlText(`DELETE FROM favorites WHERE vacancy_id = $1`)).WithArgs(int64(5)).WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mock.ExpectExec(sqlText(`DELETE FROM vacancies WHERE id = $1`)).WithArgs(int64(5)).
			WillReturnError(&pgconn.PgError{Code: pgForeignKeyViolation})
		mock.ExpectRollback()

		assert.ErrorIs(t, NewVacancyRepository(mock).Delete(ctx, 5), domain.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestResumeRepo_Delete(t *testing.T) {
	ctx := context.Background()
	lock := sqlText(`SELECT id FROM resumes WHERE id = $1 FOR UPDATE`)

	t.Run("detaches applications before deleting", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(lock).WithArgs(int64(4)).WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(4)))
		mock.ExpectExec(sqlText(`UPDATE applications SET resume_id = NULL WHERE resume_id = $1`)).WithArgs(int64(4)).WillReturnResult(pgxmock.NewResult("UPDATE", 3))
		mock.ExpectExec(sqlText(`DELETE FROM resume_skills WHERE resume_id = $1`)).WithArgs(int64(4)).WillReturnResult(pgxmock.NewResult("DELETE", 2))
		mock.ExpectExec(sqlText(`DELETE FROM resumes WHERE id = $1`)).WithArgs(int64(4)).WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectCommit()

		require.NoError(t, NewResumeRepository(mock).Delete(ctx, 4))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure rolls back", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(lock).WithArgs(int64(4)).WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(4)))
		mock.ExpectExec(sqlText(`UPDATE applications SET resume_id = NULL WHERE resume_id = $1`)).WithArgs(int64(4)).
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		assert.EqualError(t, NewResumeRepository(mock).Delete(ctx, 4), "connection reset")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCompanyRepo_Delete(t *testing.T) {
	ctx := context.Background()
	mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(sqlText(`SELECT id FROM companies WHERE id = $1 FOR UPDATE`)).WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(3)))
	mock.ExpectExec(sqlText(`SELECT id FROM vacancies WHERE company_id = $1 FOR UPDATE`)).WithArgs(int64(3)).WillReturnResult(pgxmock.NewResult("SELECT", 2))
	mock.ExpectExec(sqlText(`DELETE FROM applications WHERE vacancy_id IN (SELECT id FROM vacancies WHERE company_id = $1)`)).WithArgs(int64(3)).WillReturnResult(pgxmock.NewResult("DELETE", 4))
	mock.ExpectExec(sqlText(`DELETE FROM favorites WHERE vacancy_id IN (SELECT id FROM vacancies WHERE company_id = $1)`)).WithArgs(int64(3)).WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(sqlText(`DELETE FROM vacancies WHERE company_id = $1`)).WithArgs(int64(3)).WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec(sqlText(`DELETE FROM companies WHERE id = $1`)).WithArgs(int64(3)).WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	require.NoError(t, NewCompanyRepository(mock).Delete(ctx, 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationRepo_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	update := sqlText(`UPDATE applications SET status = $2, updated_at = now() WHERE id = $1 AND status = $3`)
	exists := sqlText(`SELECT EXISTS (SELECT 1 FROM applications WHERE id = $1)`)

	t.Run("writes only from the expected status", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(update).WithArgs(int64(11), "accepted", "reviewed").WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectQuery(`(?s)FROM applications a.*WHERE a\.id = \$1`).WithArgs(int64(11)).
			WillReturnRows(pgxmock.NewRows([]string{
				"id", "applicant_id", "vacancy_id", "resume_id", "cover_letter", "status", "applied_at", "updated_at",
				"username", "title", "author_id", "full_name", "desired_position", "file_url",
			}).AddRow(
				int64(11), int64(8), int64(5), (*int64)(nil), "Hello", "accepted", created, created,
				"dilshod", "Go developer", int64(7), (*string)(nil), (*string)(nil), (*string)(nil),
			))

		app, err := NewApplicationRepository(mock).UpdateStatus(ctx, 11, domain.ApplicationStatusReviewed, domain.ApplicationStatusAccepted)
		require.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusAccepted, app.Status)
		assert.Nil(t, app.Resume)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("status moved underneath", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(update).WithArgs(int64(11), "rejected", "pending").WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectQuery(exists).WithArgs(int64(11)).WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

		_, err := NewApplicationRepository(mock).UpdateStatus(ctx, 11, domain.ApplicationStatusPending, domain.ApplicationStatusRejected)
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing application", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(update).WithArgs(int64(99), "reviewed", "pending").WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectQuery(exists).WithArgs(int64(99)).WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

		_, err := NewApplicationRepository(mock).UpdateStatus(ctx, 99, domain.ApplicationStatusPending, domain.ApplicationStatusReviewed)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
