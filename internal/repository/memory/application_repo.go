package memory

import (
	"context"
	"sort"

	"job-board-backend/internal/domain"
)

type applicationRepo struct {
	s *Store
}

func (r *applicationRepo) Create(_ context.Context, app *domain.Application) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.vacancies[app.VacancyID]; !ok {
		return domain.ErrNotFound
	}
	for _, existing := range r.s.applications {
		if existing.ApplicantID == app.ApplicantID && existing.VacancyID == app.VacancyID {
			return domain.ErrConflict
		}
	}
	now := r.s.now()
	app.ID = r.s.nextID("applications")
	app.AppliedAt = now
	app.UpdatedAt = now
	stored := *app
	if app.ResumeID != nil {
		id := *app.ResumeID
		stored.ResumeID = &id
	}
	stored.Resume = nil
	r.s.applications[app.ID] = stored
	return nil
}

func (r *applicationRepo) GetByID(_ context.Context, id int64) (*domain.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	app, ok := r.s.applications[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	view := r.s.applicationView(app)
	return &view, nil
}

func (r *applicationRepo) FetchByApplicant(_ context.Context, applicantID int64) ([]domain.Application, error) {
	return r.fetchWhere(func(a domain.Application) bool { return a.ApplicantID == applicantID }), nil
}

func (r *applicationRepo) FetchByVacancyAuthor(_ context.Context, authorID int64) ([]domain.Application, error) {
	return r.fetchWhere(func(a domain.Application) bool {
		v, ok := r.s.vacancies[a.VacancyID]
		return ok && v.AuthorID == authorID
	}), nil
}

func (r *applicationRepo) fetchWhere(keep func(domain.Application) bool) []domain.Application {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.Application, 0)
	for _, app := range r.s.applications {
		if keep(app) {
			out = append(out, r.s.applicationView(app))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AppliedAt.Equal(out[j].AppliedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].AppliedAt.After(out[j].AppliedAt)
	})
	return out
}

func (r *applicationRepo) UpdateStatus(_ context.Context, id int64, from, to domain.ApplicationStatus) (*domain.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	app, ok := r.s.applications[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if app.Status != from {
		return nil, domain.ErrConflict
	}
	app.Status = to
	app.UpdatedAt = r.s.now()
	r.s.applications[id] = app
	view := r.s.applicationView(app)
	return &view, nil
}
