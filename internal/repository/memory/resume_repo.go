package memory

import (
	"context"
	"sort"
	"strings"

	"job-board-backend/internal/domain"
)

type resumeRepo struct {
	s *Store
}

func (r *resumeRepo) Create(_ context.Context, resume *domain.Resume) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.resumes {
		if existing.UserID == resume.UserID {
			return domain.ErrConflict
		}
	}
	now := r.s.now()
	resume.ID = r.s.nextID("resumes")
	resume.Skills = r.s.internSkills(resume.Skills)
	resume.CreatedAt = now
	resume.UpdatedAt = now
	r.s.resumes[resume.ID] = storedResume(resume)
	return nil
}

func (r *resumeRepo) GetByID(_ context.Context, id int64) (*domain.Resume, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	res, ok := r.s.resumes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	view := r.s.resumeView(res)
	return &view, nil
}

func (r *resumeRepo) GetByUserID(_ context.Context, userID int64) (*domain.Resume, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, res := range r.s.resumes {
		if res.UserID == userID {
			view := r.s.resumeView(res)
			return &view, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *resumeRepo) Fetch(_ context.Context, filter domain.ResumeFilter) ([]domain.Resume, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.Resume, 0)
	for _, res := range r.s.resumes {
		if filter.Active != nil && res.IsActive != *filter.Active {
			continue
		}
		if filter.Skill != "" && !hasSkill(res.Skills, filter.Skill) {
			continue
		}
		out = append(out, r.s.resumeView(res))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *resumeRepo) Update(_ context.Context, resume *domain.Resume) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.resumes[resume.ID]
	if !ok {
		return domain.ErrNotFound
	}
	resume.UserID = current.UserID
	resume.Skills = r.s.internSkills(resume.Skills)
	resume.CreatedAt = current.CreatedAt
	resume.UpdatedAt = r.s.now()
	r.s.resumes[resume.ID] = storedResume(resume)
	return nil
}

func (r *resumeRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.resumes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.resumes, id)
	for appID, app := range r.s.applications {
		if app.ResumeID != nil && *app.ResumeID == id {
			app.ResumeID = nil
			r.s.applications[appID] = app
		}
	}
	return nil
}

func hasSkill(skills []string, name string) bool {
	for _, s := range skills {
		if strings.EqualFold(s, name) {
			return true
		}
	}
	return false
}

func storedResume(r *domain.Resume) domain.Resume {
	stored := *r
	stored.Skills = append([]string(nil), r.Skills...)
	stored.SalaryExpectation = cloneFloat(r.SalaryExpectation)
	stored.FileURL = cloneString(r.FileURL)
	stored.Username = ""
	return stored
}
