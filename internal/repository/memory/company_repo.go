package memory

import (
	"context"
	"sort"

	"job-board-backend/internal/domain"
)

type companyRepo struct {
	s *Store
}

func (r *companyRepo) nameTaken(name string, exceptID int64) bool {
	for id, c := range r.s.companies {
		if id != exceptID && c.Name == name {
			return true
		}
	}
	return false
}

func (r *companyRepo) Create(_ context.Context, company *domain.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.nameTaken(company.Name, 0) {
		return domain.ErrConflict
	}
	now := r.s.now()
	company.ID = r.s.nextID("companies")
	company.CreatedAt = now
	company.UpdatedAt = now
	stored := *company
	stored.LogoURL = cloneString(company.LogoURL)
	r.s.companies[company.ID] = stored
	return nil
}

func (r *companyRepo) GetByID(_ context.Context, id int64) (*domain.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.companies[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *companyRepo) Fetch(_ context.Context) ([]domain.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.Company, 0, len(r.s.companies))
	for _, c := range r.s.companies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *companyRepo) Update(_ context.Context, company *domain.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.companies[company.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if r.nameTaken(company.Name, company.ID) {
		return domain.ErrConflict
	}
	company.OwnerID = current.OwnerID
	company.CreatedAt = current.CreatedAt
	company.UpdatedAt = r.s.now()
	stored := *company
	stored.LogoURL = cloneString(company.LogoURL)
	r.s.companies[company.ID] = stored
	return nil
}

func (r *companyRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.companies[id]; !ok {
		return domain.ErrNotFound
	}
	for vacancyID, v := range r.s.vacancies {
		if v.CompanyID == id {
			r.s.deleteVacancyLocked(vacancyID)
		}
	}
	delete(r.s.companies, id)
	return nil
}
