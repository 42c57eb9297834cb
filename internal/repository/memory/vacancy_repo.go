package memory

import (
	"context"
	"sort"
	"strings"

	"job-board-backend/internal/domain"
)

type vacancyRepo struct {
	s *Store
}

func (r *vacancyRepo) Create(_ context.Context, vacancy *domain.Vacancy) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.companies[vacancy.CompanyID]; !ok {
		return domain.ErrNotFound
	}
	now := r.s.now()
	vacancy.ID = r.s.nextID("vacancies")
	vacancy.Views = 0
	vacancy.CreatedAt = now
	vacancy.UpdatedAt = now
	r.s.vacancies[vacancy.ID] = storedVacancy(vacancy)
	return nil
}

func (r *vacancyRepo) GetByID(_ context.Context, id int64) (*domain.Vacancy, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	v, ok := r.s.vacancies[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	view := r.s.vacancyView(v)
	return &view, nil
}

func (r *vacancyRepo) IncrementViews(_ context.Context, id int64) (*domain.Vacancy, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	v, ok := r.s.vacancies[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	v.Views++
	r.s.vacancies[id] = v
	view := r.s.vacancyView(v)
	return &view, nil
}

func (r *vacancyRepo) Fetch(_ context.Context, filter domain.VacancyFilter) ([]domain.Vacancy, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	title := strings.ToLower(filter.Title)
	matched := make([]domain.Vacancy, 0)
	for _, v := range r.s.vacancies {
		if title != "" && !strings.Contains(strings.ToLower(v.Title), title) {
			continue
		}
		if filter.Date != nil {
			y1, m1, d1 := v.CreatedAt.UTC().Date()
			y2, m2, d2 := filter.Date.UTC().Date()
			if y1 != y2 || m1 != m2 || d1 != d2 {
				continue
			}
		}
		matched = append(matched, r.s.vacancyView(v))
	}
	sortNewestFirst(matched)

	total := int64(len(matched))
	return paginate(matched, filter.Limit, filter.Offset), total, nil
}

func (r *vacancyRepo) FetchByAuthor(_ context.Context, authorID int64) ([]domain.Vacancy, error) {
	return r.fetchWhere(func(v domain.Vacancy) bool { return v.AuthorID == authorID }), nil
}

func (r *vacancyRepo) FetchByCompany(_ context.Context, companyID int64) ([]domain.Vacancy, error) {
	return r.fetchWhere(func(v domain.Vacancy) bool { return v.CompanyID == companyID }), nil
}

func (r *vacancyRepo) fetchWhere(keep func(domain.Vacancy) bool) []domain.Vacancy {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.Vacancy, 0)
	for _, v := range r.s.vacancies {
		if keep(v) {
			out = append(out, r.s.vacancyView(v))
		}
	}
	sortNewestFirst(out)
	return out
}

func (r *vacancyRepo) Update(_ context.Context, vacancy *domain.Vacancy) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.vacancies[vacancy.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.s.companies[vacancy.CompanyID]; !ok {
		return domain.ErrNotFound
	}
	vacancy.AuthorID = current.AuthorID
	vacancy.Views = current.Views
	vacancy.CreatedAt = current.CreatedAt
	vacancy.UpdatedAt = r.s.now()
	r.s.vacancies[vacancy.ID] = storedVacancy(vacancy)
	return nil
}

func (r *vacancyRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.vacancies[id]; !ok {
		return domain.ErrNotFound
	}
	r.s.deleteVacancyLocked(id)
	return nil
}

func storedVacancy(v *domain.Vacancy) domain.Vacancy {
	stored := *v
	stored.SalaryFrom = cloneFloat(v.SalaryFrom)
	stored.SalaryTo = cloneFloat(v.SalaryTo)
	stored.Company = nil
	stored.AuthorUsername = ""
	return stored
}

func sortNewestFirst(vs []domain.Vacancy) {
	sort.Slice(vs, func(i, j int) bool {
		if vs[i].CreatedAt.Equal(vs[j].CreatedAt) {
			return vs[i].ID > vs[j].ID
		}
		return vs[i].CreatedAt.After(vs[j].CreatedAt)
	})
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
