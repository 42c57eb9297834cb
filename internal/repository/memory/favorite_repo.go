package memory

import (
	"context"
	"sort"

	"job-board-backend/internal/domain"
)

type favoriteRepo struct {
	s *Store
}

func (r *favoriteRepo) Add(_ context.Context, userID, vacancyID int64) (*domain.Favorite, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.vacancies[vacancyID]; !ok {
		return nil, domain.ErrNotFound
	}
	for _, f := range r.s.favorites {
		if f.UserID == userID && f.VacancyID == vacancyID {
			return nil, domain.ErrConflict
		}
	}
	fav := domain.Favorite{
		ID:        r.s.nextID("favorites"),
		UserID:    userID,
		VacancyID: vacancyID,
		AddedAt:   r.s.now(),
	}
	r.s.favorites[fav.ID] = fav
	return &fav, nil
}

func (r *favoriteRepo) Remove(_ context.Context, userID, vacancyID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, f := range r.s.favorites {
		if f.UserID == userID && f.VacancyID == vacancyID {
			delete(r.s.favorites, id)
			return true, nil
		}
	}
	return false, nil
}

func (r *favoriteRepo) Exists(_ context.Context, userID, vacancyID int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, f := range r.s.favorites {
		if f.UserID == userID && f.VacancyID == vacancyID {
			return true, nil
		}
	}
	return false, nil
}

func (r *favoriteRepo) FetchByUser(_ context.Context, userID int64) ([]domain.Favorite, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.Favorite, 0)
	for _, f := range r.s.favorites {
		if f.UserID != userID {
			continue
		}
		if v, ok := r.s.vacancies[f.VacancyID]; ok {
			view := r.s.vacancyView(v)
			f.Vacancy = &view
		}
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AddedAt.Equal(out[j].AddedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].AddedAt.After(out[j].AddedAt)
	})
	return out, nil
}
