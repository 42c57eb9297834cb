package usecase

import (
	"context"
	"errors"

	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
)

type favoriteUsecase struct {
	favoriteRepo domain.FavoriteRepository
	vacancyRepo  domain.VacancyRepository
}

func NewFavoriteUsecase(favoriteRepo domain.FavoriteRepository, vacancyRepo domain.VacancyRepository) domain.FavoriteUsecase {
	return &favoriteUsecase{
		favoriteRepo: favoriteRepo,
		vacancyRepo:  vacancyRepo,
	}
}

// ToggleFavorite flips the favorite. Losing a race to a concurrent toggle
// still reports the state the caller asked for.
func (u *favoriteUsecase) ToggleFavorite(ctx context.Context, p domain.Principal, vacancyID int64) (domain.FavoriteToggle, error) {
	if err := requireAuth(p); err != nil {
		return "", err
	}
	if !domain.CanCreate(p, domain.KindFavorite) {
		return "", apperror.Forbidden("Only seekers can add vacancies to favorites")
	}
	if _, err := u.vacancyRepo.GetByID(ctx, vacancyID); err != nil {
		return "", storeError(err, "Vacancy not found")
	}

	exists, err := u.favoriteRepo.Exists(ctx, p.ID, vacancyID)
	if err != nil {
		return "", apperror.Internal(err)
	}
	if exists {
		if _, err := u.favoriteRepo.Remove(ctx, p.ID, vacancyID); err != nil {
			return "", apperror.Internal(err)
		}
		return domain.FavoriteRemoved, nil
	}

	if _, err := u.favoriteRepo.Add(ctx, p.ID, vacancyID); err != nil {
		switch {
		case errors.Is(err, domain.ErrConflict):
			return domain.FavoriteAdded, nil
		case errors.Is(err, domain.ErrNotFound):
			return "", apperror.NotFound("Vacancy not found")
		}
		return "", apperror.Internal(err)
	}
	return domain.FavoriteAdded, nil
}

func (u *favoriteUsecase) ListFavorites(ctx context.Context, p domain.Principal) ([]domain.Favorite, error) {
	if err := requireAuth(p); err != nil {
		return nil, err
	}
	if p.Role != domain.RoleSeeker {
		return nil, apperror.Forbidden("Only seekers have favorites")
	}
	favorites, err := u.favoriteRepo.FetchByUser(ctx, p.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return favorites, nil
}
