package domain

import (
	"context"
	"time"
)

type Favorite struct {
	ID        int64
	UserID    int64
	VacancyID int64
	AddedAt   time.Time

	Vacancy *Vacancy
}

// FavoriteToggle is the outcome of toggling a favorite.
type FavoriteToggle string

const (
	FavoriteAdded   FavoriteToggle = "added"
	FavoriteRemoved FavoriteToggle = "removed"
)

type FavoriteRepository interface {
	// Add returns ErrConflict when the pair already exists.
	Add(ctx context.Context, userID, vacancyID int64) (*Favorite, error)
	// Remove reports whether a row was deleted.
	Remove(ctx context.Context, userID, vacancyID int64) (bool, error)
	Exists(ctx context.Context, userID, vacancyID int64) (bool, error)
	FetchByUser(ctx context.Context, userID int64) ([]Favorite, error)
}

type FavoriteUsecase interface {
	ToggleFavorite(ctx context.Context, p Principal, vacancyID int64) (FavoriteToggle, error)
	ListFavorites(ctx context.Context, p Principal) ([]Favorite, error)
}
