package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"job-board-backend/internal/domain"
	"job-board-backend/internal/usecase"
)

func TestToggleFavorite(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)
	v := w.vacancy(t, w.employer, "Go developer")

	t.Run("Should forbid employers", func(t *testing.T) {
		_, err := w.favorites.ToggleFavorite(ctx, w.employer, v.ID)
		requireAppError(t, err, http.StatusForbidden)
	})

	t.Run("Should report missing vacancy", func(t *testing.T) {
		_, err := w.favorites.ToggleFavorite(ctx, w.seeker, 999)
		requireAppError(t, err, http.StatusNotFound)
	})

	t.Run("Should add then remove", func(t *testing.T) {
		state, err := w.favorites.ToggleFavorite(ctx, w.seeker, v.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.FavoriteAdded, state)

		list, err := w.favorites.ListFavorites(ctx, w.seeker)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Go developer", list[0].Vacancy.Title)

		state, err = w.favorites.ToggleFavorite(ctx, w.seeker, v.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.FavoriteRemoved, state)

		list, err = w.favorites.ListFavorites(ctx, w.seeker)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestToggleFavorite_Races(t *testing.T) {
	ctx := context.Background()
	seeker := domain.Principal{ID: 3, Role: domain.RoleSeeker}

	newUsecase := func() (*MockFavoriteRepo, domain.FavoriteUsecase) {
		favRepo := new(MockFavoriteRepo)
		vacancyRepo := new(MockVacancyRepo)
		vacancyRepo.On("GetByID", ctx, int64(8)).Return(&domain.Vacancy{ID: 8}, nil)
		return favRepo, usecase.NewFavoriteUsecase(favRepo, vacancyRepo)
	}

	t.Run("Should report added when a concurrent add wins", func(t *testing.T) {
		favRepo, uc := newUsecase()
		favRepo.On("Exists", ctx, int64(3), int64(8)).Return(false, nil)
		favRepo.On("Add", ctx, int64(3), int64(8)).Return(nil, domain.ErrConflict)

		state, err := uc.ToggleFavorite(ctx, seeker, 8)
		require.NoError(t, err)
		assert.Equal(t, domain.FavoriteAdded, state)
	})

	t.Run("Should report removed when a concurrent delete wins", func(t *testing.T) {
		favRepo, uc := newUsecase()
		favRepo.On("Exists", ctx, int64(3), int64(8)).Return(true, nil)
		favRepo.On("Remove", ctx, int64(3), int64(8)).Return(false, nil)

		state, err := uc.ToggleFavorite(ctx, seeker, 8)
		require.NoError(t, err)
		assert.Equal(t, domain.FavoriteRemoved, state)
		favRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
	})
}
