package usecase

import (
	"errors"

	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
)

// storeError translates repository sentinels. notFound is the message used
// when the record is missing.
func storeError(err error, notFound string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return apperror.NotFound(notFound)
	case errors.Is(err, domain.ErrConflict):
		return apperror.Conflict("Resource already exists")
	default:
		return apperror.Internal(err)
	}
}

func requireAuth(p domain.Principal) error {
	if !p.IsAuthenticated() {
		return apperror.Unauthorized("Authentication credentials were not provided")
	}
	return nil
}
