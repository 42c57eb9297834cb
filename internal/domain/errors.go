package domain

import "errors"

// Storage-level errors. Repositories return these and usecases translate
// them into HTTP-facing errors.
var (
	ErrNotFound = errors.New("resource not found")
	ErrConflict = errors.New("resource already exists")
)
