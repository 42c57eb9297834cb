package domain

import "context"

// Profile is the role-specific view of the caller. Seekers get their
// resume; employers get their vacancies and the applications to them.
type Profile struct {
	User         *User
	Resume       *Resume
	Vacancies    []Vacancy
	Applications []Application
}

type ProfileUsecase interface {
	GetProfile(ctx context.Context, p Principal) (*Profile, error)
}
