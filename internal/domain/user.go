package domain

import (
	"context"
	"time"
)

type Role string

const (
	RoleSeeker   Role = "seeker"
	RoleEmployer Role = "employer"
)

func (r Role) Valid() bool {
	return r == RoleSeeker || r == RoleEmployer
}

// Principal is the authenticated caller of an operation. The zero value is
// an anonymous caller.
type Principal struct {
	ID   int64
	Role Role
}

func (p Principal) IsAuthenticated() bool {
	return p.ID != 0
}

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) Principal() Principal {
	return Principal{ID: u.ID, Role: u.Role}
}

// TokenPair is what login and refresh hand back.
type TokenPair struct {
	Access  string
	Refresh string
}

type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
	Role            Role
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}

type AuthUsecase interface {
	Register(ctx context.Context, in RegisterInput) (*User, error)
	Login(ctx context.Context, username, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	// Authenticate resolves an access token to the caller it was issued for.
	Authenticate(ctx context.Context, accessToken string) (Principal, error)
	GetCurrentUser(ctx context.Context, id int64) (*User, error)
}
