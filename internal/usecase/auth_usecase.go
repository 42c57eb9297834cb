package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
	"job-board-backend/pkg/auth"
)

// TokenIssuer signs and verifies the bearer tokens handed to clients.
type TokenIssuer interface {
	Issue(userID int64, role string) (access, refresh string, err error)
	Parse(raw, expectedType string) (*auth.Claims, error)
}

type authUsecase struct {
	userRepo  domain.UserRepository
	issuer    TokenIssuer
	blacklist auth.Blacklist
}

func NewAuthUsecase(userRepo domain.UserRepository, issuer TokenIssuer, blacklist auth.Blacklist) domain.AuthUsecase {
	return &authUsecase{
		userRepo:  userRepo,
		issuer:    issuer,
		blacklist: blacklist,
	}
}

func (u *authUsecase) Register(ctx context.Context, in domain.RegisterInput) (*domain.User, error) {
	if in.Password != in.ConfirmPassword {
		return nil, apperror.FieldError("confirm_password", "Passwords do not match")
	}
	if in.Role == "" {
		in.Role = domain.RoleSeeker
	}
	if !in.Role.Valid() {
		return nil, apperror.FieldError("role", "Role must be one of: seeker employer")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user := &domain.User{
		Username:     strings.TrimSpace(in.Username),
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         in.Role,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, apperror.Conflict("A user with that username or email already exists")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}

func (u *authUsecase) Login(ctx context.Context, username, password string) (*domain.TokenPair, error) {
	user, err := u.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.BadRequest("Invalid credentials")
		}
		return nil, apperror.Internal(err)
	}
	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, apperror.BadRequest("Invalid credentials")
	}
	return u.issue(user)
}

// Refresh rotates the pair. The presented refresh token is revoked so it
// cannot be replayed.
func (u *authUsecase) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := u.validRefresh(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	userID, _ := claims.UserID()
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.BadRequest("Token is invalid or expired")
		}
		return nil, apperror.Internal(err)
	}

	if err := u.blacklist.Revoke(ctx, claims.ID, expiry(claims)); err != nil {
		return nil, apperror.Internal(err)
	}
	return u.issue(user)
}

func (u *authUsecase) Logout(ctx context.Context, refreshToken string) error {
	claims, err := u.validRefresh(ctx, refreshToken)
	if err != nil {
		return err
	}
	if err := u.blacklist.Revoke(ctx, claims.ID, expiry(claims)); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// Authenticate resolves the caller from an access token. The role is read
// from the user record, not from the token.
func (u *authUsecase) Authenticate(ctx context.Context, accessToken string) (domain.Principal, error) {
	claims, err := u.issuer.Parse(accessToken, auth.TokenAccess)
	if err != nil {
		return domain.Principal{}, apperror.Unauthorized("Given token not valid for any token type")
	}
	userID, _ := claims.UserID()
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Principal{}, apperror.Unauthorized("User not found")
		}
		return domain.Principal{}, apperror.Internal(err)
	}
	return user.Principal(), nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "User not found")
	}
	return user, nil
}

func (u *authUsecase) validRefresh(ctx context.Context, raw string) (*auth.Claims, error) {
	claims, err := u.issuer.Parse(raw, auth.TokenRefresh)
	if err != nil {
		return nil, apperror.BadRequest("Token is invalid or expired")
	}
	revoked, err := u.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if revoked {
		return nil, apperror.BadRequest("Token is blacklisted")
	}
	return claims, nil
}

func (u *authUsecase) issue(user *domain.User) (*domain.TokenPair, error) {
	access, refresh, err := u.issuer.Issue(user.ID, string(user.Role))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.TokenPair{Access: access, Refresh: refresh}, nil
}

func expiry(claims *auth.Claims) time.Time {
	if claims.ExpiresAt == nil {
		return time.Now()
	}
	return claims.ExpiresAt.Time
}
