package usecase

import (
	"context"
	"errors"

	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
)

type profileUsecase struct {
	userRepo    domain.UserRepository
	resumeRepo  domain.ResumeRepository
	vacancyRepo domain.VacancyRepository
	appRepo     domain.ApplicationRepository
}

func NewProfileUsecase(
	userRepo domain.UserRepository,
	resumeRepo domain.ResumeRepository,
	vacancyRepo domain.VacancyRepository,
	appRepo domain.ApplicationRepository,
) domain.ProfileUsecase {
	return &profileUsecase{
		userRepo:    userRepo,
		resumeRepo:  resumeRepo,
		vacancyRepo: vacancyRepo,
		appRepo:     appRepo,
	}
}

func (u *profileUsecase) GetProfile(ctx context.Context, p domain.Principal) (*domain.Profile, error) {
	if err := requireAuth(p); err != nil {
		return nil, err
	}
	user, err := u.userRepo.GetByID(ctx, p.ID)
	if err != nil {
		return nil, storeError(err, "User not found")
	}
	profile := &domain.Profile{User: user}

	switch user.Role {
	case domain.RoleSeeker:
		resume, err := u.resumeRepo.GetByUserID(ctx, user.ID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Internal(err)
		}
		profile.Resume = resume
	case domain.RoleEmployer:
		if profile.Vacancies, err = u.vacancyRepo.FetchByAuthor(ctx, user.ID); err != nil {
			return nil, apperror.Internal(err)
		}
		if profile.Applications, err = u.appRepo.FetchByVacancyAuthor(ctx, user.ID); err != nil {
			return nil, apperror.Internal(err)
		}
	}
	return profile, nil
}
