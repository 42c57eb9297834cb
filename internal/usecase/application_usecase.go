package usecase

import (
	"context"
	"errors"
	"fmt"

	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
)

type applicationUsecase struct {
	appRepo     domain.ApplicationRepository
	vacancyRepo domain.VacancyRepository
	resumeRepo  domain.ResumeRepository
}

func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	vacancyRepo domain.VacancyRepository,
	resumeRepo domain.ResumeRepository,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		appRepo:     appRepo,
		vacancyRepo: vacancyRepo,
		resumeRepo:  resumeRepo,
	}
}

func (u *applicationUsecase) CreateApplication(ctx context.Context, p domain.Principal, vacancyID int64, in domain.ApplicationInput) (*domain.Application, error) {
	if err := requireAuth(p); err != nil {
		return nil, err
	}
	if !domain.CanCreate(p, domain.KindApplication) {
		return nil, apperror.Forbidden("Only seekers can apply for vacancies")
	}
	if _, err := u.vacancyRepo.GetByID(ctx, vacancyID); err != nil {
		return nil, storeError(err, "Vacancy not found")
	}

	if in.ResumeID != nil {
		resume, err := u.resumeRepo.GetByID(ctx, *in.ResumeID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Internal(err)
		}
		if err != nil || resume.UserID != p.ID {
			return nil, apperror.FieldError("resume_id", "Resume does not exist or does not belong to you")
		}
	}

	app := &domain.Application{
		ApplicantID: p.ID,
		VacancyID:   vacancyID,
		ResumeID:    in.ResumeID,
		CoverLetter: in.CoverLetter,
		Status:      domain.ApplicationStatusPending,
	}
	if err := u.appRepo.Create(ctx, app); err != nil {
		switch {
		case errors.Is(err, domain.ErrConflict):
			return nil, apperror.Conflict("You have already applied for this vacancy")
		case errors.Is(err, domain.ErrNotFound):
			return nil, apperror.NotFound("Vacancy not found")
		}
		return nil, apperror.Internal(err)
	}

	created, err := u.appRepo.GetByID(ctx, app.ID)
	if err != nil {
		return nil, storeError(err, "Application not found")
	}
	return created, nil
}

func (u *applicationUsecase) MarkReviewed(ctx context.Context, p domain.Principal, id int64) (*domain.Application, error) {
	return u.transition(ctx, p, id, domain.ApplicationStatusReviewed)
}

func (u *applicationUsecase) MarkAccepted(ctx context.Context, p domain.Principal, id int64) (*domain.Application, error) {
	return u.transition(ctx, p, id, domain.ApplicationStatusAccepted)
}

func (u *applicationUsecase) MarkRejected(ctx context.Context, p domain.Principal, id int64) (*domain.Application, error) {
	return u.transition(ctx, p, id, domain.ApplicationStatusRejected)
}

// transition moves the application forward. Only the author of the vacancy
// may do this.
func (u *applicationUsecase) transition(ctx context.Context, p domain.Principal, id int64, next domain.ApplicationStatus) (*domain.Application, error) {
	if err := requireAuth(p); err != nil {
		return nil, err
	}
	app, err := u.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Application not found")
	}
	if !domain.CanMutate(p, app.VacancyAuthorID) {
		return nil, apperror.Forbidden("Only the author of the vacancy can change application status")
	}
	if !app.Status.CanTransitionTo(next) {
		if app.Status.IsFinal() {
			return nil, apperror.Conflict(fmt.Sprintf("Application is already %s", app.Status))
		}
		return nil, apperror.Conflict(fmt.Sprintf("Cannot change application status from %s to %s", app.Status, next))
	}

	updated, err := u.appRepo.UpdateStatus(ctx, id, app.Status, next)
	if errors.Is(err, domain.ErrConflict) {
		return nil, apperror.Conflict("Application status was changed by another request")
	}
	if err != nil {
		return nil, storeError(err, "Application not found")
	}
	return updated, nil
}

// ListMyApplications returns what a seeker sent or what an employer
// received.
func (u *applicationUsecase) ListMyApplications(ctx context.Context, p domain.Principal) ([]domain.Application, error) {
	if err := requireAuth(p); err != nil {
		return nil, err
	}

	var (
		apps []domain.Application
		err  error
	)
	if p.Role == domain.RoleEmployer {
		apps, err = u.appRepo.FetchByVacancyAuthor(ctx, p.ID)
	} else {
		apps, err = u.appRepo.FetchByApplicant(ctx, p.ID)
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

func (u *applicationUsecase) GetApplication(ctx context.Context, p domain.Principal, id int64) (*domain.Application, error) {
	if err := requireAuth(p); err != nil {
		return nil, err
	}
	app, err := u.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Application not found")
	}
	if !domain.CanMutate(p, app.ApplicantID) && !domain.CanMutate(p, app.VacancyAuthorID) {
		return nil, apperror.Forbidden("You do not have access to this application")
	}
	return app, nil
}
