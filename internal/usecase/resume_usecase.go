package usecase

import (
	"context"
	"errors"

	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
)

type resumeUsecase struct {
	resumeRepo domain.ResumeRepository
}

func NewResumeUsecase(resumeRepo domain.ResumeRepository) domain.ResumeUsecase {
	return &resumeUsecase{resumeRepo: resumeRepo}
}

func (u *resumeUsecase) ListResumes(ctx context.Context, filter domain.ResumeFilter) ([]domain.Resume, error) {
	resumes, err := u.resumeRepo.Fetch(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return resumes, nil
}

func (u *resumeUsecase) CreateResume(ctx context.Context, p domain.Principal, resume *domain.Resume) error {
	if err := requireAuth(p); err != nil {
		return err
	}
	if !domain.CanCreate(p, domain.KindResume) {
		return apperror.Forbidden("Only seekers can create resumes")
	}

	resume.UserID = p.ID
	if err := u.resumeRepo.Create(ctx, resume); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return apperror.Conflict("You already have a resume")
		}
		return apperror.Internal(err)
	}

	created, err := u.resumeRepo.GetByID(ctx, resume.ID)
	if err != nil {
		return storeError(err, "Resume not found")
	}
	*resume = *created
	return nil
}

func (u *resumeUsecase) RetrieveResume(ctx context.Context, id int64) (*domain.Resume, error) {
	resume, err := u.resumeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Resume not found")
	}
	return resume, nil
}

func (u *resumeUsecase) UpdateResume(ctx context.Context, p domain.Principal, id int64, upd domain.ResumeUpdate) (*domain.Resume, error) {
	resume, err := u.ownedResume(ctx, p, id, "You can only edit your own resume")
	if err != nil {
		return nil, err
	}

	upd.Apply(resume)
	if err := u.resumeRepo.Update(ctx, resume); err != nil {
		return nil, storeError(err, "Resume not found")
	}
	updated, err := u.resumeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Resume not found")
	}
	return updated, nil
}

func (u *resumeUsecase) DeleteResume(ctx context.Context, p domain.Principal, id int64) error {
	if _, err := u.ownedResume(ctx, p, id, "You can only delete your own resume"); err != nil {
		return err
	}
	if err := u.resumeRepo.Delete(ctx, id); err != nil {
		return storeError(err, "Resume not found")
	}
	return nil
}

func (u *resumeUsecase) ownedResume(ctx context.Context, p domain.Principal, id int64, denied string) (*domain.Resume, error) {
	if err := requireAuth(p); err != nil {
		return nil, err
	}
	resume, err := u.resumeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Resume not found")
	}
	if !domain.CanMutate(p, resume.UserID) {
		return nil, apperror.Forbidden(denied)
	}
	return resume, nil
}
