package domain

import (
	"context"
	"time"
)

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusReviewed ApplicationStatus = "reviewed"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// pending → reviewed → accepted / rejected; pending may skip review.
var allowedTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationStatusPending:  {ApplicationStatusReviewed, ApplicationStatusAccepted, ApplicationStatusRejected},
	ApplicationStatusReviewed: {ApplicationStatusAccepted, ApplicationStatusRejected},
}

// CanTransitionTo reports whether an application in status s may move to
// next. Re-marking the current status is allowed.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s ApplicationStatus) IsFinal() bool {
	return s == ApplicationStatusAccepted || s == ApplicationStatusRejected
}

type Application struct {
	ID          int64
	ApplicantID int64
	VacancyID   int64
	ResumeID    *int64
	CoverLetter string
	Status      ApplicationStatus
	AppliedAt   time.Time
	UpdatedAt   time.Time

	// Joined data for responses
	ApplicantUsername string
	VacancyTitle      string
	VacancyAuthorID   int64
	Resume            *Resume
}

type ApplicationInput struct {
	ResumeID    *int64
	CoverLetter string
}

type ApplicationRepository interface {
	// Create returns ErrConflict when the applicant already applied.
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id int64) (*Application, error)
	FetchByApplicant(ctx context.Context, applicantID int64) ([]Application, error)
	FetchByVacancyAuthor(ctx context.Context, authorID int64) ([]Application, error)
	// UpdateStatus moves the application from status from to status to. It
	// returns ErrConflict when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id int64, from, to ApplicationStatus) (*Application, error)
}

type ApplicationUsecase interface {
	// Seeker operations
	CreateApplication(ctx context.Context, p Principal, vacancyID int64, in ApplicationInput) (*Application, error)

	// Vacancy author operations
	MarkReviewed(ctx context.Context, p Principal, id int64) (*Application, error)
	MarkAccepted(ctx context.Context, p Principal, id int64) (*Application, error)
	MarkRejected(ctx context.Context, p Principal, id int64) (*Application, error)

	ListMyApplications(ctx context.Context, p Principal) ([]Application, error)
	GetApplication(ctx context.Context, p Principal, id int64) (*Application, error)
}
