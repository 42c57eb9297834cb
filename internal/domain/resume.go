package domain

import (
	"context"
	"time"
)

type Skill struct {
	ID   int64
	Name string
}

type Resume struct {
	ID                int64
	UserID            int64
	FullName          string
	DesiredPosition   string
	Location          string
	Phone             string
	Email             string
	SalaryExpectation *float64
	ExperienceYears   int
	About             string
	Skills            []string
	IsActive          bool
	FileURL           *string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Joined data for responses
	Username string
}

// ResumeFilter narrows resume listings. A nil Active lists both states.
type ResumeFilter struct {
	Active *bool
	Skill  string // exact name, case-insensitive
}

// ResumeUpdate carries the fields to change. Nil means unchanged; a nil
// Skills slice keeps the current set.
type ResumeUpdate struct {
	FullName          *string
	DesiredPosition   *string
	Location          *string
	Phone             *string
	Email             *string
	SalaryExpectation *float64
	ExperienceYears   *int
	About             *string
	Skills            []string
	IsActive          *bool
	FileURL           *string
}

func (u ResumeUpdate) Apply(r *Resume) {
	if u.FullName != nil {
		r.FullName = *u.FullName
	}
	if u.DesiredPosition != nil {
		r.DesiredPosition = *u.DesiredPosition
	}
	if u.Location != nil {
		r.Location = *u.Location
	}
	if u.Phone != nil {
		r.Phone = *u.Phone
	}
	if u.Email != nil {
		r.Email = *u.Email
	}
	if u.SalaryExpectation != nil {
		r.SalaryExpectation = u.SalaryExpectation
	}
	if u.ExperienceYears != nil {
		r.ExperienceYears = *u.ExperienceYears
	}
	if u.About != nil {
		r.About = *u.About
	}
	if u.Skills != nil {
		r.Skills = u.Skills
	}
	if u.IsActive != nil {
		r.IsActive = *u.IsActive
	}
	if u.FileURL != nil {
		r.FileURL = u.FileURL
	}
}

type ResumeRepository interface {
	// Create stores the resume and its skill set, creating unknown skills.
	// ErrConflict when the user already has a resume.
	Create(ctx context.Context, resume *Resume) error
	GetByID(ctx context.Context, id int64) (*Resume, error)
	GetByUserID(ctx context.Context, userID int64) (*Resume, error)
	Fetch(ctx context.Context, filter ResumeFilter) ([]Resume, error)
	Update(ctx context.Context, resume *Resume) error
	// Delete removes the resume and detaches it from applications.
	Delete(ctx context.Context, id int64) error
}

type ResumeUsecase interface {
	ListResumes(ctx context.Context, filter ResumeFilter) ([]Resume, error)
	CreateResume(ctx context.Context, p Principal, resume *Resume) error
	RetrieveResume(ctx context.Context, id int64) (*Resume, error)
	UpdateResume(ctx context.Context, p Principal, id int64, upd ResumeUpdate) (*Resume, error)
	DeleteResume(ctx context.Context, p Principal, id int64) error
}
