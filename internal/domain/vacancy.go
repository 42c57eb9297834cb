package domain

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

const DefaultCurrency = "TJS"

// Employment types
const (
	EmploymentFullTime   = "full_time"
	EmploymentPartTime   = "part_time"
	EmploymentContract   = "contract"
	EmploymentInternship = "internship"
	EmploymentFIFO       = "fifo"
	EmploymentVolunteer  = "volunteer"
)

// Work formats
const (
	WorkFormatOnSite = "on_site"
	WorkFormatRemote = "remote"
	WorkFormatHybrid = "hybrid"
	WorkFormatShift  = "shift"
)

// Required experience
const (
	ExperienceNone    = "no_exp"
	Experience1To3    = "1_3"
	Experience3To6    = "3_6"
	ExperienceSixPlus = "6_plus"
)

const DefaultExperience = ExperienceNone

type Vacancy struct {
	ID                 int64
	Title              string
	CompanyID          int64
	Location           string
	Description        string
	Responsibilities   string
	Requirements       string
	SalaryFrom         *float64
	SalaryTo           *float64
	Currency           string
	ShowSalary         bool
	EmploymentType     string
	WorkFormat         string
	ExperienceRequired string
	IsActive           bool
	Views              int64
	AuthorID           int64
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Joined data for responses
	Company        *Company
	AuthorUsername string
}

// SalaryDisplay renders the compensation range for people reading the
// posting. A bound counts as set when present and non-zero.
func (v *Vacancy) SalaryDisplay() string {
	if !v.ShowSalary {
		return "By agreement"
	}
	from, hasFrom := salaryBound(v.SalaryFrom)
	to, hasTo := salaryBound(v.SalaryTo)
	switch {
	case hasFrom && hasTo:
		return fmt.Sprintf("%s – %s %s", from, to, v.Currency)
	case hasFrom:
		return fmt.Sprintf("from %s %s", from, v.Currency)
	case hasTo:
		return fmt.Sprintf("up to %s %s", to, v.Currency)
	default:
		return "Not specified"
	}
}

func salaryBound(v *float64) (string, bool) {
	if v == nil || *v == 0 {
		return "", false
	}
	return strconv.FormatFloat(*v, 'f', -1, 64), true
}

// VacancyFilter narrows vacancy listings.
type VacancyFilter struct {
	Title  string     // case-insensitive substring
	Date   *time.Time // calendar day of created_at, UTC
	Limit  int
	Offset int
}

// VacancyPage is one page of a listing, with the paging that was applied.
type VacancyPage struct {
	Vacancies []Vacancy
	Total     int64
	Page      int
	PageSize  int
}

// VacancyUpdate carries the fields to change. Nil means unchanged.
type VacancyUpdate struct {
	Title              *string
	CompanyID          *int64
	Location           *string
	Description        *string
	Responsibilities   *string
	Requirements       *string
	SalaryFrom         *float64
	SalaryTo           *float64
	ClearSalaryFrom    bool
	ClearSalaryTo      bool
	Currency           *string
	ShowSalary         *bool
	EmploymentType     *string
	WorkFormat         *string
	ExperienceRequired *string
	IsActive           *bool
}

// Apply copies the set fields onto v. Author and views are never touched.
func (u VacancyUpdate) Apply(v *Vacancy) {
	if u.Title != nil {
		v.Title = *u.Title
	}
	if u.CompanyID != nil {
		v.CompanyID = *u.CompanyID
	}
	if u.Location != nil {
		v.Location = *u.Location
	}
	if u.Description != nil {
		v.Description = *u.Description
	}
	if u.Responsibilities != nil {
		v.Responsibilities = *u.Responsibilities
	}
	if u.Requirements != nil {
		v.Requirements = *u.Requirements
	}
	if u.SalaryFrom != nil || u.ClearSalaryFrom {
		v.SalaryFrom = u.SalaryFrom
	}
	if u.SalaryTo != nil || u.ClearSalaryTo {
		v.SalaryTo = u.SalaryTo
	}
	if u.Currency != nil {
		v.Currency = *u.Currency
	}
	if u.ShowSalary != nil {
		v.ShowSalary = *u.ShowSalary
	}
	if u.EmploymentType != nil {
		v.EmploymentType = *u.EmploymentType
	}
	if u.WorkFormat != nil {
		v.WorkFormat = *u.WorkFormat
	}
	if u.ExperienceRequired != nil {
		v.ExperienceRequired = *u.ExperienceRequired
	}
	if u.IsActive != nil {
		v.IsActive = *u.IsActive
	}
}

type VacancyRepository interface {
	Create(ctx context.Context, vacancy *Vacancy) error
	GetByID(ctx context.Context, id int64) (*Vacancy, error)
	// IncrementViews bumps the counter in place and returns the updated row.
	IncrementViews(ctx context.Context, id int64) (*Vacancy, error)
	Fetch(ctx context.Context, filter VacancyFilter) ([]Vacancy, int64, error)
	FetchByAuthor(ctx context.Context, authorID int64) ([]Vacancy, error)
	FetchByCompany(ctx context.Context, companyID int64) ([]Vacancy, error)
	Update(ctx context.Context, vacancy *Vacancy) error
	// Delete removes the vacancy together with its applications and favorites.
	Delete(ctx context.Context, id int64) error
}

type VacancyUsecase interface {
	// ListVacancies pages newest first. Out of range paging falls back to
	// page 1 and the default size; the size is capped.
	ListVacancies(ctx context.Context, filter VacancyFilter, page, pageSize int) (*VacancyPage, error)
	ListMyVacancies(ctx context.Context, p Principal) ([]Vacancy, error)
	CreateVacancy(ctx context.Context, p Principal, vacancy *Vacancy) error
	RetrieveVacancy(ctx context.Context, id int64) (*Vacancy, error)
	UpdateVacancy(ctx context.Context, p Principal, id int64, upd VacancyUpdate) (*Vacancy, error)
	ReplaceVacancy(ctx context.Context, p Principal, id int64, vacancy *Vacancy) (*Vacancy, error)
	DeleteVacancy(ctx context.Context, p Principal, id int64) error
}
