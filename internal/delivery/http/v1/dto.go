package v1

import (
	"bytes"
	"encoding/json"
	"time"

	"job-board-backend/internal/domain"
)

// ==========================================
// Requests
// ==========================================

type RegisterRequest struct {
	Username        string `json:"username" binding:"required,min=3,max=150,valid_username"`
	Email           string `json:"email" binding:"omitempty,email,max=254"`
	Password        string `json:"password" binding:"required,min=8,max=128"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	FirstName       string `json:"first_name" binding:"omitempty,max=150,valid_name"`
	LastName        string `json:"last_name" binding:"omitempty,max=150,valid_name"`
	Role            string `json:"role" binding:"omitempty,oneof=seeker employer"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenRequest carries a refresh token for refresh and logout.
type TokenRequest struct {
	Token string `json:"token" binding:"required"`
}

type CompanyRequest struct {
	Name        string  `json:"name" binding:"required,max=200,no_emoji"`
	Description string  `json:"description"`
	Website     string  `json:"website" binding:"omitempty,url,max=200"`
	LogoURL     *string `json:"logo_url" binding:"omitempty,url"`
}

type CompanyPatchRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200,no_emoji"`
	Description *string `json:"description"`
	Website     *string `json:"website" binding:"omitempty,url,max=200"`
	LogoURL     *string `json:"logo_url" binding:"omitempty,url"`
}

type VacancyRequest struct {
	Title              string   `json:"title" binding:"required,max=200"`
	CompanyID          int64    `json:"company_id" binding:"required,gt=0"`
	Location           string   `json:"location" binding:"required,max=150"`
	Description        string   `json:"description" binding:"required"`
	Responsibilities   string   `json:"responsibilities"`
	Requirements       string   `json:"requirements"`
	SalaryFrom         *float64 `json:"salary_from" binding:"omitempty,gte=0"`
	SalaryTo           *float64 `json:"salary_to" binding:"omitempty,gte=0"`
	Currency           string   `json:"currency" binding:"omitempty,max=10"`
	ShowSalary         *bool    `json:"show_salary"`
	EmploymentType     string   `json:"employment_type" binding:"required,oneof=full_time part_time contract internship fifo volunteer"`
	WorkFormat         string   `json:"work_format" binding:"required,oneof=on_site remote hybrid shift"`
	ExperienceRequired string   `json:"experience_required" binding:"omitempty,oneof=no_exp 1_3 3_6 6_plus"`
	IsActive           *bool    `json:"is_active"`
}

// VacancyPatchRequest leaves absent fields untouched. Salary bounds may be
// sent as null to clear them.
type VacancyPatchRequest struct {
	Title              *string       `json:"title" binding:"omitempty,min=1,max=200"`
	CompanyID          *int64        `json:"company_id" binding:"omitempty,gt=0"`
	Location           *string       `json:"location" binding:"omitempty,min=1,max=150"`
	Description        *string       `json:"description" binding:"omitempty,min=1"`
	Responsibilities   *string       `json:"responsibilities"`
	Requirements       *string       `json:"requirements"`
	SalaryFrom         nullableFloat `json:"salary_from"`
	SalaryTo           nullableFloat `json:"salary_to"`
	Currency           *string       `json:"currency" binding:"omitempty,min=1,max=10"`
	ShowSalary         *bool         `json:"show_salary"`
	EmploymentType     *string       `json:"employment_type" binding:"omitempty,oneof=full_time part_time contract internship fifo volunteer"`
	WorkFormat         *string       `json:"work_format" binding:"omitempty,oneof=on_site remote hybrid shift"`
	ExperienceRequired *string       `json:"experience_required" binding:"omitempty,oneof=no_exp 1_3 3_6 6_plus"`
	IsActive           *bool         `json:"is_active"`
}

// nullableFloat tells an explicit null apart from an absent key.
type nullableFloat struct {
	Set   bool
	Value *float64
}

func (n *nullableFloat) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(data, []byte("null")) {
		n.Value = nil
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

type ResumeRequest struct {
	FullName          string   `json:"full_name" binding:"required,max=200,valid_name"`
	DesiredPosition   string   `json:"desired_position" binding:"required,max=200"`
	Location          string   `json:"location" binding:"max=150"`
	Phone             string   `json:"phone" binding:"omitempty,valid_phone"`
	Email             string   `json:"email" binding:"omitempty,email"`
	SalaryExpectation *float64 `json:"salary_expectation" binding:"omitempty,gte=0"`
	ExperienceYears   int      `json:"experience_years" binding:"gte=0,max=80"`
	About             string   `json:"about"`
	Skills            []string `json:"skills" binding:"omitempty,max=50,dive,required,max=100"`
	IsActive          *bool    `json:"is_active"`
	FileURL           *string  `json:"file_url" binding:"omitempty,url"`
}

type ResumePatchRequest struct {
	FullName          *string  `json:"full_name" binding:"omitempty,min=1,max=200,valid_name"`
	DesiredPosition   *string  `json:"desired_position" binding:"omitempty,min=1,max=200"`
	Location          *string  `json:"location" binding:"omitempty,max=150"`
	Phone             *string  `json:"phone" binding:"omitempty,valid_phone"`
	Email             *string  `json:"email" binding:"omitempty,email"`
	SalaryExpectation *float64 `json:"salary_expectation" binding:"omitempty,gte=0"`
	ExperienceYears   *int     `json:"experience_years" binding:"omitempty,gte=0,max=80"`
	About             *string  `json:"about"`
	Skills            []string `json:"skills" binding:"omitempty,max=50,dive,required,max=100"`
	IsActive          *bool    `json:"is_active"`
	FileURL           *string  `json:"file_url" binding:"omitempty,url"`
}

type ApplyRequest struct {
	ResumeID    *int64 `json:"resume_id" binding:"omitempty,gt=0"`
	CoverLetter string `json:"cover_letter" binding:"max=5000"`
}

func (r RegisterRequest) toInput() domain.RegisterInput {
	return domain.RegisterInput{
		Username:        r.Username,
		Email:           r.Email,
		Password:        r.Password,
		ConfirmPassword: r.ConfirmPassword,
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Role:            domain.Role(r.Role),
	}
}

func (r CompanyRequest) toDomain() *domain.Company {
	return &domain.Company{
		Name:        r.Name,
		Description: r.Description,
		Website:     r.Website,
		LogoURL:     r.LogoURL,
	}
}

// toUpdate turns a full replacement into an update that sets every field.
func (r CompanyRequest) toUpdate() domain.CompanyUpdate {
	return domain.CompanyUpdate{
		Name:        &r.Name,
		Description: &r.Description,
		Website:     &r.Website,
		LogoURL:     r.LogoURL,
	}
}

func (r CompanyPatchRequest) toUpdate() domain.CompanyUpdate {
	return domain.CompanyUpdate{
		Name:        r.Name,
		Description: r.Description,
		Website:     r.Website,
		LogoURL:     r.LogoURL,
	}
}

func (r VacancyRequest) toDomain() *domain.Vacancy {
	return &domain.Vacancy{
		Title:              r.Title,
		CompanyID:          r.CompanyID,
		Location:           r.Location,
		Description:        r.Description,
		Responsibilities:   r.Responsibilities,
		Requirements:       r.Requirements,
		SalaryFrom:         r.SalaryFrom,
		SalaryTo:           r.SalaryTo,
		Currency:           r.Currency,
		ShowSalary:         boolOr(r.ShowSalary, true),
		EmploymentType:     r.EmploymentType,
		WorkFormat:         r.WorkFormat,
		ExperienceRequired: r.ExperienceRequired,
		IsActive:           boolOr(r.IsActive, true),
	}
}

func (r VacancyPatchRequest) toUpdate() domain.VacancyUpdate {
	return domain.VacancyUpdate{
		Title:              r.Title,
		CompanyID:          r.CompanyID,
		Location:           r.Location,
		Description:        r.Description,
		Responsibilities:   r.Responsibilities,
		Requirements:       r.Requirements,
		SalaryFrom:         r.SalaryFrom.Value,
		SalaryTo:           r.SalaryTo.Value,
		ClearSalaryFrom:    r.SalaryFrom.Set && r.SalaryFrom.Value == nil,
		ClearSalaryTo:      r.SalaryTo.Set && r.SalaryTo.Value == nil,
		Currency:           r.Currency,
		ShowSalary:         r.ShowSalary,
		EmploymentType:     r.EmploymentType,
		WorkFormat:         r.WorkFormat,
		ExperienceRequired: r.ExperienceRequired,
		IsActive:           r.IsActive,
	}
}

func (r ResumeRequest) toDomain() *domain.Resume {
	return &domain.Resume{
		FullName:          r.FullName,
		DesiredPosition:   r.DesiredPosition,
		Location:          r.Location,
		Phone:             r.Phone,
		Email:             r.Email,
		SalaryExpectation: r.SalaryExpectation,
		ExperienceYears:   r.ExperienceYears,
		About:             r.About,
		Skills:            r.Skills,
		IsActive:          boolOr(r.IsActive, true),
		FileURL:           r.FileURL,
	}
}

// toUpdate turns a full replacement into an update that sets every field,
// including an empty skill set.
func (r ResumeRequest) toUpdate() domain.ResumeUpdate {
	skills := r.Skills
	if skills == nil {
		skills = []string{}
	}
	active := boolOr(r.IsActive, true)
	return domain.ResumeUpdate{
		FullName:          &r.FullName,
		DesiredPosition:   &r.DesiredPosition,
		Location:          &r.Location,
		Phone:             &r.Phone,
		Email:             &r.Email,
		SalaryExpectation: r.SalaryExpectation,
		ExperienceYears:   &r.ExperienceYears,
		About:             &r.About,
		Skills:            skills,
		IsActive:          &active,
		FileURL:           r.FileURL,
	}
}

func (r ResumePatchRequest) toUpdate() domain.ResumeUpdate {
	return domain.ResumeUpdate{
		FullName:          r.FullName,
		DesiredPosition:   r.DesiredPosition,
		Location:          r.Location,
		Phone:             r.Phone,
		Email:             r.Email,
		SalaryExpectation: r.SalaryExpectation,
		ExperienceYears:   r.ExperienceYears,
		About:             r.About,
		Skills:            r.Skills,
		IsActive:          r.IsActive,
		FileURL:           r.FileURL,
	}
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

// ==========================================
// Responses
// ==========================================

type UserResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

type TokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type CompanyResponse struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Website     string    `json:"website"`
	LogoURL     *string   `json:"logo_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CompanyDetailResponse struct {
	CompanyResponse
	Vacancies []VacancyResponse `json:"vacancies"`
}

type VacancyResponse struct {
	ID                 int64            `json:"id"`
	Title              string           `json:"title"`
	Company            *CompanyResponse `json:"company"`
	CompanyID          int64            `json:"company_id"`
	Location           string           `json:"location"`
	Description        string           `json:"description"`
	Responsibilities   string           `json:"responsibilities"`
	Requirements       string           `json:"requirements"`
	SalaryFrom         *float64         `json:"salary_from"`
	SalaryTo           *float64         `json:"salary_to"`
	Currency           string           `json:"currency"`
	ShowSalary         bool             `json:"show_salary"`
	EmploymentType     string           `json:"employment_type"`
	WorkFormat         string           `json:"work_format"`
	ExperienceRequired string           `json:"experience_required"`
	IsActive           bool             `json:"is_active"`
	Views              int64            `json:"views"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
	Author             string           `json:"author"`
	SalaryDisplay      string           `json:"salary_display"`
}

type ResumeResponse struct {
	ID                int64     `json:"id"`
	User              string    `json:"user"`
	FullName          string    `json:"full_name"`
	DesiredPosition   string    `json:"desired_position"`
	Location          string    `json:"location"`
	Phone             string    `json:"phone"`
	Email             string    `json:"email"`
	SalaryExpectation *float64  `json:"salary_expectation"`
	ExperienceYears   int       `json:"experience_years"`
	About             string    `json:"about"`
	Skills            []string  `json:"skills"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	FileURL           *string   `json:"file_url"`
}

type ResumeShortResponse struct {
	FullName string  `json:"full_name"`
	FileURL  *string `json:"file_url"`
}

type ApplicationResponse struct {
	ID          int64           `json:"id"`
	Applicant   string          `json:"applicant"`
	Vacancy     string          `json:"vacancy"`
	VacancyID   int64           `json:"vacancy_id"`
	Resume      *ResumeResponse `json:"resume"`
	CoverLetter string          `json:"cover_letter"`
	Status      string          `json:"status"`
	AppliedAt   time.Time       `json:"applied_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ApplicationCompactResponse is the seeker's own view of an application.
type ApplicationCompactResponse struct {
	ID           int64                `json:"id"`
	VacancyID    int64                `json:"vacancy_id"`
	VacancyTitle string               `json:"vacancy_title"`
	Status       string               `json:"status"`
	UpdatedAt    time.Time            `json:"updated_at"`
	Resume       *ResumeShortResponse `json:"resume"`
}

type FavoriteResponse struct {
	ID        int64            `json:"id"`
	VacancyID int64            `json:"vacancy_id"`
	Vacancy   *VacancyResponse `json:"vacancy"`
	AddedAt   time.Time        `json:"added_at"`
}

type SeekerProfileResponse struct {
	ID       int64           `json:"id"`
	Username string          `json:"username"`
	Email    string          `json:"email"`
	Role     string          `json:"role"`
	Resume   *ResumeResponse `json:"resume"`
}

type EmployerProfileResponse struct {
	ID           int64                 `json:"id"`
	Username     string                `json:"username"`
	Email        string                `json:"email"`
	Role         string                `json:"role"`
	Vacancies    []VacancyResponse     `json:"vacancies"`
	Applications []ApplicationResponse `json:"applications"`
}

func newUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.Role),
	}
}

func newCompanyResponse(c *domain.Company) *CompanyResponse {
	if c == nil {
		return nil
	}
	return &CompanyResponse{
		ID:          c.ID,
		OwnerID:     c.OwnerID,
		Name:        c.Name,
		Description: c.Description,
		Website:     c.Website,
		LogoURL:     c.LogoURL,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func newCompanyList(companies []domain.Company) []CompanyResponse {
	out := make([]CompanyResponse, 0, len(companies))
	for i := range companies {
		out = append(out, *newCompanyResponse(&companies[i]))
	}
	return out
}

func newVacancyResponse(v *domain.Vacancy) *VacancyResponse {
	if v == nil {
		return nil
	}
	return &VacancyResponse{
		ID:                 v.ID,
		Title:              v.Title,
		Company:            newCompanyResponse(v.Company),
		CompanyID:          v.CompanyID,
		Location:           v.Location,
		Description:        v.Description,
		Responsibilities:   v.Responsibilities,
		Requirements:       v.Requirements,
		SalaryFrom:         v.SalaryFrom,
		SalaryTo:           v.SalaryTo,
		Currency:           v.Currency,
		ShowSalary:         v.ShowSalary,
		EmploymentType:     v.EmploymentType,
		WorkFormat:         v.WorkFormat,
		ExperienceRequired: v.ExperienceRequired,
		IsActive:           v.IsActive,
		Views:              v.Views,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
		Author:             v.AuthorUsername,
		SalaryDisplay:      v.SalaryDisplay(),
	}
}

func newVacancyList(vacancies []domain.Vacancy) []VacancyResponse {
	out := make([]VacancyResponse, 0, len(vacancies))
	for i := range vacancies {
		out = append(out, *newVacancyResponse(&vacancies[i]))
	}
	return out
}

func newResumeResponse(r *domain.Resume) *ResumeResponse {
	if r == nil {
		return nil
	}
	skills := r.Skills
	if skills == nil {
		skills = []string{}
	}
	return &ResumeResponse{
		ID:                r.ID,
		User:              r.Username,
		FullName:          r.FullName,
		DesiredPosition:   r.DesiredPosition,
		Location:          r.Location,
		Phone:             r.Phone,
		Email:             r.Email,
		SalaryExpectation: r.SalaryExpectation,
		ExperienceYears:   r.ExperienceYears,
		About:             r.About,
		Skills:            skills,
		IsActive:          r.IsActive,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
		FileURL:           r.FileURL,
	}
}

func newResumeList(resumes []domain.Resume) []ResumeResponse {
	out := make([]ResumeResponse, 0, len(resumes))
	for i := range resumes {
		out = append(out, *newResumeResponse(&resumes[i]))
	}
	return out
}

func newApplicationResponse(a *domain.Application) *ApplicationResponse {
	return &ApplicationResponse{
		ID:          a.ID,
		Applicant:   a.ApplicantUsername,
		Vacancy:     a.VacancyTitle,
		VacancyID:   a.VacancyID,
		Resume:      newResumeResponse(a.Resume),
		CoverLetter: a.CoverLetter,
		Status:      string(a.Status),
		AppliedAt:   a.AppliedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func newApplicationList(apps []domain.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(apps))
	for i := range apps {
		out = append(out, *newApplicationResponse(&apps[i]))
	}
	return out
}

func newApplicationCompact(a *domain.Application) ApplicationCompactResponse {
	out := ApplicationCompactResponse{
		ID:           a.ID,
		VacancyID:    a.VacancyID,
		VacancyTitle: a.VacancyTitle,
		Status:       string(a.Status),
		UpdatedAt:    a.UpdatedAt,
	}
	if a.Resume != nil {
		out.Resume = &ResumeShortResponse{FullName: a.Resume.FullName, FileURL: a.Resume.FileURL}
	}
	return out
}

func newApplicationCompactList(apps []domain.Application) []ApplicationCompactResponse {
	out := make([]ApplicationCompactResponse, 0, len(apps))
	for i := range apps {
		out = append(out, newApplicationCompact(&apps[i]))
	}
	return out
}

func newFavoriteList(favorites []domain.Favorite) []FavoriteResponse {
	out := make([]FavoriteResponse, 0, len(favorites))
	for _, f := range favorites {
		out = append(out, FavoriteResponse{
			ID:        f.ID,
			VacancyID: f.VacancyID,
			Vacancy:   newVacancyResponse(f.Vacancy),
			AddedAt:   f.AddedAt,
		})
	}
	return out
}
