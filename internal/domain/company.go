package domain

import (
	"context"
	"time"
)

type Company struct {
	ID          int64
	OwnerID     int64
	Name        string
	Description string
	Website     string
	LogoURL     *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CompanyDetail is a company together with the vacancies it posts.
type CompanyDetail struct {
	Company   *Company
	Vacancies []Vacancy
}

// CompanyUpdate carries the fields to change. Nil means unchanged.
type CompanyUpdate struct {
	Name        *string
	Description *string
	Website     *string
	LogoURL     *string
}

type CompanyRepository interface {
	Create(ctx context.Context, company *Company) error
	GetByID(ctx context.Context, id int64) (*Company, error)
	Fetch(ctx context.Context) ([]Company, error)
	Update(ctx context.Context, company *Company) error
	// Delete removes the company with its vacancies and everything that
	// references them.
	Delete(ctx context.Context, id int64) error
}

type CompanyUsecase interface {
	ListCompanies(ctx context.Context) ([]Company, error)
	GetCompany(ctx context.Context, id int64) (*CompanyDetail, error)
	CreateCompany(ctx context.Context, p Principal, company *Company) error
	UpdateCompany(ctx context.Context, p Principal, id int64, upd CompanyUpdate) (*Company, error)
	DeleteCompany(ctx context.Context, p Principal, id int64) error
}
