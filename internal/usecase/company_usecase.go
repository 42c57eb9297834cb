package usecase

import (
	"context"
	"errors"
	"strings"

	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
)

type companyUsecase struct {
	companyRepo domain.CompanyRepository
	vacancyRepo domain.VacancyRepository
}

func NewCompanyUsecase(companyRepo domain.CompanyRepository, vacancyRepo domain.VacancyRepository) domain.CompanyUsecase {
	return &companyUsecase{
		companyRepo: companyRepo,
		vacancyRepo: vacancyRepo,
	}
}

func (u *companyUsecase) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	companies, err := u.companyRepo.Fetch(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return companies, nil
}

func (u *companyUsecase) GetCompany(ctx context.Context, id int64) (*domain.CompanyDetail, error) {
	company, err := u.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Company not found")
	}
	vacancies, err := u.vacancyRepo.FetchByCompany(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.CompanyDetail{Company: company, Vacancies: vacancies}, nil
}

func (u *companyUsecase) CreateCompany(ctx context.Context, p domain.Principal, company *domain.Company) error {
	if err := requireAuth(p); err != nil {
		return err
	}
	if !domain.CanCreate(p, domain.KindCompany) {
		return apperror.Forbidden("Only employers can register companies")
	}

	company.OwnerID = p.ID
	company.Name = strings.TrimSpace(company.Name)
	if err := u.companyRepo.Create(ctx, company); err != nil {
		return companyWriteError(err)
	}
	return nil
}

func (u *companyUsecase) UpdateCompany(ctx context.Context, p domain.Principal, id int64, upd domain.CompanyUpdate) (*domain.Company, error) {
	company, err := u.ownedCompany(ctx, p, id, "You can only edit your own company")
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		company.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Description != nil {
		company.Description = *upd.Description
	}
	if upd.Website != nil {
		company.Website = *upd.Website
	}
	if upd.LogoURL != nil {
		company.LogoURL = upd.LogoURL
	}

	if err := u.companyRepo.Update(ctx, company); err != nil {
		return nil, companyWriteError(err)
	}
	return company, nil
}

func (u *companyUsecase) DeleteCompany(ctx context.Context, p domain.Principal, id int64) error {
	if _, err := u.ownedCompany(ctx, p, id, "You can only delete your own company"); err != nil {
		return err
	}
	if err := u.companyRepo.Delete(ctx, id); err != nil {
		return storeError(err, "Company not found")
	}
	return nil
}

func (u *companyUsecase) ownedCompany(ctx context.Context, p domain.Principal, id int64, denied string) (*domain.Company, error) {
	if err := requireAuth(p); err != nil {
		return nil, err
	}
	company, err := u.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Company not found")
	}
	if !domain.CanMutate(p, company.OwnerID) {
		return nil, apperror.Forbidden(denied)
	}
	return company, nil
}

func companyWriteError(err error) error {
	if errors.Is(err, domain.ErrConflict) {
		return apperror.Conflict("Company with this name already exists")
	}
	return storeError(err, "Company not found")
}
