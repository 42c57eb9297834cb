package usecase

import (
	"context"
	"errors"

	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type vacancyUsecase struct {
	vacancyRepo domain.VacancyRepository
	companyRepo domain.CompanyRepository
}

func NewVacancyUsecase(vacancyRepo domain.VacancyRepository, companyRepo domain.CompanyRepository) domain.VacancyUsecase {
	return &vacancyUsecase{
		vacancyRepo: vacancyRepo,
		companyRepo: companyRepo,
	}
}

func (u *vacancyUsecase) ListVacancies(ctx context.Context, filter domain.VacancyFilter, page, pageSize int) (*domain.VacancyPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	filter.Limit = pageSize
	filter.Offset = (page - 1) * pageSize

	vacancies, total, err := u.vacancyRepo.Fetch(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.VacancyPage{Vacancies: vacancies, Total: total, Page: page, PageSize: pageSize}, nil
}

func (u *vacancyUsecase) ListMyVacancies(ctx context.Context, p domain.Principal) ([]domain.Vacancy, error) {
	if err := requireAuth(p); err != nil {
		return nil, err
	}
	if p.Role != domain.RoleEmployer {
		return nil, apperror.Forbidden("Only employers have vacancies")
	}
	vacancies, err := u.vacancyRepo.FetchByAuthor(ctx, p.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return vacancies, nil
}

func (u *vacancyUsecase) CreateVacancy(ctx context.Context, p domain.Principal, vacancy *domain.Vacancy) error {
	if err := requireAuth(p); err != nil {
		return err
	}
	if !domain.CanCreate(p, domain.KindVacancy) {
		return apperror.Forbidden("Only employers can create vacancies")
	}

	applyVacancyDefaults(vacancy)
	if err := u.validate(ctx, vacancy); err != nil {
		return err
	}

	vacancy.AuthorID = p.ID
	vacancy.Views = 0
	if err := u.vacancyRepo.Create(ctx, vacancy); err != nil {
		return u.writeError(err)
	}

	// Re-read for joined company and author data.
	created, err := u.vacancyRepo.GetByID(ctx, vacancy.ID)
	if err != nil {
		return storeError(err, "Vacancy not found")
	}
	*vacancy = *created
	return nil
}

// RetrieveVacancy counts every successful read as a view.
func (u *vacancyUsecase) RetrieveVacancy(ctx context.Context, id int64) (*domain.Vacancy, error) {
	vacancy, err := u.vacancyRepo.IncrementViews(ctx, id)
	if err != nil {
		return nil, storeError(err, "Vacancy not found")
	}
	return vacancy, nil
}

func (u *vacancyUsecase) UpdateVacancy(ctx context.Context, p domain.Principal, id int64, upd domain.VacancyUpdate) (*domain.Vacancy, error) {
	vacancy, err := u.ownedVacancy(ctx, p, id, "You can only edit your own vacancies")
	if err != nil {
		return nil, err
	}
	upd.Apply(vacancy)
	return u.save(ctx, vacancy)
}

func (u *vacancyUsecase) ReplaceVacancy(ctx context.Context, p domain.Principal, id int64, replacement *domain.Vacancy) (*domain.Vacancy, error) {
	current, err := u.ownedVacancy(ctx, p, id, "You can only edit your own vacancies")
	if err != nil {
		return nil, err
	}

	next := *replacement
	next.ID = current.ID
	next.AuthorID = current.AuthorID
	next.Views = current.Views
	next.CreatedAt = current.CreatedAt
	applyVacancyDefaults(&next)
	return u.save(ctx, &next)
}

func (u *vacancyUsecase) DeleteVacancy(ctx context.Context, p domain.Principal, id int64) error {
	if _, err := u.ownedVacancy(ctx, p, id, "You can only delete your own vacancies"); err != nil {
		return err
	}
	if err := u.vacancyRepo.Delete(ctx, id); err != nil {
		return storeError(err, "Vacancy not found")
	}
	return nil
}

func (u *vacancyUsecase) ownedVacancy(ctx context.Context, p domain.Principal, id int64, denied string) (*domain.Vacancy, error) {
	if err := requireAuth(p); err != nil {
		return nil, err
	}
	vacancy, err := u.vacancyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Vacancy not found")
	}
	if !domain.CanMutate(p, vacancy.AuthorID) {
		return nil, apperror.Forbidden(denied)
	}
	return vacancy, nil
}

func (u *vacancyUsecase) save(ctx context.Context, vacancy *domain.Vacancy) (*domain.Vacancy, error) {
	if err := u.validate(ctx, vacancy); err != nil {
		return nil, err
	}
	if err := u.vacancyRepo.Update(ctx, vacancy); err != nil {
		return nil, u.writeError(err)
	}
	updated, err := u.vacancyRepo.GetByID(ctx, vacancy.ID)
	if err != nil {
		return nil, storeError(err, "Vacancy not found")
	}
	return updated, nil
}

func (u *vacancyUsecase) validate(ctx context.Context, vacancy *domain.Vacancy) error {
	if vacancy.SalaryFrom != nil && vacancy.SalaryTo != nil &&
		*vacancy.SalaryTo != 0 && *vacancy.SalaryFrom > *vacancy.SalaryTo {
		return apperror.FieldError("salary_to", "Must be greater than or equal to salary_from")
	}
	if _, err := u.companyRepo.GetByID(ctx, vacancy.CompanyID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.FieldError("company_id", "Company does not exist")
		}
		return apperror.Internal(err)
	}
	return nil
}

// writeError maps a failed write; a missing reference at this point means
// the company vanished between validation and the write.
func (u *vacancyUsecase) writeError(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.FieldError("company_id", "Company does not exist")
	}
	return apperror.Internal(err)
}

func applyVacancyDefaults(v *domain.Vacancy) {
	if v.Currency == "" {
		v.Currency = domain.DefaultCurrency
	}
	if v.ExperienceRequired == "" {
		v.ExperienceRequired = domain.DefaultExperience
	}
}
