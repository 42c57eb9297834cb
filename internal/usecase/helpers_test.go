package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"job-board-backend/internal/domain"
	"job-board-backend/internal/repository/memory"
	"job-board-backend/internal/usecase"
	"job-board-backend/pkg/apperror"
	"job-board-backend/pkg/auth"
)

func ptr[T any](v T) *T { return &v }

func requireAppError(t *testing.T, err error, code int) *apperror.AppError {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code, appErr.Message)
	return appErr
}

// world wires every usecase to one memory store.
type world struct {
	store        *memory.Store
	auth         domain.AuthUsecase
	companies    domain.CompanyUsecase
	vacancies    domain.VacancyUsecase
	resumes      domain.ResumeUsecase
	applications domain.ApplicationUsecase
	favorites    domain.FavoriteUsecase
	profiles     domain.ProfileUsecase

	employer domain.Principal
	seeker   domain.Principal
	company  *domain.Company
}

func newWorld(t *testing.T) *world {
	t.Helper()
	store := memory.NewStore()
	issuer := auth.NewIssuer("test-secret", "job-board-test", time.Minute, time.Hour)

	w := &world{
		store:        store,
		auth:         usecase.NewAuthUsecase(store.Users(), issuer, auth.NewMemoryBlacklist()),
		companies:    usecase.NewCompanyUsecase(store.Companies(), store.Vacancies()),
		vacancies:    usecase.NewVacancyUsecase(store.Vacancies(), store.Companies()),
		resumes:      usecase.NewResumeUsecase(store.Resumes()),
		applications: usecase.NewApplicationUsecase(store.Applications(), store.Vacancies(), store.Resumes()),
		favorites:    usecase.NewFavoriteUsecase(store.Favorites(), store.Vacancies()),
		profiles:     usecase.NewProfileUsecase(store.Users(), store.Resumes(), store.Vacancies(), store.Applications()),
	}

	w.employer = w.register(t, "acme-hr", domain.RoleEmployer)
	w.seeker = w.register(t, "dilshod", domain.RoleSeeker)

	w.company = &domain.Company{Name: "Acme"}
	require.NoError(t, w.companies.CreateCompany(context.Background(), w.employer, w.company))
	return w
}

func (w *world) register(t *testing.T, username string, role domain.Role) domain.Principal {
	t.Helper()
	user, err := w.auth.Register(context.Background(), domain.RegisterInput{
		Username:        username,
		Password:        "s3cret-pass",
		ConfirmPassword: "s3cret-pass",
		Role:            role,
	})
	require.NoError(t, err)
	return user.Principal()
}

func (w *world) vacancy(t *testing.T, author domain.Principal, title string) *domain.Vacancy {
	t.Helper()
	v := &domain.Vacancy{
		Title:          title,
		CompanyID:      w.company.ID,
		Location:       "Dushanbe",
		Description:    "Build things",
		ShowSalary:     true,
		EmploymentType: domain.EmploymentFullTime,
		WorkFormat:     domain.WorkFormatHybrid,
		IsActive:       true,
	}
	require.NoError(t, w.vacancies.CreateVacancy(context.Background(), author, v))
	return v
}

type MockVacancyRepo struct {
	mock.Mock
}

func (m *MockVacancyRepo) Create(ctx context.Context, v *domain.Vacancy) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockVacancyRepo) GetByID(ctx context.Context, id int64) (*domain.Vacancy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vacancy), args.Error(1)
}

func (m *MockVacancyRepo) IncrementViews(ctx context.Context, id int64) (*domain.Vacancy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vacancy), args.Error(1)
}

func (m *MockVacancyRepo) Fetch(ctx context.Context, f domain.VacancyFilter) ([]domain.Vacancy, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Vacancy), args.Get(1).(int64), args.Error(2)
}

func (m *MockVacancyRepo) FetchByAuthor(ctx context.Context, authorID int64) ([]domain.Vacancy, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).([]domain.Vacancy), args.Error(1)
}

func (m *MockVacancyRepo) FetchByCompany(ctx context.Context, companyID int64) ([]domain.Vacancy, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).([]domain.Vacancy), args.Error(1)
}

func (m *MockVacancyRepo) Update(ctx context.Context, v *domain.Vacancy) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockVacancyRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockCompanyRepo struct {
	mock.Mock
}

func (m *MockCompanyRepo) Create(ctx context.Context, c *domain.Company) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCompanyRepo) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepo) Fetch(ctx context.Context) ([]domain.Company, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Company), args.Error(1)
}

func (m *MockCompanyRepo) Update(ctx context.Context, c *domain.Company) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCompanyRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockFavoriteRepo struct {
	mock.Mock
}

func (m *MockFavoriteRepo) Add(ctx context.Context, userID, vacancyID int64) (*domain.Favorite, error) {
	args := m.Called(ctx, userID, vacancyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Favorite), args.Error(1)
}

func (m *MockFavoriteRepo) Remove(ctx context.Context, userID, vacancyID int64) (bool, error) {
	args := m.Called(ctx, userID, vacancyID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepo) Exists(ctx context.Context, userID, vacancyID int64) (bool, error) {
	args := m.Called(ctx, userID, vacancyID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepo) FetchByUser(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Favorite), args.Error(1)
}
