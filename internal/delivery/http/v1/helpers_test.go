package v1_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"job-board-backend/config"
	v1 "job-board-backend/internal/delivery/http/v1"
	"job-board-backend/internal/repository/memory"
	"job-board-backend/internal/usecase"
	"job-board-backend/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// envelope mirrors response.Response with a lazily decoded payload.
type envelope struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	Data      json.RawMessage   `json:"data"`
	Error     map[string]string `json:"error"`
	RequestID string            `json:"request_id"`
}

type api struct {
	t      *testing.T
	router *gin.Engine
	store  *memory.Store
}

func newAPI(t *testing.T) *api {
	t.Helper()
	return newAPIWith(t, nil)
}

// newAPIWith lets a test adjust the router dependencies before wiring.
func newAPIWith(t *testing.T, adjust func(*v1.RouterDeps)) *api {
	t.Helper()
	store := memory.NewStore()
	issuer := auth.NewIssuer("handler-secret", "job-board-test", time.Minute, time.Hour)
	authUC := usecase.NewAuthUsecase(store.Users(), issuer, auth.NewMemoryBlacklist())

	deps := v1.RouterDeps{
		AuthUC:        authUC,
		ProfileUC:     usecase.NewProfileUsecase(store.Users(), store.Resumes(), store.Vacancies(), store.Applications()),
		CompanyUC:     usecase.NewCompanyUsecase(store.Companies(), store.Vacancies()),
		VacancyUC:     usecase.NewVacancyUsecase(store.Vacancies(), store.Companies()),
		ResumeUC:      usecase.NewResumeUsecase(store.Resumes()),
		ApplicationUC: usecase.NewApplicationUsecase(store.Applications(), store.Vacancies(), store.Resumes()),
		FavoriteUC:    usecase.NewFavoriteUsecase(store.Favorites(), store.Vacancies()),
		Config:        &config.Config{FrontendURL: "http://localhost:3000", RateLimitWindowSeconds: 60},
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if adjust != nil {
		adjust(&deps)
	}
	return &api{t: t, router: v1.NewRouter(deps), store: store}
}

func (a *api) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// expect asserts the status and decodes the payload into out when given.
func (a *api) expect(w *httptest.ResponseRecorder, status int, out interface{}) envelope {
	a.t.Helper()
	require.Equal(a.t, status, w.Code, w.Body.String())
	var env envelope
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env))
	if out != nil {
		require.NoError(a.t, json.Unmarshal(env.Data, out))
	}
	return env
}

// signup registers a user and returns an access token.
func (a *api) signup(username, role string) string {
	a.t.Helper()
	a.expect(a.do(http.MethodPost, "/v1/auth/register", "", gin.H{
		"username":         username,
		"email":            username + "@example.tj",
		"password":         "s3cret-pass",
		"confirm_password": "s3cret-pass",
		"role":             role,
	}), http.StatusCreated, nil)

	var tokens v1.TokenResponse
	a.expect(a.do(http.MethodPost, "/v1/auth/login", "", gin.H{
		"username": username,
		"password": "s3cret-pass",
	}), http.StatusOK, &tokens)
	return tokens.Access
}

func (a *api) company(token, name string) v1.CompanyResponse {
	a.t.Helper()
	var company v1.CompanyResponse
	a.expect(a.do(http.MethodPost, "/v1/companies", token, gin.H{"name": name}), http.StatusCreated, &company)
	return company
}

func (a *api) vacancy(token string, companyID int64, title string) v1.VacancyResponse {
	a.t.Helper()
	var vacancy v1.VacancyResponse
	a.expect(a.do(http.MethodPost, "/v1/vacancies", token, gin.H{
		"title":           title,
		"company_id":      companyID,
		"location":        "Dushanbe",
		"description":     "Build things",
		"salary_from":     1000,
		"salary_to":       2000,
		"employment_type": "full_time",
		"work_format":     "hybrid",
	}), http.StatusCreated, &vacancy)
	return vacancy
}

func path(format string, args ...interface{}) string {
	return fmt.Sprintf(format, args...)
}

func httptestRecorder() *httptest.ResponseRecorder {
	return httptest.NewRecorder()
}

func getRequest(target string) *http.Request {
	return httptest.NewRequest(http.MethodGet, target, nil)
}
