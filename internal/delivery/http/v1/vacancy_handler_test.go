package v1_test

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "job-board-backend/internal/delivery/http/v1"
)

type vacancyPage struct {
	Vacancies []v1.VacancyResponse `json:"vacancies"`
	Total     int64                `json:"total"`
	Page      int                  `json:"page"`
	PageSize  int                  `json:"page_size"`
}

func TestVacancyCreate(t *testing.T) {
	a := newAPI(t)
	employer := a.signup("acme-hr", "employer")
	seeker := a.signup("dilshod", "seeker")
	company := a.company(employer, "Acme")

	body := gin.H{
		"title":           "Go developer",
		"company_id":      company.ID,
		"location":        "Dushanbe",
		"description":     "Build things",
		"employment_type": "full_time",
		"work_format":     "remote",
	}

	t.Run("anonymous", func(t *testing.T) {
		a.expect(a.do(http.MethodPost, "/v1/vacancies", "", body), http.StatusUnauthorized, nil)
	})

	t.Run("seeker", func(t *testing.T) {
		env := a.expect(a.do(http.MethodPost, "/v1/vacancies", seeker, body), http.StatusForbidden, nil)
		assert.Equal(t, "Only employers can create vacancies", env.Message)
	})

	t.Run("unknown company", func(t *testing.T) {
		bad := gin.H{}
		for k, v := range body {
			bad[k] = v
		}
		bad["company_id"] = 999
		env := a.expect(a.do(http.MethodPost, "/v1/vacancies", employer, bad), http.StatusBadRequest, nil)
		assert.Contains(t, env.Error, "company_id")
	})

	t.Run("invalid enum", func(t *testing.T) {
		bad := gin.H{}
		for k, v := range body {
			bad[k] = v
		}
		bad["work_format"] = "moon"
		env := a.expect(a.do(http.MethodPost, "/v1/vacancies", employer, bad), http.StatusBadRequest, nil)
		assert.Contains(t, env.Error, "work_format")
	})

	t.Run("employer", func(t *testing.T) {
		var v v1.VacancyResponse
		a.expect(a.do(http.MethodPost, "/v1/vacancies", employer, body), http.StatusCreated, &v)
		assert.Equal(t, "acme-hr", v.Author)
		assert.Equal(t, "TJS", v.Currency)
		assert.Equal(t, "no_exp", v.ExperienceRequired)
		assert.True(t, v.ShowSalary)
		assert.True(t, v.IsActive)
		assert.Zero(t, v.Views)
		assert.Equal(t, "Not specified", v.SalaryDisplay)
		require.NotNil(t, v.Company)
		assert.Equal(t, "Acme", v.Company.Name)
	})
}

func TestVacancyRetrieveCountsViews(t *testing.T) {
	a := newAPI(t)
	employer := a.signup("acme-hr", "employer")
	v := a.vacancy(employer, a.company(employer, "Acme").ID, "Go developer")
	assert.Equal(t, "1000 – 2000 TJS", v.SalaryDisplay)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.router.ServeHTTP(httptestRecorder(), getRequest(path("/v1/vacancies/%d", v.ID)))
		}()
	}
	wg.Wait()

	var got v1.VacancyResponse
	a.expect(a.do(http.MethodGet, path("/v1/vacancies/%d", v.ID), "", nil), http.StatusOK, &got)
	assert.EqualValues(t, n+1, got.Views)

	a.expect(a.do(http.MethodGet, "/v1/vacancies/999", "", nil), http.StatusNotFound, nil)
	a.expect(a.do(http.MethodGet, "/v1/vacancies/abc", "", nil), http.StatusBadRequest, nil)
}

func TestVacancyList(t *testing.T) {
	a := newAPI(t)
	employer := a.signup("acme-hr", "employer")
	companyID := a.company(employer, "Acme").ID
	a.vacancy(employer, companyID, "Senior Go developer")
	a.vacancy(employer, companyID, "Accountant")
	newest := a.vacancy(employer, companyID, "Junior golang engineer")

	t.Run("newest first", func(t *testing.T) {
		var page vacancyPage
		a.expect(a.do(http.MethodGet, "/v1/vacancies", "", nil), http.StatusOK, &page)
		require.Len(t, page.Vacancies, 3)
		assert.Equal(t, newest.ID, page.Vacancies[0].ID)
		assert.EqualValues(t, 3, page.Total)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 20, page.PageSize)
	})

	t.Run("title filter", func(t *testing.T) {
		var page vacancyPage
		a.expect(a.do(http.MethodGet, "/v1/vacancies?t=GO", "", nil), http.StatusOK, &page)
		assert.Len(t, page.Vacancies, 2)
	})

	t.Run("date filter", func(t *testing.T) {
		var page vacancyPage
		today := time.Now().UTC().Format(time.DateOnly)
		a.expect(a.do(http.MethodGet, "/v1/vacancies?d="+today, "", nil), http.StatusOK, &page)
		assert.Len(t, page.Vacancies, 3)

		a.expect(a.do(http.MethodGet, "/v1/vacancies?d=2001-01-01", "", nil), http.StatusOK, &page)
		assert.Empty(t, page.Vacancies)
	})

	t.Run("malformed date", func(t *testing.T) {
		env := a.expect(a.do(http.MethodGet, "/v1/vacancies?d=01/02/2024", "", nil), http.StatusBadRequest, nil)
		assert.Contains(t, env.Error, "d")
	})

	t.Run("pagination", func(t *testing.T) {
		var page vacancyPage
		a.expect(a.do(http.MethodGet, "/v1/vacancies?page=2&page_size=2", "", nil), http.StatusOK, &page)
		assert.Len(t, page.Vacancies, 1)
		assert.EqualValues(t, 3, page.Total)
		assert.Equal(t, 2, page.Page)
	})

	t.Run("pagination reports the applied values", func(t *testing.T) {
		var page vacancyPage
		a.expect(a.do(http.MethodGet, "/v1/vacancies?page=abc&page_size=500", "", nil), http.StatusOK, &page)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 100, page.PageSize)
		assert.Len(t, page.Vacancies, 3)
	})

	t.Run("invalid token on public route", func(t *testing.T) {
		a.expect(a.do(http.MethodGet, "/v1/vacancies", "forged", nil), http.StatusUnauthorized, nil)
	})

	t.Run("mine", func(t *testing.T) {
		other := a.signup("other-hr", "employer")
		var mine struct {
			Vacancies []v1.VacancyResponse `json:"vacancies"`
		}
		a.expect(a.do(http.MethodGet, "/v1/vacancies/mine", employer, nil), http.StatusOK, &mine)
		assert.Len(t, mine.Vacancies, 3)
		a.expect(a.do(http.MethodGet, "/v1/vacancies/mine", other, nil), http.StatusOK, &mine)
		assert.Empty(t, mine.Vacancies)
	})
}

func TestVacancyUpdate(t *testing.T) {
	a := newAPI(t)
	employer := a.signup("acme-hr", "employer")
	rival := a.signup("rival-hr", "employer")
	companyID := a.company(employer, "Acme").ID
	v := a.vacancy(employer, companyID, "Go developer")
	url := path("/v1/vacancies/%d", v.ID)

	t.Run("patch clears a salary bound", func(t *testing.T) {
		var got v1.VacancyResponse
		a.expect(a.do(http.MethodPatch, url, employer, gin.H{"salary_to": nil, "title": "Lead Go developer"}), http.StatusOK, &got)
		assert.Equal(t, "Lead Go developer", got.Title)
		assert.Nil(t, got.SalaryTo)
		assert.Equal(t, "from 1000 TJS", got.SalaryDisplay)
		assert.Equal(t, "acme-hr", got.Author)
	})

	t.Run("patch hides salary", func(t *testing.T) {
		var got v1.VacancyResponse
		a.expect(a.do(http.MethodPatch, url, employer, gin.H{"show_salary": false}), http.StatusOK, &got)
		assert.Equal(t, "By agreement", got.SalaryDisplay)
	})

	t.Run("put replaces", func(t *testing.T) {
		var got v1.VacancyResponse
		a.expect(a.do(http.MethodPut, url, employer, gin.H{
			"title":           "Go developer",
			"company_id":      companyID,
			"location":        "Khujand",
			"description":     "Rewritten",
			"salary_to":       3000.5,
			"currency":        "USD",
			"employment_type": "contract",
			"work_format":     "on_site",
		}), http.StatusOK, &got)
		assert.Equal(t, "Khujand", got.Location)
		assert.Nil(t, got.SalaryFrom)
		assert.Equal(t, "up to 3000.5 USD", got.SalaryDisplay)
		assert.Equal(t, v.CreatedAt.Unix(), got.CreatedAt.Unix())
	})

	t.Run("salary range", func(t *testing.T) {
		env := a.expect(a.do(http.MethodPatch, url, employer, gin.H{"salary_from": 5000}), http.StatusBadRequest, nil)
		assert.Contains(t, env.Error, "salary_to")
	})

	t.Run("not the author", func(t *testing.T) {
		env := a.expect(a.do(http.MethodPatch, url, rival, gin.H{"title": "Mine now"}), http.StatusForbidden, nil)
		assert.Equal(t, "You can only edit your own vacancies", env.Message)
		a.expect(a.do(http.MethodDelete, url, rival, nil), http.StatusForbidden, nil)
	})

	t.Run("missing", func(t *testing.T) {
		a.expect(a.do(http.MethodPatch, "/v1/vacancies/999", employer, gin.H{"title": "x"}), http.StatusNotFound, nil)
	})
}

func TestVacancyDeleteCascades(t *testing.T) {
	a := newAPI(t)
	employer := a.signup("acme-hr", "employer")
	seeker := a.signup("dilshod", "seeker")
	v := a.vacancy(employer, a.company(employer, "Acme").ID, "Go developer")

	var app v1.ApplicationResponse
	a.expect(a.do(http.MethodPost, path("/v1/vacancies/%d/apply", v.ID), seeker, nil), http.StatusCreated, &app)
	a.expect(a.do(http.MethodPost, path("/v1/vacancies/%d/favorite", v.ID), seeker, nil), http.StatusCreated, nil)

	a.expect(a.do(http.MethodDelete, path("/v1/vacancies/%d", v.ID), employer, nil), http.StatusOK, nil)

	a.expect(a.do(http.MethodGet, path("/v1/vacancies/%d", v.ID), "", nil), http.StatusNotFound, nil)
	a.expect(a.do(http.MethodGet, path("/v1/applications/%d", app.ID), seeker, nil), http.StatusNotFound, nil)

	var favorites struct {
		Favorites []v1.FavoriteResponse `json:"favorites"`
	}
	a.expect(a.do(http.MethodGet, "/v1/favorites", seeker, nil), http.StatusOK, &favorites)
	assert.Empty(t, favorites.Favorites)
}
