package v1_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "job-board-backend/internal/delivery/http/v1"
)

func TestCompanyHandlers(t *testing.T) {
	a := newAPI(t)
	employer := a.signup("acme-hr", "employer")
	rival := a.signup("rival-hr", "employer")
	seeker := a.signup("dilshod", "seeker")

	a.expect(a.do(http.MethodPost, "/v1/companies", seeker, gin.H{"name": "Nope"}), http.StatusForbidden, nil)
	a.expect(a.do(http.MethodPost, "/v1/companies", employer, gin.H{"name": "Acme", "website": "not a url"}), http.StatusBadRequest, nil)

	company := a.company(employer, "Acme")
	a.expect(a.do(http.MethodPost, "/v1/companies", rival, gin.H{"name": "Acme"}), http.StatusConflict, nil)
	a.vacancy(employer, company.ID, "Go developer")

	url := path("/v1/companies/%d", company.ID)

	t.Run("list and detail", func(t *testing.T) {
		var list struct {
			Companies []v1.CompanyResponse `json:"companies"`
		}
		a.expect(a.do(http.MethodGet, "/v1/companies", "", nil), http.StatusOK, &list)
		assert.Len(t, list.Companies, 1)

		var detail v1.CompanyDetailResponse
		a.expect(a.do(http.MethodGet, url, "", nil), http.StatusOK, &detail)
		assert.Equal(t, "Acme", detail.Name)
		assert.Len(t, detail.Vacancies, 1)
	})

	t.Run("update", func(t *testing.T) {
		a.expect(a.do(http.MethodPatch, url, rival, gin.H{"name": "Taken"}), http.StatusForbidden, nil)

		var got v1.CompanyResponse
		a.expect(a.do(http.MethodPatch, url, employer, gin.H{"website": "https://acme.tj"}), http.StatusOK, &got)
		assert.Equal(t, "Acme", got.Name)
		assert.Equal(t, "https://acme.tj", got.Website)

		a.expect(a.do(http.MethodPut, url, employer, gin.H{"name": "Acme Group"}), http.StatusOK, &got)
		assert.Equal(t, "Acme Group", got.Name)
		assert.Empty(t, got.Website)
	})

	t.Run("delete cascades vacancies", func(t *testing.T) {
		a.expect(a.do(http.MethodDelete, url, employer, nil), http.StatusOK, nil)
		a.expect(a.do(http.MethodGet, url, "", nil), http.StatusNotFound, nil)

		var page vacancyPage
		a.expect(a.do(http.MethodGet, "/v1/vacancies", "", nil), http.StatusOK, &page)
		require.NotNil(t, page.Vacancies)
		assert.Empty(t, page.Vacancies)
	})
}
