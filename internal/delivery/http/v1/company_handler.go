package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"job-board-backend/internal/delivery/http/middleware"
	"job-board-backend/internal/delivery/http/response"
	"job-board-backend/internal/domain"
)

type CompanyHandler struct {
	companyUC domain.CompanyUsecase
}

func NewCompanyHandler(public, protected *gin.RouterGroup, companyUC domain.CompanyUsecase) {
	handler := &CompanyHandler{companyUC: companyUC}

	publicCompanies := public.Group("/companies")
	{
		publicCompanies.GET("", handler.List)
		publicCompanies.GET("/:id", handler.Get)
	}

	protectedCompanies := protected.Group("/companies")
	{
		protectedCompanies.POST("", handler.Create)
		protectedCompanies.PUT("/:id", handler.Replace)
		protectedCompanies.PATCH("/:id", handler.Update)
		protectedCompanies.DELETE("/:id", handler.Delete)
	}
}

// List godoc
// @Summary      List companies
// @Tags         companies
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /companies [get]
func (h *CompanyHandler) List(c *gin.Context) {
	companies, err := h.companyUC.ListCompanies(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Companies retrieved", gin.H{
		"companies": newCompanyList(companies),
		"total":     len(companies),
	})
}

// Get godoc
// @Summary      Company details
// @Description  A company together with its vacancies
// @Tags         companies
// @Produce      json
// @Param        id   path      int  true  "Company ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /companies/{id} [get]
func (h *CompanyHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	detail, err := h.companyUC.GetCompany(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Company retrieved", CompanyDetailResponse{
		CompanyResponse: *newCompanyResponse(detail.Company),
		Vacancies:       newVacancyList(detail.Vacancies),
	})
}

// Create godoc
// @Summary      Register a company
// @Description  Employer only
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        company  body      CompanyRequest  true  "Company JSON"
// @Success      201      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /companies [post]
// @Security     BearerAuth
func (h *CompanyHandler) Create(c *gin.Context) {
	var req CompanyRequest
	if !bindJSON(c, &req) {
		return
	}
	company := req.toDomain()
	if err := h.companyUC.CreateCompany(c.Request.Context(), middleware.PrincipalFrom(c), company); err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Company created", newCompanyResponse(company))
}

// Replace godoc
// @Summary      Replace a company
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        id       path      int             true  "Company ID"
// @Param        company  body      CompanyRequest  true  "Company JSON"
// @Success      200      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /companies/{id} [put]
// @Security     BearerAuth
func (h *CompanyHandler) Replace(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req CompanyRequest
	if !bindJSON(c, &req) {
		return
	}
	h.update(c, id, req.toUpdate())
}

// Update godoc
// @Summary      Partially update a company
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        id       path      int                  true  "Company ID"
// @Param        company  body      CompanyPatchRequest  true  "Fields to change"
// @Success      200      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /companies/{id} [patch]
// @Security     BearerAuth
func (h *CompanyHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req CompanyPatchRequest
	if !bindJSON(c, &req) {
		return
	}
	h.update(c, id, req.toUpdate())
}

func (h *CompanyHandler) update(c *gin.Context, id int64, upd domain.CompanyUpdate) {
	company, err := h.companyUC.UpdateCompany(c.Request.Context(), middleware.PrincipalFrom(c), id, upd)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Company updated", newCompanyResponse(company))
}

// Delete godoc
// @Summary      Delete a company
// @Description  Removes the company with its vacancies, their applications and favorites
// @Tags         companies
// @Param        id   path      int  true  "Company ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /companies/{id} [delete]
// @Security     BearerAuth
func (h *CompanyHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.companyUC.DeleteCompany(c.Request.Context(), middleware.PrincipalFrom(c), id); err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Company deleted", nil)
}
