package v1

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"job-board-backend/internal/delivery/http/middleware"
	"job-board-backend/internal/delivery/http/response"
	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
)

type VacancyHandler struct {
	vacancyUC domain.VacancyUsecase
}

func NewVacancyHandler(public, protected *gin.RouterGroup, vacancyUC domain.VacancyUsecase) {
	handler := &VacancyHandler{vacancyUC: vacancyUC}

	publicVacancies := public.Group("/vacancies")
	{
		publicVacancies.GET("", handler.List)
		publicVacancies.GET("/:id", handler.Get)
	}

	protectedVacancies := protected.Group("/vacancies")
	{
		protectedVacancies.GET("/mine", handler.ListMine)
		protectedVacancies.POST("", handler.Create)
		protectedVacancies.PUT("/:id", handler.Replace)
		protectedVacancies.PATCH("/:id", handler.Update)
		protectedVacancies.DELETE("/:id", handler.Delete)
	}
}

// List godoc
// @Summary      List vacancies
// @Description  Newest first, optionally filtered by title substring and creation date
// @Tags         vacancies
// @Produce      json
// @Param        t          query     string  false  "Title contains (case-insensitive)"
// @Param        d          query     string  false  "Created on date (YYYY-MM-DD)"
// @Param        page       query     int     false  "Page number"
// @Param        page_size  query     int     false  "Page size"
// @Success      200        {object}  response.Response
// @Failure      400        {object}  response.Response
// @Router       /vacancies [get]
func (h *VacancyHandler) List(c *gin.Context) {
	filter := domain.VacancyFilter{Title: strings.TrimSpace(c.Query("t"))}
	if d := c.Query("d"); d != "" {
		day, err := time.Parse(time.DateOnly, d)
		if err != nil {
			_ = c.Error(apperror.FieldError("d", "Enter a valid date in YYYY-MM-DD format"))
			return
		}
		filter.Date = &day
	}

	// Unparsable paging is passed as zero and defaulted by the usecase.
	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("page_size"))
	result, err := h.vacancyUC.ListVacancies(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Vacancies retrieved", gin.H{
		"vacancies": newVacancyList(result.Vacancies),
		"total":     result.Total,
		"page":      result.Page,
		"page_size": result.PageSize,
	})
}

// ListMine godoc
// @Summary      List my vacancies
// @Description  Vacancies authored by the calling employer
// @Tags         vacancies
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /vacancies/mine [get]
// @Security     BearerAuth
func (h *VacancyHandler) ListMine(c *gin.Context) {
	vacancies, err := h.vacancyUC.ListMyVacancies(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Vacancies retrieved", gin.H{
		"vacancies": newVacancyList(vacancies),
		"total":     len(vacancies),
	})
}

// Get godoc
// @Summary      Vacancy details
// @Description  Every successful read counts as a view
// @Tags         vacancies
// @Produce      json
// @Param        id   path      int  true  "Vacancy ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /vacancies/{id} [get]
func (h *VacancyHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	vacancy, err := h.vacancyUC.RetrieveVacancy(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Vacancy retrieved", newVacancyResponse(vacancy))
}

// Create godoc
// @Summary      Create a vacancy
// @Description  Employer only
// @Tags         vacancies
// @Accept       json
// @Produce      json
// @Param        vacancy  body      VacancyRequest  true  "Vacancy JSON"
// @Success      201      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /vacancies [post]
// @Security     BearerAuth
func (h *VacancyHandler) Create(c *gin.Context) {
	var req VacancyRequest
	if !bindJSON(c, &req) {
		return
	}
	vacancy := req.toDomain()
	if err := h.vacancyUC.CreateVacancy(c.Request.Context(), middleware.PrincipalFrom(c), vacancy); err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Vacancy created", newVacancyResponse(vacancy))
}

// Replace godoc
// @Summary      Replace a vacancy
// @Tags         vacancies
// @Accept       json
// @Produce      json
// @Param        id       path      int             true  "Vacancy ID"
// @Param        vacancy  body      VacancyRequest  true  "Vacancy JSON"
// @Success      200      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /vacancies/{id} [put]
// @Security     BearerAuth
func (h *VacancyHandler) Replace(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req VacancyRequest
	if !bindJSON(c, &req) {
		return
	}
	vacancy, err := h.vacancyUC.ReplaceVacancy(c.Request.Context(), middleware.PrincipalFrom(c), id, req.toDomain())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Vacancy updated", newVacancyResponse(vacancy))
}

// Update godoc
// @Summary      Partially update a vacancy
// @Tags         vacancies
// @Accept       json
// @Produce      json
// @Param        id       path      int                  true  "Vacancy ID"
// @Param        vacancy  body      VacancyPatchRequest  true  "Fields to change"
// @Success      200      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /vacancies/{id} [patch]
// @Security     BearerAuth
func (h *VacancyHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req VacancyPatchRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := checkSalaryBounds(req); err != nil {
		_ = c.Error(err)
		return
	}
	vacancy, err := h.vacancyUC.UpdateVacancy(c.Request.Context(), middleware.PrincipalFrom(c), id, req.toUpdate())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Vacancy updated", newVacancyResponse(vacancy))
}

// Delete godoc
// @Summary      Delete a vacancy
// @Description  Removes the vacancy with its applications and favorites
// @Tags         vacancies
// @Param        id   path      int  true  "Vacancy ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /vacancies/{id} [delete]
// @Security     BearerAuth
func (h *VacancyHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.vacancyUC.DeleteVacancy(c.Request.Context(), middleware.PrincipalFrom(c), id); err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Vacancy deleted", nil)
}

// checkSalaryBounds covers the nullable salary fields the binding tags
// cannot reach.
func checkSalaryBounds(req VacancyPatchRequest) error {
	if v := req.SalaryFrom.Value; v != nil && *v < 0 {
		return apperror.FieldError("salary_from", "Must be greater than or equal to 0")
	}
	if v := req.SalaryTo.Value; v != nil && *v < 0 {
		return apperror.FieldError("salary_to", "Must be greater than or equal to 0")
	}
	return nil
}
