package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"job-board-backend/internal/delivery/http/middleware"
	"job-board-backend/internal/delivery/http/response"
	"job-board-backend/internal/domain"
)

type ApplicationHandler struct {
	appUC domain.ApplicationUsecase
}

func NewApplicationHandler(protected *gin.RouterGroup, appUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{appUC: appUC}

	protected.POST("/vacancies/:id/apply", handler.Apply)

	apps := protected.Group("/applications")
	{
		apps.GET("", handler.List)
		apps.GET("/:id", handler.Get)
		apps.POST("/:id/review", handler.Review)
		apps.POST("/:id/accept", handler.Accept)
		apps.POST("/:id/reject", handler.Reject)
	}
}

// Apply godoc
// @Summary      Apply for a vacancy
// @Description  Seeker only, once per vacancy. The resume, when given, must be the applicant's own.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id           path      int           true   "Vacancy ID"
// @Param        application  body      ApplyRequest  false  "Application JSON"
// @Success      201          {object}  response.Response
// @Failure      400          {object}  response.Response
// @Failure      403          {object}  response.Response
// @Failure      404          {object}  response.Response
// @Failure      409          {object}  response.Response
// @Router       /vacancies/{id}/apply [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Apply(c *gin.Context) {
	vacancyID, ok := pathID(c)
	if !ok {
		return
	}
	var req ApplyRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	app, err := h.appUC.CreateApplication(c.Request.Context(), middleware.PrincipalFrom(c), vacancyID, domain.ApplicationInput{
		ResumeID:    req.ResumeID,
		CoverLetter: req.CoverLetter,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Application submitted", newApplicationResponse(app))
}

// List godoc
// @Summary      List my applications
// @Description  Seekers get their own applications in compact form; employers get the applications to their vacancies
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) List(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	apps, err := h.appUC.ListMyApplications(c.Request.Context(), p)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var items interface{}
	if p.Role == domain.RoleEmployer {
		items = newApplicationList(apps)
	} else {
		items = newApplicationCompactList(apps)
	}
	response.Success(c, http.StatusOK, "Applications retrieved", gin.H{
		"applications": items,
		"total":        len(apps),
	})
}

// Get godoc
// @Summary      Application details
// @Description  Visible to the applicant and to the vacancy author
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Application ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/{id} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	app, err := h.appUC.GetApplication(c.Request.Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application retrieved", newApplicationResponse(app))
}

// Review godoc
// @Summary      Mark an application reviewed
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Application ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /applications/{id}/review [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Review(c *gin.Context) {
	h.transition(c, h.appUC.MarkReviewed)
}

// Accept godoc
// @Summary      Accept an application
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Application ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /applications/{id}/accept [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Accept(c *gin.Context) {
	h.transition(c, h.appUC.MarkAccepted)
}

// Reject godoc
// @Summary      Reject an application
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Application ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /applications/{id}/reject [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Reject(c *gin.Context) {
	h.transition(c, h.appUC.MarkRejected)
}

type transitionFunc func(ctx context.Context, p domain.Principal, id int64) (*domain.Application, error)

func (h *ApplicationHandler) transition(c *gin.Context, mark transitionFunc) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	app, err := mark(c.Request.Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application status updated", newApplicationResponse(app))
}
