package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"job-board-backend/internal/delivery/http/middleware"
	"job-board-backend/internal/delivery/http/response"
	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
)

type ResumeHandler struct {
	resumeUC domain.ResumeUsecase
}

func NewResumeHandler(public, protected *gin.RouterGroup, resumeUC domain.ResumeUsecase) {
	handler := &ResumeHandler{resumeUC: resumeUC}

	publicResumes := public.Group("/resumes")
	{
		publicResumes.GET("", handler.List)
		publicResumes.GET("/:id", handler.Get)
	}

	protectedResumes := protected.Group("/resumes")
	{
		protectedResumes.POST("", handler.Create)
		protectedResumes.PUT("/:id", handler.Replace)
		protectedResumes.PATCH("/:id", handler.Update)
		protectedResumes.DELETE("/:id", handler.Delete)
	}
}

// List godoc
// @Summary      List resumes
// @Description  Active resumes by default, newest first
// @Tags         resumes
// @Produce      json
// @Param        active  query     string  false  "true (default), false or all"
// @Param        skill   query     string  false  "Exact skill name (case-insensitive)"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Router       /resumes [get]
func (h *ResumeHandler) List(c *gin.Context) {
	filter := domain.ResumeFilter{Skill: strings.TrimSpace(c.Query("skill"))}

	switch strings.ToLower(c.DefaultQuery("active", "true")) {
	case "true", "1":
		active := true
		filter.Active = &active
	case "false", "0":
		active := false
		filter.Active = &active
	case "all":
	default:
		_ = c.Error(apperror.FieldError("active", "Must be one of: true, false, all"))
		return
	}

	resumes, err := h.resumeUC.ListResumes(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Resumes retrieved", gin.H{
		"resumes": newResumeList(resumes),
		"total":   len(resumes),
	})
}

// Get godoc
// @Summary      Resume details
// @Tags         resumes
// @Produce      json
// @Param        id   path      int  true  "Resume ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /resumes/{id} [get]
func (h *ResumeHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resume, err := h.resumeUC.RetrieveResume(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Resume retrieved", newResumeResponse(resume))
}

// Create godoc
// @Summary      Create my resume
// @Description  Seeker only, one resume per user
// @Tags         resumes
// @Accept       json
// @Produce      json
// @Param        resume  body      ResumeRequest  true  "Resume JSON"
// @Success      201     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      409     {object}  response.Response
// @Router       /resumes [post]
// @Security     BearerAuth
func (h *ResumeHandler) Create(c *gin.Context) {
	var req ResumeRequest
	if !bindJSON(c, &req) {
		return
	}
	resume := req.toDomain()
	if err := h.resumeUC.CreateResume(c.Request.Context(), middleware.PrincipalFrom(c), resume); err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Resume created", newResumeResponse(resume))
}

// Replace godoc
// @Summary      Replace my resume
// @Tags         resumes
// @Accept       json
// @Produce      json
// @Param        id      path      int            true  "Resume ID"
// @Param        resume  body      ResumeRequest  true  "Resume JSON"
// @Success      200     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Router       /resumes/{id} [put]
// @Security     BearerAuth
func (h *ResumeHandler) Replace(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req ResumeRequest
	if !bindJSON(c, &req) {
		return
	}
	h.update(c, id, req.toUpdate())
}

// Update godoc
// @Summary      Partially update my resume
// @Description  Sending skills replaces the whole skill set
// @Tags         resumes
// @Accept       json
// @Produce      json
// @Param        id      path      int                 true  "Resume ID"
// @Param        resume  body      ResumePatchRequest  true  "Fields to change"
// @Success      200     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Router       /resumes/{id} [patch]
// @Security     BearerAuth
func (h *ResumeHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req ResumePatchRequest
	if !bindJSON(c, &req) {
		return
	}
	h.update(c, id, req.toUpdate())
}

func (h *ResumeHandler) update(c *gin.Context, id int64, upd domain.ResumeUpdate) {
	resume, err := h.resumeUC.UpdateResume(c.Request.Context(), middleware.PrincipalFrom(c), id, upd)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Resume updated", newResumeResponse(resume))
}

// Delete godoc
// @Summary      Delete my resume
// @Description  Applications that referenced it keep existing without a resume
// @Tags         resumes
// @Param        id   path      int  true  "Resume ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /resumes/{id} [delete]
// @Security     BearerAuth
func (h *ResumeHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.resumeUC.DeleteResume(c.Request.Context(), middleware.PrincipalFrom(c), id); err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Resume deleted", nil)
}
