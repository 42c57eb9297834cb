package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"job-board-backend/internal/delivery/http/middleware"
	"job-board-backend/internal/delivery/http/response"
	"job-board-backend/internal/domain"
)

type ProfileHandler struct {
	profileUC domain.ProfileUsecase
}

func NewProfileHandler(protected *gin.RouterGroup, profileUC domain.ProfileUsecase) {
	handler := &ProfileHandler{profileUC: profileUC}
	protected.GET("/profile", handler.Get)
}

// Get godoc
// @Summary      Current user's profile
// @Description  Seekers get their resume; employers get their vacancies and the applications they received
// @Tags         profile
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /profile [get]
// @Security     BearerAuth
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profileUC.GetProfile(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	user := profile.User
	if user.Role == domain.RoleEmployer {
		response.Success(c, http.StatusOK, "Profile retrieved", EmployerProfileResponse{
			ID:           user.ID,
			Username:     user.Username,
			Email:        user.Email,
			Role:         string(user.Role),
			Vacancies:    newVacancyList(profile.Vacancies),
			Applications: newApplicationList(profile.Applications),
		})
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved", SeekerProfileResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     string(user.Role),
		Resume:   newResumeResponse(profile.Resume),
	})
}
