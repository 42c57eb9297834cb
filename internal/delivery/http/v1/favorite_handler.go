package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"job-board-backend/internal/delivery/http/middleware"
	"job-board-backend/internal/delivery/http/response"
	"job-board-backend/internal/domain"
)

type FavoriteHandler struct {
	favoriteUC domain.FavoriteUsecase
}

func NewFavoriteHandler(protected *gin.RouterGroup, favoriteUC domain.FavoriteUsecase) {
	handler := &FavoriteHandler{favoriteUC: favoriteUC}

	protected.POST("/vacancies/:id/favorite", handler.Toggle)
	protected.GET("/favorites", handler.List)
}

// Toggle godoc
// @Summary      Toggle a favorite vacancy
// @Description  Adds the vacancy to the seeker's favorites, or removes it when already there
// @Tags         favorites
// @Produce      json
// @Param        id   path      int  true  "Vacancy ID"
// @Success      200  {object}  response.Response  "Removed"
// @Success      201  {object}  response.Response  "Added"
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /vacancies/{id}/favorite [post]
// @Security     BearerAuth
func (h *FavoriteHandler) Toggle(c *gin.Context) {
	vacancyID, ok := pathID(c)
	if !ok {
		return
	}
	result, err := h.favoriteUC.ToggleFavorite(c.Request.Context(), middleware.PrincipalFrom(c), vacancyID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if result == domain.FavoriteRemoved {
		response.Success(c, http.StatusOK, "Removed from favorites", gin.H{"status": result})
		return
	}
	response.Success(c, http.StatusCreated, "Added to favorites", gin.H{"status": result})
}

// List godoc
// @Summary      List my favorites
// @Tags         favorites
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /favorites [get]
// @Security     BearerAuth
func (h *FavoriteHandler) List(c *gin.Context) {
	favorites, err := h.favoriteUC.ListFavorites(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Favorites retrieved", gin.H{
		"favorites": newFavoriteList(favorites),
		"total":     len(favorites),
	})
}
