package v1

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"job-board-backend/internal/delivery/http/middleware"
	"job-board-backend/internal/delivery/http/response"
	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
	"job-board-backend/pkg/security"
)

type AuthHandler struct {
	authUC  domain.AuthUsecase
	audit   *security.AuditLogger
	tracker *security.LoginTracker
}

// NewAuthHandler registers the auth routes. limiter guards the credential
// endpoints; limiter and tracker may be nil.
func NewAuthHandler(public, protected *gin.RouterGroup, authUC domain.AuthUsecase, audit *security.AuditLogger, tracker *security.LoginTracker, limiter gin.HandlerFunc) {
	handler := &AuthHandler{authUC: authUC, audit: audit, tracker: tracker}

	publicAuth := public.Group("/auth")
	if limiter != nil {
		publicAuth.Use(limiter)
	}
	{
		publicAuth.POST("/register", handler.Register)
		publicAuth.POST("/login", handler.Login)
		publicAuth.POST("/refresh", handler.Refresh)
		publicAuth.POST("/logout", handler.Logout)
	}

	protected.GET("/auth/me", handler.Me)
}

// Register godoc
// @Summary      User Registration
// @Description  Register a seeker or employer account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        register  body      RegisterRequest  true  "Registration Details"
// @Success      201       {object}  response.Response
// @Failure      400       {object}  response.Response
// @Failure      409       {object}  response.Response
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authUC.Register(c.Request.Context(), req.toInput())
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.auditEvent(c, security.EventRegistered, user.Username, "")
	response.Success(c, http.StatusCreated, "Registration successful", newUserResponse(user))
}

// Login godoc
// @Summary      User Login
// @Description  Exchange username and password for an access/refresh token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login  body      LoginRequest  true  "Login Credentials"
// @Success      200    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Failure      429    {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()

	// Lockout is best effort: a Redis failure lets the attempt through.
	if ttl, err := h.tracker.BlockedFor(ctx, req.Username); err == nil && ttl > 0 {
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(ttl.Seconds()))))
		_ = c.Error(apperror.TooManyRequests(fmt.Sprintf("Too many failed login attempts. Try again in %d minutes.", int(math.Ceil(ttl.Minutes())))))
		return
	}

	tokens, err := h.authUC.Login(ctx, req.Username, req.Password)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == http.StatusBadRequest {
			h.auditEvent(c, security.EventLoginFailed, req.Username, "invalid_credentials")
			_, _ = h.tracker.RecordFailure(ctx, req.Username, h.event(c, ""))
		}
		_ = c.Error(err)
		return
	}

	_ = h.tracker.Clear(ctx, req.Username)
	h.auditEvent(c, security.EventLoginSuccess, req.Username, "")
	response.Success(c, http.StatusOK, "Login successful", TokenResponse{Access: tokens.Access, Refresh: tokens.Refresh})
}

// Refresh godoc
// @Summary      Refresh tokens
// @Description  Rotate a refresh token into a new token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        token  body      TokenRequest  true  "Refresh token"
// @Success      200    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req TokenRequest
	if !bindJSON(c, &req) {
		return
	}

	tokens, err := h.authUC.Refresh(c.Request.Context(), req.Token)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Token refreshed", TokenResponse{Access: tokens.Access, Refresh: tokens.Refresh})
}

// Logout godoc
// @Summary      Logout
// @Description  Blacklist a refresh token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        token  body      TokenRequest  true  "Refresh token"
// @Success      205    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	var req TokenRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authUC.Logout(c.Request.Context(), req.Token); err != nil {
		_ = c.Error(err)
		return
	}

	h.auditEvent(c, security.EventLogout, "", "")
	response.Success(c, http.StatusResetContent, "User logged out", nil)
}

// Me godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authUC.GetCurrentUser(c.Request.Context(), middleware.PrincipalFrom(c).ID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Current user", newUserResponse(user))
}

func (h *AuthHandler) auditEvent(c *gin.Context, event security.EventType, subject, reason string) {
	if subject == "" {
		if p := middleware.PrincipalFrom(c); p.IsAuthenticated() {
			subject = strconv.FormatInt(p.ID, 10)
		}
	}
	ev := h.event(c, subject)
	ev.Event = event
	ev.Reason = reason
	h.audit.Log(c.Request.Context(), ev)
}

func (h *AuthHandler) event(c *gin.Context, subject string) security.AuditEvent {
	return security.AuditEvent{
		Subject:   subject,
		IP:        c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
		RequestID: c.GetString(string(domain.KeyRequestID)),
		Path:      c.FullPath(),
	}
}
