package v1

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"job-board-backend/config"
	"job-board-backend/internal/delivery/http/middleware"
	"job-board-backend/internal/delivery/http/response"
	"job-board-backend/internal/domain"
	"job-board-backend/pkg/security"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	ProfileUC     domain.ProfileUsecase
	CompanyUC     domain.CompanyUsecase
	VacancyUC     domain.VacancyUsecase
	ResumeUC      domain.ResumeUsecase
	ApplicationUC domain.ApplicationUsecase
	FavoriteUC    domain.FavoriteUsecase
	Config        *config.Config
	Logger        *slog.Logger
	AuditLogger   *security.AuditLogger
	RateLimiter   *middleware.RateLimiter // nil disables rate limiting
	LoginTracker  *security.LoginTracker  // nil disables login lockout
	// HealthCheck reports storage readiness; nil means always healthy.
	HealthCheck func(ctx context.Context) error
}

func NewRouter(deps RouterDeps) *gin.Engine {
	registerValidators()
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL, gin.Mode() == gin.ReleaseMode)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler(deps.Logger, deps.AuditLogger))

	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second
	var authLimiter gin.HandlerFunc
	if deps.RateLimiter != nil {
		r.Use(deps.RateLimiter.Middleware(middleware.GlobalRateLimitConfig(deps.Config.RateLimitGlobalThreshold, window)))
		authLimiter = deps.RateLimiter.Middleware(middleware.AuthRateLimitConfig(deps.Config.RateLimitAuthThreshold, window))
	}

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		if deps.HealthCheck != nil {
			if err := deps.HealthCheck(c.Request.Context()); err != nil {
				deps.Logger.Error("health check failed", "error", err)
				response.Error(c, http.StatusServiceUnavailable, "Storage unavailable", nil)
				return
			}
		}
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Every route resolves the bearer token when one is sent.
	public := v1.Group("")
	public.Use(middleware.AuthMiddleware(deps.AuthUC, deps.AuditLogger))

	protected := public.Group("")
	protected.Use(middleware.RequireAuth(deps.AuditLogger))

	NewAuthHandler(public, protected, deps.AuthUC, deps.AuditLogger, deps.LoginTracker, authLimiter)
	NewProfileHandler(protected, deps.ProfileUC)
	NewCompanyHandler(public, protected, deps.CompanyUC)
	NewVacancyHandler(public, protected, deps.VacancyUC)
	NewResumeHandler(public, protected, deps.ResumeUC)
	NewApplicationHandler(protected, deps.ApplicationUC)
	NewFavoriteHandler(protected, deps.FavoriteUC)

	return r
}
