package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"job-board-backend/internal/delivery/http/response"
	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
	"job-board-backend/pkg/security"
)

// AuthMiddleware resolves the bearer token into a principal. Requests
// without a token continue as anonymous; a token that does not verify is
// rejected outright.
func AuthMiddleware(authUC domain.AuthUsecase, audit *security.AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			rejectUnauthorized(c, audit, "Authorization header must be: Bearer <token>", "malformed_header")
			return
		}

		principal, err := authUC.Authenticate(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			var appErr *apperror.AppError
			if errors.As(err, &appErr) && appErr.Code == http.StatusUnauthorized {
				rejectUnauthorized(c, audit, appErr.Message, "invalid_token")
				return
			}
			_ = c.Error(err)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyPrincipal), principal)
		c.Next()
	}
}

// RequireAuth rejects anonymous requests. Mount it after AuthMiddleware.
func RequireAuth(audit *security.AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !PrincipalFrom(c).IsAuthenticated() {
			rejectUnauthorized(c, audit, "Authentication credentials were not provided", "missing_token")
			return
		}
		c.Next()
	}
}

// PrincipalFrom returns the caller resolved by AuthMiddleware, or the
// anonymous principal.
func PrincipalFrom(c *gin.Context) domain.Principal {
	v, ok := c.Get(string(domain.KeyPrincipal))
	if !ok {
		return domain.Principal{}
	}
	p, _ := v.(domain.Principal)
	return p
}

func rejectUnauthorized(c *gin.Context, audit *security.AuditLogger, message, reason string) {
	audit.Log(c.Request.Context(), security.AuditEvent{
		Event:     security.EventUnauthorizedAccess,
		IP:        c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
		RequestID: requestID(c),
		Path:      c.FullPath(),
		Reason:    reason,
	})
	response.Error(c, http.StatusUnauthorized, message, nil)
	c.Abort()
}

func principalSubject(p domain.Principal) string {
	if !p.IsAuthenticated() {
		return ""
	}
	return strconv.FormatInt(p.ID, 10)
}
