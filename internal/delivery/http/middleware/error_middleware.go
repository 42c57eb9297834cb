package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"job-board-backend/internal/delivery/http/response"
	"job-board-backend/pkg/apperror"
	"job-board-backend/pkg/security"
)

func ErrorHandler(l *slog.Logger, audit *security.AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) || appErr.Code >= http.StatusInternalServerError {
			// Never expose internal error details to clients.
			l.Error("internal server error", "request_id", requestID(c), "path", c.FullPath(), "error", err)
			response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			return
		}

		if appErr.Code == http.StatusForbidden {
			audit.Log(c.Request.Context(), security.AuditEvent{
				Event:     security.EventPermissionDenied,
				Subject:   principalSubject(PrincipalFrom(c)),
				IP:        c.ClientIP(),
				UserAgent: c.GetHeader("User-Agent"),
				RequestID: requestID(c),
				Path:      c.FullPath(),
				Reason:    appErr.Message,
			})
		}

		var detail interface{}
		if len(appErr.Fields) > 0 {
			detail = appErr.Fields
		}
		response.Error(c, appErr.Code, appErr.Message, detail)
	}
}
