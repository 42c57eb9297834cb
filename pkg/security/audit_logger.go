package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of audit event
type EventType string

const (
	EventLoginFailed        EventType = "login_failed"
	EventLoginSuccess       EventType = "login_success"
	EventLoginBlocked       EventType = "login_blocked"
	EventLogout             EventType = "logout"
	EventRegistered         EventType = "registered"
	EventUnauthorizedAccess EventType = "unauthorized_access"
	EventPermissionDenied   EventType = "permission_denied"
	EventRateLimitTriggered EventType = "rate_limit_triggered"
)

// AuditEvent is one entry of the authentication/authorization trail.
type AuditEvent struct {
	Event     EventType
	Subject   string // username or user id, hashed before logging
	IP        string
	UserAgent string
	RequestID string
	Path      string
	Reason    string
}

// AuditLogger writes the security trail through zap, separate from the
// application log so it can be shipped and retained on its own.
type AuditLogger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

// NewAuditLogger builds a production zap logger writing JSON to stdout.
func NewAuditLogger(serviceName, environment string) *AuditLogger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.MessageKey = "message"
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build()
	if err != nil {
		logger = zap.NewNop()
	}
	return NewAuditLoggerWith(logger, serviceName, environment)
}

// NewAuditLoggerWith wraps an existing zap logger.
func NewAuditLoggerWith(logger *zap.Logger, serviceName, environment string) *AuditLogger {
	return &AuditLogger{zapLogger: logger, serviceName: serviceName, environment: environment}
}

func (l *AuditLogger) Log(_ context.Context, event AuditEvent) {
	if l == nil {
		return
	}

	level := zapcore.WarnLevel
	switch event.Event {
	case EventLoginSuccess, EventLogout, EventRegistered:
		level = zapcore.InfoLevel
	case EventUnauthorizedAccess:
		level = zapcore.ErrorLevel
	}

	fields := []zap.Field{
		zap.String("service", l.serviceName),
		zap.String("env", l.environment),
		zap.String("event", string(event.Event)),
		zap.Time("at", time.Now().UTC()),
	}
	if event.Subject != "" {
		fields = append(fields, zap.String("subject", HashValue(event.Subject)))
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if event.UserAgent != "" {
		fields = append(fields, zap.String("user_agent", event.UserAgent))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if event.Path != "" {
		fields = append(fields, zap.String("path", event.Path))
	}
	if event.Reason != "" {
		fields = append(fields, zap.String("reason", event.Reason))
	}

	l.zapLogger.Log(level, string(event.Event), fields...)
}

// Sync flushes any buffered log entries
func (l *AuditLogger) Sync() error {
	if l == nil {
		return nil
	}
	return l.zapLogger.Sync()
}

// HashValue creates a short SHA256 digest so subjects can be correlated
// without writing usernames into the log.
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(strings.ToLower(value)))
	return hex.EncodeToString(hash[:8])
}
