package logger

import (
	"go.uber.org/zap"

	"github.com/kiangasgaryishere/Booka-frontendd/domain"
)

// ZapAuditLogger implements domain.AuditLogger on a structured logger.
type ZapAuditLogger struct {
	logger *zap.Logger
}

// NewAuditLogger creates an audit logger writing through zap.
func NewAuditLogger(logger *zap.Logger) domain.AuditLogger {
	return &ZapAuditLogger{logger: logger.Named("audit")}
}

// LogEvent implements domain.AuditLogger
func (a *ZapAuditLogger) LogEvent(event *domain.AuditEvent) {
	fields := []zap.Field{
		zap.String("event_type", string(event.EventType)),
		zap.Bool("success", event.Success),
		zap.Time("timestamp", event.Timestamp),
	}
	if event.ProfileID != "" {
		fields = append(fields, zap.String("profile_id", event.ProfileID))
	}
	if event.Contact != "" {
		fields = append(fields, zap.String("contact", event.Contact))
	}
	if event.Step != "" {
		fields = append(fields, zap.String("step", string(event.Step)))
	}
	if event.SessionID != "" {
		fields = append(fields, zap.String("session_id", event.SessionID))
	}
	if event.ErrorMsg != "" {
		fields = append(fields, zap.String("error", event.ErrorMsg))
	}

	if event.Success {
		a.logger.Info(string(event.EventType), fields...)
		return
	}
	a.logger.Warn(string(event.EventType), fields...)
}
