package audit

import (
	"context"
	"time"

	"github.com/geraldDev01/onboarding-dashboard/internal/shared/contextutil"

	"go.uber.org/zap"
)

const (
	ActionLoginSucceeded   = "LOGIN_SUCCEEDED"
	ActionLoginFailed      = "LOGIN_FAILED"
	ActionLogout           = "LOGOUT"
	ActionEmployeeCreated  = "EMPLOYEE_CREATED"
	ActionEmployeeAnnounce = "EMPLOYEE_ANNOUNCED"
	ActionServerShutdown   = "SERVER_SHUTDOWN"
)

type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type Logger interface {
	Log(ctx context.Context, entry AuditLog)
}

// StdoutLogger writes audit entries as structured zap records.
type StdoutLogger struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewStdoutLogger(logger ...*zap.Logger) *StdoutLogger {
	l := zap.L().Named("audit")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit")
	}
	return &StdoutLogger{logger: l, now: time.Now}
}

func (l *StdoutLogger) Log(ctx context.Context, entry AuditLog) {
	meta := contextutil.ExtractMetadata(ctx)
	l.logger.Info("audit event",
		zap.String("timestamp", l.now().UTC().Format(time.RFC3339)),
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
		zap.String("request_id", meta.RequestID),
		zap.String("actor", meta.UserEmail),
		zap.Any("meta", entry.Meta),
	)
}

// Nop discards every entry.
type Nop struct{}

func (Nop) Log(context.Context, AuditLog) {}
