package audit

import (
	"context"
	"testing"

	"github.com/geraldDev01/onboarding-dashboard/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStdoutLogger_Log(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := NewStdoutLogger(zap.New(core))

	ctx := contextutil.WithRequestID(context.Background(), "rid-1")
	ctx = contextutil.WithUserEmail(ctx, "admin@rebuhr.com")

	l.Log(ctx, AuditLog{
		Action:  ActionLogout,
		Message: "operator signed out",
		Meta:    map[string]any{"ip": "127.0.0.1"},
	})

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "audit", entries[0].LoggerName)
		assert.Equal(t, ActionLogout, fields["action"])
		assert.Equal(t, "rid-1", fields["request_id"])
		assert.Equal(t, "admin@rebuhr.com", fields["actor"])
	}
}
