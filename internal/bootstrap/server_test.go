package bootstrap_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/geraldDev01/onboarding-dashboard/internal/bootstrap"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/audit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingAudit struct {
	mu      sync.Mutex
	actions []string
}

func (a *recordingAudit) Log(_ context.Context, entry audit.AuditLog) {
	a.mu.Lock()
	a.actions = append(a.actions, entry.Action)
	a.mu.Unlock()
}

func TestServe_GracefulShutdown(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})

	ctx, cancel := context.WithCancel(context.Background())
	rec := &recordingAudit{}
	done := make(chan error, 1)
	go func() {
		done <- bootstrap.Serve(ctx, lis, handler, bootstrap.ServerConfig{ShutdownTimeout: time.Second}, rec)
	}()

	resp, err := http.Get("http://" + lis.Addr().String())
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.Equal(t, []string{audit.ActionServerShutdown}, rec.actions)
}

func TestStartHTTPServer_PortInUse(t *testing.T) {
	lis, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer lis.Close()

	_, port, err := net.SplitHostPort(lis.Addr().String())
	require.NoError(t, err)

	err = bootstrap.StartHTTPServer(context.Background(), http.NotFoundHandler(), bootstrap.ServerConfig{Port: port}, audit.Nop{})
	assert.Error(t, err)
}
