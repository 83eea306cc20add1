// Package e2e provides end-to-end test infrastructure for the webhook receiver.
package e2e

import (
	"bytes"
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oracle/wls-alert-webhook/pkg/alert"
	"github.com/oracle/wls-alert-webhook/pkg/api"
	"github.com/oracle/wls-alert-webhook/pkg/config"
	"github.com/oracle/wls-alert-webhook/pkg/metrics"
)

// TestApp boots a real receiver on a loopback port.
type TestApp struct {
	Config *config.Config
	Server *api.Server
	Output *SyncBuffer

	// BaseURL is e.g. "http://127.0.0.1:54321"
	BaseURL string
}

// TestAppOption configures the test app.
type TestAppOption func(cfg *config.Config)

// WithoutContentLengthGuard runs the receiver in its unguarded mode.
func WithoutContentLengthGuard() TestAppOption {
	return func(cfg *config.Config) { cfg.Receiver.RequireContentLength = false }
}

// WithMaxBodyBytes sets the body size limit.
func WithMaxBodyBytes(n int64) TestAppOption {
	return func(cfg *config.Config) { cfg.Receiver.MaxBodyBytes = n }
}

// NewTestApp starts a receiver and stops it when the test ends.
func NewTestApp(t *testing.T, opts ...TestAppOption) *TestApp {
	t.Helper()

	cfg := config.DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	out := &SyncBuffer{}
	server := api.NewServer(cfg, alert.NewPrinter(out), metrics.NewRegistry(nil))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = server.Serve(ln)
	}()

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		require.NoError(t, server.Shutdown(ctx))
		<-done
	})

	return &TestApp{
		Config:  cfg,
		Server:  server,
		Output:  out,
		BaseURL: "http://" + ln.Addr().String(),
	}
}

// SyncBuffer is a bytes.Buffer safe to read while the server writes.
type SyncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *SyncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *SyncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
