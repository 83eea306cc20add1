package main

import (
	"bytes"
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oracle/wls-alert-webhook/pkg/alert"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func freePort(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	_, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	require.NoError(t, ln.Close())
	return port
}

func setupEnv(t *testing.T, port string) {
	t.Helper()
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	t.Setenv("CONFIG_DIR", "")
	t.Setenv("HTTP_PORT", port)
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")
}

func TestRunServesUntilCancelled(t *testing.T) {
	port := freePort(t)
	setupEnv(t, port)

	configDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "webhook.yaml"),
		[]byte("log:\n  level: debug\n  format: json\n"), 0o600))

	stdout := &lockedBuffer{}
	stderr := &lockedBuffer{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- run(ctx, []string{"-config-dir", configDir}, stdout, stderr) }()

	baseURL := "http://127.0.0.1:" + port
	require.Eventually(t, func() bool {
		resp, err := http.Get(baseURL + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	resp, err := http.Post(baseURL+"/", "application/json", strings.NewReader(`{"alerts":[{"foo":"bar"}]}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("run did not return after cancellation")
	}

	assert.Equal(t,
		"Webhook is serving at port "+port+"\n"+alert.AlertMarker+"\n{\n  \"foo\": \"bar\"\n}\n",
		stdout.String())

	// The second logging setup picked up the file's JSON format and level.
	logs := stderr.String()
	assert.Contains(t, logs, `"msg":"HTTP server listening"`)
	assert.Contains(t, logs, `"msg":"Handled request"`)
	assert.Contains(t, logs, `"msg":"Shutdown complete"`)
}

func TestRunRejectsInvalidConfiguration(t *testing.T) {
	setupEnv(t, "70000")

	stdout := &lockedBuffer{}
	err := run(context.Background(), []string{"-config-dir", t.TempDir()}, stdout, &lockedBuffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "initialize configuration")
	assert.Empty(t, stdout.String())
}

func TestRunRejectsUnknownFlag(t *testing.T) {
	setupEnv(t, freePort(t))

	err := run(context.Background(), []string{"-no-such-flag"}, &lockedBuffer{}, &lockedBuffer{})

	require.Error(t, err)
}
