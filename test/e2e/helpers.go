package e2e

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// PostJSON sends body with a Content-Length, as Alertmanager does.
func (app *TestApp) PostJSON(t *testing.T, body string) *http.Response {
	t.Helper()
	return app.post(t, "application/json", strings.NewReader(body))
}

// PostChunked sends body with chunked transfer encoding, so the request
// carries no Content-Length header.
func (app *TestApp) PostChunked(t *testing.T, body string) *http.Response {
	t.Helper()
	// Wrapping hides the length from net/http, which then chunks.
	return app.post(t, "application/json", io.MultiReader(strings.NewReader(body)))
}

// Post sends body with the given content type.
func (app *TestApp) Post(t *testing.T, contentType, body string) *http.Response {
	t.Helper()
	return app.post(t, contentType, strings.NewReader(body))
}

func (app *TestApp) post(t *testing.T, contentType string, body io.Reader) *http.Response {
	t.Helper()
	resp, err := http.Post(app.BaseURL+"/", contentType, body)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

// ReadBody returns the response body.
func ReadBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}
