package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/oracle/wls-alert-webhook/pkg/alert"
	"github.com/oracle/wls-alert-webhook/pkg/metrics"
)

// ErrBodyTooLarge indicates a webhook body exceeded receiver.max_body_bytes.
var ErrBodyTooLarge = errors.New("request body exceeds size limit")

// receiveHandler handles POST on any path.
//
// The response is always 200 with an empty body, decided before the
// payload is examined. Payload problems are logged server-side only. The
// header is not flushed early: net/http sends 100 Continue on the first
// body read only while no response has been written.
func (s *Server) receiveHandler(c *gin.Context) {
	start := time.Now()

	c.Status(http.StatusOK)
	c.Set(statusFixedKey, true)

	kind, count, err := s.receive(c)
	if err != nil {
		requestLogger(c).Warn("Dropped webhook payload",
			"kind", kind,
			"content_type", c.ContentType(),
			"error", err)
		kind = metrics.KindFailed
	}
	s.monitor.Observe(kind, count, time.Since(start))
}

// receive runs one branch of the receiver and reports which branch ran and
// how many alerts were printed.
func (s *Server) receive(c *gin.Context) (string, int, error) {
	if !strings.EqualFold(c.ContentType(), binding.MIMEJSON) {
		return metrics.KindNonJSON, 0, s.printer.PrintNonJSON()
	}

	if c.GetHeader("Content-Length") == "" && s.cfg.Receiver.RequireContentLength {
		return metrics.KindMissingLength, 0, s.printer.PrintMissingLength()
	}

	body, err := s.readBody(c)
	if err != nil {
		return metrics.KindAlertPayload, 0, err
	}

	alerts, err := alert.ExtractAlerts(body)
	if err != nil {
		return metrics.KindAlertPayload, 0, err
	}
	if err := s.printer.PrintAlerts(alerts); err != nil {
		return metrics.KindAlertPayload, 0, err
	}

	requestLogger(c).Debug("Printed alerts", "count", len(alerts))
	return metrics.KindAlertPayload, len(alerts), nil
}

// readBody reads the declared body. net/http already stops at
// Content-Length; the size cap guards bodies of unknown length.
func (s *Server) readBody(c *gin.Context) ([]byte, error) {
	limit := s.cfg.Receiver.MaxBodyBytes
	if c.Request.ContentLength > limit {
		return nil, fmt.Errorf("%w: declared %d bytes, limit %d", ErrBodyTooLarge, c.Request.ContentLength, limit)
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, limit))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("%w: limit %d", ErrBodyTooLarge, limit)
		}
		return nil, fmt.Errorf("read request body: %w", err)
	}
	return body, nil
}

// unsupportedMethodHandler answers anything that is neither a receiver
// POST nor a known GET endpoint.
func unsupportedMethodHandler(c *gin.Context) {
	c.String(http.StatusNotImplemented, "Unsupported method ('%s')", c.Request.Method)
}
