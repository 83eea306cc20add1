package api

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-Id"

	// statusFixedKey marks a response whose status must survive a panic.
	statusFixedKey = "status_fixed"
)

// requestLogging tags each request with an ID (the caller's X-Request-Id
// when present) and logs one debug line once it has been handled. The ID
// is never echoed back: receiver responses carry no custom headers.
func requestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)

		start := time.Now()
		c.Next()

		requestLogger(c).Debug("Handled request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

// recovery turns a handler panic into a logged error. A status already
// sent or fixed by the handler is left alone, so a receiver panic still
// yields 200.
func recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			if r == http.ErrAbortHandler {
				panic(r)
			}
			requestLogger(c).Error("Recovered from handler panic",
				"panic", r,
				"stack", string(debug.Stack()))
			if c.Writer.Written() || c.GetBool(statusFixedKey) {
				c.Abort()
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
		}()
		c.Next()
	}
}

// requestLogger returns the default logger annotated with the request ID.
func requestLogger(c *gin.Context) *slog.Logger {
	return slog.With(requestIDKey, c.GetString(requestIDKey))
}
