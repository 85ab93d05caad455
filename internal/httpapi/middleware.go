package httpapi

import (
	"net/http"
	"time"

	"github.com/alexanderramin/gradplan/internal/logging"
	"github.com/gin-gonic/gin"
)

// DefaultSkipPaths are polled often enough that logging them is noise.
var DefaultSkipPaths = []string{"/healthz", "/readyz", "/metrics"}

// RequestLogger logs one entry per request: 5xx at error, 4xx at warn and
// everything else at info.
func RequestLogger(log logging.Logger, skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]bool, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = true
	}
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if skip[path] {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []logging.Field{
			logging.String("method", c.Request.Method),
			logging.String("path", path),
			logging.Int("status", status),
			logging.Int64("duration_ms", time.Since(start).Milliseconds()),
			logging.Int("bytes", c.Writer.Size()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, logging.String("errors", c.Errors.String()))
		}

		switch {
		case status >= http.StatusInternalServerError:
			log.Error("http_request", fields...)
		case status >= http.StatusBadRequest:
			log.Warn("http_request", fields...)
		default:
			log.Info("http_request", fields...)
		}
	}
}
