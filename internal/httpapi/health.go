package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/alexanderramin/gradplan/internal/contract"
	"github.com/gin-gonic/gin"
)

const checkTimeout = 2 * time.Second

// HealthChecker reports whether one dependency is usable.
type HealthChecker interface {
	Name() string
	Check(ctx context.Context) error
}

type checkFunc struct {
	name string
	fn   func(ctx context.Context) error
}

func (c checkFunc) Name() string                    { return c.name }
func (c checkFunc) Check(ctx context.Context) error { return c.fn(ctx) }

// NewCheck adapts fn, for example (*sql.DB).PingContext.
func NewCheck(name string, fn func(ctx context.Context) error) HealthChecker {
	return checkFunc{name: name, fn: fn}
}

type healthHandler struct {
	checkers []HealthChecker
	version  string
}

// liveness never looks at dependencies.
func (h *healthHandler) liveness(c *gin.Context) {
	c.JSON(http.StatusOK, contract.HealthResponse{Status: "ok", Version: h.version})
}

// readiness answers 503 when any checker fails.
func (h *healthHandler) readiness(c *gin.Context) {
	resp := contract.HealthResponse{Status: "ok", Version: h.version, Components: map[string]string{}}
	status := http.StatusOK
	for _, chk := range h.checkers {
		ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
		err := chk.Check(ctx)
		cancel()
		if err != nil {
			resp.Components[chk.Name()] = err.Error()
			resp.Status = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Components[chk.Name()] = "ok"
	}
	c.JSON(status, resp)
}
