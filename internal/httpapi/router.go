// Package httpapi serves the planning use cases over HTTP with gin.
package httpapi

import (
	"net/http"

	"github.com/alexanderramin/gradplan/internal/app"
	"github.com/alexanderramin/gradplan/internal/logging"
	"github.com/gin-gonic/gin"
)

// RouterConfig aggregates the use cases and infrastructure the routes need.
// A nil use case leaves its routes unmounted.
type RouterConfig struct {
	Plans     app.PlanUseCase
	Timelines app.TimelineUseCase
	History   app.HistoryUseCase

	// Metrics is served at /metrics when set.
	Metrics  http.Handler
	Checkers []HealthChecker

	Logger  logging.Logger
	Version string
	// Mode is a gin mode: debug, release or test. Empty keeps the current one.
	Mode string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	log := cfg.Logger
	if log == nil {
		log = logging.NewNopLogger()
	}
	log = log.Named("http")

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(log, DefaultSkipPaths...))

	h := &handler{
		plans:     cfg.Plans,
		timelines: cfg.Timelines,
		history:   cfg.History,
		log:       log,
	}
	health := &healthHandler{checkers: cfg.Checkers, version: cfg.Version}

	r.GET("/healthz", health.liveness)
	r.GET("/readyz", health.readiness)
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics))
	}

	api := r.Group("/api")
	if cfg.Plans != nil {
		api.POST("/generate-plan", h.generatePlan)
		api.POST("/generate-plan-stream", h.generatePlanStream)
	}
	if cfg.Timelines != nil {
		api.POST("/timeline", h.timeline)
	}
	if cfg.History != nil {
		api.GET("/runs", h.listRuns)
		api.GET("/runs/:id", h.getRun)
	}
	return r
}
