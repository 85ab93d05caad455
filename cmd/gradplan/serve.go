package main

import (
	"context"
	"database/sql"
	"errors"

	"github.com/alexanderramin/gradplan/internal/catalog"
	"github.com/alexanderramin/gradplan/internal/config"
	"github.com/alexanderramin/gradplan/internal/httpapi"
	"github.com/alexanderramin/gradplan/internal/llm"
	"github.com/alexanderramin/gradplan/internal/logging"
	"github.com/alexanderramin/gradplan/internal/metrics"
	"github.com/alexanderramin/gradplan/internal/service"
)

var errModelUnreachable = errors.New("model endpoint unreachable")

type serveDeps struct {
	cfg      *config.Config
	cfgPath  string
	log      logging.Logger
	database *sql.DB
	client   llm.LLMClient
	catalog  *catalog.Catalog
	metrics  *metrics.Metrics
	plans    service.PlanService
	history  service.HistoryService
	// cachePing is nil when the in-process cache is in use.
	cachePing func(ctx context.Context) error
}

// serve runs the HTTP API until ctx is cancelled. The catalog and config
// watchers live for the same span.
func serve(ctx context.Context, deps serveDeps, addr string) error {
	if addr == "" {
		addr = deps.cfg.Server.Addr
	}
	log := deps.log

	if deps.cfg.Catalog.Watch {
		if err := deps.catalog.Watch(ctx, log, nil); err != nil {
			if !errors.Is(err, catalog.ErrNotFileBacked) {
				return err
			}
			log.Warn("catalog.watch is set but the built-in catalog is in use")
		}
	}

	if deps.cfgPath != "" {
		err := config.Watch(deps.cfgPath, log, func(c *config.Config) {
			if logging.SetLevel(log, c.Log.Level) {
				log.Info("log level applied", logging.String("level", c.Log.Level))
			}
		})
		if err != nil {
			log.Warn("config watch disabled", logging.Err(err))
		}
	}

	router := httpapi.NewRouter(httpapi.RouterConfig{
		Plans:     deps.plans,
		Timelines: deps.plans,
		History:   deps.history,
		Metrics:   deps.metrics.Handler(),
		Checkers:  checkers(deps),
		Logger:    log,
		Version:   version,
		Mode:      deps.cfg.Server.Mode,
	})

	log.Info("starting http server", logging.String("addr", addr), logging.String("version", version))
	return httpapi.NewServer(addr, router, log).Run(ctx)
}

func checkers(deps serveDeps) []httpapi.HealthChecker {
	out := []httpapi.HealthChecker{httpapi.NewCheck("db", deps.database.PingContext)}
	if deps.cfg.LLM.Enabled {
		out = append(out, httpapi.NewCheck("llm", func(ctx context.Context) error {
			if !deps.client.Available(ctx) {
				return errModelUnreachable
			}
			return nil
		}))
	}
	if deps.cachePing != nil {
		out = append(out, httpapi.NewCheck("redis", deps.cachePing))
	}
	return out
}
