package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/gradplan/internal/cache"
	"github.com/alexanderramin/gradplan/internal/catalog"
	"github.com/alexanderramin/gradplan/internal/cli"
	"github.com/alexanderramin/gradplan/internal/config"
	"github.com/alexanderramin/gradplan/internal/db"
	"github.com/alexanderramin/gradplan/internal/llm"
	"github.com/alexanderramin/gradplan/internal/logging"
	"github.com/alexanderramin/gradplan/internal/metrics"
	"github.com/alexanderramin/gradplan/internal/repository"
	"github.com/alexanderramin/gradplan/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// configPath pulls --config out of args before the command tree is built,
// since wiring depends on it. Everything else is left to cobra.
func configPath(args []string) string {
	fs := pflag.NewFlagSet("gradplan", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(devNull{})
	path := fs.String("config", "", "")
	fs.BoolP("help", "h", false, "")
	_ = fs.Parse(args)
	return *path
}

type devNull struct{}

func (devNull) Write(p []byte) (int, error) { return len(p), nil }

func run(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgPath := configPath(args)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	log, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync()
	logging.SetDefault(log)

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	m := metrics.New(metrics.WithRuntimeCollectors())

	llmCfg := cfg.LLMClientConfig()
	llmObserver := llm.MultiObserver{m}
	if llmCfg.LogCalls {
		llmObserver = append(llmObserver, llm.NewLogObserver(log))
	}
	client := llm.New(llmCfg, llmObserver)

	programs, err := loadCatalog(cfg.Catalog)
	if err != nil {
		return err
	}

	reqCache := buildCache(ctx, cfg, log)
	defer reqCache.close()

	observer := service.MultiUseCaseObserver(
		service.NewLogUseCaseObserver(log),
		service.NewMetricsUseCaseObserver(m),
	)
	plans := service.NewPlanService(
		programs,
		service.NewCollaborators(client, cfg.Planner.UseGenerator),
		db.NewSQLiteUnitOfWork(database),
		service.WithPolicy(cfg.Policy()),
		service.WithCache(reqCache.RequirementsCache),
		service.WithRecorder(m),
		service.WithLogger(log),
		service.WithObserver(observer),
	)
	history := service.NewHistoryService(repository.NewSQLitePlanRunRepo(database), observer)

	app := &cli.App{
		Plans:     plans,
		Timelines: plans,
		History:   history,
		Catalog:   programs,
		Policy:    cfg.Policy(),
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}
	app.Serve = func(ctx context.Context, addr string) error {
		return serve(ctx, serveDeps{
			cfg:       cfg,
			cfgPath:   cfgPath,
			log:       log,
			database:  database,
			client:    client,
			catalog:   programs,
			metrics:   m,
			plans:     plans,
			history:   history,
			cachePing: reqCache.ping,
		}, addr)
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

func loadCatalog(cfg config.CatalogConfig) (*catalog.Catalog, error) {
	if cfg.Path == "" {
		return catalog.Builtin(), nil
	}
	c, err := catalog.Load(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return c, nil
}

// requirementsCache is the cache in use plus what serve needs to report on
// it and release it.
type requirementsCache struct {
	cache.RequirementsCache
	// ping is nil for the in-process cache.
	ping  func(ctx context.Context) error
	close func()
}

// buildCache prefers Redis when configured and reachable, falling back to
// the in-process cache so planning still works without it.
func buildCache(ctx context.Context, cfg *config.Config, log logging.Logger) requirementsCache {
	memory := requirementsCache{RequirementsCache: cache.NewMemoryCache(cfg.Redis.TTL), close: func() {}}
	if !cfg.RedisEnabled() {
		return memory
	}
	client, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.Warn("redis unavailable, using in-memory requirements cache", logging.Err(err))
		return memory
	}
	redisCache := cache.NewRedisCache(client, cache.WithTTL(cfg.Redis.TTL))
	log.Info("using redis requirements cache", logging.String("addr", cfg.Redis.Addr))
	return requirementsCache{
		RequirementsCache: redisCache,
		ping:              redisCache.Ping,
		close:             func() { _ = client.Close() },
	}
}
