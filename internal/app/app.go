// Package app wires configuration into repositories, the statistics source
// client, the job queue and the reconciliation services.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/riskibarqy/antelope-reconciler/external/pfr"
	"github.com/riskibarqy/antelope-reconciler/internal/config"
	"github.com/riskibarqy/antelope-reconciler/internal/domain/depthchart"
	"github.com/riskibarqy/antelope-reconciler/internal/domain/identity"
	"github.com/riskibarqy/antelope-reconciler/internal/domain/playermeta"
	"github.com/riskibarqy/antelope-reconciler/internal/domain/statschema"
	"github.com/riskibarqy/antelope-reconciler/internal/infrastructure/jobqueue"
	repocache "github.com/riskibarqy/antelope-reconciler/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/antelope-reconciler/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/antelope-reconciler/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/antelope-reconciler/internal/interfaces/httpapi"
	"github.com/riskibarqy/antelope-reconciler/internal/platform/cache"
	idgen "github.com/riskibarqy/antelope-reconciler/internal/platform/id"
	"github.com/riskibarqy/antelope-reconciler/internal/platform/logging"
	"github.com/riskibarqy/antelope-reconciler/internal/platform/pacing"
	"github.com/riskibarqy/antelope-reconciler/internal/usecase"
)

// Runtime owns every long-lived dependency built from Config.
type Runtime struct {
	Config         config.Config
	Logger         *logging.Logger
	Reconciliation *usecase.ReconciliationService
	Enqueue        *usecase.EnqueueService
	Efficiency     *usecase.TeamEfficiencyService

	closers []func() error
}

func NewRuntime(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Runtime, error) {
	if logger == nil {
		logger = logging.Default()
	}
	rt := &Runtime{Config: cfg, Logger: logger}

	playerRepo, depthRepo, err := rt.openRepositories(ctx)
	if err != nil {
		_ = rt.Close()
		return nil, err
	}

	schema, err := loadSchema(cfg)
	if err != nil {
		_ = rt.Close()
		return nil, err
	}

	gate, err := rt.openPaceGate(ctx)
	if err != nil {
		_ = rt.Close()
		return nil, err
	}
	resolverPacer := pacing.Pacer(pacing.NewJitter(cfg.ResolverPaceMin, cfg.ResolverPaceMax))
	extractorPacer := pacing.Noop
	if gate != nil {
		resolverPacer = pacing.Chain(resolverPacer, gate)
		extractorPacer = gate
	}

	source := pfr.NewClient(pfr.ClientConfig{
		HTTPClient: &http.Client{
			Timeout:   cfg.StatsSourceTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		BaseURL:        cfg.StatsSourceBaseURL,
		UserAgent:      cfg.StatsSourceUserAgent,
		Timeout:        cfg.StatsSourceTimeout,
		MaxRetries:     cfg.StatsSourceMaxRetries,
		Logger:         logger.Named("pfr"),
		CircuitBreaker: cfg.StatsSourceCircuit,
		Pages:          rt.browserPages(),
		PageTTL:        cfg.StatsSourcePageTTL,
	})

	var efficiencyCache *cache.Store[usecase.TeamEfficiency]
	if cfg.CacheEnabled {
		efficiencyCache = cache.NewStore[usecase.TeamEfficiency](cfg.CacheTTL)
	}

	aggregator := usecase.NewStatAggregator(schema)
	rt.Efficiency = usecase.NewTeamEfficiencyService(
		playerRepo,
		aggregator,
		efficiencyCache,
		usecase.TeamEfficiencyConfig{Workers: cfg.EnqueueWorkers},
		logger,
	)

	resolver := usecase.NewPlayerResolver(
		source,
		resolverPacer,
		identity.NewMatcher(cfg.NameMatchThreshold),
		usecase.PlayerResolverConfig{BaseURL: cfg.StatsSourceBaseURL, MaxAttempts: cfg.ResolverMaxAttempts},
		logger,
	)
	extractor := usecase.NewGameLogExtractor(source, extractorPacer, schema, logger)
	rt.Reconciliation = usecase.NewReconciliationService(
		playerRepo,
		resolver,
		extractor,
		aggregator,
		rt.Efficiency,
		usecase.ReconciliationConfig{RosterPlayerDelay: cfg.RosterPlayerDelay},
		logger,
	)

	rt.Enqueue = usecase.NewEnqueueService(
		depthRepo,
		playerRepo,
		rt.jobQueue(),
		idgen.NewRandomGenerator("run-"),
		usecase.EnqueueConfig{
			RecentWindow: cfg.EnqueueRecentWindow,
			Workers:      cfg.EnqueueWorkers,
			Stagger:      cfg.EnqueueStagger,
		},
		logger,
	)

	return rt, nil
}

// NewHTTPServer builds the API server around rt's services.
func NewHTTPServer(rt *Runtime) (*http.Server, error) {
	cfg := rt.Config
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	handler := httpapi.NewHandler(rt.Reconciliation, rt.Enqueue, rt.Efficiency, rt.Logger)
	router := httpapi.NewRouter(handler, rt.Logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}

// Close releases resources in reverse order of acquisition.
func (rt *Runtime) Close() error {
	var errs []error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	rt.closers = nil
	return errors.Join(errs...)
}

func (rt *Runtime) openRepositories(ctx context.Context) (playermeta.Repository, depthchart.Repository, error) {
	if rt.Config.StorageDriver != config.StoragePostgres {
		rt.Logger.Info("using in-memory storage", "seeded_depth_rows", len(memory.SeedDepthCharts()))
		return memory.NewPlayerMetadataRepository(), memory.NewDepthChartRepository(memory.SeedDepthCharts()...), nil
	}

	db, err := openDB(ctx, rt.Config)
	if err != nil {
		return nil, nil, err
	}
	rt.closers = append(rt.closers, db.Close)
	rt.Logger.Info("using postgres storage", "db", dbNameFromURL(rt.Config.DBURL))

	var players playermeta.Repository = postgres.NewPlayerMetadataRepository(db)
	if rt.Config.CacheEnabled {
		players = repocache.NewPlayerMetadataRepository(players, rt.Config.CacheTTL)
	}
	return players, postgres.NewDepthChartRepository(db), nil
}

func (rt *Runtime) openPaceGate(ctx context.Context) (pacing.Pacer, error) {
	if rt.Config.RedisURL == "" {
		return nil, nil
	}
	client, err := pacing.OpenRedis(ctx, rt.Config.RedisURL)
	if err != nil {
		return nil, err
	}
	rt.closers = append(rt.closers, client.Close)
	rt.Logger.Info("redis pace gate enabled", "key", rt.Config.RedisPaceKey, "interval", rt.Config.RedisPaceInterval)

	return pacing.NewRedisGate(client, rt.Config.RedisPaceKey, rt.Config.RedisPaceInterval), nil
}

func (rt *Runtime) browserPages() pfr.PageFetcher {
	if rt.Config.StatsSourceFetchMode != config.FetchModeBrowser {
		return nil
	}
	browser := pfr.NewBrowserFetcher(pfr.BrowserConfig{
		UserAgent: rt.Config.StatsSourceUserAgent,
		Timeout:   rt.Config.StatsSourceTimeout,
		ExecPath:  rt.Config.StatsSourceBrowserPath,
	})
	rt.closers = append(rt.closers, func() error {
		browser.Close()
		return nil
	})
	return browser
}

func (rt *Runtime) jobQueue() usecase.JobQueue {
	cfg := rt.Config
	if !cfg.QStashEnabled {
		rt.Logger.Info("qstash disabled; enqueue runs are dry", "reason", "QSTASH_ENABLED=false")
		return usecase.NewNoopJobQueue()
	}

	return jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
		BaseURL:          cfg.QStashBaseURL,
		Token:            cfg.QStashToken,
		TargetBaseURL:    cfg.QStashTargetBaseURL,
		Retries:          cfg.QStashRetries,
		InternalJobToken: cfg.InternalJobToken,
		CircuitBreaker:   cfg.QStashCircuit,
		HTTPClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}, rt.Logger.Named("qstash"))
}

func loadSchema(cfg config.Config) (*statschema.Schema, error) {
	if cfg.StatSchemaPath == "" {
		return statschema.Default()
	}
	schema, err := statschema.Load(cfg.StatSchemaPath)
	if err != nil {
		return nil, fmt.Errorf("load stat schema %s: %w", cfg.StatSchemaPath, err)
	}
	return schema, nil
}
