package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/smash-proyect/bff/internal/auth"
	"github.com/smash-proyect/bff/internal/config"
	"github.com/smash-proyect/bff/internal/downstream"
	"github.com/smash-proyect/bff/internal/health"
	"github.com/smash-proyect/bff/internal/httpserver"
	"github.com/smash-proyect/bff/internal/httpserver/deps"
	"github.com/smash-proyect/bff/internal/httpserver/mw"
	"github.com/smash-proyect/bff/internal/index"
	"github.com/smash-proyect/bff/internal/logger"
	"github.com/smash-proyect/bff/internal/proxy"
	"github.com/smash-proyect/bff/internal/redis"
	"github.com/smash-proyect/bff/internal/scheduler"
	"github.com/smash-proyect/bff/internal/snapshot"
	redisstore "github.com/smash-proyect/bff/internal/store/redis"
	"github.com/smash-proyect/bff/internal/utils"
	"github.com/smash-proyect/bff/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	poller      *scheduler.HealthPoller
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// One outbound client for every downstream component.
	httpClient := downstream.NewHTTPClient(downstream.Options{
		UserAgent: version.UserAgent(),
		Debug:     loggerClient.Enabled("debug"),
	}, loggerClient)
	client := downstream.New(httpClient, loggerClient)

	aggregator := health.NewAggregator(client, health.DefaultCheckTimeout, loggerClient)
	exchange := auth.NewExchange(client, cfg.SecurityURL, cfg.UpstreamTimeout, loggerClient)
	eventLookup := proxy.New(client, "consulta", cfg.ConsultaURL, proxy.EventIDPath, false, cfg.UpstreamTimeout, loggerClient)
	reports := proxy.New(client, "reportes", cfg.ReportesURL, proxy.ReportsPath, true, cfg.UpstreamTimeout, loggerClient)

	// Redis is optional: without it snapshots live in memory only.
	var (
		redisClient *goredis.Client
		store       snapshot.Store
		redisPinger deps.Pinger
	)
	if cfg.RedisEnabled() {
		var err error
		redisClient, err = redis.New(context.Background(), redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		rs := redisstore.NewStore(redisClient, cfg.SnapshotTTL)
		store = rs
		redisPinger = rs
	} else {
		loggerClient.Info("redis not configured, health snapshots kept in memory only")
	}

	recorder := snapshot.NewRecorder(index.NewSnapshotIndex(), store, loggerClient)
	if err := recorder.Restore(context.Background()); err != nil {
		loggerClient.Warn("failed to restore health snapshot from redis", logger.Error(err))
	}

	refreshTrigger := make(chan struct{}, 1)
	poller := scheduler.NewHealthPoller(aggregator, cfg.Targets, recorder, loggerClient, cfg.HealthPollInterval, refreshTrigger)

	d := deps.Deps{
		Logger:       loggerClient,
		StartTime:    time.Now(),
		Version:      version.Version,
		Commit:       version.Commit,
		BuildDate:    version.BuildDate,
		GoVersion:    version.GoVersion,
		TimeNow:      time.Now,
		AllowedCIDRS: cfg.AllowedCIDRS,
		TrustProxy:   cfg.TrustProxy,
		RateLimit: mw.RateLimitConfig{
			RequestsPerSec: cfg.RateLimitRPS,
			Burst:          cfg.RateLimitBurst,
			TrustProxy:     cfg.TrustProxy,
		},
		MaxBodyBytes: cfg.MaxBodyBytes,
		Targets:      cfg.Targets,
		Aggregator:   aggregator,
		Exchange:     exchange,
		Cookie: auth.CookieOptions{
			Secure: cfg.CookieSecure,
			MaxAge: cfg.CookieMaxAge,
			Domain: cfg.CookieDomain,
		},
		EventLookup:    eventLookup,
		Reports:        reports,
		Snapshots:      recorder,
		Redis:          redisPinger,
		RefreshTrigger: refreshTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		poller:      poller,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting BFF v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("BFF %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)
	for _, t := range a.cfg.Targets {
		a.logger.Debug("health target", logger.String("name", t.Name), logger.String("url", t.URL))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.poller.Start(ctx); err != nil {
		return fmt.Errorf("failed to start health poller: %w", err)
	}
	a.logger.Info("health poller started",
		logger.Duration("interval", a.cfg.HealthPollInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		a.poller.Stop()
		return err
	}

	a.poller.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		utils.CloseLogged(a.redisClient, "redis", a.logger)
	}

	a.logger.Info("✅ BFF stopped cleanly")
	_ = a.logger.Sync()
	return nil
}
