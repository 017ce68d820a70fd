package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/humanbelnik/moviematch/internal/config"
	http_init "github.com/humanbelnik/moviematch/internal/delivery/http/init"
	http_like "github.com/humanbelnik/moviematch/internal/delivery/http/like"
	http_middleware "github.com/humanbelnik/moviematch/internal/delivery/http/middleware"
	http_movie "github.com/humanbelnik/moviematch/internal/delivery/http/movie"
	ws_like "github.com/humanbelnik/moviematch/internal/delivery/ws/like"
	infra_fixture "github.com/humanbelnik/moviematch/internal/infra/fixture"
	infra_memory_like "github.com/humanbelnik/moviematch/internal/infra/memory/like"
	infra_redis_init "github.com/humanbelnik/moviematch/internal/infra/redis/init"
	infra_redis_like "github.com/humanbelnik/moviematch/internal/infra/redis/like"
	infra_sqldb_init "github.com/humanbelnik/moviematch/internal/infra/sqldb/init"
	infra_sqldb_like "github.com/humanbelnik/moviematch/internal/infra/sqldb/like"
	infra_tmdb "github.com/humanbelnik/moviematch/internal/infra/tmdb"
	usecase_catalog "github.com/humanbelnik/moviematch/internal/usecase/catalog"
	usecase_like "github.com/humanbelnik/moviematch/internal/usecase/like"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func Go(cfg *config.Config) {
	log := setupLogger(cfg.Env, cfg.LogLevel)
	slog.SetDefault(log)
	log.Info("starting moviematch", slog.String("env", cfg.Env))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, closeStore, err := NewLikeStore(ctx, cfg, log)
	if err != nil {
		log.Error("like_store_init_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv := NewServer(ctx, cfg, NewCatalog(cfg, log), store, reg, log)

	if err := srv.RunAll(ctx, cfg.HTTP.Addr(), cfg.HTTP.ShutdownTimeout); err != nil {
		log.Error("http_serve_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	log.Info("service_stopped")
}

// NewCatalog picks the live upstream when an API key is configured.
func NewCatalog(cfg *config.Config, log *slog.Logger) usecase_catalog.Gateway {
	if cfg.Catalog.Live() {
		log.Info("catalog mode", slog.String("mode", "live"), slog.String("base_url", cfg.Catalog.BaseURL))
		return infra_tmdb.New(cfg.Catalog, infra_tmdb.WithLogger(log))
	}
	log.Info("catalog mode", slog.String("mode", "fixture"))
	return infra_fixture.Default()
}

// NewLikeStore picks SQL, then Redis, then memory. The returned func releases the store.
func NewLikeStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (usecase_like.Repository, func(), error) {
	switch {
	case cfg.Database.URL != "":
		db, err := infra_sqldb_init.Open(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		log.Info("like store", slog.String("backend", "sql"), slog.String("driver", db.DriverName()))
		return infra_sqldb_like.New(db), func() { _ = db.Close() }, nil

	case cfg.Redis.Enabled():
		client := infra_redis_init.NewClient(cfg.Redis)
		if err := client.Ping().Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		log.Info("like store", slog.String("backend", "redis"))
		return infra_redis_like.New(client, cfg.Redis.KeyPrefix), func() { _ = client.Close() }, nil
	}

	log.Warn("like store", slog.String("backend", "memory"))
	return infra_memory_like.New(), func() {}, nil
}

// NewServer wires usecases and controllers. Background workers stop with ctx.
func NewServer(
	ctx context.Context,
	cfg *config.Config,
	gateway usecase_catalog.Gateway,
	store usecase_like.Repository,
	reg *prometheus.Registry,
	log *slog.Logger,
) *http_init.ControllerPool {
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	hub := ws_like.NewHub(ws_like.WithLogger(log))
	go hub.Run(ctx)

	limiter := http_middleware.NewRateLimiter(cfg.RateLimit)
	go limiter.Sweep(ctx)

	catalogUC := usecase_catalog.New(gateway)
	likeUC := usecase_like.New(store, catalogUC,
		usecase_like.WithNotifier(hub),
		usecase_like.WithLogger(log),
	)

	controllerPool := http_init.NewControllerPool(
		http_init.WithLogger(log),
		http_init.WithTrustedProxies(cfg.HTTP.TrustedProxies),
		http_init.WithMiddleware(
			http_middleware.RequestLogger(log),
			http_middleware.NewMetrics(reg).Middleware(),
			limiter.Middleware(),
		),
	)
	controllerPool.Add(http_movie.New(catalogUC, http_movie.WithLogger(log)))
	controllerPool.Add(http_like.New(likeUC, http_like.WithLogger(log)))
	controllerPool.Add(ws_like.NewController(hub, ws_like.WithControllerLogger(log)))

	controllerPool.Register()
	controllerPool.RegisterProbes(reg)
	return controllerPool
}

func setupLogger(env, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if env == config.EnvLocal {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
