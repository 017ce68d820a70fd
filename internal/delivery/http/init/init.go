package http_init

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const apiPrefix = "/api"

type Controller interface {
	RegisterRoutes(router *gin.RouterGroup)
}

type ControllerPool struct {
	pool   []Controller
	rg     *gin.RouterGroup
	engine *gin.Engine
	// nil trusts no proxy, so ClientIP is always the socket peer
	proxies []string

	logger *slog.Logger
}

type PoolOption func(*ControllerPool)

func WithLogger(logger *slog.Logger) PoolOption {
	return func(p *ControllerPool) {
		p.logger = logger
	}
}

// WithMiddleware installs middleware on every route, probes included.
func WithMiddleware(mw ...gin.HandlerFunc) PoolOption {
	return func(p *ControllerPool) {
		p.engine.Use(mw...)
	}
}

// WithTrustedProxies honours X-Forwarded-For only from the given IPs or CIDRs.
func WithTrustedProxies(proxies []string) PoolOption {
	return func(p *ControllerPool) {
		p.proxies = proxies
	}
}

func NewControllerPool(opts ...PoolOption) *ControllerPool {
	engine := gin.New()
	engine.Use(gin.Recovery())

	pool := &ControllerPool{
		pool:   make([]Controller, 0, 10),
		engine: engine,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(pool)
	}
	if err := engine.SetTrustedProxies(pool.proxies); err != nil {
		pool.logger.Error("invalid trusted proxies, trusting none", slog.String("error", err.Error()))
		_ = engine.SetTrustedProxies(nil)
	}
	pool.rg = engine.Group(apiPrefix)
	return pool
}

func (pool *ControllerPool) Add(c Controller) {
	pool.pool = append(pool.pool, c)
}

func (pool *ControllerPool) Register() {
	for _, c := range pool.pool {
		c.RegisterRoutes(pool.rg)
	}
}

// RegisterProbes mounts /livez and /metrics outside the api prefix.
func (pool *ControllerPool) RegisterProbes(gatherer prometheus.Gatherer) {
	pool.engine.GET("/livez", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "ok")
	})
	pool.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}

func (pool *ControllerPool) Handler() http.Handler {
	return pool.engine
}

// RunAll serves until ctx is done, then shuts the server down gracefully.
func (pool *ControllerPool) RunAll(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return pool.Serve(ctx, ln, shutdownTimeout)
}

func (pool *ControllerPool) Serve(ctx context.Context, ln net.Listener, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Handler:           pool.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		pool.logger.Info("http_listen_start", slog.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		pool.logger.Info("shutdown_requested")
	case err := <-serveErr:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		pool.logger.Warn("http_shutdown_incomplete", slog.String("err", err.Error()))
		return err
	}
	pool.logger.Info("http_stopped")
	return nil
}
