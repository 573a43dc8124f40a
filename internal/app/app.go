package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/invoices-dashboard/internal/config"
	"github.com/polkiloo/invoices-dashboard/internal/obs"
	"github.com/polkiloo/invoices-dashboard/internal/pkg/cache"
	"github.com/polkiloo/invoices-dashboard/internal/pkg/ratelimit"
	"github.com/polkiloo/invoices-dashboard/internal/server/http/handlers"
	"github.com/polkiloo/invoices-dashboard/internal/storage/postgres"
	"github.com/polkiloo/invoices-dashboard/internal/usecase"
	"github.com/polkiloo/invoices-dashboard/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewDashboardFacade,
		newPageCache,
		newLoginLimiter,
		newHTTPServer,
		newJanitor,
	),
	fx.Provide(
		func(f *DashboardFacade) handlers.DashboardFacade { return f },
		func(c *cache.PageCache) usecase.Invalidator { return c },
		func(m *obs.Metrics) usecase.MutationObserver { return m },
		func(s *postgres.Storage) handlers.HealthChecker { return s },
	),
	fx.Invoke(registerLifecycle),
)

func newPageCache(cfg *config.Config) *cache.PageCache {
	return cache.New(cfg.CacheTTL)
}

func newLoginLimiter(cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.New(cfg.LoginRate, cfg.LoginBurst)
}

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type janitorParams struct {
	fx.In

	Config  *config.Config
	Logger  *slog.Logger
	Pages   *cache.PageCache
	Limiter *ratelimit.Limiter
	Metrics *obs.Metrics
}

func newJanitor(p janitorParams) *worker.Janitor {
	targets := []worker.Target{
		{Name: "page_cache", Sweeper: p.Pages, OnSwept: p.Metrics.ObserveEvictions},
		{Name: "login_limiter", Sweeper: p.Limiter},
	}
	return worker.NewJanitor(targets, p.Config.JanitorInterval, len(targets), p.Logger)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Janitor    *worker.Janitor
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting invoices dashboard", slog.String("addr", p.Server.Addr))
			// fx cancels the start context once OnStart returns.
			p.Janitor.Start(context.WithoutCancel(ctx))
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Janitor.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("invoices dashboard stopped")
			return nil
		},
	})
}
