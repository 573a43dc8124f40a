package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/invoices-dashboard/internal/config"
	"github.com/polkiloo/invoices-dashboard/internal/obs"
	"github.com/polkiloo/invoices-dashboard/internal/pkg/cache"
	"github.com/polkiloo/invoices-dashboard/internal/pkg/ratelimit"
	"github.com/polkiloo/invoices-dashboard/internal/server/http/handlers"
	"github.com/polkiloo/invoices-dashboard/internal/server/http/view"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Options(
	fx.Provide(view.New),
	fx.Provide(newEngine),
)

type engineParams struct {
	fx.In

	Config   *config.Config
	Facade   handlers.DashboardFacade
	Logger   *slog.Logger
	Renderer *view.Renderer
	Pages    *cache.PageCache
	Metrics  *obs.Metrics
	Limiter  *ratelimit.Limiter
	Health   handlers.HealthChecker
}

func newEngine(p engineParams) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	return Setup(Dependencies{
		Facade:         p.Facade,
		Logger:         p.Logger,
		Renderer:       p.Renderer,
		Pages:          p.Pages,
		Metrics:        p.Metrics,
		Limiter:        p.Limiter,
		Health:         p.Health,
		SessionTTL:     p.Config.SessionTTL,
		TrustedProxies: p.Config.TrustedProxies,
	})
}
