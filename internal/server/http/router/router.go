package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/invoices-dashboard/internal/obs"
	"github.com/polkiloo/invoices-dashboard/internal/server/http/handlers"
	"github.com/polkiloo/invoices-dashboard/internal/server/http/middleware"
	"github.com/polkiloo/invoices-dashboard/internal/server/http/view"
)

// Dependencies groups everything the router wires into handlers.
// TrustedProxies may set X-Forwarded-For; nil trusts none.
type Dependencies struct {
	Facade         handlers.DashboardFacade
	Logger         *slog.Logger
	Renderer       handlers.Renderer
	Pages          handlers.PageStore
	Metrics        *obs.Metrics
	Limiter        middleware.Limiter
	Health         handlers.HealthChecker
	SessionTTL     time.Duration
	TrustedProxies []string
}

// Setup configures gin router with handlers and middleware.
func Setup(d Dependencies) *gin.Engine {
	engine := gin.New()
	if err := engine.SetTrustedProxies(d.TrustedProxies); err != nil {
		d.Logger.Warn("ignoring trusted proxies", slog.String("error", err.Error()))
		_ = engine.SetTrustedProxies(nil)
	}

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(d.Logger))
	if d.Metrics != nil {
		engine.Use(d.Metrics.Middleware())
	}
	engine.Use(gzip.Gzip(
		gzip.DefaultCompression,
		gzip.WithExcludedPaths([]string{"/metrics"}),
		gzip.WithDecompressFn(gzip.DefaultDecompressHandle),
	))
	engine.Use(middleware.Gate(d.Facade))

	authHandler := handlers.NewAuthHandler(d.Facade, d.Renderer, d.SessionTTL)
	invoiceHandler := handlers.NewInvoiceHandler(d.Facade, d.Renderer, d.Pages)
	dashboardHandler := handlers.NewDashboardHandler(d.Facade, d.Renderer, d.Health)

	engine.StaticFS("/static", http.FS(view.Static()))
	engine.GET("/healthz", dashboardHandler.Health)
	if d.Metrics != nil {
		engine.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	engine.GET("/", dashboardHandler.Home)
	engine.GET("/login", authHandler.LoginPage)
	engine.POST("/login", middleware.RateLimit(d.Limiter), authHandler.Login)

	dashboard := engine.Group("/dashboard")
	dashboard.GET("", dashboardHandler.Overview)
	dashboard.POST("/logout", authHandler.Logout)

	invoices := dashboard.Group("/invoices")
	invoices.GET("", invoiceHandler.List)
	invoices.GET("/search", invoiceHandler.Search)
	invoices.GET("/create", invoiceHandler.CreatePage)
	invoices.POST("/create", invoiceHandler.Create)
	invoices.GET("/:id/edit", invoiceHandler.EditPage)
	invoices.POST("/:id/edit", invoiceHandler.Update)
	invoices.POST("/:id/delete", invoiceHandler.Delete)

	engine.NoRoute(handlers.NotFound(d.Renderer))

	return engine
}
