package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/invoices-dashboard/internal/server/http/view"
)

// HealthChecker reports storage availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// DashboardHandler serves the landing page, the overview and the health probe.
type DashboardHandler struct {
	facade   InvoiceFacade
	renderer Renderer
	health   HealthChecker
}

// NewDashboardHandler constructs DashboardHandler.
func NewDashboardHandler(facade InvoiceFacade, renderer Renderer, health HealthChecker) *DashboardHandler {
	return &DashboardHandler{facade: facade, renderer: renderer, health: health}
}

// Home handles GET /.
func (h *DashboardHandler) Home(c *gin.Context) {
	render(c, h.renderer, http.StatusOK, view.PageHome, view.Layout{})
}

// Overview handles GET /dashboard.
func (h *DashboardHandler) Overview(c *gin.Context) {
	overview, err := h.facade.Overview(c.Request.Context())
	if err != nil {
		renderError(c, h.renderer, err, "Failed to fetch dashboard data.")
		return
	}
	render(c, h.renderer, http.StatusOK, view.PageDashboard, view.DashboardPage{
		Layout:   view.Layout{Title: "Dashboard"},
		Overview: overview,
	})
}

// Health handles GET /healthz.
func (h *DashboardHandler) Health(c *gin.Context) {
	if h.health != nil {
		if err := h.health.HealthCheck(c.Request.Context()); err != nil {
			_ = c.Error(err)
			c.String(http.StatusServiceUnavailable, "unavailable")
			return
		}
	}
	c.String(http.StatusOK, "ok")
}
