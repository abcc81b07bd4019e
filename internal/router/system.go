package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/deppfellow/credit-risk/internal/handler"
	"github.com/deppfellow/credit-risk/internal/server"
)

// registerSystemRoutes registers endpoints that are not part of business logic:
//  1. Root banner and health probe
//  2. Prometheus metrics
//  3. OpenAPI document and docs UI
func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers) {
	r.GET("/", h.System.Root)
	r.GET("/health", h.System.CheckHealth)

	r.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{})))

	r.GET("/openapi.json", h.OpenAPI.ServeOpenAPIDocument)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
