// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/credit-risk/internal/handler"
	"github.com/deppfellow/credit-risk/internal/middleware"
	"github.com/deppfellow/credit-risk/internal/server"
)

// NewRouter builds the Echo instance serving every route.
//
// Middleware order matters:
//   - RequestID first, so everything after it can read the ID
//   - ContextEnhancer next, so the access log and handlers get the request logger
//   - RequestLogger wraps Recover, so recovered panics are logged with their status
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
		middlewares.Global.CORS(),
	)

	registerSystemRoutes(router, s, h)

	api := router.Group(s.Config.App.APIPrefix)
	registerPaybackRoutes(api, h)

	return router
}

func registerPaybackRoutes(g *echo.Group, h *handler.Handlers) {
	predict := handler.Handle(h.Payback.Predict, http.StatusOK)

	g.POST("/payback/", predict)
	// Same endpoint without the trailing slash.
	g.POST("/payback", predict)
}
