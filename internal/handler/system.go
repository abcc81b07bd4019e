package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/credit-risk/internal/server"
)

// SystemHandler serves endpoints that are not part of business logic.
type SystemHandler struct {
	Handler
}

func NewSystemHandler(s *server.Server) *SystemHandler {
	return &SystemHandler{
		Handler: NewHandler(s),
	}
}

// Root answers with the service banner.
func (h *SystemHandler) Root(c echo.Context) error {
	app := h.server.Config.App
	return c.JSON(http.StatusOK, map[string]string{
		"Info": fmt.Sprintf("%s version: %s backend app", app.ProjectName, app.Version),
	})
}

// CheckHealth is the liveness probe. It has no dependencies to check and
// always reports ok.
func (h *SystemHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
