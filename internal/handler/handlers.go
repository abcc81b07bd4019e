package handler

import (
	"github.com/deppfellow/credit-risk/internal/server"
	"github.com/deppfellow/credit-risk/internal/service"
)

// Handlers is a container that groups all HTTP handlers, so router setup
// passes one object around instead of many.
type Handlers struct {
	System  *SystemHandler  // System serves the root banner and the health probe.
	Payback *PaybackHandler // Payback serves the prediction endpoint.
	OpenAPI *OpenAPIHandler // OpenAPI serves the API document and the docs page.
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		System:  NewSystemHandler(s),
		Payback: NewPaybackHandler(s, services.Payback),
		OpenAPI: NewOpenAPIHandler(s),
	}
}
