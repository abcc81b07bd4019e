package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/credit-risk/internal/middleware"
	"github.com/deppfellow/credit-risk/internal/server"
	"github.com/deppfellow/credit-risk/internal/validation"
)

// Handler is the base handler type that holds shared application dependencies.
//
// It is embedded by concrete handlers (PaybackHandler, SystemHandler, ...)
// so they can reach config and logger through *server.Server.
type Handler struct {
	server *server.Server
}

// NewHandler constructs a base Handler.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// --- Generic typed handler plumbing -----------------------------------------

// Payload constrains the request type parameter: Req is a struct and *Req
// knows how to validate itself.
type Payload[Req any] interface {
	*Req
	validation.Validatable
}

// HandlerFunc represents a typed endpoint function that:
//
// - receives a bound and validated request payload (PReq, a pointer)
// - returns a response (Res) or an error
type HandlerFunc[PReq validation.Validatable, Res any] func(c echo.Context, req PReq) (Res, error)

// ResponseHandler defines how a successful handler result is written to the
// HTTP response.
type ResponseHandler interface {
	// Handle writes the HTTP response for the given result.
	Handle(c echo.Context, result interface{}) error

	// GetOperation returns an operation name used for structured logging.
	GetOperation() string
}

// JSONResponseHandler writes JSON responses with a given status code.
type JSONResponseHandler struct {
	status int
}

func (h JSONResponseHandler) Handle(c echo.Context, result interface{}) error {
	return c.JSON(h.status, result)
}

func (h JSONResponseHandler) GetOperation() string {
	return "handler"
}

// handleRequest is the shared execution pipeline for all typed handlers.
//
// It centralizes:
//
// - request binding + validation (handler never runs on invalid input)
// - structured logging with the request-scoped logger
// - timing (validation duration, handler duration, total duration)
// - response writing
func handleRequest[PReq validation.Validatable](
	c echo.Context,
	req PReq,
	handler func(c echo.Context, req PReq) (interface{}, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("route", c.Path()).
		Logger()

	logger.Debug().Msg("handling request")

	// ---------------- Validation phase ---------------------------------------
	validationStart := time.Now()

	if err := validation.BindAndValidate(c, req); err != nil {
		// Client mistakes are logged below error level so they never
		// reach error.log.
		logger.Warn().
			Err(err).
			Dur("validation_duration", time.Since(validationStart)).
			Msg("request validation failed")

		return err
	}

	validationDuration := time.Since(validationStart)

	logger.Debug().
		Dur("validation_duration", validationDuration).
		Msg("request validation successful")

	// ---------------- Handler execution phase --------------------------------
	handlerStart := time.Now()
	result, err := handler(c, req)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		// GlobalErrorHandler logs the failure itself at the level its status
		// calls for.
		logger.Debug().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", time.Since(start)).
			Msg("handler execution failed")

		return err
	}

	logger.Debug().
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", time.Since(start)).
		Msg("request completed successfully")

	return responseHandler.Handle(c, result)
}

// Handle wraps a typed handler with validation, error handling and logging.
//
// A fresh request value is allocated for every call, so concurrent requests
// never share a payload.
//
// Usage:
//
//	g.POST("/payback/", handler.Handle(h.Payback.Predict, http.StatusOK))
func Handle[Req any, PReq Payload[Req], Res any](
	handler HandlerFunc[PReq, Res],
	status int,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, PReq(new(Req)), func(c echo.Context, req PReq) (interface{}, error) {
			return handler(c, req)
		}, JSONResponseHandler{status: status})
	}
}
