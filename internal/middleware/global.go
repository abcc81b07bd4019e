package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/deppfellow/credit-risk/internal/errs"
	"github.com/deppfellow/credit-risk/internal/server"
)

// GlobalMiddlewares groups "global" middleware and the global error handler.
//
// Middleware functions read the CORS origin and the logger from *server.Server.
type GlobalMiddlewares struct {
	server *server.Server
}

// NewGlobalMiddlewares constructs the middleware bundle.
func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// CORS returns Echo's CORS middleware allowing the configured origin.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{global.server.Config.Server.CORSOrigin},
	})
}

// RequestLogger returns Echo's request logger middleware with a zerolog
// LogValuesFunc: one "API" line per request, WARN for 4xx and 5xx.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := v.Status

			// When a handler returns an error, the final status is only decided
			// later by GlobalErrorHandler, so derive it from the error instead.
			// Reference: https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
			if v.Error != nil {
				statusCode = statusFromError(v.Error)
			}

			logger := GetLogger(c)

			// Failures are written to error.log by GlobalErrorHandler, so the
			// access line stays below error level.
			var e *zerolog.Event
			if statusCode >= 400 {
				e = logger.Warn()
			} else {
				e = logger.Info()
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// recoveredPanic carries the goroutine stack captured when a panic was
// recovered.
type recoveredPanic struct {
	err   error
	stack []byte
}

func (p *recoveredPanic) Error() string { return p.err.Error() }

func (p *recoveredPanic) Unwrap() error { return p.err }

// Recover returns Echo's panic recovery middleware.
//
// The panic is handed to GlobalErrorHandler together with its stack. The
// handler logs it once and answers with a generic 500.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			return &recoveredPanic{err: err, stack: stack}
		},
	})
}

// Secure returns Echo's secure headers middleware.
func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// GlobalErrorHandler is the final error funnel for the entire HTTP server.
//
// Every error returned by a handler or middleware ends up here and is
// translated into an errs.HTTPError response. Errors that are neither
// *errs.HTTPError nor *echo.HTTPError are internal: the client only sees a
// generic 500 while the original error is logged at error level.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	// Keep the original error for logging.
	originalErr := err

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			// Unknown routes surface as echo's 404.
			if echoErr.Code == http.StatusNotFound {
				err = errs.NewNotFoundError("Route not found", false, nil)
			}
		} else {
			err = errs.NewInternalServerError()
		}
	}

	var echoErr *echo.HTTPError
	var status int
	var code string
	var message string
	var fieldErrors []errs.FieldError
	var action *errs.Action
	override := false

	switch {
	case errors.As(err, &httpErr):
		status = httpErr.Status
		code = httpErr.Code
		message = httpErr.Message
		fieldErrors = httpErr.Errors
		action = httpErr.Action
		override = httpErr.Override

	case errors.As(err, &echoErr):
		status = echoErr.Code
		code = errs.MakeUpperCaseWithUnderscores(http.StatusText(status))

		if msg, ok := echoErr.Message.(string); ok && status < http.StatusInternalServerError {
			message = msg
		} else {
			message = http.StatusText(status)
		}

	default:
		status = http.StatusInternalServerError
		code = errs.MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError))
		message = http.StatusText(http.StatusInternalServerError)
	}

	logger := GetLogger(c)

	var e *zerolog.Event
	var panicked *recoveredPanic
	switch {
	case errors.As(originalErr, &panicked):
		e = logger.Error().Str("stack", string(panicked.stack))
	case status >= http.StatusInternalServerError:
		e = logger.Error().Stack()
	default:
		e = logger.Warn()
	}
	e.Err(originalErr).
		Int("status", status).
		Str("error_code", code).
		Msg(message)

	if !c.Response().Committed {
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}

		_ = c.JSON(status, errs.HTTPError{
			Code:     code,
			Message:  message,
			Status:   status,
			Override: override,
			Errors:   fieldErrors,
			Action:   action,
		})
	}
}

// statusFromError returns the status GlobalErrorHandler will answer with.
func statusFromError(err error) int {
	var httpErr *errs.HTTPError
	var echoErr *echo.HTTPError

	switch {
	case errors.As(err, &httpErr):
		return httpErr.Status
	case errors.As(err, &echoErr):
		return echoErr.Code
	default:
		return http.StatusInternalServerError
	}
}
