// Package errs defines the error types returned to API clients.
//
// Every failure that leaves the service goes through HTTPError so clients
// always receive the same JSON shape:
//
//	{
//	  "code": "UNPROCESSABLE_ENTITY",
//	  "message": "Validation failed",
//	  "status": 422,
//	  "override": true,
//	  "errors": [{ "field": "credit_score", "error": "must be greater than or equal to 0" }],
//	  "action": null
//	}
package errs

import "strings"

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "loan_amount", "error": "is required" }
type FieldError struct {
	// Field is the JSON name of the offending field.
	Field string `json:"field"`

	// Error is the human-readable constraint that was violated.
	Error string `json:"error"`
}

// ActionType is a string-based enum describing what the client should do.
type ActionType string

const (
	// ActionTypeRedirect tells the client it should redirect somewhere.
	ActionTypeRedirect ActionType = "redirect"
)

// Action describes an optional "what the client should do next" instruction.
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// HTTPError is the main custom error type for API responses.
//
// Fields:
//   - Code: machine-friendly error code (e.g. "NOT_FOUND").
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Override: true when the message was written for the client and may be shown as is.
//   - Errors: per-field validation errors.
//   - Action: optional client instruction.
type HTTPError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Override bool   `json:"override"`

	Errors []FieldError `json:"errors"`

	Action *Action `json:"action"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError, regardless of code or status.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of e with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
		Action:   e.Action,
	}
}

// Fields returns the names of every field error, in order.
func (e *HTTPError) Fields() []string {
	fields := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		fields = append(fields, fe.Field)
	}
	return fields
}

// MakeUpperCaseWithUnderscores converts "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
