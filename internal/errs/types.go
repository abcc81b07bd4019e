package errs

import (
	"net/http"
)

func codeFor(status int) string {
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// code is optional. When nil the code defaults to "BAD_REQUEST".
func NewBadRequestError(message string, override bool, code *string, errors []FieldError, action *Action) *HTTPError {
	formattedCode := codeFor(http.StatusBadRequest)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
		Action:   action,
	}
}

// NewUnprocessableEntityError creates a 422 Unprocessable Entity HTTPError.
// It is the status for payloads that parse but break a schema constraint.
func NewUnprocessableEntityError(message string, override bool, errors []FieldError) *HTTPError {
	return &HTTPError{
		Code:     codeFor(http.StatusUnprocessableEntity),
		Message:  message,
		Status:   http.StatusUnprocessableEntity,
		Override: override,
		Errors:   errors,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	formattedCode := codeFor(http.StatusNotFound)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// The message is always the generic status text. The underlying error is
// logged by the caller, never sent to the client.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:     codeFor(http.StatusInternalServerError),
		Message:  http.StatusText(http.StatusInternalServerError),
		Status:   http.StatusInternalServerError,
		Override: false,
	}
}

// ValidationError converts a generic validation error into a 422 HTTPError.
func ValidationError(err error) *HTTPError {
	return NewUnprocessableEntityError("Validation failed: "+err.Error(), false, nil)
}
