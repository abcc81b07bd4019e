package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/credit-risk/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Name   string   `json:"name" validate:"required"`
	Amount *float64 `json:"amount" validate:"required,gte=0"`
	Ratio  *float64 `json:"ratio" validate:"omitempty,lte=1"`
}

func (p *samplePayload) Validate() error {
	return Struct(p)
}

type customPayload struct{}

func (p *customPayload) Validate() error {
	return CustomValidationErrors{{Field: "window", Message: "must start before it ends"}}
}

func newContext(body string) echo.Context {
	return newContextWithType(body, echo.MIMEApplicationJSON)
}

func newContextWithType(body, contentType string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func requireHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestBindAndValidate_Valid(t *testing.T) {
	payload := &samplePayload{}
	err := BindAndValidate(newContext(`{"name":"a","amount":0}`), payload)

	require.NoError(t, err)
	assert.Equal(t, "a", payload.Name)
	require.NotNil(t, payload.Amount)
	assert.Zero(t, *payload.Amount, "zero is a present value, not a missing one")
}

func TestBindAndValidate_ReportsEveryField(t *testing.T) {
	err := BindAndValidate(newContext(`{"ratio":2}`), &samplePayload{})

	httpErr := requireHTTPError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Status)
	assert.True(t, httpErr.Override)
	assert.ElementsMatch(t, []string{"name", "amount", "ratio"}, httpErr.Fields())
}

func TestBindAndValidate_NegativeAndNull(t *testing.T) {
	err := BindAndValidate(newContext(`{"name":"a","amount":-3}`), &samplePayload{})
	httpErr := requireHTTPError(t, err)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, errs.FieldError{Field: "amount", Error: "must be greater than or equal to 0"}, httpErr.Errors[0])

	err = BindAndValidate(newContext(`{"name":"a","amount":null}`), &samplePayload{})
	httpErr = requireHTTPError(t, err)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, errs.FieldError{Field: "amount", Error: "is required"}, httpErr.Errors[0])
}

func TestBindAndValidate_TypeMismatchNamesField(t *testing.T) {
	err := BindAndValidate(newContext(`{"name":"a","amount":"lots"}`), &samplePayload{})

	httpErr := requireHTTPError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Status)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "amount", httpErr.Errors[0].Field)
	assert.Equal(t, "must be a valid number", httpErr.Errors[0].Error)
}

func TestBindAndValidate_TypeMismatchKeepsValidating(t *testing.T) {
	err := BindAndValidate(newContext(`{"name":7,"amount":"lots","ratio":3}`), &samplePayload{})

	httpErr := requireHTTPError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Status)
	assert.Equal(t, []errs.FieldError{
		{Field: "name", Error: "must be a valid string"},
		{Field: "amount", Error: "must be a valid number"},
		{Field: "ratio", Error: "must be less than or equal to 1"},
	}, httpErr.Errors)
}

func TestBindAndValidate_TypeMismatchWithMissingField(t *testing.T) {
	err := BindAndValidate(newContext(`{"amount":"lots"}`), &samplePayload{})

	httpErr := requireHTTPError(t, err)
	assert.Equal(t, []string{"amount", "name"}, httpErr.Fields())
}

func TestBindAndValidate_MissingContentTypeIsJSON(t *testing.T) {
	payload := &samplePayload{}
	err := BindAndValidate(newContextWithType(`{"name":"a","amount":1}`, ""), payload)

	require.NoError(t, err)
	assert.Equal(t, "a", payload.Name)
}

func TestBindAndValidate_UnsupportedContentType(t *testing.T) {
	err := BindAndValidate(newContextWithType(`{"name":"a","amount":1}`, "text/plain"), &samplePayload{})

	var echoErr *echo.HTTPError
	require.True(t, errors.As(err, &echoErr))
	assert.Equal(t, http.StatusUnsupportedMediaType, echoErr.Code)
}

func TestBindAndValidate_RootLevelErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"empty body", "", "Request body is required"},
		{"whitespace only", "  \n", "Request body is required"},
		{"array", `[1,2]`, "Request body must be a JSON object"},
		{"string", `"hello"`, "Request body must be a JSON object"},
		{"null", `null`, "Request body must be a JSON object"},
		{"trailing object", `{"name":"a","amount":1}{"x":1}`, "Malformed JSON: unexpected data after the request body"},
		{"trailing garbage", `{"name":"a","amount":1} oops`, "Malformed JSON: unexpected data after the request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := BindAndValidate(newContext(tt.body), &samplePayload{})

			httpErr := requireHTTPError(t, err)
			assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Status)
			assert.Equal(t, tt.message, httpErr.Message)
			assert.Empty(t, httpErr.Errors)
		})
	}
}

func TestBindAndValidate_MalformedJSON(t *testing.T) {
	for _, body := range []string{`{"name" "a"}`, `{"name":`} {
		err := BindAndValidate(newContext(body), &samplePayload{})

		httpErr := requireHTTPError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Status, body)
		assert.Empty(t, httpErr.Errors, body)
	}
}

func TestBindAndValidate_CustomErrors(t *testing.T) {
	err := BindAndValidate(newContext(`{}`), &customPayload{})

	httpErr := requireHTTPError(t, err)
	assert.Equal(t, []errs.FieldError{{Field: "window", Error: "must start before it ends"}}, httpErr.Errors)
}

func TestExtractValidationError_UnknownError(t *testing.T) {
	msg, fields := ExtractValidationError(errors.New("boom"))

	assert.Equal(t, "Validation failed: boom", msg)
	assert.NotNil(t, fields)
	assert.Empty(t, fields)
}
