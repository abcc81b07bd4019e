package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/credit-risk/internal/errs"
)

// bind fills payload from the request body.
//
// JSON bodies, and bodies sent without a Content-Type, go through
// decodeJSON. Other content types use echo's binder, which answers 415 for
// types it does not know.
func bind(c echo.Context, payload Validatable) ([]errs.FieldError, error) {
	req := c.Request()

	ctype := strings.ToLower(req.Header.Get(echo.HeaderContentType))
	if ctype != "" && !strings.HasPrefix(ctype, echo.MIMEApplicationJSON) {
		if err := c.Bind(payload); err != nil {
			return nil, bindError(err)
		}
		return nil, nil
	}

	var body io.Reader = http.NoBody
	if req.Body != nil {
		body = req.Body
	}
	return decodeJSON(body, payload)
}

// decodeJSON decodes a single JSON object from r into payload.
//
// encoding/json stops reporting at the first value of the wrong type, so
// each field is decoded on its own and every mismatch is returned. A
// mismatched field is left at its zero value.
//
// Root-level problems (empty body, broken JSON, a non-object document,
// trailing data) come back as a 422 *errs.HTTPError without field errors.
func decodeJSON(r io.Reader, payload any) ([]errs.FieldError, error) {
	dec := json.NewDecoder(r)

	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, decodeError(err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errs.NewUnprocessableEntityError("Malformed JSON: unexpected data after the request body", true, nil)
	}

	var object map[string]json.RawMessage
	if err := json.Unmarshal(raw, &object); err != nil || object == nil {
		return nil, errs.NewUnprocessableEntityError("Request body must be a JSON object", true, nil)
	}

	return decodeFields(raw, object, payload), nil
}

// decodeFields assigns object's members to the matching fields of the
// struct payload points to. Embedded structs are not flattened.
func decodeFields(raw json.RawMessage, object map[string]json.RawMessage, payload any) []errs.FieldError {
	v := reflect.ValueOf(payload)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		if err := json.Unmarshal(raw, payload); err != nil {
			return []errs.FieldError{typeFieldError(err)}
		}
		return nil
	}

	var fieldErrors []errs.FieldError

	elem := v.Elem()
	for i := 0; i < elem.NumField(); i++ {
		sf := elem.Type().Field(i)
		name := jsonFieldName(sf)
		if !sf.IsExported() || name == "" {
			continue
		}

		value, ok := object[name]
		if !ok {
			continue
		}

		field := elem.Field(i)
		if err := json.Unmarshal(value, field.Addr().Interface()); err != nil {
			field.SetZero()
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: name,
				Error: fmt.Sprintf("must be a valid %s", jsonTypeName(sf.Type)),
			})
		}
	}

	return fieldErrors
}

func typeFieldError(err error) errs.FieldError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return errs.FieldError{
			Field: typeErr.Field,
			Error: fmt.Sprintf("must be a valid %s", jsonTypeName(typeErr.Type)),
		}
	}
	return errs.FieldError{Error: err.Error()}
}

// decodeError classifies a failure to read the top-level JSON value.
func decodeError(err error) error {
	if errors.Is(err, io.EOF) {
		return errs.NewUnprocessableEntityError("Request body is required", true, nil)
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return errs.NewUnprocessableEntityError(
			fmt.Sprintf("Malformed JSON at offset %d", syntaxErr.Offset), true, nil)
	}

	if errors.Is(err, io.ErrUnexpectedEOF) {
		return errs.NewUnprocessableEntityError("Malformed JSON: unexpected end of input", true, nil)
	}

	return errs.NewBadRequestError("Failed to read request body", false, nil, nil, nil)
}

// mergeFieldErrors appends validator errors to the type errors, leaving out
// fields that already failed to decode.
func mergeFieldErrors(typeErrors, validationErrors []errs.FieldError) []errs.FieldError {
	failed := make(map[string]struct{}, len(typeErrors))
	merged := make([]errs.FieldError, 0, len(typeErrors)+len(validationErrors))

	for _, fe := range typeErrors {
		failed[fe.Field] = struct{}{}
		merged = append(merged, fe)
	}
	for _, fe := range validationErrors {
		if _, ok := failed[fe.Field]; ok {
			continue
		}
		merged = append(merged, fe)
	}

	return merged
}
