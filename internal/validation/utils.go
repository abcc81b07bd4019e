package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/deppfellow/credit-risk/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const validationFailedMessage = "Validation failed"

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
// - Define a request struct with validator tags (`validate:"required,gte=0"`)
// - Implement Validate() error that runs validation.Struct(req)
// - Return validator.ValidationErrors (or CustomValidationErrors for custom cases)
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue for a specific field.
// This is used for validation errors that cannot be expressed via validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return validationFailedMessage
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
// 1) the body is decoded into payload, collecting fields of the wrong type
// 2) payload.Validate() applies validation rules
// 3) every failure from both steps becomes one 422 *errs.HTTPError
//
// payload must be a pointer to a struct.
func BindAndValidate(c echo.Context, payload Validatable) error {
	typeErrors, err := bind(c, payload)
	if err != nil {
		return err
	}

	msg, fieldErrors := validateStruct(payload)
	if fieldErrors == nil && len(typeErrors) == 0 {
		return nil
	}
	if msg == "" {
		msg = validationFailedMessage
	}

	return errs.NewUnprocessableEntityError(msg, true, mergeFieldErrors(typeErrors, fieldErrors))
}

// bindError classifies errors from echo's binder for non-JSON bodies.
//
// A value of the wrong type names its field. Anything else (e.g.
// unsupported media type) is passed through for the global error handler.
func bindError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return errs.NewUnprocessableEntityError(validationFailedMessage, true, []errs.FieldError{typeFieldError(typeErr)})
	}

	return err
}

func jsonTypeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int8, reflect.Int16,
		reflect.Int32, reflect.Int64, reflect.Uint, reflect.Uint8, reflect.Uint16,
		reflect.Uint32, reflect.Uint64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return "object"
	}
}

// validateStruct calls v.Validate() and extracts field errors if validation fails.
func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return ExtractValidationError(err)
	}
	return "", nil
}

// ExtractValidationError turns a Validate() error into client-facing field errors.
//
// The returned slice is never nil for a non-nil err, so callers can use it
// as the failure signal.
func ExtractValidationError(err error) (string, []errs.FieldError) {
	fieldErrors := []errs.FieldError{}

	var customErrors CustomValidationErrors
	if errors.As(err, &customErrors) {
		for _, ce := range customErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: ce.Field,
				Error: ce.Message,
			})
		}
		return validationFailedMessage, fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return validationFailedMessage + ": " + err.Error(), fieldErrors
	}

	for _, fe := range validationErrors {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: fe.Field(),
			Error: fieldMessage(fe),
		})
	}

	return validationFailedMessage, fieldErrors
}

// fieldMessage converts one validator failure into a user-friendly message.
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"

	case "min":
		// min means minimum length for strings, minimum value for numbers.
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())

	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())

	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())

	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())

	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())

	case "lt":
		return fmt.Sprintf("must be less than %s", fe.Param())

	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())

	case "dive":
		return "some items are invalid"

	default:
		if fe.Param() != "" {
			return fmt.Sprintf("%s: %s:%s", fe.Field(), fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("%s: %s", fe.Field(), fe.Tag())
	}
}
