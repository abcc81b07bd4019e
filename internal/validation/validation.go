// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules (like
// required fields or numeric bounds) defined in struct tags
// and extracts validation errors into a format the client can
// understand.
package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared by every payload. validator caches struct metadata
// and is safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name ("credit_score") instead of the Go
	// field name ("CreditScore"), so clients can map errors back to input.
	v.RegisterTagNameFunc(jsonFieldName)

	return v
}

// jsonFieldName is the key a struct field is decoded from, or "" when the
// field is skipped by encoding/json.
func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// Struct validates s against its `validate` tags.
// It returns validator.ValidationErrors on constraint failures.
func Struct(s any) error {
	return validate.Struct(s)
}
