// Package validation checks medicine records with go-playground/validator
// and builds catalogue quality reports.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/matsen/medrec/internal/medicine"
)

// TagFeatures is reported when a medicine has neither uses nor components.
const TagFeatures = "features"

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is a single failed rule on a medicine record.
type FieldError struct {
	field   string
	tag     string
	message string
}

// Field returns the JSON field path that failed, e.g. "uses[1]".
func (e *FieldError) Field() string {
	return e.field
}

// Tag returns the validation tag that failed.
func (e *FieldError) Tag() string {
	return e.tag
}

func (e *FieldError) Error() string {
	return e.message
}

// RecordError collects every failed rule for one medicine.
type RecordError struct {
	Name   string
	errors []FieldError
}

// Errors returns the individual field errors.
func (re *RecordError) Errors() []FieldError {
	return re.errors
}

func (re *RecordError) Error() string {
	if len(re.errors) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(re.errors))
	for i := range re.errors {
		messages[i] = re.errors[i].Error()
	}
	return strings.Join(messages, "; ")
}

// GetValidator returns the singleton validator instance.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report JSON field names so messages match the catalogue files
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
			panic(fmt.Sprintf("registering notblank validator: %v", err))
		}
		validate.RegisterStructValidation(medicineStructLevel, medicine.Medicine{})
	})

	return validate
}

// medicineStructLevel requires at least one use or component.
func medicineStructLevel(sl validator.StructLevel) {
	m := sl.Current().Interface().(medicine.Medicine)
	if !m.HasFeatures() {
		sl.ReportError(m.Uses, "uses", "Uses", TagFeatures, "")
	}
}

// ValidateMedicine checks a single record. It returns nil or a *RecordError.
func ValidateMedicine(m medicine.Medicine) error {
	err := GetValidator().Struct(m)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &RecordError{
			Name:   m.Name,
			errors: []FieldError{{field: "unknown", tag: "unknown", message: err.Error()}},
		}
	}

	fieldErrors := make([]FieldError, len(validationErrs))
	for i, fe := range validationErrs {
		fieldErrors[i] = FieldError{
			field:   fe.Field(),
			tag:     fe.Tag(),
			message: translateError(fe),
		}
	}
	return &RecordError{Name: m.Name, errors: fieldErrors}
}

var errorMessageTemplates = map[string]string{
	"required": "%s is required",
	"notblank": "%s must not be blank",
}

func translateError(fe validator.FieldError) string {
	if fe.Tag() == TagFeatures {
		return "medicine must have at least one use or component"
	}
	if template, ok := errorMessageTemplates[fe.Tag()]; ok {
		return fmt.Sprintf(template, fe.Field())
	}
	return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
}
