package handler

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse represents a single failed field of a submitted form.
type ErrorResponse struct {
	FailedField string
	Tag         string
	Param       string
	Value       interface{}
}

// Message is the text shown next to the form field.
func (e ErrorResponse) Message() string {
	switch e.Tag {
	case "required":
		return e.FailedField + " is required"
	case "url":
		return e.FailedField + " must be a valid URL"
	case "email":
		return e.FailedField + " must be a valid email address"
	case "oneof":
		return e.FailedField + " must be one of: " + strings.ReplaceAll(e.Param, " ", ", ")
	case "min":
		return e.FailedField + " must be at least " + e.Param + " characters"
	case "max":
		return e.FailedField + " must be at most " + e.Param + " characters"
	default:
		return e.FailedField + " is invalid"
	}
}

// XValidator validates form structs by their validate tags.
type XValidator struct {
	validator *validator.Validate
}

// NewValidator creates a form validator.
func NewValidator() *XValidator {
	return &XValidator{validator: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate performs validation on the provided data and returns the failed fields.
func (v *XValidator) Validate(data interface{}) []ErrorResponse {
	var validationErrors []ErrorResponse

	err := v.validator.Struct(data)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return []ErrorResponse{{FailedField: "form", Tag: "invalid"}}
	}

	for _, fe := range errs {
		validationErrors = append(validationErrors, ErrorResponse{
			FailedField: fe.Field(),
			Tag:         fe.Tag(),
			Param:       fe.Param(),
			Value:       fe.Value(),
		})
	}

	return validationErrors
}

// Messages maps the failed fields to their messages, for the form templates.
func Messages(errs []ErrorResponse) map[string]string {
	if len(errs) == 0 {
		return nil
	}

	out := make(map[string]string, len(errs))
	for _, e := range errs {
		out[e.FailedField] = e.Message()
	}

	return out
}
