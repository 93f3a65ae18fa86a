package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report fields under their json names so error maps match the
	// wire format
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidationError carries per-field constraint violations. It maps to
// HTTP 400 with the field errors in the response body.
type ValidationError struct {
	FieldErrors map[string]string
}

func (e *ValidationError) Error() string {
	return "Validation failed"
}

// validateRequest checks the declared constraints on a ProductRequest
// and collects one message per violating field.
func validateRequest(req ProductRequest) error {
	fieldErrors := make(map[string]string)

	if err := validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return err
		}
		for _, fieldError := range validationErrors {
			fieldErrors[fieldError.Field()] = constraintMessage(fieldError)
		}
	}

	// Whitespace-only names pass the min-length tag but are still blank
	if _, seen := fieldErrors["name"]; !seen && strings.TrimSpace(req.Name) == "" {
		fieldErrors["name"] = "Name cannot be blank"
	}

	// The validator has no numeric tags for decimals, so the price
	// bound is checked by hand
	if _, seen := fieldErrors["price"]; !seen && req.Price != nil && req.Price.IsNegative() {
		fieldErrors["price"] = "Price must be greater than or equal to 0.0"
	}

	if len(fieldErrors) > 0 {
		return &ValidationError{FieldErrors: fieldErrors}
	}
	return nil
}

// constraintMessage converts a validator error to the message exposed
// on the wire
func constraintMessage(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		switch fieldError.Field() {
		case "name":
			return "Name cannot be blank"
		case "price":
			return "Price is required"
		case "stock":
			return "Stock is required"
		}
		return "This field is required"
	case "min", "max":
		switch fieldError.Field() {
		case "name":
			return "Name must be between 2 and 100 characters"
		case "description":
			return "Description must not exceed 500 characters"
		case "stock":
			return "Stock must be greater than or equal to 0"
		}
	}
	return "Invalid value"
}
