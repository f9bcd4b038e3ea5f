package validation

import (
	"fmt"
	"strings"
	"time"

	errors "github.com/frahmantamala/crm-console/internal"
)

// DateLayout is the calendar date format the backend expects.
const DateLayout = "2006-01-02"

type ValidatorFunc func(interface{}) *errors.AppError

type FieldValidator struct {
	FieldName  string
	Value      interface{}
	Validators []ValidatorFunc
}

type ValidationBuilder struct {
	fields []*FieldValidator
}

func NewValidator() *ValidationBuilder {
	return &ValidationBuilder{
		fields: make([]*FieldValidator, 0),
	}
}

func (v *ValidationBuilder) Field(name string, value interface{}) *FieldValidator {
	fv := &FieldValidator{
		FieldName:  name,
		Value:      value,
		Validators: make([]ValidatorFunc, 0),
	}
	v.fields = append(v.fields, fv)
	return fv
}

func (fv *FieldValidator) fail(message string, code errors.ErrorCode) *errors.AppError {
	return errors.NewValidationFieldError(fv.FieldName, message, code)
}

func (fv *FieldValidator) Required() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		missing := false
		switch v := value.(type) {
		case string:
			missing = strings.TrimSpace(v) == ""
		case *string:
			missing = v == nil || strings.TrimSpace(*v) == ""
		case float64:
			missing = v == 0
		case nil:
			missing = true
		}
		if missing {
			return fv.fail(fmt.Sprintf("%s is required", fv.FieldName), errors.ErrCodeValidationFailed)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) MinLength(min int) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := value.(string); ok && len(v) < min {
			return fv.fail(fmt.Sprintf("%s must be at least %d characters", fv.FieldName, min), errors.ErrCodeValidationFailed)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) MaxLength(max int) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := value.(string); ok && len(v) > max {
			return fv.fail(fmt.Sprintf("%s must not exceed %d characters", fv.FieldName, max), errors.ErrCodeValidationFailed)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) Positive() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := value.(float64); ok && v <= 0 {
			return fv.fail(fmt.Sprintf("%s must be greater than 0", fv.FieldName), errors.ErrCodeInvalidAmount)
		}
		return nil
	})
	return fv
}

// Between checks min <= value <= max for float64 values.
func (fv *FieldValidator) Between(min, max float64) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := value.(float64); ok && (v < min || v > max) {
			return fv.fail(fmt.Sprintf("%s must be between %g and %g", fv.FieldName, min, max), errors.ErrCodeInvalidAmount)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) NotNegative() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := value.(float64); ok && v < 0 {
			return fv.fail(fmt.Sprintf("%s cannot be negative", fv.FieldName), errors.ErrCodeInvalidAmount)
		}
		return nil
	})
	return fv
}

// OneOf accepts an empty string; combine with Required to forbid it.
func (fv *FieldValidator) OneOf(allowed ...string) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		v, ok := value.(string)
		if !ok || v == "" {
			return nil
		}
		for _, a := range allowed {
			if v == a {
				return nil
			}
		}
		return fv.fail(fmt.Sprintf("%s must be one of: %s", fv.FieldName, strings.Join(allowed, ", ")), errors.ErrCodeValidationFailed)
	})
	return fv
}

func (fv *FieldValidator) MinItems(min int) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := value.([]string); (ok || value == nil) && len(v) < min {
			return fv.fail(fmt.Sprintf("%s must have at least %d entries", fv.FieldName, min), errors.ErrCodeValidationFailed)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) MaxItems(max int) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := value.([]string); ok && len(v) > max {
			return fv.fail(fmt.Sprintf("%s cannot have more than %d entries", fv.FieldName, max), errors.ErrCodeValidationFailed)
		}
		return nil
	})
	return fv
}

// Date checks a YYYY-MM-DD string. Empty strings pass.
func (fv *FieldValidator) Date() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		v, ok := value.(string)
		if !ok || v == "" {
			return nil
		}
		if _, err := time.Parse(DateLayout, v); err != nil {
			return fv.fail(fmt.Sprintf("%s must be a date in YYYY-MM-DD format", fv.FieldName), errors.ErrCodeInvalidDate)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) Custom(validator func(interface{}) *errors.AppError) *FieldValidator {
	fv.Validators = append(fv.Validators, validator)
	return fv
}

// Validate runs every validator and folds the failures into one
// validation error. Each field reports its first failure only.
func (v *ValidationBuilder) Validate() *errors.AppError {
	var validationErrors []errors.ValidationError

	for _, field := range v.fields {
		for _, validator := range field.Validators {
			appErr := validator(field.Value)
			if appErr == nil {
				continue
			}
			if details, ok := appErr.Details.(errors.ValidationErrors); ok {
				validationErrors = append(validationErrors, details.Errors...)
			} else {
				validationErrors = append(validationErrors, errors.ValidationError{
					Field:   field.FieldName,
					Message: appErr.Message,
					Code:    string(appErr.Code),
				})
			}
			break
		}
	}

	if len(validationErrors) > 0 {
		return errors.NewValidationError("Validation failed", errors.ErrCodeValidationFailed).
			WithDetails(errors.ValidationErrors{Errors: validationErrors})
	}

	return nil
}
