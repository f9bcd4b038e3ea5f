package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeNetwork      ErrorType = "NETWORK_ERROR"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidStatus    ErrorCode = "INVALID_STATUS"
	ErrCodeStatusUnchanged  ErrorCode = "STATUS_UNCHANGED"
	ErrCodeInvalidFilter    ErrorCode = "INVALID_FILTER"
	ErrCodeInvalidPeriod    ErrorCode = "INVALID_PERIOD"
	ErrCodeInvalidRole      ErrorCode = "INVALID_ROLE"
	ErrCodeInvalidAmount    ErrorCode = "INVALID_AMOUNT"
	ErrCodeInvalidDate      ErrorCode = "INVALID_DATE"

	ErrCodeOrderNotFound   ErrorCode = "ORDER_NOT_FOUND"
	ErrCodeProductNotFound ErrorCode = "PRODUCT_NOT_FOUND"
	ErrCodeUserNotFound    ErrorCode = "USER_NOT_FOUND"
	ErrCodeBackendRejected ErrorCode = "BACKEND_REJECTED"

	ErrCodeAccessDenied       ErrorCode = "ACCESS_DENIED"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
	ErrCodeNoSession          ErrorCode = "NO_SESSION"

	ErrCodeBackendUnreachable ErrorCode = "BACKEND_UNREACHABLE"
	ErrCodeUnexpected         ErrorCode = "UNEXPECTED"
)

const (
	MsgNetwork      = "Unable to reach the CRM server. Check your connection."
	MsgUnexpected   = "Something went wrong. Please try again."
	MsgAccessDenied = "Access Denied"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			return validationErrors.Errors[0].Message
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// GetDetailedMessage joins every field message of a validation error.
func (e *AppError) GetDetailedMessage() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			messages := make([]string, len(validationErrors.Errors))
			for i, err := range validationErrors.Errors {
				messages[i] = err.Message
			}
			return strings.Join(messages, "; ")
		}
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    "Validation failed",
		StatusCode: http.StatusBadRequest,
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

// NewNetworkError reports that no response was received from the backend.
func NewNetworkError(cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeNetwork,
		Code:       ErrCodeBackendUnreachable,
		Message:    MsgNetwork,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       ErrCodeUnexpected,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

func NewUnexpectedError(cause error) *AppError {
	return NewInternalError(MsgUnexpected, cause)
}

var (
	ErrAccessDenied       = NewForbiddenError(MsgAccessDenied, ErrCodeAccessDenied)
	ErrNoSession          = NewUnauthorizedError("Not logged in", ErrCodeNoSession)
	ErrInvalidCredentials = NewUnauthorizedError("Invalid username or password", ErrCodeInvalidCredentials)
	ErrInvalidToken       = NewUnauthorizedError("Session is no longer valid. Please log in again.", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("Session has expired. Please log in again.", ErrCodeTokenExpired)
	ErrStatusUnchanged    = NewValidationError("Order already has this status", ErrCodeStatusUnchanged)
)

// IsAppError unwraps err until it finds an *AppError.
func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsType reports whether err carries an *AppError of type t.
func IsType(err error, t ErrorType) bool {
	appErr, ok := IsAppError(err)
	return ok && appErr.Type == t
}

// UserMessage is the text shown to an operator for err. Errors outside the
// taxonomy collapse into the generic unexpected message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if appErr, ok := IsAppError(err); ok {
		return appErr.GetDetailedMessage()
	}
	return MsgUnexpected
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	status := e.StatusCode
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return status, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
