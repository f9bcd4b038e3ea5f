package crmapi

import (
	"fmt"
	"net/http"

	"github.com/frahmantamala/crm-console/internal"
	"github.com/go-resty/resty/v2"
)

// apiError is the error body of the backend. Routes disagree on the field
// name.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (e *apiError) text() string {
	if e == nil {
		return ""
	}
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

func classifyTransport(err error) error {
	return internal.NewNetworkError(err)
}

func classifyResponse(resp *resty.Response) error {
	status := resp.StatusCode()
	msg := ""
	if body, ok := resp.Error().(*apiError); ok {
		msg = body.text()
	}

	switch {
	case status == http.StatusUnauthorized:
		if msg == "" {
			return internal.ErrInvalidToken
		}
		return internal.NewUnauthorizedError(msg, internal.ErrCodeInvalidToken)
	case status == http.StatusForbidden:
		if msg == "" {
			msg = internal.MsgAccessDenied
		}
		return internal.NewForbiddenError(msg, internal.ErrCodeAccessDenied)
	case status >= 400 && status < 500 && msg != "":
		return &internal.AppError{
			Type:       validationType(status),
			Code:       internal.ErrCodeBackendRejected,
			Message:    msg,
			StatusCode: status,
		}
	default:
		return internal.NewUnexpectedError(fmt.Errorf("backend responded %d", status))
	}
}

func validationType(status int) internal.ErrorType {
	switch status {
	case http.StatusNotFound:
		return internal.ErrorTypeNotFound
	case http.StatusConflict:
		return internal.ErrorTypeConflict
	}
	return internal.ErrorTypeValidation
}
