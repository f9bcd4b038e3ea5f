package internal_test

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/frahmantamala/crm-console/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("AppError", func() {
	It("is found through wrapping", func() {
		err := fmt.Errorf("update status: %w", internal.ErrAccessDenied)

		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Type).To(Equal(internal.ErrorTypeForbidden))
		Expect(errors.Is(err, internal.ErrAccessDenied)).To(BeTrue())
	})

	It("maps unknown errors to the generic message", func() {
		Expect(internal.UserMessage(errors.New("boom"))).To(Equal(internal.MsgUnexpected))
		Expect(internal.UserMessage(nil)).To(BeEmpty())
	})

	It("shows every validation field message", func() {
		err := internal.NewValidationError("Validation failed", internal.ErrCodeValidationFailed).
			WithDetails(internal.ValidationErrors{Errors: []internal.ValidationError{
				{Field: "name", Message: "name is required"},
				{Field: "password", Message: "password must be at least 6 characters"},
			}})

		Expect(internal.UserMessage(err)).To(Equal("name is required; password must be at least 6 characters"))
	})

	It("classifies network errors", func() {
		err := internal.NewNetworkError(errors.New("connection refused"))

		Expect(internal.IsType(err, internal.ErrorTypeNetwork)).To(BeTrue())
		Expect(internal.UserMessage(err)).To(Equal(internal.MsgNetwork))
		status, _ := err.ToHTTPResponse()
		Expect(status).To(Equal(http.StatusBadGateway))
	})
})
