package internal_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/frahmantamala/planforge/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("AppError", func() {
	It("should map each class to its status code", func() {
		Expect(internal.ErrInvalidCredentials.StatusCode).To(Equal(http.StatusUnauthorized))
		Expect(internal.ErrNotEnoughPermission.StatusCode).To(Equal(http.StatusForbidden))
		Expect(internal.ErrDepartmentNotFound.StatusCode).To(Equal(http.StatusNotFound))
		Expect(internal.ErrEmailRegistered.StatusCode).To(Equal(http.StatusBadRequest))
		Expect(internal.NewValidationFieldError("name", "name is required", internal.ErrCodeValidationFailed).StatusCode).
			To(Equal(http.StatusUnprocessableEntity))
		Expect(internal.NewInternalError("boom", nil).StatusCode).To(Equal(http.StatusInternalServerError))
	})

	It("should not mutate shared sentinels when adding a cause", func() {
		wrapped := internal.ErrAuthenticationFail.WithCause(errors.New("provider down"))
		Expect(wrapped.Cause).To(HaveOccurred())
		Expect(internal.ErrAuthenticationFail.Cause).To(BeNil())
		Expect(errors.Is(wrapped, internal.ErrAuthenticationFail)).To(BeTrue())
	})

	It("should be found through wrapping", func() {
		err := fmt.Errorf("load: %w", internal.ErrPlanNotFound)
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Code).To(Equal(internal.ErrCodePlanNotFound))
	})

	It("should never serialize the cause", func() {
		err := internal.NewInternalError("Internal server error", errors.New("pq: password authentication failed"))
		_, body := err.ToHTTPResponse()
		raw, marshalErr := json.Marshal(body)
		Expect(marshalErr).NotTo(HaveOccurred())
		Expect(string(raw)).NotTo(ContainSubstring("password authentication"))
		Expect(string(raw)).To(ContainSubstring(`"message":"Internal server error"`))
	})

	It("should join validation messages", func() {
		err := internal.NewValidationError("Validation failed", internal.ErrCodeValidationFailed).
			WithDetails(internal.ValidationErrors{Errors: []internal.ValidationError{
				{Field: "name", Message: "name is required"},
				{Field: "code", Message: "code is required"},
			}})
		Expect(err.GetDetailedMessage()).To(Equal("name is required; code is required"))
		Expect(err.Error()).To(Equal("name is required"))
	})
})

var _ = Describe("Role", func() {
	It("should parse known roles only", func() {
		r, ok := internal.ParseRole("Creator")
		Expect(ok).To(BeTrue())
		Expect(r).To(Equal(internal.RoleCreator))

		_, ok = internal.ParseRole("creator")
		Expect(ok).To(BeFalse())
	})

	It("should treat SuperAdmin and Admin as administrators", func() {
		Expect(internal.RoleSuperAdmin.IsAdmin()).To(BeTrue())
		Expect(internal.RoleAdmin.IsAdmin()).To(BeTrue())
		Expect(internal.RoleApprover.IsAdmin()).To(BeFalse())
	})
})
