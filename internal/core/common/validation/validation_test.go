package validation_test

import (
	"testing"

	"github.com/frahmantamala/planforge/internal"
	"github.com/frahmantamala/planforge/internal/core/common/validation"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestValidation(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Validation Suite")
}

func fields(err *internal.AppError) []string {
	details := err.Details.(internal.ValidationErrors)
	names := make([]string, len(details.Errors))
	for i, e := range details.Errors {
		names[i] = e.Field
	}
	return names
}

var _ = Describe("ValidationBuilder", func() {
	It("should pass when every rule holds", func() {
		v := validation.NewValidator()
		v.Field("email", "creator@planforge.com").Required().Email()
		v.Field("role", "Creator").Required().Role()
		v.Field("mrp", 10.5).NonNegative()
		Expect(v.Validate()).To(BeNil())
	})

	It("should collect one error per failing field", func() {
		v := validation.NewValidator()
		v.Field("name", "").Required().MinLength(2)
		v.Field("email", "not-an-email").Required().Email()
		v.Field("role", "Owner").Role()

		err := v.Validate()
		Expect(err).NotTo(BeNil())
		Expect(err.StatusCode).To(Equal(422))
		Expect(fields(err)).To(Equal([]string{"name", "email", "role"}))
	})

	It("should reject negative quantities", func() {
		planned := -1.0
		v := validation.NewValidator()
		v.Field("planned", &planned).NonNegative()
		err := v.Validate()
		Expect(err).NotTo(BeNil())
		Expect(err.Details.(internal.ValidationErrors).Errors[0].Code).To(Equal(string(internal.ErrCodeNegativeValue)))
	})

	It("should ignore absent optional values", func() {
		var status *string
		v := validation.NewValidator()
		v.Field("status", status).OneOf("pending", "approved")
		v.Field("actual", (*float64)(nil)).NonNegative()
		Expect(v.Validate()).To(BeNil())
	})

	It("should validate calendar dates", func() {
		v := validation.NewValidator()
		v.Field("start_date", "2024-13-01").Date()
		Expect(v.Validate()).NotTo(BeNil())

		Expect(validation.DateRange("start_date", "2024-05-01", "end_date", "2024-04-01")).NotTo(BeNil())
		Expect(validation.DateRange("start_date", "2024-05-01", "end_date", "2024-05-31")).To(BeNil())
	})
})
