package brand_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/frahmantamala/planforge/internal"
	"github.com/frahmantamala/planforge/internal/auth/rbac"
	"github.com/frahmantamala/planforge/internal/brand"
	brandDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/brand"
	"github.com/frahmantamala/planforge/internal/core/store"
	"github.com/frahmantamala/planforge/internal/core/store/storetest"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

func TestBrand(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Brand Suite")
}

var _ = Describe("Brand Service", func() {
	var (
		db         *gorm.DB
		coll       *store.Collection[brandDatamodel.Brand]
		service    *brand.Service
		ctx        context.Context
		superAdmin *internal.User
	)

	validDTO := func() brand.CreateBrandDTO {
		return brand.CreateBrandDTO{
			Name:            "Acme",
			ShortName:       "ACM",
			SAPDivisionCode: "D10",
			ArticleType:     "Apparel",
			MerchandiseCode: "M-01",
		}
	}

	BeforeEach(func() {
		var err error
		db, err = storetest.Open()
		Expect(err).NotTo(HaveOccurred())

		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		coll = store.NewCollection[brandDatamodel.Brand](db)
		service = brand.NewService(coll, rbac.NewGate(logger), logger)
		ctx = context.Background()
		superAdmin = &internal.User{ID: "sa-1", Role: internal.RoleSuperAdmin}
	})

	AfterEach(func() {
		storetest.Close(db)
	})

	It("should mirror the id into brand_id", func() {
		b, err := service.Create(ctx, superAdmin, validDTO())

		Expect(err).NotTo(HaveOccurred())
		Expect(b.BrandID).To(Equal(b.ID))

		loaded, err := service.Get(ctx, b.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.BrandID).To(Equal(b.ID))
	})

	It("should require every descriptive field", func() {
		dto := validDTO()
		dto.SAPDivisionCode = ""

		_, err := service.Create(ctx, superAdmin, dto)
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.StatusCode).To(Equal(422))
	})

	It("should keep brand mutation to super admins", func() {
		admin := &internal.User{ID: "a-1", Role: internal.RoleAdmin}

		_, err := service.Create(ctx, admin, validDTO())
		Expect(err).To(MatchError(internal.ErrNotEnoughPermission))

		b, err := service.Create(ctx, superAdmin, validDTO())
		Expect(err).NotTo(HaveOccurred())
		Expect(service.Delete(ctx, admin, b.ID)).To(MatchError(internal.ErrNotEnoughPermission))
	})

	It("should update an existing brand and 404 on unknown ids", func() {
		b, err := service.Create(ctx, superAdmin, validDTO())
		Expect(err).NotTo(HaveOccurred())

		dto := validDTO()
		dto.Name = "Acme Corp"
		updated, err := service.Update(ctx, superAdmin, b.ID, dto)
		Expect(err).NotTo(HaveOccurred())
		Expect(updated.Name).To(Equal("Acme Corp"))
		Expect(updated.BrandID).To(Equal(b.ID))

		_, err = service.Update(ctx, superAdmin, "missing", dto)
		Expect(err).To(MatchError(internal.ErrBrandNotFound))
	})

	It("should remove only incomplete brands", func() {
		kept, err := service.Create(ctx, superAdmin, validDTO())
		Expect(err).NotTo(HaveOccurred())
		Expect(coll.Insert(ctx, &brandDatamodel.Brand{ID: "legacy-1", Name: "Legacy", Status: "Active"})).To(Succeed())

		removed, err := service.RemoveIncomplete(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(removed).To(Equal(1))

		brands, err := service.List(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(brands).To(HaveLen(1))
		Expect(brands[0].ID).To(Equal(kept.ID))
	})
})
