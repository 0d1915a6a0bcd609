package store_test

import (
	"context"
	"testing"
	"time"

	departmentDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/department"
	planningdataDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/planningdata"
	"github.com/frahmantamala/planforge/internal/core/store"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestStore(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Store Suite")
}

var _ = Describe("Collection", func() {
	var (
		db   *gorm.DB
		coll *store.Collection[departmentDatamodel.Department]
		ctx  context.Context
	)

	newDept := func(id, code string, at time.Time) *departmentDatamodel.Department {
		return &departmentDatamodel.Department{
			ID:        id,
			Name:      "Dept " + code,
			Code:      code,
			Status:    "Active",
			CreatedBy: "u-1",
			CreatedAt: at,
		}
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&departmentDatamodel.Department{})).To(Succeed())

		coll = store.NewCollection[departmentDatamodel.Department](db)
		ctx = context.Background()
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.Close()
	})

	It("should insert and find a record by id", func() {
		now := time.Now().UTC()
		Expect(coll.Insert(ctx, newDept("d-1", "FIN", now))).To(Succeed())

		got, err := coll.FindByID(ctx, "d-1")
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Code).To(Equal("FIN"))
	})

	It("should report not found for unknown ids", func() {
		_, err := coll.FindByID(ctx, "missing")
		Expect(err).To(MatchError(store.ErrNotFound))
	})

	It("should filter and order results", func() {
		base := time.Now().UTC()
		Expect(coll.Insert(ctx, newDept("d-2", "OPS", base.Add(time.Second)))).To(Succeed())
		Expect(coll.Insert(ctx, newDept("d-1", "FIN", base))).To(Succeed())

		all, err := coll.Find(ctx, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(all).To(HaveLen(2))
		Expect(all[0].ID).To(Equal("d-1"))

		ops, err := coll.Find(ctx, store.Filter{"code": "OPS"})
		Expect(err).NotTo(HaveOccurred())
		Expect(ops).To(HaveLen(1))
		Expect(ops[0].ID).To(Equal("d-2"))

		none, err := coll.Find(ctx, store.Filter{"code": "HR"})
		Expect(err).NotTo(HaveOccurred())
		Expect(none).NotTo(BeNil())
		Expect(none).To(BeEmpty())
	})

	It("should save every column, including cleared ones", func() {
		d := newDept("d-1", "FIN", time.Now().UTC())
		desc := "finance"
		d.Description = &desc
		Expect(coll.Insert(ctx, d)).To(Succeed())

		d.Name = "Finance"
		d.Description = nil
		Expect(coll.Save(ctx, d)).To(Succeed())

		got, err := coll.FindByID(ctx, "d-1")
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Name).To(Equal("Finance"))
		Expect(got.Description).To(BeNil())
	})

	It("should keep the caller's update timestamp", func() {
		Expect(db.AutoMigrate(&planningdataDatamodel.PlanningData{})).To(Succeed())
		pd := store.NewCollection[planningdataDatamodel.PlanningData](db)

		created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
		rec := &planningdataDatamodel.PlanningData{
			ID: "pd-1", PlanID: "plan-1", DepartmentID: "d-1", ProductID: "prod-1",
			Planned: 10, Status: "pending", CreatedAt: created, UpdatedAt: created,
		}
		Expect(pd.Insert(ctx, rec)).To(Succeed())

		updated := created.Add(time.Hour)
		rec.Actual = 4
		rec.UpdatedAt = updated
		Expect(pd.Save(ctx, rec)).To(Succeed())
		Expect(rec.UpdatedAt).To(BeTemporally("==", updated))

		got, err := pd.FindByID(ctx, "pd-1")
		Expect(err).NotTo(HaveOccurred())
		Expect(got.CreatedAt).To(BeTemporally("==", created))
		Expect(got.UpdatedAt).To(BeTemporally("==", updated))
	})

	It("should refuse to save a record that does not exist", func() {
		Expect(coll.Save(ctx, newDept("ghost", "X", time.Now().UTC()))).To(MatchError(store.ErrNotFound))
	})

	It("should delete by id and report missing records", func() {
		Expect(coll.Insert(ctx, newDept("d-1", "FIN", time.Now().UTC()))).To(Succeed())
		Expect(coll.DeleteByID(ctx, "d-1")).To(Succeed())
		Expect(coll.DeleteByID(ctx, "d-1")).To(MatchError(store.ErrNotFound))
	})
})
