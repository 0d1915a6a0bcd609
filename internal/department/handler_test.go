package department_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/frahmantamala/planforge/internal"
	"github.com/frahmantamala/planforge/internal/auth/rbac"
	departmentDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/department"
	"github.com/frahmantamala/planforge/internal/core/store"
	"github.com/frahmantamala/planforge/internal/core/store/storetest"
	"github.com/frahmantamala/planforge/internal/department"
	"github.com/frahmantamala/planforge/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("Department Handler Integration", func() {
	var (
		db     *gorm.DB
		router chi.Router
		actor  *internal.User
	)

	BeforeEach(func() {
		var err error
		db, err = storetest.Open()
		Expect(err).NotTo(HaveOccurred())

		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service := department.NewService(store.NewCollection[departmentDatamodel.Department](db), rbac.NewGate(slogger), slogger)
		handler := department.NewHandler(transport.NewBaseHandler(slogger), service)
		actor = &internal.User{ID: "sa-1", Role: internal.RoleSuperAdmin}

		router = chi.NewRouter()
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(internal.ContextWithUser(r.Context(), actor)))
			})
		})
		router.Get("/departments", handler.ListDepartments)
		router.Post("/departments", handler.CreateDepartment)
		router.Get("/departments/{id}", handler.GetDepartment)
		router.Put("/departments/{id}", handler.UpdateDepartment)
		router.Delete("/departments/{id}", handler.DeleteDepartment)
	})

	AfterEach(func() {
		storetest.Close(db)
	})

	do := func(method, path, body string) *httptest.ResponseRecorder {
		var req *http.Request
		if body == "" {
			req = httptest.NewRequest(method, path, nil)
		} else {
			req = httptest.NewRequest(method, path, strings.NewReader(body))
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("should run the full lifecycle", func() {
		w := do(http.MethodPost, "/departments", `{"name":"Finance","code":"FIN","description":"Money"}`)
		Expect(w.Code).To(Equal(http.StatusOK))

		var created department.Department
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
		Expect(created.ID).NotTo(BeEmpty())

		w = do(http.MethodGet, "/departments", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		var list []department.Department
		Expect(json.NewDecoder(w.Body).Decode(&list)).To(Succeed())
		Expect(list).To(HaveLen(1))

		w = do(http.MethodPut, "/departments/"+created.ID, `{"name":"Finance","code":"FIN2"}`)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"code":"FIN2"`))

		w = do(http.MethodDelete, "/departments/"+created.ID, "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("Department deleted successfully"))

		w = do(http.MethodGet, "/departments/"+created.ID, "")
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("should answer 404 when updating an unknown department", func() {
		w := do(http.MethodPut, "/departments/does-not-exist", `{"name":"Finance","code":"FIN"}`)
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("should answer 403 for admins", func() {
		actor = &internal.User{ID: "a-1", Role: internal.RoleAdmin}
		w := do(http.MethodPost, "/departments", `{"name":"Finance","code":"FIN"}`)
		Expect(w.Code).To(Equal(http.StatusForbidden))
		Expect(w.Body.String()).To(ContainSubstring("Not enough permissions"))
	})

	It("should answer 422 for invalid bodies", func() {
		w := do(http.MethodPost, "/departments", `{"name":""}`)
		Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
	})
})
