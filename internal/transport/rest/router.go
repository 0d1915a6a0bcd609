package rest

import (
	"log/slog"

	"github.com/frahmantamala/planforge/internal/auth"
	"github.com/frahmantamala/planforge/internal/auth/rbac"
	"github.com/frahmantamala/planforge/internal/brand"
	"github.com/frahmantamala/planforge/internal/category"
	"github.com/frahmantamala/planforge/internal/department"
	"github.com/frahmantamala/planforge/internal/notification"
	"github.com/frahmantamala/planforge/internal/plan"
	"github.com/frahmantamala/planforge/internal/planningdata"
	"github.com/frahmantamala/planforge/internal/product"
	"github.com/frahmantamala/planforge/internal/subcategory"
	"github.com/frahmantamala/planforge/internal/transport"
	"github.com/frahmantamala/planforge/internal/transport/middleware"
	"github.com/frahmantamala/planforge/internal/transport/swagger"
	"github.com/frahmantamala/planforge/internal/user"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

type Handlers struct {
	Auth         *auth.Handler
	User         *user.Handler
	Department   *department.Handler
	Brand        *brand.Handler
	Category     *category.Handler
	Subcategory  *subcategory.Handler
	Product      *product.Handler
	Plan         *plan.Handler
	PlanningData *planningdata.Handler
	Notification *notification.Handler
}

type Options struct {
	DB             Pinger
	Gate           *rbac.Gate
	AllowedOrigins []string
	// Metrics and MetricsPath enable the Prometheus middleware and endpoint.
	Metrics     *middleware.Metrics
	MetricsPath string
	// OpenAPI, when set, validates requests against the document.
	OpenAPI *openapi3.T
	Logger  *slog.Logger
}

func RegisterAllRoutes(router *chi.Mux, h Handlers, opts Options) error {
	healthHandler := NewHealthHandler(opts.DB)
	gate := opts.Gate
	if gate == nil {
		gate = rbac.NewGate(opts.Logger)
	}

	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.TraceID)
	router.Use(middleware.RecoveryMiddleware(opts.Logger))
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware)
	}
	router.Use(middleware.LoggingMiddleware(opts.Logger, "/api/health", opts.MetricsPath))

	if opts.OpenAPI != nil {
		validate, err := middleware.OpenAPIValidator(opts.OpenAPI, transport.NewBaseHandler(opts.Logger))
		if err != nil {
			return err
		}
		router.Use(validate)
	}

	router.Get(swagger.SpecPath, swagger.SpecHandler)
	router.Handle("/swagger/*", swagger.Handler())
	if opts.Metrics != nil && opts.MetricsPath != "" {
		router.Handle(opts.MetricsPath, opts.Metrics.Handler())
	}

	router.Route("/api", func(r chi.Router) {
		r.Get("/", healthHandler.rootHandler)
		r.Get("/health", healthHandler.healthCheckHandler)

		r.Route("/auth", func(ar chi.Router) {
			ar.Post("/login", h.Auth.Login)
			ar.Post("/process-session", h.Auth.ProcessSession)
			ar.Post("/logout", h.Auth.Logout)
			ar.Get("/session-check", h.Auth.SessionCheck)

			ar.Group(func(pr chi.Router) {
				pr.Use(h.Auth.AuthMiddleware)
				pr.Post("/register", h.Auth.Register)
				pr.Get("/me", h.Auth.Me)
			})
		})

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Route("/users", func(ur chi.Router) {
				ur.With(gate.Require(rbac.UserList)).Get("/", h.User.ListUsers)
				ur.Get("/{id}", h.User.GetUser)
			})

			pr.Route("/departments", func(dr chi.Router) {
				dr.Get("/", h.Department.ListDepartments)
				dr.Post("/", h.Department.CreateDepartment)
				dr.Get("/{id}", h.Department.GetDepartment)
				dr.Put("/{id}", h.Department.UpdateDepartment)
				dr.Delete("/{id}", h.Department.DeleteDepartment)
			})

			pr.Route("/brands", func(br chi.Router) {
				br.Get("/", h.Brand.ListBrands)
				br.Post("/", h.Brand.CreateBrand)
				br.Get("/{id}", h.Brand.GetBrand)
				br.Put("/{id}", h.Brand.UpdateBrand)
				br.Delete("/{id}", h.Brand.DeleteBrand)
			})

			pr.Route("/categories", func(cr chi.Router) {
				cr.Get("/", h.Category.GetCategories)
				cr.Post("/", h.Category.CreateCategory)
				cr.Get("/{id}", h.Category.GetCategory)
				cr.Put("/{id}", h.Category.UpdateCategory)
				cr.Delete("/{id}", h.Category.DeleteCategory)
			})

			pr.Route("/subcategories", func(sr chi.Router) {
				sr.Get("/", h.Subcategory.ListSubcategories)
				sr.Post("/", h.Subcategory.CreateSubcategory)
				sr.Get("/{id}", h.Subcategory.GetSubcategory)
				sr.Put("/{id}", h.Subcategory.UpdateSubcategory)
				sr.Delete("/{id}", h.Subcategory.DeleteSubcategory)
			})

			pr.Route("/products", func(pdr chi.Router) {
				pdr.Get("/", h.Product.ListProducts)
				pdr.Post("/", h.Product.CreateProduct)
				pdr.Get("/{id}", h.Product.GetProduct)
				pdr.Put("/{id}", h.Product.UpdateProduct)
				pdr.Delete("/{id}", h.Product.DeleteProduct)
			})

			pr.Route("/plans", func(plr chi.Router) {
				plr.Get("/", h.Plan.ListPlans)
				plr.Post("/", h.Plan.CreatePlan)
				plr.Get("/{id}", h.Plan.GetPlan)
				plr.Put("/{id}", h.Plan.UpdatePlan)
				plr.Delete("/{id}", h.Plan.DeletePlan)
			})

			pr.Route("/planning-data", func(pdr chi.Router) {
				pdr.Get("/", h.PlanningData.ListPlanningData)
				pdr.Post("/", h.PlanningData.CreatePlanningData)
				pdr.Get("/{id}", h.PlanningData.GetPlanningData)
				pdr.Put("/{id}", h.PlanningData.UpdatePlanningData)
			})

			pr.Route("/notifications", func(nr chi.Router) {
				nr.Get("/", h.Notification.ListNotifications)
				nr.Post("/", h.Notification.CreateNotification)
				nr.Put("/{id}/read", h.Notification.MarkNotificationRead)
			})
		})
	})

	return nil
}
