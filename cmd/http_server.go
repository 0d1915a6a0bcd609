package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/planforge/api"
	"github.com/frahmantamala/planforge/internal"
	"github.com/frahmantamala/planforge/internal/auth"
	authPostgres "github.com/frahmantamala/planforge/internal/auth/postgres"
	"github.com/frahmantamala/planforge/internal/auth/rbac"
	authRedis "github.com/frahmantamala/planforge/internal/auth/redis"
	"github.com/frahmantamala/planforge/internal/brand"
	"github.com/frahmantamala/planforge/internal/category"
	brandDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/brand"
	categoryDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/category"
	departmentDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/department"
	planDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/plan"
	planningdataDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/planningdata"
	productDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/product"
	subcategoryDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/subcategory"
	"github.com/frahmantamala/planforge/internal/core/store"
	"github.com/frahmantamala/planforge/internal/department"
	"github.com/frahmantamala/planforge/internal/notification"
	notificationPostgres "github.com/frahmantamala/planforge/internal/notification/postgres"
	"github.com/frahmantamala/planforge/internal/plan"
	"github.com/frahmantamala/planforge/internal/planningdata"
	"github.com/frahmantamala/planforge/internal/product"
	"github.com/frahmantamala/planforge/internal/sessionprovider"
	"github.com/frahmantamala/planforge/internal/subcategory"
	"github.com/frahmantamala/planforge/internal/transport"
	"github.com/frahmantamala/planforge/internal/transport/middleware"
	"github.com/frahmantamala/planforge/internal/transport/rest"
	"github.com/frahmantamala/planforge/internal/user"
	userPostgres "github.com/frahmantamala/planforge/internal/user/postgres"
	"github.com/frahmantamala/planforge/pkg/logger"

	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Gorm   *gorm.DB
	// Redis is only set when sessions are kept in redis.
	Redis    goredis.UniversalClient
	Provider auth.SessionProvider
	Metrics  *middleware.Metrics
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	router, err := buildRouter(deps)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build router: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr, "session_store", deps.Config.Session.Store)

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("Server failed to start", "error", err)
			deps.close()
			os.Exit(1)
		}
	}

	deps.close()
	deps.Logger.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	initLogger(config)

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gdb, err := initGorm(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	deps := &Dependencies{
		Config: config,
		DB:     db,
		Gorm:   gdb,
		Logger: logger.LoggerWrapper(),
	}

	if config.Session.Store == internal.SessionStoreRedis {
		client, err := initRedis(config.Redis)
		if err != nil {
			deps.close()
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		deps.Redis = client
	}

	if config.Observability.Metrics.Enabled {
		deps.Metrics = middleware.NewMetrics("planforge")
	}

	return deps, nil
}

func (d *Dependencies) close() {
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			d.Logger.Error("Redis close error", "error", err)
		}
	}
	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			d.Logger.Error("Database close error", "error", err)
		}
	}
}

func (d *Dependencies) sessionStore() auth.SessionStore {
	if d.Redis != nil {
		return authRedis.NewSessionStore(d.Redis)
	}
	return authPostgres.NewSessionRepository(d.Gorm)
}

// buildRouter wires repositories, services and handlers onto a new router.
func buildRouter(deps *Dependencies) (*chi.Mux, error) {
	cfg := deps.Config
	lg := deps.Logger
	base := transport.NewBaseHandler(lg)
	gate := rbac.NewGate(lg)

	users := userPostgres.NewUserRepository(deps.Gorm)
	sessions := deps.sessionStore()
	tokens := auth.NewTokenService(cfg.Security.SecretKey, cfg.Security.AccessTokenDuration)
	hasher := auth.NewPasswordHasher(cfg.Security.BCryptCost)
	resolver := auth.NewResolver(users, sessions, tokens, cfg.Session.CookieName, lg)

	provider := deps.Provider
	if provider == nil {
		provider = sessionprovider.NewClient(sessionprovider.Config{
			URL:     cfg.SessionProvider.URL,
			Timeout: cfg.SessionProvider.Timeout,
		}, lg)
	}

	authService := auth.NewService(users, sessions, provider, tokens, hasher, resolver, gate, auth.Config{
		LoginTokenTTL:   cfg.Security.LoginTokenDuration,
		SessionValidity: cfg.Session.Validity,
	}, lg)

	categoryService := category.NewService(store.NewCollection[categoryDatamodel.Category](deps.Gorm), gate, lg)

	handlers := rest.Handlers{
		Auth: auth.NewHandler(base, authService, resolver, auth.CookieConfig{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.CookieSecure,
		}),
		User:       user.NewHandler(base, user.NewService(users, gate, lg)),
		Department: department.NewHandler(base, department.NewService(store.NewCollection[departmentDatamodel.Department](deps.Gorm), gate, lg)),
		Brand:      brand.NewHandler(base, brand.NewService(store.NewCollection[brandDatamodel.Brand](deps.Gorm), gate, lg)),
		Category:   category.NewHandler(base, categoryService),
		Subcategory: subcategory.NewHandler(base, subcategory.NewService(
			store.NewCollection[subcategoryDatamodel.Subcategory](deps.Gorm), categoryService, gate, lg)),
		Product:      product.NewHandler(base, product.NewService(store.NewCollection[productDatamodel.Product](deps.Gorm), gate, lg)),
		Plan:         plan.NewHandler(base, plan.NewService(store.NewCollection[planDatamodel.Plan](deps.Gorm), gate, lg)),
		PlanningData: planningdata.NewHandler(base, planningdata.NewService(store.NewCollection[planningdataDatamodel.PlanningData](deps.Gorm), gate, lg)),
		Notification: notification.NewHandler(base, notification.NewService(notificationPostgres.NewNotificationRepository(deps.Gorm), gate, lg)),
	}

	opts := rest.Options{
		Gate:           gate,
		AllowedOrigins: cfg.Server.Origins(),
		Metrics:        deps.Metrics,
		MetricsPath:    cfg.Observability.Metrics.Path,
		Logger:         lg,
	}
	if deps.DB != nil {
		opts.DB = deps.DB
	}
	if cfg.Server.ValidateRequests {
		doc, err := middleware.LoadOpenAPI(context.Background(), api.Document)
		if err != nil {
			return nil, err
		}
		opts.OpenAPI = doc
	}

	router := chi.NewRouter()
	if err := rest.RegisterAllRoutes(router, handlers, opts); err != nil {
		return nil, err
	}
	return router, nil
}
