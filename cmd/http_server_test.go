package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/frahmantamala/planforge/internal"
	"github.com/frahmantamala/planforge/internal/auth"
	userDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/user"
	"github.com/frahmantamala/planforge/internal/core/store/storetest"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

type stubProvider struct {
	data *auth.SessionData
}

func (p *stubProvider) Fetch(ctx context.Context, sessionID string) (*auth.SessionData, error) {
	if p.data == nil || sessionID != "provider-session" {
		return nil, errors.New("unknown session")
	}
	return p.data, nil
}

func testDependencies(gdb *gorm.DB, validate bool) *Dependencies {
	cfg := &internal.Config{
		Security: internal.SecurityConfig{
			SecretKey:  "a-very-long-test-secret-key",
			BCryptCost: 4,
		},
		Server: internal.ServerConfig{
			AllowedOrigins:   "http://localhost:3000",
			ValidateRequests: validate,
		},
		Session: internal.SessionConfig{
			CookieSecure: true,
		},
	}
	cfg.ApplyDefaults()

	return &Dependencies{
		Config: cfg,
		Gorm:   gdb,
		Provider: &stubProvider{data: &auth.SessionData{
			ID:           "google-1",
			Email:        "guest@example.com",
			Name:         "Guest",
			SessionToken: "cookie-session-token",
		}},
		Logger: slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})),
	}
}

var _ = Describe("HTTP server", func() {
	var (
		gdb    *gorm.DB
		router *chi.Mux
	)

	BeforeEach(func() {
		var err error
		gdb, err = storetest.Open()
		Expect(err).NotTo(HaveOccurred())

		deps := testDependencies(gdb, true)
		Expect(seedDatabase(context.Background(), gdb, auth.NewPasswordHasher(4), deps.Logger)).To(Succeed())

		router, err = buildRouter(deps)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		storetest.Close(gdb)
	})

	do := func(method, path, token string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
		}
		req := httptest.NewRequest(method, path, &buf)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		for _, c := range cookies {
			req.AddCookie(c)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	login := func(email, password string) string {
		w := do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": password})
		Expect(w.Code).To(Equal(http.StatusOK), w.Body.String())
		var tokens auth.TokenResponse
		Expect(json.NewDecoder(w.Body).Decode(&tokens)).To(Succeed())
		Expect(tokens.TokenType).To(Equal("bearer"))
		return tokens.AccessToken
	}

	creatorDepartment := func() string {
		var u userDatamodel.User
		Expect(gdb.Where("email = ?", "creator@planforge.com").First(&u).Error).To(Succeed())
		Expect(u.DepartmentID).NotTo(BeNil())
		return *u.DepartmentID
	}

	It("should answer the public endpoints", func() {
		w := do(http.MethodGet, "/api/", "", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("Admin Dashboard API"))

		w = do(http.MethodGet, "/api/health", "", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("healthy"))

		w = do(http.MethodGet, "/openapi.yml", "", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
	})

	It("should log in and return the current user", func() {
		token := login("superadmin@planforge.com", "super123")

		w := do(http.MethodGet, "/api/auth/me", token, nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		var me internal.User
		Expect(json.NewDecoder(w.Body).Decode(&me)).To(Succeed())
		Expect(me.Email).To(Equal("superadmin@planforge.com"))
		Expect(me.Role).To(Equal(internal.RoleSuperAdmin))

		adminToken := login("admin@planforge.com", "admin123")
		w = do(http.MethodPost, "/api/departments", adminToken, map[string]string{"name": "Finance", "code": "FIN"})
		Expect(w.Code).To(Equal(http.StatusForbidden))

		w = do(http.MethodPost, "/api/departments", token, map[string]string{"name": "Finance", "code": "FIN"})
		Expect(w.Code).To(Equal(http.StatusOK), w.Body.String())
		var created struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
		Expect(created.ID).NotTo(BeEmpty())
		Expect(created.Status).To(Equal("Active"))

		w = do(http.MethodGet, "/api/departments/"+created.ID, token, nil)
		Expect(w.Code).To(Equal(http.StatusOK))
	})

	It("should return 404 when updating records that do not exist", func() {
		token := login("superadmin@planforge.com", "super123")

		w := do(http.MethodPut, "/api/departments/missing", token, map[string]string{"name": "Finance", "code": "FIN"})
		Expect(w.Code).To(Equal(http.StatusNotFound))

		planned := 3.0
		w = do(http.MethodPut, "/api/planning-data/missing", token, map[string]interface{}{"planned": planned})
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("should reject a wrong password and missing credentials", func() {
		w := do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "admin@planforge.com", "password": "nope"})
		Expect(w.Code).To(Equal(http.StatusUnauthorized))

		w = do(http.MethodGet, "/api/departments", "", nil)
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})

	It("should challenge requests carrying an expired token", func() {
		issuedAt := time.Now().Add(-2 * time.Hour)
		tokens := auth.NewTokenService("a-very-long-test-secret-key", time.Minute).WithClock(func() time.Time { return issuedAt })
		expired, err := tokens.Issue("admin@planforge.com", 0)
		Expect(err).NotTo(HaveOccurred())

		w := do(http.MethodGet, "/api/auth/me", expired, nil)
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(w.Header().Get("WWW-Authenticate")).To(Equal("Bearer"))
	})

	It("should reject bodies that do not match the API document", func() {
		w := do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "admin@planforge.com"})
		Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
	})

	It("should confine creators to their own department", func() {
		token := login("creator@planforge.com", "creator123")
		planned := 12.5

		w := do(http.MethodPost, "/api/planning-data", token, map[string]interface{}{
			"plan_id": "plan-1", "department_id": "another-department", "product_id": "product-1", "planned": planned,
		})
		Expect(w.Code).To(Equal(http.StatusForbidden))

		w = do(http.MethodPost, "/api/planning-data", token, map[string]interface{}{
			"plan_id": "plan-1", "department_id": creatorDepartment(), "product_id": "product-1", "planned": planned,
		})
		Expect(w.Code).To(Equal(http.StatusOK), w.Body.String())
		Expect(w.Body.String()).To(ContainSubstring(`"status":"pending"`))

		w = do(http.MethodPost, "/api/departments", token, map[string]string{"name": "Sales", "code": "SAL"})
		Expect(w.Code).To(Equal(http.StatusForbidden))
	})

	It("should return the stored timestamps from an update", func() {
		token := login("superadmin@planforge.com", "super123")

		type record struct {
			ID        string    `json:"id"`
			Actual    float64   `json:"actual"`
			UpdatedAt time.Time `json:"updated_at"`
		}
		decode := func(w *httptest.ResponseRecorder) record {
			Expect(w.Code).To(Equal(http.StatusOK), w.Body.String())
			var r record
			Expect(json.NewDecoder(w.Body).Decode(&r)).To(Succeed())
			return r
		}

		created := decode(do(http.MethodPost, "/api/planning-data", token, map[string]interface{}{
			"plan_id": "plan-1", "department_id": creatorDepartment(), "product_id": "product-1", "planned": 8.0,
		}))

		updated := decode(do(http.MethodPut, "/api/planning-data/"+created.ID, token, map[string]interface{}{"actual": 3.0}))
		Expect(updated.Actual).To(Equal(3.0))

		fetched := decode(do(http.MethodGet, "/api/planning-data/"+created.ID, token, nil))
		Expect(fetched.UpdatedAt).To(BeTemporally("==", updated.UpdatedAt))
	})

	It("should refuse to register an email twice", func() {
		token := login("admin@planforge.com", "admin123")

		w := do(http.MethodPost, "/api/auth/register", token, map[string]string{
			"name": "Other", "email": "creator@planforge.com", "password": "secret", "role": "User",
		})
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring("Email already registered"))
	})

	It("should run the delegated session lifecycle", func() {
		w := do(http.MethodGet, "/api/auth/session-check", "", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"authenticated":false`))

		w = do(http.MethodPost, "/api/auth/process-session", "", nil)
		Expect(w.Code).To(Equal(http.StatusBadRequest))

		req := httptest.NewRequest(http.MethodPost, "/api/auth/process-session", nil)
		req.Header.Set(auth.SessionIDHeader, "provider-session")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		Expect(rec.Code).To(Equal(http.StatusOK), rec.Body.String())

		var session *http.Cookie
		for _, c := range rec.Result().Cookies() {
			if c.Name == internal.DefaultSessionCookieName {
				session = c
			}
		}
		Expect(session).NotTo(BeNil())
		Expect(session.HttpOnly).To(BeTrue())
		Expect(session.Secure).To(BeTrue())

		w = do(http.MethodGet, "/api/auth/session-check", "", nil, session)
		Expect(w.Body.String()).To(ContainSubstring(`"authenticated":true`))
		Expect(w.Body.String()).To(ContainSubstring("guest@example.com"))

		w = do(http.MethodGet, "/api/auth/me", "", nil, session)
		Expect(w.Code).To(Equal(http.StatusOK))

		for i := 0; i < 2; i++ {
			w = do(http.MethodPost, "/api/auth/logout", "", nil, session)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring("Logged out successfully"))
		}

		w = do(http.MethodGet, "/api/auth/session-check", "", nil, session)
		Expect(w.Body.String()).To(ContainSubstring(`"authenticated":false`))
	})
})

var _ = Describe("seedDatabase", func() {
	It("should be safe to run twice", func() {
		gdb, err := storetest.Open()
		Expect(err).NotTo(HaveOccurred())
		defer storetest.Close(gdb)

		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		hasher := auth.NewPasswordHasher(4)
		Expect(seedDatabase(context.Background(), gdb, hasher, lg)).To(Succeed())
		Expect(seedDatabase(context.Background(), gdb, hasher, lg)).To(Succeed())

		var users, departments int64
		Expect(gdb.Table("users").Count(&users).Error).To(Succeed())
		Expect(gdb.Table("departments").Count(&departments).Error).To(Succeed())
		Expect(users).To(Equal(int64(3)))
		Expect(departments).To(Equal(int64(1)))
	})
})
