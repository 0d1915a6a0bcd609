package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/frahmantamala/planforge/internal"
	"github.com/frahmantamala/planforge/internal/transport"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("Handler", func() {
	var (
		f       *fixture
		handler *Handler
	)

	ginkgo.BeforeEach(func() {
		f = newFixture(seedUser("u-a", "admin@planforge.com", "Admin123!", internal.RoleAdmin, nil))
		f.provider.data = &SessionData{Email: "ana@example.com", Name: "Ana", SessionToken: "tok-ana"}
		handler = NewHandler(transport.NewBaseHandler(testLogger()), f.service, f.resolver, CookieConfig{Secure: true})
	})

	cookieNamed := func(w *httptest.ResponseRecorder, name string) *http.Cookie {
		for _, c := range w.Result().Cookies() {
			if c.Name == name {
				return c
			}
		}
		return nil
	}

	ginkgo.Describe("Login", func() {
		ginkgo.It("should return a bearer token", func() {
			r := httptest.NewRequest(http.MethodPost, "/api/auth/login",
				strings.NewReader(`{"email":"admin@planforge.com","password":"Admin123!"}`))
			w := httptest.NewRecorder()

			handler.Login(w, r)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
			var body TokenResponse
			gomega.Expect(json.NewDecoder(w.Body).Decode(&body)).To(gomega.Succeed())
			gomega.Expect(body.TokenType).To(gomega.Equal("bearer"))
			gomega.Expect(body.AccessToken).ToNot(gomega.BeEmpty())
		})

		ginkgo.It("should answer 401 with a bearer challenge on bad credentials", func() {
			r := httptest.NewRequest(http.MethodPost, "/api/auth/login",
				strings.NewReader(`{"email":"admin@planforge.com","password":"wrong"}`))
			w := httptest.NewRecorder()

			handler.Login(w, r)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(w.Header().Get("WWW-Authenticate")).To(gomega.Equal("Bearer"))
			gomega.Expect(w.Body.String()).To(gomega.ContainSubstring("Incorrect email or password"))
		})

		ginkgo.It("should answer 422 on a malformed body", func() {
			r := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{`))
			w := httptest.NewRecorder()

			handler.Login(w, r)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnprocessableEntity))
		})
	})

	ginkgo.Describe("ProcessSession", func() {
		ginkgo.It("should set the session cookie", func() {
			r := httptest.NewRequest(http.MethodPost, "/api/auth/process-session", nil)
			r.Header.Set(SessionIDHeader, "sid-1")
			w := httptest.NewRecorder()

			handler.ProcessSession(w, r)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
			c := cookieNamed(w, "session_token")
			gomega.Expect(c).ToNot(gomega.BeNil())
			gomega.Expect(c.Value).To(gomega.Equal("tok-ana"))
			gomega.Expect(c.HttpOnly).To(gomega.BeTrue())
			gomega.Expect(c.Secure).To(gomega.BeTrue())
			gomega.Expect(c.SameSite).To(gomega.Equal(http.SameSiteNoneMode))
			gomega.Expect(c.Path).To(gomega.Equal("/"))
			gomega.Expect(c.MaxAge).To(gomega.Equal(604800))

			var body SessionResponse
			gomega.Expect(json.NewDecoder(w.Body).Decode(&body)).To(gomega.Succeed())
			gomega.Expect(body.Success).To(gomega.BeTrue())
			gomega.Expect(body.Message).To(gomega.Equal("Authentication successful"))
			gomega.Expect(body.User.Email).To(gomega.Equal("ana@example.com"))
		})

		ginkgo.It("should answer 400 without a session id header", func() {
			r := httptest.NewRequest(http.MethodPost, "/api/auth/process-session", nil)
			w := httptest.NewRecorder()

			handler.ProcessSession(w, r)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusBadRequest))
			gomega.Expect(cookieNamed(w, "session_token")).To(gomega.BeNil())
		})

		ginkgo.It("should answer 500 when the exchange fails", func() {
			f.provider.data = nil
			r := httptest.NewRequest(http.MethodPost, "/api/auth/process-session", nil)
			r.Header.Set(SessionIDHeader, "sid-bad")
			w := httptest.NewRecorder()

			handler.ProcessSession(w, r)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusInternalServerError))
			gomega.Expect(w.Body.String()).To(gomega.ContainSubstring("Authentication failed"))
		})
	})

	ginkgo.Describe("Logout", func() {
		ginkgo.It("should clear the cookie and succeed every time", func() {
			for i := 0; i < 2; i++ {
				r := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
				r.AddCookie(&http.Cookie{Name: "session_token", Value: "tok-ana"})
				w := httptest.NewRecorder()

				handler.Logout(w, r)

				gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
				gomega.Expect(w.Body.String()).To(gomega.ContainSubstring("Logged out successfully"))
				c := cookieNamed(w, "session_token")
				gomega.Expect(c).ToNot(gomega.BeNil())
				gomega.Expect(c.MaxAge).To(gomega.BeNumerically("<", 0))
			}
		})
	})

	ginkgo.Describe("SessionCheck", func() {
		ginkgo.It("should never fail", func() {
			r := httptest.NewRequest(http.MethodGet, "/api/auth/session-check", nil)
			w := httptest.NewRecorder()

			handler.SessionCheck(w, r)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(strings.TrimSpace(w.Body.String())).To(gomega.Equal(`{"authenticated":false}`))
		})
	})

	ginkgo.Describe("AuthMiddleware", func() {
		ginkgo.It("should put the caller on the request context", func() {
			token, _ := f.tokens.Issue("admin@planforge.com", 0)
			r := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			r.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()

			handler.AuthMiddleware(http.HandlerFunc(handler.Me)).ServeHTTP(w, r)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
			var u internal.User
			gomega.Expect(json.NewDecoder(w.Body).Decode(&u)).To(gomega.Succeed())
			gomega.Expect(u.Email).To(gomega.Equal("admin@planforge.com"))
			gomega.Expect(w.Body.String()).ToNot(gomega.ContainSubstring("hashed_password"))
		})

		ginkgo.It("should stop unauthenticated requests", func() {
			called := false
			next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })
			w := httptest.NewRecorder()

			handler.AuthMiddleware(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))

			gomega.Expect(called).To(gomega.BeFalse())
			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(w.Body.String()).To(gomega.ContainSubstring("Could not validate credentials"))
		})

		ginkgo.It("should reject an expired token with a bearer challenge", func() {
			token, err := f.tokens.Issue("admin@planforge.com", 0)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			f.clock = f.clock.Add(time.Hour)

			called := false
			next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })
			r := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			r.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()

			handler.AuthMiddleware(next).ServeHTTP(w, r)

			gomega.Expect(called).To(gomega.BeFalse())
			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(w.Header().Get("WWW-Authenticate")).To(gomega.Equal("Bearer"))
		})
	})
})
