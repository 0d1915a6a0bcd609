package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/frahmantamala/planforge/internal"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("Resolver", func() {
	var (
		f   *fixture
		ctx context.Context
	)

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		f = newFixture(
			seedUser("u-a", "admin@planforge.com", "Admin123!", internal.RoleAdmin, nil),
			seedUser("u-c", "creator@planforge.com", "Creator123!", internal.RoleCreator, strPtr("dept-1")),
		)
		_, err := f.sessions.Create(ctx, "u-c", "tok-creator", 7*24*time.Hour)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
	})

	request := func() *http.Request {
		return httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	}

	bearer := func(r *http.Request, email string) {
		token, err := f.tokens.Issue(email, 0)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		r.Header.Set("Authorization", "Bearer "+token)
	}

	ginkgo.It("should resolve the session cookie", func() {
		r := request()
		r.AddCookie(&http.Cookie{Name: "session_token", Value: "tok-creator"})

		u, err := f.resolver.Resolve(r)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(u.ID).To(gomega.Equal("u-c"))
		gomega.Expect(*u.DepartmentID).To(gomega.Equal("dept-1"))
	})

	ginkgo.It("should prefer the cookie over the bearer token", func() {
		r := request()
		r.AddCookie(&http.Cookie{Name: "session_token", Value: "tok-creator"})
		bearer(r, "admin@planforge.com")

		u, err := f.resolver.Resolve(r)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(u.ID).To(gomega.Equal("u-c"))
	})

	ginkgo.It("should fall back to the bearer token when the cookie is stale", func() {
		r := request()
		r.AddCookie(&http.Cookie{Name: "session_token", Value: "tok-unknown"})
		bearer(r, "admin@planforge.com")

		u, err := f.resolver.Resolve(r)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(u.ID).To(gomega.Equal("u-a"))
	})

	ginkgo.It("should reject requests without credentials", func() {
		_, err := f.resolver.Resolve(request())
		gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidCredentials))
	})

	ginkgo.It("should reject tokens for users that no longer exist", func() {
		r := request()
		bearer(r, "ghost@planforge.com")

		_, err := f.resolver.Resolve(r)
		gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidCredentials))
	})

	ginkgo.It("should reject expired sessions", func() {
		f.clock = f.clock.Add(8 * 24 * time.Hour)

		_, err := f.resolver.FromSession(ctx, "tok-creator")
		gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidCredentials))
	})

	ginkgo.It("should reject deactivated users", func() {
		f.users.byID["u-a"].IsActive = false
		r := request()
		bearer(r, "admin@planforge.com")

		_, err := f.resolver.Resolve(r)
		gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidCredentials))
	})
})
