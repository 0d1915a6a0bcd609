package auth

import (
	"time"

	"github.com/frahmantamala/planforge/internal"
	"github.com/golang-jwt/jwt/v5"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("TokenService", func() {
	var (
		clock  time.Time
		tokens *TokenService
	)

	ginkgo.BeforeEach(func() {
		clock = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		tokens = NewTokenService(testSecret, 15*time.Minute).WithClock(func() time.Time { return clock })
	})

	ginkgo.It("should round-trip the subject", func() {
		token, err := tokens.Issue("admin@planforge.com", 0)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		subject, err := tokens.Verify(token)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(subject).To(gomega.Equal("admin@planforge.com"))
	})

	ginkgo.It("should use the default lifetime when none is given", func() {
		token, _ := tokens.Issue("a@b.com", 0)

		clock = clock.Add(16 * time.Minute)
		_, err := tokens.Verify(token)
		gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidCredentials))
	})

	ginkgo.It("should reject tokens signed with another secret", func() {
		other := NewTokenService("another-secret-key-0123456789", time.Minute).WithClock(func() time.Time { return clock })
		token, _ := other.Issue("a@b.com", 0)

		_, err := tokens.Verify(token)
		gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidCredentials))
	})

	ginkgo.It("should reject unsigned tokens", func() {
		claims := jwt.RegisteredClaims{
			Subject:   "a@b.com",
			ExpiresAt: jwt.NewNumericDate(clock.Add(time.Hour)),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		_, err = tokens.Verify(token)
		gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidCredentials))
	})

	ginkgo.It("should reject tokens without an expiry", func() {
		token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "a@b.com"}).
			SignedString([]byte(testSecret))

		_, err := tokens.Verify(token)
		gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidCredentials))
	})

	ginkgo.It("should reject garbage", func() {
		_, err := tokens.Verify("not-a-token")
		gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidCredentials))
	})

	ginkgo.It("should refuse to issue a token without a subject", func() {
		_, err := tokens.Issue("", time.Minute)
		gomega.Expect(err).To(gomega.HaveOccurred())
	})
})

var _ = ginkgo.Describe("PasswordHasher", func() {
	ginkgo.It("should verify the original password only", func() {
		hasher := NewPasswordHasher(4)
		hash, err := hasher.Hash("Secret123!")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		gomega.Expect(hasher.Verify(hash, "Secret123!")).To(gomega.BeTrue())
		gomega.Expect(hasher.Verify(hash, "secret123!")).To(gomega.BeFalse())
		gomega.Expect(hasher.Verify("", "Secret123!")).To(gomega.BeFalse())
		gomega.Expect(hasher.Verify("not-a-hash", "Secret123!")).To(gomega.BeFalse())
	})
})
