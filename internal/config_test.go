package internal_test

import (
	"time"

	"github.com/frahmantamala/planforge/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Config", func() {
	var cfg *internal.Config

	BeforeEach(func() {
		cfg = &internal.Config{
			Database: internal.DatabaseConfig{Source: "postgres://localhost:5432/planforge"},
			Security: internal.SecurityConfig{SecretKey: "a-secret-key-for-tests"},
		}
		cfg.ApplyDefaults()
	})

	Describe("ApplyDefaults", func() {
		It("should use the documented token and session lifetimes", func() {
			Expect(cfg.Security.AccessTokenDuration).To(Equal(15 * time.Minute))
			Expect(cfg.Security.LoginTokenDuration).To(Equal(30 * time.Minute))
			Expect(cfg.Session.Validity).To(Equal(7 * 24 * time.Hour))
			Expect(cfg.Session.CookieName).To(Equal("session_token"))
			Expect(cfg.Session.Store).To(Equal(internal.SessionStoreDatabase))
		})

		It("should keep explicit values", func() {
			c := &internal.Config{Security: internal.SecurityConfig{LoginTokenDuration: time.Hour}}
			c.ApplyDefaults()
			Expect(c.Security.LoginTokenDuration).To(Equal(time.Hour))
		})
	})

	Describe("Validate", func() {
		It("should accept a complete configuration", func() {
			Expect(cfg.Validate()).To(Succeed())
		})

		It("should reject a short secret key", func() {
			cfg.Security.SecretKey = "short"
			Expect(cfg.Validate()).To(MatchError(ContainSubstring("secret_key")))
		})

		It("should reject a missing database source", func() {
			cfg.Database.Source = ""
			Expect(cfg.Validate()).To(MatchError(ContainSubstring("source is required")))
		})

		It("should require a redis address for the redis session store", func() {
			cfg.Session.Store = internal.SessionStoreRedis
			Expect(cfg.Validate()).To(MatchError(ContainSubstring("redis config")))

			cfg.Redis.Addr = "localhost:6379"
			Expect(cfg.Validate()).To(Succeed())
		})

		It("should reject unknown session stores", func() {
			cfg.Session.Store = "memcached"
			Expect(cfg.Validate()).To(MatchError(ContainSubstring("unknown session store")))
		})
	})

	Describe("Origins", func() {
		It("should split and trim the comma separated list", func() {
			s := internal.ServerConfig{AllowedOrigins: "http://a.test, http://b.test,,"}
			Expect(s.Origins()).To(Equal([]string{"http://a.test", "http://b.test"}))
		})
	})

	Describe("LoadConfigFromEnv", func() {
		It("should honour the legacy variable names", func() {
			GinkgoT().Setenv("DATABASE_URL", "")
			GinkgoT().Setenv("MONGO_URL", "postgres://db:5432/legacy")
			GinkgoT().Setenv("DB_NAME", "planforge_test")
			GinkgoT().Setenv("SECRET_KEY", "env-secret-key-value")
			GinkgoT().Setenv("CORS_ORIGINS", "http://localhost:3000")
			GinkgoT().Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "45")

			c := internal.LoadConfigFromEnv()
			Expect(c.Database.Source).To(Equal("postgres://db:5432/legacy"))
			Expect(c.Database.Name).To(Equal("planforge_test"))
			Expect(c.Security.SecretKey).To(Equal("env-secret-key-value"))
			Expect(c.Server.Origins()).To(ConsistOf("http://localhost:3000"))
			Expect(c.Security.LoginTokenDuration).To(Equal(45 * time.Minute))
			Expect(c.Validate()).To(Succeed())
		})
	})
})
