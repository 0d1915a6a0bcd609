package internal

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SessionStoreDatabase = "database"
	SessionStoreRedis    = "redis"
)

type Config struct {
	Env             string                `mapstructure:"env"`
	Server          ServerConfig          `mapstructure:"http_server"`
	Database        DatabaseConfig        `mapstructure:"database"`
	Security        SecurityConfig        `mapstructure:"security"`
	Session         SessionConfig         `mapstructure:"session"`
	SessionProvider SessionProviderConfig `mapstructure:"session_provider"`
	Redis           RedisConfig           `mapstructure:"redis"`
	Observability   ObservabilityConfig   `mapstructure:"observability"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port"`
	BaseURL           string        `mapstructure:"base_url"`
	AllowedOrigins    string        `mapstructure:"allowed_origins"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	ValidateRequests  bool          `mapstructure:"validate_requests"`
}

type DatabaseConfig struct {
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Source          string        `mapstructure:"source"`
	// Name overrides the database named in Source when set.
	Name string `mapstructure:"name"`
}

type SecurityConfig struct {
	SecretKey           string        `mapstructure:"secret_key"`
	AccessTokenDuration time.Duration `mapstructure:"access_token_duration"`
	LoginTokenDuration  time.Duration `mapstructure:"login_token_duration"`
	BCryptCost          int           `mapstructure:"bcrypt_cost"`
}

type SessionConfig struct {
	Store        string        `mapstructure:"store"`
	Validity     time.Duration `mapstructure:"validity"`
	CookieName   string        `mapstructure:"cookie_name"`
	CookieSecure bool          `mapstructure:"cookie_secure"`
}

type SessionProviderConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TLS      bool   `mapstructure:"tls"`
}

type ObservabilityConfig struct {
	Metrics MetricsConfig `mapstructure:"metrics"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ----------------- DEFAULTS -----------------

const (
	DefaultAccessTokenDuration = 15 * time.Minute
	DefaultLoginTokenDuration  = 30 * time.Minute
	DefaultSessionValidity     = 7 * 24 * time.Hour
	DefaultSessionCookieName   = "session_token"
	DefaultSessionProviderURL  = "https://demobackend.emergentagent.com/auth/v1/env/oauth/session-data"
)

// ApplyDefaults fills zero values with the service defaults.
func (c *Config) ApplyDefaults() {
	if c.Env == "" {
		c.Env = "development"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8001
	}
	if c.Server.ReadHeaderTimeout == 0 {
		c.Server.ReadHeaderTimeout = 5 * time.Second
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 30 * time.Minute
	}
	if c.Database.ConnMaxIdleTime == 0 {
		c.Database.ConnMaxIdleTime = 5 * time.Minute
	}
	if c.Security.AccessTokenDuration == 0 {
		c.Security.AccessTokenDuration = DefaultAccessTokenDuration
	}
	if c.Security.LoginTokenDuration == 0 {
		c.Security.LoginTokenDuration = DefaultLoginTokenDuration
	}
	if c.Security.BCryptCost == 0 {
		c.Security.BCryptCost = 12
	}
	if c.Session.Store == "" {
		c.Session.Store = SessionStoreDatabase
	}
	if c.Session.Validity == 0 {
		c.Session.Validity = DefaultSessionValidity
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = DefaultSessionCookieName
	}
	if c.SessionProvider.URL == "" {
		c.SessionProvider.URL = DefaultSessionProviderURL
	}
	if c.SessionProvider.Timeout == 0 {
		c.SessionProvider.Timeout = 10 * time.Second
	}
	if c.Observability.Metrics.Path == "" {
		c.Observability.Metrics.Path = "/metrics"
	}
	if c.Observability.Logging.Level == "" {
		c.Observability.Logging.Level = "info"
	}
	if c.Observability.Logging.Format == "" {
		c.Observability.Logging.Format = "text"
	}
}

// LoadConfigFromEnv builds the configuration from process environment,
// reading a local .env file first when one exists.
func LoadConfigFromEnv() *Config {
	_ = godotenv.Load()

	source := getEnv("DATABASE_URL", "")
	if source == "" {
		source = getEnv("MONGO_URL", "")
	}

	cfg := &Config{
		Env: getEnv("APP_ENV", "production"),
		Server: ServerConfig{
			Port:             getEnvAsInt("PORT", 8001),
			BaseURL:          getEnv("BASE_URL", ""),
			AllowedOrigins:   getEnv("CORS_ORIGINS", ""),
			ValidateRequests: getEnvAsBool("VALIDATE_REQUESTS", true),
		},
		Database: DatabaseConfig{
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 0),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 0),
			Source:       source,
			Name:         getEnv("DB_NAME", ""),
		},
		Security: SecurityConfig{
			SecretKey:           getEnv("SECRET_KEY", ""),
			AccessTokenDuration: getEnvAsMinutes("TOKEN_EXPIRE_MINUTES", 0),
			LoginTokenDuration:  getEnvAsMinutes("ACCESS_TOKEN_EXPIRE_MINUTES", 0),
			BCryptCost:          getEnvAsInt("BCRYPT_COST", 0),
		},
		Session: SessionConfig{
			Store:        getEnv("SESSION_STORE", ""),
			CookieName:   getEnv("SESSION_COOKIE_NAME", ""),
			CookieSecure: getEnvAsBool("SESSION_COOKIE_SECURE", true),
		},
		SessionProvider: SessionProviderConfig{
			URL: getEnv("SESSION_PROVIDER_URL", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			TLS:      getEnvAsBool("REDIS_TLS", false),
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Enabled: getEnvAsBool("METRICS_ENABLED", true),
				Path:    getEnv("METRICS_PATH", ""),
			},
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", ""),
				Format: getEnv("LOG_FORMAT", "json"),
			},
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

// ----------------- HELPERS -----------------

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvAsMinutes(key string, defaultVal time.Duration) time.Duration {
	if n := getEnvAsInt(key, 0); n > 0 {
		return time.Duration(n) * time.Minute
	}
	return defaultVal
}

// Origins splits the comma separated CORS origin list.
func (c *ServerConfig) Origins() []string {
	var origins []string
	for _, origin := range strings.Split(c.AllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}

	if err := c.Security.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("security config: %v", err))
	}

	if err := c.Session.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("session config: %v", err))
	}

	if c.Session.Store == SessionStoreRedis && c.Redis.Addr == "" {
		errs = append(errs, "redis config: addr is required when session store is redis")
	}

	if _, err := url.ParseRequestURI(c.SessionProvider.URL); err != nil {
		errs = append(errs, fmt.Sprintf("session provider config: invalid url: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	for _, origin := range c.Origins() {
		if origin == "*" {
			continue
		}
		if _, err := url.Parse(origin); err != nil {
			return fmt.Errorf("invalid allowed origin %s: %w", origin, err)
		}
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *DatabaseConfig) Validate() error {
	if c.Source == "" {
		return errors.New("source is required")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *SecurityConfig) Validate() error {
	if len(c.SecretKey) < 16 {
		return errors.New("secret_key must be at least 16 characters")
	}
	if c.BCryptCost < 4 || c.BCryptCost > 31 {
		return errors.New("bcrypt_cost must be between 4 and 31")
	}
	if c.AccessTokenDuration <= 0 || c.LoginTokenDuration <= 0 {
		return errors.New("token durations must be positive")
	}
	return nil
}

func (c *SessionConfig) Validate() error {
	if c.Store != SessionStoreDatabase && c.Store != SessionStoreRedis {
		return fmt.Errorf("unknown session store %q", c.Store)
	}
	if c.Validity <= 0 {
		return errors.New("validity must be positive")
	}
	return nil
}
