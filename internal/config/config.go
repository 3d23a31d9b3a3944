package config

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"loanlink-backend/internal/logger"
)

const (
	ModeDev  = "dev"
	ModeProd = "prod"
)

type Config struct {
	AppPort string
	AppMode string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	JWTSecret string
	Cookie    CookieConfig

	ClientURL      string
	AllowedOrigins string

	Stripe StripeConfig

	SuspensionSweepSpec string
}

// CookieConfig controls the auth cookie attributes.
type CookieConfig struct {
	Name     string
	Secure   bool
	SameSite http.SameSite
	Domain   string
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	APIBase       string
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found, using environment variables")
	}

	mode := strings.ToLower(strings.TrimSpace(getenv("APP_MODE", ModeDev)))
	c := &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		AppMode:   mode,
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "loanlink"),
		MySQLUser: getenv("MYSQL_USER", "loanlink"),
		MySQLPass: getenv("MYSQL_PASS", "loanlink"),

		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		IdempTTLSecs: 300,

		JWTSecret: os.Getenv("JWT_SECRET"),
		Cookie:    loadCookieConfig(mode),

		ClientURL:      strings.TrimRight(getenv("CLIENT_URL", "http://localhost:5173"), "/"),
		AllowedOrigins: os.Getenv("ALLOWED_ORIGINS"),

		Stripe: StripeConfig{
			SecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
			WebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
			APIBase:       getenv("STRIPE_API_BASE", "https://api.stripe.com"),
		},

		SuspensionSweepSpec: getenv("SUSPENSION_SWEEP_SPEC", "@every 1m"),
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RedisDB = n
		}
	}
	if v := os.Getenv("IDEMPOTENCY_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.IdempTTLSecs = n
		}
	}
	return c
}

// cross-site cookies need SameSite=None, which browsers only accept with Secure
func loadCookieConfig(mode string) CookieConfig {
	cc := CookieConfig{
		Name:     "token",
		SameSite: http.SameSiteLaxMode,
		Domain:   os.Getenv("COOKIE_DOMAIN"),
	}
	if mode == ModeProd {
		cc.Secure = true
		cc.SameSite = http.SameSiteNoneMode
	}
	return cc
}

func (c *Config) Validate() error {
	if c.AppMode != ModeDev && c.AppMode != ModeProd {
		return fmt.Errorf("invalid APP_MODE %q (must be dev or prod)", c.AppMode)
	}
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.JWTSecret == "" {
		return errors.New("missing JWT_SECRET")
	}
	if c.IsProd() && c.Stripe.SecretKey == "" {
		return errors.New("missing STRIPE_SECRET_KEY")
	}
	return nil
}

func (c *Config) IsDev() bool  { return c.AppMode == ModeDev }
func (c *Config) IsProd() bool { return c.AppMode == ModeProd }

// Origins returns the CORS allow-list; dev falls back to the client URL.
func (c *Config) Origins() []string {
	if c.AllowedOrigins == "" {
		return []string{c.ClientURL}
	}
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
