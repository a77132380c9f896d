package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/smash-proyect/bff/internal/domain"
	"github.com/smash-proyect/bff/internal/health"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per inbound request, must exceed the health check timeout
	UpstreamTimeout time.Duration // login and proxy calls

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Downstream services
	SecurityURL       string
	ConsultaURL       string
	ReportesURL       string
	AuditoriaURL      string
	NotificacionesURL string
	MailhogURL        string
	TargetsFile       string                 // optional YAML list replacing the default health targets
	Targets           []domain.ServiceTarget // resolved health targets, immutable after Load

	// Session cookie
	CookieSecure bool
	CookieMaxAge int // seconds, 0 = session cookie
	CookieDomain string

	MaxBodyBytes int64    // inbound body limit for proxied POSTs
	CORSOrigins  []string // browser origins allowed to call with credentials

	RateLimitRPS   float64 // per client IP on /api, 0 = disabled
	RateLimitBurst int

	HealthPollInterval time.Duration // background health polling, 0 = disabled
	SnapshotTTL        time.Duration // TTL of the last report in Redis

	// Redis (optional, empty address = disabled)
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDT             time.Duration // dial timeout
	RedisRT             time.Duration // read timeout
	RedisWT             time.Duration // write timeout
	RedisMaxWait        time.Duration // max wait between retries
	RedisPingTimeout    time.Duration // timeout for each ping attempt
	RedisPoolSize       int
	RedisConnectTimeout time.Duration // total time to retry connecting
	RedisRetryInterval  time.Duration // initial wait between retries, grows exponentially
	RedisWarnThreshold  int           // warn after this many attempts

	AllowedCIDRS []string // optional, restrict operational endpoints to these IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers from the front proxy
}

// Load reads the process environment (after an optional .env file) once.
// Invalid configuration is fatal.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(fmt.Sprintf("❌ FATAL: cannot load .env file: %v", err))
	}

	cfg := &Config{
		// Server settings
		ListenPort:      listenAddr(getenv("PORT", "8080")),
		ShutdownTimeout: mustDuration("BFF_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("BFF_REQUEST_TIMEOUT", 15*time.Second),
		UpstreamTimeout: mustDuration("BFF_UPSTREAM_TIMEOUT", 10*time.Second),

		// Logging
		LogLevel:  getenv("LOG_LEVEL", "info"),
		PrettyLog: mustBool("PRETTY_LOG", false),

		// Downstream services
		SecurityURL:       getenv("SECURITY_URL", "http://ms_seguridad:8000"),
		ConsultaURL:       getenv("MS_CONSULTA_URL", "http://ms_consulta:8001"),
		ReportesURL:       getenv("MS_REPORTES_URL", "http://ms_reportes:5002"),
		AuditoriaURL:      getenv("MS_AUDITORIA_URL", "http://ms_auditoria:5003"),
		NotificacionesURL: getenv("MS_NOTIFICACIONES_URL", "http://ms_notificaciones:5003"),
		MailhogURL:        getenv("MAILHOG_URL", "http://mailhog:8025"),
		TargetsFile:       getenv("BFF_TARGETS_FILE", ""),

		// Session cookie
		CookieSecure: mustBool("BFF_COOKIE_SECURE", false),
		CookieMaxAge: getenvInt("BFF_COOKIE_MAX_AGE", 0),
		CookieDomain: getenv("BFF_COOKIE_DOMAIN", ""),

		MaxBodyBytes: int64(getenvInt("BFF_MAX_BODY_BYTES", 1<<20)),
		CORSOrigins:  splitAndTrim(getenv("BFF_CORS_ORIGINS", "")),

		RateLimitRPS:   getenvFloat("BFF_RATE_LIMIT_RPS", 0),
		RateLimitBurst: getenvInt("BFF_RATE_LIMIT_BURST", 20),

		HealthPollInterval: mustDuration("BFF_HEALTH_POLL_INTERVAL", 0),
		SnapshotTTL:        mustDuration("BFF_SNAPSHOT_TTL", 10*time.Minute),

		// Redis settings
		RedisAddr:           getenv("BFF_REDIS_ADDR", ""),
		RedisUser:           getenv("BFF_REDIS_USERNAME", ""),
		RedisPassword:       getenv("BFF_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("BFF_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedCIDRS: parseAllowedIPs(getenv("BFF_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("BFF_TRUST_PROXY", false),
	}

	targets, err := ResolveTargets(cfg)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: invalid health targets: %v", err))
	}
	cfg.Targets = targets

	if err := cfg.validate(); err != nil {
		panic(fmt.Sprintf("❌ FATAL: %v", err))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfg.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

func (c *Config) validate() error {
	if c.RequestTimeout <= health.DefaultCheckTimeout {
		return fmt.Errorf("BFF_REQUEST_TIMEOUT (%v) must exceed the health check timeout (%v)",
			c.RequestTimeout, health.DefaultCheckTimeout)
	}
	if c.UpstreamTimeout <= 0 {
		return fmt.Errorf("BFF_UPSTREAM_TIMEOUT must be > 0, got %v", c.UpstreamTimeout)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("BFF_MAX_BODY_BYTES must be > 0, got %d", c.MaxBodyBytes)
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("BFF_RATE_LIMIT_RPS must be >= 0, got %v", c.RateLimitRPS)
	}
	if c.HealthPollInterval < 0 {
		return fmt.Errorf("BFF_HEALTH_POLL_INTERVAL must be >= 0, got %v", c.HealthPollInterval)
	}
	return nil
}

// RedisEnabled reports whether a Redis address was configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// listenAddr accepts "8080", ":8080" or "host:8080".
func listenAddr(port string) string {
	port = strings.TrimSpace(port)
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
