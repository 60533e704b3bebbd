package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	CatalogFile    string        // path to the websites.yaml catalog file
	WatchCatalog   bool          // reload when the catalog file changes
	ReloadInterval time.Duration // periodic reload (0 = disabled)
	FaviconService string        // favicon lookup template, one %s for the domain
	PageTitle      string        // document title

	HomepageServicesFile  string // optional gethomepage services.yaml merged into the catalog
	HomepageBookmarksFile string // optional gethomepage bookmarks.yaml merged into the catalog

	Redis RedisConfig // visit tracking, off when Redis.Addr is empty

	AllowedHosts []string // optional, restrict admin routes to specific Host headers
	AllowedCIDRS []string // optional, restrict admin routes to specific IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)

	MutationBurst     int // rate limit burst for catalog mutations per client
	MutationPerMinute int // rate limit refill for catalog mutations per client
}

// RedisConfig holds the visit store client settings and its startup
// retry policy.
type RedisConfig struct {
	Addr             string // ex: "localhost:6379"
	User             string
	Password         string
	PasswordRequired bool // fail at startup when no password is set
	DB               int  // required when Addr is set
	PoolSize         int

	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	ConnectTimeout time.Duration // total time spent retrying at startup
	RetryInterval  time.Duration // first wait between attempts, doubled each time
	MaxWait        time.Duration
	PingTimeout    time.Duration
	WarnThreshold  int // attempts logged at warn level
}

// VisitTracking reports whether a visit store is configured.
func (c *Config) VisitTracking() bool {
	return c.Redis.Addr != ""
}

// DefaultCatalogFile is the catalog path when SITEHUB_CATALOG_FILE is unset.
const DefaultCatalogFile = "/app/websites.yaml"

// CatalogFile returns the configured catalog path without loading the rest.
func CatalogFile() string {
	return getenv("SITEHUB_CATALOG_FILE", DefaultCatalogFile)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("SITEHUB_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("SITEHUB_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("SITEHUB_LOG_LEVEL", "info"),
		PrettyLog: mustBool("SITEHUB_PRETTY_LOG", true),

		// Catalog
		CatalogFile:    CatalogFile(),
		WatchCatalog:   mustBool("SITEHUB_WATCH_CATALOG", true),
		ReloadInterval: mustDuration("SITEHUB_RELOAD_INTERVAL", 0),
		FaviconService: getenv("SITEHUB_FAVICON_SERVICE", ""),
		PageTitle:      getenv("SITEHUB_PAGE_TITLE", "Website Hub"),

		HomepageServicesFile:  getenv("SITEHUB_HOMEPAGE_SERVICES_FILE", ""),
		HomepageBookmarksFile: getenv("SITEHUB_HOMEPAGE_BOOKMARKS_FILE", ""),

		Redis: RedisConfig{
			Addr:             getenv("SITEHUB_REDIS_ADDR", ""),
			User:             getenv("SITEHUB_REDIS_USERNAME", "default"),
			Password:         getenv("SITEHUB_REDIS_PASSWORD", ""),
			PasswordRequired: mustBool("SITEHUB_REDIS_PASSWORD_REQUIRED", false),
			PoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
			DialTimeout:      mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:      mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout:     mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
			ConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
			RetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
			MaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
			PingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
			WarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),
		},

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("SITEHUB_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("SITEHUB_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("SITEHUB_TRUST_PROXY", false),

		MutationBurst:     getenvInt("SITEHUB_MUTATION_BURST", 10),
		MutationPerMinute: getenvInt("SITEHUB_MUTATION_PER_MINUTE", 30),
	}

	if cfg.VisitTracking() {
		cfg.Redis.DB = requireEnvInt("SITEHUB_REDIS_DB")
		if cfg.Redis.PasswordRequired {
			cfg.Redis.Password = requireEnv("SITEHUB_REDIS_PASSWORD")
		}
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		log.Printf("[DEBUG] cfg: %+v\n", cfg.Redacted())
	}

	return cfg
}

const redacted = "***REDACTED***"

// Redacted returns a copy safe to print.
func (c *Config) Redacted() Config {
	out := *c
	if c.Redis.Password != "" {
		out.Redis.Password = redacted
	}
	if c.Redis.User != "" {
		out.Redis.User = redacted
	}
	return out
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func requireEnvInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid integer value for %s: %s", key, v))
	}
	return i
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
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
