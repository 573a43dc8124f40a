package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"net"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string        `env:"RUN_ADDRESS" envDefault:":8080"`
	DatabaseURI     string        `env:"DATABASE_URI"`
	AuthSecret      string        `env:"AUTH_SECRET" envDefault:"change-me-in-production"`
	AuthSecretFile  string        `env:"AUTH_SECRET_FILE"`
	SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"720h"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	LoginRate       float64       `env:"LOGIN_RATE" envDefault:"0.2"`
	LoginBurst      int           `env:"LOGIN_BURST" envDefault:"5"`
	CacheTTL        time.Duration `env:"CACHE_TTL" envDefault:"30s"`
	JanitorInterval time.Duration `env:"JANITOR_INTERVAL" envDefault:"1m"`
	Migrate         bool          `env:"MIGRATE" envDefault:"true"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`

	// TrustedProxies lists proxy IPs or CIDRs allowed to set X-Forwarded-For.
	// Empty means the client address is always the TCP peer.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

const (
	defaultSessionTTL      = 720 * time.Hour
	defaultShutdownTimeout = 10 * time.Second
	defaultLoginRate       = 0.2
	defaultLoginBurst      = 5
	defaultCacheTTL        = 30 * time.Second
	defaultJanitorInterval = time.Minute

	defaultEnvFile = ".env"
)

// Load parses configuration from an optional .env file, environment variables and flags.
func Load() (*Config, error) {
	environ := env.ToMap(os.Environ())

	envFile := environ["ENV_FILE"]
	if envFile == "" {
		envFile = defaultEnvFile
	}

	environ, err := withDotEnv(environ, envFile)
	if err != nil {
		return nil, err
	}

	return load(os.Args[1:], environ)
}

// withDotEnv fills keys missing from environ with values from the dotenv file at path.
// A missing file is not an error.
func withDotEnv(environ map[string]string, path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return environ, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	merged := make(map[string]string, len(environ)+len(values))
	for k, v := range values {
		merged[k] = v
	}
	for k, v := range environ {
		merged[k] = v
	}
	return merged, nil
}

func load(args []string, environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	flags := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	flags.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	flags.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	flags.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "Secret for signing session tokens")
	flags.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "Session lifetime")
	flags.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "Graceful shutdown timeout")
	flags.Float64Var(&cfg.LoginRate, "login-rate", cfg.LoginRate, "Sign-in attempts per second allowed per client")
	flags.IntVar(&cfg.LoginBurst, "login-burst", cfg.LoginBurst, "Sign-in attempts allowed in a burst per client")
	flags.DurationVar(&cfg.CacheTTL, "cache-ttl", cfg.CacheTTL, "Lifetime of cached invoice list pages")
	flags.DurationVar(&cfg.JanitorInterval, "janitor-interval", cfg.JanitorInterval, "Interval between cache and limiter sweeps")
	flags.BoolVar(&cfg.Migrate, "migrate", cfg.Migrate, "Apply database migrations on start")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	flags.Func("trusted-proxies", "Comma-separated proxy IPs or CIDRs trusted for X-Forwarded-For", func(v string) error {
		cfg.TrustedProxies = splitList(v)
		return nil
	})

	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if cfg.AuthSecretFile != "" {
		content, err := os.ReadFile(cfg.AuthSecretFile)
		if err != nil {
			return nil, fmt.Errorf("read auth secret file: %w", err)
		}
		cfg.AuthSecret = strings.TrimSpace(string(content))
	}

	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.LoginRate <= 0 {
		cfg.LoginRate = defaultLoginRate
	}

	if cfg.LoginBurst <= 0 {
		cfg.LoginBurst = defaultLoginBurst
	}

	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}

	if cfg.JanitorInterval <= 0 {
		cfg.JanitorInterval = defaultJanitorInterval
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.AuthSecret == "" {
		return nil, fmt.Errorf("auth secret must not be empty")
	}

	for _, proxy := range cfg.TrustedProxies {
		if !validProxy(proxy) {
			return nil, fmt.Errorf("invalid trusted proxy %q", proxy)
		}
	}

	return cfg, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func validProxy(v string) bool {
	if strings.Contains(v, "/") {
		_, _, err := net.ParseCIDR(v)
		return err == nil
	}
	return net.ParseIP(v) != nil
}
