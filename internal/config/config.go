// Package config loads the application configuration from a YAML file with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
	"time"

	"handlescan/pkg/domain"
	"handlescan/pkg/serrors"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure.
// It contains settings for the environment, the scan engine, the HTTP server,
// the optional database and background workers, and graceful shutdown behavior.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`
	// LogLevel overrides the environment's default log level (debug, info, warn, error).
	LogLevel string `env:"LOG_LEVEL" yaml:"logLevel"`

	// Scanner contains the scan engine settings
	Scanner struct {
		// Timeout bounds a single probe request, redirects included
		Timeout time.Duration `env:"SCANNER_TIMEOUT" env-default:"4s" yaml:"timeout"`
		// RedirectLimit is the number of redirects followed per probe
		RedirectLimit int `env:"SCANNER_REDIRECT_LIMIT" env-default:"4" yaml:"redirectLimit"`
		// UserAgent is sent with every probe
		UserAgent string `env:"SCANNER_USER_AGENT" env-default:"handlescan/1.0 (research only)" yaml:"userAgent"`
		// MaxConcurrentProbes is the process-wide limit of in-flight probes
		MaxConcurrentProbes int `env:"SCANNER_MAX_CONCURRENT_PROBES" env-default:"5" yaml:"maxConcurrentProbes"`
		// MaxConcurrentProbesPerScan limits the fan-out of a single scan; 1 probes providers one by one
		MaxConcurrentProbesPerScan int `env:"SCANNER_MAX_CONCURRENT_PROBES_PER_SCAN" env-default:"5" yaml:"maxConcurrentProbesPerScan"` //nolint: lll
		// MaxConcurrentScans limits how many scans probe at once; 0 means unlimited
		MaxConcurrentScans int `env:"SCANNER_MAX_CONCURRENT_SCANS" env-default:"0" yaml:"maxConcurrentScans"`
		// CacheTTL is how long a scan result is served from the cache
		CacheTTL time.Duration `env:"SCANNER_CACHE_TTL" env-default:"15m" yaml:"cacheTTL"`
		// CacheMaxEntries bounds the number of cached identifiers
		CacheMaxEntries int `env:"SCANNER_CACHE_MAX_ENTRIES" env-default:"10000" yaml:"cacheMaxEntries"`
		// RetryAttempts is the total number of attempts per probe
		RetryAttempts uint64 `env:"SCANNER_RETRY_ATTEMPTS" env-default:"3" yaml:"retryAttempts"`
		// RetryInitialDelay is the first backoff delay; it doubles for each later attempt
		RetryInitialDelay time.Duration `env:"SCANNER_RETRY_INITIAL_DELAY" env-default:"200ms" yaml:"retryInitialDelay"`
		// Providers lists the endpoints to probe. The built-in list is used when empty.
		Providers []domain.Provider `yaml:"providers"`
	} `yaml:"scanner"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"30s" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
		// AllowedOrigins lists origins allowed by CORS; "*" allows any origin
		AllowedOrigins []string `env:"HTTP_ALLOWED_ORIGINS" env-default:"*" yaml:"allowedOrigins"`
	} `yaml:"http"`

	// Database contains all database connection related configurations
	Database struct {
		// Enabled turns on scan history and background scan jobs
		Enabled bool `env:"DATABASE_ENABLED" env-default:"false" yaml:"enabled"`
		// Username for database authentication
		Username string `env:"DATABASE_USERNAME" env-default:"myuser" yaml:"username"`
		// Password for database authentication
		Password string `env:"DATABASE_PASSWORD" env-default:"mypassword" yaml:"password"`
		// Host is the database server hostname or IP address
		Host string `env:"DATABASE_HOST" env-default:"localhost" yaml:"host"`
		// Port is the database server port number
		Port int `env:"DATABASE_PORT" env-default:"5432" yaml:"port"`
		// SslMode defines the SSL mode for the database connection
		SslMode string `env:"DATABASE_SSL_MODE" env-default:"disable" yaml:"sslMode"`
		// DatabaseName is the name of the database to connect to
		DatabaseName string `env:"DATABASE_NAME" env-default:"handlescan" yaml:"name"`
		// MaxOpenConnections limits the number of open connections to the database
		MaxOpenConnections int `env:"DATABASE_MAX_OPEN_CONNECTIONS" env-default:"10" yaml:"maxOpenConnections"`
		// MaxIdleConnections limits the number of connections in the idle connection pool
		MaxIdleConnections int `env:"DATABASE_MAX_IDLE_CONNECTIONS" env-default:"8" yaml:"maxIdleConnections"`
		// ConnMaxLifetime is the maximum amount of time a connection may be reused
		ConnMaxLifetime time.Duration `env:"DATABASE_CONNECTION_MAX_LIFETIME" env-default:"3m" yaml:"connMaxLifetime"`
		// ConnMaxIdleTime is the maximum amount of time a connection may be idle
		ConnMaxIdleTime time.Duration `env:"DATABASE_CONNECTION_MAX_IDLE_TIME" env-default:"3m" yaml:"connMaxIdleTime"`
	} `yaml:"database"`

	// Worker configures background scan jobs
	Worker struct {
		// MaxWorkers is the number of scan jobs processed concurrently
		MaxWorkers int `env:"WORKER_MAX_WORKERS" env-default:"10" yaml:"maxWorkers"`
		// MaxAttempts is how many times a scan job is tried before it is discarded
		MaxAttempts int `env:"WORKER_MAX_ATTEMPTS" env-default:"3" yaml:"maxAttempts"`
	} `yaml:"worker"`

	// JWT holds the RS256 key pair used to authenticate API callers
	JWT struct {
		// PublicKey verifies bearer tokens. Authentication is disabled when empty.
		PublicKey string `env:"JWT_PUBLIC_KEY" yaml:"publicKey"`
		// PrivateKey signs tokens minted by the jwt command
		PrivateKey string `env:"JWT_PRIVATE_KEY" yaml:"privateKey"`
	} `yaml:"jwt"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// DefaultProviders returns the built-in provider list.
func DefaultProviders() []domain.Provider {
	return []domain.Provider{
		{Name: "GitHub", URLTemplate: "https://github.com/{identifier}"},
		{Name: "Reddit", URLTemplate: "https://www.reddit.com/user/{identifier}"},
		{Name: "Steam", URLTemplate: "https://steamcommunity.com/id/{identifier}"},
		{Name: "Twitter", URLTemplate: "https://twitter.com/{identifier}"},
		{Name: "PSNProfiles", URLTemplate: "https://psnprofiles.com/{identifier}"},
	}
}

// Load receives the path for yaml config file and returns a filled Config struct.
// A missing file is not an error: environment variables and defaults are used instead.
func Load(configPath string) (*Config, error) {
	var cfg Config

	_, err := os.Stat(configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("could not read config from env: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("could not stat config file: %w", err)
	default:
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("could not read config: %w", err)
		}
	}

	if len(cfg.Scanner.Providers) == 0 {
		cfg.Scanner.Providers = DefaultProviders()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the settings the scan engine relies on.
func (c *Config) Validate() error {
	s := c.Scanner
	switch {
	case s.Timeout <= 0:
		return serrors.With(serrors.ErrConfig, "scanner.timeout must be positive")
	case s.RedirectLimit < 0:
		return serrors.With(serrors.ErrConfig, "scanner.redirectLimit must not be negative")
	case s.MaxConcurrentProbes < 1:
		return serrors.With(serrors.ErrConfig, "scanner.maxConcurrentProbes must be >= 1")
	case s.MaxConcurrentProbesPerScan < 0:
		return serrors.With(serrors.ErrConfig, "scanner.maxConcurrentProbesPerScan must not be negative")
	case s.MaxConcurrentScans < 0:
		return serrors.With(serrors.ErrConfig, "scanner.maxConcurrentScans must not be negative")
	case s.CacheTTL < 0:
		return serrors.With(serrors.ErrConfig, "scanner.cacheTTL must not be negative")
	case s.CacheMaxEntries < 1:
		return serrors.With(serrors.ErrConfig, "scanner.cacheMaxEntries must be >= 1")
	case s.RetryAttempts < 1:
		return serrors.With(serrors.ErrConfig, "scanner.retryAttempts must be >= 1")
	}

	seen := make(map[string]struct{}, len(s.Providers))
	for i, p := range s.Providers {
		if p.Name == "" || p.URLTemplate == "" {
			return serrors.With(serrors.ErrConfig, "scanner.providers[%d] needs a name and url", i)
		}
		if !p.HasPlaceholder() {
			return serrors.With(serrors.ErrConfig, "provider %q url has no {identifier} placeholder", p.Name)
		}
		key := strings.ToLower(p.Name)
		if _, ok := seen[key]; ok {
			return serrors.With(serrors.ErrConfig, "duplicate provider %q", p.Name)
		}
		seen[key] = struct{}{}
	}

	if c.Worker.MaxWorkers < 1 {
		return serrors.With(serrors.ErrConfig, "worker.maxWorkers must be >= 1")
	}

	return nil
}

// FilterProviders returns the enabled providers whose names match one of
// names, ignoring case. When names is empty or nothing matches, every enabled
// provider is returned.
func FilterProviders(providers []domain.Provider, names []string) []domain.Provider {
	enabled := make([]domain.Provider, 0, len(providers))
	for _, p := range providers {
		if !p.Disabled {
			enabled = append(enabled, p)
		}
	}
	if len(names) == 0 {
		return enabled
	}

	filtered := slices.DeleteFunc(slices.Clone(enabled), func(p domain.Provider) bool {
		return !slices.ContainsFunc(names, func(n string) bool {
			return strings.EqualFold(strings.TrimSpace(n), p.Name)
		})
	})
	if len(filtered) == 0 {
		return enabled
	}

	return filtered
}
