package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/Adham-Nexera-Innovation/test-tooth-sub001/internal/locale"
)

const (
	// Prefix namespaces every environment key read by Load.
	Prefix = "CLINIC_WEB_"

	defaultEnvFile = ".env"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server  ServerConfig
	Site    SiteConfig
	Paths   PathsConfig
	Logging LoggingConfig
	Content ContentConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	Dev             bool          `env:"DEV"`
}

// SiteConfig holds public-facing site settings.
type SiteConfig struct {
	BaseURL       string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	DefaultLocale string `env:"DEFAULT_LOCALE" envDefault:"ar"`
}

// PathsConfig locates on-disk resources.
type PathsConfig struct {
	Templates string `env:"TEMPLATES_DIR" envDefault:"templates"`
	Public    string `env:"PUBLIC_DIR" envDefault:"public"`
	Locales   string `env:"LOCALES_DIR" envDefault:"locales"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

// ContentConfig tunes article rendering and listing.
type ContentConfig struct {
	CacheTTL     time.Duration `env:"CONTENT_CACHE_TTL" envDefault:"5m"`
	BlogPageSize int           `env:"BLOG_PAGE_SIZE" envDefault:"9"`
}

// Locale returns the configured default locale. Load guarantees it is valid.
func (c Config) Locale() locale.Locale {
	if l, ok := locale.Parse(c.Site.DefaultLocale); ok {
		return l
	}
	return locale.Default
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return ":" + c.Server.Port
}

// ValidationError is returned when configuration fields are invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides. An
// empty path disables dotenv loading.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading the process environment, relying only on provided maps and .env files.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the configuration from defaults, .env overrides, the
// process environment and explicit overrides, in increasing precedence.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	values, err := environmentValues(options)
	if err != nil {
		return Config{}, err
	}

	// Cloud Run and similar platforms inject a bare PORT.
	if _, ok := values[Prefix+"PORT"]; !ok {
		if port, ok := values["PORT"]; ok && port != "" {
			values[Prefix+"PORT"] = port
		}
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{
		Environment: values,
		Prefix:      Prefix,
	}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.Site.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Site.BaseURL), "/")
	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func environmentValues(options loaderOptions) (map[string]string, error) {
	values := make(map[string]string)
	merge := func(source map[string]string) {
		for key, value := range source {
			values[key] = value
		}
	}

	if options.envFile != "" {
		dotEnv, err := godotenv.Read(options.envFile)
		switch {
		case err == nil:
			merge(dotEnv)
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("read %s: %w", options.envFile, err)
		}
	}

	if options.useSystemEnv {
		for _, entry := range os.Environ() {
			key, value, ok := strings.Cut(entry, "=")
			if !ok || strings.TrimSpace(key) == "" {
				continue
			}
			values[key] = value
		}
	}

	merge(options.envMap)
	return values, nil
}

var logLevels = map[string]struct{}{"debug": {}, "info": {}, "warn": {}, "error": {}}

func validate(cfg Config) error {
	var fields []string

	if port, err := strconv.Atoi(cfg.Server.Port); err != nil || port < 1 || port > 65535 {
		fields = append(fields, Prefix+"PORT")
	}
	for key, d := range map[string]time.Duration{
		"READ_TIMEOUT":     cfg.Server.ReadTimeout,
		"WRITE_TIMEOUT":    cfg.Server.WriteTimeout,
		"IDLE_TIMEOUT":     cfg.Server.IdleTimeout,
		"REQUEST_TIMEOUT":  cfg.Server.RequestTimeout,
		"SHUTDOWN_TIMEOUT": cfg.Server.ShutdownTimeout,
	} {
		if d <= 0 {
			fields = append(fields, Prefix+key)
		}
	}
	if u, err := url.Parse(cfg.Site.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		fields = append(fields, Prefix+"BASE_URL")
	}
	if _, ok := locale.Parse(cfg.Site.DefaultLocale); !ok {
		fields = append(fields, Prefix+"DEFAULT_LOCALE")
	}
	if _, ok := logLevels[cfg.Logging.Level]; !ok {
		fields = append(fields, Prefix+"LOG_LEVEL")
	}
	if cfg.Content.BlogPageSize < 1 {
		fields = append(fields, Prefix+"BLOG_PAGE_SIZE")
	}
	if cfg.Content.CacheTTL < 0 {
		fields = append(fields, Prefix+"CONTENT_CACHE_TTL")
	}

	if len(fields) > 0 {
		sort.Strings(fields)
		return &ValidationError{fields: fields}
	}
	return nil
}
