// Package config aggregates the dashboard's environment configuration.
//
// Optional settings are fail-open: an invalid value is replaced by its
// default, logged and counted. Combinations the dashboard cannot run
// without (a Postgres store with no DSN, NewsAPI with no key) are rejected
// by Validate and stop startup.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	pkgconfig "climate-dashboard/internal/pkg/config"
)

const (
	ProviderRSS     = "rss"
	ProviderNewsAPI = "newsapi"

	StoreFile     = "file"
	StorePostgres = "postgres"
)

// Config is the full runtime configuration of cmd/dashboard.
type Config struct {
	HTTPAddr        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	// RosterFile overrides the embedded company roster when set.
	RosterFile string

	News   NewsConfig
	Store  StoreConfig
	Notify NotifyConfig

	TraceSampleRatio float64
}

// NewsConfig selects and tunes the news source adapter.
type NewsConfig struct {
	Provider     string
	APIKey       string
	APIBaseURL   string
	RSSBaseURL   string
	HistoryDays  int
	FetchTimeout time.Duration
}

// StoreConfig selects the manual update store.
type StoreConfig struct {
	Driver      string
	UpdatesFile string
	DatabaseURL string
}

// NotifyConfig configures the webhook channels fired after a submission.
type NotifyConfig struct {
	SlackEnabled      bool
	SlackWebhookURL   string
	DiscordEnabled    bool
	DiscordWebhookURL string
	WebhookTimeout    time.Duration
	MaxConcurrent     int
}

// Default returns the configuration used when no variables are set.
func Default() Config {
	return Config{
		HTTPAddr:        ":8080",
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		News: NewsConfig{
			Provider:     ProviderRSS,
			APIBaseURL:   "https://newsapi.org",
			RSSBaseURL:   "https://news.google.com",
			HistoryDays:  7,
			FetchTimeout: 5 * time.Second,
		},
		Store: StoreConfig{
			Driver:      StoreFile,
			UpdatesFile: "company_updates.json",
		},
		Notify: NotifyConfig{
			WebhookTimeout: 10 * time.Second,
			MaxConcurrent:  2,
		},
		TraceSampleRatio: 1.0,
	}
}

// loader applies fallback results to the config and keeps the bookkeeping
// in one place.
type loader struct {
	logger   *slog.Logger
	metrics  *pkgconfig.ConfigMetrics
	fallback bool
}

func (l *loader) apply(field string, result pkgconfig.ConfigLoadResult) pkgconfig.ConfigLoadResult {
	if !result.FallbackApplied {
		return result
	}
	l.fallback = true
	if l.metrics != nil {
		l.metrics.RecordFallback(field)
	}
	for _, warning := range result.Warnings {
		l.logger.Warn("configuration fallback applied",
			slog.String("field", field),
			slog.String("warning", warning))
	}
	return result
}

// Load reads the configuration from the environment and validates it.
// metrics may be nil.
func Load(logger *slog.Logger, metrics *pkgconfig.ConfigMetrics) (*Config, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cfg := Default()
	l := &loader{logger: logger, metrics: metrics}

	cfg.HTTPAddr = pkgconfig.LoadEnvString("HTTP_ADDR", cfg.HTTPAddr)
	cfg.RequestTimeout = l.apply("request_timeout",
		pkgconfig.LoadEnvDuration("REQUEST_TIMEOUT", cfg.RequestTimeout, func(d time.Duration) error {
			return pkgconfig.ValidateDuration(d, time.Second, 5*time.Minute)
		})).Value.(time.Duration)
	cfg.ShutdownTimeout = l.apply("shutdown_timeout",
		pkgconfig.LoadEnvDuration("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout, pkgconfig.ValidatePositiveDuration)).Value.(time.Duration)
	cfg.RosterFile = pkgconfig.LoadEnvString("ROSTER_FILE", "")

	// News
	cfg.News.APIKey = strings.TrimSpace(pkgconfig.LoadEnvString("NEWS_API_KEY", ""))
	if cfg.News.APIKey != "" {
		// キーがあれば NewsAPI を既定にする
		cfg.News.Provider = ProviderNewsAPI
	}
	cfg.News.Provider = strings.ToLower(l.apply("news_provider",
		pkgconfig.LoadEnvWithFallback("NEWS_PROVIDER", cfg.News.Provider, func(v string) error {
			return pkgconfig.ValidateOneOf(v, ProviderRSS, ProviderNewsAPI)
		})).Value.(string))
	cfg.News.APIBaseURL = l.apply("news_api_base_url",
		pkgconfig.LoadEnvWithFallback("NEWS_API_BASE_URL", cfg.News.APIBaseURL, pkgconfig.ValidateHTTPURL)).Value.(string)
	cfg.News.RSSBaseURL = l.apply("news_rss_base_url",
		pkgconfig.LoadEnvWithFallback("NEWS_RSS_BASE_URL", cfg.News.RSSBaseURL, pkgconfig.ValidateHTTPURL)).Value.(string)
	cfg.News.HistoryDays = l.apply("news_history_days",
		pkgconfig.LoadEnvInt("NEWS_HISTORY_DAYS", cfg.News.HistoryDays, func(v int) error {
			return pkgconfig.ValidateIntRange(v, 1, 30)
		})).Value.(int)
	cfg.News.FetchTimeout = l.apply("fetch_timeout",
		pkgconfig.LoadEnvDuration("FETCH_TIMEOUT", cfg.News.FetchTimeout, func(d time.Duration) error {
			return pkgconfig.ValidateDuration(d, 100*time.Millisecond, time.Minute)
		})).Value.(time.Duration)

	// Store
	cfg.Store.Driver = strings.ToLower(l.apply("store_driver",
		pkgconfig.LoadEnvWithFallback("STORE_DRIVER", cfg.Store.Driver, func(v string) error {
			return pkgconfig.ValidateOneOf(v, StoreFile, StorePostgres)
		})).Value.(string))
	cfg.Store.UpdatesFile = pkgconfig.LoadEnvString("UPDATES_FILE", cfg.Store.UpdatesFile)
	cfg.Store.DatabaseURL = pkgconfig.LoadEnvString("DATABASE_URL", "")

	// Notifications
	cfg.Notify.SlackEnabled = l.apply("slack_enabled",
		pkgconfig.LoadEnvBool("SLACK_ENABLED", false)).Value.(bool)
	cfg.Notify.SlackWebhookURL = pkgconfig.LoadEnvString("SLACK_WEBHOOK_URL", "")
	cfg.Notify.DiscordEnabled = l.apply("discord_enabled",
		pkgconfig.LoadEnvBool("DISCORD_ENABLED", false)).Value.(bool)
	cfg.Notify.DiscordWebhookURL = pkgconfig.LoadEnvString("DISCORD_WEBHOOK_URL", "")
	cfg.Notify.WebhookTimeout = l.apply("webhook_timeout",
		pkgconfig.LoadEnvDuration("WEBHOOK_TIMEOUT", cfg.Notify.WebhookTimeout, pkgconfig.ValidatePositiveDuration)).Value.(time.Duration)
	cfg.Notify.MaxConcurrent = l.apply("notify_max_concurrent",
		pkgconfig.LoadEnvInt("NOTIFY_MAX_CONCURRENT", cfg.Notify.MaxConcurrent, func(v int) error {
			return pkgconfig.ValidateIntRange(v, 1, 10)
		})).Value.(int)

	cfg.TraceSampleRatio = l.apply("trace_sample_ratio",
		pkgconfig.LoadEnvFloat("TRACE_SAMPLE_RATIO", cfg.TraceSampleRatio, pkgconfig.ValidateRatio)).Value.(float64)

	if metrics != nil {
		metrics.SetFallbackActive(l.fallback)
	}

	if err := cfg.Validate(); err != nil {
		if metrics != nil {
			var fe *FieldError
			for _, e := range unwrapAll(err) {
				if errors.As(e, &fe) {
					metrics.RecordValidationError(fe.Field)
				}
			}
		}
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if metrics != nil {
		metrics.RecordLoadTimestamp()
	}
	return &cfg, nil
}

// FieldError names the setting that made the configuration unusable.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Validate reports every combination the dashboard cannot start with.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.HTTPAddr) == "" {
		errs = append(errs, &FieldError{Field: "http_addr", Err: errors.New("must not be empty")})
	}

	switch c.News.Provider {
	case ProviderNewsAPI:
		if c.News.APIKey == "" {
			errs = append(errs, &FieldError{Field: "news_api_key", Err: errors.New("required when NEWS_PROVIDER=newsapi")})
		}
	case ProviderRSS:
	default:
		errs = append(errs, &FieldError{Field: "news_provider", Err: pkgconfig.ValidateOneOf(c.News.Provider, ProviderRSS, ProviderNewsAPI)})
	}

	switch c.Store.Driver {
	case StorePostgres:
		if c.Store.DatabaseURL == "" {
			errs = append(errs, &FieldError{Field: "database_url", Err: errors.New("required when STORE_DRIVER=postgres")})
		}
	case StoreFile:
		if strings.TrimSpace(c.Store.UpdatesFile) == "" {
			errs = append(errs, &FieldError{Field: "updates_file", Err: errors.New("must not be empty")})
		}
	default:
		errs = append(errs, &FieldError{Field: "store_driver", Err: pkgconfig.ValidateOneOf(c.Store.Driver, StoreFile, StorePostgres)})
	}

	if c.Notify.SlackEnabled {
		if err := pkgconfig.ValidateHTTPURL(c.Notify.SlackWebhookURL); err != nil {
			errs = append(errs, &FieldError{Field: "slack_webhook_url", Err: err})
		}
	}
	if c.Notify.DiscordEnabled {
		if err := pkgconfig.ValidateHTTPURL(c.Notify.DiscordWebhookURL); err != nil {
			errs = append(errs, &FieldError{Field: "discord_webhook_url", Err: err})
		}
	}

	return errors.Join(errs...)
}

func unwrapAll(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
