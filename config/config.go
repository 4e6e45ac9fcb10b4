package config

import (
	"time"

	commonerrors "github.com/ClipFinance/bridge-lib/common/errors"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config holds the library configuration. Every knob has a default; nothing
// is required for in-memory use.
type Config struct {
	// DatabaseURL is the Postgres connection string for the transaction
	// store. Empty selects the in-memory store.
	DatabaseURL string

	// QuoteTimeout bounds each adapter's quote call.
	QuoteTimeout time.Duration
	// QuoteCacheTTL bounds the orchestrator's quote cache. Zero disables it.
	QuoteCacheTTL time.Duration

	// PollInitialInterval is the first saga polling interval.
	PollInitialInterval time.Duration
	// PollMaxInterval caps the saga polling backoff.
	PollMaxInterval time.Duration
	// PollTimeout bounds the overall saga polling wait.
	PollTimeout time.Duration

	// DemoEnabled registers the demo adapter. Never enable in production:
	// the demo provider is not production ready.
	DemoEnabled bool
	// DemoCompletionDelay is the demo adapter's simulated transfer duration.
	DemoCompletionDelay time.Duration
}

// Load reads configuration from environment variables and an optional config
// file (.bridge-lib.yaml in $HOME or the working directory).
func Load() (*Config, error) {
	viper.SetConfigName(".bridge-lib")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME")
	viper.AddConfigPath(".")

	viper.SetDefault("quote_timeout", "5s")
	viper.SetDefault("quote_cache_ttl", "10s")
	viper.SetDefault("poll_initial_interval", "500ms")
	viper.SetDefault("poll_max_interval", "8s")
	viper.SetDefault("poll_timeout", "10m")
	viper.SetDefault("demo_enabled", false)
	viper.SetDefault("demo_completion_delay", "2s")

	viper.SetEnvPrefix("BRIDGE_LIB")
	viper.AutomaticEnv()

	// Config file is optional.
	_ = viper.ReadInConfig()

	cfg := &Config{
		DatabaseURL:         viper.GetString("database_url"),
		QuoteTimeout:        viper.GetDuration("quote_timeout"),
		QuoteCacheTTL:       viper.GetDuration("quote_cache_ttl"),
		PollInitialInterval: viper.GetDuration("poll_initial_interval"),
		PollMaxInterval:     viper.GetDuration("poll_max_interval"),
		PollTimeout:         viper.GetDuration("poll_timeout"),
		DemoEnabled:         viper.GetBool("demo_enabled"),
		DemoCompletionDelay: viper.GetDuration("demo_completion_delay"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.QuoteTimeout <= 0 {
		return errors.Wrap(commonerrors.ErrInvalidConfig, "quote_timeout must be positive")
	}
	if c.PollInitialInterval <= 0 || c.PollMaxInterval < c.PollInitialInterval {
		return errors.Wrap(commonerrors.ErrInvalidConfig, "poll intervals must be positive and max >= initial")
	}
	if c.PollTimeout <= 0 {
		return errors.Wrap(commonerrors.ErrInvalidConfig, "poll_timeout must be positive")
	}
	return nil
}
