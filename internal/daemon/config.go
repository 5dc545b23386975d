package daemon

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/brewpoint/brewpoint/internal/app/ledger"
	"github.com/brewpoint/brewpoint/internal/domain"
)

// Config is the daemon configuration, decoded from TOML.
type Config struct {
	API     APIConfig     `toml:"api"`
	Rewards RewardsConfig `toml:"rewards"`
	Pricing PricingConfig `toml:"pricing"`
	Log     LogConfig     `toml:"log"`
	Archive ArchiveConfig `toml:"archive"`
}

// APIConfig controls the HTTP listener.
type APIConfig struct {
	Host           string `toml:"host"`
	Port           int    `toml:"port"`
	RequestTimeout string `toml:"request_timeout"` // Go duration, e.g. "15s"
	Metrics        bool   `toml:"metrics"`
	LiveFeed       bool   `toml:"live_feed"`
}

// RewardsConfig controls the loyalty account.
type RewardsConfig struct {
	InitialBalance int64 `toml:"initial_balance"`
}

// PricingConfig controls order pricing.
type PricingConfig struct {
	DeliveryFee string `toml:"delivery_fee"` // decimal string, e.g. "50.00"
	Currency    string `toml:"currency"`
}

// LogConfig controls the logger.
type LogConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // json or console
}

// ArchiveConfig controls the optional SQLite receipt archive.
type ArchiveConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

const defaultRequestTimeout = 15 * time.Second

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			Host:           "127.0.0.1",
			Port:           8787,
			RequestTimeout: "15s",
			Metrics:        true,
			LiveFeed:       true,
		},
		Rewards: RewardsConfig{
			InitialBalance: 10,
		},
		Pricing: PricingConfig{
			DeliveryFee: "50.00",
			Currency:    "PHP",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load config %s: %w", path, err)
		}
	}
	cfg.applyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overlays BREWPOINT_* variables.
func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("BREWPOINT_HOST"); v != "" {
		c.API.Host = v
	}
	if v := getenv("BREWPOINT_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.API.Port = p
		}
	}
	if v := getenv("BREWPOINT_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// Validate rejects configurations the daemon cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.API.Port <= 0 || c.API.Port > 65535 {
		errs = append(errs, fmt.Errorf("api.port %d out of range", c.API.Port))
	}
	if _, err := time.ParseDuration(c.API.RequestTimeout); c.API.RequestTimeout != "" && err != nil {
		errs = append(errs, fmt.Errorf("api.request_timeout: %w", err))
	}
	if c.Rewards.InitialBalance < 0 {
		errs = append(errs, errors.New("rewards.initial_balance must not be negative"))
	}
	if fee, err := decimal.NewFromString(c.Pricing.DeliveryFee); err != nil {
		errs = append(errs, fmt.Errorf("pricing.delivery_fee: %w", err))
	} else if fee.IsNegative() {
		errs = append(errs, errors.New("pricing.delivery_fee must not be negative"))
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if f := strings.ToLower(c.Log.Format); f != "json" && f != "console" {
		errs = append(errs, fmt.Errorf("log.format %q must be json or console", c.Log.Format))
	}
	if c.Archive.Enabled && c.Archive.Path == "" {
		errs = append(errs, errors.New("archive.path is required when the archive is enabled"))
	}
	return errors.Join(errs...)
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.API.Host, c.API.Port)
}

// Timeout returns the parsed request timeout.
func (c APIConfig) Timeout() time.Duration {
	return parseDuration(c.RequestTimeout, defaultRequestTimeout)
}

func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// LedgerConfig converts the rewards and pricing sections.
func (c Config) LedgerConfig() (ledger.Config, error) {
	fee, err := decimal.NewFromString(c.Pricing.DeliveryFee)
	if err != nil {
		return ledger.Config{}, fmt.Errorf("pricing.delivery_fee: %w", err)
	}
	return ledger.Config{
		InitialBalance: domain.Points(c.Rewards.InitialBalance),
		DeliveryFee:    fee,
	}, nil
}

// Encode writes the configuration as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// NewLogger builds the process logger from the log section.
func NewLogger(c LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if strings.EqualFold(c.Format, "console") {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
