package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"spike_detector/internal/domain/entity"
	"spike_detector/internal/domain/scoring"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds the overall configuration for the application.
type Config struct {
	Server      ServerConfig               `yaml:"server"`
	Logging     LoggingConfig              `yaml:"logging"`
	DEXScreener DEXScreenerConfig          `yaml:"dexScreener"`
	RugCheck    RugCheckConfig             `yaml:"rugCheck"`
	GoPlus      GoPlusConfig               `yaml:"goPlus"`
	Security    SecurityConfig             `yaml:"security"`
	Spike       SpikeConfig                `yaml:"spike"`
	Cache       CacheConfig                `yaml:"cache"`
	Gas         GasConfig                  `yaml:"gas"`
	Networks    []entity.NetworkDefinition `yaml:"networks"`
}

// ServerConfig holds the server-specific configuration.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// DEXScreenerConfig holds the configuration for the DEX Screener client.
type DEXScreenerConfig struct {
	BaseURL              string `yaml:"baseURL"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// RugCheckConfig holds the configuration for the RugCheck client.
type RugCheckConfig struct {
	BaseURL string `yaml:"baseURL"`
}

// GoPlusConfig holds the configuration for the GoPlus client.
type GoPlusConfig struct {
	BaseURL           string  `yaml:"baseURL"`
	AccessToken       string  `yaml:"accessToken"`
	RequestsPerSecond float64 `yaml:"requestsPerSecond"`
	Burst             int     `yaml:"burst"`
}

// SecurityConfig controls the per-pair security enrichment stage.
type SecurityConfig struct {
	TimeoutMillis       int64  `yaml:"timeoutMillis"`
	MaxConcurrentChecks int    `yaml:"maxConcurrentChecks"`
	SolanaChainID       string `yaml:"solanaChainID"`
}

// SpikeConfig holds the pair-source queries and the product-tunable thresholds.
type SpikeConfig struct {
	Queries         []string `yaml:"queries"`
	Chains          []string `yaml:"chains"`
	MaxMarketCapUSD float64  `yaml:"maxMarketCapUSD"`
	MinLiquidityUSD float64  `yaml:"minLiquidityUSD"`
	NameBlocklist   []string `yaml:"nameBlocklist"`
	MaxResults      int      `yaml:"maxResults"`
	// RunTimeoutSeconds bounds one pipeline run, independent of the HTTP request
	// that triggered it.
	RunTimeoutSeconds int `yaml:"runTimeoutSeconds"`
}

// CacheConfig holds configuration for the response caches.
type CacheConfig struct {
	SpikeFeedTTLSeconds    int `yaml:"spikeFeedTTLSeconds"`
	GasTTLSeconds          int `yaml:"gasTTLSeconds"`
	CleanupIntervalMinutes int `yaml:"cleanupIntervalMinutes"`
}

// GasConfig holds configuration for the gas dashboard.
type GasConfig struct {
	Networks             []string `yaml:"networks"`
	RequestTimeoutMillis int64    `yaml:"requestTimeoutMillis"`
	DialTimeoutMillis    int64    `yaml:"dialTimeoutMillis"`
	// A network whose RPC fails BreakerMaxFailures times in a row is skipped for
	// BreakerOpenSeconds.
	BreakerMaxFailures uint32 `yaml:"breakerMaxFailures"`
	BreakerOpenSeconds int    `yaml:"breakerOpenSeconds"`
}

// Thresholds converts the spike section into scoring thresholds.
func (c SpikeConfig) Thresholds() scoring.Thresholds {
	return scoring.Thresholds{
		MaxMarketCapUSD: c.MaxMarketCapUSD,
		MinLiquidityUSD: c.MinLiquidityUSD,
		NameBlocklist:   c.NameBlocklist,
		MaxResults:      c.MaxResults,
	}
}

// RunTimeout returns the deadline for one pipeline run.
func (c SpikeConfig) RunTimeout() time.Duration {
	return time.Duration(c.RunTimeoutSeconds) * time.Second
}

// RequestTimeout returns the per-network gas request timeout.
func (c GasConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMillis) * time.Millisecond
}

// BreakerOpen returns how long a failing network stays skipped.
func (c GasConfig) BreakerOpen() time.Duration {
	return time.Duration(c.BreakerOpenSeconds) * time.Second
}

// SecurityTimeout returns the per-call security check timeout.
func (c SecurityConfig) SecurityTimeout() time.Duration {
	return time.Duration(c.TimeoutMillis) * time.Millisecond
}

// LoadConfig loads configuration from a YAML file, overlays environment
// variables (optionally from a .env file) and applies defaults.
func LoadConfig(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.Warnf("Failed to load .env file: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		logrus.Errorf("Failed to unmarshal config data from %s: %v", path, err)
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	logrus.Info("Configuration loaded successfully.")
	return cfg, nil
}

// Parse unmarshals YAML and applies defaults without touching the environment.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = ":8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	if c.DEXScreener.BaseURL == "" {
		c.DEXScreener.BaseURL = "https://api.dexscreener.com"
		logrus.Infof("DEXScreener.BaseURL not set, defaulting to %s", c.DEXScreener.BaseURL)
	}
	if c.DEXScreener.RequestTimeoutMillis == 0 {
		c.DEXScreener.RequestTimeoutMillis = 10000
		logrus.Infof("DEXScreener.RequestTimeoutMillis not set, defaulting to %d ms", c.DEXScreener.RequestTimeoutMillis)
	}
	if c.RugCheck.BaseURL == "" {
		c.RugCheck.BaseURL = "https://api.rugcheck.xyz"
	}
	if c.GoPlus.BaseURL == "" {
		c.GoPlus.BaseURL = "https://api.gopluslabs.io"
	}
	if c.GoPlus.RequestsPerSecond <= 0 {
		c.GoPlus.RequestsPerSecond = 5
	}
	if c.GoPlus.Burst <= 0 {
		c.GoPlus.Burst = 5
	}

	if c.Security.TimeoutMillis == 0 {
		c.Security.TimeoutMillis = 4000
		logrus.Infof("Security.TimeoutMillis not set, defaulting to %d ms", c.Security.TimeoutMillis)
	}
	if c.Security.MaxConcurrentChecks <= 0 {
		c.Security.MaxConcurrentChecks = 16
	}
	if c.Security.SolanaChainID == "" {
		c.Security.SolanaChainID = "solana"
	}

	if len(c.Spike.Queries) == 0 {
		c.Spike.Queries = []string{"solana", "pump", "base", "bsc", "ethereum"}
	}
	defaults := scoring.DefaultThresholds()
	if c.Spike.MaxMarketCapUSD == 0 {
		c.Spike.MaxMarketCapUSD = defaults.MaxMarketCapUSD
	}
	if c.Spike.MinLiquidityUSD == 0 {
		c.Spike.MinLiquidityUSD = defaults.MinLiquidityUSD
	}
	if len(c.Spike.NameBlocklist) == 0 {
		c.Spike.NameBlocklist = defaults.NameBlocklist
	}
	if c.Spike.MaxResults == 0 {
		c.Spike.MaxResults = defaults.MaxResults
	}
	if c.Spike.RunTimeoutSeconds == 0 {
		c.Spike.RunTimeoutSeconds = 30
	}

	if c.Cache.SpikeFeedTTLSeconds == 0 {
		c.Cache.SpikeFeedTTLSeconds = 60
	}
	if c.Cache.GasTTLSeconds == 0 {
		c.Cache.GasTTLSeconds = 15
	}
	if c.Cache.CleanupIntervalMinutes == 0 {
		c.Cache.CleanupIntervalMinutes = 10
	}

	if c.Gas.RequestTimeoutMillis == 0 {
		c.Gas.RequestTimeoutMillis = 5000
	}
	if c.Gas.DialTimeoutMillis == 0 {
		c.Gas.DialTimeoutMillis = 10000
	}
	if c.Gas.BreakerMaxFailures == 0 {
		c.Gas.BreakerMaxFailures = 3
	}
	if c.Gas.BreakerOpenSeconds == 0 {
		c.Gas.BreakerOpenSeconds = 60
	}
}

// applyEnv overlays secrets and deployment knobs from the environment.
func applyEnv(c *Config) {
	if v := os.Getenv("SERVER_PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("GOPLUS_ACCESS_TOKEN"); v != "" {
		c.GoPlus.AccessToken = v
	}
	if v := os.Getenv("SPIKE_MAX_RESULTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Spike.MaxResults = n
		} else {
			logrus.Warnf("Ignoring invalid SPIKE_MAX_RESULTS %q: %v", v, err)
		}
	}
}

// Validate checks that configuration values are usable.
func (c *Config) Validate() error {
	if c.Spike.MaxResults < 1 {
		return fmt.Errorf("spike.maxResults must be at least 1")
	}
	if c.Spike.MaxMarketCapUSD <= 0 {
		return fmt.Errorf("spike.maxMarketCapUSD must be positive")
	}
	if c.Spike.MinLiquidityUSD < 0 {
		return fmt.Errorf("spike.minLiquidityUSD must not be negative")
	}
	if c.Security.TimeoutMillis < 0 {
		return fmt.Errorf("security.timeoutMillis must not be negative")
	}
	return nil
}
