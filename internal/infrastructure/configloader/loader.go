package configloader

import (
	"fmt"
	"os"
	"strings"

	"balance_formatter/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	defaultPort             = "8080"
	defaultLogLevel         = "info"
	defaultPriceSourceURL   = "https://interview.switcheo.com/prices.json"
	defaultRequestTimeoutMs = 10000
	defaultCacheTTLMinutes  = 5
	defaultRateLimitPerSec  = 2.0
	defaultRateBurst        = 1
	defaultBalancesFile     = "data/balances.json"
)

// ServerConfig holds server-specific configurations.
type ServerConfig struct {
	Port                string `yaml:"port"`
	ReadTimeoutSeconds  int    `yaml:"readTimeoutSeconds"`
	WriteTimeoutSeconds int    `yaml:"writeTimeoutSeconds"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// FormatterConfig controls how balances are ranked and rendered.
type FormatterConfig struct {
	// Precision is a pointer so that an explicit 0 can be told apart from "not set".
	Precision  *int32         `yaml:"precision"`
	Priorities map[string]int `yaml:"priorities"`
}

// PricesConfig holds price feed configuration.
type PricesConfig struct {
	SourceURL            string  `yaml:"sourceURL"`
	File                 string  `yaml:"file"` // when set, prices are read from disk instead of SourceURL
	RequestTimeoutMillis int64   `yaml:"requestTimeoutMillis"`
	CacheTTLMinutes      int     `yaml:"cacheTTLMinutes"`
	RateLimitPerSecond   float64 `yaml:"rateLimitPerSecond"`
	RateBurst            int     `yaml:"rateBurst"`
	SnapshotDB           string  `yaml:"snapshotDB"` // empty disables the snapshot store
}

// BalancesConfig points at the wallet balances source.
type BalancesConfig struct {
	File string `yaml:"file"`
}

// CORSConfig holds the allowed origins of the HTTP API.
type CORSConfig struct {
	AllowOrigins []string `yaml:"allowOrigins"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	Formatter FormatterConfig `yaml:"formatter"`
	Prices    PricesConfig    `yaml:"prices"`
	Balances  BalancesConfig  `yaml:"balances"`
	CORS      CORSConfig      `yaml:"cors"`
}

// Load reads the YAML configuration file from the given path, applies
// defaults and validates the result.
func Load(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration data, applies defaults and validates it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logrus.Errorf("Failed to unmarshal config data: %v", err)
		return nil, fmt.Errorf("failed to unmarshal config data: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = defaultPort
	}
	if c.Server.ReadTimeoutSeconds <= 0 {
		c.Server.ReadTimeoutSeconds = 10
	}
	if c.Server.WriteTimeoutSeconds <= 0 {
		c.Server.WriteTimeoutSeconds = 10
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}

	if c.Formatter.Precision == nil {
		p := int32(entity.DefaultPrecision)
		c.Formatter.Precision = &p
		logrus.Debugf("formatter.precision not set, defaulting to %d", p)
	}

	if c.Prices.SourceURL == "" && c.Prices.File == "" {
		c.Prices.SourceURL = defaultPriceSourceURL
		logrus.Infof("prices.sourceURL not set, defaulting to %s", c.Prices.SourceURL)
	}
	if c.Prices.RequestTimeoutMillis <= 0 {
		c.Prices.RequestTimeoutMillis = defaultRequestTimeoutMs
	}
	if c.Prices.CacheTTLMinutes <= 0 {
		c.Prices.CacheTTLMinutes = defaultCacheTTLMinutes
	}
	if c.Prices.RateLimitPerSecond <= 0 {
		c.Prices.RateLimitPerSecond = defaultRateLimitPerSec
	}
	if c.Prices.RateBurst <= 0 {
		c.Prices.RateBurst = defaultRateBurst
	}

	if c.Balances.File == "" {
		c.Balances.File = defaultBalancesFile
	}
	if len(c.CORS.AllowOrigins) == 0 {
		c.CORS.AllowOrigins = []string{"*"}
	}
}

func (c *Config) validate() error {
	if *c.Formatter.Precision < 0 {
		return fmt.Errorf("formatter.precision must not be negative, got %d", *c.Formatter.Precision)
	}
	if _, err := entity.PriorityTableFromNames(c.Formatter.Priorities); err != nil {
		return fmt.Errorf("invalid formatter.priorities: %w", err)
	}
	if c.Prices.SourceURL != "" && !strings.HasPrefix(c.Prices.SourceURL, "http://") && !strings.HasPrefix(c.Prices.SourceURL, "https://") {
		return fmt.Errorf("prices.sourceURL must be an http(s) URL, got %q", c.Prices.SourceURL)
	}
	return nil
}

// PriorityTable returns the configured chain ranking, or the built-in one
// when no priorities are configured.
func (c *Config) PriorityTable() entity.PriorityTable {
	if len(c.Formatter.Priorities) == 0 {
		return entity.DefaultPriorityTable()
	}
	table, err := entity.PriorityTableFromNames(c.Formatter.Priorities)
	if err != nil {
		// validate() has already rejected bad names
		return entity.DefaultPriorityTable()
	}
	return table
}

// FormatPrecision returns the configured amount precision.
func (c *Config) FormatPrecision() int32 {
	if c.Formatter.Precision == nil {
		return entity.DefaultPrecision
	}
	return *c.Formatter.Precision
}
