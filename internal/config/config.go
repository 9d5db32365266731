package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"gh-repo-cache/internal/models"
)

// Config represents the main configuration structure
type Config struct {
	Server ServerConfig                        `yaml:"server"`
	GitHub GitHubConfig                        `yaml:"github"`
	L1     L1Config                            `yaml:"l1"`
	L2     L2Config                            `yaml:"l2"`
	TTL    TTLConfig                           `yaml:"ttl"`
	Rules  map[models.Endpoint]models.TTLClass `yaml:"rules"`
}

// ServerConfig configures the request socket and the metrics listener.
type ServerConfig struct {
	SocketPath           string `yaml:"socket_path" validate:"required"`
	MetricsPort          int    `yaml:"metrics_port" validate:"gte=0,lte=65535"`
	SweepIntervalSeconds int    `yaml:"sweep_interval_seconds" validate:"gte=0"`
}

// GitHubConfig carries API credentials and the acting user.
type GitHubConfig struct {
	// Token falls back to the GITHUB_TOKEN environment variable when unset.
	Token    string `yaml:"token"`
	Identity string `yaml:"identity" validate:"required"`
}

// L1Config configures the in-memory tier.
type L1Config struct {
	Enabled           bool `yaml:"enabled"`
	Size              int  `yaml:"size" validate:"gte=0"` // MB
	LifeWindowSeconds int  `yaml:"life_window_seconds" validate:"gte=0"`
}

// L2Config configures the durable Redis tier.
type L2Config struct {
	Enabled        bool   `yaml:"enabled"`
	URL            string `yaml:"url"`
	ReadTimeoutMs  int    `yaml:"read_timeout" validate:"gte=0"`
	WriteTimeoutMs int    `yaml:"write_timeout" validate:"gte=0"`
	ScanCount      int64  `yaml:"scan_count" validate:"gte=0"`
}

// TTLConfig carries the freshness windows. Zero values fall back to the
// policy's built-in defaults.
type TTLConfig struct {
	ShortSeconds     int `yaml:"short_seconds" validate:"gte=0"`
	LongSeconds      int `yaml:"long_seconds" validate:"gte=0"`
	PermanentSeconds int `yaml:"permanent_seconds" validate:"gte=0"`
	NegativeSeconds  int `yaml:"negative_seconds" validate:"gte=0"`
	HardMultiplier   int `yaml:"hard_multiplier" validate:"gte=0"`
}

// LoadConfig loads configuration from file path
func LoadConfig(configPath string, logger *zap.Logger) (*Config, error) {
	logger.Info("Loading configuration", zap.String("path", configPath))

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var config Config
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to decode YAML config: %w", err)
	}

	config.applyDefaults()

	validate := validator.New()
	if err := validate.Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	for endpoint := range config.Rules {
		if !endpoint.IsKnown() {
			return nil, fmt.Errorf("invalid configuration: unknown endpoint %q in rules", endpoint)
		}
	}

	return &config, nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Server.SocketPath == "" {
		c.Server.SocketPath = "/tmp/gh-repo-cache.sock"
	}
	if c.Server.MetricsPort == 0 {
		c.Server.MetricsPort = 9090
	}
	if c.Server.SweepIntervalSeconds == 0 {
		c.Server.SweepIntervalSeconds = 300
	}
	if c.GitHub.Token == "" {
		c.GitHub.Token = os.Getenv("GITHUB_TOKEN")
	}
	if c.L1.Size == 0 {
		c.L1.Size = 100
	}
	if c.L1.LifeWindowSeconds == 0 {
		c.L1.LifeWindowSeconds = 86400
	}
	if c.L2.URL == "" {
		c.L2.URL = "redis://localhost:6379"
	}
	if c.L2.ReadTimeoutMs == 0 {
		c.L2.ReadTimeoutMs = 500
	}
	if c.L2.WriteTimeoutMs == 0 {
		c.L2.WriteTimeoutMs = 1000
	}
	if c.L2.ScanCount == 0 {
		c.L2.ScanCount = 200
	}
}

// GetSweepInterval returns the sweep interval as time.Duration
func (c *Config) GetSweepInterval() time.Duration {
	return time.Duration(c.Server.SweepIntervalSeconds) * time.Second
}

// GetL1LifeWindow returns the in-memory eviction horizon as time.Duration
func (c *Config) GetL1LifeWindow() time.Duration {
	return time.Duration(c.L1.LifeWindowSeconds) * time.Second
}

// GetL2ReadTimeout returns the Redis read timeout as time.Duration
func (c *Config) GetL2ReadTimeout() time.Duration {
	return time.Duration(c.L2.ReadTimeoutMs) * time.Millisecond
}

// GetL2WriteTimeout returns the Redis write timeout as time.Duration
func (c *Config) GetL2WriteTimeout() time.Duration {
	return time.Duration(c.L2.WriteTimeoutMs) * time.Millisecond
}

// ClassTTLs returns the per-class freshness windows. Entries absent or zero
// are omitted so the policy falls back to its defaults.
func (c *Config) ClassTTLs() map[models.TTLClass]time.Duration {
	ttls := make(map[models.TTLClass]time.Duration)
	if c.TTL.ShortSeconds > 0 {
		ttls[models.TTLClassShort] = time.Duration(c.TTL.ShortSeconds) * time.Second
	}
	if c.TTL.LongSeconds > 0 {
		ttls[models.TTLClassLong] = time.Duration(c.TTL.LongSeconds) * time.Second
	}
	if c.TTL.PermanentSeconds > 0 {
		ttls[models.TTLClassPermanent] = time.Duration(c.TTL.PermanentSeconds) * time.Second
	}
	return ttls
}

// GetNegativeTTL returns the negative-entry window as time.Duration
func (c *Config) GetNegativeTTL() time.Duration {
	return time.Duration(c.TTL.NegativeSeconds) * time.Second
}
