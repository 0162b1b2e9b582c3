// Package config loads and validates webkin configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all configuration knobs loaded via Viper.
type Config struct {
	Crawler CrawlerConfig `mapstructure:"crawler"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Logging LoggingConfig `mapstructure:"logging"`
	Ops     OpsConfig     `mapstructure:"ops"`
}

// CrawlerConfig governs the crawl engine.
type CrawlerConfig struct {
	// Seeds are the initial crawl target hosts; CLI arguments override
	// them.
	Seeds []string `mapstructure:"seeds"`
	// ChannelBuffer sizes the discovery channels.
	ChannelBuffer int    `mapstructure:"channel_buffer"`
	UserAgent     string `mapstructure:"user_agent"`
}

// HTTPConfig configures the HTTP collaborator.
type HTTPConfig struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// LoggingConfig toggles zap development features and file rotation.
type LoggingConfig struct {
	Development bool   `mapstructure:"development"`
	File        string `mapstructure:"file"`
	MaxSizeMB   int    `mapstructure:"max_size_mb"`
	MaxBackups  int    `mapstructure:"max_backups"`
	MaxAgeDays  int    `mapstructure:"max_age_days"`
}

// OpsConfig controls the optional read-only ops HTTP server.
type OpsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// Load builds a Config from a file (optional) and the environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("WEBKIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("crawler.channel_buffer", 32)
	v.SetDefault("crawler.user_agent", "webkin/0.1 (+https://github.com/kstoykov/webkin)")
	v.SetDefault("http.timeout_seconds", 15)
	v.SetDefault("logging.development", false)
	v.SetDefault("logging.max_size_mb", 100)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age_days", 14)
	v.SetDefault("ops.enabled", false)
	v.SetDefault("ops.port", 9090)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Crawler.ChannelBuffer <= 0 {
		return fmt.Errorf("crawler.channel_buffer must be > 0")
	}
	if c.HTTP.TimeoutSeconds <= 0 {
		return fmt.Errorf("http.timeout_seconds must be > 0")
	}
	if c.Ops.Enabled && (c.Ops.Port <= 0 || c.Ops.Port > 65535) {
		return fmt.Errorf("ops.port must be a valid port when ops is enabled")
	}
	return nil
}

// HTTPTimeout converts the timeout knob into a duration.
func (c Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}
