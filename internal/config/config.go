// Package config loads qrlogo settings from an optional YAML file, a .env
// file and QRLOGO_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration values.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	QR      QRConfig      `mapstructure:"qr"`
	Verify  VerifyConfig  `mapstructure:"verify"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Port           int    `mapstructure:"port"`
	Mode           string `mapstructure:"mode"`
	MaxUploadBytes int64  `mapstructure:"max_upload_bytes"`
}

// QRConfig holds the defaults the form is pre-filled with.
type QRConfig struct {
	Foreground      string `mapstructure:"fg"`
	Background      string `mapstructure:"bg"`
	Version         int    `mapstructure:"version"`
	ErrorCorrection string `mapstructure:"error_correction"`
	BoxSize         int    `mapstructure:"box_size"`
	Border          int    `mapstructure:"border"`
	LogoSize        int    `mapstructure:"logo_size"`
	Shape           string `mapstructure:"shape"`
	Fit             bool   `mapstructure:"fit"`
}

// VerifyConfig toggles the read-back check on generated codes.
type VerifyConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LoggingConfig selects log level and format (text or json).
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.max_upload_bytes", 5<<20)

	v.SetDefault("qr.fg", "#000000")
	v.SetDefault("qr.bg", "#ffffff")
	v.SetDefault("qr.version", 1)
	v.SetDefault("qr.error_correction", "L")
	v.SetDefault("qr.box_size", 10)
	v.SetDefault("qr.border", 4)
	v.SetDefault("qr.logo_size", 50)
	v.SetDefault("qr.shape", "square")
	v.SetDefault("qr.fit", true)

	v.SetDefault("verify.enabled", true)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Load reads configuration. An empty path skips the YAML file; a missing .env
// file is ignored.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()
	return load(viper.New(), path)
}

func load(v *viper.Viper, path string) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix("QRLOGO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// PORT is what most hosting platforms set.
	if err := v.BindEnv("server.port", "QRLOGO_SERVER_PORT", "PORT"); err != nil {
		return nil, fmt.Errorf("binding PORT: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects defaults that could never produce a code.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode %q must be debug, release or test", c.Server.Mode)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("server.max_upload_bytes must be positive")
	}
	if c.QR.Version < 1 || c.QR.Version > 40 {
		return fmt.Errorf("qr.version %d out of range 1-40", c.QR.Version)
	}
	if c.QR.BoxSize < 1 {
		return fmt.Errorf("qr.box_size must be positive")
	}
	if c.QR.Border < 0 {
		return fmt.Errorf("qr.border must not be negative")
	}
	if c.QR.LogoSize < 1 {
		return fmt.Errorf("qr.logo_size must be positive")
	}
	switch strings.ToUpper(c.QR.ErrorCorrection) {
	case "L", "M", "Q", "H":
	default:
		return fmt.Errorf("qr.error_correction %q must be one of L, M, Q, H", c.QR.ErrorCorrection)
	}
	return nil
}

// Addr returns the listen address for gin.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
