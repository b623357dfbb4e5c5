// Package config loads the YAML configuration shared by the signet
// binaries. A config file is optional: every field has a default, a partial
// file overrides only what it names, and a couple of environment variables
// override the file for deployment-specific paths.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/signetlab/signet/pkg/dataset"
	"github.com/signetlab/signet/pkg/layout"
)

// Environment variables that override the config file.
const (
	EnvBaseURL  = "SIGNET_DATASET_BASE_URL"
	EnvCacheDir = "SIGNET_CACHE_DIR"
)

// validate is a singleton validator instance
var validate = validator.New()

// Config is the root configuration document.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Dataset DatasetConfig `yaml:"dataset"`
	Render  RenderConfig  `yaml:"render"`
}

// LoggingConfig controls log output for the binaries.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// DatasetConfig configures the remote dataset client and its on-disk cache.
type DatasetConfig struct {
	BaseURL     string `yaml:"base_url" validate:"omitempty,url"`
	CacheDir    string `yaml:"cache_dir"`
	Timeout     string `yaml:"timeout"`
	Refresh     bool   `yaml:"refresh"`
	S3Region    string `yaml:"s3_region"`
	S3AccessKey string `yaml:"s3_access_key"`
	S3SecretKey string `yaml:"s3_secret_key"`
}

// RenderConfig carries default rendering choices. Command-line flags win
// over these, and these win over the built-in defaults.
type RenderConfig struct {
	// Prog names the layout program. Unknown names are rejected at render
	// time, not here, so new programs need no config changes.
	Prog        string  `yaml:"prog"`
	NetworkType string  `yaml:"network_type" validate:"omitempty,oneof=default sign_consistent"`
	ColorBy     string  `yaml:"color_by"`
	Width       float64 `yaml:"width" validate:"min=0"`
	Height      float64 `yaml:"height" validate:"min=0"`
}

// Default returns the built-in configuration.
func Default() Config {
	ds := dataset.DefaultConfig()
	lc := layout.DefaultConfig()
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Dataset: DatasetConfig{
			BaseURL:  ds.BaseURL,
			CacheDir: ds.CacheDir,
			Timeout:  ds.Timeout.String(),
		},
		Render: RenderConfig{
			Prog:        "dot",
			NetworkType: "default",
			Width:       lc.Width,
			Height:      lc.Height,
		},
	}
}

// Parse decodes a YAML document over the defaults, applies environment
// overrides, and validates the result. An empty document yields the
// defaults.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the config file at path. See Parse.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// FromEnv returns the defaults with environment overrides applied. The
// binaries use it when no config file is given.
func FromEnv() (Config, error) {
	cfg := Default()
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Dataset.BaseURL = getEnvOrDefault(EnvBaseURL, cfg.Dataset.BaseURL)
	cfg.Dataset.CacheDir = getEnvOrDefault(EnvCacheDir, cfg.Dataset.CacheDir)
}

// Validate checks field constraints and the timeout syntax.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			e := verrs[0]
			switch e.Tag() {
			case "required":
				return fmt.Errorf("%s: field is required", e.Field())
			case "url":
				return fmt.Errorf("%s: must be a valid URL", e.Field())
			case "min":
				return fmt.Errorf("%s: must be at least %s", e.Field(), e.Param())
			case "oneof":
				return fmt.Errorf("%s: must be one of %s", e.Field(), e.Param())
			default:
				return fmt.Errorf("%s: validation failed (%s)", e.Field(), e.Tag())
			}
		}
		return err
	}
	if c.Dataset.Timeout != "" {
		if _, err := time.ParseDuration(c.Dataset.Timeout); err != nil {
			return fmt.Errorf("dataset timeout %q: must be a duration such as 30s", c.Dataset.Timeout)
		}
	}
	return nil
}

// ClientConfig converts the dataset block into a client configuration,
// filling gaps from the dataset defaults.
func (d DatasetConfig) ClientConfig() dataset.Config {
	cfg := dataset.DefaultConfig()
	if d.BaseURL != "" {
		cfg.BaseURL = d.BaseURL
	}
	if d.CacheDir != "" {
		cfg.CacheDir = d.CacheDir
	}
	cfg.Timeout = parseDuration(d.Timeout, cfg.Timeout)
	cfg.Refresh = d.Refresh
	cfg.S3Region = d.S3Region
	cfg.S3AccessKey = d.S3AccessKey
	cfg.S3SecretKey = d.S3SecretKey
	return cfg
}

// LayoutConfig converts the render block into layout geometry, filling gaps
// from the layout defaults.
func (r RenderConfig) LayoutConfig() layout.Config {
	cfg := layout.DefaultConfig()
	if r.Width > 0 {
		cfg.Width = r.Width
	}
	if r.Height > 0 {
		cfg.Height = r.Height
	}
	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseDuration parses a duration string, returning the default when the
// string is empty or malformed.
func parseDuration(s string, defaultValue time.Duration) time.Duration {
	if s == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return defaultValue
	}
	return d
}
