package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"svmm/internal/domain"
	"svmm/internal/logging"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultRegistryURL is the SMAPI mod metadata endpoint.
	DefaultRegistryURL = "https://smapi.io/api/v3.0/mods"
	// DefaultUserAgent identifies requests to the registry.
	DefaultUserAgent = "svmm/0.1 (+https://github.com/svmm/svmm)"
	// DefaultRequestTimeout bounds a single registry request.
	DefaultRequestTimeout = 30 * time.Second

	fileName = "config.yaml"
)

// Config holds global application settings
type Config struct {
	GameDir        string        `yaml:"game_dir,omitempty" json:"game_dir,omitempty"`
	DownloadsDir   string        `yaml:"downloads_dir" json:"downloads_dir"`
	RegistryURL    string        `yaml:"registry_url" json:"registry_url"`
	UserAgent      string        `yaml:"user_agent" json:"user_agent"`
	RequestTimeout time.Duration `yaml:"request_timeout" json:"request_timeout"`
	LogLevel       string        `yaml:"log_level" json:"log_level"`
	LogFile        string        `yaml:"log_file,omitempty" json:"log_file,omitempty"`
	NexusAPIKey    string        `yaml:"nexus_api_key,omitempty" json:"nexus_api_key,omitempty"`
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{
		DownloadsDir:   "~/Downloads",
		RegistryURL:    DefaultRegistryURL,
		UserAgent:      DefaultUserAgent,
		RequestTimeout: DefaultRequestTimeout,
		LogLevel:       "warn",
	}
}

// Load reads configuration from the given directory
func Load(configDir string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(Path(configDir))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values and expands home-relative paths in place.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request_timeout must be positive, got %s", domain.ErrInvalidConfig, c.RequestTimeout)
	}
	if c.RegistryURL == "" {
		return fmt.Errorf("%w: registry_url is empty", domain.ErrInvalidConfig)
	}

	for _, p := range []*string{&c.GameDir, &c.DownloadsDir, &c.LogFile} {
		expanded, err := ExpandPath(*p)
		if err != nil {
			return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
		}
		*p = expanded
	}
	return nil
}

// Save writes configuration to the given directory
func (c *Config) Save(configDir string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	if err := os.WriteFile(Path(configDir), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Path returns the config file location inside configDir.
func Path(configDir string) string {
	return filepath.Join(configDir, fileName)
}

// Exists reports whether configDir holds a config file.
func Exists(configDir string) bool {
	_, err := os.Stat(Path(configDir))
	return err == nil
}
