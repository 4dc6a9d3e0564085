package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultPort         = "8080"
	defaultFetchTimeout = 15 * time.Second
)

// Config holds the configuration for the application.
type Config struct {
	APIURL string `yaml:"api_url"`
	// APIKey is "id:hexsecret"; the secret signs the bearer tokens sent to the backend.
	APIKey string `yaml:"api_key"`
	UserID string `yaml:"user_id"`

	// Server Config
	Port         string        `yaml:"port"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
	CORSOrigins  []string      `yaml:"cors_origins"`
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	cfg := &Config{}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, cfg.validate()
}

// LoadFile reads a YAML config file. Environment variables override values from the file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, cfg.validate()
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("MEALPLAN_API_URL"); v != "" {
		c.APIURL = v
	}
	if v := os.Getenv("MEALPLAN_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("MEALPLAN_USER_ID"); v != "" {
		c.UserID = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("FETCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid FETCH_TIMEOUT %q: %w", v, err)
		}
		c.FetchTimeout = d
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.CORSOrigins = nil
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				c.CORSOrigins = append(c.CORSOrigins, origin)
			}
		}
	}

	// Defaults
	if c.Port == "" {
		c.Port = defaultPort
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = defaultFetchTimeout
	}
	return nil
}

func (c *Config) validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("MEALPLAN_API_URL environment variable not set")
	}
	if c.APIKey == "" {
		return fmt.Errorf("MEALPLAN_API_KEY environment variable not set")
	}
	if c.UserID == "" {
		return fmt.Errorf("MEALPLAN_USER_ID environment variable not set")
	}
	c.APIURL = strings.TrimRight(c.APIURL, "/")
	return nil
}
