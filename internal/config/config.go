package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
)

const (
	DefaultModel   = "gpt-4o-mini"
	DefaultBaseURL = "https://api.openai.com/v1"
)

// ConfigError reports missing or malformed startup configuration.
// It is fatal: nothing network-facing runs until it is fixed.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "config error: " + e.Reason
}

type Config struct {
	// APIKey comes from the OPENAI_API_KEY environment variable, never
	// from the config file.
	APIKey string `json:"-"`

	Model   string `json:"model"`
	BaseURL string `json:"base_url"`

	Server struct {
		Host string `json:"host"`
		Port int    `json:"port"`
	} `json:"server"`
	Redis struct {
		Addr     string `json:"addr"`
		Password string `json:"password"`
		DB       int    `json:"db"`
	} `json:"redis"`
	Database struct {
		Driver string `json:"driver"` // "sqlite" (default) or "postgres"
		DSN    string `json:"dsn"`
	} `json:"database"`
}

var (
	once   sync.Once
	cfg    *Config
	cfgErr error
)

// Load reads the optional config.json and overlays the API key from the
// environment (singleton). A missing file falls back to defaults; a
// missing or malformed API key is a hard ConfigError.
func Load(path string) (*Config, error) {
	once.Do(func() {
		c := &Config{}
		c.Model = DefaultModel
		c.BaseURL = DefaultBaseURL
		c.Server.Host = "localhost"
		c.Server.Port = 8080
		c.Database.Driver = "sqlite"
		c.Database.DSN = "brochure.db"

		if raw, err := os.ReadFile(path); err == nil {
			if err := json.Unmarshal(raw, c); err != nil {
				cfgErr = &ConfigError{Reason: fmt.Sprintf("invalid config format: %v", err)}
				return
			}
		} else if !os.IsNotExist(err) {
			cfgErr = &ConfigError{Reason: fmt.Sprintf("failed to read config file: %v", err)}
			return
		}

		key := os.Getenv("OPENAI_API_KEY")
		if key == "" {
			cfgErr = &ConfigError{Reason: "OPENAI_API_KEY environment variable not set"}
			return
		}
		if !strings.HasPrefix(key, "sk-") {
			cfgErr = &ConfigError{Reason: "invalid API key, should start with 'sk-'"}
			return
		}
		c.APIKey = key
		cfg = c
	})
	return cfg, cfgErr
}

// Get returns the loaded config (must call Load first)
func Get() *Config {
	return cfg
}

// ResetForTest resets the singleton state (for testing only)
func ResetForTest() {
	once = sync.Once{}
	cfg = nil
	cfgErr = nil
}
