package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config represents the persisted application configuration
type Config struct {
	Providers []ProviderEndpoint `json:"providers"`
	Logger    bool               `json:"logger"`
}

// ProviderEndpoint is a wallet provider the client can connect to
type ProviderEndpoint struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Active bool   `json:"active"`
}

// Env holds settings read from the environment.
type Env struct {
	ProviderURL  string        `envconfig:"WALLET_PROVIDER_URL"`
	ConfigPath   string        `envconfig:"WALLET_CONFIG"`
	NoticeTTL    time.Duration `envconfig:"WALLET_NOTICE_TTL" default:"5s"`
	PollInterval time.Duration `envconfig:"WALLET_POLL_INTERVAL" default:"2s"`
	Logger       bool          `envconfig:"WALLET_LOGGER"`
}

// FromEnv reads Env from the process environment.
func FromEnv() (Env, error) {
	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return Env{}, fmt.Errorf("failed to process environment: %w", err)
	}
	return env, nil
}

// DefaultPath returns the config file location in the user's home.
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".charm-wallet-connect.json")
}

// Load reads the config from the specified path. A missing or unreadable
// file yields an empty config.
func Load(path string) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}

	return cfg
}

// Save writes the config to the specified path
func Save(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// DefaultConfig returns a new configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		Providers: []ProviderEndpoint{
			{
				Name:   "Frame",
				URL:    "ws://127.0.0.1:1248",
				Active: true,
			},
			{
				Name: "Local dev node",
				URL:  "http://127.0.0.1:8545",
			},
		},
		Logger: false,
	}
}

// LoadOrCreate loads config from path, or creates a default one if not found
func LoadOrCreate(path string) Config {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()
		_ = Save(path, cfg)
		return cfg
	}
	return Load(path)
}

// ActiveURL returns the URL of the active provider, or "".
func (c Config) ActiveURL() string {
	for _, p := range c.Providers {
		if p.Active {
			return p.URL
		}
	}
	return ""
}

// Activate marks the provider at idx as the only active one.
func (c *Config) Activate(idx int) bool {
	if idx < 0 || idx >= len(c.Providers) {
		return false
	}
	for i := range c.Providers {
		c.Providers[i].Active = i == idx
	}
	return true
}

// Remove deletes the provider at idx.
func (c *Config) Remove(idx int) bool {
	if idx < 0 || idx >= len(c.Providers) {
		return false
	}
	c.Providers = append(c.Providers[:idx], c.Providers[idx+1:]...)
	return true
}
