// Package config defines process configuration and its defaults.
//
// Conventions:
// - New returns a Config populated with defaults; Load layers sources on top.
// - Errors returned from Load wrap this package's sentinel kinds.
package config

import (
	"context"
	"time"
)

// Config contains process configuration for both the client tooling and the
// development backend.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFile, when set, mirrors logs to a size-rotated file.
	LogFile string `koanf:"log_file"`

	// Addr configures the backend listen address, e.g. ":8888".
	Addr string `koanf:"addr"`

	// BaseURL is where the client sends /asset requests.
	BaseURL string `koanf:"base_url"`

	// Token is sent as a bearer credential; the backend checks it when non-empty.
	Token string `koanf:"token"`

	// TimeoutMS bounds a single client request.
	TimeoutMS int `koanf:"timeout_ms"`

	// DarkMode seeds the shared dark-mode flag.
	DarkMode bool `koanf:"dark_mode"`

	// Distributions are the backend sets keyed asset, asset2, asset3.
	Distributions map[string]Asset `koanf:"distributions"`

	// Details are the backend detail sets keyed by category label.
	Details map[string]Asset `koanf:"details"`
}

// Asset is one configured distribution set.
type Asset struct {
	Items []AssetItem `koanf:"items"`
}

// AssetItem is a named holding.
type AssetItem struct {
	Name  string  `koanf:"name"`
	Value float64 `koanf:"value"`
}

// Timeout returns TimeoutMS as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// New creates a Config holding defaults. Context is accepted first to keep
// the project-wide signature convention.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:  "info",
		Addr:      ":8888",
		BaseURL:   "http://localhost:8888",
		TimeoutMS: 10_000,
		Distributions: map[string]Asset{
			"asset": {Items: []AssetItem{
				{Name: "活钱管理", Value: 52000},
				{Name: "稳健理财", Value: 180000},
				{Name: "长期投资", Value: 96000},
				{Name: "保险保障", Value: 24000},
			}},
		},
		Details: map[string]Asset{},
	}
}
