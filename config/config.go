// Package config loads and validates simulation run configuration from
// YAML or JSON files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/marketsim/market"
	"github.com/rustyeddy/marketsim/source"
)

// Config is one complete simulation run description.
type Config struct {
	Run        Run        `yaml:"run" json:"run"`
	Assets     []string   `yaml:"assets,omitempty" json:"assets,omitempty"`
	Account    Account    `yaml:"account" json:"account"`
	DataSource DataSource `yaml:"data_source" json:"data_source"`
	Journal    Journal    `yaml:"journal" json:"journal"`
}

// Run controls the stepping loop.
type Run struct {
	ID    string `yaml:"id,omitempty" json:"id,omitempty"`
	Steps int    `yaml:"steps" json:"steps"`

	// LogEvery prints an equity line every N steps; 0 disables it.
	LogEvery int `yaml:"log_every,omitempty" json:"log_every,omitempty"`
}

// Account sets up the starting book.
type Account struct {
	InitCash          float64 `yaml:"init_cash" json:"init_cash"`
	RequiredMargin    float64 `yaml:"required_margin,omitempty" json:"required_margin,omitempty"`
	MaintenanceMargin float64 `yaml:"maintenance_margin,omitempty" json:"maintenance_margin,omitempty"`
}

// DataSource names a source type and carries its free-form parameter
// block, passed through to the source factory untouched.
type DataSource struct {
	Type   string         `yaml:"type" json:"type"`
	Params map[string]any `yaml:"params" json:"params"`
}

// SourceConfig adapts the parameter block for source construction.
func (d DataSource) SourceConfig() source.Config {
	return source.Config(d.Params)
}

// Journal selects where per-step records go.
type Journal struct {
	Backend string `yaml:"backend" json:"backend"` // none, sqlite or csv
	Path    string `yaml:"path,omitempty" json:"path,omitempty"`
}

// Default returns a runnable single-asset configuration.
func Default() *Config {
	return &Config{
		Run: Run{Steps: 1000, LogEvery: 100},
		Account: Account{
			InitCash:       1_000_000,
			RequiredMargin: 1.0,
		},
		DataSource: DataSource{
			Type: "sine",
			Params: map[string]any{
				"freq":  []float64{0.02},
				"mu":    []float64{100.0},
				"amp":   []float64{10.0},
				"phase": []float64{0.0},
				"dX":    0.01,
			},
		},
		Journal: Journal{Backend: "none"},
	}
}

// LoadFromFile reads a config from path, decoding JSON for .json files
// and YAML otherwise, then validates it.
func LoadFromFile(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := &Config{}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(raw, cfg)
	} else {
		err = yaml.Unmarshal(raw, cfg)
	}
	if err != nil {
		return nil, market.Configf("parse config %s: %v", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveToFile writes the config to path in the format its extension
// selects, creating parent directories as needed.
func (c *Config) SaveToFile(path string) error {
	var (
		raw []byte
		err error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		raw, err = json.MarshalIndent(c, "", "  ")
	} else {
		raw, err = yaml.Marshal(c)
	}
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	return os.WriteFile(path, raw, 0o644)
}

// Validate checks structural constraints before anything is built; the
// source factory validates the parameter block itself.
func (c *Config) Validate() error {
	if c.Run.Steps <= 0 {
		return market.Configf("run.steps must be positive, got %d", c.Run.Steps)
	}
	if c.Run.LogEvery < 0 {
		return market.Configf("run.log_every must not be negative, got %d", c.Run.LogEvery)
	}
	if c.Account.InitCash <= 0 {
		return market.Configf("account.init_cash must be positive, got %v", c.Account.InitCash)
	}
	if r := c.Account.RequiredMargin; r != 0 && (r <= 0 || r > 1) {
		return market.Configf("account.required_margin must be in (0, 1], got %v", r)
	}
	if m := c.Account.MaintenanceMargin; m < 0 || m >= 1 {
		return market.Configf("account.maintenance_margin must be in [0, 1), got %v", m)
	}
	if c.DataSource.Type == "" {
		return market.Configf("data_source.type is required")
	}
	switch c.Journal.Backend {
	case "", "none":
	case "sqlite", "csv":
		if c.Journal.Path == "" {
			return market.Configf("journal.path is required for backend %q", c.Journal.Backend)
		}
	default:
		return market.Configf("unknown journal backend %q", c.Journal.Backend)
	}
	return nil
}

// AssetSet builds the configured asset set, or nil when the source's
// own asset naming should be used.
func (c *Config) AssetSet() (*market.AssetSet, error) {
	if len(c.Assets) == 0 {
		return nil, nil
	}
	return market.NewAssetSet(c.Assets...)
}
