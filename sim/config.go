package sim

import (
	"encoding/json"
	"os"

	"github.com/denisbrodbeck/machineid"
)

// Config controls one simulated instrument process.
type Config struct {
	// Listen is a TCP address to serve sessions on. Empty means stdio.
	Listen string `json:"listen"`

	// NoPrompt and NoEcho preset the session toggles, for hosts that
	// script the instrument rather than typing at it.
	NoPrompt bool `json:"no_prompt"`
	NoEcho   bool `json:"no_echo"`

	// Debug enables "?:" debug lines on the wire.
	Debug bool `json:"debug"`

	// Machine overrides the reported machine identity.
	Machine string `json:"machine"`
}

// LoadConfig parses a JSON configuration and applies defaults.
func LoadConfig(jsonData []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(jsonData, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// LoadConfigFile reads and parses a JSON configuration file.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadConfig(data)
}

// DefaultConfig returns the interactive stdio defaults.
func DefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults fills in missing configuration values.
func applyDefaults(cfg *Config) {
	if cfg.Machine == "" {
		cfg.Machine = machineName()
	}
}

// machineName identifies the host the simulator runs on.
func machineName() string {
	id, err := machineid.ID()
	if err != nil {
		return "unknown"
	}
	return id
}
