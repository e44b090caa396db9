package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is read when --config is not given. Its absence is not
// an error.
const DefaultConfigPath = "turing.yaml"

// RedisConfig configures the halt event publisher.
type RedisConfig struct {
	Addr     string `yaml:"addr" json:"addr"`
	Password string `yaml:"password" json:"password"`
	DB       int    `yaml:"db" json:"db"`
	Prefix   string `yaml:"prefix" json:"prefix"`
	// Steps also publishes every step event.
	Steps bool `yaml:"steps" json:"steps"`
}

// Config holds defaults that command-line flags override.
type Config struct {
	MaxSteps  int         `yaml:"max_steps" json:"max_steps"`
	LogLevel  string      `yaml:"log_level" json:"log_level"`
	LogFormat string      `yaml:"log_format" json:"log_format"`
	LogFile   string      `yaml:"log_file" json:"log_file"`
	Addr      string      `yaml:"addr" json:"addr"`
	Redis     RedisConfig `yaml:"redis" json:"redis"`
}

// LoadConfig reads a configuration file (YAML or JSON).
// A missing file yields an empty config unless required is set.
func LoadConfig(path string, required bool) (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	if cfg.MaxSteps < 0 {
		return nil, fmt.Errorf("max_steps must not be negative, got %d", cfg.MaxSteps)
	}
	return cfg, nil
}
