package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no --config flag is given.
const DefaultPath = "balance.yaml"

// Config is the contents of balance.yaml.
type Config struct {
	// PuzzlesDir, when set, replaces the built-in catalog with puzzles read from disk.
	PuzzlesDir   string      `yaml:"puzzles_dir" json:"puzzles_dir"`
	LogLevel     string      `yaml:"log_level" json:"log_level"`
	MaxInputSize int         `yaml:"max_input_size" json:"max_input_size"`
	HTTP         HTTPConfig  `yaml:"http" json:"http"`
	MCP          MCPConfig   `yaml:"mcp" json:"mcp"`
	Redis        RedisConfig `yaml:"redis" json:"redis"`
}

// HTTPConfig configures the serve command.
type HTTPConfig struct {
	Port int `yaml:"port" json:"port"`
}

// MCPConfig configures the mcp command. Port 0 means stdio.
type MCPConfig struct {
	Port int `yaml:"port" json:"port"`
}

// RedisConfig enables the Redis session store when Addr is set.
type RedisConfig struct {
	Addr     string   `yaml:"addr" json:"addr"`
	Password string   `yaml:"password" json:"password"`
	DB       int      `yaml:"db" json:"db"`
	TTL      Duration `yaml:"ttl" json:"ttl"`
	Prefix   string   `yaml:"prefix" json:"prefix"`
}

// Enabled reports whether a Redis address is configured.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// Duration accepts "30m" style strings in YAML and JSON.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.parse(node.Value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration must be a string like \"30m\": %w", err)
	}
	return d.parse(s)
}

func (d *Duration) parse(s string) error {
	if s == "" {
		*d = 0
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		LogLevel: "info",
		HTTP:     HTTPConfig{Port: 8080},
		Redis: RedisConfig{
			TTL:    Duration(24 * time.Hour),
			Prefix: "balance:session:",
		},
	}
}

// Load reads a configuration file (YAML or JSON) on top of Default.
// A missing file yields the defaults; an empty path means DefaultPath.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if cfg.PuzzlesDir != "" && !filepath.IsAbs(cfg.PuzzlesDir) {
		cfg.PuzzlesDir = filepath.Join(filepath.Dir(path), cfg.PuzzlesDir)
	}
	return cfg, nil
}
