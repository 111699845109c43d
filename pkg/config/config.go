// Package config loads worker and CLI defaults from an optional YAML
// file, following the same read-file/yaml.Unmarshal pattern the
// cobra commands use for resource manifests. Every field is optional;
// zero values fall through to the hardcoded defaults in pkg/worker and
// cmd/roach.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the subset of worker/CLI behavior an operator might want
// to pin across invocations instead of re-passing flags every time.
type Config struct {
	QueueRoot string `yaml:"queueRoot,omitempty"`

	Poll struct {
		Interval string `yaml:"interval,omitempty"`
	} `yaml:"poll,omitempty"`

	Log struct {
		Level string `yaml:"level,omitempty"`
		JSON  bool   `yaml:"json,omitempty"`
	} `yaml:"log,omitempty"`

	Metrics struct {
		Addr string `yaml:"addr,omitempty"`
	} `yaml:"metrics,omitempty"`
}

// PollInterval parses Poll.Interval, returning ok=false when the field is
// unset or unparseable so the caller can fall back to its own default.
func (c *Config) PollInterval() (d time.Duration, ok bool) {
	if c.Poll.Interval == "" {
		return 0, false
	}
	d, err := time.ParseDuration(c.Poll.Interval)
	if err != nil {
		return 0, false
	}
	return d, true
}

// Load reads and parses a YAML config file. A missing file is not an
// error — it returns a zero-value Config, the same as an empty file —
// since config files are opt-in, not required.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
