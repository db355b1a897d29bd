// Package config loads the .stray.yaml configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in a project root.
const FileName = ".stray.yaml"

type Config struct {
	Include []string  `yaml:"include"`
	Exclude []string  `yaml:"exclude"`
	Workers int       `yaml:"workers"` // 0 means one per CPU
	Indent  string    `yaml:"indent"`  // indentation of members moved into a class
	Log     LogConfig `yaml:"log"`
}

type LogConfig struct {
	Level int    `yaml:"level"` // commonlog verbosity
	File  string `yaml:"file"`  // empty means stderr
}

func Default() *Config {
	return &Config{
		Include: []string{"**/*.java"},
		Exclude: []string{"**/build/**", "**/target/**", "**/.git/**", "**/node_modules/**"},
		Workers: 0,
		Indent:  "    ",
	}
}

// WorkerCount returns the number of files analyzed concurrently.
func (c *Config) WorkerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// Load reads the configuration at path over the defaults. A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("parsing %s: workers must not be negative, got %d", path, cfg.Workers)
	}
	return cfg, nil
}

// LoadFromDir looks for FileName in dir and its parents and loads the first
// one found.
func LoadFromDir(dir string) (*Config, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		dir = parent
	}
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
