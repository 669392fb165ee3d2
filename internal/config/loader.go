package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Secrets == nil {
		cfg.Secrets = make(map[string]Secret)
	}
	if cfg.Tasks == nil {
		cfg.Tasks = make(map[string]Task)
	}
	cfg.TaskOrder = tableOrder(md, "tasks")
	cfg.SecretOrder = tableOrder(md, "secrets")
	return cfg, nil
}

// Discover walks upward from startDir looking for the config file. A missing
// file is not an error: the tool works without one, just with no tasks or
// secrets. Returns the loaded config and the path it came from ("" if none).
func Discover(startDir string) (*Config, string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, "", fmt.Errorf("resolve %q: %w", startDir, err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			cfg, err := Load(candidate)
			if err != nil {
				return nil, "", err
			}
			return cfg, candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return &Config{
		Secrets: make(map[string]Secret),
		Tasks:   make(map[string]Task),
	}, "", nil
}

// tableOrder extracts sub-table names under parent in file declaration order.
func tableOrder(md toml.MetaData, parent string) []string {
	var order []string
	seen := make(map[string]bool)
	for _, key := range md.Keys() {
		if len(key) < 2 || key[0] != parent {
			continue
		}
		name := key[1]
		if !seen[name] {
			seen[name] = true
			order = append(order, name)
		}
	}
	return order
}
