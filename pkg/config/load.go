package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads configuration from a YAML file into an O.
// If path is provided, it must exist (no fallback beyond the .yaml/.yml
// extension swap). If path is empty, defaultName is searched for in:
//  1. Current working directory
//  2. Executable directory
//
// If no config file is found, Load returns an empty O and no error.
func Load(path, defaultName string) (O, error) {
	if path != "" {
		return loadFromFile(ResolveYAMLPath(path))
	}

	if cwd, err := os.Getwd(); err == nil {
		candidate := ResolveYAMLPath(filepath.Join(cwd, defaultName))
		if _, err := os.Stat(candidate); err == nil {
			return loadFromFile(candidate)
		}
	}

	if exe, err := os.Executable(); err == nil {
		candidate := ResolveYAMLPath(filepath.Join(filepath.Dir(exe), defaultName))
		if _, err := os.Stat(candidate); err == nil {
			return loadFromFile(candidate)
		}
	}

	return O{}, nil
}

func loadFromFile(path string) (O, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg O
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg == nil {
		cfg = O{}
	}
	return cfg, nil
}

// ResolveYAMLPath checks if the given config path exists. If it doesn't and
// ends with ".yaml", it tries the ".yml" variant (and vice versa). This allows
// users to use either extension for their config files.
func ResolveYAMLPath(path string) string {
	if _, err := os.Stat(path); err == nil {
		return path
	}

	if base, ok := strings.CutSuffix(path, ".yaml"); ok {
		alt := base + ".yml"
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	} else if base, ok := strings.CutSuffix(path, ".yml"); ok {
		alt := base + ".yaml"
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}

	return path
}
