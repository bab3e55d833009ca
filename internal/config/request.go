package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"tabular/internal/spec"
)

const SupportedSchema = "v1"

// LoadRequestSpec parses a request YAML, validates schema_version, and
// returns the parsed spec and an absolute path to its data file (if set).
func LoadRequestSpec(path string) (spec.File, string, error) {
	var cfg spec.File
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, "", err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, "", fmt.Errorf("request %s: %w", path, err)
	}
	if cfg.SchemaVersion == "" {
		cfg.SchemaVersion = SupportedSchema
	}
	if cfg.SchemaVersion != SupportedSchema {
		return cfg, "", fmt.Errorf("request schema_version %q not supported (want %q)", cfg.SchemaVersion, SupportedSchema)
	}
	if cfg.Panel.Transform == "" {
		return cfg, "", fmt.Errorf("request %s: panel.transform is required", path)
	}
	dataPath := cfg.Data
	if dataPath != "" && !filepath.IsAbs(dataPath) {
		dataPath = filepath.Join(filepath.Dir(path), dataPath)
	}
	return cfg, dataPath, nil
}
