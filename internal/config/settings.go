package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "TABULAR__"

type LogSettings struct {
	Level  string `koanf:"level"`
	JSON   bool   `koanf:"json"`
	SeqURL string `koanf:"seq_url"`
}

// Settings configure the long-running server.
type Settings struct {
	GRPCAddr     string        `koanf:"grpc_addr"`
	MetricsAddr  string        `koanf:"metrics_addr"` // "" disables /metrics
	ShutdownWait time.Duration `koanf:"shutdown_wait"`
	Log          LogSettings   `koanf:"log"`
}

// LoadSettings merges YAML (if present) with env-vars
// (prefix `TABULAR__`, delimiter `__`).
func LoadSettings(path string) (Settings, error) {
	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil &&
			!errors.Is(err, fs.ErrNotExist) {
			return Settings{}, err
		}
	}
	sv := k.String("schema_version")
	if sv != "" && sv != SupportedSchema {
		return Settings{}, fmt.Errorf("settings schema_version %q not supported (want %s)", sv, SupportedSchema)
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return Settings{}, err
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return s, err
	}
	applyDefaults(&s, k)
	return s, nil
}

// envKey maps TABULAR__LOG__SEQ_URL to log.seq_url.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
}

func applyDefaults(s *Settings, k *koanf.Koanf) {
	if s.GRPCAddr == "" {
		s.GRPCAddr = ":7070"
	}
	if !k.Exists("metrics_addr") {
		s.MetricsAddr = ":9100"
	}
	if s.ShutdownWait <= 0 {
		s.ShutdownWait = 5 * time.Second
	}
	if s.Log.Level == "" {
		s.Log.Level = "info"
	}
}
