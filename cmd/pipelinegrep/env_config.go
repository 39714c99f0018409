package main

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/alnah/go-pipelinegrep/internal/config"
)

const envPrefix = "PIPELINEGREP_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring config files.
type envConfig struct {
	ConfigPath string // PIPELINEGREP_CONFIG: config file name or path
	Format     string // PIPELINEGREP_FORMAT: default format, same syntax as -f
	Color      string // PIPELINEGREP_COLOR: auto, always, never
	IgnoreCase *bool  // PIPELINEGREP_IGNORE_CASE: nil when unset or not a boolean
}

// knownEnvVars lists valid PIPELINEGREP_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"PIPELINEGREP_CONFIG":      true,
	"PIPELINEGREP_FORMAT":      true,
	"PIPELINEGREP_COLOR":       true,
	"PIPELINEGREP_IGNORE_CASE": true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("PIPELINEGREP_CONFIG"),
		Format:     getenv("PIPELINEGREP_FORMAT"),
		Color:      getenv("PIPELINEGREP_COLOR"),
	}

	if v := getenv("PIPELINEGREP_IGNORE_CASE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.IgnoreCase = &b
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized PIPELINEGREP_* variables.
// Helps catch typos like PIPELINEGREP_FROMAT.
func warnUnknownEnvVars(logger *slog.Logger, environ []string) {
	for _, env := range environ {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			logger.Warn("unknown environment variable (typo?)", "name", name)
		}
	}
}

// applyEnvConfig overlays environment values on the loaded config.
// This gives: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Format != "" {
		cfg.Defaults.Format = env.Format
	}
	if env.Color != "" {
		cfg.Color = env.Color
	}
	if env.IgnoreCase != nil {
		cfg.Defaults.IgnoreCase = *env.IgnoreCase
	}
}
