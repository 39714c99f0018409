package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	pipelinegrep "github.com/alnah/go-pipelinegrep"
	"github.com/alnah/go-pipelinegrep/internal/decode"
	"github.com/alnah/go-pipelinegrep/internal/fileutil"
	"github.com/alnah/go-pipelinegrep/internal/highlight"
)

// AppName is the directory searched under the user config directory.
const AppName = "go-pipelinegrep"

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidConfig   = errors.New("invalid config")
)

// Field length limits.
const (
	MaxMarkerLength     = 200  // One XML fragment
	MaxFormatNameLength = 50   // "md", "report-tsv"
	MaxTemplateLength   = 2000 // Multi-line templates
	MaxFormats          = 100
)

// Extensions tried when resolving a config name, in order.
var Extensions = []string{".yaml", ".yml", ".json", ".jsonc"}

// Config holds everything a config file can set.
type Config struct {
	Markers  MarkersConfig     `yaml:"markers" json:"markers"`
	Defaults DefaultsConfig    `yaml:"defaults" json:"defaults"`
	Formats  map[string]string `yaml:"formats" json:"formats"`
	Color    string            `yaml:"color" json:"color"` // "auto", "always", "never"
}

// MarkersConfig overrides section markers. Empty fields keep the GoCD defaults.
type MarkersConfig struct {
	Open      string `yaml:"open" json:"open"`
	Close     string `yaml:"close" json:"close"`
	Attribute string `yaml:"attribute" json:"attribute"`
}

// DefaultsConfig holds flag defaults used when the command line is silent.
type DefaultsConfig struct {
	IgnoreCase   bool   `yaml:"ignoreCase" json:"ignoreCase"`
	LineNumbers  bool   `yaml:"lineNumbers" json:"lineNumbers"`
	ShowPipeline bool   `yaml:"showPipeline" json:"showPipeline"`
	HideLine     bool   `yaml:"hideLine" json:"hideLine"`
	Format       string `yaml:"format" json:"format"` // Same syntax as -f
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() *Config {
	return &Config{
		Markers: MarkersConfig{
			Open:      pipelinegrep.DefaultOpenMarker,
			Close:     pipelinegrep.DefaultCloseMarker,
			Attribute: pipelinegrep.DefaultAttribute,
		},
		Color: string(highlight.ModeAuto),
	}
}

// ToMarkers returns the section markers, falling back to the GoCD
// default for every empty field.
func (c *Config) ToMarkers() pipelinegrep.Markers {
	m := pipelinegrep.DefaultMarkers()
	if c.Markers.Open != "" {
		m.Open = c.Markers.Open
	}
	if c.Markers.Close != "" {
		m.Close = c.Markers.Close
	}
	if c.Markers.Attribute != "" {
		m.Attribute = c.Markers.Attribute
	}
	return m
}

// FormatNames returns the configured format names, sorted.
func (c *Config) FormatNames() []string {
	names := make([]string, 0, len(c.Formats))
	for name := range c.Formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks field lengths, markers, the color mode, and named formats.
// Called automatically by LoadConfig.
func (c *Config) Validate() error {
	if err := validateFieldLength("markers.open", c.Markers.Open, MaxMarkerLength); err != nil {
		return err
	}
	if err := validateFieldLength("markers.close", c.Markers.Close, MaxMarkerLength); err != nil {
		return err
	}
	if err := validateFieldLength("markers.attribute", c.Markers.Attribute, MaxMarkerLength); err != nil {
		return err
	}
	if err := c.ToMarkers().Validate(); err != nil {
		return fmt.Errorf("%w: markers: %w", ErrInvalidConfig, err)
	}

	if err := validateFieldLength("defaults.format", c.Defaults.Format, MaxTemplateLength); err != nil {
		return err
	}

	if _, err := highlight.ParseMode(c.Color); err != nil {
		return fmt.Errorf("%w: color: %w", ErrInvalidConfig, err)
	}

	if len(c.Formats) > MaxFormats {
		return fmt.Errorf("%w: formats: %d entries (max %d)", ErrInvalidConfig, len(c.Formats), MaxFormats)
	}
	seen := make(map[string]string, len(c.Formats))
	for _, name := range c.FormatNames() {
		field := "formats." + name
		if err := validateFieldLength(field, name, MaxFormatNameLength); err != nil {
			return err
		}
		if err := validateFieldLength(field, c.Formats[name], MaxTemplateLength); err != nil {
			return err
		}
		if strings.TrimSpace(name) == "" || strings.ContainsAny(name, "{}") {
			return fmt.Errorf("%w: %s: name must be non-empty and brace-free", ErrInvalidConfig, field)
		}
		if pipelinegrep.IsBuiltInFormat(name) {
			return fmt.Errorf("%w: %s: shadows a built-in format", ErrInvalidConfig, field)
		}
		lower := strings.ToLower(name)
		if other, dup := seen[lower]; dup {
			return fmt.Errorf("%w: %s: same name as formats.%s", ErrInvalidConfig, field, other)
		}
		seen[lower] = name
		if _, err := pipelinegrep.ParseTemplate(c.Formats[name]); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, field, err)
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// A value with a path separator or a known extension is a file path.
// Otherwise it is a config name searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath, Extensions...) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := unmarshal(configPath, data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// unmarshal picks the decoder from the file extension; anything that is
// not .json or .jsonc is read as YAML.
func unmarshal(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return decode.JSONC(data, cfg)
	default:
		return decode.YAML(data, cfg)
	}
}

// SearchPaths returns the candidate files for a config name: the current
// directory first, then the user config directory.
func SearchPaths(name string) []string {
	dirs := []string{""}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(userConfigDir, AppName))
	}
	return fileutil.Candidates(dirs, name, Extensions)
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	if p, ok := fileutil.FirstExisting(paths); ok {
		return p, nil
	}
	return "", &NotFoundError{Name: name, Tried: paths}
}

// NotFoundError reports every path tried for a config name.
type NotFoundError struct {
	Name  string
	Tried []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %q, tried %s", ErrConfigNotFound, e.Name, strings.Join(e.Tried, ", "))
}

// Unwrap makes errors.Is(err, ErrConfigNotFound) hold.
func (e *NotFoundError) Unwrap() error {
	return ErrConfigNotFound
}
