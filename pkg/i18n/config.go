package i18n

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ConfigFileName is the project-local configuration file read by LoadConfig.
const ConfigFileName = "i18n.toml"

// Minification defaults. Keys whose length does not exceed the threshold are
// kept verbatim instead of being hashed. The maximum length is the full
// base62 rendering of the 128-bit digest; longer codes cannot be produced.
const (
	DefaultMinifyKeyLen    = 12
	DefaultMinifyKeyPrefix = "t_"
	DefaultMinifyKeyThresh = 64
	MaxMinifyKeyLen        = 22
)

// Config carries the recognized project options for both the resolution
// engine and the extraction tool.
type Config struct {
	DefaultLocale    string   `toml:"default_locale"`
	FallbackLocales  []string `toml:"fallback_locales"`
	LoadPath         string   `toml:"load_path"`
	PlaceholderOpen  string   `toml:"placeholder_open"`
	PlaceholderClose string   `toml:"placeholder_close"`
	CallMarkers      []string `toml:"call_markers"`
	SourceExtensions []string `toml:"source_extensions"`
	MinifyKey        bool     `toml:"minify_key"`
	MinifyKeyLen     int      `toml:"minify_key_len"`
	MinifyKeyPrefix  string   `toml:"minify_key_prefix"`
	MinifyKeyThresh  int      `toml:"minify_key_thresh"`
}

// DefaultConfig returns the configuration used when no i18n.toml is present.
func DefaultConfig() Config {
	return Config{
		DefaultLocale:    "en",
		LoadPath:         "locales",
		PlaceholderOpen:  DefaultOpenMarker,
		PlaceholderClose: DefaultCloseMarker,
		CallMarkers:      []string{"T"},
		SourceExtensions: []string{".go"},
		MinifyKeyLen:     DefaultMinifyKeyLen,
		MinifyKeyPrefix:  DefaultMinifyKeyPrefix,
		MinifyKeyThresh:  DefaultMinifyKeyThresh,
	}
}

// LoadConfig reads i18n.toml from dir, falling back to defaults when the
// file does not exist. Options absent from the file keep their defaults.
func LoadConfig(dir string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: parsing %s: %w", ErrInvalidConfig, ConfigFileName, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate applies the structural rules on a configuration.
func (c Config) Validate() error {
	if c.DefaultLocale == "" {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrEmptyLocale)
	}
	if c.PlaceholderOpen == "" || c.PlaceholderClose == "" {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrInvalidMarkers)
	}
	if c.MinifyKey {
		if c.MinifyKeyLen < 1 || c.MinifyKeyLen > MaxMinifyKeyLen {
			return fmt.Errorf("%w: minify_key_len must be within [1, %d]", ErrInvalidConfig, MaxMinifyKeyLen)
		}
		if c.MinifyKeyThresh < 0 {
			return fmt.Errorf("%w: minify_key_thresh cannot be negative", ErrInvalidConfig)
		}
	}
	return nil
}
