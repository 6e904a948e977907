// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for queryfarmer.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// .env loading, environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.queryfarmer/config.toml
//   - ~/.queryfarmer/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/srivastavaprakhar/queryfarmer-tui/internal/connectivity"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/locale"
	"github.com/srivastavaprakhar/queryfarmer-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete queryfarmer client configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Backend is the authentication and question-answering service.
	Backend BackendConfig `toml:"backend" json:"backend"`

	// Translation is the translation microservice.
	Translation TranslationConfig `toml:"translation" json:"translation"`

	// Locale controls where UI string bundles come from.
	Locale LocaleConfig `toml:"locale" json:"locale"`

	// Storage controls the preferences database.
	Storage StorageConfig `toml:"storage" json:"storage"`

	// Logging controls the client log file.
	Logging LoggingConfig `toml:"logging" json:"logging"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`
}

// BackendConfig contains backend service configuration.
type BackendConfig struct {
	// URL is the base URL serving /login, /signup, /ask and /health
	URL string `toml:"url" json:"url"`
	// TimeoutSecs bounds each request. 0 leaves requests unbounded.
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
}

// TranslationConfig contains translation service configuration.
type TranslationConfig struct {
	// URL is the base URL serving /translate, /languages and /health
	URL string `toml:"url" json:"url"`
	// TimeoutSecs bounds each request. 0 leaves requests unbounded.
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
	// MaxRequestsPerMinute throttles outgoing translate calls (0 = unlimited)
	MaxRequestsPerMinute int `toml:"max_requests_per_minute" json:"max_requests_per_minute"`
}

// LocaleConfig contains locale bundle configuration.
type LocaleConfig struct {
	// URL is the base URL serving /locales/{code}.json
	URL string `toml:"url" json:"url"`
	// Dir, when set, reads bundles from {dir}/{code}.json instead of URL
	Dir string `toml:"dir" json:"dir"`
	// Watch reloads the active bundle when files in Dir change
	Watch bool `toml:"watch" json:"watch"`
	// Languages lists the codes offered by the language picker
	Languages []string `toml:"languages" json:"languages"`
	// Default preselects a language in the picker (empty = detect from env)
	Default string `toml:"default" json:"default"`
}

// StorageConfig contains preferences storage configuration.
type StorageConfig struct {
	// PrefsPath is the SQLite preferences file (empty = ~/.queryfarmer/prefs.db)
	PrefsPath string `toml:"prefs_path" json:"prefs_path"`
}

// LoggingConfig contains log configuration.
type LoggingConfig struct {
	// Level is a zap level: debug, info, warn, error
	Level string `toml:"level" json:"level"`
	// Format is "json" or "console"
	Format string `toml:"format" json:"format"`
	// Path is the log file (empty = ~/.queryfarmer/client.log)
	Path string `toml:"path" json:"path"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme" json:"theme"`
	// HealthIntervalSecs is how often the backend is probed for connectivity (0 = never)
	HealthIntervalSecs int `toml:"health_interval_secs" json:"health_interval_secs"`
	// RenderMarkdown renders bot answers as markdown
	RenderMarkdown bool `toml:"render_markdown" json:"render_markdown"`
}

// DefaultLanguages is the set of languages the client ships bundles for.
var DefaultLanguages = []string{"en", "hi", "gu", "mr", "bn"}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		Backend: BackendConfig{
			URL:         "http://127.0.0.1:8000",
			TimeoutSecs: 0,
		},

		Translation: TranslationConfig{
			URL:                  "http://127.0.0.1:8001",
			TimeoutSecs:          0,
			MaxRequestsPerMinute: 0,
		},

		Locale: LocaleConfig{
			URL:       "http://127.0.0.1:8000",
			Languages: append([]string(nil), DefaultLanguages...),
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},

		UI: UIConfig{
			Theme:              "dark",
			HealthIntervalSecs: 30,
			RenderMarkdown:     true,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the queryfarmer configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".queryfarmer"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// PrefsPath resolves the preferences database path.
func (c *Config) PrefsPath() (string, error) {
	if c.Storage.PrefsPath != "" {
		return c.Storage.PrefsPath, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "prefs.db"), nil
}

// LogPath resolves the log file path.
func (c *Config) LogPath() (string, error) {
	if c.Logging.Path != "" {
		return c.Logging.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "client.log"), nil
}

// BackendTimeout returns the backend request timeout (0 = none).
func (c *Config) BackendTimeout() time.Duration {
	return time.Duration(c.Backend.TimeoutSecs) * time.Second
}

// TranslationTimeout returns the translation request timeout (0 = none).
func (c *Config) TranslationTimeout() time.Duration {
	return time.Duration(c.Translation.TimeoutSecs) * time.Second
}

// HealthInterval returns the connectivity probe interval (0 = disabled).
func (c *Config) HealthInterval() time.Duration {
	return time.Duration(c.UI.HealthIntervalSecs) * time.Second
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// LoadDotEnv loads a .env file from the working directory if one exists.
// Variables already present in the environment are not overwritten.
func LoadDotEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	if err := godotenv.Load(); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()
	var loadErr error

	if err := LoadDotEnv(); err != nil {
		loadErr = err
	}

	if tomlPath, err := ConfigPathTOML(); err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			if err := LoadTOML(cfg, tomlPath); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
			} else {
				return finish(cfg)
			}
		}
	}

	if jsonPath, err := ConfigPathJSON(); err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			// A failed TOML decode may have filled part of cfg.
			cfg = Default()
			if err := LoadJSON(cfg, jsonPath); err != nil {
				loadErr = fmt.Errorf("failed to load JSON config: %w", err)
			} else {
				return finish(cfg)
			}
		}
	}

	// Return defaults (with any load error for informational purposes)
	cfg = Default()
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, loadErr
}

func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON loads configuration from a JSON file.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file path with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	return finish(cfg)
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	var buf strings.Builder
	buf.WriteString("# queryfarmer configuration file\n")
	buf.WriteString("# Generated by queryfarmer - edit with care\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, []byte(buf.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON saves the configuration to a JSON file with 0600 permissions.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	checkURL := func(field, raw string, required bool) {
		if raw == "" {
			if required {
				errs = append(errs, ValidationError{Field: field, Message: "must not be empty"})
			}
			return
		}
		if err := connectivity.ValidateServiceURL(raw); err != nil {
			errs = append(errs, ValidationError{Field: field, Message: err.Error()})
		}
	}

	checkURL("backend.url", c.Backend.URL, true)
	checkURL("translation.url", c.Translation.URL, true)
	checkURL("locale.url", c.Locale.URL, c.Locale.Dir == "")

	if c.Backend.TimeoutSecs < 0 {
		errs = append(errs, ValidationError{Field: "backend.timeout_secs", Message: "must not be negative"})
	}
	if c.Translation.TimeoutSecs < 0 {
		errs = append(errs, ValidationError{Field: "translation.timeout_secs", Message: "must not be negative"})
	}
	if c.Translation.MaxRequestsPerMinute < 0 {
		errs = append(errs, ValidationError{Field: "translation.max_requests_per_minute", Message: "must not be negative"})
	}
	if c.UI.HealthIntervalSecs < 0 {
		errs = append(errs, ValidationError{Field: "ui.health_interval_secs", Message: "must not be negative"})
	}

	if len(c.Locale.Languages) == 0 {
		errs = append(errs, ValidationError{Field: "locale.languages", Message: "must list at least one language"})
	}
	for _, code := range c.Locale.Languages {
		if strings.TrimSpace(code) == "" {
			errs = append(errs, ValidationError{Field: "locale.languages", Message: "contains an empty code"})
			continue
		}
		if err := locale.ValidateCode(code); err != nil {
			errs = append(errs, ValidationError{Field: "locale.languages", Message: err.Error()})
		}
	}

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Logging.Level),
		})
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		errs = append(errs, ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("invalid format '%s', must be json or console", c.Logging.Format),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills in any missing values with defaults.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.Backend.URL == "" {
		c.Backend.URL = defaults.Backend.URL
	}
	if c.Translation.URL == "" {
		c.Translation.URL = defaults.Translation.URL
	}
	if c.Locale.URL == "" && c.Locale.Dir == "" {
		c.Locale.URL = defaults.Locale.URL
	}
	if len(c.Locale.Languages) == 0 {
		c.Locale.Languages = defaults.Locale.Languages
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = defaults.Logging.Format
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}

	c.Backend.URL = strings.TrimRight(c.Backend.URL, "/")
	c.Translation.URL = strings.TrimRight(c.Translation.URL, "/")
	c.Locale.URL = strings.TrimRight(c.Locale.URL, "/")
}

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - QUERYFARMER_BACKEND_URL: overrides backend.url
//   - QUERYFARMER_TRANSLATION_URL: overrides translation.url
//   - QUERYFARMER_LOCALES_URL: overrides locale.url
//   - QUERYFARMER_LOCALES_DIR: overrides locale.dir
//   - QUERYFARMER_LANG: overrides locale.default
//   - QUERYFARMER_LOG_LEVEL: overrides logging.level
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("QUERYFARMER_BACKEND_URL"); v != "" {
		c.Backend.URL = v
	}
	if v := os.Getenv("QUERYFARMER_TRANSLATION_URL"); v != "" {
		c.Translation.URL = v
	}
	if v := os.Getenv("QUERYFARMER_LOCALES_URL"); v != "" {
		c.Locale.URL = v
	}
	if v := os.Getenv("QUERYFARMER_LOCALES_DIR"); v != "" {
		c.Locale.Dir = v
	}
	if v := os.Getenv("QUERYFARMER_LANG"); v != "" {
		c.Locale.Default = v
	}
	if v := os.Getenv("QUERYFARMER_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "backend.url").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "backend.url").
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Bool:
			lower := strings.ToLower(strVal)
			field.SetBool(strVal == "1" || lower == "true" || lower == "yes")
			return nil
		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.String {
				var items []string
				for _, item := range strings.Split(strVal, ",") {
					if item = strings.TrimSpace(item); item != "" {
						items = append(items, item)
					}
				}
				field.Set(reflect.ValueOf(items))
				return nil
			}
		}
	}

	val := reflect.ValueOf(value)
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"backend.url",
		"backend.timeout_secs",
		"translation.url",
		"translation.timeout_secs",
		"translation.max_requests_per_minute",
		"locale.url",
		"locale.dir",
		"locale.watch",
		"locale.languages",
		"locale.default",
		"storage.prefs_path",
		"logging.level",
		"logging.format",
		"logging.path",
		"ui.theme",
		"ui.health_interval_secs",
		"ui.render_markdown",
	}
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Locale.Languages = append([]string(nil), c.Locale.Languages...)
	return &clone
}

// String returns a JSON representation of the config for display.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}
