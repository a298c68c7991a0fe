// Copyright (c) 2025 The Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config manages parley configuration: loading from TOML, defaults,
// validation, environment overrides, and the thread-safe global instance.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/parleychat/parley/internal/model"
	"github.com/parleychat/parley/internal/util"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config is the main configuration structure for parley.
type Config struct {
	Version string `toml:"version"`

	API     APIConfig     `toml:"api"`
	Chat    ChatConfig    `toml:"chat"`
	User    PersonaConfig `toml:"user"`
	Char    PersonaConfig `toml:"char"`
	World   WorldConfig   `toml:"world"`
	Offline OfflineConfig `toml:"offline"`
	UI      UIConfig      `toml:"ui"`
}

// APIConfig holds the OpenAI-compatible endpoint settings.
type APIConfig struct {
	// BaseURL is the endpoint root, e.g. https://api.example.com or
	// https://api.example.com/v1. The /v1 segment is appended if missing.
	BaseURL string `toml:"base_url"`

	// APIKey is sent as a bearer token.
	APIKey string `toml:"api_key"`

	// Model is the chat model identifier.
	Model string `toml:"model"`

	// TimeoutSecs bounds a single completion request.
	TimeoutSecs int `toml:"timeout_secs"`
}

// ChatConfig holds conversation behavior settings.
type ChatConfig struct {
	// Mode is the starting conversation mode: "online" or "offline".
	Mode string `toml:"mode"`

	// RealTimeClock injects the current UTC+8 time into the online prompt.
	RealTimeClock bool `toml:"real_time_clock"`

	// HistoryWindow bounds how many transcript messages are sent to the
	// model. Zero means the full transcript.
	HistoryWindow int `toml:"history_window"`
}

// PersonaConfig describes one chat party.
type PersonaConfig struct {
	Name    string      `toml:"name"`
	Persona string      `toml:"persona"`
	Bubble  BubbleStyle `toml:"bubble"`
}

// BubbleStyle is a structured bubble appearance record. The renderer maps
// it onto terminal styles; it is not a raw style string.
type BubbleStyle struct {
	Background string `toml:"background"`
	Foreground string `toml:"foreground"`
	Border     string `toml:"border"`
	Bold       bool   `toml:"bold"`
}

// WorldConfig holds setting shared by both modes.
type WorldConfig struct {
	// WorldBook is freeform background lore injected into every prompt.
	WorldBook string `toml:"world_book"`

	// BannedWords are globally discouraged words, listed in every prompt.
	BannedWords []string `toml:"banned_words"`
}

// OfflineConfig holds the stricter rules used in offline (face-to-face) mode.
type OfflineConfig struct {
	// BannedWords are absolutely prohibited in offline replies.
	BannedWords []string `toml:"banned_words"`

	// MinWords / MaxWords bound the reply length. Zero means unset; an
	// unset max is presented to the model as 9999.
	MinWords int `toml:"min_words"`
	MaxWords int `toml:"max_words"`

	Presets []Preset `toml:"presets"`
}

// Preset is a reusable offline style directive. Only enabled presets are
// included in the composed prompt, in list order.
type Preset struct {
	ID      string `toml:"id"`
	Name    string `toml:"name"`
	Content string `toml:"content"`
	Enabled bool   `toml:"enabled"`
}

// UIConfig holds appearance settings.
type UIConfig struct {
	Theme string `toml:"theme"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Version: "1.0",
		API: APIConfig{
			BaseURL:     "",
			APIKey:      "",
			Model:       "",
			TimeoutSecs: 120,
		},
		Chat: ChatConfig{
			Mode:          string(model.ModeOnline),
			RealTimeClock: true,
			HistoryWindow: 0,
		},
		User: PersonaConfig{
			Name: "Alex",
			Bubble: BubbleStyle{
				Background: "#2D7D6E",
				Foreground: "#FFFFFF",
			},
		},
		Char: PersonaConfig{
			Name: "Mira",
			Bubble: BubbleStyle{
				Background: "#3A3A3A",
				Foreground: "#EAEAEA",
			},
		},
		UI: UIConfig{
			Theme: "dark",
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the parley configuration directory (~/.parley).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".parley"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

var (
	activePathMu sync.RWMutex
	activePath   string
)

// SetActivePath records the config file this process runs against. Saves
// and reloads follow it, so a -config override applies for the whole run,
// not just the initial load.
func SetActivePath(path string) {
	activePathMu.Lock()
	defer activePathMu.Unlock()
	activePath = path
}

// ActivePath returns the config file in use, falling back to the default
// ~/.parley/config.toml when no override was recorded.
func ActivePath() (string, error) {
	activePathMu.RLock()
	path := activePath
	activePathMu.RUnlock()
	if path != "" {
		return path, nil
	}
	return ConfigPath()
}

// EnsureConfigDir ensures the directory holding the active config file
// exists.
func EnsureConfigDir() error {
	path, err := ActivePath()
	if err != nil {
		return err
	}
	return os.MkdirAll(filepath.Dir(path), 0755)
}

// ensureSecurePermissions fixes config file permissions to 0600. The file
// holds an API key.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Mode().Perm() != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", info.Mode().Perm(), err)
		}
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file, falling back to defaults
// when the file is absent. Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := LoadTOML(cfg, path); err != nil {
				return nil, fmt.Errorf("failed to load config: %w", err)
			}
		}
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file into cfg.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		// Permissions might not be fixable on all systems.
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return fillDefaults(cfg)
}

// LoadFromPath loads configuration from a specific file with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// fillDefaults fills in any missing values with defaults.
func fillDefaults(cfg *Config) error {
	defaults := Default()

	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}
	if cfg.API.TimeoutSecs == 0 {
		cfg.API.TimeoutSecs = defaults.API.TimeoutSecs
	}
	if cfg.Chat.Mode == "" {
		cfg.Chat.Mode = defaults.Chat.Mode
	}
	if cfg.User.Name == "" {
		cfg.User.Name = defaults.User.Name
	}
	if cfg.Char.Name == "" {
		cfg.Char.Name = defaults.Char.Name
	}
	if cfg.User.Bubble == (BubbleStyle{}) {
		cfg.User.Bubble = defaults.User.Bubble
	}
	if cfg.Char.Bubble == (BubbleStyle{}) {
		cfg.Char.Bubble = defaults.Char.Bubble
	}
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = defaults.UI.Theme
	}

	// Presets written before preset IDs existed get one assigned.
	for i := range cfg.Offline.Presets {
		if cfg.Offline.Presets[i].ID == "" {
			cfg.Offline.Presets[i].ID = uuid.New().String()
		}
	}

	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the active TOML file.
func Save(cfg *Config) error {
	path, err := ActivePath()
	if err != nil {
		return err
	}
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file with 0600 permissions.
// The write is atomic so a crash never leaves a truncated config.
func SaveTOML(cfg *Config, path string) error {
	var buf strings.Builder
	buf.WriteString("# parley configuration file\n")
	buf.WriteString("# Generated by parley - edit with care\n")
	buf.WriteString("\n")

	encoder := toml.NewEncoder(&buf)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, []byte(buf.String()), 0600); err != nil {
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

	if !model.Mode(c.Chat.Mode).Valid() {
		errs = append(errs, ValidationError{
			Field:   "chat.mode",
			Message: fmt.Sprintf("must be %q or %q, got %q", model.ModeOnline, model.ModeOffline, c.Chat.Mode),
		})
	}
	if c.Chat.HistoryWindow < 0 {
		errs = append(errs, ValidationError{
			Field:   "chat.history_window",
			Message: "must not be negative",
		})
	}
	if c.API.TimeoutSecs <= 0 {
		errs = append(errs, ValidationError{
			Field:   "api.timeout_secs",
			Message: "must be positive",
		})
	}
	if c.API.BaseURL != "" && !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		errs = append(errs, ValidationError{
			Field:   "api.base_url",
			Message: "must start with http:// or https://",
		})
	}
	if c.User.Name == "" {
		errs = append(errs, ValidationError{Field: "user.name", Message: "must not be empty"})
	}
	if c.Char.Name == "" {
		errs = append(errs, ValidationError{Field: "char.name", Message: "must not be empty"})
	}
	if c.Offline.MinWords < 0 {
		errs = append(errs, ValidationError{Field: "offline.min_words", Message: "must not be negative"})
	}
	if c.Offline.MaxWords < 0 {
		errs = append(errs, ValidationError{Field: "offline.max_words", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies PARLEY_* environment variables over the loaded
// configuration.
func (c *Config) ApplyEnvOverrides() {
	if url := os.Getenv("PARLEY_BASE_URL"); url != "" {
		c.API.BaseURL = url
	}
	if key := os.Getenv("PARLEY_API_KEY"); key != "" {
		c.API.APIKey = key
	}
	if m := os.Getenv("PARLEY_MODEL"); m != "" {
		c.API.Model = m
	}
	if mode := os.Getenv("PARLEY_MODE"); mode != "" {
		c.Chat.Mode = strings.ToLower(mode)
	}
	if window := os.Getenv("PARLEY_HISTORY_WINDOW"); window != "" {
		if n, err := strconv.Atoi(window); err == nil && n >= 0 {
			c.Chat.HistoryWindow = n
		}
	}
}

// =============================================================================
// HELPERS
// =============================================================================

// Mode returns the configured chat mode as a model.Mode.
func (c *Config) Mode() model.Mode {
	return model.Mode(c.Chat.Mode)
}

// AddPreset appends an offline preset with a fresh ID.
func (c *Config) AddPreset(name, content string) *Preset {
	c.Offline.Presets = append(c.Offline.Presets, Preset{
		ID:      uuid.New().String(),
		Name:    name,
		Content: content,
		Enabled: true,
	})
	return &c.Offline.Presets[len(c.Offline.Presets)-1]
}

// TogglePreset flips the enabled state of the preset at the given index.
func (c *Config) TogglePreset(index int) bool {
	if index < 0 || index >= len(c.Offline.Presets) {
		return false
	}
	c.Offline.Presets[index].Enabled = !c.Offline.Presets[index].Enabled
	return true
}

// RemovePreset deletes the preset at the given index.
func (c *Config) RemovePreset(index int) bool {
	if index < 0 || index >= len(c.Offline.Presets) {
		return false
	}
	c.Offline.Presets = append(c.Offline.Presets[:index], c.Offline.Presets[index+1:]...)
	return true
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.World.BannedWords = append([]string(nil), c.World.BannedWords...)
	clone.Offline.BannedWords = append([]string(nil), c.Offline.BannedWords...)
	clone.Offline.Presets = append([]Preset(nil), c.Offline.Presets...)
	return &clone
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance, loading it on first
// access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfig = cfg
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from the active config
// file. Thread-safe.
func ReloadGlobal() error {
	path, err := ActivePath()
	if err != nil {
		return err
	}
	cfg, err := LoadFromPath(path)
	if err != nil {
		return err
	}
	SetGlobal(cfg)
	return nil
}

// SetGlobal sets the global configuration instance. Thread-safe. The lazy
// first-access load is consumed so it cannot overwrite the explicit value
// later.
func SetGlobal(cfg *Config) {
	globalConfigOnce.Do(func() {})
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state between test runs.
func ResetGlobalForTesting() {
	SetActivePath("")
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
