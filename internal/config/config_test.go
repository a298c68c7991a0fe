// Copyright (c) 2025 The Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parleychat/parley/internal/model"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, string(model.ModeOnline), cfg.Chat.Mode)
	assert.True(t, cfg.Chat.RealTimeClock)
	assert.Equal(t, 0, cfg.Chat.HistoryWindow)
	assert.Equal(t, 120, cfg.API.TimeoutSecs)
	assert.NotEmpty(t, cfg.User.Name)
	assert.NotEmpty(t, cfg.Char.Name)
	require.NoError(t, cfg.Validate())
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.API.BaseURL = "https://api.example.com"
	cfg.API.APIKey = "sk-test"
	cfg.API.Model = "gpt-test"
	cfg.Char.Name = "Mira"
	cfg.Char.Persona = "A sardonic librarian."
	cfg.World.BannedWords = []string{"basically", "honestly"}
	cfg.Offline.MinWords = 50
	cfg.Offline.MaxWords = 200
	cfg.AddPreset("poetic", "Answer in a poetic register.")

	require.NoError(t, SaveTOML(cfg, path))

	// Config files carry an API key, so they must be private.
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.API.BaseURL, loaded.API.BaseURL)
	assert.Equal(t, cfg.API.APIKey, loaded.API.APIKey)
	assert.Equal(t, "A sardonic librarian.", loaded.Char.Persona)
	assert.Equal(t, []string{"basically", "honestly"}, loaded.World.BannedWords)
	assert.Equal(t, 50, loaded.Offline.MinWords)
	require.Len(t, loaded.Offline.Presets, 1)
	assert.Equal(t, "poetic", loaded.Offline.Presets[0].Name)
	assert.True(t, loaded.Offline.Presets[0].Enabled)
	assert.NotEmpty(t, loaded.Offline.Presets[0].ID)
}

func TestLoadFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	partial := `
[api]
base_url = "https://api.example.com"

[[offline.presets]]
name = "curt"
content = "Keep it short."
enabled = true
`
	require.NoError(t, os.WriteFile(path, []byte(partial), 0600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, string(model.ModeOnline), cfg.Chat.Mode)
	assert.Equal(t, 120, cfg.API.TimeoutSecs)
	assert.NotEmpty(t, cfg.User.Name)
	// Presets without an ID get one assigned on load.
	require.Len(t, cfg.Offline.Presets, 1)
	assert.NotEmpty(t, cfg.Offline.Presets[0].ID)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"bad mode", func(c *Config) { c.Chat.Mode = "offline-ish" }, "chat.mode"},
		{"negative window", func(c *Config) { c.Chat.HistoryWindow = -1 }, "chat.history_window"},
		{"zero timeout", func(c *Config) { c.API.TimeoutSecs = 0 }, "api.timeout_secs"},
		{"bad scheme", func(c *Config) { c.API.BaseURL = "ftp://x" }, "api.base_url"},
		{"empty user name", func(c *Config) { c.User.Name = "" }, "user.name"},
		{"negative min words", func(c *Config) { c.Offline.MinWords = -1 }, "offline.min_words"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)

			var errs ValidateErrors
			require.ErrorAs(t, err, &errs)
			found := false
			for _, e := range errs {
				if e.Field == tt.field {
					found = true
				}
			}
			assert.True(t, found, "expected error on field %s, got %v", tt.field, err)
		})
	}

	// minWords > maxWords is deliberately not validated.
	cfg := Default()
	cfg.Offline.MinWords = 500
	cfg.Offline.MaxWords = 10
	assert.NoError(t, cfg.Validate())
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("PARLEY_BASE_URL", "https://env.example.com")
	t.Setenv("PARLEY_API_KEY", "sk-env")
	t.Setenv("PARLEY_MODEL", "env-model")
	t.Setenv("PARLEY_MODE", "OFFLINE")
	t.Setenv("PARLEY_HISTORY_WINDOW", "40")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "https://env.example.com", cfg.API.BaseURL)
	assert.Equal(t, "sk-env", cfg.API.APIKey)
	assert.Equal(t, "env-model", cfg.API.Model)
	assert.Equal(t, string(model.ModeOffline), cfg.Chat.Mode)
	assert.Equal(t, 40, cfg.Chat.HistoryWindow)
}

func TestPresetManagement(t *testing.T) {
	cfg := Default()
	p := cfg.AddPreset("terse", "Short replies only.")
	assert.True(t, p.Enabled)
	assert.NotEmpty(t, p.ID)

	require.True(t, cfg.TogglePreset(0))
	assert.False(t, cfg.Offline.Presets[0].Enabled)
	assert.False(t, cfg.TogglePreset(5))

	require.True(t, cfg.RemovePreset(0))
	assert.Empty(t, cfg.Offline.Presets)
	assert.False(t, cfg.RemovePreset(0))
}

func TestReloadGlobalUsesActivePath(t *testing.T) {
	ResetGlobalForTesting()
	t.Cleanup(ResetGlobalForTesting)

	path := filepath.Join(t.TempDir(), "custom.toml")
	cfg := Default()
	cfg.Char.Name = "Nova"
	require.NoError(t, SaveTOML(cfg, path))
	SetActivePath(path)

	require.NoError(t, ReloadGlobal())
	assert.Equal(t, "Nova", Global().Char.Name)
}

func TestSaveWritesActivePath(t *testing.T) {
	ResetGlobalForTesting()
	t.Cleanup(ResetGlobalForTesting)

	// Nested so the save also has to create the directory.
	path := filepath.Join(t.TempDir(), "nested", "custom.toml")
	SetActivePath(path)

	cfg := Default()
	cfg.Char.Name = "Nova"
	require.NoError(t, Save(cfg))

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "Nova", loaded.Char.Name)
}

func TestActivePathDefaultsToConfigPath(t *testing.T) {
	ResetGlobalForTesting()
	t.Cleanup(ResetGlobalForTesting)

	def, err := ConfigPath()
	require.NoError(t, err)
	got, err := ActivePath()
	require.NoError(t, err)
	assert.Equal(t, def, got)
}

func TestGlobalSingleton(t *testing.T) {
	ResetGlobalForTesting()
	t.Cleanup(ResetGlobalForTesting)

	custom := Default()
	custom.Char.Name = "Test Char"
	SetGlobal(custom)

	assert.Equal(t, "Test Char", Global().Char.Name)
}

func TestGlobalConcurrentAccess(t *testing.T) {
	ResetGlobalForTesting()
	t.Cleanup(ResetGlobalForTesting)
	SetGlobal(Default())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = Global().Chat.Mode
		}()
		go func() {
			defer wg.Done()
			SetGlobal(Default())
		}()
	}
	wg.Wait()
}

func TestClone(t *testing.T) {
	cfg := Default()
	cfg.World.BannedWords = []string{"a"}
	cfg.AddPreset("p", "c")

	clone := cfg.Clone()
	clone.World.BannedWords[0] = "b"
	clone.Offline.Presets[0].Name = "q"

	assert.Equal(t, "a", cfg.World.BannedWords[0])
	assert.Equal(t, "p", cfg.Offline.Presets[0].Name)
}
