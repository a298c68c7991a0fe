// Copyright (c) 2025 The Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parleychat/parley/internal/config"
)

func TestNewThemeWithNilConfig(t *testing.T) {
	th := NewTheme(nil)
	require.NotNil(t, th)
	// Default bubbles are styled even without a config.
	assert.NotEqual(t, "", th.UserBubble.Render("x"))
}

func TestBubbleToStyle(t *testing.T) {
	s := BubbleToStyle(config.BubbleStyle{
		Background: "#112233",
		Foreground: "#FFFFFF",
		Bold:       true,
	})
	assert.True(t, s.GetBold())

	// Partial records still produce a usable style.
	partial := BubbleToStyle(config.BubbleStyle{Foreground: "#FFFFFF"})
	assert.False(t, partial.GetBold())
}

func TestNewThemeUsesConfiguredBubbles(t *testing.T) {
	cfg := config.Default()
	cfg.User.Bubble = config.BubbleStyle{Background: "#000000", Foreground: "#FFFFFF", Bold: true}

	th := NewTheme(cfg)
	assert.True(t, th.UserBubble.GetBold())
}
