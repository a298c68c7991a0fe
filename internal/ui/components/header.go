// Copyright (c) 2025 The Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the reusable rendering pieces of the parley
// TUI: header, message bubbles, status bar, error box, and sticker panel.
package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/parleychat/parley/internal/model"
	"github.com/parleychat/parley/internal/ui/styles"
)

// Header renders the top bar: character name, typing state, and mode badge.
type Header struct {
	Theme       *styles.Theme
	CharName    string
	Mode        model.Mode
	Waiting     bool
	ElapsedSecs int
	Width       int
}

// Render returns the header line.
func (h Header) Render() string {
	title := h.Theme.HeaderTitle.Render(h.CharName)

	sub := ""
	if h.Waiting {
		sub = h.Theme.HeaderSubtitle.Render(fmt.Sprintf("typing… %ds", h.ElapsedSecs))
	}

	var badge string
	if h.Mode == model.ModeOffline {
		badge = h.Theme.ModeOffline.Render("OFFLINE")
	} else {
		badge = h.Theme.ModeOnline.Render("ONLINE")
	}

	left := title
	if sub != "" {
		left = lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", sub)
	}

	gap := h.Width - lipgloss.Width(left) - lipgloss.Width(badge) - 2
	if gap < 1 {
		gap = 1
	}
	line := lipgloss.JoinHorizontal(lipgloss.Center, left, lipgloss.NewStyle().Width(gap).Render(""), badge)

	return h.Theme.Header.Width(h.Width).Render(line)
}
