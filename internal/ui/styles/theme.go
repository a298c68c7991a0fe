// Copyright (c) 2025 The Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the parley TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/parleychat/parley/internal/config"
)

// Theme holds all the styled components for the application. It detects the
// terminal's color capability and adjusts accordingly.
type Theme struct {
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style
	ModeOnline     lipgloss.Style
	ModeOffline    lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble   lipgloss.Style
	CharBubble   lipgloss.Style
	SenderName   lipgloss.Style
	SystemNotice lipgloss.Style
	Recalled     lipgloss.Style
	QuoteBlock   lipgloss.Style
	VoiceBadge   lipgloss.Style
	StickerBadge lipgloss.Style
	MessageMeta  lipgloss.Style

	// ==========================================================================
	// INPUT AND STATUS STYLES
	// ==========================================================================

	InputContainer lipgloss.Style
	InputPrompt    lipgloss.Style
	StatusBar      lipgloss.Style
	StatusInfo     lipgloss.Style
	StatusWaiting  lipgloss.Style
	Spinner        lipgloss.Style

	// ==========================================================================
	// ERROR AND PANEL STYLES
	// ==========================================================================

	ErrorBox     lipgloss.Style
	ErrorTitle   lipgloss.Style
	ErrorMessage lipgloss.Style
	PanelBox     lipgloss.Style
	PanelTitle   lipgloss.Style
	PanelItem    lipgloss.Style
	PanelMuted   lipgloss.Style
}

// NewTheme creates a theme from the configured bubble styles.
func NewTheme(cfg *config.Config) *Theme {
	colorProfile := termenv.ColorProfile()
	isDark := termenv.HasDarkBackground()
	if cfg != nil && cfg.UI.Theme == "dark" {
		isDark = true
	}

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	muted := lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	border := lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#374151"}
	accent := lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#60A5FA"}
	danger := lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}

	t.Header = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(border).
		Padding(0, 1)
	t.HeaderTitle = lipgloss.NewStyle().Bold(true)
	t.HeaderSubtitle = lipgloss.NewStyle().Foreground(muted)
	t.ModeOnline = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}).Bold(true)
	t.ModeOffline = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}).Bold(true)

	userBubble := config.BubbleStyle{Background: "#2D7D6E", Foreground: "#FFFFFF"}
	charBubble := config.BubbleStyle{Background: "#3A3A3A", Foreground: "#EAEAEA"}
	if cfg != nil {
		if cfg.User.Bubble != (config.BubbleStyle{}) {
			userBubble = cfg.User.Bubble
		}
		if cfg.Char.Bubble != (config.BubbleStyle{}) {
			charBubble = cfg.Char.Bubble
		}
	}
	t.UserBubble = BubbleToStyle(userBubble).Padding(0, 1)
	t.CharBubble = BubbleToStyle(charBubble).Padding(0, 1)

	t.SenderName = lipgloss.NewStyle().Foreground(muted).Bold(true)
	t.SystemNotice = lipgloss.NewStyle().Foreground(muted).Italic(true)
	t.Recalled = lipgloss.NewStyle().Foreground(muted).Italic(true)
	t.QuoteBlock = lipgloss.NewStyle().
		Foreground(muted).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(border).
		PaddingLeft(1)
	t.VoiceBadge = lipgloss.NewStyle().Foreground(accent)
	t.StickerBadge = lipgloss.NewStyle().Foreground(accent).Italic(true)
	t.MessageMeta = lipgloss.NewStyle().Foreground(muted)

	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(border)
	t.InputPrompt = lipgloss.NewStyle().Foreground(accent).Bold(true)
	t.StatusBar = lipgloss.NewStyle().Foreground(muted)
	t.StatusInfo = lipgloss.NewStyle().Foreground(muted)
	t.StatusWaiting = lipgloss.NewStyle().Foreground(accent)
	t.Spinner = lipgloss.NewStyle().Foreground(accent)

	t.ErrorBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(danger).
		Padding(0, 1)
	t.ErrorTitle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	t.ErrorMessage = lipgloss.NewStyle()
	t.PanelBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
	t.PanelTitle = lipgloss.NewStyle().Bold(true)
	t.PanelItem = lipgloss.NewStyle()
	t.PanelMuted = lipgloss.NewStyle().Foreground(muted)

	return t
}

// BubbleToStyle maps a structured bubble record from the config onto a
// lipgloss style. Unknown or empty fields are simply skipped, so a partial
// record still renders.
func BubbleToStyle(b config.BubbleStyle) lipgloss.Style {
	s := lipgloss.NewStyle()
	if b.Background != "" {
		s = s.Background(lipgloss.Color(b.Background))
	}
	if b.Foreground != "" {
		s = s.Foreground(lipgloss.Color(b.Foreground))
	}
	if b.Border != "" {
		s = s.BorderStyle(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(b.Border))
	}
	if b.Bold {
		s = s.Bold(true)
	}
	return s
}
