// Copyright (c) 2025 The Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/parleychat/parley/internal/ui/styles"
	"github.com/parleychat/parley/internal/util"
)

// StatusBar renders the bottom status line: model identifier, message count,
// and a transient status notice.
type StatusBar struct {
	Theme    *styles.Theme
	Model    string
	Messages int
	Notice   string
	Width    int
}

// Render returns the status line, truncated to the available width.
func (s StatusBar) Render() string {
	modelName := s.Model
	if modelName == "" {
		modelName = "no model"
	}

	left := s.Theme.StatusInfo.Render(fmt.Sprintf("%s · %d messages", modelName, s.Messages))

	right := ""
	if s.Notice != "" {
		right = s.Theme.StatusBar.Render(util.TruncateWidth(s.Notice, s.Width/2))
	}

	gap := s.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, lipgloss.NewStyle().Width(gap).Render(""), right)
}
