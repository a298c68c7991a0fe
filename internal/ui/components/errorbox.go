// Copyright (c) 2025 The Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/parleychat/parley/internal/openai"
	"github.com/parleychat/parley/internal/ui/styles"
)

// ErrorBox renders a dismissible error panel. Reply failures never touch
// the transcript; they surface here instead.
type ErrorBox struct {
	Theme *styles.Theme
	Err   error
	Width int
}

// Render returns the boxed error, or an empty string when there is none.
func (e ErrorBox) Render() string {
	if e.Err == nil {
		return ""
	}

	title := "Error"
	switch {
	case openai.IsNotConfigured(e.Err):
		title = "Not Configured"
	case openai.IsTimeout(e.Err):
		title = "Timeout"
	}

	body := e.Theme.ErrorTitle.Render(title) + "\n" +
		e.Theme.ErrorMessage.Render(e.Err.Error()) + "\n" +
		e.Theme.PanelMuted.Render("esc to dismiss")

	width := e.Width - 4
	if width < 20 {
		width = 20
	}
	return e.Theme.ErrorBox.Width(width).Render(body)
}
