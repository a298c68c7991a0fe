// Copyright (c) 2025 The Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the Bubble Tea chat view: event loop, slash
// commands, and rendering.
package chat

import (
	"time"

	"github.com/parleychat/parley/internal/config"
)

// =============================================================================
// MESSAGE TYPES
// =============================================================================

// ReplyMsg delivers a completed reply from the API goroutine.
type ReplyMsg struct {
	// Raw is the unsegmented reply body.
	Raw string

	// ElapsedSecs is how long the request took; it becomes the thinking
	// time on the first bubble.
	ElapsedSecs int
}

// ReplyErrMsg delivers a failed reply request. The transcript is left
// untouched; the error shows in the error box.
type ReplyErrMsg struct {
	Err error
}

// ModelsMsg delivers the result of a model listing request.
type ModelsMsg struct {
	Models []string
}

// TickMsg drives the elapsed-seconds counter while waiting for a reply.
type TickMsg time.Time

// ConfigReloadedMsg arrives when the config file watcher reloads settings.
type ConfigReloadedMsg struct {
	Cfg *config.Config
}
