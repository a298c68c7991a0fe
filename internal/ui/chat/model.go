// Copyright (c) 2025 The Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/parleychat/parley/internal/config"
	"github.com/parleychat/parley/internal/model"
	"github.com/parleychat/parley/internal/openai"
	"github.com/parleychat/parley/internal/ui/styles"
)

// =============================================================================
// STATE
// =============================================================================

// State is the reply-request state. At most one request is in flight; the
// trigger is refused while waiting but everything else stays interactive.
type State int

const (
	StateReady State = iota
	StateWaiting
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	cfg    *config.Config
	theme  *styles.Theme
	client *openai.Client

	transcript *model.Transcript
	stickers   *model.Collection
	mode       model.Mode

	state     State
	waitStart time.Time
	elapsed   int

	input    textinput.Model
	viewport viewport.Model
	spin     spinner.Model
	keys     KeyMap
	help     help.Model

	width  int
	height int
	ready  bool

	err          error
	notice       string
	pendingQuote *model.QuoteInfo
	showStickers bool
	showHelp     bool

	// nowFn is injectable for prompt-composition tests.
	nowFn func() time.Time
}

// New creates the chat model from the loaded configuration.
func New(cfg *config.Config) Model {
	input := textinput.New()
	input.Placeholder = "Message (/help for commands)"
	input.Focus()
	input.CharLimit = 0

	theme := styles.NewTheme(cfg)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	client := openai.NewClient(openai.ClientConfig{
		BaseURL: cfg.API.BaseURL,
		APIKey:  cfg.API.APIKey,
		Model:   cfg.API.Model,
		Timeout: time.Duration(cfg.API.TimeoutSecs) * time.Second,
	})

	return Model{
		cfg:        cfg,
		theme:      theme,
		client:     client,
		transcript: model.NewTranscript(),
		stickers:   model.NewCollection(),
		mode:       cfg.Mode(),
		state:      StateReady,
		input:      input,
		spin:       sp,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		nowFn:      time.Now,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Transcript exposes the conversation for the program owner.
func (m Model) Transcript() *model.Transcript {
	return m.transcript
}

// Waiting reports whether a reply request is in flight.
func (m Model) Waiting() bool {
	return m.state == StateWaiting
}

// setNotice replaces the transient status-bar notice.
func (m *Model) setNotice(s string) {
	m.notice = s
}
