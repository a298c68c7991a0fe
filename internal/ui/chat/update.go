// Copyright (c) 2025 The Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/parleychat/parley/internal/model"
	"github.com/parleychat/parley/internal/openai"
	"github.com/parleychat/parley/internal/prompt"
	"github.com/parleychat/parley/internal/segment"
	"github.com/parleychat/parley/internal/ui/styles"
)

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// requestReplyCmd runs the completion request off the event loop. All
// inputs are captured before the closure so the goroutine never touches
// the model.
func requestReplyCmd(client *openai.Client, messages []openai.ChatMessage, started time.Time, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		raw, err := client.Complete(ctx, messages)
		if err != nil {
			return ReplyErrMsg{Err: err}
		}
		return ReplyMsg{
			Raw:         raw,
			ElapsedSecs: int(time.Since(started).Seconds()),
		}
	}
}

// listModelsCmd fetches the model listing. Failures arrive as an empty
// list; the status bar explains.
func listModelsCmd(client *openai.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return ModelsMsg{Models: client.ListModels(ctx)}
	}
}

// tickCmd drives the waiting counter once per second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		if m.state != StateWaiting {
			return m, nil
		}
		m.elapsed = int(time.Since(m.waitStart).Seconds())
		return m, tickCmd()

	case spinner.TickMsg:
		if m.state != StateWaiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case ReplyMsg:
		return m.handleReply(msg), nil

	case ReplyErrMsg:
		m.state = StateReady
		m.err = msg.Err
		return m, nil

	case ModelsMsg:
		return m.handleModels(msg), nil

	case ConfigReloadedMsg:
		return m.handleConfigReload(msg), nil
	}

	return m.updateChildren(msg)
}

func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height

	vpHeight := msg.Height - chromeHeight
	if vpHeight < 3 {
		vpHeight = 3
	}
	if !m.ready {
		m.viewport = viewport.New(msg.Width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = vpHeight
	}
	m.input.Width = msg.Width - 4
	m.help.Width = msg.Width
	m.refreshViewport()
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Dismiss):
		switch {
		case m.err != nil:
			m.err = nil
		case m.showHelp:
			m.showHelp = false
		case m.showStickers:
			m.showStickers = false
		case m.pendingQuote != nil:
			m.pendingQuote = nil
			m.setNotice("quote cleared")
		}
		return m, nil

	case key.Matches(msg, m.keys.Reply):
		return m.requestReply()

	case key.Matches(msg, m.keys.Submit):
		return m.handleSubmit()

	case key.Matches(msg, m.keys.ScrollUp):
		m.viewport.LineUp(1)
		return m, nil
	case key.Matches(msg, m.keys.ScrollDn):
		m.viewport.LineDown(1)
		return m, nil
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	return m.updateChildren(msg)
}

func (m Model) updateChildren(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// =============================================================================
// SENDING AND REPLYING
// =============================================================================

func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	content := strings.TrimSpace(m.input.Value())
	if content == "" {
		return m, nil
	}

	if strings.HasPrefix(content, "/") {
		return m.handleCommand(content)
	}

	msg := model.NewTextMessage(model.SenderUser, content)
	if m.pendingQuote != nil {
		msg.Quote = m.pendingQuote
		m.pendingQuote = nil
	}
	m.transcript.Append(msg)
	m.input.Reset()
	m.setNotice("")
	m.refreshViewport()
	m.viewport.GotoBottom()
	return m, nil
}

// requestReply starts a completion request. Refused while one is already
// in flight.
func (m Model) requestReply() (tea.Model, tea.Cmd) {
	if m.state == StateWaiting {
		m.setNotice("already waiting for a reply")
		return m, nil
	}
	if !m.client.Configured() {
		m.err = openai.ErrNotConfigured
		return m, nil
	}

	system := prompt.Compose(m.cfg, m.mode, m.stickers, m.nowFn)
	window := m.transcript.Window(m.cfg.Chat.HistoryWindow)
	messages := prompt.Request(system, window, m.stickers)

	m.state = StateWaiting
	m.waitStart = time.Now()
	m.elapsed = 0
	m.err = nil

	timeout := time.Duration(m.cfg.API.TimeoutSecs) * time.Second
	return m, tea.Batch(
		m.spin.Tick,
		tickCmd(),
		requestReplyCmd(m.client, messages, m.waitStart, timeout),
	)
}

func (m Model) handleReply(msg ReplyMsg) Model {
	m.state = StateReady

	for _, reply := range segment.Messages(msg.Raw, m.stickers, msg.ElapsedSecs) {
		m.transcript.Append(reply)
	}

	m.refreshViewport()
	m.viewport.GotoBottom()
	return m
}

func (m Model) handleModels(msg ModelsMsg) Model {
	if len(msg.Models) == 0 {
		m.setNotice("no models found (check endpoint and key)")
		return m
	}

	m.setNotice("models: " + strings.Join(msg.Models, ", "))
	if m.client.Model() == "" {
		m.client.SetModel(msg.Models[0])
		m.cfg.API.Model = msg.Models[0]
		m.setNotice("model set to " + msg.Models[0])
	}
	return m
}

func (m Model) handleConfigReload(msg ConfigReloadedMsg) Model {
	m.cfg = msg.Cfg
	m.mode = msg.Cfg.Mode()
	m.theme = styles.NewTheme(msg.Cfg)
	m.client = openai.NewClient(openai.ClientConfig{
		BaseURL: msg.Cfg.API.BaseURL,
		APIKey:  msg.Cfg.API.APIKey,
		Model:   msg.Cfg.API.Model,
		Timeout: time.Duration(msg.Cfg.API.TimeoutSecs) * time.Second,
	})
	m.setNotice("configuration reloaded")
	m.refreshViewport()
	return m
}
