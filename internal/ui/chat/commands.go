// Copyright (c) 2025 The Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/parleychat/parley/internal/config"
	"github.com/parleychat/parley/internal/model"
)

// =============================================================================
// COMMAND HANDLER REGISTRY
// =============================================================================

// CommandHandler handles one slash command. It receives the model and the
// command arguments and returns the updated model and an optional command.
type CommandHandler func(m Model, args []string) (tea.Model, tea.Cmd)

var commandHandlers = map[string]CommandHandler{
	// Help & meta
	"help": handleHelpCommand,
	"h":    handleHelpCommand,
	"?":    handleHelpCommand,
	"quit": handleQuitCommand,
	"q":    handleQuitCommand,
	"exit": handleQuitCommand,

	// Conversation
	"clear":   handleClearCommand,
	"mode":    handleModeCommand,
	"voice":   handleVoiceCommand,
	"recall":  handleRecallCommand,
	"edit":    handleEditCommand,
	"quote":   handleQuoteCommand,
	"reply":   handleQuoteCommand,
	"unquote": handleUnquoteCommand,
	"delete":  handleDeleteCommand,
	"del":     handleDeleteCommand,

	// Stickers
	"sticker":  handleStickerCommand,
	"stickers": handleStickersCommand,

	// Offline presets
	"preset":  handlePresetCommand,
	"presets": handlePresetCommand,

	// Settings
	"models": handleModelsCommand,
	"model":  handleModelCommand,
	"time":   handleTimeCommand,
	"save":   handleSaveCommand,
}

// handleCommand dispatches a "/command arg..." input line.
func (m Model) handleCommand(content string) (tea.Model, tea.Cmd) {
	m.input.Reset()

	parts := strings.Fields(content)
	if len(parts) == 0 {
		return m, nil
	}

	name := strings.ToLower(strings.TrimPrefix(parts[0], "/"))
	handler, ok := commandHandlers[name]
	if !ok {
		m.setNotice(fmt.Sprintf("unknown command /%s (try /help)", name))
		return m, nil
	}
	return handler(m, parts[1:])
}

// =============================================================================
// TARGET RESOLUTION
// =============================================================================

// resolveTarget picks the message a command operates on: an explicit
// 1-based transcript position if the first argument is a number, otherwise
// the fallback.
func (m Model) resolveTarget(args []string, fallback *model.Message) (*model.Message, []string, error) {
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil {
			msgs := m.transcript.Messages()
			if n < 1 || n > len(msgs) {
				return nil, args, fmt.Errorf("no message #%d (transcript has %d)", n, len(msgs))
			}
			return msgs[n-1], args[1:], nil
		}
	}
	if fallback == nil {
		return nil, args, fmt.Errorf("no matching message")
	}
	return fallback, args, nil
}

// =============================================================================
// HELP & META
// =============================================================================

func handleHelpCommand(m Model, _ []string) (tea.Model, tea.Cmd) {
	m.showHelp = !m.showHelp
	return m, nil
}

func handleQuitCommand(m Model, _ []string) (tea.Model, tea.Cmd) {
	return m, tea.Quit
}

func handleClearCommand(m Model, _ []string) (tea.Model, tea.Cmd) {
	m.transcript.Clear()
	m.pendingQuote = nil
	m.setNotice("transcript cleared")
	m.refreshViewport()
	return m, nil
}

// =============================================================================
// CONVERSATION
// =============================================================================

func handleModeCommand(m Model, args []string) (tea.Model, tea.Cmd) {
	var next model.Mode
	if len(args) == 0 {
		// Bare /mode toggles.
		next = model.ModeOffline
		if m.mode == model.ModeOffline {
			next = model.ModeOnline
		}
	} else {
		next = model.Mode(strings.ToLower(args[0]))
		if !next.Valid() {
			m.setNotice("usage: /mode [online|offline]")
			return m, nil
		}
	}

	m.mode = next
	m.cfg.Chat.Mode = string(next)
	m.setNotice(fmt.Sprintf("switched to %s mode", next))
	m.refreshViewport()
	return m, nil
}

func handleVoiceCommand(m Model, args []string) (tea.Model, tea.Cmd) {
	if m.mode == model.ModeOffline {
		m.setNotice("voice messages are not available in offline mode")
		return m, nil
	}
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		m.setNotice("usage: /voice <text>")
		return m, nil
	}

	m.transcript.Append(model.NewVoiceMessage(model.SenderUser, text))
	m.refreshViewport()
	m.viewport.GotoBottom()
	return m, nil
}

func handleRecallCommand(m Model, args []string) (tea.Model, tea.Cmd) {
	// Recall is a phone-chat affordance; there is no taking words back
	// face to face.
	if m.mode == model.ModeOffline {
		m.setNotice("recall is only available in online mode")
		return m, nil
	}

	target, _, err := m.resolveTarget(args, m.transcript.LastFrom(model.SenderUser))
	if err != nil {
		m.setNotice(err.Error())
		return m, nil
	}
	if err := m.transcript.Recall(target.ID); err != nil {
		m.setNotice(err.Error())
		return m, nil
	}
	m.setNotice("message recalled")
	m.refreshViewport()
	return m, nil
}

func handleEditCommand(m Model, args []string) (tea.Model, tea.Cmd) {
	target, rest, err := m.resolveTarget(args, m.transcript.LastFrom(model.SenderUser))
	if err != nil {
		m.setNotice(err.Error())
		return m, nil
	}

	text := strings.TrimSpace(strings.Join(rest, " "))
	if text == "" {
		m.setNotice("usage: /edit [n] <new text>")
		return m, nil
	}
	if err := m.transcript.Edit(target.ID, text); err != nil {
		m.setNotice(err.Error())
		return m, nil
	}
	m.setNotice("message edited")
	m.refreshViewport()
	return m, nil
}

func handleQuoteCommand(m Model, args []string) (tea.Model, tea.Cmd) {
	target, _, err := m.resolveTarget(args, m.transcript.LastFrom(model.SenderChar))
	if err != nil {
		m.setNotice(err.Error())
		return m, nil
	}
	if target.Recalled {
		m.setNotice("cannot quote a recalled message")
		return m, nil
	}

	name := m.cfg.Char.Name
	if target.Sender == model.SenderUser {
		name = m.cfg.User.Name
	}
	m.pendingQuote = target.QuoteSnapshot(name)
	m.setNotice(fmt.Sprintf("quoting %s (esc to cancel)", name))
	return m, nil
}

func handleUnquoteCommand(m Model, _ []string) (tea.Model, tea.Cmd) {
	if m.pendingQuote == nil {
		m.setNotice("nothing quoted")
		return m, nil
	}
	m.pendingQuote = nil
	m.setNotice("quote cleared")
	return m, nil
}

func handleDeleteCommand(m Model, args []string) (tea.Model, tea.Cmd) {
	target, _, err := m.resolveTarget(args, m.transcript.Last())
	if err != nil {
		m.setNotice(err.Error())
		return m, nil
	}
	if err := m.transcript.Remove(target.ID); err != nil {
		m.setNotice(err.Error())
		return m, nil
	}
	m.setNotice("message deleted")
	m.refreshViewport()
	return m, nil
}

// =============================================================================
// STICKERS
// =============================================================================

func handleStickersCommand(m Model, _ []string) (tea.Model, tea.Cmd) {
	m.showStickers = !m.showStickers
	return m, nil
}

func handleStickerCommand(m Model, args []string) (tea.Model, tea.Cmd) {
	if len(args) == 0 {
		m.showStickers = !m.showStickers
		return m, nil
	}

	switch args[0] {
	case "import":
		if len(args) < 2 {
			m.setNotice("usage: /sticker import [name] <url>")
			return m, nil
		}
		line := strings.Join(args[1:], " ")
		if n := m.stickers.ImportLines(line); n > 0 {
			m.setNotice(fmt.Sprintf("imported %d sticker(s)", n))
		} else {
			m.setNotice("no URL found in import line")
		}
		return m, nil

	case "allow", "deny":
		idx, err := stickerIndex(m.stickers, args[1:])
		if err != nil {
			m.setNotice(err.Error())
			return m, nil
		}
		s := m.stickers.Stickers()[idx]
		m.stickers.SetAllowAI(s.ID, args[0] == "allow")
		m.setNotice(fmt.Sprintf("sticker %q updated", s.Name))
		return m, nil

	case "rm", "remove":
		idx, err := stickerIndex(m.stickers, args[1:])
		if err != nil {
			m.setNotice(err.Error())
			return m, nil
		}
		s := m.stickers.Stickers()[idx]
		m.stickers.Remove(s.ID)
		m.setNotice(fmt.Sprintf("sticker %q removed", s.Name))
		return m, nil
	}

	// Anything else is a sticker name to send.
	name := strings.Join(args, " ")
	sticker := m.stickers.FindByName(name)
	if sticker == nil {
		m.setNotice(fmt.Sprintf("no sticker named %q", name))
		return m, nil
	}
	m.transcript.Append(model.NewStickerMessage(model.SenderUser, sticker.URL))
	m.refreshViewport()
	m.viewport.GotoBottom()
	return m, nil
}

func stickerIndex(c *model.Collection, args []string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("sticker number required (see /stickers)")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > c.Len() {
		return 0, fmt.Errorf("no sticker #%s", args[0])
	}
	return n - 1, nil
}

// =============================================================================
// OFFLINE PRESETS
// =============================================================================

func handlePresetCommand(m Model, args []string) (tea.Model, tea.Cmd) {
	if len(args) == 0 || args[0] == "list" {
		if len(m.cfg.Offline.Presets) == 0 {
			m.setNotice("no presets · /preset add <name>: <content>")
			return m, nil
		}
		var parts []string
		for i, p := range m.cfg.Offline.Presets {
			mark := "off"
			if p.Enabled {
				mark = "on"
			}
			parts = append(parts, fmt.Sprintf("%d:%s(%s)", i+1, p.Name, mark))
		}
		m.setNotice("presets: " + strings.Join(parts, " "))
		return m, nil
	}

	switch args[0] {
	case "add":
		rest := strings.Join(args[1:], " ")
		name, content, found := strings.Cut(rest, ":")
		name = strings.TrimSpace(name)
		content = strings.TrimSpace(content)
		if !found || name == "" || content == "" {
			m.setNotice("usage: /preset add <name>: <content>")
			return m, nil
		}
		m.cfg.AddPreset(name, content)
		m.setNotice(fmt.Sprintf("preset %q added", name))
		return m, nil

	case "toggle", "rm", "remove":
		if len(args) < 2 {
			m.setNotice("preset number required (see /preset list)")
			return m, nil
		}
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 || n > len(m.cfg.Offline.Presets) {
			m.setNotice(fmt.Sprintf("no preset #%s", args[1]))
			return m, nil
		}
		if args[0] == "toggle" {
			m.cfg.TogglePreset(n - 1)
			m.setNotice("preset toggled")
		} else {
			m.cfg.RemovePreset(n - 1)
			m.setNotice("preset removed")
		}
		return m, nil
	}

	m.setNotice("usage: /preset [list|add|toggle|rm]")
	return m, nil
}

// =============================================================================
// SETTINGS
// =============================================================================

func handleModelsCommand(m Model, _ []string) (tea.Model, tea.Cmd) {
	m.setNotice("fetching models…")
	return m, listModelsCmd(m.client)
}

func handleModelCommand(m Model, args []string) (tea.Model, tea.Cmd) {
	if len(args) == 0 {
		m.setNotice("current model: " + m.client.Model())
		return m, nil
	}
	name := args[0]
	m.client.SetModel(name)
	m.cfg.API.Model = name
	m.setNotice("model set to " + name)
	return m, nil
}

func handleTimeCommand(m Model, _ []string) (tea.Model, tea.Cmd) {
	m.cfg.Chat.RealTimeClock = !m.cfg.Chat.RealTimeClock
	if m.cfg.Chat.RealTimeClock {
		m.setNotice("real-time clock on")
	} else {
		m.setNotice("real-time clock off")
	}
	return m, nil
}

func handleSaveCommand(m Model, _ []string) (tea.Model, tea.Cmd) {
	if err := config.Save(m.cfg); err != nil {
		m.err = err
		return m, nil
	}
	m.setNotice("configuration saved")
	return m, nil
}
