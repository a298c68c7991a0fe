// Copyright (c) 2025 The Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/parleychat/parley/internal/ui/components"
)

// chromeHeight is the number of terminal rows taken by everything that is
// not the message viewport: header (2 with border), input (2 with border),
// status bar (1).
const chromeHeight = 5

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "starting…"
	}

	header := components.Header{
		Theme:       m.theme,
		CharName:    m.cfg.Char.Name,
		Mode:        m.mode,
		Waiting:     m.state == StateWaiting,
		ElapsedSecs: m.elapsed,
		Width:       m.width,
	}.Render()

	body := m.viewport.View()

	var overlays []string
	if m.showHelp {
		overlays = append(overlays, m.renderHelp())
	}
	if m.showStickers {
		overlays = append(overlays, components.StickerPanel{
			Theme:    m.theme,
			Stickers: m.stickers,
			Width:    m.width,
		}.Render())
	}
	if m.err != nil {
		overlays = append(overlays, components.ErrorBox{
			Theme: m.theme,
			Err:   m.err,
			Width: m.width,
		}.Render())
	}

	input := m.renderInput()

	// An idle status bar shows the key bindings instead of nothing.
	notice := m.notice
	if notice == "" {
		notice = m.help.ShortHelpView(m.keys.ShortHelp())
	}

	status := components.StatusBar{
		Theme:    m.theme,
		Model:    m.client.Model(),
		Messages: m.transcript.Len(),
		Notice:   notice,
		Width:    m.width,
	}.Render()

	sections := []string{header, body}
	sections = append(sections, overlays...)
	sections = append(sections, input, status)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHelp() string {
	commands := "/mode /voice /sticker /stickers /recall /edit /quote /unquote " +
		"/delete /clear /models /model /preset /time /save /quit"

	body := m.theme.PanelTitle.Render("Keys") + "\n" +
		m.help.FullHelpView(m.keys.FullHelp()) + "\n\n" +
		m.theme.PanelTitle.Render("Commands") + "\n" +
		m.theme.PanelMuted.Render(commands)

	width := m.width - 4
	if width < 24 {
		width = 24
	}
	return m.theme.PanelBox.Width(width).Render(body)
}

func (m Model) renderInput() string {
	var b strings.Builder

	if m.pendingQuote != nil {
		b.WriteString(m.theme.QuoteBlock.Render(
			"replying to " + m.pendingQuote.SenderName + ": " + m.pendingQuote.Content))
		b.WriteString("\n")
	}

	prompt := m.theme.InputPrompt.Render("> ")
	if m.state == StateWaiting {
		prompt = m.spin.View() + " "
	}
	b.WriteString(prompt)
	b.WriteString(m.input.View())

	return m.theme.InputContainer.Width(m.width).Render(b.String())
}

// refreshViewport rebuilds the rendered transcript. Called whenever the
// transcript, mode, theme, or width changes.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	if m.transcript.Len() == 0 {
		m.viewport.SetContent(m.theme.SystemNotice.Render(
			"No messages yet. Type to chat, ctrl+g to wait for a reply."))
		return
	}

	blocks := make([]string, 0, m.transcript.Len())
	for _, msg := range m.transcript.Messages() {
		blocks = append(blocks, components.MessageView{
			Theme:    m.theme,
			Msg:      msg,
			Stickers: m.stickers,
			Mode:     m.mode,
			UserName: m.cfg.User.Name,
			CharName: m.cfg.Char.Name,
			Width:    m.viewport.Width,
		}.Render())
	}

	m.viewport.SetContent(strings.Join(blocks, "\n"))
}
