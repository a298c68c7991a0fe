// Copyright (c) 2025 The Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package prompt

import (
	"fmt"

	"github.com/parleychat/parley/internal/model"
	"github.com/parleychat/parley/internal/openai"
)

// History projects transcript messages into the model-visible chat history.
// Rewrite priority per message: recall notice first, then sticker or voice
// notes, then the quote prefix on top of whatever survived. The quote prefix
// is skipped for recalled messages.
func History(messages []*model.Message, stickers *model.Collection) []openai.ChatMessage {
	history := make([]openai.ChatMessage, 0, len(messages))

	for _, m := range messages {
		content := m.Content

		switch {
		case m.Recalled:
			who := "you"
			if m.Sender == model.SenderUser {
				who = "the user"
			}
			content = fmt.Sprintf("[System notice: %s recalled a message. The recalled content was: %q. You may ignore it or react to the recall.]", who, m.Content)
		case m.Kind == model.KindSticker:
			name := "unknown sticker"
			if stickers != nil {
				name = stickers.NameForURL(m.Content)
			}
			content = fmt.Sprintf("[Sent a sticker: %s]", name)
		case m.Kind == model.KindVoice:
			content = fmt.Sprintf("[Sent a voice message: %q]", m.Content)
		}

		if m.Quote != nil && !m.Recalled {
			content = fmt.Sprintf("> Quoting %s: %s\n\n%s", m.Quote.SenderName, m.Quote.Content, content)
		}

		role := openai.RoleAssistant
		if m.Sender == model.SenderUser {
			role = openai.RoleUser
		}
		history = append(history, openai.ChatMessage{Role: role, Content: content})
	}

	return history
}

// Request assembles the full message list for a completion: the composed
// system instruction followed by the projected history.
func Request(system string, messages []*model.Message, stickers *model.Collection) []openai.ChatMessage {
	req := make([]openai.ChatMessage, 0, len(messages)+1)
	req = append(req, openai.ChatMessage{Role: openai.RoleSystem, Content: system})
	req = append(req, History(messages, stickers)...)
	return req
}
