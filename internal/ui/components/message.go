// Copyright (c) 2025 The Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/parleychat/parley/internal/model"
	"github.com/parleychat/parley/internal/ui/styles"
)

// MessageView renders one transcript message as a chat bubble with its
// metadata. Online mode shows sender names on character bubbles; offline
// mode shows timestamp, word count, and thinking seconds under each bubble.
type MessageView struct {
	Theme    *styles.Theme
	Msg      *model.Message
	Stickers *model.Collection
	Mode     model.Mode
	UserName string
	CharName string
	Width    int
}

// Render returns the rendered message block.
func (v MessageView) Render() string {
	if v.Msg.Recalled {
		return v.renderRecalled()
	}

	bubbleWidth := v.Width * 2 / 3
	if bubbleWidth < 20 {
		bubbleWidth = 20
	}

	var body string
	switch v.Msg.Kind {
	case model.KindSticker:
		name := "unknown sticker"
		if v.Stickers != nil {
			name = v.Stickers.NameForURL(v.Msg.Content)
		}
		body = v.Theme.StickerBadge.Render(fmt.Sprintf("[sticker] %s", name))
	case model.KindVoice:
		body = v.Theme.VoiceBadge.Render(fmt.Sprintf("[voice · %d\"]", v.Msg.VoiceDuration())) +
			" " + v.Msg.Content
	default:
		body = v.Msg.Content
	}

	var block string
	if v.Msg.Sender == model.SenderUser {
		block = v.Theme.UserBubble.MaxWidth(bubbleWidth).Render(body)
	} else {
		block = v.Theme.CharBubble.MaxWidth(bubbleWidth).Render(body)
	}

	if v.Msg.Quote != nil {
		quote := v.Theme.QuoteBlock.MaxWidth(bubbleWidth).Render(
			fmt.Sprintf("%s: %s", v.Msg.Quote.SenderName, v.Msg.Quote.Content))
		block = lipgloss.JoinVertical(lipgloss.Left, quote, block)
	}

	if v.Mode == model.ModeOnline && v.Msg.Sender == model.SenderChar {
		block = lipgloss.JoinVertical(lipgloss.Left, v.Theme.SenderName.Render(v.CharName), block)
	}

	if meta := v.metaLine(); meta != "" {
		block = lipgloss.JoinVertical(lipgloss.Left, block, v.Theme.MessageMeta.Render(meta))
	}

	// User messages hug the right edge, character messages the left.
	align := lipgloss.Left
	if v.Msg.Sender == model.SenderUser {
		align = lipgloss.Right
	}
	return lipgloss.PlaceHorizontal(v.Width, align, block)
}

func (v MessageView) renderRecalled() string {
	who := v.CharName
	if v.Msg.Sender == model.SenderUser {
		who = v.UserName
	}
	line := v.Theme.Recalled.Render(fmt.Sprintf("— %s recalled a message —", who))
	return lipgloss.PlaceHorizontal(v.Width, lipgloss.Center, line)
}

// metaLine builds the small print under a bubble.
func (v MessageView) metaLine() string {
	switch v.Mode {
	case model.ModeOffline:
		meta := v.Msg.Timestamp.Format("15:04")
		if v.Msg.Kind == model.KindText {
			meta += fmt.Sprintf(" · %d words", v.Msg.WordCount)
		}
		if v.Msg.HasThinking {
			meta += fmt.Sprintf(" · thought %ds", v.Msg.ThinkingSecs)
		}
		return meta
	default:
		if v.Msg.HasThinking {
			return fmt.Sprintf("thought for %ds", v.Msg.ThinkingSecs)
		}
		return ""
	}
}
