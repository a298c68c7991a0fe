// Copyright (c) 2025 The Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model defines the core chat data types: messages, the transcript,
// and the sticker collection.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/parleychat/parley/internal/util"
)

// =============================================================================
// ENUMS
// =============================================================================

// Sender identifies which party authored a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderChar Sender = "char"
)

// Kind identifies the payload type of a message.
type Kind string

const (
	KindText    Kind = "text"
	KindSticker Kind = "sticker"
	KindVoice   Kind = "voice"
)

// Mode selects the conversation persona: the phone-like online chat or the
// face-to-face offline scene.
type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

// Valid reports whether m is a recognized mode.
func (m Mode) Valid() bool {
	return m == ModeOnline || m == ModeOffline
}

// =============================================================================
// MESSAGE
// =============================================================================

// QuoteInfo is a denormalized snapshot of a quoted message. It is captured
// when the quoting message is created and never updated afterwards, so later
// edits or recalls of the source do not rewrite it.
type QuoteInfo struct {
	MessageID  string
	Content    string
	SenderName string
}

// Message is a single transcript entry. Content holds the text for text
// messages, the sticker URL for sticker messages, and the transcript text
// for voice messages.
type Message struct {
	ID        string
	Sender    Sender
	Kind      Kind
	Content   string
	Timestamp time.Time

	// WordCount is the rune count of text content, zero for other kinds.
	WordCount int

	// ThinkingSecs is how long the reply was waited for. Only the first
	// message produced from a reply carries it.
	ThinkingSecs int
	HasThinking  bool

	// Recalled marks a message withdrawn by its author. Content is retained.
	Recalled bool

	Quote *QuoteInfo
}

// NewMessage creates a message with a fresh ID and the current time.
func NewMessage(sender Sender, kind Kind, content string) *Message {
	return &Message{
		ID:        uuid.New().String(),
		Sender:    sender,
		Kind:      kind,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewTextMessage creates a text message and fills in its word count.
func NewTextMessage(sender Sender, content string) *Message {
	m := NewMessage(sender, KindText, content)
	m.WordCount = util.RuneLen(content)
	return m
}

// NewStickerMessage creates a sticker message whose content is the sticker URL.
func NewStickerMessage(sender Sender, url string) *Message {
	return NewMessage(sender, KindSticker, url)
}

// NewVoiceMessage creates a voice message whose content is the transcript.
func NewVoiceMessage(sender Sender, transcript string) *Message {
	return NewMessage(sender, KindVoice, transcript)
}

// VoiceDuration returns the displayed pseudo-duration of a voice message in
// seconds: half a second per rune of transcript, rounded up, capped at 60.
func (m *Message) VoiceDuration() int {
	secs := (util.RuneLen(m.Content) + 1) / 2
	if secs > 60 {
		secs = 60
	}
	return secs
}

// IsEditable reports whether the message content may be edited. Sticker
// messages and recalled messages cannot be edited.
func (m *Message) IsEditable() bool {
	return !m.Recalled && (m.Kind == KindText || m.Kind == KindVoice)
}

// QuoteSnapshot builds the quote record for replying to this message.
// Sticker messages snapshot as a placeholder instead of the raw URL.
func (m *Message) QuoteSnapshot(senderName string) *QuoteInfo {
	content := m.Content
	if m.Kind == KindSticker {
		content = "[sticker]"
	}
	return &QuoteInfo{
		MessageID:  m.ID,
		Content:    content,
		SenderName: senderName,
	}
}
