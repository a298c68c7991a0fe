// Copyright (c) 2025 The Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"errors"

	"github.com/parleychat/parley/internal/util"
)

// =============================================================================
// TRANSCRIPT ERRORS
// =============================================================================

var (
	ErrMessageNotFound = errors.New("message not found")
	ErrNotEditable     = errors.New("message cannot be edited")
	ErrAlreadyRecalled = errors.New("message already recalled")
)

// =============================================================================
// TRANSCRIPT
// =============================================================================

// Transcript is the ordered, append-only list of conversation messages.
// Messages are appended and updated in place but never reordered. It is not
// safe for concurrent use; the UI event loop is its only writer.
type Transcript struct {
	messages []*Message
}

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{}
}

// Append adds a message to the end of the transcript.
func (t *Transcript) Append(m *Message) {
	t.messages = append(t.messages, m)
}

// Messages returns the backing slice in transcript order. Callers must not
// reorder it.
func (t *Transcript) Messages() []*Message {
	return t.messages
}

// Len returns the number of messages, recalled ones included.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Get returns the message with the given ID.
func (t *Transcript) Get(id string) (*Message, error) {
	for _, m := range t.messages {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, ErrMessageNotFound
}

// Last returns the most recent message, or nil if the transcript is empty.
func (t *Transcript) Last() *Message {
	if len(t.messages) == 0 {
		return nil
	}
	return t.messages[len(t.messages)-1]
}

// LastFrom returns the most recent non-recalled message from the given
// sender, or nil.
func (t *Transcript) LastFrom(sender Sender) *Message {
	for i := len(t.messages) - 1; i >= 0; i-- {
		if t.messages[i].Sender == sender && !t.messages[i].Recalled {
			return t.messages[i]
		}
	}
	return nil
}

// Recall marks a message as recalled. The content is retained so the
// history projection can still describe what was withdrawn.
func (t *Transcript) Recall(id string) error {
	m, err := t.Get(id)
	if err != nil {
		return err
	}
	if m.Recalled {
		return ErrAlreadyRecalled
	}
	m.Recalled = true
	return nil
}

// Edit replaces the content of a text or voice message and refreshes the
// word count for text messages.
func (t *Transcript) Edit(id, content string) error {
	m, err := t.Get(id)
	if err != nil {
		return err
	}
	if !m.IsEditable() {
		return ErrNotEditable
	}
	m.Content = content
	if m.Kind == KindText {
		m.WordCount = util.RuneLen(content)
	}
	return nil
}

// Remove deletes a message outright. Quote snapshots pointing at it are
// unaffected since they were denormalized at quote time.
func (t *Transcript) Remove(id string) error {
	for i, m := range t.messages {
		if m.ID == id {
			t.messages = append(t.messages[:i], t.messages[i+1:]...)
			return nil
		}
	}
	return ErrMessageNotFound
}

// Clear removes all messages.
func (t *Transcript) Clear() {
	t.messages = nil
}

// Window returns the last n messages, or all of them when n <= 0 or exceeds
// the transcript length.
func (t *Transcript) Window(n int) []*Message {
	if n <= 0 || n >= len(t.messages) {
		return t.messages
	}
	return t.messages[len(t.messages)-n:]
}
