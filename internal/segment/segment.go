// Copyright (c) 2025 The Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package segment splits a raw model reply into chat bubbles.
//
// The online prompt instructs the model to separate bubbles with the |||
// marker and to express stickers and voice messages as whole-bubble tags.
// This package parses that wire format back into messages.
package segment

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/parleychat/parley/internal/model"
)

// =============================================================================
// SEGMENT TYPE
// =============================================================================

// Segment is one parsed bubble of a reply.
type Segment struct {
	// Index is the position in the original delimiter split, before empty
	// segments were dropped. The thinking timer attaches to index zero only.
	Index int

	Kind    model.Kind
	Content string

	// WordCount is the rune count for plain text bubbles. Tag bubbles and
	// unrecognized-tag fallbacks carry zero.
	WordCount int
}

var (
	// Runs of three or more pipes collapse to a single delimiter before
	// splitting, tolerating models that stack them.
	delimiterRe = regexp.MustCompile(`\|\|\|+`)

	// Tags must span the entire trimmed segment to count.
	stickerTagRe = regexp.MustCompile(`(?i)^\[sticker:\s*(.*?)\]$`)
	voiceTagRe   = regexp.MustCompile(`(?i)^\[voice:\s*(.*?)\]$`)
)

// =============================================================================
// SPLITTING
// =============================================================================

// Split parses a raw reply into segments. Empty segments are dropped but
// the surviving ones keep their original split index. A sticker tag whose
// name is not in the collection falls back to a text segment holding the
// verbatim tag.
func Split(raw string, stickers *model.Collection) []Segment {
	clean := delimiterRe.ReplaceAllString(raw, "|||")
	parts := strings.Split(clean, "|||")

	var segments []Segment
	for i, seg := range parts {
		part := strings.TrimSpace(seg)
		if part == "" {
			continue
		}

		if m := stickerTagRe.FindStringSubmatch(part); m != nil {
			name := m[1]
			var sticker *model.Sticker
			if stickers != nil {
				sticker = stickers.FindByName(name)
			}
			if sticker != nil {
				segments = append(segments, Segment{Index: i, Kind: model.KindSticker, Content: sticker.URL})
			} else {
				// Unknown sticker name: surface the tag as text so the
				// user sees what the model tried to send.
				segments = append(segments, Segment{Index: i, Kind: model.KindText, Content: part})
			}
			continue
		}

		if m := voiceTagRe.FindStringSubmatch(part); m != nil {
			segments = append(segments, Segment{Index: i, Kind: model.KindVoice, Content: m[1]})
			continue
		}

		segments = append(segments, Segment{
			Index:     i,
			Kind:      model.KindText,
			Content:   part,
			WordCount: utf8.RuneCountInString(part),
		})
	}

	return segments
}

// =============================================================================
// MESSAGE CONSTRUCTION
// =============================================================================

// Messages converts a raw reply into character messages. thinkingSecs is
// the elapsed waiting time; it attaches only to the segment at original
// split index zero, so a reply that opens with a delimiter shows no
// thinking time at all.
func Messages(raw string, stickers *model.Collection, thinkingSecs int) []*model.Message {
	segments := Split(raw, stickers)

	msgs := make([]*model.Message, 0, len(segments))
	for _, seg := range segments {
		m := model.NewMessage(model.SenderChar, seg.Kind, seg.Content)
		m.WordCount = seg.WordCount
		if seg.Index == 0 {
			m.ThinkingSecs = thinkingSecs
			m.HasThinking = true
		}
		msgs = append(msgs, m)
	}
	return msgs
}
