// Copyright (c) 2025 The Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/parleychat/parley/internal/model"
	"github.com/parleychat/parley/internal/openai"
	"github.com/parleychat/parley/internal/ui/styles"
)

func testTheme() *styles.Theme {
	return styles.NewTheme(nil)
}

func TestHeaderRender(t *testing.T) {
	h := Header{
		Theme:    testTheme(),
		CharName: "Mira",
		Mode:     model.ModeOnline,
		Width:    60,
	}
	out := h.Render()
	assert.Contains(t, out, "Mira")
	assert.Contains(t, out, "ONLINE")
	assert.NotContains(t, out, "typing")

	h.Waiting = true
	h.ElapsedSecs = 4
	h.Mode = model.ModeOffline
	out = h.Render()
	assert.Contains(t, out, "typing")
	assert.Contains(t, out, "4s")
	assert.Contains(t, out, "OFFLINE")
}

func TestStatusBarRender(t *testing.T) {
	s := StatusBar{Theme: testTheme(), Model: "gpt-test", Messages: 3, Width: 80}
	out := s.Render()
	assert.Contains(t, out, "gpt-test")
	assert.Contains(t, out, "3 messages")

	s.Model = ""
	s.Notice = "models refreshed"
	out = s.Render()
	assert.Contains(t, out, "no model")
	assert.Contains(t, out, "models refreshed")
}

func TestErrorBoxRender(t *testing.T) {
	e := ErrorBox{Theme: testTheme(), Width: 60}
	assert.Equal(t, "", e.Render())

	e.Err = errors.New("boom")
	out := e.Render()
	assert.Contains(t, out, "Error")
	assert.Contains(t, out, "boom")

	e.Err = openai.ErrNotConfigured
	assert.Contains(t, e.Render(), "Not Configured")
}

func TestStickerPanelRender(t *testing.T) {
	p := StickerPanel{Theme: testTheme(), Stickers: model.NewCollection(), Width: 60}
	assert.Contains(t, p.Render(), "none yet")

	p.Stickers.Add("grin", "https://example.com/grin.png", true)
	p.Stickers.Add("wave", "https://example.com/wave.png", false)
	out := p.Render()
	assert.Contains(t, out, "grin")
	assert.Contains(t, out, "AI may send")
	assert.Contains(t, out, "hidden from AI")

	// Name columns pad by display width, so a double-width CJK name gets
	// fewer pad spaces than its rune count suggests.
	p.Stickers.Add("笑脸", "https://example.com/xiaolian.png", true)
	assert.Contains(t, p.Render(), "笑脸"+strings.Repeat(" ", 9))
}

func TestMessageViewText(t *testing.T) {
	m := model.NewTextMessage(model.SenderChar, "hello there")
	v := MessageView{
		Theme: testTheme(), Msg: m, Mode: model.ModeOnline,
		UserName: "Alex", CharName: "Mira", Width: 80,
	}
	out := v.Render()
	assert.Contains(t, out, "hello there")
	// Online character bubbles carry the sender name.
	assert.Contains(t, out, "Mira")
}

func TestMessageViewOfflineMeta(t *testing.T) {
	m := model.NewTextMessage(model.SenderChar, "a considered reply")
	m.HasThinking = true
	m.ThinkingSecs = 12

	v := MessageView{
		Theme: testTheme(), Msg: m, Mode: model.ModeOffline,
		UserName: "Alex", CharName: "Mira", Width: 80,
	}
	out := v.Render()
	assert.Contains(t, out, "words")
	assert.Contains(t, out, "thought 12s")
}

func TestMessageViewVoice(t *testing.T) {
	m := model.NewVoiceMessage(model.SenderChar, "good night")
	v := MessageView{
		Theme: testTheme(), Msg: m, Mode: model.ModeOnline,
		UserName: "Alex", CharName: "Mira", Width: 80,
	}
	out := v.Render()
	assert.Contains(t, out, "voice")
	assert.Contains(t, out, "good night")
	assert.Contains(t, out, `5"`)
}

func TestMessageViewSticker(t *testing.T) {
	stickers := model.NewCollection()
	stickers.Add("grin", "https://example.com/grin.png", true)

	m := model.NewStickerMessage(model.SenderUser, "https://example.com/grin.png")
	v := MessageView{
		Theme: testTheme(), Msg: m, Stickers: stickers, Mode: model.ModeOnline,
		UserName: "Alex", CharName: "Mira", Width: 80,
	}
	assert.Contains(t, v.Render(), "grin")

	gone := model.NewStickerMessage(model.SenderUser, "https://example.com/gone.png")
	v.Msg = gone
	assert.Contains(t, v.Render(), "unknown sticker")
}

func TestMessageViewRecalled(t *testing.T) {
	m := model.NewTextMessage(model.SenderUser, "oops")
	m.Recalled = true
	v := MessageView{
		Theme: testTheme(), Msg: m, Mode: model.ModeOnline,
		UserName: "Alex", CharName: "Mira", Width: 80,
	}
	out := v.Render()
	assert.Contains(t, out, "Alex recalled a message")
	assert.NotContains(t, out, "oops")
}

func TestMessageViewQuote(t *testing.T) {
	src := model.NewTextMessage(model.SenderChar, "see you at eight")
	m := model.NewTextMessage(model.SenderUser, "works for me")
	m.Quote = src.QuoteSnapshot("Mira")

	v := MessageView{
		Theme: testTheme(), Msg: m, Mode: model.ModeOnline,
		UserName: "Alex", CharName: "Mira", Width: 80,
	}
	out := v.Render()
	assert.Contains(t, out, "see you at eight")
	assert.Contains(t, out, "works for me")
}
