// Copyright (c) 2025 The Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/parleychat/parley/internal/model"
	"github.com/parleychat/parley/internal/ui/styles"
	"github.com/parleychat/parley/internal/util"
)

// StickerPanel renders the sticker browser: index, name, AI availability,
// and a truncated URL per row.
type StickerPanel struct {
	Theme    *styles.Theme
	Stickers *model.Collection
	Width    int
}

// Render returns the boxed sticker list.
func (p StickerPanel) Render() string {
	var b strings.Builder
	b.WriteString(p.Theme.PanelTitle.Render("Stickers"))
	b.WriteString("\n")

	if p.Stickers == nil || p.Stickers.Len() == 0 {
		b.WriteString(p.Theme.PanelMuted.Render("none yet · /sticker import <name> <url> to add"))
	} else {
		urlWidth := p.Width - 30
		if urlWidth < 10 {
			urlWidth = 10
		}
		for i, s := range p.Stickers.Stickers() {
			ai := p.Theme.PanelMuted.Render("hidden from AI")
			if s.AllowAI {
				ai = p.Theme.PanelItem.Render("AI may send")
			}
			// Pad by display columns; CJK names are wider than their
			// rune count.
			name := util.TruncateRunes(s.Name, 12)
			pad := 13 - util.StringWidth(name)
			if pad < 1 {
				pad = 1
			}
			row := fmt.Sprintf("%2d. %s%s%s  %s",
				i+1,
				name,
				strings.Repeat(" ", pad),
				ai,
				p.Theme.PanelMuted.Render(util.TruncateWidth(s.URL, urlWidth)))
			b.WriteString(row)
			b.WriteString("\n")
		}
		b.WriteString(p.Theme.PanelMuted.Render("/sticker <name> to send · /sticker allow|deny|rm <n>"))
	}

	width := p.Width - 4
	if width < 24 {
		width = 24
	}
	return p.Theme.PanelBox.Width(width).Render(b.String())
}
