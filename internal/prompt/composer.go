// Copyright (c) 2025 The Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package prompt

import (
	"fmt"
	"strings"
	"time"

	"github.com/parleychat/parley/internal/config"
	"github.com/parleychat/parley/internal/model"
)

// beijing is the fixed clock zone for the real-time section.
var beijing = time.FixedZone("UTC+8", 8*60*60)

// Compose builds the full system instruction for a reply request. The
// sections are appended in a fixed order; there is no length cap. now is
// injectable so tests can pin the clock.
func Compose(cfg *config.Config, mode model.Mode, stickers *model.Collection, now func() time.Time) string {
	if now == nil {
		now = time.Now
	}

	var b strings.Builder

	core := strings.ReplaceAll(CorePrompt, "{{char}}", cfg.Char.Name)
	core = strings.ReplaceAll(core, "{{user}}", cfg.User.Name)
	b.WriteString(core)

	b.WriteString("\n\n[World Book / Background]\n")
	b.WriteString(cfg.World.WorldBook)
	b.WriteString(fmt.Sprintf("\n\n[%s's Persona]\n%s", cfg.Char.Name, cfg.Char.Persona))
	b.WriteString(fmt.Sprintf("\n\n[%s's Persona]\n%s", cfg.User.Name, cfg.User.Persona))
	b.WriteString("\n\n[Global Banned Words]\n")
	b.WriteString(strings.Join(cfg.World.BannedWords, ", "))

	if mode == model.ModeOffline {
		composeOffline(&b, &cfg.Offline)
	} else {
		composeOnline(&b, cfg, stickers, now)
	}

	return b.String()
}

func composeOffline(b *strings.Builder, off *config.OfflineConfig) {
	b.WriteString("\n\n")
	b.WriteString(OfflinePrompt)

	b.WriteString("\n\n[Offline Mode: Strictly Enforced Standards]")
	if len(off.BannedWords) > 0 {
		b.WriteString("\n1. Absolutely prohibited words (replace with other wording): ")
		b.WriteString(strings.Join(off.BannedWords, ", "))
	}
	if off.MinWords > 0 || off.MaxWords > 0 {
		// A zero bound is presented as the widest permissible value.
		min := off.MinWords
		max := off.MaxWords
		if max == 0 {
			max = 9999
		}
		b.WriteString(fmt.Sprintf("\n2. Reply length limit: stay strictly between %d and %d words.", min, max))
	}

	var active []config.Preset
	for _, p := range off.Presets {
		if p.Enabled {
			active = append(active, p)
		}
	}
	if len(active) > 0 {
		b.WriteString("\n\n[Preset Directives In Force]\nWork through each entry and reflect it in the reply; none may be glossed over:\n")
		for _, p := range active {
			b.WriteString(fmt.Sprintf("- [%s]: %s\n", p.Name, p.Content))
		}
	}
}

func composeOnline(b *strings.Builder, cfg *config.Config, stickers *model.Collection, now func() time.Time) {
	b.WriteString("\n\n")
	b.WriteString(OnlinePrompt)

	if cfg.Chat.RealTimeClock {
		ts := now().In(beijing).Format("2006-01-02 15:04:05")
		b.WriteString(fmt.Sprintf("\n\n[Current Time (UTC+8)]\nIt is now: %s\nAdjust the conversation to the time of day (for instance morning or bedtime greetings).", ts))
	}

	if stickers != nil {
		manifest := stickers.Manifest()
		if len(manifest) > 0 {
			b.WriteString("\n\n[Available Stickers]\nUse stickers when the moment and the persona call for it, to keep the chat lively.\nFormat: [sticker: sticker name]\n\nAvailable stickers (the name is the meaning):\n")
			for i, name := range manifest {
				if i > 0 {
					b.WriteString("\n")
				}
				b.WriteString("- ")
				b.WriteString(name)
			}
		}
	}
}
