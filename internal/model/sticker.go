// Copyright (c) 2025 The Parley Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// =============================================================================
// STICKER
// =============================================================================

// Sticker is a named image the user or the character can send. AllowAI
// controls whether the name is offered to the model in the online prompt.
type Sticker struct {
	ID      string
	Name    string
	URL     string
	AllowAI bool
}

// Collection holds the sticker set in insertion order. Names are not
// required to be unique; lookups return the first match.
type Collection struct {
	stickers []*Sticker
}

// NewCollection creates an empty sticker collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Stickers returns the stickers in insertion order.
func (c *Collection) Stickers() []*Sticker {
	return c.stickers
}

// Len returns the number of stickers.
func (c *Collection) Len() int {
	return len(c.stickers)
}

// Add appends a sticker with a fresh ID.
func (c *Collection) Add(name, url string, allowAI bool) *Sticker {
	s := &Sticker{
		ID:      uuid.New().String(),
		Name:    name,
		URL:     url,
		AllowAI: allowAI,
	}
	c.stickers = append(c.stickers, s)
	return s
}

// importLineRe splits a line into an optional name prefix and a URL. The URL
// starts at the first http:// or https:// and runs to the end of the line.
var importLineRe = regexp.MustCompile(`^(.*?)(https?://.*)$`)

// ImportLines parses one sticker per line in "name URL" form. Lines without
// a URL are skipped. A missing name defaults to "unnamed". Imported stickers
// are available to the model. Returns the number imported.
func (c *Collection) ImportLines(text string) int {
	imported := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := importLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if name == "" {
			name = "unnamed"
		}
		c.Add(name, strings.TrimSpace(m[2]), true)
		imported++
	}
	return imported
}

// FindByName returns the first sticker with the given name (exact,
// case-sensitive), or nil.
func (c *Collection) FindByName(name string) *Sticker {
	for _, s := range c.stickers {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// FindByURL returns the first sticker with the given URL, or nil.
func (c *Collection) FindByURL(url string) *Sticker {
	for _, s := range c.stickers {
		if s.URL == url {
			return s
		}
	}
	return nil
}

// NameForURL resolves a sticker URL back to its display name, falling back
// to "unknown sticker" for URLs no longer in the collection.
func (c *Collection) NameForURL(url string) string {
	if s := c.FindByURL(url); s != nil {
		return s.Name
	}
	return "unknown sticker"
}

// Manifest returns the names of stickers the model may use, in order.
func (c *Collection) Manifest() []string {
	var names []string
	for _, s := range c.stickers {
		if s.AllowAI {
			names = append(names, s.Name)
		}
	}
	return names
}

// SetAllowAI toggles model access for a sticker by ID.
func (c *Collection) SetAllowAI(id string, allow bool) bool {
	for _, s := range c.stickers {
		if s.ID == id {
			s.AllowAI = allow
			return true
		}
	}
	return false
}

// Remove deletes a sticker by ID. Messages that already sent it keep their
// URL content and will render as "unknown sticker" in the history.
func (c *Collection) Remove(id string) bool {
	for i, s := range c.stickers {
		if s.ID == id {
			c.stickers = append(c.stickers[:i], c.stickers[i+1:]...)
			return true
		}
	}
	return false
}
