/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package editors holds the per-kind element editors. Each works on a copy
// of an element and returns a full replacement from Commit; fields the user
// did not touch are echoed back unchanged.
package editors

import (
	"fmt"
	"strconv"
	"strings"

	"goscrapbook/internal/domain"
	"goscrapbook/internal/vector"
)

// TextDraft holds unsaved edits to a text element. Fields the user never
// touches are committed exactly as they were loaded.
type TextDraft struct {
	el   domain.Element
	data domain.TextData
}

// NewTextDraft reports false when el is not a text element.
func NewTextDraft(el domain.Element) (*TextDraft, bool) {
	d, ok := el.Data.(domain.TextData)
	if !ok {
		return nil, false
	}
	return &TextDraft{el: el, data: d}, true
}

func (t *TextDraft) Content() string { return t.data.Content }

// FontSize returns the size shown in the editor, falling back to the default
// when the element has none.
func (t *TextDraft) FontSize() float64 {
	if t.data.FontSize <= 0 {
		return domain.DefaultFontSize
	}
	return t.data.FontSize
}

// FontFamily is the family shown in the editor; unset shows the default.
func (t *TextDraft) FontFamily() string {
	if t.data.FontFamily == "" {
		return domain.DefaultFontFamily
	}
	return t.data.FontFamily
}

// FontPreset is the preset name matching the current family, if any.
func (t *TextDraft) FontPreset() string {
	if p, ok := domain.FontPresetByFamily(t.FontFamily()); ok {
		return p.Name
	}
	return ""
}

func (t *TextDraft) Color() string {
	if t.data.Color == "" {
		return domain.DefaultTextColor
	}
	return t.data.Color
}

func (t *TextDraft) SetContent(s string) { t.data.Content = s }

// SetFontSize clamps px to the supported range.
func (t *TextDraft) SetFontSize(px float64) {
	t.data.FontSize = min(max(px, domain.MinFontSize), domain.MaxFontSize)
}

// SetFontSizeText parses a size typed into a form field.
func (t *TextDraft) SetFontSizeText(s string) error {
	px, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("font size %q: %w", s, err)
	}
	t.SetFontSize(px)
	return nil
}

// SetFontPreset selects a family by preset name.
func (t *TextDraft) SetFontPreset(name string) bool {
	p, ok := domain.FontPresetByName(name)
	if ok {
		t.data.FontFamily = p.Family
	}
	return ok
}

func (t *TextDraft) SetFontFamily(family string) { t.data.FontFamily = family }

// SetColor accepts #rgb, #rrggbb or #rrggbbaa and keeps the user's spelling.
func (t *TextDraft) SetColor(hex string) error {
	if _, err := vector.ParseHex(hex); err != nil {
		return err
	}
	t.data.Color = strings.TrimSpace(hex)
	return nil
}

// Align is the alignment shown in the editor; unset shows left.
func (t *TextDraft) Align() domain.TextAlign {
	if t.data.TextAlign == "" {
		return domain.AlignLeft
	}
	return t.data.TextAlign
}

func (t *TextDraft) SetAlign(a domain.TextAlign) { t.data.TextAlign = a }

// Commit returns the replacement element.
func (t *TextDraft) Commit() domain.Element {
	el := t.el
	el.Data = t.data
	return el
}

// StickerChoice is one sticker offered by the sticker editor.
type StickerChoice struct {
	Name string
	Src  string
}

// StickerChoices is the sticker picker's catalogue.
var StickerChoices = []StickerChoice{
	{Name: "Heart", Src: domain.DefaultStickerSrc},
	{Name: "Star", Src: "https://cdn-icons-png.flaticon.com/512/742/742751.png"},
	{Name: "Balloon", Src: "https://cdn-icons-png.flaticon.com/512/1791/1791330.png"},
	{Name: "Gift", Src: "https://cdn-icons-png.flaticon.com/512/1791/1791337.png"},
}

// StickerDraft edits a sticker element.
type StickerDraft struct {
	el   domain.Element
	data domain.StickerData
}

func NewStickerDraft(el domain.Element) (*StickerDraft, bool) {
	d, ok := el.Data.(domain.StickerData)
	if !ok {
		return nil, false
	}
	return &StickerDraft{el: el, data: d}, true
}

func (s *StickerDraft) Src() string       { return s.data.Src }
func (s *StickerDraft) Alt() string       { return s.data.Alt }
func (s *StickerDraft) SetSrc(src string) { s.data.Src = src }
func (s *StickerDraft) SetAlt(alt string) { s.data.Alt = alt }

// Choose picks a catalogue sticker by name and updates the alt text with it.
func (s *StickerDraft) Choose(name string) bool {
	for _, c := range StickerChoices {
		if c.Name == name {
			s.data.Src, s.data.Alt = c.Src, c.Name+" sticker"
			return true
		}
	}
	return false
}

func (s *StickerDraft) Commit() domain.Element {
	el := s.el
	el.Data = s.data
	return el
}
