/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goscrapbook/internal/domain"
)

func TestTextDraftRoundTripEchoesUntouchedFields(t *testing.T) {
	el := domain.Element{ID: "t1", X: 12, Y: 34, ZIndex: 5, Data: domain.TextData{Content: "hi", FontSize: 20, Color: "#000", TextAlign: domain.AlignRight, FontStyle: "italic"}}
	d, ok := NewTextDraft(el)
	require.True(t, ok)

	d.SetContent("bye")
	got := d.Commit()

	assert.Equal(t, domain.Element{ID: "t1", X: 12, Y: 34, ZIndex: 5, Data: domain.TextData{Content: "bye", FontSize: 20, Color: "#000", TextAlign: domain.AlignRight, FontStyle: "italic"}}, got)
	assert.Equal(t, "hi", el.Data.(domain.TextData).Content, "the source element is not mutated")
}

func TestTextDraftDisplayDefaultsAreNotWritten(t *testing.T) {
	d, _ := NewTextDraft(domain.Element{ID: "t", Data: domain.TextData{Content: "x"}})
	assert.Equal(t, domain.DefaultFontSize, d.FontSize())
	assert.Equal(t, domain.DefaultFontFamily, d.FontFamily())
	assert.Equal(t, "Handwritten", d.FontPreset())
	assert.Equal(t, domain.DefaultTextColor, d.Color())
	assert.Equal(t, domain.AlignLeft, d.Align())
	assert.Equal(t, domain.TextData{Content: "x"}, d.Commit().Data)
}

func TestTextDraftSetters(t *testing.T) {
	d, _ := NewTextDraft(domain.Element{ID: "t", Data: domain.TextData{}})
	d.SetFontSize(5)
	assert.Equal(t, 10.0, d.FontSize())
	d.SetFontSize(100)
	assert.Equal(t, 72.0, d.FontSize())
	require.NoError(t, d.SetFontSizeText(" 24 "))
	assert.Equal(t, 24.0, d.FontSize())
	assert.Error(t, d.SetFontSizeText("big"))

	assert.True(t, d.SetFontPreset("Classic"))
	assert.Equal(t, "Georgia, serif", d.FontFamily())
	assert.False(t, d.SetFontPreset("Comic"))
	d.SetFontFamily("Courier")
	assert.Equal(t, "", d.FontPreset())

	require.NoError(t, d.SetColor("#765a3e"))
	assert.Error(t, d.SetColor("red-ish"))
	assert.Equal(t, "#765a3e", d.Color())
	d.SetAlign(domain.AlignCenter)
	assert.Equal(t, domain.AlignCenter, d.Commit().Data.(domain.TextData).TextAlign)
}

func TestDraftsRejectOtherKinds(t *testing.T) {
	st := domain.Element{ID: "s", Data: domain.StickerData{}}
	tx := domain.Element{ID: "t", Data: domain.TextData{}}
	_, ok := NewTextDraft(st)
	assert.False(t, ok)
	_, ok = NewImageDraft(tx)
	assert.False(t, ok)
	_, ok = NewStickerDraft(tx)
	assert.False(t, ok)
}

func TestStickerDraft(t *testing.T) {
	el := domain.Element{ID: "s", ZIndex: 2, Data: domain.StickerData{Src: "/a.png", Width: 90, Height: 70, Rotation: 15}}
	d, ok := NewStickerDraft(el)
	require.True(t, ok)
	require.True(t, d.Choose("Star"))
	assert.False(t, d.Choose("Unicorn"))
	got := d.Commit()
	sd := got.Data.(domain.StickerData)
	assert.Equal(t, StickerChoices[1].Src, sd.Src)
	assert.Equal(t, "Star sticker", sd.Alt)
	assert.Equal(t, 90.0, sd.Width)
	assert.Equal(t, 15.0, sd.Rotation)
	assert.Equal(t, 2, got.ZIndex)

	d.SetSrc("/b.png")
	d.SetAlt("b")
	assert.Equal(t, "/b.png", d.Src())
	assert.Equal(t, "b", d.Alt())
}
