/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"sort"
	"sync"

	"goscrapbook/internal/domain"
	"goscrapbook/internal/textlayout"
	"goscrapbook/internal/vector"
)

// Layout constants in canvas pixels.
const (
	TextPadding        = 8.0
	TextMaxWidth       = 300.0
	FallbackFontSize   = 16.0
	ActiveScale        = 1.02
	ActiveStickerScale = 1.05
	PlaceholderSize    = 100.0
	EditingZBoost      = 1000

	ControlRadius   = 12.0
	ControlSpacing  = 30.0
	ControlGap      = 16.0 // between the rotate handle and the cluster
	HandleRadius    = 8.0
	RotateHandleOff = 24.0 // above the top edge, in element space
	TextCornerR     = 4.0
)

var (
	OutlineColor     = vector.Color{R: 0x63, G: 0x66, B: 0xf1, A: 0xff}
	PlaceholderColor = vector.Color{R: 0xf3, G: 0xf4, B: 0xf6, A: 0xff}
	outlineDash      = []float64{6, 4}
)

// Renderer turns elements into views. Fonts measures text boxes; nil uses
// the bundled Go fonts.
type Renderer struct {
	Fonts textlayout.Provider
}

func New(fonts textlayout.Provider) *Renderer { return &Renderer{Fonts: fonts} }

var defaultRenderer = sync.OnceValue(func() *Renderer {
	return New(textlayout.OTProvider{Lib: textlayout.DefaultLibrary()})
})

// Render uses a renderer backed by the bundled Go fonts.
func Render(el domain.Element, isActive, isEditing bool) View {
	return defaultRenderer().Render(el, isActive, isEditing)
}

// RenderAll renders elems in paint order (ascending z, ties keep slice order).
func (r *Renderer) RenderAll(elems []domain.Element, activeID, editingID string) []View {
	views := make([]View, 0, len(elems))
	for _, el := range elems {
		views = append(views, r.Render(el, el.ID == activeID && activeID != "", el.ID == editingID && editingID != ""))
	}
	sort.SliceStable(views, func(i, j int) bool { return views[i].Z < views[j].Z })
	return views
}

// Render maps one element and its interaction state to a view.
func (r *Renderer) Render(el domain.Element, isActive, isEditing bool) View {
	v := View{
		ElementID:   el.ID,
		ElementKind: el.Kind(),
		Z:           el.ZIndex,
		Scale:       1,
		Active:      isActive,
		Editing:     isEditing,
	}
	switch d := el.Data.(type) {
	case domain.TextData:
		r.text(&v, el, d)
	case domain.ImageData:
		v.Kind = ViewImage
		v.Box = vector.R(el.X, el.Y, orDefault(d.Width, domain.DefaultImageWidth), orDefault(d.Height, domain.DefaultImageHeight))
		v.Rotation = d.Rotation
		v.Src, v.Alt = d.Src, orDefaultStr(d.Alt, "Scrapbook image")
		v.Style.Filters = normalizeFilters(d.Filters)
	case domain.StickerData:
		v.Kind = ViewSticker
		v.Box = vector.R(el.X, el.Y, orDefault(d.Width, domain.DefaultStickerSize), orDefault(d.Height, domain.DefaultStickerSize))
		v.Rotation = d.Rotation
		v.Src, v.Alt = d.Src, orDefaultStr(d.Alt, "Sticker")
	default:
		placeholder(&v, el)
	}

	editable := el.Editable()
	if isEditing && editable {
		v.Z += EditingZBoost
	}
	if isActive && !isEditing {
		v.Scale = ActiveScale
		if v.Kind == ViewSticker {
			v.Scale = ActiveStickerScale
		}
		v.Outline = vector.Stroke{Color: OutlineColor, Width: 2, Dash: outlineDash, Enabled: true}
	}

	c := v.Box.Center()
	v.Transform = vector.RotateAbout(c, v.Rotation).Mul(vector.ScaleAbout(c, v.Scale))
	fill := vector.Fill{Color: v.Style.Background, Enabled: v.Style.Background.A > 0}
	if v.Kind == ViewText {
		v.Body = vector.NewRoundedRect(v.Box, TextCornerR, fill, v.Outline)
	} else {
		v.Body = vector.NewRect(v.Box, fill, v.Outline)
	}
	v.Body.SetTransform(v.Transform)

	if isActive && !isEditing && editable {
		r.affordances(&v)
	}
	return v
}

func (r *Renderer) text(v *View, el domain.Element, d domain.TextData) {
	v.Kind = ViewText
	size := orDefault(d.FontSize, FallbackFontSize)
	spec := textlayout.SpecFor(d.FontFamily, size, d.FontWeight, d.FontStyle)
	v.Style = Style{
		FontFamily: d.FontFamily,
		FontSize:   size,
		Weight:     spec.Weight,
		Italic:     spec.Italic,
		Color:      vector.ParseHexOr(d.Color, vector.Black),
		Background: vector.ParseHexOr(d.BackgroundColor, vector.Transparent),
		Align:      d.TextAlign,
	}
	if v.Style.Align == "" {
		v.Style.Align = domain.AlignLeft
	}
	fonts := r.Fonts
	if fonts == nil {
		fonts = defaultRenderer().Fonts
	}
	box, _ := textlayout.NewWordWrap(fonts).Layout([]textlayout.Span{{Text: d.Content, Font: spec}}, TextMaxWidth-2*TextPadding)
	for _, ln := range box.Lines {
		v.Lines = append(v.Lines, ln.Text())
	}
	v.Box = vector.R(el.X, el.Y, box.Width+2*TextPadding, box.Height+2*TextPadding)
}

func placeholder(v *View, el domain.Element) {
	v.Kind = ViewPlaceholder
	w, h := PlaceholderSize, PlaceholderSize
	v.Label = "Unknown Element"
	switch d := el.Data.(type) {
	case domain.DrawingData:
		w, h = orDefault(d.Width, w), orDefault(d.Height, h)
		v.Label = "Drawing"
	case domain.AudioData:
		v.Label = orDefaultStr(d.Title, "Audio")
	}
	v.Box = vector.R(el.X, el.Y, w, h)
	v.Style.Background = PlaceholderColor
	v.Style.Color = vector.Black
}

// affordances lays out the control cluster above the transformed bounds and
// the two handles in element space so they follow rotation.
func (r *Renderer) affordances(v *View) {
	local := v.Box
	top := vector.Pt{X: local.X + local.W/2, Y: local.Y - RotateHandleOff}
	rh := v.Transform.Apply(top)
	v.RotateHandle = &Handle{Center: rh, Radius: HandleRadius, Node: vector.NewCircle(rh, HandleRadius, vector.Fill{Color: vector.White, Enabled: true}, vector.Stroke{Color: OutlineColor, Width: 2, Enabled: true})}
	sh := v.Transform.Apply(local.Max())
	v.ScaleHandle = &Handle{Center: sh, Radius: HandleRadius, Node: vector.NewCircle(sh, HandleRadius, vector.Fill{Color: vector.White, Enabled: true}, vector.Stroke{Color: OutlineColor, Width: 2, Enabled: true})}

	b := v.Body.Bounds()
	y := min(b.Y, rh.Y-HandleRadius) - ControlGap - ControlRadius
	n := float64(len(ControlOrder))
	x0 := b.X + b.W/2 - (n-1)*ControlSpacing/2
	for i, k := range ControlOrder {
		c := vector.Pt{X: x0 + float64(i)*ControlSpacing, Y: y}
		fill := vector.Fill{Color: vector.White, Enabled: true}
		if k == ControlDelete {
			fill.Color = vector.Color{R: 0xef, G: 0x44, B: 0x44, A: 0xff}
		}
		v.Controls = append(v.Controls, Control{Kind: k, Center: c, Radius: ControlRadius, Node: vector.NewCircle(c, ControlRadius, fill, vector.Stroke{})})
	}
	mc := v.Box.Center()
	v.MoveIcon = &mc
}

func normalizeFilters(f *domain.Filters) domain.Filters {
	out := domain.Filters{Brightness: 100, Contrast: 100, Saturation: 100}
	if f == nil {
		return out
	}
	out.Brightness = orDefault(f.Brightness, 100)
	out.Contrast = orDefault(f.Contrast, 100)
	out.Saturation = orDefault(f.Saturation, 100)
	return out
}

func orDefault(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}

func orDefaultStr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
