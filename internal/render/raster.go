/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	"goscrapbook/internal/domain"
	"goscrapbook/internal/textlayout"
	"goscrapbook/internal/vector"
)

// ImageSource resolves an element's src to pixels. Sources that are not
// (yet) available report false and are drawn as a placeholder.
type ImageSource interface {
	Image(src string) (image.Image, bool)
}

// Compositor paints views into a raster. It is not safe for concurrent use
// because font faces keep scratch buffers.
type Compositor struct {
	Fonts  textlayout.Provider
	Images ImageSource
}

var controlGlyph = map[ControlKind]string{
	ControlEdit:      "E",
	ControlRotate:    "R",
	ControlScaleUp:   "+",
	ControlScaleDown: "-",
	ControlDelete:    "x",
}

// Draw fills dst with bg and paints views in slice order.
func (c *Compositor) Draw(dst draw.Image, bg vector.Color, views []View) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg.RGBA()), image.Point{}, draw.Src)
	for _, v := range views {
		c.drawView(dst, v)
	}
}

func (c *Compositor) fonts() textlayout.Provider {
	if c.Fonts == nil {
		return defaultRenderer().Fonts
	}
	return c.Fonts
}

func (c *Compositor) drawView(dst draw.Image, v View) {
	if body := c.body(v); body != nil {
		m := v.Transform.Mul(vector.Translate(v.Box.X, v.Box.Y))
		aff := f64.Aff3{m.A, m.C, m.E, m.B, m.D, m.F}
		draw.ApproxBiLinear.Transform(dst, aff, body, body.Bounds(), draw.Over, nil)
	}
	if v.Outline.Enabled {
		outline(dst, v)
	}
	if v.MoveIcon != nil {
		p := *v.MoveIcon
		col := OutlineColor.RGBA()
		line(dst, vector.Pt{X: p.X - 6, Y: p.Y}, vector.Pt{X: p.X + 6, Y: p.Y}, 2, col)
		line(dst, vector.Pt{X: p.X, Y: p.Y - 6}, vector.Pt{X: p.X, Y: p.Y + 6}, 2, col)
	}
	for _, h := range []*Handle{v.RotateHandle, v.ScaleHandle} {
		if h == nil {
			continue
		}
		disk(dst, h.Center, h.Radius, OutlineColor.RGBA())
		disk(dst, h.Center, h.Radius-2, vector.White.RGBA())
	}
	for _, ctl := range v.Controls {
		fill, ink := vector.White.RGBA(), color.NRGBA{R: 0x37, G: 0x41, B: 0x51, A: 0xff}
		if ctl.Kind == ControlDelete {
			fill, ink = color.NRGBA{R: 0xef, G: 0x44, B: 0x44, A: 0xff}, vector.White.RGBA()
		}
		disk(dst, ctl.Center, ctl.Radius, fill)
		centered(dst, basicfont.Face7x13, controlGlyph[ctl.Kind], ctl.Center, ink)
	}
}

// body rasterizes the untransformed box.
func (c *Compositor) body(v View) *image.NRGBA {
	w, h := int(math.Ceil(v.Box.W)), int(math.Ceil(v.Box.H))
	if w <= 0 || h <= 0 {
		return nil
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	mid := vector.Pt{X: float64(w) / 2, Y: float64(h) / 2}
	switch v.Kind {
	case ViewText:
		if v.Style.Background.A > 0 {
			draw.Draw(img, img.Bounds(), image.NewUniform(v.Style.Background.RGBA()), image.Point{}, draw.Src)
		}
		c.text(img, v)
	case ViewImage, ViewSticker:
		src, ok := (image.Image)(nil), false
		if c.Images != nil {
			src, ok = c.Images.Image(v.Src)
		}
		if !ok {
			draw.Draw(img, img.Bounds(), image.NewUniform(PlaceholderColor.RGBA()), image.Point{}, draw.Src)
			centered(img, basicfont.Face7x13, v.Alt, mid, color.NRGBA{R: 0x6b, G: 0x72, B: 0x80, A: 0xff})
			break
		}
		draw.CatmullRom.Scale(img, img.Bounds(), src, src.Bounds(), draw.Over, nil)
		if v.Kind == ViewImage {
			applyFilters(img, v.Style.Filters)
		}
	default:
		draw.Draw(img, img.Bounds(), image.NewUniform(v.Style.Background.RGBA()), image.Point{}, draw.Src)
		centered(img, basicfont.Face7x13, v.Label, mid, v.Style.Color.RGBA())
	}
	return img
}

func (c *Compositor) text(img *image.NRGBA, v View) {
	spec := textlayout.FontSpec{
		Family: textlayout.FirstFamily(v.Style.FontFamily),
		Size:   v.Style.FontSize,
		Weight: v.Style.Weight,
		Italic: v.Style.Italic,
	}
	face, met := c.fonts().Resolve(spec)
	d := font.Drawer{Dst: img, Src: image.NewUniform(v.Style.Color.RGBA()), Face: face}
	w := float64(img.Bounds().Dx())
	for i, ln := range v.Lines {
		adv := float64(font.MeasureString(face, ln)) / 64
		x := TextPadding
		switch v.Style.Align {
		case domain.AlignCenter:
			x = (w - adv) / 2
		case domain.AlignRight:
			x = w - TextPadding - adv
		}
		y := TextPadding + met.Ascent + float64(i)*met.LineHeight()
		d.Dot = fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
		d.DrawString(ln)
	}
}

// centered draws s with its visual center on p.
func centered(dst draw.Image, face font.Face, s string, p vector.Pt, col color.Color) {
	if s == "" {
		return
	}
	m := face.Metrics()
	adv := font.MeasureString(face, s)
	x := fixed.Int26_6(p.X*64) - adv/2
	y := fixed.Int26_6(p.Y*64) + (m.Ascent-m.Descent)/2
	d := font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: face, Dot: fixed.Point26_6{X: x, Y: y}}
	d.DrawString(s)
}

// applyFilters applies CSS-style brightness, contrast and saturation
// percentages in place.
func applyFilters(img *image.NRGBA, f domain.Filters) {
	if f.Brightness == 100 && f.Contrast == 100 && f.Saturation == 100 {
		return
	}
	b, k, s := f.Brightness/100, f.Contrast/100, f.Saturation/100
	for i := 0; i+3 < len(img.Pix); i += 4 {
		r, g, bl := float64(img.Pix[i])/255, float64(img.Pix[i+1])/255, float64(img.Pix[i+2])/255
		r, g, bl = r*b, g*b, bl*b
		r, g, bl = (r-0.5)*k+0.5, (g-0.5)*k+0.5, (bl-0.5)*k+0.5
		lum := 0.2126*r + 0.7152*g + 0.0722*bl
		r, g, bl = lum+(r-lum)*s, lum+(g-lum)*s, lum+(bl-lum)*s
		img.Pix[i], img.Pix[i+1], img.Pix[i+2] = channel(r), channel(g), channel(bl)
	}
}

func channel(v float64) uint8 {
	return uint8(math.Round(min(max(v, 0), 1) * 255))
}

// outline strokes the transformed box with the view's dash pattern.
func outline(dst draw.Image, v View) {
	corners := []vector.Pt{
		v.Box.Min(),
		{X: v.Box.X + v.Box.W, Y: v.Box.Y},
		v.Box.Max(),
		{X: v.Box.X, Y: v.Box.Y + v.Box.H},
	}
	for i := range corners {
		corners[i] = v.Transform.Apply(corners[i])
	}
	col := v.Outline.Color.RGBA()
	dash := v.Outline.Dash
	var phase float64
	for i := range corners {
		a, b := corners[i], corners[(i+1)%len(corners)]
		if !v.Outline.Dashed() {
			line(dst, a, b, v.Outline.Width, col)
			continue
		}
		phase = dashed(dst, a, b, v.Outline.Width, dash, phase, col)
	}
}

// dashed draws a→b starting phase pixels into the dash pattern and returns
// the phase at b so the pattern runs on around corners.
func dashed(dst draw.Image, a, b vector.Pt, width float64, dash []float64, phase float64, col color.Color) float64 {
	var period float64
	for _, d := range dash {
		period += d
	}
	n := vector.Distance(a, b)
	if n == 0 || period <= 0 {
		return phase
	}
	for t := 0.0; t <= n; t += 0.5 {
		if on(math.Mod(phase+t, period), dash) {
			p := vector.Pt{X: a.X + (b.X-a.X)*t/n, Y: a.Y + (b.Y-a.Y)*t/n}
			dot(dst, p, width, col)
		}
	}
	return math.Mod(phase+n, period)
}

func on(pos float64, dash []float64) bool {
	for i, d := range dash {
		if pos < d {
			return i%2 == 0
		}
		pos -= d
	}
	return false
}

func line(dst draw.Image, a, b vector.Pt, width float64, col color.Color) {
	n := vector.Distance(a, b)
	for t := 0.0; t <= n; t += 0.5 {
		p := a
		if n > 0 {
			p = vector.Pt{X: a.X + (b.X-a.X)*t/n, Y: a.Y + (b.Y-a.Y)*t/n}
		}
		dot(dst, p, width, col)
	}
}

func dot(dst draw.Image, p vector.Pt, width float64, col color.Color) {
	h := max(width, 1) / 2
	r := image.Rect(int(math.Floor(p.X-h)), int(math.Floor(p.Y-h)), int(math.Ceil(p.X+h)), int(math.Ceil(p.Y+h)))
	draw.Draw(dst, r, image.NewUniform(col), image.Point{}, draw.Over)
}

func disk(dst draw.Image, c vector.Pt, r float64, col color.Color) {
	if r <= 0 {
		return
	}
	b := image.Rect(int(math.Floor(c.X-r)), int(math.Floor(c.Y-r)), int(math.Ceil(c.X+r)), int(math.Ceil(c.Y+r))).Intersect(dst.Bounds())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if vector.Distance(c, vector.Pt{X: float64(x) + 0.5, Y: float64(y) + 0.5}) <= r {
				dst.Set(x, y, col)
			}
		}
	}
}
