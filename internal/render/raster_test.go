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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goscrapbook/internal/domain"
	"goscrapbook/internal/textlayout"
	"goscrapbook/internal/vector"
)

type solidImages map[string]color.NRGBA

func (s solidImages) Image(src string) (image.Image, bool) {
	c, ok := s[src]
	if !ok {
		return nil, false
	}
	m := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for i := 0; i < len(m.Pix); i += 4 {
		m.Pix[i], m.Pix[i+1], m.Pix[i+2], m.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return m, true
}

var (
	red   = color.NRGBA{R: 255, A: 255}
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	paper = vector.Color{R: 0xfd, G: 0xf8, B: 0xef, A: 0xff}
)

func near(t *testing.T, want, got color.NRGBA) {
	t.Helper()
	d := func(a, b uint8) int {
		if a > b {
			return int(a - b)
		}
		return int(b - a)
	}
	if d(want.R, got.R) > 2 || d(want.G, got.G) > 2 || d(want.B, got.B) > 2 || d(want.A, got.A) > 2 {
		t.Fatalf("pixel %v, want about %v", got, want)
	}
}

func compose(t *testing.T, imgs ImageSource, views ...View) *image.NRGBA {
	t.Helper()
	dst := image.NewNRGBA(image.Rect(0, 0, 400, 300))
	c := &Compositor{Fonts: textlayout.BasicProvider{}, Images: imgs}
	c.Draw(dst, paper, views)
	return dst
}

func TestComposeFillsBackground(t *testing.T) {
	dst := compose(t, nil)
	assert.Equal(t, paper.RGBA(), dst.NRGBAAt(5, 5))
	assert.Equal(t, paper.RGBA(), dst.NRGBAAt(399, 299))
}

func TestComposeStickerPixels(t *testing.T) {
	v := basic().Render(domain.Element{ID: "s", X: 100, Y: 100, Data: domain.StickerData{Src: "/red.png", Width: 80, Height: 80}}, false, false)
	dst := compose(t, solidImages{"/red.png": red}, v)

	near(t, red, dst.NRGBAAt(140, 140))
	assert.Equal(t, paper.RGBA(), dst.NRGBAAt(90, 140))
	assert.Equal(t, paper.RGBA(), dst.NRGBAAt(190, 140))
}

func TestComposeFollowsRotation(t *testing.T) {
	// a wide strip turned 90° becomes a tall one about its center (200,150)
	v := basic().Render(domain.Element{ID: "i", X: 100, Y: 140, Data: domain.ImageData{Src: "/red.png", Width: 200, Height: 20, Rotation: 90}}, false, false)
	dst := compose(t, solidImages{"/red.png": red}, v)

	near(t, red, dst.NRGBAAt(200, 80))
	near(t, red, dst.NRGBAAt(200, 220))
	assert.Equal(t, paper.RGBA(), dst.NRGBAAt(120, 150))
	assert.Equal(t, paper.RGBA(), dst.NRGBAAt(280, 150))
}

func TestComposeMissingImageDrawsPlaceholder(t *testing.T) {
	v := basic().Render(domain.Element{ID: "i", X: 10, Y: 10, Data: domain.ImageData{Src: "/missing.png", Width: 100, Height: 80}}, false, false)
	dst := compose(t, solidImages{}, v)
	near(t, PlaceholderColor.RGBA(), dst.NRGBAAt(14, 14))
}

func TestComposePlaceholderKinds(t *testing.T) {
	v := basic().Render(domain.Element{ID: "d", X: 20, Y: 20, Data: domain.DrawingData{}}, false, false)
	dst := compose(t, nil, v)
	near(t, PlaceholderColor.RGBA(), dst.NRGBAAt(24, 24))
}

func TestComposeTextInk(t *testing.T) {
	v := basic().Render(domain.Element{ID: "t", X: 10, Y: 10, Data: domain.TextData{Content: "MMMM", Color: "#ff0000", BackgroundColor: "#ffffff"}}, false, false)
	dst := compose(t, nil, v)

	near(t, white, dst.NRGBAAt(12, 12))
	var inked bool
	b := v.Box
	for y := int(b.Y); y < int(b.Y+b.H); y++ {
		for x := int(b.X); x < int(b.X+b.W); x++ {
			p := dst.NRGBAAt(x, y)
			if p.R > 200 && p.G < 80 && p.B < 80 {
				inked = true
			}
		}
	}
	assert.True(t, inked, "expected red glyph pixels inside the box")
}

func TestComposeFilters(t *testing.T) {
	v := basic().Render(domain.Element{ID: "i", X: 0, Y: 0, Data: domain.ImageData{Src: "/white.png", Width: 100, Height: 100, Filters: &domain.Filters{Brightness: 50}}}, false, false)
	dst := compose(t, solidImages{"/white.png": white}, v)
	p := dst.NRGBAAt(50, 50)
	assert.InDelta(t, 128, int(p.R), 2)
	assert.Equal(t, p.R, p.G)
}

func TestApplyFiltersSaturation(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, red)
	applyFilters(img, domain.Filters{Brightness: 100, Contrast: 100, Saturation: 0})
	p := img.NRGBAAt(0, 0)
	assert.Equal(t, p.R, p.G)
	assert.Equal(t, p.G, p.B)
}

func TestComposeActiveAffordances(t *testing.T) {
	v := basic().Render(domain.Element{ID: "s", X: 150, Y: 150, Data: domain.StickerData{Src: "/red.png", Width: 80, Height: 80}}, true, false)
	require.Len(t, v.Controls, len(ControlOrder))
	dst := compose(t, solidImages{"/red.png": red}, v)

	del := v.Controls[len(v.Controls)-1]
	require.Equal(t, ControlDelete, del.Kind)
	// sample off the glyph, inside the disk
	assert.Equal(t, color.NRGBA{R: 0xef, G: 0x44, B: 0x44, A: 0xff}, dst.NRGBAAt(int(del.Center.X)-8, int(del.Center.Y)))
	assert.Equal(t, white, dst.NRGBAAt(int(v.ScaleHandle.Center.X), int(v.ScaleHandle.Center.Y)))
	assert.Equal(t, OutlineColor.RGBA(), dst.NRGBAAt(int(v.MoveIcon.X), int(v.MoveIcon.Y)))
}

func TestDashPattern(t *testing.T) {
	dash := []float64{6, 4}
	assert.True(t, on(0, dash))
	assert.True(t, on(5.9, dash))
	assert.False(t, on(6, dash))
	assert.False(t, on(9.9, dash))
}
