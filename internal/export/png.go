/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export writes scrapbook pages to files: one PNG per page, a
// multi-page PDF or a CBZ album. Pages are drawn by the same compositor as
// the editor canvas, without selection affordances.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"

	"goscrapbook/internal/domain"
	"goscrapbook/internal/render"
	"goscrapbook/internal/textlayout"
	"goscrapbook/internal/vector"
)

// Options controls how pages are rasterized.
type Options struct {
	Page   vector.Size // canvas size elements are laid out against; default 800×600
	Scale  float64     // output pixels per canvas pixel; default 1
	Pages  []int       // zero-based; empty exports all pages
	Fonts  textlayout.Provider
	Images render.ImageSource
}

// ErrNoPages is returned when the page selection is empty.
var ErrNoPages = errors.New("nothing to export")

func (o Options) withDefaults() Options {
	if o.Page.W <= 0 || o.Page.H <= 0 {
		o.Page = vector.Size{W: 800, H: 600}
	}
	if o.Scale <= 0 {
		o.Scale = 1
	}
	if o.Fonts == nil {
		o.Fonts = textlayout.BasicProvider{}
	}
	return o
}

// RenderPage draws p at the requested scale.
func RenderPage(p domain.Page, opt Options) *image.NRGBA {
	opt = opt.withDefaults()
	img := image.NewNRGBA(image.Rect(0, 0, int(opt.Page.W), int(opt.Page.H)))
	bg, _ := domain.BackgroundFor(p.Background)
	views := render.New(opt.Fonts).RenderAll(p.Elements, "", "")
	comp := &render.Compositor{Fonts: opt.Fonts, Images: opt.Images}
	comp.Draw(img, vector.ParseHexOr(bg.Color, vector.White), views)
	if opt.Scale == 1 {
		return img
	}
	w := int(math.Round(opt.Page.W * opt.Scale))
	h := int(math.Round(opt.Page.H * opt.Scale))
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(out, out.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return out
}

// ExportPNGPages writes page-<n>.png for each selected page under outDir and
// returns the written paths.
func ExportPNGPages(book domain.Scrapbook, outDir string, opt Options) ([]string, error) {
	pages := pageIndexes(len(book.Pages), opt.Pages)
	if len(pages) == 0 {
		return nil, ErrNoPages
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure out dir: %w", err)
	}
	var written []string
	for _, pidx := range pages {
		img := RenderPage(book.Pages[pidx], opt)
		name := filepath.Join(outDir, fmt.Sprintf("page-%d.png", pidx+1))
		f, err := os.Create(name)
		if err != nil {
			return written, fmt.Errorf("create png: %w", err)
		}
		if err := png.Encode(f, img); err != nil {
			_ = f.Close()
			return written, fmt.Errorf("encode png: %w", err)
		}
		if err := f.Close(); err != nil {
			return written, fmt.Errorf("close png: %w", err)
		}
		written = append(written, name)
	}
	return written, nil
}

// pageIndexes resolves the requested pages, dropping out-of-range indexes.
func pageIndexes(total int, specific []int) []int {
	if len(specific) == 0 {
		out := make([]int, total)
		for i := range out {
			out[i] = i
		}
		return out
	}
	var out []int
	for _, i := range specific {
		if i >= 0 && i < total {
			out = append(out, i)
		}
	}
	return out
}

// Sources lists the distinct image and sticker sources in book, so remote
// pictures can be fetched before rendering.
func Sources(book domain.Scrapbook) []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range book.Pages {
		for _, el := range p.Elements {
			var src string
			switch d := el.Data.(type) {
			case domain.ImageData:
				src = d.Src
			case domain.StickerData:
				src = d.Src
			}
			if src != "" && !seen[src] {
				seen[src] = true
				out = append(out, src)
			}
		}
	}
	return out
}
