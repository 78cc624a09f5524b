/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FallbackFamily is the bundled family used when a requested family is not loaded.
const FallbackFamily = "Go"

// FontLibrary stores parsed OpenType fonts mapped by family/weight/italic and
// caches sized faces. It is safe for concurrent use.
type FontLibrary struct {
	mu    sync.Mutex
	fonts map[fontKey]*opentype.Font
	faces map[faceKey]font.Face
}

type fontKey struct {
	family string
	weight int
	italic bool
}

type faceKey struct {
	fontKey
	size float64
	dpi  float64
}

func NewFontLibrary() *FontLibrary {
	return &FontLibrary{fonts: make(map[fontKey]*opentype.Font), faces: make(map[faceKey]font.Face)}
}

// DefaultLibrary returns a library holding the Go font family in regular,
// bold, italic and bold italic, registered under FallbackFamily.
func DefaultLibrary() *FontLibrary {
	fl := NewFontLibrary()
	for _, f := range []struct {
		data   []byte
		weight int
		italic bool
	}{
		{goregular.TTF, 400, false},
		{gobold.TTF, 700, false},
		{goitalic.TTF, 400, true},
		{gobolditalic.TTF, 700, true},
	} {
		// bundled fonts always parse
		_ = fl.Register(FallbackFamily, f.weight, f.italic, f.data)
	}
	return fl
}

// LoadTTF loads a font file into the library under the given family/weight/italic.
func (fl *FontLibrary) LoadTTF(family string, weight int, italic bool, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read font %s: %w", path, err)
	}
	if err := fl.Register(family, weight, italic, data); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Register parses TTF/OTF bytes and stores them under family/weight/italic.
func (fl *FontLibrary) Register(family string, weight int, italic bool, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font %s: %w", family, err)
	}
	fl.mu.Lock()
	defer fl.mu.Unlock()
	if fl.fonts == nil {
		fl.fonts = make(map[fontKey]*opentype.Font)
	}
	fl.fonts[fontKey{family: family, weight: weight, italic: italic}] = f
	return nil
}

// find resolves spec to a loaded font: exact match, then same family with the
// same italic flag, then any face of the family, then the fallback family.
func (fl *FontLibrary) find(spec FontSpec) (fontKey, *opentype.Font) {
	if fl == nil || fl.fonts == nil {
		return fontKey{}, nil
	}
	weight := spec.Weight
	if weight == 0 {
		weight = 400
	}
	for _, family := range []string{spec.Family, FallbackFamily} {
		k := fontKey{family: family, weight: bucketWeight(weight), italic: spec.Italic}
		if f, ok := fl.fonts[k]; ok {
			return k, f
		}
		if f, ok := fl.fonts[fontKey{family: family, weight: weight, italic: spec.Italic}]; ok {
			return fontKey{family: family, weight: weight, italic: spec.Italic}, f
		}
		k.weight = 400
		if f, ok := fl.fonts[k]; ok {
			return k, f
		}
		for k, f := range fl.fonts {
			if k.family == family {
				return k, f
			}
		}
	}
	return fontKey{}, nil
}

// bucketWeight maps CSS weights onto the regular/bold pair the library carries.
func bucketWeight(w int) int {
	if w >= 600 {
		return 700
	}
	return 400
}

func (fl *FontLibrary) face(spec FontSpec, dpi float64) (font.Face, bool) {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	k, f := fl.find(spec)
	if f == nil {
		return nil, false
	}
	fk := faceKey{fontKey: k, size: spec.Size, dpi: dpi}
	if face, ok := fl.faces[fk]; ok {
		return face, true
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: spec.Size, DPI: dpi, Hinting: font.HintingFull})
	if err != nil {
		return nil, false
	}
	if fl.faces == nil {
		fl.faces = make(map[faceKey]font.Face)
	}
	fl.faces[fk] = face
	return face, true
}

// OTProvider resolves FontSpec using a FontLibrary and falls back to another Provider.
// Sizes are pixels at the default 72 DPI. Kerning comes from opentype.Face via font.Drawer.
type OTProvider struct {
	Lib      *FontLibrary
	DPI      float64 // default 72 if zero
	Fallback Provider
}

func (p OTProvider) Resolve(spec FontSpec) (font.Face, Metrics) {
	if spec.Size <= 0 {
		spec.Size = 16
	}
	dpi := p.DPI
	if dpi <= 0 {
		dpi = 72
	}
	if p.Lib != nil {
		if face, ok := p.Lib.face(spec, dpi); ok {
			return face, metricsOf(face)
		}
	}
	fb := p.Fallback
	if fb == nil {
		fb = BasicProvider{}
	}
	return fb.Resolve(spec)
}
