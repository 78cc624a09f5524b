/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// Gesture and sizing constants shared by the controller, renderer and editors.
const (
	RotationStep       = 15.0
	MinImageSize       = 50.0
	MinStickerSize     = 30.0
	MinFontSize        = 10.0
	MaxFontSize        = 72.0
	DragFootprint      = 100.0
	ScaleUpFactor      = 1.1
	ScaleDownFactor    = 0.9
	HandleScaleDivisor = 200.0

	// Base sizes from which the handle-scale gesture derives a starting scale.
	BaseImageWidth   = 200.0
	BaseStickerWidth = 80.0
	BaseFontSize     = 18.0
)

// Creation defaults.
const (
	DefaultTextContent    = "Double click to edit text"
	DefaultFontFamily     = "Dancing Script, cursive"
	DefaultFontSize       = 18.0
	DefaultTextColor      = "#444444"
	DefaultImageSrc       = "/placeholder.svg"
	DefaultImageAlt       = "Image"
	DefaultImageWidth     = 200.0
	DefaultImageHeight    = 150.0
	DefaultStickerSrc     = "https://cdn-icons-png.flaticon.com/512/6010/6010051.png"
	DefaultStickerAlt     = "Heart sticker"
	DefaultStickerSize    = 80.0
	DefaultCreatePosition = 200.0
)

// DefaultData returns the data a freshly added element of kind k starts with.
// Non-editable kinds have no defaults.
func DefaultData(k Kind) (ElementData, bool) {
	switch k {
	case KindText:
		return TextData{
			Content:    DefaultTextContent,
			FontFamily: DefaultFontFamily,
			FontSize:   DefaultFontSize,
			Color:      DefaultTextColor,
		}, true
	case KindImage:
		return ImageData{
			Src:    DefaultImageSrc,
			Alt:    DefaultImageAlt,
			Width:  DefaultImageWidth,
			Height: DefaultImageHeight,
		}, true
	case KindSticker:
		return StickerData{
			Src:    DefaultStickerSrc,
			Alt:    DefaultStickerAlt,
			Width:  DefaultStickerSize,
			Height: DefaultStickerSize,
		}, true
	}
	return nil, false
}

// FontPreset is a named font family offered by the text editor.
type FontPreset struct {
	Name   string
	Family string
}

var FontPresets = []FontPreset{
	{Name: "Handwritten", Family: "Dancing Script, cursive"},
	{Name: "Fancy", Family: "Pacifico, cursive"},
	{Name: "Simple", Family: "Arial, sans-serif"},
	{Name: "Classic", Family: "Georgia, serif"},
}

// FontPresetByName looks a preset up by its display name.
func FontPresetByName(name string) (FontPreset, bool) {
	for _, p := range FontPresets {
		if p.Name == name {
			return p, true
		}
	}
	return FontPreset{}, false
}

// FontPresetByFamily looks a preset up by its family string.
func FontPresetByFamily(family string) (FontPreset, bool) {
	for _, p := range FontPresets {
		if p.Family == family {
			return p, true
		}
	}
	return FontPreset{}, false
}
