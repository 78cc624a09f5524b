/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package canvas

import "goscrapbook/internal/domain"

// Size math per element kind. Images and stickers size by width/height,
// text by font size.

func rotationOf(el domain.Element) (float64, bool) {
	switch d := el.Data.(type) {
	case domain.ImageData:
		return d.Rotation, true
	case domain.StickerData:
		return d.Rotation, true
	}
	return 0, false
}

func withRotation(el domain.Element, deg float64) domain.Element {
	switch d := el.Data.(type) {
	case domain.ImageData:
		d.Rotation = deg
		el.Data = d
	case domain.StickerData:
		d.Rotation = deg
		el.Data = d
	}
	return el
}

// primarySize is the dimension a scale derives from and the base it is
// measured against: image width / 200, sticker width / 80, font size / 18.
func primarySize(el domain.Element) (v, base float64) {
	switch d := el.Data.(type) {
	case domain.TextData:
		return orDefault(d.FontSize, domain.DefaultFontSize), domain.BaseFontSize
	case domain.ImageData:
		return orDefault(d.Width, domain.DefaultImageWidth), domain.BaseImageWidth
	case domain.StickerData:
		return orDefault(d.Width, domain.DefaultStickerSize), domain.BaseStickerWidth
	}
	return 1, 1
}

// resized scales el by f and applies the kind's floors. Images keep their
// aspect ratio; when either side would drop under the floor the shorter side
// is pinned to it. Sticker sides are floored independently. Text scales its
// font size within [MinFontSize, MaxFontSize].
func resized(el domain.Element, f float64) domain.Element {
	switch d := el.Data.(type) {
	case domain.TextData:
		size := orDefault(d.FontSize, domain.DefaultFontSize) * f
		d.FontSize = min(max(size, domain.MinFontSize), domain.MaxFontSize)
		el.Data = d
	case domain.ImageData:
		w := orDefault(d.Width, domain.DefaultImageWidth)
		h := orDefault(d.Height, domain.DefaultImageHeight)
		nw := w * f
		nh := nw * h / w
		if nw < domain.MinImageSize || nh < domain.MinImageSize {
			k := domain.MinImageSize / min(w, h)
			nw, nh = w*k, h*k
		}
		d.Width, d.Height = nw, nh
		el.Data = d
	case domain.StickerData:
		w := orDefault(d.Width, domain.DefaultStickerSize)
		h := orDefault(d.Height, domain.DefaultStickerSize)
		d.Width = max(w*f, domain.MinStickerSize)
		d.Height = max(h*f, domain.MinStickerSize)
		el.Data = d
	}
	return el
}

func orDefault(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}
