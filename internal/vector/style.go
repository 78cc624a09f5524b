/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Styles and paint definitions.

type Color struct{ R, G, B, A uint8 }

var (
	Black       = Color{0, 0, 0, 255}
	White       = Color{255, 255, 255, 255}
	Transparent = Color{0, 0, 0, 0}
)

// RGBA adapts Color to image/color for UI backends.
func (c Color) RGBA() color.NRGBA { return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A} }

// Hex formats the color as #rrggbb, or #rrggbbaa when not opaque.
func (c Color) Hex() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// ParseHex accepts #rgb, #rrggbb and #rrggbbaa. "transparent" is Transparent.
func ParseHex(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "transparent" {
		return Transparent, nil
	}
	h := strings.TrimPrefix(s, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// ParseHexOr is ParseHex with a fallback for empty or malformed input.
func ParseHexOr(s string, def Color) Color {
	if strings.TrimSpace(s) == "" {
		return def
	}
	c, err := ParseHex(s)
	if err != nil {
		return def
	}
	return c
}

type Fill struct {
	Color   Color
	Enabled bool
}

type Stroke struct {
	Color   Color
	Width   float64
	Dash    []float64 // on/off lengths; empty draws solid
	Enabled bool
}

// Dashed reports whether the stroke has a dash pattern.
func (s Stroke) Dashed() bool { return len(s.Dash) > 0 }
