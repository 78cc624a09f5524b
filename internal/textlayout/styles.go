/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import (
	"strconv"
	"strings"
)

// SpecFor converts CSS-style text attributes into a FontSpec.
// family may be a comma separated list; only the first entry is used.
// weight accepts "normal", "bold", "bolder", "lighter" or a number.
func SpecFor(family string, size float64, weight, style string) FontSpec {
	return FontSpec{
		Family: FirstFamily(family),
		Size:   size,
		Weight: ParseWeight(weight),
		Italic: isItalic(style),
	}
}

// FirstFamily returns the first family in a CSS font-family list, unquoted.
func FirstFamily(list string) string {
	first, _, _ := strings.Cut(list, ",")
	return strings.Trim(strings.TrimSpace(first), `"'`)
}

// ParseWeight maps a CSS font-weight to 100..900. Unknown values are 400.
func ParseWeight(w string) int {
	switch strings.ToLower(strings.TrimSpace(w)) {
	case "", "normal", "lighter":
		return 400
	case "bold", "bolder":
		return 700
	}
	n, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil || n < 100 || n > 900 {
		return 400
	}
	return n
}

func isItalic(style string) bool {
	s := strings.ToLower(strings.TrimSpace(style))
	return s == "italic" || s == "oblique"
}
