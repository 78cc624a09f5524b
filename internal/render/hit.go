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

	"goscrapbook/internal/vector"
)

// HitTest resolves p against views. Controls and handles are tested before
// bodies; among bodies the highest z wins and, on equal z, the later view.
// The move icon never hits. A miss reports PartBackground.
func HitTest(views []View, p vector.Pt) Hit {
	order := make([]int, len(views))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return views[order[a]].Z > views[order[b]].Z })
	// reverse ties so later slice entries come first
	for i := 0; i < len(order); {
		j := i
		for j < len(order) && views[order[j]].Z == views[order[i]].Z {
			j++
		}
		for l, r := i, j-1; l < r; l, r = l+1, r-1 {
			order[l], order[r] = order[r], order[l]
		}
		i = j
	}

	for _, i := range order {
		v := &views[i]
		for _, c := range v.Controls {
			if c.Node.Hit(p) {
				return Hit{ElementID: v.ElementID, Part: PartControl, Control: c.Kind}
			}
		}
		if v.RotateHandle != nil && v.RotateHandle.Node.Hit(p) {
			return Hit{ElementID: v.ElementID, Part: PartRotateHandle}
		}
		if v.ScaleHandle != nil && v.ScaleHandle.Node.Hit(p) {
			return Hit{ElementID: v.ElementID, Part: PartScaleHandle}
		}
	}
	for _, i := range order {
		if views[i].Body != nil && views[i].Body.Hit(p) {
			return Hit{ElementID: views[i].ElementID, Part: PartBody}
		}
	}
	return Hit{Part: PartBackground}
}
