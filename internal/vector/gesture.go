/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Gesture math shared by the canvas controller and the pointer adapters.

import "math"

// AngleDeg returns atan2(dy, dx) in degrees, in (-180, 180].
func AngleDeg(dx, dy float64) float64 {
	a := math.Atan2(dy, dx) * 180 / math.Pi
	if a == -180 { // atan2(-0, x<0)
		return 180
	}
	return a
}

// AngleBetween is AngleDeg of the vector from a to b.
func AngleBetween(a, b Pt) float64 { return AngleDeg(b.X-a.X, b.Y-a.Y) }

// Distance is the Euclidean distance between two points.
func Distance(p1, p2 Pt) float64 {
	return math.Hypot(p2.X-p1.X, p2.Y-p1.Y)
}

// SnapToStep rounds value to the nearest multiple of step, halves away from zero.
// A non-positive step returns value unchanged.
func SnapToStep(value, step float64) float64 {
	if step <= 0 {
		return value
	}
	return math.Round(value/step) * step
}

// NormalizeDeg maps any angle into [0, 360).
func NormalizeDeg(v float64) float64 {
	v = math.Mod(v, 360)
	if v < 0 {
		v += 360
	}
	// -0 and rounding residue
	if v == 0 || v >= 360 {
		return 0
	}
	return v
}

// ClampPosition keeps a top-left position inside bounds so that at least
// footprint pixels of the element stay reachable on both axes.
func ClampPosition(x, y float64, bounds Size, footprint float64) (float64, float64) {
	return clampAxis(x, bounds.W-footprint), clampAxis(y, bounds.H-footprint)
}

func clampAxis(v, hi float64) float64 {
	return max(0, min(v, hi))
}

// Midpoint of two touch points, used as the pinch anchor.
func Midpoint(a, b Pt) Pt { return Pt{(a.X + b.X) / 2, (a.Y + b.Y) / 2} }
