/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// Helpers over element slices. None of them modify their input; edits always
// produce a new slice so a page's element array is replaced wholesale.

// CloneElements copies the slice. Data values are immutable variants, so a
// shallow copy per element is sufficient, except for the mutable parts of
// ImageData and DrawingData which are copied explicitly.
func CloneElements(elems []Element) []Element {
	if elems == nil {
		return nil
	}
	out := make([]Element, len(elems))
	for i, e := range elems {
		switch d := e.Data.(type) {
		case ImageData:
			if d.Filters != nil {
				f := *d.Filters
				d.Filters = &f
			}
			e.Data = d
		case DrawingData:
			paths := make([]DrawingPath, len(d.Paths))
			for j, p := range d.Paths {
				p.Points = append([][2]float64(nil), p.Points...)
				paths[j] = p
			}
			d.Paths = paths
			e.Data = d
		}
		out[i] = e
	}
	return out
}

// IndexOf returns the position of id in elems or -1.
func IndexOf(elems []Element, id string) int {
	for i, e := range elems {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the element with id.
func Find(elems []Element, id string) (Element, bool) {
	if i := IndexOf(elems, id); i >= 0 {
		return elems[i], true
	}
	return Element{}, false
}

// MaxZ is the highest z-index in elems, or 0 when empty.
func MaxZ(elems []Element) int {
	z := 0
	for i, e := range elems {
		if i == 0 || e.ZIndex > z {
			z = e.ZIndex
		}
	}
	return z
}

// Replace returns a new slice with the element sharing el's ID swapped for el.
// A missing ID returns the input unchanged and false.
func Replace(elems []Element, el Element) ([]Element, bool) {
	i := IndexOf(elems, el.ID)
	if i < 0 {
		return elems, false
	}
	out := CloneElements(elems)
	out[i] = el
	return out, true
}

// Remove returns a new slice without id.
func Remove(elems []Element, id string) ([]Element, bool) {
	i := IndexOf(elems, id)
	if i < 0 {
		return elems, false
	}
	out := make([]Element, 0, len(elems)-1)
	out = append(out, elems[:i]...)
	out = append(out, elems[i+1:]...)
	return out, true
}

// Append returns a new slice with el at the end.
func Append(elems []Element, el Element) []Element {
	out := make([]Element, 0, len(elems)+1)
	out = append(out, elems...)
	return append(out, el)
}

// IDs returns the set of element ids.
func IDs(elems []Element) map[string]struct{} {
	set := make(map[string]struct{}, len(elems))
	for _, e := range elems {
		set[e.ID] = struct{}{}
	}
	return set
}
