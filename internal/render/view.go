/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package render maps an element plus its interaction state to a View: the
// positioned, styled box a UI backend draws, together with the hit regions of
// the element body, its control cluster and its drag handles.
package render

import (
	"goscrapbook/internal/domain"
	"goscrapbook/internal/vector"
)

// ViewKind selects how a backend draws the view.
type ViewKind int

const (
	ViewPlaceholder ViewKind = iota
	ViewText
	ViewImage
	ViewSticker
)

func (k ViewKind) String() string {
	switch k {
	case ViewText:
		return "text"
	case ViewImage:
		return "image"
	case ViewSticker:
		return "sticker"
	}
	return "placeholder"
}

// ControlKind names a button of the active element's control cluster.
type ControlKind string

const (
	ControlEdit      ControlKind = "edit"
	ControlRotate    ControlKind = "rotate"
	ControlScaleUp   ControlKind = "scale-up"
	ControlScaleDown ControlKind = "scale-down"
	ControlDelete    ControlKind = "delete"
)

// ControlOrder is the left-to-right order of the cluster.
var ControlOrder = []ControlKind{ControlEdit, ControlRotate, ControlScaleUp, ControlScaleDown, ControlDelete}

// Label is the short caption or tooltip for the control.
func (k ControlKind) Label() string {
	switch k {
	case ControlEdit:
		return "Edit"
	case ControlRotate:
		return "Rotate 15°"
	case ControlScaleUp:
		return "Enlarge"
	case ControlScaleDown:
		return "Shrink"
	case ControlDelete:
		return "Delete"
	}
	return string(k)
}

// Control is one round button of the cluster.
type Control struct {
	Kind   ControlKind
	Center vector.Pt
	Radius float64
	Node   vector.Node
}

// Handle is a round drag handle.
type Handle struct {
	Center vector.Pt
	Radius float64
	Node   vector.Node
}

// Style carries the visual attributes resolved from element data with fallbacks applied.
type Style struct {
	FontFamily string
	FontSize   float64
	Weight     int
	Italic     bool
	Color      vector.Color
	Background vector.Color
	Align      domain.TextAlign
	Filters    domain.Filters // percentages, 100 = unchanged
}

// View is the render result for one element.
type View struct {
	ElementID   string
	ElementKind domain.Kind
	Kind        ViewKind

	Box      vector.Rect // untransformed, canvas space
	Rotation float64     // degrees about Box center
	Scale    float64     // visual emphasis about Box center, 1 when inactive
	Z        int

	Style Style
	Lines []string // wrapped text lines for ViewText
	Src   string
	Alt   string
	Label string // placeholder caption

	Active  bool
	Editing bool
	Outline vector.Stroke

	// Transform maps the untransformed Box into canvas space.
	Transform vector.Affine2D
	Body      vector.Node

	Controls     []Control
	RotateHandle *Handle
	ScaleHandle  *Handle
	// MoveIcon marks the center of an active element; it is decoration and never hit.
	MoveIcon *vector.Pt
}

// Bounds is the axis-aligned box of the transformed body.
func (v View) Bounds() vector.Rect { return v.Body.Bounds() }

// Part identifies what a hit test landed on.
type Part int

const (
	PartBackground Part = iota
	PartBody
	PartControl
	PartRotateHandle
	PartScaleHandle
)

func (p Part) String() string {
	switch p {
	case PartBody:
		return "body"
	case PartControl:
		return "control"
	case PartRotateHandle:
		return "rotate-handle"
	case PartScaleHandle:
		return "scale-handle"
	}
	return "background"
}

// Hit is the result of HitTest. ElementID is empty for PartBackground.
type Hit struct {
	ElementID string
	Part      Part
	Control   ControlKind
}
