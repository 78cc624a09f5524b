/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"log/slog"
	"math"

	"goscrapbook/internal/canvas"
	"goscrapbook/internal/domain"
	"goscrapbook/internal/render"
	"goscrapbook/internal/vector"
)

// Views renders the current page in paint order, with a live rotate preview.
func (s *Session) Views(r *render.Renderer) []render.View {
	return r.RenderAll(s.ctl.Display(), s.ctl.Active(), s.ctl.Editing())
}

// Press routes a pointer press at p on the drawn views: controls run their
// command, handles start rotate or scale, bodies start a drag and the bare
// canvas clears the selection.
func (s *Session) Press(views []render.View, p vector.Pt) render.Hit {
	s.EndWheel()
	hit := render.HitTest(views, p)
	switch hit.Part {
	case render.PartControl:
		s.control(hit.ElementID, hit.Control)
	case render.PartRotateHandle:
		s.ctl.BeginRotate(hit.ElementID, p)
	case render.PartScaleHandle:
		s.ctl.BeginScale(hit.ElementID, p)
	case render.PartBody:
		s.ctl.PointerDown(hit.ElementID, p)
	default:
		s.ctl.BackgroundDown()
	}
	s.changed()
	return hit
}

// DoubleClick opens the editor of the element body under p.
func (s *Session) DoubleClick(views []render.View, p vector.Pt) bool {
	hit := render.HitTest(views, p)
	if hit.Part != render.PartBody {
		return false
	}
	ok := s.ctl.DoubleTap(hit.ElementID)
	s.changed()
	return ok
}

// Release ends whatever pointer gesture is live.
func (s *Session) Release() {
	s.wheel = nil
	s.ctl.PointerUp()
	s.changed()
}

// Scroll deltas are turned into a two-finger pinch around the element center.
const (
	wheelSpan       = 100.0     // finger distance the pinch starts from
	wheelMinSpan    = 10.0      // keeps the scale above zero
	wheelScaleRate  = 1.0 / 200 // span growth per unit of vertical scroll
	wheelRotateRate = 0.5       // degrees per unit of horizontal scroll
)

type wheelPinch struct {
	id     string
	center vector.Pt
	span   float64
	angle  float64
}

// Wheel maps scrolling over an element body onto a pinch: vertical scroll
// scales, horizontal scroll rotates. The pinch keeps accumulating across
// scroll events until a press or release ends it.
func (s *Session) Wheel(views []render.View, p vector.Pt, dx, dy float64) bool {
	hit := render.HitTest(views, p)
	if hit.Part != render.PartBody {
		return false
	}
	w := s.wheel
	if w == nil || w.id != hit.ElementID || s.ctl.State() != canvas.Pinching || s.ctl.Active() != w.id {
		var center vector.Pt
		for _, v := range views {
			if v.ElementID == hit.ElementID {
				center = v.Box.Center()
			}
		}
		w = &wheelPinch{id: hit.ElementID, center: center, span: wheelSpan}
		t1, t2 := w.points()
		if !s.ctl.BeginPinch(w.id, t1, t2) {
			s.wheel = nil
			return false
		}
		s.wheel = w
	}
	w.span = math.Max(wheelMinSpan, w.span*(1+dy*wheelScaleRate))
	w.angle += dx * wheelRotateRate
	s.ctl.PinchMove(w.points())
	s.changed()
	return true
}

// EndWheel finishes a scroll-driven pinch, if one is live.
func (s *Session) EndWheel() {
	if s.wheel == nil {
		return
	}
	s.wheel = nil
	if s.ctl.State() == canvas.Pinching {
		s.ctl.PointerUp()
		s.changed()
	}
}

func (w *wheelPinch) points() (vector.Pt, vector.Pt) {
	rad := w.angle * math.Pi / 180
	hx, hy := math.Cos(rad)*w.span/2, math.Sin(rad)*w.span/2
	return vector.Pt{X: w.center.X - hx, Y: w.center.Y - hy}, vector.Pt{X: w.center.X + hx, Y: w.center.Y + hy}
}

func (s *Session) control(id string, k render.ControlKind) {
	s.log.Debug("control", slog.String("element", id), slog.String("control", string(k)))
	switch k {
	case render.ControlEdit:
		s.ctl.DoubleTap(id)
	case render.ControlRotate:
		s.ctl.RotateStep(id)
	case render.ControlScaleUp:
		s.ctl.ScaleUp(id)
	case render.ControlScaleDown:
		s.ctl.ScaleDown(id)
	case render.ControlDelete:
		s.RemoveElement(id)
	}
}

// ActiveElement returns the selected element, if any.
func (s *Session) ActiveElement() (domain.Element, bool) {
	id := s.ctl.Active()
	if id == "" {
		return domain.Element{}, false
	}
	return domain.Find(s.ctl.Elements(), id)
}
