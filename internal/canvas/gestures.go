/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package canvas

import (
	"log/slog"
	"math"

	"goscrapbook/internal/domain"
	"goscrapbook/internal/vector"
)

// PointerDown selects id, promotes it above all siblings and starts a drag.
// It reports false (and changes nothing) for missing ids, non-editable kinds
// and the element currently being edited, whose inline editor owns the input.
func (c *Controller) PointerDown(id string, p vector.Pt) bool {
	el, ok := c.lookup(id)
	if !ok || id == c.editing {
		return false
	}
	if c.editing != "" {
		c.editing = ""
	}
	c.active = id
	el.ZIndex = domain.MaxZ(c.elems) + 1
	c.commit(el)

	g := &gesture{state: Dragging, id: id, offset: p.Sub(vector.Pt{X: el.X, Y: el.Y})}
	c.begin(g, func(ev PointerEvent) { c.dragMove(g, ev) })
	return true
}

func (c *Controller) dragMove(g *gesture, ev PointerEvent) {
	if len(ev.Points) == 0 {
		return
	}
	el, ok := c.live(g)
	if !ok {
		return
	}
	want := ev.Points[0].Sub(g.offset)
	el.X, el.Y = vector.ClampPosition(want.X, want.Y, c.size, c.foot)
	c.commit(el)
}

// BeginRotate starts a rotate-handle drag at pointer p. Only kinds carrying
// a rotation (image, sticker) rotate.
func (c *Controller) BeginRotate(id string, p vector.Pt) bool {
	el, ok := c.lookup(id)
	if !ok {
		return false
	}
	rot, ok := rotationOf(el)
	if !ok {
		return false
	}
	center := c.measure(el).Center()
	g := &gesture{
		state:    Rotating,
		id:       id,
		center:   center,
		angle0:   vector.AngleBetween(center, p),
		startRot: rot,
		preview:  rot,
	}
	c.active = id
	c.begin(g, func(ev PointerEvent) { c.rotateMove(g, ev) })
	return true
}

func (c *Controller) rotateMove(g *gesture, ev PointerEvent) {
	if len(ev.Points) == 0 {
		return
	}
	el, ok := c.live(g)
	if !ok {
		return
	}
	raw := g.startRot + vector.AngleBetween(g.center, ev.Points[0]) - g.angle0
	g.preview = vector.NormalizeDeg(raw)
	c.commit(withRotation(el, c.quantize(raw)))
}

// BeginScale starts a scale-handle drag at pointer p. The starting scale is
// derived from the element's current size relative to its kind's base size.
func (c *Controller) BeginScale(id string, p vector.Pt) bool {
	el, ok := c.lookup(id)
	if !ok {
		return false
	}
	v, base := primarySize(el)
	g := &gesture{state: Scaling, id: id, start: p, startScale: v / base, base: el}
	c.active = id
	c.begin(g, func(ev PointerEvent) { c.scaleMove(g, ev) })
	return true
}

func (c *Controller) scaleMove(g *gesture, ev PointerEvent) {
	if len(ev.Points) == 0 {
		return
	}
	if _, ok := c.live(g); !ok {
		return
	}
	d := ev.Points[0].Sub(g.start)
	delta := d.X
	if math.Abs(d.Y) > math.Abs(d.X) {
		delta = d.Y
	}
	scale := g.startScale * (1 + delta/domain.HandleScaleDivisor)
	v, base := primarySize(g.base)
	c.commit(resized(g.base, base*scale/v))
}

// BeginPinch starts a two-finger gesture on id with touches t1 and t2.
func (c *Controller) BeginPinch(id string, t1, t2 vector.Pt) bool {
	el, ok := c.lookup(id)
	if !ok {
		return false
	}
	rot, _ := rotationOf(el)
	g := &gesture{
		state:      Pinching,
		id:         id,
		dist0:      vector.Distance(t1, t2),
		angle0:     vector.AngleBetween(t1, t2),
		startRot:   rot,
		pinchScale: 1,
		base:       el,
	}
	c.active = id
	c.begin(g, func(ev PointerEvent) { c.pinchMove(g, ev) })
	return true
}

// PinchMove reports the current touch pair of a live pinch.
func (c *Controller) PinchMove(t1, t2 vector.Pt) { c.TouchMove(t1, t2) }

func (c *Controller) pinchMove(g *gesture, ev PointerEvent) {
	if len(ev.Points) < 2 || g.dist0 == 0 {
		return
	}
	if _, ok := c.live(g); !ok {
		return
	}
	t1, t2 := ev.Points[0], ev.Points[1]
	g.pinchScale = vector.Distance(t1, t2) / g.dist0
	el := resized(g.base, g.pinchScale)
	if _, ok := rotationOf(el); ok {
		el = withRotation(el, c.quantize(g.startRot+vector.AngleBetween(t1, t2)-g.angle0))
	}
	c.commit(el)
	c.log.Debug("pinch", slog.Float64("scale", g.pinchScale))
}

// quantize snaps to the rotation step and wraps into [0,360).
func (c *Controller) quantize(deg float64) float64 {
	return vector.NormalizeDeg(vector.SnapToStep(deg, c.snap))
}
