/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package canvas turns pointer and touch input into element updates for one
// page: selection with z-promotion, dragging with bounds clamping, discrete
// and continuous rotate/scale, two-finger pinch, removal and edit mode.
//
// Every update rebuilds the element slice and hands it to OnChange; the
// controller never mutates a slice it has handed out.
package canvas

import (
	"log/slog"

	"goscrapbook/internal/domain"
	applog "goscrapbook/internal/log"
	"goscrapbook/internal/render"
	"goscrapbook/internal/vector"
)

// State is the gesture currently in progress.
type State int

const (
	Idle State = iota
	Dragging
	Rotating
	Scaling
	Pinching
)

func (s State) String() string {
	switch s {
	case Dragging:
		return "dragging"
	case Rotating:
		return "rotating"
	case Scaling:
		return "scaling"
	case Pinching:
		return "pinching"
	}
	return "idle"
}

// Measurer reports an element's untransformed box on the canvas.
type Measurer func(domain.Element) vector.Rect

// Options configures a Controller. Zero values take the documented defaults.
type Options struct {
	Size      vector.Size // canvas size in px
	SnapStep  float64     // rotation quantum, default domain.RotationStep
	Footprint float64     // drag clamp footprint, default domain.DragFootprint
	// OnChange receives every committed element slice.
	OnChange func([]domain.Element)
	// OnEdit is asked to open the editor for an element entering edit mode.
	OnEdit func(domain.Element)
	// Measure defaults to the renderer's box with bundled fonts.
	Measure Measurer
	Logger  *slog.Logger
}

// Controller owns the live element list of one page canvas.
// It is not safe for concurrent use.
type Controller struct {
	elems   []domain.Element
	size    vector.Size
	snap    float64
	foot    float64
	change  func([]domain.Element)
	edit    func(domain.Element)
	measure Measurer
	log     *slog.Logger

	hub     Hub
	active  string
	editing string
	g       *gesture
}

// gesture is the scoped state of one continuous interaction. It holds the
// listener subscription and is torn down by release on every exit path.
type gesture struct {
	state State
	id    string
	unsub func()

	offset vector.Pt // drag: pointer minus element origin

	center   vector.Pt // rotate
	angle0   float64
	startRot float64
	preview  float64

	start      vector.Pt // scale
	startScale float64

	dist0      float64 // pinch
	pinchScale float64
	base       domain.Element
}

func New(elems []domain.Element, opts Options) *Controller {
	c := &Controller{
		elems:   domain.CloneElements(elems),
		size:    opts.Size,
		snap:    opts.SnapStep,
		foot:    opts.Footprint,
		change:  opts.OnChange,
		edit:    opts.OnEdit,
		measure: opts.Measure,
		log:     opts.Logger,
	}
	if c.elems == nil {
		c.elems = []domain.Element{}
	}
	if c.snap <= 0 {
		c.snap = domain.RotationStep
	}
	if c.foot <= 0 {
		c.foot = domain.DragFootprint
	}
	if c.measure == nil {
		c.measure = func(el domain.Element) vector.Rect { return render.Render(el, false, false).Box }
	}
	if c.log == nil {
		c.log = applog.WithComponent("canvas")
	}
	return c
}

// Elements returns a copy of the current element slice.
func (c *Controller) Elements() []domain.Element { return domain.CloneElements(c.elems) }

// SetElements replaces the slice from outside, e.g. after an editor commit or
// a page switch. Any live gesture is released; selection and edit state
// survive only if their element still exists.
func (c *Controller) SetElements(elems []domain.Element) {
	c.release()
	c.elems = domain.CloneElements(elems)
	if c.elems == nil {
		c.elems = []domain.Element{}
	}
	if domain.IndexOf(c.elems, c.active) < 0 {
		c.active = ""
	}
	if domain.IndexOf(c.elems, c.editing) < 0 {
		c.editing = ""
	}
}

// Reset is SetElements for a different page: selection and edit state are cleared too.
func (c *Controller) Reset(elems []domain.Element) {
	c.active, c.editing = "", ""
	c.SetElements(elems)
}

func (c *Controller) SetSize(s vector.Size) { c.size = s }
func (c *Controller) Size() vector.Size     { return c.size }

// Hub is the pointer listener registry the UI feeds move and end events into.
func (c *Controller) Hub() *Hub { return &c.hub }

func (c *Controller) Active() string  { return c.active }
func (c *Controller) Editing() string { return c.editing }

func (c *Controller) State() State {
	if c.g == nil {
		return Idle
	}
	return c.g.state
}

// PreviewRotation is the unsnapped rotation of a live handle-rotate gesture,
// for continuous visual feedback between quantized commits.
func (c *Controller) PreviewRotation() (float64, bool) {
	if c.g == nil || c.g.state != Rotating {
		return 0, false
	}
	return c.g.preview, true
}

// Display is Elements with a live rotate preview applied, for drawing only.
func (c *Controller) Display() []domain.Element {
	out := c.Elements()
	if c.g == nil || c.g.state != Rotating {
		return out
	}
	if i := domain.IndexOf(out, c.g.id); i >= 0 {
		out[i] = withRotation(out[i], c.g.preview)
	}
	return out
}

// PinchScale is the unsnapped scale factor of a live pinch.
func (c *Controller) PinchScale() (float64, bool) {
	if c.g == nil || c.g.state != Pinching {
		return 0, false
	}
	return c.g.pinchScale, true
}

// PointerMove, PointerUp and TouchMove feed the hub.
func (c *Controller) PointerMove(p vector.Pt)    { c.hub.Move(p) }
func (c *Controller) PointerUp()                 { c.hub.End() }
func (c *Controller) TouchMove(t1, t2 vector.Pt) { c.hub.Move(t1, t2) }

// Cancel ends any live gesture. Moves already committed stay committed.
func (c *Controller) Cancel() { c.release() }

// lookup finds an editable element; unknown kinds and missing ids are no-ops.
func (c *Controller) lookup(id string) (domain.Element, bool) {
	el, ok := domain.Find(c.elems, id)
	if !ok || !el.Editable() {
		return domain.Element{}, false
	}
	return el, true
}

func (c *Controller) commit(el domain.Element) {
	out, ok := domain.Replace(c.elems, el)
	if !ok {
		return
	}
	c.publish(out)
}

func (c *Controller) publish(out []domain.Element) {
	c.elems = out
	if c.change != nil {
		c.change(domain.CloneElements(out))
	}
}

// begin releases any previous gesture and subscribes the new one to the hub.
func (c *Controller) begin(g *gesture, move func(PointerEvent)) {
	c.release()
	c.g = g
	g.unsub = c.hub.Subscribe(Listener{Move: move, End: c.release})
	c.log.Debug("gesture start", slog.String("state", g.state.String()), slog.String("element", g.id))
}

// release tears the live gesture down. It is the single exit path.
func (c *Controller) release() {
	g := c.g
	if g == nil {
		return
	}
	c.g = nil
	if g.unsub != nil {
		g.unsub()
	}
	c.log.Debug("gesture end", slog.String("state", g.state.String()), slog.String("element", g.id))
}

// live reports whether g is still the current gesture and its element exists.
func (c *Controller) live(g *gesture) (domain.Element, bool) {
	if c.g != g {
		return domain.Element{}, false
	}
	el, ok := domain.Find(c.elems, g.id)
	if !ok {
		c.release()
	}
	return el, ok
}
