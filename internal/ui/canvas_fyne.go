//go:build fyne

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	xdraw "golang.org/x/image/draw"

	"goscrapbook/internal/editor"
	"goscrapbook/internal/render"
	"goscrapbook/internal/vector"
)

// ScrapbookCanvas shows the current page of a session and forwards pointer
// input to it. Elements are composited into a raster because Fyne objects
// cannot be rotated.
type ScrapbookCanvas struct {
	widget.BaseWidget

	session  *editor.Session
	renderer *render.Renderer
	comp     *render.Compositor
	page     vector.Size // logical page size the session lays out against

	raster *canvas.Raster
	views  []render.View
	// pressed is set between MouseDown and the end of the gesture.
	pressed bool
}

// NewScrapbookCanvas draws s at the logical page size.
func NewScrapbookCanvas(s *editor.Session, page vector.Size, r *render.Renderer, comp *render.Compositor) *ScrapbookCanvas {
	c := &ScrapbookCanvas{session: s, renderer: r, comp: comp, page: page}
	c.raster = canvas.NewRaster(c.draw)
	c.raster.SetMinSize(fyne.NewSize(float32(page.W), float32(page.H)))
	c.views = s.Views(r)
	c.ExtendBaseWidget(c)
	return c
}

func (c *ScrapbookCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(c.raster)
}

// Refresh rebuilds the element views from the session before redrawing.
func (c *ScrapbookCanvas) Refresh() {
	c.views = c.session.Views(c.renderer)
	c.BaseWidget.Refresh()
}

// draw composites at page resolution and scales to the raster's pixel size.
func (c *ScrapbookCanvas) draw(w, h int) image.Image {
	pw, ph := int(c.page.W), int(c.page.H)
	if pw <= 0 || ph <= 0 || w <= 0 || h <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 1, 1))
	}
	page := image.NewNRGBA(image.Rect(0, 0, pw, ph))
	bg := vector.ParseHexOr(c.session.Background().Color, vector.White)
	c.comp.Draw(page, bg, c.views)
	if w == pw && h == ph {
		return page
	}
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(out, out.Bounds(), page, page.Bounds(), xdraw.Src, nil)
	return out
}

// toPage maps a widget-local position onto the logical page.
func (c *ScrapbookCanvas) toPage(pos fyne.Position) vector.Pt {
	size := c.Size()
	sx, sy := 1.0, 1.0
	if size.Width > 0 && size.Height > 0 {
		sx = c.page.W / float64(size.Width)
		sy = c.page.H / float64(size.Height)
	}
	return vector.Pt{X: float64(pos.X) * sx, Y: float64(pos.Y) * sy}
}

// MouseDown starts a press: controls, handles, bodies or the bare page.
func (c *ScrapbookCanvas) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	c.pressed = true
	c.session.Press(c.views, c.toPage(e.Position))
}

func (c *ScrapbookCanvas) MouseUp(_ *desktop.MouseEvent) { c.release() }

// Dragged feeds the live gesture. Drags that began outside MouseDown are ignored.
func (c *ScrapbookCanvas) Dragged(e *fyne.DragEvent) {
	if !c.pressed {
		return
	}
	c.session.Controller().PointerMove(c.toPage(e.Position))
	c.Refresh()
}

func (c *ScrapbookCanvas) DragEnd() { c.release() }

func (c *ScrapbookCanvas) DoubleTapped(e *fyne.PointEvent) {
	c.session.DoubleClick(c.views, c.toPage(e.Position))
}

// Scrolled pinches the element under the pointer: vertical scroll scales,
// horizontal scroll rotates.
func (c *ScrapbookCanvas) Scrolled(e *fyne.ScrollEvent) {
	if c.pressed {
		return
	}
	c.session.Wheel(c.views, c.toPage(e.Position), float64(e.Scrolled.DX), float64(e.Scrolled.DY))
}

func (c *ScrapbookCanvas) MouseIn(_ *desktop.MouseEvent)    {}
func (c *ScrapbookCanvas) MouseMoved(_ *desktop.MouseEvent) {}

// MouseOut ends a scroll pinch when the pointer leaves the page.
func (c *ScrapbookCanvas) MouseOut() { c.session.EndWheel() }

func (c *ScrapbookCanvas) release() {
	if !c.pressed {
		return
	}
	c.pressed = false
	c.session.Release()
}

var (
	_ desktop.Mouseable   = (*ScrapbookCanvas)(nil)
	_ fyne.Draggable      = (*ScrapbookCanvas)(nil)
	_ fyne.DoubleTappable = (*ScrapbookCanvas)(nil)
	_ fyne.Scrollable     = (*ScrapbookCanvas)(nil)
	_ desktop.Hoverable   = (*ScrapbookCanvas)(nil)
)
