/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Node is a hit region in canvas space: a shape with its own transform and paint.
// The renderer builds one per element and per control so rotated elements hit-test exactly.
type Node interface {
	Bounds() Rect
	Transform() Affine2D
	SetTransform(Affine2D)
	Fill() Fill
	Stroke() Stroke
	Hit(p Pt) bool
}

type baseNode struct {
	xf     Affine2D
	fill   Fill
	stroke Stroke
}

func (b *baseNode) Transform() Affine2D     { return b.xf }
func (b *baseNode) SetTransform(m Affine2D) { b.xf = m }
func (b *baseNode) Fill() Fill              { return b.fill }
func (b *baseNode) Stroke() Stroke          { return b.stroke }

// local maps a canvas point into the node's untransformed space.
func (b *baseNode) local(p Pt) Pt { return b.xf.Invert().Apply(p) }

// transformedBounds is the axis-aligned box of r's four corners after xf.
func transformedBounds(xf Affine2D, r Rect) Rect {
	corners := [4]Pt{{r.X, r.Y}, {r.X + r.W, r.Y}, {r.X, r.Y + r.H}, {r.X + r.W, r.Y + r.H}}
	p := xf.Apply(corners[0])
	minX, minY, maxX, maxY := p.X, p.Y, p.X, p.Y
	for _, c := range corners[1:] {
		p = xf.Apply(c)
		minX, minY = min(minX, p.X), min(minY, p.Y)
		maxX, maxY = max(maxX, p.X), max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// RectNode is a rectangle before transform.
type RectNode struct {
	baseNode
	rect Rect
}

func NewRect(r Rect, f Fill, s Stroke) *RectNode {
	return &RectNode{baseNode: baseNode{xf: Identity, fill: f, stroke: s}, rect: r}
}

func (n *RectNode) Rect() Rect    { return n.rect }
func (n *RectNode) Bounds() Rect  { return transformedBounds(n.xf, n.rect) }
func (n *RectNode) Hit(p Pt) bool { return n.rect.Contains(n.local(p)) }

// EllipseNode is an ellipse inscribed in rect; round controls use it.
type EllipseNode struct {
	baseNode
	rect Rect
}

func NewEllipse(r Rect, f Fill, s Stroke) *EllipseNode {
	return &EllipseNode{baseNode: baseNode{xf: Identity, fill: f, stroke: s}, rect: r}
}

// NewCircle is an EllipseNode of radius r around c.
func NewCircle(c Pt, r float64, f Fill, s Stroke) *EllipseNode {
	return NewEllipse(R(c.X-r, c.Y-r, 2*r, 2*r), f, s)
}

func (n *EllipseNode) Rect() Rect   { return n.rect }
func (n *EllipseNode) Bounds() Rect { return transformedBounds(n.xf, n.rect) }

func (n *EllipseNode) Hit(p Pt) bool {
	q := n.local(p)
	c := n.rect.Center()
	rx, ry := n.rect.W/2, n.rect.H/2
	if rx == 0 || ry == 0 {
		return false
	}
	dx := (q.X - c.X) / rx
	dy := (q.Y - c.Y) / ry
	return dx*dx+dy*dy <= 1
}

// RoundedRectNode uses uniform radii for simplicity.
type RoundedRectNode struct {
	baseNode
	rect Rect
	r    float64
}

func NewRoundedRect(r Rect, radius float64, f Fill, s Stroke) *RoundedRectNode {
	return &RoundedRectNode{baseNode: baseNode{xf: Identity, fill: f, stroke: s}, rect: r, r: radius}
}

func (n *RoundedRectNode) Rect() Rect      { return n.rect }
func (n *RoundedRectNode) Radius() float64 { return n.r }
func (n *RoundedRectNode) Bounds() Rect    { return transformedBounds(n.xf, n.rect) }

func (n *RoundedRectNode) Hit(p Pt) bool {
	q := n.local(p)
	if !n.rect.Contains(q) {
		return false
	}
	core := n.rect.Inset(n.r, n.r)
	if core.W > 0 && core.H > 0 && core.Contains(q) {
		return true
	}
	// bands between the corner circles
	if n.rect.Inset(n.r, 0).Contains(q) || n.rect.Inset(0, n.r).Contains(q) {
		return true
	}
	cx := []float64{n.rect.X + n.r, n.rect.X + n.rect.W - n.r}
	cy := []float64{n.rect.Y + n.r, n.rect.Y + n.rect.H - n.r}
	r2 := n.r * n.r
	for _, x := range cx {
		for _, y := range cy {
			dx := q.X - x
			dy := q.Y - y
			if dx*dx+dy*dy <= r2 {
				return true
			}
		}
	}
	return false
}
