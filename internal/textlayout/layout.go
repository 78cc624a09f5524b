/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

// Abstractions for text measurement and line breaking.
// All measurement sits behind deterministic interfaces so tests can use a
// fixed-size face while the UI uses real font metrics.

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// FontSpec describes a requested font.
type FontSpec struct {
	Family string  // first family of a CSS-style list, e.g. "Pacifico"
	Size   float64 // px
	Weight int     // 100..900
	Italic bool
}

// Metrics provides font metrics in pixels for the resolved face.
type Metrics struct {
	Ascent, Descent, LineGap float64
}

// LineHeight is the baseline-to-baseline distance.
func (m Metrics) LineHeight() float64 { return m.Ascent + m.Descent + m.LineGap }

// Span is a run of text with the same font/style.
type Span struct {
	Text string
	Font FontSpec
}

// Line is a single laid out line with width and ascent/descent.
type Line struct {
	Spans   []Span
	Width   float64
	Ascent  float64
	Descent float64
}

// Text joins the line's spans.
func (l Line) Text() string {
	var b strings.Builder
	for _, s := range l.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// TextBox is the result of laying out text into a box width.
type TextBox struct {
	Lines   []Line
	Width   float64
	Height  float64
	Metrics Metrics
}

// Provider maps FontSpec to a concrete font.Face.
type Provider interface {
	Resolve(FontSpec) (font.Face, Metrics)
}

// Layouter performs line-breaking and measurement.
type Layouter interface {
	Layout(spans []Span, maxWidth float64) (TextBox, error)
}

// BasicProvider uses x/image/basicfont Face7x13 for deterministic tests.
// The requested size is ignored.
type BasicProvider struct{}

func (BasicProvider) Resolve(FontSpec) (font.Face, Metrics) {
	f := basicfont.Face7x13
	return f, metricsOf(f)
}

func metricsOf(f font.Face) Metrics {
	m := f.Metrics()
	return Metrics{
		Ascent:  float64(m.Ascent.Round()),
		Descent: float64(m.Descent.Round()),
		LineGap: float64(m.Height.Round() - m.Ascent.Round() - m.Descent.Round()),
	}
}

// WordWrapLayouter breaks on whitespace and newlines; it does not perform shaping
// or hyphenation. A single word wider than maxWidth gets a line of its own.
type WordWrapLayouter struct{ Provider Provider }

func NewWordWrap(provider Provider) *WordWrapLayouter { return &WordWrapLayouter{Provider: provider} }

func (l *WordWrapLayouter) Layout(spans []Span, maxWidth float64) (TextBox, error) {
	if l.Provider == nil {
		l.Provider = BasicProvider{}
	}
	var met Metrics
	if len(spans) > 0 {
		_, met = l.Provider.Resolve(spans[0].Font)
	} else {
		_, met = l.Provider.Resolve(FontSpec{})
	}
	cur := Line{Ascent: met.Ascent, Descent: met.Descent}
	box := TextBox{Metrics: met}
	addLine := func() {
		box.Lines = append(box.Lines, cur)
		if cur.Width > box.Width {
			box.Width = cur.Width
		}
		box.Height += met.LineHeight()
		cur = Line{Ascent: met.Ascent, Descent: met.Descent}
	}
	for _, sp := range spans {
		if sp.Text == "" {
			continue
		}
		face, _ := l.Provider.Resolve(sp.Font)
		drawer := &font.Drawer{Face: face}
		space := advance(drawer, " ")
		for li, para := range strings.Split(sp.Text, "\n") {
			if li > 0 {
				addLine()
			}
			for _, word := range strings.Fields(para) {
				w := advance(drawer, word)
				if len(cur.Spans) > 0 {
					if maxWidth > 0 && cur.Width+space+w > maxWidth {
						addLine()
					} else {
						cur.Spans = append(cur.Spans, Span{Text: " ", Font: sp.Font})
						cur.Width += space
					}
				}
				cur.Spans = append(cur.Spans, Span{Text: word, Font: sp.Font})
				cur.Width += w
			}
		}
	}
	// flush last line
	if len(cur.Spans) > 0 || len(box.Lines) == 0 {
		addLine()
	}
	return box, nil
}

func advance(d *font.Drawer, s string) float64 {
	if s == "" {
		return 0
	}
	return float64(d.MeasureString(s)) / 64 // fixed.Int26_6 to px
}

// Measure returns the single-line width and line height of spans.
func Measure(provider Provider, spans []Span) (w, h float64) {
	if provider == nil {
		provider = BasicProvider{}
	}
	var met Metrics
	for i, sp := range spans {
		face, m := provider.Resolve(sp.Font)
		if i == 0 || m.Ascent+m.Descent > met.Ascent+met.Descent {
			met = m
		}
		w += advance(&font.Drawer{Face: face}, sp.Text)
	}
	if len(spans) == 0 {
		_, met = provider.Resolve(FontSpec{})
	}
	return w, met.Ascent + met.Descent
}

// Block measures text wrapped at maxWidth with padding on every side, the way
// a text element's box is sized on the canvas. A zero maxWidth disables wrapping.
func Block(provider Provider, text string, spec FontSpec, maxWidth, padding float64) (w, h float64) {
	inner := maxWidth - 2*padding
	if maxWidth <= 0 || inner < 0 {
		inner = 0
	}
	box, _ := NewWordWrap(provider).Layout([]Span{{Text: text, Font: spec}}, inner)
	return box.Width + 2*padding, box.Height + 2*padding
}
