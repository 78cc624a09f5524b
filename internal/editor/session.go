/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package editor orchestrates a scrapbook editing session: it owns the
// scrapbook, tracks the current page, binds a canvas controller to it and
// turns toolbar and navigation commands into page updates.
package editor

import (
	"fmt"
	"log/slog"
	"time"

	"goscrapbook/internal/canvas"
	"goscrapbook/internal/domain"
	applog "goscrapbook/internal/log"
	"goscrapbook/internal/notify"
	"goscrapbook/internal/telemetry"
	"goscrapbook/internal/vector"
)

// Options configures a Session. Zero values take defaults.
type Options struct {
	Canvas    vector.Size
	SnapStep  float64
	Footprint float64

	Notifier  notify.Notifier
	Telemetry telemetry.Sink
	Now       func() time.Time

	// OnOpenEditor is asked to show the editor for an element entering edit mode.
	OnOpenEditor func(domain.Element)
	// OnChange fires after any change the view has to reflect.
	OnChange func()
	Logger   *slog.Logger
}

// Session is the editing state of one open scrapbook.
// It is not safe for concurrent use; drive it from the UI goroutine.
type Session struct {
	book domain.Scrapbook
	cur  int
	ctl  *canvas.Controller
	foot float64
	// wheel is the scroll-driven pinch, live while the controller pinches.
	wheel *wheelPinch

	notes    notify.Notifier
	sink     telemetry.Sink
	now      func() time.Time
	onEditor func(domain.Element)
	onChange func()
	log      *slog.Logger
}

// New opens book for editing on its first page. A scrapbook without pages
// gets a blank "Page 1".
func New(book domain.Scrapbook, opts Options) *Session {
	s := &Session{
		book:     book.Clone(),
		foot:     opts.Footprint,
		notes:    notify.Safe(opts.Notifier),
		sink:     opts.Telemetry,
		now:      opts.Now,
		onEditor: opts.OnOpenEditor,
		onChange: opts.OnChange,
		log:      opts.Logger,
	}
	if s.sink == nil {
		s.sink = telemetry.Nop{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.log == nil {
		s.log = applog.WithComponent("editor")
	}
	if s.foot <= 0 {
		s.foot = domain.DragFootprint
	}
	if len(s.book.Pages) == 0 {
		s.book.Pages = []domain.Page{domain.NewPage(pageTitle(1), s.now())}
	}
	size := opts.Canvas
	if size.W <= 0 || size.H <= 0 {
		size = vector.Size{W: 800, H: 600}
	}
	s.ctl = canvas.New(s.book.Pages[0].Elements, canvas.Options{
		Size:      size,
		SnapStep:  opts.SnapStep,
		Footprint: s.foot,
		OnChange:  s.canvasChanged,
		OnEdit:    s.openEditor,
		Logger:    applog.WithComponent("canvas"),
	})
	return s
}

func pageTitle(n int) string { return fmt.Sprintf("Page %d", n) }

// Controller is the canvas controller bound to the current page.
func (s *Session) Controller() *canvas.Controller { return s.ctl }

// Scrapbook returns a deep copy of the scrapbook.
func (s *Session) Scrapbook() domain.Scrapbook { return s.book.Clone() }

// Snapshot is Scrapbook under the name crash.Recover expects.
func (s *Session) Snapshot() domain.Scrapbook { return s.Scrapbook() }

// CurrentPage returns a copy of the page being edited.
func (s *Session) CurrentPage() domain.Page { return s.book.Pages[s.cur].Clone() }

// PageNumber is the 1-based number of the current page.
func (s *Session) PageNumber() int { return s.cur + 1 }
func (s *Session) PageCount() int  { return len(s.book.Pages) }
func (s *Session) CanPrev() bool   { return s.cur > 0 }
func (s *Session) CanNext() bool   { return s.cur < len(s.book.Pages)-1 }

// Background returns the current page's background, falling back to paper
// for tokens the palette does not know.
func (s *Session) Background() domain.Background {
	bg, _ := domain.BackgroundFor(s.book.Pages[s.cur].Background)
	return bg
}

// canvasChanged stores a controller commit into the current page.
func (s *Session) canvasChanged(elems []domain.Element) {
	s.storeElements(elems)
	s.changed()
}

func (s *Session) openEditor(el domain.Element) {
	s.log.Debug("open editor", slog.String("element", el.ID), slog.String("kind", string(el.Kind())))
	if s.onEditor != nil {
		s.onEditor(el)
	}
}

// storeElements writes elems into the current page and stamps it.
func (s *Session) storeElements(elems []domain.Element) {
	now := s.now()
	s.book.Pages[s.cur] = s.book.Pages[s.cur].WithElements(elems, now)
	s.book.UpdatedAt = now
}

// touch stamps the current page and the scrapbook.
func (s *Session) touch() {
	now := s.now()
	s.book.Pages[s.cur].UpdatedAt = now
	s.book.UpdatedAt = now
}

func (s *Session) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}
