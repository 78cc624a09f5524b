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

	"goscrapbook/internal/domain"
	"goscrapbook/internal/notify"
	"goscrapbook/internal/telemetry"
	"goscrapbook/internal/vector"
)

var addedMessage = map[domain.Kind]string{
	domain.KindText:    "Text element added",
	domain.KindImage:   "Image added",
	domain.KindSticker: "Sticker added",
}

// AddElement appends a default element of kind k near the middle of the
// canvas, on top of everything else, and opens its editor. Only the
// editable kinds can be added.
func (s *Session) AddElement(k domain.Kind) (string, bool) {
	data, ok := domain.DefaultData(k)
	if !ok {
		return "", false
	}
	page := s.book.Pages[s.cur]
	el := domain.Element{
		ID:     domain.NewID(),
		ZIndex: domain.MaxZ(page.Elements) + 1,
		Data:   data,
	}
	el.X, el.Y = s.placement()

	s.ctl.SetElements(domain.Append(page.Elements, el))
	s.storeElements(s.ctl.Elements())
	s.ctl.DoubleTap(el.ID)

	s.log.Info("element added", slog.String("element", el.ID), slog.String("kind", string(k)))
	s.sink.Event(telemetry.EventElementAdded, map[string]any{"kind": string(k)})
	s.notes.Notify(notify.Successf("%s", addedMessage[k]))
	s.changed()
	return el.ID, true
}

// placement is where new elements go: the canvas center, or the fixed
// default position when the canvas has no size yet.
func (s *Session) placement() (float64, float64) {
	size := s.ctl.Size()
	if size.W <= 0 || size.H <= 0 {
		return domain.DefaultCreatePosition, domain.DefaultCreatePosition
	}
	return vector.ClampPosition(size.W/2, size.H/2, size, s.foot)
}

// UpdateElement replaces the element with the same id, typically an editor
// commit. Unknown ids are ignored.
func (s *Session) UpdateElement(el domain.Element) bool {
	out, ok := domain.Replace(s.book.Pages[s.cur].Elements, el)
	if !ok {
		return false
	}
	s.ctl.SetElements(out)
	s.storeElements(s.ctl.Elements())
	switch el.Kind() {
	case domain.KindImage:
		s.notes.Notify(notify.Successf("Image updated"))
	case domain.KindSticker:
		s.notes.Notify(notify.Successf("Sticker updated"))
	}
	s.changed()
	return true
}

// CloseEditor leaves edit mode after the editor was dismissed.
func (s *Session) CloseEditor() {
	s.ctl.EndEdit()
	s.changed()
}

// RemoveElement deletes id from the current page.
func (s *Session) RemoveElement(id string) bool {
	el, found := domain.Find(s.book.Pages[s.cur].Elements, id)
	if !found || !s.ctl.Remove(id) {
		return false
	}
	s.log.Info("element removed", slog.String("element", id))
	s.sink.Event(telemetry.EventElementRemoved, map[string]any{"kind": string(el.Kind())})
	return true
}

// ChangeBackground sets the current page's background token. Tokens outside
// the palette are rejected.
func (s *Session) ChangeBackground(token string) bool {
	bg, ok := domain.BackgroundFor(token)
	if !ok {
		s.log.Debug("unknown background", slog.String("token", token))
		return false
	}
	s.book.Pages[s.cur].Background = bg.Token
	s.touch()
	s.sink.Event(telemetry.EventBackgroundChanged, map[string]any{"background": bg.Token})
	s.notes.Notify(notify.Successf("Background changed to %s", bg.Name))
	s.changed()
	return true
}

// GoToPage switches to the 1-based page n. Out-of-range numbers are ignored.
func (s *Session) GoToPage(n int) bool {
	if n < 1 || n > len(s.book.Pages) || n-1 == s.cur {
		return false
	}
	s.cur = n - 1
	s.ctl.Reset(s.book.Pages[s.cur].Elements)
	s.log.Debug("page switched", slog.Int("page", n))
	s.changed()
	return true
}

func (s *Session) NextPage() bool { return s.GoToPage(s.cur + 2) }
func (s *Session) PrevPage() bool { return s.GoToPage(s.cur) }

// AddPage appends a blank page and switches to it.
func (s *Session) AddPage() domain.Page {
	now := s.now()
	p := domain.NewPage(pageTitle(len(s.book.Pages)+1), now)
	s.book.Pages = append(s.book.Pages, p)
	s.book.UpdatedAt = now
	s.cur = len(s.book.Pages) - 1
	s.ctl.Reset(p.Elements)

	s.log.Info("page added", slog.String("page", p.ID), slog.Int("count", len(s.book.Pages)))
	s.sink.Event(telemetry.EventPageAdded, map[string]any{"pages": len(s.book.Pages)})
	s.notes.Notify(notify.Successf("New page added"))
	s.changed()
	return p.Clone()
}

// Save only confirms; scrapbooks live in memory.
func (s *Session) Save() {
	s.log.Info("save requested", slog.String("scrapbook", s.book.ID))
	s.notes.Notify(notify.Successf("Scrapbook saved successfully!"))
}

// Share only informs; there is nothing to share to.
func (s *Session) Share() {
	s.log.Info("share requested", slog.String("scrapbook", s.book.ID))
	s.notes.Notify(notify.Infof("Sharing is not available yet"))
}

// Notify forwards n to the session's notifier, e.g. for upload errors
// surfaced by an editor dialog.
func (s *Session) Notify(n notify.Notice) { s.notes.Notify(n) }
