/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goscrapbook/internal/canvas"
	"goscrapbook/internal/domain"
	"goscrapbook/internal/notify"
	"goscrapbook/internal/vector"
)

type sinkEvent struct {
	name  string
	props map[string]any
}

type recordingSink struct{ events []sinkEvent }

func (r *recordingSink) Event(name string, props map[string]any) {
	r.events = append(r.events, sinkEvent{name, props})
}

func (r *recordingSink) names() []string {
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.name
	}
	return out
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time {
	c.t = c.t.Add(time.Minute)
	return c.t
}

type fixture struct {
	s       *Session
	notes   *notify.Recorder
	sink    *recordingSink
	clock   *clock
	opened  []string
	changes int
}

var epoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func demoBook() domain.Scrapbook {
	p1 := domain.NewPage("Page 1", epoch)
	p1.Elements = []domain.Element{
		{ID: "t1", X: 50, Y: 40, ZIndex: 1, Data: domain.TextData{Content: "hi", FontSize: 20}},
		{ID: "s1", X: 300, Y: 200, ZIndex: 3, Data: domain.StickerData{Src: "/s.png", Width: 80, Height: 80}},
		{ID: "d1", X: 600, Y: 400, ZIndex: 2, Data: domain.DrawingData{}},
	}
	p2 := domain.NewPage("Page 2", epoch)
	p2.Background = "sage"
	p3 := domain.NewPage("Page 3", epoch)
	return domain.NewScrapbook("Summer", epoch, p1, p2, p3)
}

func newFixture(t *testing.T, book domain.Scrapbook) *fixture {
	t.Helper()
	f := &fixture{notes: &notify.Recorder{}, sink: &recordingSink{}, clock: &clock{t: epoch}}
	f.s = New(book, Options{
		Canvas:       vector.Size{W: 800, H: 600},
		Notifier:     f.notes,
		Telemetry:    f.sink,
		Now:          f.clock.now,
		OnOpenEditor: func(el domain.Element) { f.opened = append(f.opened, el.ID) },
		OnChange:     func() { f.changes++ },
	})
	return f
}

func lastNotice(t *testing.T, f *fixture) notify.Notice {
	t.Helper()
	n, ok := f.notes.Last()
	require.True(t, ok, "no notice recorded")
	return n
}

func TestNewSessionStartsOnFirstPage(t *testing.T) {
	f := newFixture(t, demoBook())
	assert.Equal(t, 1, f.s.PageNumber())
	assert.Equal(t, 3, f.s.PageCount())
	assert.False(t, f.s.CanPrev())
	assert.True(t, f.s.CanNext())
	assert.Len(t, f.s.Controller().Elements(), 3)
}

func TestNewSessionWithoutPagesAddsOne(t *testing.T) {
	f := newFixture(t, domain.NewScrapbook("Empty", epoch))
	require.Equal(t, 1, f.s.PageCount())
	assert.Equal(t, "Page 1", f.s.CurrentPage().Title)
	assert.Equal(t, domain.DefaultBackground, f.s.Background().Token)
}

func TestAddElementPlacesOnTopAndOpensEditor(t *testing.T) {
	f := newFixture(t, demoBook())

	id, ok := f.s.AddElement(domain.KindText)
	require.True(t, ok)

	page := f.s.CurrentPage()
	el, found := domain.Find(page.Elements, id)
	require.True(t, found)
	assert.Equal(t, 4, el.ZIndex)
	assert.Equal(t, 400.0, el.X)
	assert.Equal(t, 300.0, el.Y)
	assert.Equal(t, domain.DefaultTextContent, el.Data.(domain.TextData).Content)

	assert.Equal(t, []string{id}, f.opened)
	assert.Equal(t, id, f.s.Controller().Editing())
	assert.Equal(t, notify.Successf("Text element added"), lastNotice(t, f))
	assert.Equal(t, []string{"element_added"}, f.sink.names())
	assert.Equal(t, "text", f.sink.events[0].props["kind"])
	assert.Equal(t, page.UpdatedAt, f.s.Scrapbook().UpdatedAt)
	assert.True(t, page.UpdatedAt.After(epoch))
	assert.Positive(t, f.changes)
}

func TestAddElementOnEmptyPageStartsAtOne(t *testing.T) {
	f := newFixture(t, demoBook())
	require.True(t, f.s.GoToPage(3))
	id, ok := f.s.AddElement(domain.KindSticker)
	require.True(t, ok)
	el, _ := domain.Find(f.s.CurrentPage().Elements, id)
	assert.Equal(t, 1, el.ZIndex)
	assert.Equal(t, notify.Successf("Sticker added"), lastNotice(t, f))
}

func TestAddElementRejectsNonEditableKinds(t *testing.T) {
	f := newFixture(t, demoBook())
	before := f.s.CurrentPage()
	_, ok := f.s.AddElement(domain.KindDrawing)
	assert.False(t, ok)
	_, ok = f.s.AddElement(domain.Kind("video"))
	assert.False(t, ok)
	assert.Equal(t, before, f.s.CurrentPage())
	assert.Empty(t, f.notes.Notices())
}

func TestAddThenRemoveRestoresElements(t *testing.T) {
	f := newFixture(t, demoBook())
	before := f.s.CurrentPage().Elements

	id, ok := f.s.AddElement(domain.KindImage)
	require.True(t, ok)
	require.True(t, f.s.RemoveElement(id))

	assert.Equal(t, before, f.s.CurrentPage().Elements)
	assert.Empty(t, f.s.Controller().Editing())
	assert.Equal(t, []string{"element_added", "element_removed"}, f.sink.names())
}

func TestRemoveUnknownIsNoop(t *testing.T) {
	f := newFixture(t, demoBook())
	stamp := f.s.CurrentPage().UpdatedAt
	assert.False(t, f.s.RemoveElement("nope"))
	assert.Equal(t, stamp, f.s.CurrentPage().UpdatedAt)
	assert.Empty(t, f.sink.events)
}

func TestRemovePlaceholder(t *testing.T) {
	f := newFixture(t, demoBook())
	require.True(t, f.s.RemoveElement("d1"))
	_, found := domain.Find(f.s.CurrentPage().Elements, "d1")
	assert.False(t, found)
}

func TestUpdateElementReplacesAndStamps(t *testing.T) {
	f := newFixture(t, demoBook())
	el, _ := domain.Find(f.s.CurrentPage().Elements, "s1")
	sd := el.Data.(domain.StickerData)
	sd.Src = "/star.png"
	el.Data = sd

	require.True(t, f.s.UpdateElement(el))

	got, _ := domain.Find(f.s.CurrentPage().Elements, "s1")
	assert.Equal(t, el, got)
	assert.Equal(t, notify.Successf("Sticker updated"), lastNotice(t, f))
	assert.True(t, f.s.CurrentPage().UpdatedAt.After(epoch))

	got2, _ := domain.Find(f.s.Controller().Elements(), "s1")
	assert.Equal(t, el, got2, "controller sees the update")
}

func TestUpdateElementUnknownID(t *testing.T) {
	f := newFixture(t, demoBook())
	assert.False(t, f.s.UpdateElement(domain.Element{ID: "ghost", Data: domain.TextData{}}))
	assert.Empty(t, f.notes.Notices())
}

func TestTextEditorRoundTripThroughSession(t *testing.T) {
	f := newFixture(t, demoBook())
	require.True(t, f.s.Controller().DoubleTap("t1"))
	require.Equal(t, []string{"t1"}, f.opened)

	el, _ := domain.Find(f.s.CurrentPage().Elements, "t1")
	td := el.Data.(domain.TextData)
	td.Content = "bye"
	el.Data = td
	require.True(t, f.s.UpdateElement(el))
	f.s.CloseEditor()

	got, _ := domain.Find(f.s.CurrentPage().Elements, "t1")
	assert.Equal(t, domain.TextData{Content: "bye", FontSize: 20}, got.Data)
	assert.Empty(t, f.s.Controller().Editing())
	assert.Equal(t, "t1", f.s.Controller().Active())
}

func TestChangeBackground(t *testing.T) {
	f := newFixture(t, demoBook())
	require.True(t, f.s.ChangeBackground("lavender"))
	assert.Equal(t, "lavender", f.s.CurrentPage().Background)
	assert.Equal(t, "Lavender", f.s.Background().Name)
	assert.Equal(t, notify.Successf("Background changed to Lavender"), lastNotice(t, f))
	assert.Equal(t, f.s.CurrentPage().UpdatedAt, f.s.Scrapbook().UpdatedAt)

	assert.False(t, f.s.ChangeBackground("neon"))
	assert.Equal(t, "lavender", f.s.CurrentPage().Background)
}

func TestNavigationBounds(t *testing.T) {
	f := newFixture(t, demoBook())

	assert.False(t, f.s.PrevPage())
	assert.False(t, f.s.GoToPage(0))
	assert.False(t, f.s.GoToPage(4))
	assert.Equal(t, 1, f.s.PageNumber())

	require.True(t, f.s.NextPage())
	assert.Equal(t, 2, f.s.PageNumber())
	assert.Equal(t, "sage", f.s.Background().Token)
	require.True(t, f.s.GoToPage(3))
	assert.False(t, f.s.CanNext())
	assert.False(t, f.s.NextPage())
	require.True(t, f.s.PrevPage())
	assert.Equal(t, 2, f.s.PageNumber())
}

func TestPageSwitchRebindsController(t *testing.T) {
	f := newFixture(t, demoBook())
	ctl := f.s.Controller()
	require.True(t, ctl.PointerDown("s1", vector.Pt{X: 310, Y: 210}))
	require.Equal(t, canvas.Dragging, ctl.State())

	require.True(t, f.s.NextPage())
	assert.Equal(t, canvas.Idle, ctl.State())
	assert.Equal(t, 0, ctl.Hub().Listeners())
	assert.Empty(t, ctl.Active())
	assert.Empty(t, ctl.Elements())

	require.True(t, f.s.PrevPage())
	assert.Len(t, ctl.Elements(), 3)
}

func TestCanvasGesturesLandInTheScrapbook(t *testing.T) {
	f := newFixture(t, demoBook())
	ctl := f.s.Controller()

	require.True(t, ctl.PointerDown("t1", vector.Pt{X: 60, Y: 50}))
	ctl.PointerMove(vector.Pt{X: 160, Y: 150})
	ctl.PointerUp()

	el, _ := domain.Find(f.s.Scrapbook().Pages[0].Elements, "t1")
	assert.Equal(t, 150.0, el.X)
	assert.Equal(t, 140.0, el.Y)
	assert.Equal(t, 4, el.ZIndex)
	assert.Equal(t, f.s.Scrapbook().Pages[0].UpdatedAt, f.s.Scrapbook().UpdatedAt)
	assert.Equal(t, 0, ctl.Hub().Listeners())
}

func TestAddPageSwitchesToIt(t *testing.T) {
	f := newFixture(t, demoBook())
	p := f.s.AddPage()
	assert.Equal(t, "Page 4", p.Title)
	assert.Equal(t, 4, f.s.PageNumber())
	assert.Equal(t, 4, f.s.PageCount())
	assert.Empty(t, f.s.CurrentPage().Elements)
	assert.Equal(t, domain.DefaultBackground, p.Background)
	assert.Equal(t, notify.Successf("New page added"), lastNotice(t, f))
	assert.Equal(t, []string{"page_added"}, f.sink.names())
	assert.Equal(t, p.CreatedAt, f.s.Scrapbook().UpdatedAt)
}

func TestSaveAndShareOnlyNotify(t *testing.T) {
	f := newFixture(t, demoBook())
	before := f.s.Scrapbook()
	f.s.Save()
	assert.Equal(t, notify.Successf("Scrapbook saved successfully!"), lastNotice(t, f))
	f.s.Share()
	assert.Equal(t, notify.Info, lastNotice(t, f).Level)
	assert.Equal(t, before, f.s.Scrapbook())
}

func TestSnapshotIsDetached(t *testing.T) {
	f := newFixture(t, demoBook())
	snap := f.s.Snapshot()
	snap.Pages[0].Elements[0].X = 999
	snap.Pages[0].Title = "changed"
	assert.Equal(t, 50.0, f.s.CurrentPage().Elements[0].X)
	assert.Equal(t, "Page 1", f.s.CurrentPage().Title)
}

func TestPanickingNotifierDoesNotFailCommands(t *testing.T) {
	s := New(demoBook(), Options{Notifier: notify.Func(func(notify.Notice) { panic("toast") })})
	_, ok := s.AddElement(domain.KindSticker)
	assert.True(t, ok)
	assert.Equal(t, 4, len(s.CurrentPage().Elements))
}
