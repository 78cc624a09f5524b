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
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"goscrapbook/internal/config"
	"goscrapbook/internal/domain"
	"goscrapbook/internal/editor"
	"goscrapbook/internal/notify"
	"goscrapbook/internal/render"
	"goscrapbook/internal/telemetry"
	"goscrapbook/internal/textlayout"
	"goscrapbook/internal/vector"
)

// workspace is the editor window's content: toolbar, page canvas, page
// navigation and a status line for notices.
type workspace struct {
	session *editor.Session
	canvas  *ScrapbookCanvas
	content fyne.CanvasObject

	status     *widget.Label
	pageLabel  *widget.Label
	prev, next *widget.Button
	background *widget.Select
	// syncing suppresses the background select's callback while the
	// selection is being updated from the session.
	syncing bool
}

type workspaceDeps struct {
	Book      domain.Scrapbook
	Config    config.AppConfig
	Window    fyne.Window
	Images    render.ImageSource
	Fonts     textlayout.Provider
	Telemetry telemetry.Sink
	Logger    *slog.Logger
}

func newWorkspace(d workspaceDeps) *workspace {
	ws := &workspace{
		status:    widget.NewLabel("Ready"),
		pageLabel: widget.NewLabel(""),
	}
	page := vector.Size{W: d.Config.Canvas.Width, H: d.Config.Canvas.Height}
	dialogs := &editorDialogs{win: d.Window, images: d.Images, log: d.Logger}
	ws.session = editor.New(d.Book, editor.Options{
		Canvas:       page,
		SnapStep:     d.Config.Canvas.SnapStep,
		Footprint:    d.Config.Canvas.DragFootprint,
		Notifier:     notify.Multi(notify.LogNotifier{Logger: d.Logger}, notify.Func(ws.showNotice)),
		Telemetry:    d.Telemetry,
		OnOpenEditor: dialogs.open,
		OnChange:     ws.refresh,
		Logger:       d.Logger,
	})
	dialogs.session = ws.session

	comp := &render.Compositor{Fonts: d.Fonts, Images: d.Images}
	ws.canvas = NewScrapbookCanvas(ws.session, page, render.New(d.Fonts), comp)

	var names []string
	for _, b := range domain.Backgrounds {
		names = append(names, b.Name)
	}
	ws.background = widget.NewSelect(names, func(name string) {
		if ws.syncing {
			return
		}
		for _, b := range domain.Backgrounds {
			if b.Name == name {
				ws.session.ChangeBackground(b.Token)
				return
			}
		}
	})

	toolbar := container.NewHBox(
		widget.NewButton("Add Text", func() { ws.session.AddElement(domain.KindText) }),
		widget.NewButton("Add Photo", func() { ws.session.AddElement(domain.KindImage) }),
		widget.NewButton("Add Sticker", func() { ws.session.AddElement(domain.KindSticker) }),
		widget.NewLabel("Background"),
		ws.background,
		widget.NewButton("Save", ws.session.Save),
		widget.NewButton("Share", ws.session.Share),
	)

	ws.prev = widget.NewButton("Previous", func() { ws.session.PrevPage() })
	ws.next = widget.NewButton("Next", func() { ws.session.NextPage() })
	addPage := widget.NewButton("Add Page", func() { ws.session.AddPage() })
	nav := container.NewHBox(ws.prev, ws.pageLabel, addPage, ws.next)

	ws.content = container.NewBorder(
		toolbar,
		container.NewVBox(container.NewCenter(nav), ws.status),
		nil, nil,
		container.NewScroll(container.NewCenter(ws.canvas)),
	)
	ws.refresh()
	return ws
}

// refresh brings every view of the session up to date.
func (ws *workspace) refresh() {
	if ws.canvas == nil {
		return
	}
	s := ws.session
	ws.canvas.Refresh()
	ws.pageLabel.SetText(fmt.Sprintf("Page %d of %d", s.PageNumber(), s.PageCount()))
	setEnabled(ws.prev, s.CanPrev())
	setEnabled(ws.next, s.CanNext())
	ws.syncing = true
	ws.background.SetSelected(s.Background().Name)
	ws.syncing = false
}

func (ws *workspace) showNotice(n notify.Notice) {
	switch n.Level {
	case notify.Success:
		ws.status.Importance = widget.SuccessImportance
	case notify.Warning:
		ws.status.Importance = widget.WarningImportance
	default:
		ws.status.Importance = widget.MediumImportance
	}
	ws.status.SetText(n.Message)
}

func setEnabled(b *widget.Button, on bool) {
	if on {
		b.Enable()
	} else {
		b.Disable()
	}
}
