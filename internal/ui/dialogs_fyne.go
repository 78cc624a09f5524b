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
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"goscrapbook/internal/domain"
	"goscrapbook/internal/editor"
	"goscrapbook/internal/editors"
	"goscrapbook/internal/notify"
	"goscrapbook/internal/render"
	"goscrapbook/internal/vector"
)

// editorDialogs shows the per-kind editor for an element entering edit mode.
// Saving replaces the element; either button leaves edit mode.
type editorDialogs struct {
	win     fyne.Window
	session *editor.Session
	images  render.ImageSource
	log     *slog.Logger
}

func (d *editorDialogs) open(el domain.Element) {
	d.log.Debug("open editor", slog.String("element", el.ID), slog.String("kind", string(el.Kind())))
	var content fyne.CanvasObject
	var commit func() domain.Element
	var title string
	switch el.Kind() {
	case domain.KindText:
		draft, _ := editors.NewTextDraft(el)
		title, content, commit = "Edit Text", d.textForm(draft), draft.Commit
	case domain.KindImage:
		draft, _ := editors.NewImageDraft(el)
		title, content, commit = "Edit Photo", d.imageForm(draft), draft.Commit
	case domain.KindSticker:
		draft, _ := editors.NewStickerDraft(el)
		title, content, commit = "Choose Sticker", d.stickerForm(draft), draft.Commit
	default:
		d.session.CloseEditor()
		return
	}
	dlg := dialog.NewCustomConfirm(title, "Save", "Cancel", content, func(save bool) {
		if save {
			d.session.UpdateElement(commit())
		}
		d.session.CloseEditor()
	}, d.win)
	dlg.Resize(fyne.NewSize(460, 0))
	dlg.Show()
}

func (d *editorDialogs) textForm(draft *editors.TextDraft) fyne.CanvasObject {
	content := widget.NewMultiLineEntry()
	content.SetText(draft.Content())
	content.SetMinRowsVisible(3)
	content.OnChanged = draft.SetContent

	var presets []string
	for _, p := range domain.FontPresets {
		presets = append(presets, p.Name)
	}
	// Selections are seeded before the callbacks are attached: SetSelected
	// fires OnChanged, which would write presentation defaults into the draft.
	font := widget.NewSelect(presets, nil)
	if name := draft.FontPreset(); name != "" {
		font.Selected = name
	} else {
		font.PlaceHolder = draft.FontFamily()
	}
	font.OnChanged = func(name string) { draft.SetFontPreset(name) }

	size := widget.NewEntry()
	size.SetText(strconv.FormatFloat(draft.FontSize(), 'f', -1, 64))
	size.Validator = func(s string) error {
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return fmt.Errorf("enter a number between %g and %g", domain.MinFontSize, domain.MaxFontSize)
		}
		return nil
	}
	size.OnChanged = func(s string) { _ = draft.SetFontSizeText(s) }

	col := widget.NewEntry()
	col.SetText(draft.Color())
	col.Validator = func(s string) error {
		_, err := vector.ParseHex(s)
		return err
	}
	col.OnChanged = func(s string) { _ = draft.SetColor(s) }

	aligns := []string{string(domain.AlignLeft), string(domain.AlignCenter), string(domain.AlignRight)}
	align := widget.NewRadioGroup(aligns, nil)
	align.Horizontal = true
	align.Selected = string(draft.Align())
	align.OnChanged = func(s string) {
		if s != "" {
			draft.SetAlign(domain.TextAlign(s))
		}
	}

	return widget.NewForm(
		widget.NewFormItem("Text", content),
		widget.NewFormItem("Font", font),
		widget.NewFormItem("Size", size),
		widget.NewFormItem("Color", col),
		widget.NewFormItem("Align", align),
	)
}

func (d *editorDialogs) imageForm(draft *editors.ImageDraft) fyne.CanvasObject {
	preview := canvas.NewImageFromImage(nil)
	preview.FillMode = canvas.ImageFillContain
	preview.SetMinSize(fyne.NewSize(240, 180))
	showPreview := func() {
		if !draft.HasImage() {
			preview.Image = nil
		} else if img, ok := d.images.Image(draft.Src()); ok {
			preview.Image = img
		}
		preview.Refresh()
	}
	showPreview()

	alt := widget.NewEntry()
	alt.SetText(draft.Alt())
	alt.OnChanged = draft.SetAlt

	status := widget.NewLabel("")
	pick := widget.NewButton("Choose Photo…", func() {
		open := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
			if err != nil {
				d.session.Notify(notify.Warningf("Could not open file: %v", err))
				return
			}
			if rc == nil {
				return
			}
			u := rc.URI()
			if err := editors.CheckFileType(u.Name(), u.MimeType()); err != nil {
				_ = rc.Close()
				d.session.Notify(notify.Warningf("Please select an image file"))
				return
			}
			status.SetText("Loading " + u.Name() + "…")
			src := newCloseOnEOF(rc)
			draft.LoadAsync(context.Background(), src, func(up editors.Upload, err error) {
				_ = src.Close()
				fyne.Do(func() {
					if err != nil {
						status.SetText("")
						d.session.Notify(notify.Warningf("Could not load image: %v", err))
						return
					}
					status.SetText(fmt.Sprintf("%s (%d×%d)", u.Name(), up.Width, up.Height))
					showPreview()
				})
			})
		}, d.win)
		open.SetFilter(storage.NewMimeTypeFileFilter([]string{"image/*"}))
		open.Show()
	})
	return container.NewVBox(preview, pick, status, widget.NewForm(widget.NewFormItem("Caption", alt)))
}

func (d *editorDialogs) stickerForm(draft *editors.StickerDraft) fyne.CanvasObject {
	preview := canvas.NewImageFromImage(nil)
	preview.FillMode = canvas.ImageFillContain
	preview.SetMinSize(fyne.NewSize(96, 96))
	showPreview := func() {
		var img image.Image
		if m, ok := d.images.Image(draft.Src()); ok {
			img = m
		}
		preview.Image = img
		preview.Refresh()
	}
	showPreview()

	alt := widget.NewEntry()
	alt.SetText(draft.Alt())
	alt.OnChanged = draft.SetAlt

	var names []string
	selected := ""
	for _, c := range editors.StickerChoices {
		names = append(names, c.Name)
		if c.Src == draft.Src() {
			selected = c.Name
		}
	}
	choices := widget.NewRadioGroup(names, nil)
	choices.Horizontal = true
	choices.Selected = selected
	choices.OnChanged = func(name string) {
		if draft.Choose(name) {
			alt.SetText(draft.Alt())
			showPreview()
		}
	}
	return container.NewVBox(container.NewCenter(preview), choices, widget.NewForm(widget.NewFormItem("Caption", alt)))
}

// closeOnEOF closes the picked file once it has been read to the end, so a
// load discarded in favor of a newer pick still releases its file.
type closeOnEOF struct {
	rc   io.ReadCloser
	once sync.Once
}

func newCloseOnEOF(rc io.ReadCloser) *closeOnEOF { return &closeOnEOF{rc: rc} }

func (c *closeOnEOF) Read(p []byte) (int, error) {
	n, err := c.rc.Read(p)
	if err != nil {
		_ = c.Close()
	}
	return n, err
}

func (c *closeOnEOF) Close() error {
	var err error
	c.once.Do(func() { err = c.rc.Close() })
	return err
}
