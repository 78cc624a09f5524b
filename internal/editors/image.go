/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editors

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"goscrapbook/internal/domain"
	applog "goscrapbook/internal/log"
)

// ErrNotImage rejects an upload before any bytes are read.
var ErrNotImage = errors.New("please select an image file")

// MaxUploadBytes bounds how much of a picked file is read.
const MaxUploadBytes = 20 << 20

// CheckFileType rejects anything whose MIME type (or, when absent, extension)
// is not an image.
func CheckFileType(name, mimeType string) error {
	mt := strings.TrimSpace(mimeType)
	if mt == "" {
		mt = mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	}
	if !strings.HasPrefix(strings.ToLower(mt), "image/") {
		return fmt.Errorf("%s: %w", name, ErrNotImage)
	}
	return nil
}

// Upload is a picked image ready for display.
type Upload struct {
	DataURI string
	MIME    string
	Format  string // decoder name, e.g. "png"
	Width   int    // source pixels
	Height  int
}

// Load reads an uploaded picture into a data URI and reports its pixel size.
// SVG passes through without dimensions.
func Load(ctx context.Context, r io.Reader) (Upload, error) {
	if err := ctx.Err(); err != nil {
		return Upload{}, err
	}
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return Upload{}, fmt.Errorf("read image: %w", err)
	}
	if len(data) > MaxUploadBytes {
		return Upload{}, fmt.Errorf("image larger than %d bytes", MaxUploadBytes)
	}
	if err := ctx.Err(); err != nil {
		return Upload{}, err
	}
	mt := http.DetectContentType(data)
	if isSVG(data) {
		mt = "image/svg+xml"
	}
	if mt == "image/svg+xml" {
		return Upload{MIME: mt, Format: "svg", DataURI: dataURI(mt, data)}, nil
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		if !strings.HasPrefix(mt, "image/") {
			return Upload{}, ErrNotImage
		}
		return Upload{}, fmt.Errorf("decode image: %w", err)
	}
	// content sniffing does not know every format the decoders do (tiff)
	if !strings.HasPrefix(mt, "image/") {
		mt = "image/" + format
	}
	return Upload{MIME: mt, Format: format, Width: cfg.Width, Height: cfg.Height, DataURI: dataURI(mt, data)}, nil
}

func dataURI(mt string, data []byte) string {
	return "data:" + mt + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func isSVG(data []byte) bool {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	return bytes.Contains(bytes.ToLower(head), []byte("<svg"))
}

// ImageDraft edits an image element. Uploads may complete on another
// goroutine, so the draft guards its state.
type ImageDraft struct {
	mu   sync.Mutex
	el   domain.Element
	data domain.ImageData
	gen  uint64
}

func NewImageDraft(el domain.Element) (*ImageDraft, bool) {
	d, ok := el.Data.(domain.ImageData)
	if !ok {
		return nil, false
	}
	return &ImageDraft{el: el, data: d}, true
}

func (d *ImageDraft) Src() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.data.Src
}

// Alt is the alt text shown in the editor; unset shows a generic caption.
func (d *ImageDraft) Alt() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.data.Alt == "" {
		return "Scrapbook image"
	}
	return d.data.Alt
}

func (d *ImageDraft) SetAlt(alt string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.data.Alt = alt
}

// HasImage reports whether a real picture (not the placeholder) is set.
func (d *ImageDraft) HasImage() bool {
	s := d.Src()
	return s != "" && s != domain.DefaultImageSrc
}

// Apply sets the uploaded picture. The element keeps its width and takes its
// height from the picture's aspect ratio.
func (d *ImageDraft) Apply(up Upload) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.apply(up)
}

func (d *ImageDraft) apply(up Upload) {
	d.data.Src = up.DataURI
	if up.Width <= 0 || up.Height <= 0 {
		return
	}
	w := d.data.Width
	if w <= 0 {
		w = domain.DefaultImageWidth
	}
	h := w * float64(up.Height) / float64(up.Width)
	if h < domain.MinImageSize {
		w, h = w*domain.MinImageSize/h, domain.MinImageSize
	}
	d.data.Width, d.data.Height = w, h
}

// LoadAsync decodes r in the background. Only the most recent call may
// update the draft or invoke its callback; done runs on the loader goroutine.
func (d *ImageDraft) LoadAsync(ctx context.Context, r io.Reader, done func(Upload, error)) {
	d.mu.Lock()
	d.gen++
	gen := d.gen
	d.mu.Unlock()

	go func() {
		up, err := Load(ctx, r)
		d.mu.Lock()
		stale := gen != d.gen
		if !stale && err == nil {
			d.apply(up)
		}
		d.mu.Unlock()
		if stale {
			applog.WithComponent("editors").Debug("discarding stale upload", slog.Uint64("gen", gen))
			return
		}
		if done != nil {
			done(up, err)
		}
	}()
}

func (d *ImageDraft) Commit() domain.Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	el := d.el
	data := d.data
	if data.Filters != nil {
		f := *data.Filters
		data.Filters = &f
	}
	el.Data = data
	return el
}
