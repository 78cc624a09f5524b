/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"goscrapbook/internal/domain"
)

// PresetName represents a named export preset.
type PresetName string

const (
	PresetWeb   PresetName = "web"
	PresetPrint PresetName = "print"
)

// BatchOptions controls batch export across multiple formats.
//
// Outputs land in OutDir/<preset>/: per-page PNGs under png/, and
// scrapbook.pdf or scrapbook.cbz for the single-file formats.
type BatchOptions struct {
	Preset  PresetName
	Formats []string // allowed: png, pdf, cbz; empty means preset defaults
	OutDir  string
	Options Options // Scale 0 takes the preset's scale
}

// BatchExport runs exports according to the given preset.
func BatchExport(book domain.Scrapbook, opt BatchOptions) error {
	if len(book.Pages) == 0 {
		return ErrNoPages
	}
	formats := opt.Formats
	if len(formats) == 0 {
		formats = presetDefaultFormats(opt.Preset)
	}
	o := opt.Options
	if o.Scale <= 0 {
		o.Scale = presetScale(opt.Preset)
	}
	base := filepath.Join(opt.OutDir, string(opt.Preset))

	for _, f := range formats {
		switch strings.ToLower(strings.TrimSpace(f)) {
		case "pdf":
			if err := ExportPDF(book, filepath.Join(base, "scrapbook.pdf"), o); err != nil {
				return fmt.Errorf("pdf: %w", err)
			}
		case "cbz":
			if err := ExportCBZ(book, filepath.Join(base, "scrapbook.cbz"), o); err != nil {
				return fmt.Errorf("cbz: %w", err)
			}
		case "png":
			if _, err := ExportPNGPages(book, filepath.Join(base, "png"), o); err != nil {
				return fmt.Errorf("png: %w", err)
			}
		default:
			return fmt.Errorf("unknown format: %s", f)
		}
	}
	return nil
}

func presetDefaultFormats(p PresetName) []string {
	switch p {
	case PresetWeb:
		return []string{"png", "cbz"}
	case PresetPrint:
		return []string{"pdf"}
	default:
		return []string{"png"}
	}
}

// presetScale is the raster resolution per preset; print pages are drawn
// at roughly 216 dpi for a 72 dpi canvas.
func presetScale(p PresetName) float64 {
	if p == PresetPrint {
		return 3
	}
	return 1
}
