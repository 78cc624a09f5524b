/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"goscrapbook/internal/domain"
)

// ExportPDF writes the selected pages to a single PDF at outPath. Each page
// is a full-bleed raster at the canvas size, one canvas pixel per point.
func ExportPDF(book domain.Scrapbook, outPath string, opt Options) error {
	pages := pageIndexes(len(book.Pages), opt.Pages)
	if len(pages) == 0 {
		return ErrNoPages
	}
	o := opt.withDefaults()
	size := gofpdf.SizeType{Wd: o.Page.W, Ht: o.Page.H}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "pt", Size: size})
	pdf.SetTitle(book.Title, true)
	pdf.SetAuthor("goscrapbook", false)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	buf := &bytes.Buffer{}
	for _, pidx := range pages {
		buf.Reset()
		if err := png.Encode(buf, RenderPage(book.Pages[pidx], o)); err != nil {
			return fmt.Errorf("encode page %d: %w", pidx+1, err)
		}
		name := fmt.Sprintf("page-%d", pidx+1)
		imgOpt := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(name, imgOpt, bytes.NewReader(buf.Bytes()))
		pdf.AddPageFormat("", size)
		pdf.ImageOptions(name, 0, 0, o.Page.W, o.Page.H, false, imgOpt, 0, "")
	}
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("build pdf: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
