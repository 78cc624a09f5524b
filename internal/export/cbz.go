/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"goscrapbook/internal/domain"
)

// ManifestName is the scrapbook document stored alongside the page images.
const ManifestName = "scrapbook.json"

// ExportCBZ packages the selected pages as PNG images into a CBZ (ZIP)
// archive. The scrapbook itself is stored as scrapbook.json so the album
// can be opened for editing again.
func ExportCBZ(book domain.Scrapbook, outPath string, opt Options) error {
	pages := pageIndexes(len(book.Pages), opt.Pages)
	if len(pages) == 0 {
		return ErrNoPages
	}
	// Enforce .cbz extension
	if !strings.HasSuffix(strings.ToLower(outPath), ".cbz") {
		outPath = outPath + ".cbz"
	}
	zw, f, err := createZip(outPath)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	pad := len(fmt.Sprint(len(pages)))
	imgBuf := &bytes.Buffer{}
	for i, pidx := range pages {
		imgBuf.Reset()
		if err := png.Encode(imgBuf, RenderPage(book.Pages[pidx], opt)); err != nil {
			return fmt.Errorf("encode png: %w", err)
		}
		name := fmt.Sprintf("%0*d.png", pad, i+1)
		if err := addZipFile(zw, name, imgBuf.Bytes()); err != nil {
			return fmt.Errorf("zip add image: %w", err)
		}
	}

	manifest, err := json.MarshalIndent(book, "", "  ")
	if err != nil {
		return fmt.Errorf("build manifest: %w", err)
	}
	if err := addZipFile(zw, ManifestName, manifest); err != nil {
		return fmt.Errorf("zip add manifest: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("close zip: %w", err)
	}
	return nil
}

func createZip(outPath string) (*zip.Writer, *os.File, error) {
	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("ensure out dir: %w", err)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return nil, nil, fmt.Errorf("create cbz: %w", err)
	}
	return zip.NewWriter(f), f, nil
}

func addZipFile(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
