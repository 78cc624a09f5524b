/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// This file defines the scrapbook data model: a scrapbook owns pages, a page owns
// positioned elements, and each element carries one variant of ElementData.

import (
	"time"

	"github.com/google/uuid"
)

// Scrapbook is the top-level owner of all pages.
// The current page index is UI state and deliberately not part of the model.
type Scrapbook struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	CoverImage string    `json:"coverImage,omitempty"`
	Pages      []Page    `json:"pages"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Page is one canvas worth of elements. Elements is replaced wholesale on every edit.
type Page struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Background string    `json:"background"` // style token, see Backgrounds
	Elements   []Element `json:"elements"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Element is one placed item. ID is immutable once assigned; X/Y is the top-left
// corner in canvas pixels.
type Element struct {
	ID     string
	X, Y   float64
	ZIndex int
	Data   ElementData
}

// NewID returns a fresh random identifier for elements, pages and scrapbooks.
func NewID() string { return uuid.NewString() }

// Kind is the element discriminant. A nil Data reports the empty kind.
func (e Element) Kind() Kind {
	if e.Data == nil {
		return ""
	}
	return e.Data.Kind()
}

// Editable reports whether gestures and editors apply to the element.
func (e Element) Editable() bool { return e.Kind().Editable() }

// NewPage returns an empty page with the default background.
func NewPage(title string, now time.Time) Page {
	return Page{
		ID:         NewID(),
		Title:      title,
		Background: DefaultBackground,
		Elements:   []Element{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// NewScrapbook returns a scrapbook holding the given pages.
func NewScrapbook(title string, now time.Time, pages ...Page) Scrapbook {
	if pages == nil {
		pages = []Page{}
	}
	return Scrapbook{ID: NewID(), Title: title, Pages: pages, CreatedAt: now, UpdatedAt: now}
}

// WithElements returns a copy of p holding elems and stamped at now.
func (p Page) WithElements(elems []Element, now time.Time) Page {
	p.Elements = elems
	p.UpdatedAt = now
	return p
}

// Clone deep-copies the page's element slice so callers can hand it out safely.
func (p Page) Clone() Page {
	p.Elements = CloneElements(p.Elements)
	return p
}

// Clone deep-copies the page list.
func (s Scrapbook) Clone() Scrapbook {
	pages := make([]Page, len(s.Pages))
	for i, p := range s.Pages {
		pages[i] = p.Clone()
	}
	s.Pages = pages
	return s
}
