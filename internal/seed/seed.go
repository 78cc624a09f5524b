/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package seed ships the demo scrapbook and the JSON schema scrapbook
// documents are checked against before they are loaded.
package seed

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	gojsonschema "github.com/xeipuuv/gojsonschema"

	"goscrapbook/internal/domain"
)

//go:embed demo.json
var demoJSON []byte

//go:embed scrapbook.schema.json
var schemaJSON []byte

// ErrInvalid is wrapped by every schema violation.
var ErrInvalid = errors.New("scrapbook does not match schema")

// ValidationError lists the schema violations of one document.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalid, strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }

var compiled = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
})

// Schema returns the scrapbook JSON schema document.
func Schema() []byte { return append([]byte(nil), schemaJSON...) }

// DemoJSON returns the raw demo document.
func DemoJSON() []byte { return append([]byte(nil), demoJSON...) }

// Validate checks data against the scrapbook schema.
func Validate(data []byte) error {
	schema, err := compiled()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	res, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	if res.Valid() {
		return nil
	}
	ve := &ValidationError{}
	for _, e := range res.Errors() {
		ve.Problems = append(ve.Problems, e.String())
	}
	return ve
}

// Decode validates data and unmarshals it into a scrapbook.
func Decode(data []byte) (domain.Scrapbook, error) {
	if err := Validate(data); err != nil {
		return domain.Scrapbook{}, err
	}
	var sb domain.Scrapbook
	if err := json.Unmarshal(data, &sb); err != nil {
		return domain.Scrapbook{}, fmt.Errorf("decode scrapbook: %w", err)
	}
	return sb, nil
}

// Demo returns a fresh copy of the demo scrapbook: every id is new and
// every timestamp is now, so two demos never share identity.
func Demo(now time.Time) (domain.Scrapbook, error) {
	sb, err := Decode(demoJSON)
	if err != nil {
		return domain.Scrapbook{}, fmt.Errorf("demo scrapbook: %w", err)
	}
	return Refresh(sb, now), nil
}

// Refresh reassigns ids and timestamps throughout sb.
func Refresh(sb domain.Scrapbook, now time.Time) domain.Scrapbook {
	sb = sb.Clone()
	sb.ID = domain.NewID()
	sb.CreatedAt, sb.UpdatedAt = now, now
	for i := range sb.Pages {
		p := &sb.Pages[i]
		p.ID = domain.NewID()
		p.CreatedAt, p.UpdatedAt = now, now
		for j := range p.Elements {
			p.Elements[j].ID = domain.NewID()
		}
	}
	return sb
}
