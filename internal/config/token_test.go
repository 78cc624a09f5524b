/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"testing"

	"github.com/zalando/go-keyring"
)

func TestTelemetryTokenRoundTrip(t *testing.T) {
	keyring.MockInit()

	if tok, err := TelemetryToken(); err != nil || tok != "" {
		t.Fatalf("empty store: %q, %v", tok, err)
	}
	if err := SetTelemetryToken("s3cret"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if tok, err := TelemetryToken(); err != nil || tok != "s3cret" {
		t.Fatalf("get: %q, %v", tok, err)
	}
	if err := SetTelemetryToken(""); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := SetTelemetryToken(""); err != nil {
		t.Fatalf("clearing twice: %v", err)
	}
	if tok, _ := TelemetryToken(); tok != "" {
		t.Fatalf("token survived clear: %q", tok)
	}
}

type brokenStore struct{}

var errLocked = errors.New("keyring locked")

func (brokenStore) Get(string, string) (string, error) { return "", errLocked }
func (brokenStore) Set(string, string, string) error   { return errLocked }
func (brokenStore) Delete(string, string) error        { return errLocked }

func TestTelemetryTokenReportsStoreErrors(t *testing.T) {
	prev := tokenStore
	tokenStore = brokenStore{}
	t.Cleanup(func() { tokenStore = prev })

	if _, err := TelemetryToken(); !errors.Is(err, errLocked) {
		t.Fatalf("get err = %v", err)
	}
	if err := SetTelemetryToken("x"); !errors.Is(err, errLocked) {
		t.Fatalf("set err = %v", err)
	}
}
