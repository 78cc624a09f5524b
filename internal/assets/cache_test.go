/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package assets

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	m.Set(0, 0, color.NRGBA{G: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, m))
	return buf.Bytes()
}

func TestDataURIResolvesImmediately(t *testing.T) {
	c := New(Options{})
	defer c.Close()
	src := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes(t, 3, 2))

	img, ok := c.Image(src)
	require.True(t, ok)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
}

func TestUnsupportedSources(t *testing.T) {
	c := New(Options{})
	defer c.Close()
	for _, src := range []string{"/placeholder.svg", "data:image/svg+xml;base64,PHN2Zz4=", "data:nocomma", ""} {
		_, ok := c.Image(src)
		assert.False(t, ok, src)
		assert.Error(t, c.Err(src), src)
	}
	assert.True(t, errors.Is(c.Err("/placeholder.svg"), ErrUnsupported))
}

func TestRemoteFetchCachesAndNotifies(t *testing.T) {
	var hits atomic.Int32
	body := pngBytes(t, 5, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	loaded := make(chan string, 1)
	c := New(Options{OnLoad: func(src string) { loaded <- src }})
	defer c.Close()

	src := srv.URL + "/sticker.png"
	_, ok := c.Image(src)
	assert.False(t, ok, "first request only starts the download")

	select {
	case got := <-loaded:
		assert.Equal(t, src, got)
	case <-time.After(5 * time.Second):
		t.Fatal("OnLoad never fired")
	}
	img, ok := c.Image(src)
	require.True(t, ok)
	assert.Equal(t, 5, img.Bounds().Dx())
	assert.Equal(t, int32(1), hits.Load())
}

func TestWaitSettlesDownloads(t *testing.T) {
	body := pngBytes(t, 2, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	c := New(Options{})
	defer c.Close()
	srcs := []string{srv.URL + "/a.png", srv.URL + "/b.png"}
	for _, src := range srcs {
		c.Image(src)
	}
	c.Wait()
	for _, src := range srcs {
		_, ok := c.Image(src)
		assert.True(t, ok, src)
	}
}

func TestRemoteFailureIsRemembered(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	loaded := make(chan struct{}, 1)
	c := New(Options{OnLoad: func(string) { loaded <- struct{}{} }})
	defer c.Close()

	src := srv.URL + "/gone.png"
	c.Image(src)
	select {
	case <-loaded:
	case <-time.After(5 * time.Second):
		t.Fatal("OnLoad never fired")
	}
	_, ok := c.Image(src)
	assert.False(t, ok)
	assert.Error(t, c.Err(src))
}

func TestCloseCancelsDownloads(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	c := New(Options{})
	c.Image(srv.URL + "/slow.png")
	done := make(chan struct{})
	go func() { c.Close(); close(done) }()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Close did not cancel the download")
	}
}

func TestImageAfterCloseDoesNotFetch(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	c := New(Options{})
	c.Close()
	src := srv.URL + "/late.png"
	_, ok := c.Image(src)
	assert.False(t, ok)
	assert.ErrorIs(t, c.Err(src), context.Canceled)
	c.Wait()
	c.Close()
	assert.Equal(t, int32(0), hits.Load())
}

func TestImageDuringCloseIsSafe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := New(Options{})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.Image(fmt.Sprintf("%s/%d.png", srv.URL, i))
		}(i)
	}
	c.Close()
	wg.Wait()
	c.Wait()
}

func TestLeastRecentlyUsedEntriesAreEvicted(t *testing.T) {
	c := New(Options{MaxEntries: 2})
	defer c.Close()
	uri := func(w int) string {
		return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes(t, w, 1))
	}
	a, b, d := uri(1), uri(2), uri(3)

	c.Image(a)
	c.Image(b)
	c.Image(a) // a is now more recent than b
	c.Image(d)
	assert.Equal(t, 2, c.Len())

	c.mu.Lock()
	_, hasA := c.entries[a]
	_, hasB := c.entries[b]
	_, hasD := c.entries[d]
	c.mu.Unlock()
	assert.True(t, hasA)
	assert.False(t, hasB)
	assert.True(t, hasD)

	img, ok := c.Image(b)
	require.True(t, ok, "an evicted data URI decodes again on demand")
	assert.Equal(t, 2, img.Bounds().Dx())
}
