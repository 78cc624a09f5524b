/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package crash turns a panic at the top of a goroutine into a written report
// and, when a scrapbook is open, a JSON dump of it so the user's pages survive.
package crash

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	"goscrapbook/internal/domain"
	applog "goscrapbook/internal/log"
	"goscrapbook/internal/telemetry"
	"goscrapbook/internal/version"
)

// exitFn is used to allow testing of Recover without terminating the test process.
var exitFn = os.Exit

// dirFn picks the report directory.
var dirFn = os.TempDir

// Snapshotter yields the scrapbook that is open when the panic happens.
type Snapshotter interface {
	Snapshot() domain.Scrapbook
}

// Recover captures a panic, logs it with its stacktrace, writes a report file
// and a dump of the open scrapbook (if src is non-nil), then exits with code 2.
//
// Usage: defer crash.Recover(session)
func Recover(src Snapshotter) {
	r := recover()
	if r == nil {
		return
	}
	l := applog.WithComponent("crash")
	stack := debug.Stack()
	l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

	stamp := time.Now().Format("20060102-150405")
	reportPath, err := writeReport(stamp, r, stack)
	if err != nil {
		l.Error("write crash report failed", slog.Any("err", err))
	}
	if src != nil {
		if path, err := dumpScrapbook(stamp, src); err != nil {
			l.Error("scrapbook dump failed", slog.Any("err", err))
		} else {
			l.Info("scrapbook dump written", slog.String("path", path))
			_, _ = fmt.Fprintf(os.Stderr, "Your scrapbook was saved to: %s\n", path)
		}
	}

	_, _ = fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", reportPath)
	_, _ = fmt.Fprintf(os.Stderr, "Version: %s\nOS/Arch: %s/%s\n", version.String(), runtime.GOOS, runtime.GOARCH)
	exitFn(2)
}

func writeReport(stamp string, panicVal any, stack []byte) (string, error) {
	path := filepath.Join(dirFn(), fmt.Sprintf("goscrapbook-crash-%s.log", stamp))

	var buf bytes.Buffer
	_, _ = fmt.Fprintf(&buf, "Scrapbook Crash Report\n")
	_, _ = fmt.Fprintf(&buf, "Timestamp: %s\n", time.Now().Format(time.RFC3339))
	_, _ = fmt.Fprintf(&buf, "Version: %s\n", version.String())
	_, _ = fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	_, _ = fmt.Fprintf(&buf, "\nPanic: %v\n\n", panicVal)
	_, _ = fmt.Fprintf(&buf, "Stack:\n%s\n", string(stack))

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return path, fmt.Errorf("crash report %s: %w", path, err)
	}

	// opt-in; the report never contains scrapbook content
	telemetry.UploadCrash(buf.Bytes())
	return path, nil
}

func dumpScrapbook(stamp string, src Snapshotter) (path string, err error) {
	defer func() {
		// the snapshot itself may be what is broken
		if r := recover(); r != nil {
			err = fmt.Errorf("snapshot panicked: %v", r)
		}
	}()
	sb := src.Snapshot()
	b, err := json.MarshalIndent(sb, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode scrapbook: %w", err)
	}
	path = filepath.Join(dirFn(), fmt.Sprintf("goscrapbook-crash-%s-scrapbook.json", stamp))
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return path, fmt.Errorf("scrapbook dump %s: %w", path, err)
	}
	return path, nil
}
