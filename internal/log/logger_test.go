/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package log

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestInitWritesDebugRecordsToFile checks that the rotating file sink records
// debug output even though the console stays at warn.
func TestInitWritesDebugRecordsToFile(t *testing.T) {
	fpath := filepath.Join(t.TempDir(), "glsltext.log")
	var console bytes.Buffer
	Init(Options{Level: "warn", Format: "console", File: fpath, Out: &console})
	t.Cleanup(func() { _ = Close() })

	l := WithOperation(WithComponent("testcomp"), "op1")
	l.DebugContext(WithSource(context.Background(), "/tmp/in.txt"), "compiled", slog.Int("statements", 12))

	if console.Len() != 0 {
		t.Fatalf("debug record leaked to console: %q", console.String())
	}
	if err := Close(); err != nil {
		t.Fatalf("close sink: %v", err)
	}

	b, err := os.ReadFile(fpath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var last string
	sc := bufio.NewScanner(bytes.NewReader(b))
	for sc.Scan() {
		if s := strings.TrimSpace(sc.Text()); s != "" {
			last = s
		}
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(last), &m); err != nil {
		t.Fatalf("unmarshal json log %q: %v", last, err)
	}
	for k, want := range map[string]any{
		"app":        "glsltext",
		"component":  "testcomp",
		"op":         "op1",
		"msg":        "compiled",
		"file":       "/tmp/in.txt",
		"statements": float64(12),
	} {
		if m[k] != want {
			t.Fatalf("%s = %v, want %v", k, m[k], want)
		}
	}
}

func TestConsoleJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "info", Format: "json", Out: &buf})
	L().Info("hello")
	var m map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &m); err != nil {
		t.Fatalf("console json: %v (%q)", err, buf.String())
	}
	if m["msg"] != "hello" {
		t.Fatalf("msg = %v", m["msg"])
	}
}
