/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func TestHistoryRecordAndRecent(t *testing.T) {
	ctx := context.Background()
	h, err := OpenHistory(ctx, filepath.Join(t.TempDir(), "sub", "history.sqlite"))
	if err != nil {
		t.Fatalf("OpenHistory: %v", err)
	}
	defer h.Close()

	for i := 0; i < 3; i++ {
		if _, err := h.Record(ctx, Entry{Source: fmt.Sprintf("in%d.txt", i), Output: "out.txt", Status: "ok", Statements: i}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	if _, err := h.Record(ctx, Entry{Source: "bad.txt", Status: "error", Category: "format", Message: "illegal character"}); err != nil {
		t.Fatalf("Record error entry: %v", err)
	}

	got, err := h.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Source != "bad.txt" || got[0].Category != "format" || got[0].Output != "" {
		t.Fatalf("newest entry mismatch: %+v", got[0])
	}
	if got[1].Source != "in2.txt" || got[1].Statements != 2 {
		t.Fatalf("second entry mismatch: %+v", got[1])
	}
	if got[1].At.IsZero() || time.Since(got[1].At) > time.Minute {
		t.Fatalf("timestamp not stored: %v", got[1].At)
	}
}

func TestHistoryReopenKeepsEntries(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.sqlite")
	h, err := OpenHistory(ctx, path)
	if err != nil {
		t.Fatalf("OpenHistory: %v", err)
	}
	if _, err := h.Record(ctx, Entry{Source: "a.txt", Status: "ok"}); err != nil {
		t.Fatal(err)
	}
	_ = h.Close()

	h, err = OpenHistory(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer h.Close()
	got, err := h.Recent(ctx, 10)
	if err != nil || len(got) != 1 {
		t.Fatalf("Recent after reopen = %v, %v", got, err)
	}
}

// TestHistoryMigratesV1 opens a database written before the category column existed.
func TestHistoryMigratesV1(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.sqlite")
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s", filepath.ToSlash(path)))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	for _, q := range []string{
		`CREATE TABLE version (id INTEGER PRIMARY KEY CHECK(id=1), schema INTEGER NOT NULL, app TEXT, created_at TEXT NOT NULL, updated_at TEXT NOT NULL);`,
		`INSERT INTO version VALUES(1, 1, 'test', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z');`,
		`CREATE TABLE conversions (id INTEGER PRIMARY KEY, source TEXT NOT NULL, output TEXT, status TEXT NOT NULL, message TEXT, statements INTEGER NOT NULL DEFAULT 0, sections INTEGER NOT NULL DEFAULT 0, chars INTEGER NOT NULL DEFAULT 0, created_at TEXT NOT NULL);`,
		`INSERT INTO conversions (source, status, created_at) VALUES ('old.txt', 'ok', '2025-01-01T00:00:00Z');`,
	} {
		if _, err := db.ExecContext(ctx, q); err != nil {
			t.Fatalf("seed v1: %v (q=%s)", err, q)
		}
	}
	_ = db.Close()

	h, err := OpenHistory(ctx, path)
	if err != nil {
		t.Fatalf("OpenHistory on v1: %v", err)
	}
	defer h.Close()
	var schema int
	if err := h.db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&schema); err != nil {
		t.Fatal(err)
	}
	if schema != schemaVersion {
		t.Fatalf("schema = %d, want %d", schema, schemaVersion)
	}
	got, err := h.Recent(ctx, 5)
	if err != nil || len(got) != 1 || got[0].Source != "old.txt" || got[0].Category != "" {
		t.Fatalf("migrated rows = %+v, %v", got, err)
	}
}
