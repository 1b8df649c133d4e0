/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"glsltext/internal/glsl"
	"glsltext/internal/storage"
)

type fakeClipboard struct {
	got string
	err error
}

func (f *fakeClipboard) WriteAll(text string) error {
	f.got = text
	return f.err
}

type memRecorder struct{ entries []storage.Entry }

func (m *memRecorder) Record(_ context.Context, e storage.Entry) (int64, error) {
	m.entries = append(m.entries, e)
	return int64(len(m.entries)), nil
}

const sample = "Title()\nHello World\nend()\n"

func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestOutputPath(t *testing.T) {
	cases := map[string]string{
		"credits.txt":        "credits_converted.txt",
		"dir/credits.v2.txt": "dir/credits.v2_converted.txt",
		"credits":            "credits_converted",
		".hidden":            ".hidden_converted",
		"dir.d/credits":      "dir.d/credits_converted",
	}
	for in, want := range cases {
		in, want = filepath.FromSlash(in), filepath.FromSlash(want)
		if got := OutputPath(in, "_converted"); got != want {
			t.Errorf("OutputPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestConvertWritesOutputAndCopies(t *testing.T) {
	src := writeSource(t, "credits.txt", sample)
	clip := &fakeClipboard{}
	rec := &memRecorder{}
	res, err := New(Options{}, WithClipboard(clip), WithHistory(rec)).Convert(context.Background(), src)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	want := strings.Join([]string{
		"beginTextM(8, vec2(6, 10));",
		"    printString((_H, _e, _l, _l, _o, _space, _W, _o, _r, _l, _d));",
		"    printLine();",
		"endText(color.rgb);",
	}, "\n")
	if res.Text != want {
		t.Fatalf("text =\n%s\nwant\n%s", res.Text, want)
	}
	b, err := os.ReadFile(res.Output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(b) != want {
		t.Fatalf("output file differs from result text")
	}
	if filepath.Base(res.Output) != "credits_converted.txt" {
		t.Fatalf("output = %s", res.Output)
	}
	if clip.got != want || res.Clipboard != ClipCopied {
		t.Fatalf("clipboard = %q (%v)", clip.got, res.Clipboard)
	}
	if len(rec.entries) != 1 || rec.entries[0].Status != "ok" || rec.entries[0].Sections != 1 || rec.entries[0].Chars != len(want) {
		t.Fatalf("history = %+v", rec.entries)
	}
}

func TestConvertClipboardFailureIsNotFatal(t *testing.T) {
	src := writeSource(t, "a.txt", sample)
	for _, tc := range []struct {
		err  error
		want ClipStatus
	}{
		{errors.New("xclip exited 1"), ClipFailed},
		{fmt.Errorf("probe: %w", ErrClipboardUnavailable), ClipUnavailable},
	} {
		res, err := New(Options{}, WithClipboard(&fakeClipboard{err: tc.err})).Convert(context.Background(), src)
		if err != nil {
			t.Fatalf("Convert: %v", err)
		}
		if res.Clipboard != tc.want || res.ClipboardErr == nil {
			t.Fatalf("clipboard status = %v (%v), want %v", res.Clipboard, res.ClipboardErr, tc.want)
		}
	}
}

func TestConvertWithoutClipboard(t *testing.T) {
	res, err := New(Options{}).Convert(context.Background(), writeSource(t, "a.txt", sample))
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if res.Clipboard != ClipDisabled {
		t.Fatalf("clipboard = %v", res.Clipboard)
	}
}

func TestConvertFormatErrorWritesNothing(t *testing.T) {
	src := writeSource(t, "bad.txt", "Title()\nHello\n")
	rec := &memRecorder{}
	_, err := New(Options{Suffix: "_out"}, WithHistory(rec)).Convert(context.Background(), src)
	var se *glsl.StructuralError
	if !errors.As(err, &se) || se.Reason != glsl.ReasonUnclosedSection {
		t.Fatalf("expected unclosed section error, got %v", err)
	}
	if Classify(err) != CategoryFormat {
		t.Fatalf("category = %q", Classify(err))
	}
	if _, statErr := os.Stat(OutputPath(src, "_out")); !os.IsNotExist(statErr) {
		t.Fatalf("output must not be written on error")
	}
	if len(rec.entries) != 1 || rec.entries[0].Status != "error" || rec.entries[0].Category != string(CategoryFormat) {
		t.Fatalf("history = %+v", rec.entries)
	}
}

func TestConvertMissingFile(t *testing.T) {
	_, err := New(Options{}).Convert(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	if Classify(err) != CategoryNotFound {
		t.Fatalf("category = %q (%v)", Classify(err), err)
	}
}

func TestConvertUTF16WithBOM(t *testing.T) {
	src := "Text()\nOK\nend()"
	b := []byte{0xFF, 0xFE}
	for _, r := range src {
		b = append(b, byte(r), 0)
	}
	path := writeSource(t, "wide.txt", string(b))
	res, err := New(Options{}).Convert(context.Background(), path)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !strings.Contains(res.Text, "printString((_O, _K));") {
		t.Fatalf("unexpected text: %s", res.Text)
	}
}

func TestConvertUTF8BOMStripped(t *testing.T) {
	path := writeSource(t, "bom.txt", "\xEF\xBB\xBF"+sample)
	if _, err := New(Options{}).Convert(context.Background(), path); err != nil {
		t.Fatalf("BOM must not count as an illegal character: %v", err)
	}
}

func TestConvertWritesPreview(t *testing.T) {
	src := writeSource(t, "p.txt", sample)
	res, err := New(Options{Preview: true}).Convert(context.Background(), src)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if res.PreviewPath != PreviewPath(res.Output) {
		t.Fatalf("preview path = %q", res.PreviewPath)
	}
	b, err := os.ReadFile(res.PreviewPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := png.Decode(bytes.NewReader(b)); err != nil {
		t.Fatalf("preview is not a PNG: %v", err)
	}
}

func TestConvertRecordsInSQLiteHistory(t *testing.T) {
	ctx := context.Background()
	h, err := storage.OpenHistory(ctx, filepath.Join(t.TempDir(), "history.sqlite"))
	if err != nil {
		t.Fatalf("OpenHistory: %v", err)
	}
	defer h.Close()
	cv := New(Options{}, WithHistory(h))
	if _, err := cv.Convert(ctx, writeSource(t, "ok.txt", sample)); err != nil {
		t.Fatal(err)
	}
	_, _ = cv.Convert(ctx, writeSource(t, "bad.txt", "Hello"))

	got, err := h.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 || got[0].Status != "error" || got[1].Status != "ok" {
		t.Fatalf("history = %+v", got)
	}
}

func TestClassify(t *testing.T) {
	if Classify(nil) != CategoryNone {
		t.Fatal("nil error must have no category")
	}
	if Classify(fmt.Errorf("wrap: %w", glsl.ErrFormat)) != CategoryFormat {
		t.Fatal("wrapped ErrFormat must classify as format")
	}
	if Classify(errors.New("disk full")) != CategoryUnexpected {
		t.Fatal("other errors are unexpected")
	}
}
