/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package convert drives one conversion from a document on disk to a
// written GLSL snippet: it reads and compiles the file, writes the result
// next to it, copies it to the clipboard, optionally renders a preview and
// records the attempt in the history.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"glsltext/internal/glsl"
	applog "glsltext/internal/log"
	"glsltext/internal/preview"
	"glsltext/internal/storage"
)

// Category buckets conversion failures for reporting.
type Category string

const (
	CategoryNone       Category = ""
	CategoryNotFound   Category = "not_found"
	CategoryFormat     Category = "format"
	CategoryUnexpected Category = "unexpected"
)

// Classify maps err to the category used for the user message and the
// history record.
func Classify(err error) Category {
	switch {
	case err == nil:
		return CategoryNone
	case errors.Is(err, fs.ErrNotExist):
		return CategoryNotFound
	case errors.Is(err, glsl.ErrFormat):
		return CategoryFormat
	default:
		return CategoryUnexpected
	}
}

// Recorder stores conversion attempts. *storage.History implements it.
type Recorder interface {
	Record(ctx context.Context, e storage.Entry) (int64, error)
}

// Options configures a Converter.
type Options struct {
	Suffix  string
	Preview bool
	Canvas  preview.Options
}

// Converter runs conversions. The zero value is not usable; use New.
type Converter struct {
	opts    Options
	clip    Clipboard
	history Recorder
}

// Option customizes a Converter.
type Option func(*Converter)

// WithClipboard sets the clipboard target; nil disables copying.
func WithClipboard(c Clipboard) Option { return func(cv *Converter) { cv.clip = c } }

// WithHistory records every attempt in r.
func WithHistory(r Recorder) Option { return func(cv *Converter) { cv.history = r } }

// New returns a Converter. An empty suffix falls back to "_converted".
func New(opts Options, options ...Option) *Converter {
	if opts.Suffix == "" {
		opts.Suffix = "_converted"
	}
	cv := &Converter{opts: opts}
	for _, o := range options {
		if o != nil {
			o(cv)
		}
	}
	return cv
}

// Result describes a successful conversion.
type Result struct {
	Source      string
	Output      string
	PreviewPath string
	Program     *glsl.Program
	Text        string
	Clipboard   ClipStatus
	// ClipboardErr is set when the copy was attempted and failed.
	ClipboardErr error
}

// Length is the converted text length in characters.
func (r *Result) Length() int { return len([]rune(r.Text)) }

// Convert processes the document at path. The output file is written only
// when compilation succeeds; clipboard, preview and history failures are
// logged and reported on the Result but never fail the conversion.
func (c *Converter) Convert(ctx context.Context, path string) (*Result, error) {
	ctx = applog.WithSource(ctx, path)
	l := applog.WithOperation(applog.WithComponent("convert"), "convert")

	res, err := c.convert(ctx, l, path)
	c.record(ctx, l, path, res, err)
	if err != nil {
		l.WarnContext(ctx, "conversion failed", slog.String("category", string(Classify(err))), slog.Any("err", err))
		return nil, err
	}
	l.InfoContext(ctx, "conversion done",
		slog.String("output", res.Output),
		slog.Int("statements", len(res.Program.Statements)),
		slog.Int("sections", len(res.Program.Sections)),
		slog.String("clipboard", res.Clipboard.String()))
	return res, nil
}

func (c *Converter) convert(ctx context.Context, l *slog.Logger, path string) (*Result, error) {
	text, err := ReadSource(path)
	if err != nil {
		return nil, err
	}
	prog, err := glsl.Compile(text)
	if err != nil {
		return nil, err
	}
	res := &Result{
		Source:  path,
		Output:  OutputPath(path, c.opts.Suffix),
		Program: prog,
		Text:    prog.String(),
	}
	if err := storage.WriteFileAtomic(res.Output, []byte(res.Text)); err != nil {
		return nil, fmt.Errorf("write output: %w", err)
	}

	res.Clipboard, res.ClipboardErr = copyTo(c.clip, res.Text)
	if res.ClipboardErr != nil {
		l.DebugContext(ctx, "clipboard copy failed", slog.Any("err", res.ClipboardErr))
	}

	if c.opts.Preview {
		pp := PreviewPath(res.Output)
		if err := preview.WritePNG(pp, prog, c.opts.Canvas); err != nil {
			l.WarnContext(ctx, "preview failed", slog.Any("err", err))
		} else {
			res.PreviewPath = pp
		}
	}
	return res, nil
}

func (c *Converter) record(ctx context.Context, l *slog.Logger, path string, res *Result, convErr error) {
	if c.history == nil {
		return
	}
	e := storage.Entry{Source: path, Status: "ok"}
	if convErr != nil {
		e.Status = "error"
		e.Category = string(Classify(convErr))
		e.Message = convErr.Error()
	} else {
		e.Output = res.Output
		e.Statements = len(res.Program.Statements)
		e.Sections = len(res.Program.Sections)
		e.Chars = res.Length()
	}
	if _, err := c.history.Record(ctx, e); err != nil {
		l.WarnContext(ctx, "history record failed", slog.Any("err", err))
	}
}
