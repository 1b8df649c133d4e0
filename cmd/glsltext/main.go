/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"glsltext/internal/config"
	"glsltext/internal/convert"
	"glsltext/internal/crash"
	"glsltext/internal/glsl"
	applog "glsltext/internal/log"
	"glsltext/internal/preview"
	"glsltext/internal/storage"
	"glsltext/internal/version"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func usage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "glsltext converts annotated text documents into GLSL text-rendering calls")
	_, _ = fmt.Fprintf(w, "Version: %s\n", version.String())
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Usage:")
	_, _ = fmt.Fprintln(w, "  glsltext [convert] [<file>]        Convert <file>; prompts for the path when omitted")
	_, _ = fmt.Fprintln(w, "  glsltext check <file>              Validate <file> without writing anything")
	_, _ = fmt.Fprintln(w, "  glsltext preview <file> [<png>]    Render an approximate PNG of the text layout")
	_, _ = fmt.Fprintln(w, "  glsltext history [<n>]             Show the last <n> conversions")
	_, _ = fmt.Fprintln(w, "  glsltext config [init]             Show the effective config, or write the defaults")
	_, _ = fmt.Fprintln(w, "  glsltext version|-v|--version      Show version")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// app carries what every command needs.
type app struct {
	cfg    config.AppConfig
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	l      *slog.Logger
}

func run(args []string, in io.Reader, out, errOut io.Writer) int {
	cfg, cfgErr := config.Load()
	applog.Init(applog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
		Out:       errOut,
	})
	defer func() { _ = applog.Close() }()
	l := applog.WithComponent("cli")
	if cfgErr != nil {
		l.Warn("config ignored, using defaults", slog.Any("err", cfgErr))
	}

	var input string
	if len(args) > 1 {
		input = args[1]
	}
	defer crash.Recover(input)

	a := &app{cfg: cfg, in: in, out: out, errOut: errOut, l: l}
	l.Debug("start", slog.Int("args", len(args)))

	cmd := "convert"
	if len(args) > 0 {
		cmd = args[0]
	}
	switch cmd {
	case "version", "--version", "-v":
		_, _ = fmt.Fprintln(out, version.String())
		return exitOK
	case "help", "--help", "-h":
		usage(out)
		return exitOK
	case "convert":
		if len(args) > 2 {
			_, _ = fmt.Fprintln(errOut, "convert takes at most one <file>")
			usage(errOut)
			return exitUsage
		}
		return a.convert(input)
	case "check":
		if len(args) != 2 {
			_, _ = fmt.Fprintln(errOut, "check requires <file>")
			usage(errOut)
			return exitUsage
		}
		return a.check(args[1])
	case "preview":
		if len(args) < 2 || len(args) > 3 {
			_, _ = fmt.Fprintln(errOut, "preview requires <file> and an optional <png>")
			usage(errOut)
			return exitUsage
		}
		var png string
		if len(args) == 3 {
			png = args[2]
		}
		return a.preview(args[1], png)
	case "history":
		n := cfg.History.Limit
		if len(args) > 1 {
			v, err := strconv.Atoi(args[1])
			if err != nil || v <= 0 {
				_, _ = fmt.Fprintln(errOut, "history count must be a positive number")
				return exitUsage
			}
			n = v
		}
		return a.history(n)
	case "config":
		if len(args) > 1 && args[1] == "init" {
			return a.configInit()
		}
		return a.showConfig()
	default:
		// a bare path converts it, matching drag and drop onto the binary
		if len(args) == 1 {
			if _, err := os.Stat(cmd); err == nil {
				return a.convert(cmd)
			}
		}
		_, _ = fmt.Fprintf(errOut, "unknown command %q\n", cmd)
		usage(errOut)
		return exitUsage
	}
}

func (a *app) convert(path string) int {
	if path == "" {
		convert.PrintBanner(a.out)
		p, err := convert.PromptPath(a.in, a.out)
		if err != nil {
			_, _ = fmt.Fprintln(a.errOut, "Error:", err)
			return exitUsage
		}
		path = p
	}

	opts := []convert.Option{}
	if a.cfg.Output.Clipboard {
		opts = append(opts, convert.WithClipboard(convert.SystemClipboard{}))
	}
	ctx := context.Background()
	if h := a.openHistory(ctx); h != nil {
		defer func() { _ = h.Close() }()
		opts = append(opts, convert.WithHistory(h))
	}

	cv := convert.New(convert.Options{Suffix: a.cfg.Output.Suffix, Preview: a.cfg.Output.Preview}, opts...)
	res, err := cv.Convert(ctx, path)
	if err != nil {
		convert.PrintError(a.out, path, err)
		return exitError
	}
	convert.PrintResult(a.out, res)
	return exitOK
}

// openHistory returns nil when history is off or cannot be opened; a
// conversion never fails because of it.
func (a *app) openHistory(ctx context.Context) *storage.History {
	if !a.cfg.History.Enabled {
		return nil
	}
	path, err := a.cfg.HistoryPath()
	if err != nil {
		a.l.Warn("history path unavailable", slog.Any("err", err))
		return nil
	}
	h, err := storage.OpenHistory(ctx, path)
	if err != nil {
		a.l.Warn("history unavailable", slog.Any("err", err))
		return nil
	}
	return h
}

func (a *app) compileFile(path string) (*glsl.Program, int) {
	text, err := convert.ReadSource(path)
	if err == nil {
		var prog *glsl.Program
		if prog, err = glsl.Compile(text); err == nil {
			return prog, exitOK
		}
	}
	a.l.Debug("compile failed", slog.String("path", path), slog.Any("err", err))
	convert.PrintError(a.out, path, err)
	return nil, exitError
}

func (a *app) check(path string) int {
	prog, code := a.compileFile(path)
	if prog == nil {
		return code
	}
	_, _ = fmt.Fprintf(a.out, "%s: OK (%d sections, %d statements)\n", path, len(prog.Sections), len(prog.Statements))
	return exitOK
}

func (a *app) preview(path, png string) int {
	prog, code := a.compileFile(path)
	if prog == nil {
		return code
	}
	if png == "" {
		png = convert.PreviewPath(convert.OutputPath(path, a.cfg.Output.Suffix))
	}
	if err := preview.WritePNG(png, prog, preview.Options{}); err != nil {
		a.l.Error("preview failed", slog.Any("err", err))
		_, _ = fmt.Fprintln(a.errOut, "Error:", err)
		return exitError
	}
	_, _ = fmt.Fprintln(a.out, "Preview written to", png)
	return exitOK
}

func (a *app) history(n int) int {
	ctx := context.Background()
	path, err := a.cfg.HistoryPath()
	if err != nil {
		_, _ = fmt.Fprintln(a.errOut, "Error:", err)
		return exitError
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		_, _ = fmt.Fprintln(a.out, "No conversions recorded yet.")
		return exitOK
	}
	h, err := storage.OpenHistory(ctx, path)
	if err != nil {
		_, _ = fmt.Fprintln(a.errOut, "Error:", err)
		return exitError
	}
	defer func() { _ = h.Close() }()
	entries, err := h.Recent(ctx, n)
	if err != nil {
		_, _ = fmt.Fprintln(a.errOut, "Error:", err)
		return exitError
	}
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(a.out, "No conversions recorded yet.")
		return exitOK
	}
	for _, e := range entries {
		when := e.At.Local().Format("2006-01-02 15:04:05")
		if e.Status == "ok" {
			_, _ = fmt.Fprintf(a.out, "%s  ok     %s -> %s (%d chars)\n", when, e.Source, e.Output, e.Chars)
		} else {
			_, _ = fmt.Fprintf(a.out, "%s  %-6s %s: %s\n", when, e.Category, e.Source, e.Message)
		}
	}
	return exitOK
}

func (a *app) showConfig() int {
	path, err := config.ConfigPath()
	if err != nil {
		_, _ = fmt.Fprintln(a.errOut, "Error:", err)
		return exitError
	}
	data, err := yaml.Marshal(a.cfg)
	if err != nil {
		_, _ = fmt.Fprintln(a.errOut, "Error:", err)
		return exitError
	}
	_, _ = fmt.Fprintf(a.out, "# %s\n%s", path, data)
	for _, key := range []string{"output.suffix", "output.clipboard", "output.preview", "history.enabled", "history.path", "logging.level", "logging.format", "logging.source", "logging.file"} {
		if env, ok := config.EnvOverrideFor(key); ok {
			_, _ = fmt.Fprintf(a.out, "# %s overridden by %s\n", key, env)
		}
	}
	return exitOK
}

func (a *app) configInit() int {
	path, err := config.ConfigPath()
	if err != nil {
		_, _ = fmt.Fprintln(a.errOut, "Error:", err)
		return exitError
	}
	if _, err := os.Stat(path); err == nil {
		_, _ = fmt.Fprintln(a.errOut, "Config already exists at", path)
		return exitError
	}
	if _, err := config.Save(config.Defaults()); err != nil {
		a.l.Error("config init failed", slog.Any("err", err))
		_, _ = fmt.Fprintln(a.errOut, "Error:", err)
		return exitError
	}
	_, _ = fmt.Fprintln(a.out, "Wrote default config to", path)
	return exitOK
}
