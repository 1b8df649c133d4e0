/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package log provides the slog-based logging used by the converter CLI.
// Console output goes to stderr so stdout stays reserved for the generated
// GLSL; an optional JSON file sink is rotated by lumberjack.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"glsltext/internal/version"

	lj "gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger initialization.
// Values can be provided directly or via environment variables:
//   - GLT_LOG_LEVEL=debug|info|warn|error
//   - GLT_LOG_FORMAT=console|json
//   - GLT_LOG_FILE=<path> (enables file logging with rotation)
//   - GLT_LOG_SOURCE=true|false (include source)
//
// Defaults: WARN level, console format, no source. The CLI is quiet unless asked.
type Options struct {
	Level     string
	Format    string // "console" or "json"
	AddSource bool
	File      string
	// Out receives console records; nil means os.Stderr.
	Out io.Writer
}

var (
	defaultLoggerMu sync.RWMutex
	defaultLogger   *slog.Logger
	fileSink        *lj.Logger
)

// L returns the default application logger, initializing from env if needed.
func L() *slog.Logger {
	defaultLoggerMu.RLock()
	l := defaultLogger
	defaultLoggerMu.RUnlock()
	if l != nil {
		return l
	}
	Init(FromEnv())
	defaultLoggerMu.RLock()
	l = defaultLogger
	defaultLoggerMu.RUnlock()
	return l
}

// Init configures the global logger and sets slog.Default as well.
// A previously opened log file is closed.
func Init(opts Options) {
	lvl := parseLevel(opts.Level)
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	var handlers []slog.Handler
	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		handlers = append(handlers, withEnricher(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: lvl, AddSource: opts.AddSource})))
	} else {
		handlers = append(handlers, withEnricher(&prettyTextHandler{opts: prettyOpts{Level: lvl, AddSource: opts.AddSource}, w: out}))
	}

	var sink *lj.Logger
	if f := strings.TrimSpace(opts.File); f != "" {
		sink = &lj.Logger{Filename: f, MaxSize: 5, MaxBackups: 3, MaxAge: 14, Compress: true}
		// the file always records at debug so a failed conversion can be traced afterwards
		handlers = append(handlers, withEnricher(slog.NewJSONHandler(sink, &slog.HandlerOptions{Level: slog.LevelDebug, AddSource: opts.AddSource})))
	}

	var h slog.Handler = handlers[0]
	if len(handlers) > 1 {
		h = multiHandler(handlers...)
	}
	logger := slog.New(h).With(
		slog.String("app", "glsltext"),
		slog.String("ver", version.Version),
	)

	defaultLoggerMu.Lock()
	old := fileSink
	defaultLogger = logger
	fileSink = sink
	defaultLoggerMu.Unlock()
	if old != nil {
		_ = old.Close()
	}
	slog.SetDefault(logger)
}

// Close flushes and closes the rotating file sink, if any.
func Close() error {
	defaultLoggerMu.Lock()
	sink := fileSink
	fileSink = nil
	defaultLoggerMu.Unlock()
	if sink == nil {
		return nil
	}
	return sink.Close()
}

// FromEnv builds Options from environment variables.
func FromEnv() Options {
	return Options{
		Level:     getenv("GLT_LOG_LEVEL", "warn"),
		Format:    getenv("GLT_LOG_FORMAT", "console"),
		AddSource: strings.EqualFold(getenv("GLT_LOG_SOURCE", "false"), "true"),
		File:      os.Getenv("GLT_LOG_FILE"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// WithComponent returns a logger with the component attribute pre-set.
func WithComponent(name string) *slog.Logger { return L().With(slog.String("component", name)) }

// WithOperation annotates the logger with an operation name.
func WithOperation(l *slog.Logger, op string) *slog.Logger { return l.With(slog.String("op", op)) }

type ctxKey struct{}

// WithSource returns a context whose log records carry the source document path.
func WithSource(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, ctxKey{}, path)
}

func sourceFrom(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	p, ok := ctx.Value(ctxKey{}).(string)
	return p, ok && p != ""
}

func parseLevel(s string) slog.Leveler {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
