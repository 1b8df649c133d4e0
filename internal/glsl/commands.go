/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package glsl

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	darkenPrefix   = "darken("
	startPrefix    = "start("
	colorPrefix    = "vec3("
	titlePrefix    = "Title("
	textPrefix     = "Text("
	footnotePrefix = "Footnote("
	endLiteral     = "end()"

	// DefaultDarkness is used by darken() without argument.
	DefaultDarkness = 0.65
)

// Shortcut defaults as (size, x, y). Footnote's y is derived, see FootnoteY.
var shortcutDefaults = map[CommandKind][3]int{
	CmdTitle:       {8, 6, 10},
	CmdTextSection: {4, 15, 36},
	CmdFootnote:    {2, 30, 0},
}

const number = `(\d+(?:\.\d+)?)`

var (
	reDarken   = regexp.MustCompile(`^darken\(\s*` + number + `?\s*\)$`)
	reStart    = regexp.MustCompile(`^start\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*\)$`)
	reShortcut = regexp.MustCompile(`^(?:Title|Text|Footnote)\(\s*(?:(\d+)\s*(?:,\s*(\d+)\s*(?:,\s*(\d+)\s*)?)?)?\)$`)
	reColor    = regexp.MustCompile(`^vec3\(\s*` + number + `\s*(?:,\s*` + number + `\s*(?:,\s*` + number + `\s*)?)?\)$`)
)

// MatchDarken matches darken() and darken(value). The level is not range
// checked; a value too large for a float64 comes back as +Inf.
func MatchDarken(line string) (Command, bool) {
	m := reDarken.FindStringSubmatch(line)
	if m == nil {
		return Command{}, false
	}
	level := DefaultDarkness
	if m[1] != "" {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return Command{}, false
		}
		level = v
	}
	return Command{Kind: CmdDarken, Level: level}, true
}

// argRangeError is returned by the matchers when a numeric argument is
// syntactically valid but does not fit its Go type.
type argRangeError struct {
	value float64
	max   float64
}

func (e *argRangeError) Error() string { return "argument out of range" }

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		f, _ := strconv.ParseFloat(s, 64)
		return 0, &argRangeError{value: f, max: math.MaxInt}
	}
	return n, nil
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &argRangeError{value: v, max: math.MaxFloat64}
	}
	return v, nil
}

// MatchStart matches start(size, x, y) with three non-negative integers.
func MatchStart(line string) (Command, bool) {
	cmd, ok, err := matchStart(line)
	return cmd, ok && err == nil
}

func matchStart(line string) (Command, bool, error) {
	m := reStart.FindStringSubmatch(line)
	if m == nil {
		return Command{}, false, nil
	}
	var v [3]int
	for i := range v {
		n, err := parseInt(m[i+1])
		if err != nil {
			return Command{}, true, err
		}
		v[i] = n
	}
	return Command{Kind: CmdStart, Size: v[0], X: v[1], Y: v[2], HasY: true}, true, nil
}

// MatchShortcut matches Title(...), Text(...) or Footnote(...) depending on
// kind. Missing trailing arguments take the shortcut's defaults; a Footnote
// without y is returned with HasY false.
func MatchShortcut(kind CommandKind, line string) (Command, bool) {
	cmd, ok, err := matchShortcut(kind, line)
	return cmd, ok && err == nil
}

func matchShortcut(kind CommandKind, line string) (Command, bool, error) {
	def, ok := shortcutDefaults[kind]
	if !ok || !strings.HasPrefix(line, shortcutPrefix(kind)) {
		return Command{}, false, nil
	}
	m := reShortcut.FindStringSubmatch(line)
	if m == nil {
		return Command{}, false, nil
	}
	v := def
	given := 0
	for i := 0; i < 3; i++ {
		if m[i+1] == "" {
			break
		}
		n, err := parseInt(m[i+1])
		if err != nil {
			return Command{}, true, err
		}
		v[i] = n
		given++
	}
	cmd := Command{Kind: kind, Size: v[0], X: v[1], Y: v[2], HasY: true}
	if kind == CmdFootnote && given < 3 {
		cmd.HasY = false
	}
	return cmd, true, nil
}

func shortcutPrefix(kind CommandKind) string {
	switch kind {
	case CmdTitle:
		return titlePrefix
	case CmdTextSection:
		return textPrefix
	case CmdFootnote:
		return footnotePrefix
	}
	return ""
}

// MatchColor matches vec3(r), vec3(r, g) and vec3(r, g, b). A missing g
// copies r and a missing b copies the resolved g.
func MatchColor(line string) (Command, bool) {
	cmd, ok, err := matchColor(line)
	return cmd, ok && err == nil
}

func matchColor(line string) (Command, bool, error) {
	m := reColor.FindStringSubmatch(line)
	if m == nil {
		return Command{}, false, nil
	}
	r, err := parseFloat(m[1])
	if err != nil {
		return Command{}, true, err
	}
	g, b := r, r
	if m[2] != "" {
		if g, err = parseFloat(m[2]); err != nil {
			return Command{}, true, err
		}
		b = g
	}
	if m[3] != "" {
		if b, err = parseFloat(m[3]); err != nil {
			return Command{}, true, err
		}
	}
	return Command{Kind: CmdColor, Color: RGB{R: r, G: g, B: b}}, true, nil
}

// MatchEnd matches the literal end().
func MatchEnd(line string) (Command, bool) {
	if line != endLiteral {
		return Command{}, false
	}
	return Command{Kind: CmdEnd}, true
}

type matcher struct {
	kind  CommandKind
	match func(string) (Command, bool, error)
}

func shortcut(kind CommandKind) func(string) (Command, bool, error) {
	return func(line string) (Command, bool, error) { return matchShortcut(kind, line) }
}

// matchers in recognition order; the first whose grammar fits wins.
var matchers = []matcher{
	{CmdEnd, func(line string) (Command, bool, error) {
		cmd, ok := MatchEnd(line)
		return cmd, ok, nil
	}},
	{CmdStart, matchStart},
	{CmdTitle, shortcut(CmdTitle)},
	{CmdTextSection, shortcut(CmdTextSection)},
	{CmdFootnote, shortcut(CmdFootnote)},
	{CmdColor, matchColor},
}

// Recognize classifies one source line. lineNo is only used for errors.
// darken lines are recognized here too; rejecting a darken that is not on
// the first line is left to the caller. Only darken has a malformed form:
// any other line that no grammar accepts is literal text, even when it
// starts like a command ("Text(s) are fun").
func Recognize(lineNo int, raw string) (Command, error) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return Command{Kind: CmdBlank}, nil
	}
	if strings.HasPrefix(line, darkenPrefix) {
		cmd, ok := MatchDarken(line)
		if !ok {
			return Command{}, &MalformedCommandError{Line: lineNo, Kind: CmdDarken, Text: line}
		}
		if cmd.Level < 0 || cmd.Level > 1 {
			return Command{}, &OutOfRangeError{Line: lineNo, Value: cmd.Level, Min: 0, Max: 1}
		}
		return cmd, nil
	}
	for _, m := range matchers {
		cmd, ok, err := m.match(line)
		var re *argRangeError
		if errors.As(err, &re) {
			return Command{}, &OutOfRangeError{Line: lineNo, Value: re.value, Min: 0, Max: re.max}
		}
		if ok {
			return cmd, nil
		}
	}
	return Command{Kind: CmdText, Text: line}, nil
}
