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
	"fmt"
)

// ErrFormat is wrapped by every compilation error so callers can tell an
// invalid document apart from I/O failures.
var ErrFormat = errors.New("invalid input format")

// IllegalCharacterError reports a character outside the allowed set.
type IllegalCharacterError struct {
	Line int // 1-based
	Char rune
}

func (e *IllegalCharacterError) Error() string {
	return fmt.Sprintf("illegal character %q found on line %d", e.Char, e.Line)
}

func (e *IllegalCharacterError) Unwrap() error { return ErrFormat }

// MalformedCommandError reports a command line that does not follow its
// grammar. Only darken lines can be malformed; other near-misses are text.
type MalformedCommandError struct {
	Line int
	Kind CommandKind
	Text string
}

func (e *MalformedCommandError) Error() string {
	if e.Kind == CmdDarken {
		return fmt.Sprintf("invalid darken() format on line %d: use darken() or darken(value)", e.Line)
	}
	return fmt.Sprintf("invalid %s() format on line %d", e.Kind, e.Line)
}

func (e *MalformedCommandError) Unwrap() error { return ErrFormat }

// OutOfRangeError reports a numeric argument outside [Min, Max].
type OutOfRangeError struct {
	Line  int
	Value float64
	Min   float64
	Max   float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("value on line %d must be between %s and %s, got %s",
		e.Line, FormatFloat(e.Min), FormatFloat(e.Max), FormatFloat(e.Value))
}

func (e *OutOfRangeError) Unwrap() error { return ErrFormat }

// Reason classifies a StructuralError.
type Reason string

const (
	ReasonMisplacedDarken Reason = "misplaced darken"
	ReasonOutsideSection  Reason = "content outside a section"
	ReasonUnclosedSection Reason = "unclosed section"
	ReasonNestedSection   Reason = "section started before previous end()"
	ReasonUnmatchedEnd    Reason = "end() without open section"
)

// StructuralError reports a command that is well-formed but out of place.
type StructuralError struct {
	Line   int
	Reason Reason
}

func (e *StructuralError) Error() string {
	switch e.Reason {
	case ReasonMisplacedDarken:
		return fmt.Sprintf("darken() command can only be used on the first line, found on line %d", e.Line)
	case ReasonOutsideSection:
		return fmt.Sprintf("text found outside of section boundaries on line %d", e.Line)
	case ReasonUnclosedSection:
		return fmt.Sprintf("unclosed section: missing end() command (section started on line %d)", e.Line)
	default:
		return fmt.Sprintf("%s on line %d", e.Reason, e.Line)
	}
}

func (e *StructuralError) Unwrap() error { return ErrFormat }
