/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package glsl

import "strings"

// CommandKind indicates what a single source line is.

type CommandKind int

const (
	CmdText CommandKind = iota // literal text line
	CmdBlank
	CmdDarken
	CmdStart
	CmdTitle
	CmdTextSection
	CmdFootnote
	CmdColor
	CmdEnd
)

func (k CommandKind) String() string {
	switch k {
	case CmdText:
		return "text"
	case CmdBlank:
		return "blank"
	case CmdDarken:
		return "darken"
	case CmdStart:
		return "start"
	case CmdTitle:
		return "Title"
	case CmdTextSection:
		return "Text"
	case CmdFootnote:
		return "Footnote"
	case CmdColor:
		return "vec3"
	case CmdEnd:
		return "end"
	default:
		return "unknown"
	}
}

// opensSection reports whether k belongs to the start family.
func (k CommandKind) opensSection() bool {
	return k == CmdStart || k == CmdTitle || k == CmdTextSection || k == CmdFootnote
}

// RGB is a text color with components as authored (not clamped).
type RGB struct {
	R, G, B float64
}

// White is the renderer's text color until a section sets its own.
var White = RGB{R: 1, G: 1, B: 1}

// Command is the recognized form of one trimmed source line.
// Only the fields relevant for Kind are set:
//   - CmdDarken: Level
//   - start family: Size, X, Y; HasY is false only for a Footnote whose
//     y must be derived from the previously closed section
//   - CmdColor: Color
//   - CmdText: Text
type Command struct {
	Kind  CommandKind
	Level float64
	Size  int
	X     int
	Y     int
	HasY  bool
	Color RGB
	Text  string
}

// Section describes one compiled text block. It is kept alongside the
// statements so tools like the PNG preview can lay the text out.
type Section struct {
	Kind      CommandKind
	Size      int
	X         int
	Y         int
	LineCount int
	Lines     []SectionLine
}

// SectionLine is one printed (or blank) line of a section.
type SectionLine struct {
	Text  string
	Blank bool
	Color RGB
}

// Program is the output of a successful compilation.
type Program struct {
	Statements []string
	// Darken is set when the document starts with darken().
	Darken   *float64
	Sections []Section
}

func (p *Program) emit(stmts ...string) {
	p.Statements = append(p.Statements, stmts...)
}

// String renders the statements one per line without a trailing newline.
func (p *Program) String() string {
	if p == nil {
		return ""
	}
	return strings.Join(p.Statements, "\n")
}
