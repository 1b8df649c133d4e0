/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package glsl

// Vertical spacing used to place a Footnote below the previous section.
const (
	footnoteLineStep = 15
	footnoteGap      = 36
)

// FootnoteY is the default y of a Footnote following a section closed at
// lastY after lineCount printed lines.
func FootnoteY(lastY, lineCount int) int {
	return lastY + footnoteLineStep*lineCount + footnoteGap
}

// SectionState tracks whether a section is open and remembers the most
// recently closed one. The zero value is Idle with nothing closed yet.
type SectionState struct {
	open    bool
	startAt int // line of the open section's start command
	current Section
	color   RGB

	lastClosedY         int
	lastClosedLineCount int
}

// InSection reports whether a section is open.
func (s *SectionState) InSection() bool { return s.open }

// LastClosed returns y and line count of the most recently closed section.
func (s *SectionState) LastClosed() (y, lineCount int) {
	return s.lastClosedY, s.lastClosedLineCount
}

// Open starts a section for a start-family command, resolving a derived
// Footnote y from the last closed section.
func (s *SectionState) Open(lineNo int, cmd Command) (Section, error) {
	if s.open {
		return Section{}, &StructuralError{Line: lineNo, Reason: ReasonNestedSection}
	}
	y := cmd.Y
	if !cmd.HasY {
		y = FootnoteY(s.lastClosedY, s.lastClosedLineCount)
	}
	s.open = true
	s.startAt = lineNo
	s.color = White
	s.current = Section{Kind: cmd.Kind, Size: cmd.Size, X: cmd.X, Y: y}
	return s.current, nil
}

// SetColor changes the color of following lines. It does not count as a line.
func (s *SectionState) SetColor(lineNo int, c RGB) error {
	if !s.open {
		return &StructuralError{Line: lineNo, Reason: ReasonOutsideSection}
	}
	s.color = c
	return nil
}

// AddLine records one printed or blank line.
func (s *SectionState) AddLine(lineNo int, text string, blank bool) error {
	if !s.open {
		return &StructuralError{Line: lineNo, Reason: ReasonOutsideSection}
	}
	s.current.Lines = append(s.current.Lines, SectionLine{Text: text, Blank: blank, Color: s.color})
	s.current.LineCount++
	return nil
}

// Close ends the open section and remembers its y and line count.
func (s *SectionState) Close(lineNo int) (Section, error) {
	if !s.open {
		return Section{}, &StructuralError{Line: lineNo, Reason: ReasonUnmatchedEnd}
	}
	done := s.current
	s.lastClosedY = done.Y
	s.lastClosedLineCount = done.LineCount
	s.open = false
	s.current = Section{}
	return done, nil
}

// Finish checks the end-of-input state.
func (s *SectionState) Finish() error {
	if s.open {
		return &StructuralError{Line: s.startAt, Reason: ReasonUnclosedSection}
	}
	return nil
}
