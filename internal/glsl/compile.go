/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package glsl

import "strings"

// SplitLines splits input on '\n' and drops a trailing '\r' from each line.
func SplitLines(input string) []string {
	lines := strings.Split(input, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Compile compiles a whole document.
func Compile(input string) (*Program, error) {
	return CompileLines(SplitLines(input))
}

// CompileLines validates all lines, then translates them in order.
// On error no program is returned.
func CompileLines(lines []string) (*Program, error) {
	if err := Validate(lines); err != nil {
		return nil, err
	}
	c := &compiler{prog: &Program{}}
	for i, raw := range lines {
		if err := c.line(i+1, raw); err != nil {
			return nil, err
		}
	}
	if err := c.state.Finish(); err != nil {
		return nil, err
	}
	return c.prog, nil
}

// compiler is the per-call context; nothing is shared between calls.
type compiler struct {
	state SectionState
	prog  *Program
}

func (c *compiler) line(lineNo int, raw string) error {
	if lineNo > 1 && strings.HasPrefix(strings.TrimSpace(raw), darkenPrefix) {
		return &StructuralError{Line: lineNo, Reason: ReasonMisplacedDarken}
	}
	cmd, err := Recognize(lineNo, raw)
	if err != nil {
		return err
	}

	switch {
	case cmd.Kind == CmdDarken:
		level := cmd.Level
		c.prog.Darken = &level
		c.prog.emit(EmitDarken(level))

	case cmd.Kind.opensSection():
		sec, err := c.state.Open(lineNo, cmd)
		if err != nil {
			return err
		}
		c.prog.emit(EmitBegin(sec.Size, sec.X, sec.Y))

	case cmd.Kind == CmdColor:
		if err := c.state.SetColor(lineNo, cmd.Color); err != nil {
			return err
		}
		c.prog.emit(EmitColor(cmd.Color))

	case cmd.Kind == CmdEnd:
		sec, err := c.state.Close(lineNo)
		if err != nil {
			return err
		}
		c.prog.Sections = append(c.prog.Sections, sec)
		c.prog.emit(EmitEnd())

	case cmd.Kind == CmdBlank:
		// blank lines between sections carry no output
		if !c.state.InSection() {
			return nil
		}
		if err := c.state.AddLine(lineNo, "", true); err != nil {
			return err
		}
		c.prog.emit(EmitBlank())

	default:
		if err := c.state.AddLine(lineNo, cmd.Text, false); err != nil {
			return err
		}
		c.prog.emit(EmitText(EncodeLine(cmd.Text))...)
	}
	return nil
}
