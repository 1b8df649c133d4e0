/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package glsl

import (
	"fmt"
	"strconv"
	"strings"
)

// Statement templates understood by the shader's text renderer.
const (
	lineStatement = "    printLine();"
	endStatement  = "endText(color.rgb);"
)

// FormatFloat prints v as a GLSL float literal: shortest round-trip digits,
// always with a decimal point.
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// EmitDarken darkens the whole frame by level.
func EmitDarken(level float64) string {
	return fmt.Sprintf("color.rgb = mix(color.rgb, vec3(0.0), %s);", FormatFloat(level))
}

// EmitBegin opens a text block of the given size at (x, y).
func EmitBegin(size, x, y int) string {
	return fmt.Sprintf("beginTextM(%d, vec2(%d, %d));", size, x, y)
}

// EmitColor sets the foreground color of following lines.
func EmitColor(c RGB) string {
	return fmt.Sprintf("    text.fgCol = vec4(%s, %s, %s, 1.0);", FormatFloat(c.R), FormatFloat(c.G), FormatFloat(c.B))
}

// EmitText returns the print statement for tokens followed by a line advance.
func EmitText(tokens []string) []string {
	return []string{
		"    printString((" + strings.Join(tokens, ", ") + "));",
		lineStatement,
	}
}

// EmitBlank advances one line without printing.
func EmitBlank() string { return lineStatement }

// EmitEnd closes the text block and composites it onto the frame.
func EmitEnd() string { return endStatement }
