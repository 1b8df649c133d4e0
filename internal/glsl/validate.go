/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package glsl

import "strings"

// commandPrefixes are the keywords that make a line a command line.
var commandPrefixes = []string{
	darkenPrefix,
	startPrefix,
	colorPrefix,
	titlePrefix,
	textPrefix,
	footnotePrefix,
}

// IsCommandLine reports whether line, once trimmed, is a command: it starts
// with a command keyword or is exactly end().
func IsCommandLine(line string) bool {
	t := strings.TrimSpace(line)
	if t == endLiteral {
		return true
	}
	for _, p := range commandPrefixes {
		if strings.HasPrefix(t, p) {
			return true
		}
	}
	return false
}

// IsAllowed reports whether r may appear in a line. Parentheses are always
// accepted on command lines.
func IsAllowed(r rune, commandLine bool) bool {
	if isAlnum(r) {
		return true
	}
	if _, ok := specialTokens[r]; ok {
		return true
	}
	return commandLine && (r == '(' || r == ')')
}

// Validate checks every character of every line and returns the first
// *IllegalCharacterError. It runs before any command is interpreted.
func Validate(lines []string) error {
	for i, line := range lines {
		cmd := IsCommandLine(line)
		for _, r := range line {
			if !IsAllowed(r, cmd) {
				return &IllegalCharacterError{Line: i + 1, Char: r}
			}
		}
	}
	return nil
}
