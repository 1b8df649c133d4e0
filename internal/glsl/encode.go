/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package glsl

// specialTokens maps every allowed non-alphanumeric character to the
// identifier the shader's font table defines for it.
var specialTokens = map[rune]string{
	' ': "_space",
	'.': "_dot",
	'-': "_minus",
	',': "_comma",
	':': "_colon",
	'_': "_under",
	'"': "_quote",
	'!': "_exclm",
	'>': "_gt",
	'<': "_lt",
	'[': "_opsqr",
	']': "_clsqr",
	'(': "_opprn",
	')': "_clprn",
	'=': "_equal",
	'+': "_plus",
	'█': "_block",
	'©': "_copyr",
}

// SpaceToken is emitted for every space character.
const SpaceToken = "_space"

// isAlnum accepts ASCII letters and digits only; the font has no other glyphs.
func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// Encode returns the token for r. Letters and digits become "_" followed by
// the character itself, table characters their named token.
func Encode(r rune) (string, bool) {
	if isAlnum(r) {
		return "_" + string(r), true
	}
	tok, ok := specialTokens[r]
	return tok, ok
}

// EncodeLine encodes s rune by rune, keeping order and repeated whitespace.
// Input must have passed Validate; a rune without token falls back to the
// letter form.
func EncodeLine(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		tok, ok := Encode(r)
		if !ok {
			tok = "_" + string(r)
		}
		out = append(out, tok)
	}
	return out
}
