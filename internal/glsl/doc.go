/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package glsl compiles the text markup into GLSL drawing statements for the
// in-shader text renderer.
//
// A document is a list of lines. Sections are opened with start(size, x, y)
// or one of the shortcuts Title(), Text() and Footnote(), colored with
// vec3(r, g, b) and closed with end(). Every other non-blank line inside a
// section is printed as text. An optional darken(value) may appear on the
// first line only.
//
// Compilation is all-or-nothing: the first error aborts and no statements
// are returned. The package holds no global mutable state, so independent
// Compile calls may run concurrently.
package glsl
