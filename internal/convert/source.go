/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadSource reads a text document as UTF-8. A leading byte order mark is
// honoured and removed, so files saved as UTF-16 by Windows editors decode
// the same as plain UTF-8 ones.
func ReadSource(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return decode(f)
}

func decode(r io.Reader) (string, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	b, err := io.ReadAll(transform.NewReader(r, dec))
	if err != nil {
		return "", fmt.Errorf("decode source: %w", err)
	}
	return string(b), nil
}

// OutputPath derives the output file name: the input's base name with
// suffix inserted before the extension. "credits.txt" becomes
// "credits_converted.txt"; dot files keep their whole name as the stem.
func OutputPath(src, suffix string) string {
	ext := filepath.Ext(src)
	if ext == filepath.Base(src) {
		ext = ""
	}
	return strings.TrimSuffix(src, ext) + suffix + ext
}

// PreviewPath is the PNG written next to the output when previews are on.
func PreviewPath(output string) string {
	return strings.TrimSuffix(output, filepath.Ext(output)) + ".png"
}
