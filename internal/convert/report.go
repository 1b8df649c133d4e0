/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package convert

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

var rule = strings.Repeat("=", 60)

// PrintBanner writes the interactive header.
func PrintBanner(w io.Writer) {
	_, _ = fmt.Fprintf(w, "\n%s\n  TEXT TO GLSL CONVERTER\n%s\n", rule, rule)
}

// PromptPath asks for the document path on w and reads one line from r.
// Surrounding whitespace and quotes (as added by drag and drop into a
// terminal) are removed.
func PromptPath(r io.Reader, w io.Writer) (string, error) {
	_, _ = fmt.Fprint(w, "\nEnter the path to the .txt file: ")
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read path: %w", err)
	}
	p := strings.Trim(strings.TrimSpace(line), `"'`)
	if p == "" {
		return "", errors.New("no path given")
	}
	return p, nil
}

// PrintResult writes the converted text followed by the summary block.
func PrintResult(w io.Writer, res *Result) {
	_, _ = fmt.Fprintf(w, "\n%s\nCONVERTED TEXT:\n%s\n%s\n", rule, rule, res.Text)
	_, _ = fmt.Fprintf(w, "\n%s\nSUMMARY:\n", rule)
	_, _ = fmt.Fprintf(w, "  Input file: %s\n", res.Source)
	_, _ = fmt.Fprintf(w, "  Output file: %s\n", res.Output)
	if res.PreviewPath != "" {
		_, _ = fmt.Fprintf(w, "  Preview: %s\n", res.PreviewPath)
	}
	switch res.Clipboard {
	case ClipCopied:
		_, _ = fmt.Fprintln(w, "  Text copied to clipboard")
	case ClipFailed:
		_, _ = fmt.Fprintln(w, "  Could not copy to clipboard due to an error")
	case ClipUnavailable:
		_, _ = fmt.Fprintln(w, "  Clipboard functionality not available")
	}
	_, _ = fmt.Fprintf(w, "  Text length: %d characters\n%s\n", res.Length(), rule)
}

// PrintError writes a message for err worded by its category.
func PrintError(w io.Writer, path string, err error) {
	switch Classify(err) {
	case CategoryNotFound:
		_, _ = fmt.Fprintf(w, "\nERROR: File not found!\nCould not find file at: %s\nPlease check the path and try again.\n", path)
	case CategoryFormat:
		_, _ = fmt.Fprintf(w, "\nERROR: Invalid input format!\n%v\n", err)
	default:
		_, _ = fmt.Fprintf(w, "\nERROR: Unexpected error!\n%v\nPlease report this issue if it persists.\n", err)
	}
}
