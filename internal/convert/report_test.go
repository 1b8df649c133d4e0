/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package convert

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"glsltext/internal/glsl"
)

func TestPromptPathStripsQuotes(t *testing.T) {
	for in, want := range map[string]string{
		"  \"C:\\docs\\credits.txt\"  \n": `C:\docs\credits.txt`,
		"'/tmp/a b.txt'\n":                "/tmp/a b.txt",
		"plain.txt":                       "plain.txt",
	} {
		var out bytes.Buffer
		got, err := PromptPath(strings.NewReader(in), &out)
		if err != nil {
			t.Fatalf("PromptPath(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("PromptPath(%q) = %q, want %q", in, got, want)
		}
		if !strings.Contains(out.String(), "Enter the path") {
			t.Errorf("prompt not written")
		}
	}
}

func TestPromptPathEmpty(t *testing.T) {
	if _, err := PromptPath(strings.NewReader("\n"), &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for empty input")
	}
	if _, err := PromptPath(strings.NewReader(""), &bytes.Buffer{}); err == nil {
		t.Fatal("expected error at EOF")
	}
}

func TestPrintResultSummary(t *testing.T) {
	res := &Result{Source: "in.txt", Output: "in_converted.txt", Text: "endText(color.rgb);", Clipboard: ClipUnavailable}
	var buf bytes.Buffer
	PrintResult(&buf, res)
	s := buf.String()
	for _, want := range []string{
		"CONVERTED TEXT:\n" + strings.Repeat("=", 60) + "\nendText(color.rgb);\n",
		"Input file: in.txt",
		"Output file: in_converted.txt",
		"Clipboard functionality not available",
		"Text length: 19 characters",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("summary missing %q:\n%s", want, s)
		}
	}
	if strings.Contains(s, "Preview:") {
		t.Errorf("preview line printed without a preview")
	}
}

func TestPrintErrorByCategory(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("open: %w", fs.ErrNotExist), "Could not find file at: x.txt"},
		{&glsl.StructuralError{Line: 3, Reason: glsl.ReasonOutsideSection}, "Invalid input format!"},
		{errors.New("disk full"), "Please report this issue"},
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		PrintError(&buf, "x.txt", tc.err)
		if !strings.Contains(buf.String(), tc.want) {
			t.Errorf("PrintError(%v) = %q, want substring %q", tc.err, buf.String(), tc.want)
		}
	}
}
