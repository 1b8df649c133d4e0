/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package convert

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrClipboardUnavailable means no clipboard backend exists on this system
// (no xclip/xsel/wl-copy on Linux, headless session, ...).
var ErrClipboardUnavailable = errors.New("clipboard not available")

// Clipboard receives the converted text.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnavailable
	}
	return clipboard.WriteAll(text)
}

// ClipStatus describes what happened to the clipboard copy.
type ClipStatus int

const (
	ClipDisabled ClipStatus = iota
	ClipCopied
	ClipFailed
	ClipUnavailable
)

func (s ClipStatus) String() string {
	switch s {
	case ClipCopied:
		return "copied"
	case ClipFailed:
		return "failed"
	case ClipUnavailable:
		return "unavailable"
	default:
		return "disabled"
	}
}

func copyTo(c Clipboard, text string) (ClipStatus, error) {
	if c == nil {
		return ClipDisabled, nil
	}
	err := c.WriteAll(text)
	switch {
	case err == nil:
		return ClipCopied, nil
	case errors.Is(err, ErrClipboardUnavailable):
		return ClipUnavailable, err
	default:
		return ClipFailed, err
	}
}
