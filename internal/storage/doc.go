/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package storage implements the on-disk side of glsltext.
// It writes output files atomically (temp file, fsync, rename) so a crash never leaves a half-written snippet.
// It also keeps a per-user SQLite history (history.sqlite next to the config file) of every conversion attempt.
// The history is informational and disposable; deleting it loses nothing the converter needs.
package storage
