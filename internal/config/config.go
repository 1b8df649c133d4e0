/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.

type OutputConfig struct {
	// Suffix is inserted before the extension of the source path to name the output file.
	Suffix    string `yaml:"suffix"`
	Clipboard bool   `yaml:"clipboard"`
	Preview   bool   `yaml:"preview"` // also render <output>.png
}

type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"` // empty: history.sqlite next to the config file
	Limit   int    `yaml:"limit"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Output        OutputConfig  `yaml:"output"`
	History       HistoryConfig `yaml:"history"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Output:        OutputConfig{Suffix: "_converted", Clipboard: true, Preview: false},
		History:       HistoryConfig{Enabled: true, Limit: 20},
		Logging:       LoggingConfig{Level: "warn", Format: "console"},
	}
}

// Env var names used as overrides.
const (
	EnvConfigPath   = "GLT_CONFIG"
	EnvOutputSuffix = "GLT_OUTPUT_SUFFIX"
	EnvClipboard    = "GLT_CLIPBOARD"
	EnvPreview      = "GLT_PREVIEW"
	EnvHistory      = "GLT_HISTORY"
	EnvHistoryPath  = "GLT_HISTORY_PATH"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "GLT_LOG_LEVEL"
	EnvLogFormat = "GLT_LOG_FORMAT"
	EnvLogSource = "GLT_LOG_SOURCE"
	EnvLogFile   = "GLT_LOG_FILE"
)

// ErrInvalid is wrapped when the config file does not match the schema.
var ErrInvalid = errors.New("invalid config file")

//go:embed config.schema.json
var schemaJSON []byte

// ConfigPath returns the per-user config file path. GLT_CONFIG overrides it.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "glsltext")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "glsltext")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = filepath.Join(xdg, "glsltext")
		} else if home := os.Getenv("HOME"); home != "" {
			base = filepath.Join(home, ".config", "glsltext")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present) over the defaults and applies
// environment overrides. A file that fails schema validation is ignored and
// reported through an error wrapping ErrInvalid; the returned config is still usable.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		applyEnvOverrides(&cfg)
		return cfg, err
	}
	var loadErr error
	if data, rerr := os.ReadFile(path); rerr == nil {
		if verr := ValidateDocument(data); verr != nil {
			loadErr = fmt.Errorf("%s: %w", path, verr)
		} else {
			fileCfg := Defaults()
			if uerr := yaml.Unmarshal(data, &fileCfg); uerr != nil {
				loadErr = fmt.Errorf("%s: %w: %v", path, ErrInvalid, uerr)
			} else {
				cfg = fileCfg
			}
		}
	} else if !errors.Is(rerr, os.ErrNotExist) {
		loadErr = fmt.Errorf("read config: %w", rerr)
	}
	normalize(&cfg)
	applyEnvOverrides(&cfg)
	return cfg, loadErr
}

// Save writes cfg as YAML to the user config path.
func Save(cfg AppConfig) (string, error) {
	path, err := ConfigPath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}
	if err := ValidateDocument(data); err != nil {
		return "", err
	}
	return path, os.WriteFile(path, data, 0o600)
}

// ValidateDocument checks a YAML config document against the embedded JSON schema.
// An empty document is valid.
func ValidateDocument(data []byte) error {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if doc == nil {
		return nil
	}
	res, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schemaJSON), gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

// HistoryPath resolves where the conversion history database lives.
func (c AppConfig) HistoryPath() (string, error) {
	if p := strings.TrimSpace(c.History.Path); p != "" {
		return p, nil
	}
	cp, err := ConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(cp), "history.sqlite"), nil
}

func normalize(cfg *AppConfig) {
	cfg.Output.Suffix = strings.TrimSpace(cfg.Output.Suffix)
	if cfg.Output.Suffix == "" {
		cfg.Output.Suffix = Defaults().Output.Suffix
	}
	if cfg.History.Limit <= 0 {
		cfg.History.Limit = Defaults().History.Limit
	}
	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	cfg.Logging.Format = strings.ToLower(strings.TrimSpace(cfg.Logging.Format))
	cfg.Logging.File = strings.TrimSpace(cfg.Logging.File)
}

func parseBool(v string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes":
		return true, true
	case "0", "false", "off", "no":
		return false, true
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b, true
	}
	return false, false
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvOutputSuffix)); v != "" {
		cfg.Output.Suffix = v
	}
	if b, ok := parseBool(os.Getenv(EnvClipboard)); ok {
		cfg.Output.Clipboard = b
	}
	if b, ok := parseBool(os.Getenv(EnvPreview)); ok {
		cfg.Output.Preview = b
	}
	if b, ok := parseBool(os.Getenv(EnvHistory)); ok {
		cfg.History.Enabled = b
	}
	if v := strings.TrimSpace(os.Getenv(EnvHistoryPath)); v != "" {
		cfg.History.Path = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if b, ok := parseBool(os.Getenv(EnvLogSource)); ok {
		cfg.Logging.Source = b
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	env := map[string]string{
		"output.suffix":    EnvOutputSuffix,
		"output.clipboard": EnvClipboard,
		"output.preview":   EnvPreview,
		"history.enabled":  EnvHistory,
		"history.path":     EnvHistoryPath,
		"logging.level":    EnvLogLevel,
		"logging.format":   EnvLogFormat,
		"logging.source":   EnvLogSource,
		"logging.file":     EnvLogFile,
	}[key]
	if env != "" && os.Getenv(env) != "" {
		return env, true
	}
	return "", false
}
