// Package settings holds the user-configurable options and persists them to disk
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/patrickward/twospace"
	"github.com/patrickward/twospace/internal/hotkey"
)

// DefaultFileName is the settings file name inside the config directory
const DefaultFileName = "settings.yaml"

// ErrUnknownSetting is returned by Set for keys that are not recognized
var ErrUnknownSetting = errors.New("unknown setting")

// Settings are the recognized options
type Settings struct {
	RunOnSave          bool   `json:"runOnSave" yaml:"runOnSave"`
	AllowHotkey        bool   `json:"allowHotkey" yaml:"allowHotkey"`
	HotkeyText         string `json:"hotkeyText" yaml:"hotkeyText"`
	ExcludeCodeBlocks  bool   `json:"excludeCodeBlocks" yaml:"excludeCodeBlocks"`
	ExcludeFrontMatter bool   `json:"excludeFrontMatter" yaml:"excludeFrontMatter"`
}

// Default returns the default settings
func Default() Settings {
	return Settings{
		RunOnSave:          true,
		AllowHotkey:        true,
		HotkeyText:         "Ctrl+Alt+Space",
		ExcludeCodeBlocks:  true,
		ExcludeFrontMatter: true,
	}
}

// RewriteOptions returns the options passed to twospace.Rewrite
func (s Settings) RewriteOptions() twospace.Options {
	return twospace.Options{
		ExcludeCodeBlocks:  s.ExcludeCodeBlocks,
		ExcludeFrontMatter: s.ExcludeFrontMatter,
	}
}

// Hotkey parses HotkeyText
func (s Settings) Hotkey() hotkey.Hotkey {
	return hotkey.Parse(s.HotkeyText)
}

// Fields returns the settings as key/value strings, sorted by key
func (s Settings) Fields() [][2]string {
	return [][2]string{
		{"allowHotkey", strconv.FormatBool(s.AllowHotkey)},
		{"excludeCodeBlocks", strconv.FormatBool(s.ExcludeCodeBlocks)},
		{"excludeFrontMatter", strconv.FormatBool(s.ExcludeFrontMatter)},
		{"hotkeyText", s.HotkeyText},
		{"runOnSave", strconv.FormatBool(s.RunOnSave)},
	}
}

// normalizeKey lets "run-on-save", "run_on_save" and "runOnSave" name the same setting
func normalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	key = strings.ReplaceAll(key, "-", "")
	return strings.ReplaceAll(key, "_", "")
}

// parseBool accepts the strconv forms plus yes/no and on/off
func parseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	return strconv.ParseBool(strings.TrimSpace(value))
}

// set assigns a single option from its string form
func (s *Settings) set(key, value string) error {
	setBool := func(dst *bool) error {
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value %q for %s: %w", value, key, err)
		}
		*dst = b
		return nil
	}

	switch normalizeKey(key) {
	case "runonsave":
		return setBool(&s.RunOnSave)
	case "allowhotkey":
		return setBool(&s.AllowHotkey)
	case "hotkeytext", "hotkey":
		s.HotkeyText = value
		return nil
	case "excludecodeblocks":
		return setBool(&s.ExcludeCodeBlocks)
	case "excludefrontmatter":
		return setBool(&s.ExcludeFrontMatter)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}
}

// Store is the process-wide, file-backed settings object. Callers take a Snapshot per use
type Store struct {
	path     string
	settings Settings
	mu       sync.RWMutex
}

// Open loads the settings at path, overlaying any persisted values onto the defaults.
// A missing file yields the defaults
func Open(path string) (*Store, error) {
	st := &Store{path: path, settings: Default()}

	if path == "" {
		return st, nil
	}

	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return st, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
	}

	// Unmarshal only overwrites keys present in the file
	if err := yaml.Unmarshal(content, &st.settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}

	return st, nil
}

// NewMemoryStore returns a store that is never persisted
func NewMemoryStore(s Settings) *Store {
	return &Store{settings: s}
}

// Path returns the backing file path, empty for memory stores
func (st *Store) Path() string {
	return st.path
}

// Snapshot returns a copy of the current settings
func (st *Store) Snapshot() Settings {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.settings
}

// Set changes one option from its string form and persists the result
func (st *Store) Set(key, value string) error {
	return st.Update(func(s *Settings) error {
		return s.set(key, value)
	})
}

// Update applies fn to the settings and persists them. Nothing changes if fn or the write fails
func (st *Store) Update(fn func(*Settings) error) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	updated := st.settings
	if err := fn(&updated); err != nil {
		return err
	}

	if err := st.saveLocked(updated); err != nil {
		return err
	}

	st.settings = updated
	return nil
}

// Reset restores the defaults and persists them
func (st *Store) Reset() error {
	return st.Update(func(s *Settings) error {
		*s = Default()
		return nil
	})
}

// Save writes the settings to disk
func (st *Store) Save() error {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.saveLocked(st.settings)
}

func (st *Store) saveLocked(s Settings) error {
	if st.path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(st.path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	content, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if err := os.WriteFile(st.path, content, 0644); err != nil {
		return fmt.Errorf("failed to save settings %s: %w", st.path, err)
	}

	return nil
}
