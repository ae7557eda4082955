// Package hotkey parses keyboard shortcut strings such as "Ctrl+Alt+Space"
package hotkey

import (
	"strings"

	"github.com/patrickward/twospace"
)

// Separator joins the parts of a hotkey string
const Separator = "+"

// Hotkey is a key with its modifiers, all lower-cased
type Hotkey struct {
	Modifiers []string
	Key       string
}

// Parse splits text on "+", treating the last part as the key and every preceding part as a modifier.
// Parts are lower-cased and otherwise kept as written
func Parse(text string) Hotkey {
	if text == "" {
		return Hotkey{Modifiers: []string{}}
	}

	parts := strings.Split(text, Separator)
	key := strings.ToLower(parts[len(parts)-1])

	modifiers := make([]string, 0, len(parts)-1)
	for _, mod := range parts[:len(parts)-1] {
		modifiers = append(modifiers, strings.ToLower(mod))
	}

	return Hotkey{Modifiers: modifiers, Key: key}
}

// IsZero reports whether the hotkey has no key
func (h Hotkey) IsZero() bool {
	return h.Key == "" && len(h.Modifiers) == 0
}

// String returns the display form, e.g. "Ctrl+Alt+Space"
func (h Hotkey) String() string {
	parts := make([]string, 0, len(h.Modifiers)+1)
	for _, mod := range h.Modifiers {
		parts = append(parts, twospace.TitleCase(mod))
	}
	parts = append(parts, twospace.TitleCase(h.Key))
	return strings.Join(parts, Separator)
}
