package hotkey_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/patrickward/twospace/internal/hotkey"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want hotkey.Hotkey
	}{
		{"Ctrl+Alt+Space", hotkey.Hotkey{Modifiers: []string{"ctrl", "alt"}, Key: "space"}},
		{"Mod+Shift+T", hotkey.Hotkey{Modifiers: []string{"mod", "shift"}, Key: "t"}},
		{"F5", hotkey.Hotkey{Modifiers: []string{}, Key: "f5"}},
		{"CTRL+", hotkey.Hotkey{Modifiers: []string{"ctrl"}, Key: ""}},
		{"", hotkey.Hotkey{Modifiers: []string{}}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, hotkey.Parse(tt.text))
		})
	}
}

func TestHotkey_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Ctrl+Alt+Space", hotkey.Parse("ctrl+ALT+space").String())
	assert.Equal(t, "F5", hotkey.Parse("f5").String())
}

func TestHotkey_IsZero(t *testing.T) {
	t.Parallel()

	assert.True(t, hotkey.Parse("").IsZero())
	assert.False(t, hotkey.Parse("Ctrl+S").IsZero())
}
