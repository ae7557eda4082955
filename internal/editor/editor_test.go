package editor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/patrickward/twospace"
	"github.com/patrickward/twospace/internal/editor"
)

func TestApply_ChangesContentAndRestoresCursor(t *testing.T) {
	t.Parallel()
	buf := editor.NewBuffer("hello\nworld")
	buf.SetCursor(editor.Position{Line: 1, Ch: 3})

	changed := editor.Apply(buf, twospace.DefaultOptions)

	assert.True(t, changed)
	assert.Equal(t, "hello  \nworld  ", buf.Value())
	assert.Equal(t, editor.Position{Line: 1, Ch: 3}, buf.Cursor())
}

func TestApply_NoChange(t *testing.T) {
	t.Parallel()
	buf := editor.NewBuffer("hello  \n\n```\ncode\n```")
	buf.SetCursor(editor.Position{Line: 3, Ch: 2})

	changed := editor.Apply(buf, twospace.DefaultOptions)

	assert.False(t, changed)
	assert.Equal(t, "hello  \n\n```\ncode\n```", buf.Value())
	assert.Equal(t, editor.Position{Line: 3, Ch: 2}, buf.Cursor())
}

func TestApply_CursorClampedWhenLineShrinks(t *testing.T) {
	t.Parallel()
	buf := editor.NewBuffer("abc      \nx")
	buf.SetCursor(editor.Position{Line: 0, Ch: 9})

	assert.True(t, editor.Apply(buf, twospace.DefaultOptions))
	assert.Equal(t, "abc  \nx  ", buf.Value())
	assert.Equal(t, editor.Position{Line: 0, Ch: 5}, buf.Cursor())
}

func TestClampPosition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		pos     editor.Position
		want    editor.Position
	}{
		{"inside", "ab\ncd", editor.Position{Line: 1, Ch: 1}, editor.Position{Line: 1, Ch: 1}},
		{"past last line", "ab\ncd", editor.Position{Line: 5, Ch: 1}, editor.Position{Line: 1, Ch: 1}},
		{"past line end", "ab\ncd", editor.Position{Line: 0, Ch: 9}, editor.Position{Line: 0, Ch: 2}},
		{"negative", "ab", editor.Position{Line: -1, Ch: -4}, editor.Position{}},
		{"empty document", "", editor.Position{Line: 2, Ch: 2}, editor.Position{}},
		{"multibyte", "héllo", editor.Position{Line: 0, Ch: 9}, editor.Position{Line: 0, Ch: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, editor.ClampPosition(tt.content, tt.pos))
		})
	}
}
