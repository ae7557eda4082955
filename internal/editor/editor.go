// Package editor defines the editor contract the rewriter is applied through
package editor

import (
	"sync"

	"github.com/patrickward/twospace"
)

// Position is a zero-based line and column in a document
type Position struct {
	Line int
	Ch   int
}

// Editor is an open document with a cursor
type Editor interface {
	Value() string
	SetValue(content string)
	Cursor() Position
	SetCursor(pos Position)
}

// Apply rewrites the editor content. When the content changes it is replaced and the cursor
// is put back at its previous coordinates. It returns whether anything changed
func Apply(ed Editor, opts twospace.Options) bool {
	content := ed.Value()

	rewritten, changed := twospace.RewriteChanged(content, opts)
	if !changed {
		return false
	}

	cursor := ed.Cursor()
	ed.SetValue(rewritten)
	ed.SetCursor(cursor)
	return true
}

// Buffer is an in-memory Editor
type Buffer struct {
	content string
	cursor  Position
	mu      sync.RWMutex
}

// NewBuffer creates a Buffer holding content with the cursor at the start
func NewBuffer(content string) *Buffer {
	return &Buffer{content: content}
}

// Value returns the buffer content
func (b *Buffer) Value() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content
}

// SetValue replaces the content. The cursor moves to the start, as editors do on a full replace
func (b *Buffer) SetValue(content string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.content = content
	b.cursor = Position{}
}

// Cursor returns the cursor position
func (b *Buffer) Cursor() Position {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cursor
}

// SetCursor moves the cursor, clamped to the document
func (b *Buffer) SetCursor(pos Position) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursor = ClampPosition(b.content, pos)
}

// ClampPosition limits pos to an existing line and column of content
func ClampPosition(content string, pos Position) Position {
	lines := twospace.SplitLines(content)

	if pos.Line < 0 {
		pos.Line = 0
	}
	if pos.Line >= len(lines) {
		pos.Line = len(lines) - 1
	}

	width := len([]rune(lines[pos.Line]))
	if pos.Ch < 0 {
		pos.Ch = 0
	}
	if pos.Ch > width {
		pos.Ch = width
	}

	return pos
}
