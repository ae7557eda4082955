package files

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/patrickward/twospace/internal/crypto"
	"github.com/patrickward/twospace/internal/editor"
)

// Document is a note opened for editing. It implements editor.Editor
type Document struct {
	Path      string
	ws        *Workspace
	original  string
	content   string
	encrypted bool
	cursor    editor.Position
	mu        sync.RWMutex
}

// load reads the document from disk, decrypting it when needed
func (d *Document) load() error {
	raw, err := d.ws.rootManager.ReadFile(filepath.ToSlash(d.Path))
	if err != nil {
		return fmt.Errorf("failed to load document %s: %w", d.Path, err)
	}

	content := string(raw)
	if crypto.IsAgeEncrypted(raw) {
		if !d.ws.encryptionManager.HasIdentities() {
			return fmt.Errorf("%w: %s", ErrEncrypted, d.Path)
		}

		content, err = d.ws.encryptionManager.Decrypt(raw)
		if err != nil {
			return fmt.Errorf("failed to decrypt document %s: %w", d.Path, err)
		}
		d.encrypted = true
	}

	d.original = content
	d.content = content
	return nil
}

// Value implements editor.Editor
func (d *Document) Value() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.content
}

// SetValue implements editor.Editor
func (d *Document) SetValue(content string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.content = content
	d.cursor = editor.Position{}
}

// Cursor implements editor.Editor
func (d *Document) Cursor() editor.Position {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cursor
}

// SetCursor implements editor.Editor
func (d *Document) SetCursor(pos editor.Position) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cursor = editor.ClampPosition(d.content, pos)
}

// Dirty reports whether the content differs from what is on disk
func (d *Document) Dirty() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.content != d.original
}

// Encrypted reports whether the document is stored encrypted
func (d *Document) Encrypted() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.encrypted
}

// Save writes the content back when it changed. Encrypted notes stay encrypted, and notes whose
// front matter sets encrypted: true are encrypted when recipients are loaded
func (d *Document) Save() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.content == d.original {
		return nil
	}

	em := d.ws.encryptionManager
	data := []byte(d.content)
	if d.encrypted || (em.HasRecipients() && crypto.HasEncryptedFrontmatter(d.content)) {
		encrypted, err := em.Encrypt(d.content)
		if err != nil {
			return fmt.Errorf("failed to encrypt document %s: %w", d.Path, err)
		}
		data = encrypted
		d.encrypted = true
	}

	if err := d.ws.rootManager.WriteFile(filepath.ToSlash(d.Path), data, 0644); err != nil {
		return fmt.Errorf("failed to save document %s: %w", d.Path, err)
	}

	d.original = d.content
	return nil
}
