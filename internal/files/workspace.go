// Package files reads and writes markdown notes inside a workspace directory,
// transparently handling age encrypted notes
package files

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/patrickward/twospace"
	"github.com/patrickward/twospace/internal/crypto"
)

var (
	ErrNotMarkdown = errors.New("not a markdown file")
	ErrEncrypted   = errors.New("document is encrypted and no identity is loaded")
)

// Workspace is a directory of markdown notes
type Workspace struct {
	rootManager       *RootManager
	encryptionManager *crypto.EncryptionManager
}

// WorkspaceOption configures a Workspace
type WorkspaceOption func(*Workspace)

// WithEncryptionManager enables reading and writing age encrypted notes
func WithEncryptionManager(manager *crypto.EncryptionManager) WorkspaceOption {
	return func(ws *Workspace) {
		if manager != nil {
			ws.encryptionManager = manager
		}
	}
}

// NewWorkspace opens the workspace rooted at dir
func NewWorkspace(dir string, opts ...WorkspaceOption) (*Workspace, error) {
	rootManager, err := NewRootManager(dir)
	if err != nil {
		return nil, err
	}

	ws := &Workspace{
		rootManager:       rootManager,
		encryptionManager: crypto.NewEncryptionManager(),
	}
	for _, opt := range opts {
		opt(ws)
	}

	return ws, nil
}

// Root returns the workspace directory
func (ws *Workspace) Root() string {
	return ws.rootManager.Path()
}

// MarkdownFiles lists the markdown files below dir, relative to the workspace root
func (ws *Workspace) MarkdownFiles(dir string) ([]string, error) {
	results, err := ws.rootManager.Scan(filepath.ToSlash(dir), func(path string, d fs.DirEntry) bool {
		return !d.IsDir() && twospace.IsMarkdownFile(d.Name())
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	paths := make([]string, 0, len(results))
	for _, result := range results {
		paths = append(paths, result.Path)
	}

	return paths, nil
}

// Open loads the markdown document at path, relative to the workspace root
func (ws *Workspace) Open(path string) (*Document, error) {
	if !twospace.IsMarkdownFile(path) {
		return nil, fmt.Errorf("%w: %s", ErrNotMarkdown, path)
	}

	doc := &Document{Path: path, ws: ws}
	if err := doc.load(); err != nil {
		return nil, err
	}

	return doc, nil
}
