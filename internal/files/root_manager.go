package files

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// RootManager provides filesystem operations confined to a directory using os.Root
type RootManager struct {
	path string
}

// NewRootManager creates a RootManager for an existing directory
func NewRootManager(path string) (*RootManager, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory %s: %w", path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", path)
	}

	// Test that we can open the directory as a root
	testRoot, err := os.OpenRoot(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory as root %s: %w", path, err)
	}
	_ = testRoot.Close()

	return &RootManager{path: path}, nil
}

// Path returns the root directory
func (rm *RootManager) Path() string {
	return rm.path
}

// withRoot executes a function with a safely opened os.Root
func (rm *RootManager) withRoot(fn func(*os.Root) error) error {
	root, err := os.OpenRoot(rm.path)
	if err != nil {
		return fmt.Errorf("failed to open root: %w", err)
	}
	defer func(root *os.Root) {
		_ = root.Close()
	}(root)

	return fn(root)
}

func (rm *RootManager) ReadFile(filename string) ([]byte, error) {
	var content []byte
	err := rm.withRoot(func(root *os.Root) error {
		var err error
		content, err = root.ReadFile(filename)
		return err
	})
	return content, err
}

// WriteFile writes content, keeping the mode of an existing file
func (rm *RootManager) WriteFile(filename string, content []byte, perm os.FileMode) error {
	return rm.withRoot(func(root *os.Root) error {
		if info, err := root.Stat(filename); err == nil {
			perm = info.Mode().Perm()
		}
		return root.WriteFile(filename, content, perm)
	})
}

func (rm *RootManager) FileExists(filename string) bool {
	_, err := rm.Stat(filename)
	return err == nil
}

func (rm *RootManager) Stat(filename string) (os.FileInfo, error) {
	var info os.FileInfo
	err := rm.withRoot(func(root *os.Root) error {
		var err error
		info, err = root.Stat(filename)
		return err
	})
	return info, err
}

// WalkDir walks the directory tree using Root.FS()
func (rm *RootManager) WalkDir(root string, fn fs.WalkDirFunc) error {
	return rm.withRoot(func(osRoot *os.Root) error {
		return fs.WalkDir(osRoot.FS(), root, fn)
	})
}

// ScanResult holds information about a scanned file or directory
type ScanResult struct {
	Path         string
	Name         string
	IsDir        bool
	RelativePath string
}

// Scan walks rootDir, keeping entries accepted by filter. Hidden directories are skipped
func (rm *RootManager) Scan(rootDir string, filter func(string, fs.DirEntry) bool) ([]ScanResult, error) {
	var results []ScanResult

	err := rm.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Continue walking despite errors
		}

		if d.IsDir() && path != rootDir && strings.HasPrefix(d.Name(), ".") {
			return fs.SkipDir
		}

		if filter != nil && !filter(path, d) {
			return nil
		}

		relativePath := path
		if rootDir != "." && rootDir != "" {
			relativePath = strings.TrimPrefix(path, rootDir+"/")
		}

		results = append(results, ScanResult{
			Path:         filepath.FromSlash(path),
			Name:         d.Name(),
			IsDir:        d.IsDir(),
			RelativePath: filepath.FromSlash(relativePath),
		})

		return nil
	})

	return results, err
}
