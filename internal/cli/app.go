package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/patrickward/twospace/internal/crypto"
	"github.com/patrickward/twospace/internal/editor"
	"github.com/patrickward/twospace/internal/files"
	"github.com/patrickward/twospace/internal/logging"
	"github.com/patrickward/twospace/internal/plugin"
	"github.com/patrickward/twospace/internal/rendering"
	"github.com/patrickward/twospace/internal/settings"
)

// App holds the collaborators shared by the subcommands
type App struct {
	Logger     *zap.Logger
	Settings   *settings.Store
	Encryption *crypto.EncryptionManager
	Renderer   *rendering.MarkdownRenderer
	Registry   *plugin.Registry
	Plugin     *plugin.Plugin
	KeysDir    string
}

// Options are the resolved global flags
type Options struct {
	ConfigFile    string
	LogDir        string
	KeysDir       string
	IdentityFile  string
	RecipientFile string
	Verbose       bool
}

// BuildApp resolves paths, sets up logging, loads settings and keys, and loads the plugin
func BuildApp(opts Options) (*App, error) {
	configFile, err := getConfigFile(opts.ConfigFile)
	if err != nil {
		return nil, err
	}

	logConfig := logging.DefaultLogConfig(getLogDirectory(opts.LogDir))
	logConfig.Verbose = opts.Verbose
	logger, err := logging.SetupLogging(logConfig)
	if err != nil {
		return nil, fmt.Errorf("error setting up logging: %w", err)
	}

	store, err := settings.Open(configFile)
	if err != nil {
		return nil, err
	}

	keysDir, err := getKeysDirectory(opts.KeysDir)
	if err != nil {
		return nil, err
	}

	encryption := crypto.NewEncryptionManager()
	identitiesFile, recipientsFile := getKeyFiles(opts.IdentityFile, opts.RecipientFile, keysDir)
	if identitiesFile != "" || recipientsFile != "" {
		if err := encryption.LoadEncryptionKeys(identitiesFile, recipientsFile); err != nil {
			logger.Warn("encryption disabled", zap.Error(err))
		} else {
			logger.Debug("encryption enabled",
				zap.Bool("decrypt", encryption.HasIdentities()),
				zap.Bool("encrypt", encryption.HasRecipients()))
		}
	}

	return NewApp(store, encryption, logger, keysDir), nil
}

// NewApp wires an App from already built parts and loads the plugin into a fresh registry
func NewApp(store *settings.Store, encryption *crypto.EncryptionManager, logger *zap.Logger, keysDir string) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	if encryption == nil {
		encryption = crypto.NewEncryptionManager()
	}

	registry := plugin.NewRegistry()
	p := plugin.New(store, logger)
	p.Load(registry)

	return &App{
		Logger:     logger,
		Settings:   store,
		Encryption: encryption,
		Renderer:   rendering.NewMarkdownRenderer(),
		Registry:   registry,
		Plugin:     p,
		KeysDir:    keysDir,
	}
}

// Close unloads the plugin and flushes the logger
func (a *App) Close() {
	a.Plugin.Unload()
	_ = a.Logger.Sync()
}

// Status is the outcome for a single file
type Status int

const (
	StatusUnchanged Status = iota
	StatusChanged
	StatusWouldChange
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusChanged:
		return "fixed"
	case StatusWouldChange:
		return "needs fixing"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "ok"
	}
}

// Result is the outcome of processing one file
type Result struct {
	Path   string
	Status Status
	Err    error
}

// Report collects the results of a run, in path order
type Report struct {
	Results []Result
}

// Count returns how many results have the given status
func (r Report) Count(status Status) int {
	n := 0
	for _, result := range r.Results {
		if result.Status == status {
			n++
		}
	}
	return n
}

// openDocument opens path, which may be absolute or relative to the working directory
func (a *App) openDocument(path string) (*files.Document, error) {
	ws, err := files.NewWorkspace(filepath.Dir(path), files.WithEncryptionManager(a.Encryption))
	if err != nil {
		return nil, err
	}
	return ws.Open(filepath.Base(path))
}

// optedOut reports whether the document disables rewriting in its front matter
func (a *App) optedOut(doc *files.Document) bool {
	metadata, err := a.Renderer.Metadata(doc.Value())
	if err != nil {
		a.Logger.Debug("unreadable front matter", zap.String("path", doc.Path), zap.Error(err))
		return false
	}
	return rendering.OptedOut(metadata)
}

// collectFiles expands directories into the markdown files below them
func (a *App) collectFiles(paths []string) ([]string, []Result) {
	var collected []string
	var failures []Result

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			failures = append(failures, Result{Path: path, Status: StatusFailed, Err: err})
			continue
		}

		if !info.IsDir() {
			collected = append(collected, path)
			continue
		}

		ws, err := files.NewWorkspace(path)
		if err != nil {
			failures = append(failures, Result{Path: path, Status: StatusFailed, Err: err})
			continue
		}

		found, err := ws.MarkdownFiles(".")
		if err != nil {
			failures = append(failures, Result{Path: path, Status: StatusFailed, Err: err})
			continue
		}
		for _, rel := range found {
			collected = append(collected, filepath.Join(path, rel))
		}
	}

	return collected, failures
}

// Fix runs the ensure-two-spaces command on every markdown file in paths. With check set,
// files are rewritten in memory only and reported as needing a fix
func (a *App) Fix(ctx context.Context, paths []string, check bool) (Report, error) {
	collected, failures := a.collectFiles(paths)
	report := Report{Results: failures}

	for _, path := range collected {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Results = append(report.Results, a.fixFile(path, check))
	}

	sort.SliceStable(report.Results, func(i, j int) bool {
		return report.Results[i].Path < report.Results[j].Path
	})
	return report, nil
}

func (a *App) fixFile(path string, check bool) Result {
	doc, err := a.openDocument(path)
	if err != nil {
		if errors.Is(err, files.ErrNotMarkdown) {
			return Result{Path: path, Status: StatusSkipped, Err: err}
		}
		return Result{Path: path, Status: StatusFailed, Err: err}
	}

	if a.optedOut(doc) {
		return Result{Path: path, Status: StatusSkipped}
	}

	if err := a.Registry.Run(plugin.CommandID, doc); err != nil {
		return Result{Path: path, Status: StatusFailed, Err: err}
	}

	if !doc.Dirty() {
		return Result{Path: path, Status: StatusUnchanged}
	}

	if check {
		return Result{Path: path, Status: StatusWouldChange}
	}

	if err := doc.Save(); err != nil {
		return Result{Path: path, Status: StatusFailed, Err: err}
	}

	a.Logger.Info("fixed line endings", zap.String("path", path))
	return Result{Path: path, Status: StatusChanged}
}

// HandleSave fires the save handlers for a file that was just written and saves the result
func (a *App) HandleSave(path string) Result {
	doc, err := a.openDocument(path)
	if err != nil {
		a.Logger.Error("error opening saved file", zap.String("path", path), zap.Error(err))
		return Result{Path: path, Status: StatusFailed, Err: err}
	}

	if a.optedOut(doc) {
		return Result{Path: path, Status: StatusSkipped}
	}

	a.Registry.Save(doc)
	if !doc.Dirty() {
		return Result{Path: path, Status: StatusUnchanged}
	}

	if err := doc.Save(); err != nil {
		a.Logger.Error("error saving file", zap.String("path", path), zap.Error(err))
		return Result{Path: path, Status: StatusFailed, Err: err}
	}

	a.Logger.Info("fixed line endings on save", zap.String("path", path))
	return Result{Path: path, Status: StatusChanged}
}

// Preview renders the rewritten form of the file without touching it
func (a *App) Preview(path string) (rendering.RenderedContent, error) {
	doc, err := a.openDocument(path)
	if err != nil {
		return rendering.RenderedContent{}, err
	}

	buf := editor.NewBuffer(doc.Value())
	if !a.optedOut(doc) {
		if err := a.Registry.Run(plugin.CommandID, buf); err != nil {
			return rendering.RenderedContent{}, err
		}
	}

	return a.Renderer.Render(buf.Value())
}
