// Package plugin registers the two-space rewrite with a host: an explicit command,
// a save handler and an optional hotkey command, each gated by the current settings
package plugin

import (
	"go.uber.org/zap"

	"github.com/patrickward/twospace/internal/editor"
	"github.com/patrickward/twospace/internal/hotkey"
	"github.com/patrickward/twospace/internal/settings"
)

// Command IDs registered by Load
const (
	// CommandID rewrites the active editor and is always registered
	CommandID = "ensure-two-spaces"

	// HotkeyCommandID is the same rewrite bound to the configured hotkey, registered when allowHotkey is on
	HotkeyCommandID = "hotkey-ensure-two-spaces"
)

// Command is a host command bound to the active editor
type Command struct {
	ID             string
	Name           string
	Hotkeys        []hotkey.Hotkey
	EditorCallback func(ed editor.Editor)
}

// Host is the application the plugin is loaded into
type Host interface {
	AddCommand(cmd Command)
	OnSave(handler func(ed editor.Editor))
}

// Plugin is the two-space rewrite as a loadable host plugin
type Plugin struct {
	store  *settings.Store
	logger *zap.Logger
}

// New creates a Plugin reading its options from store
func New(store *settings.Store, logger *zap.Logger) *Plugin {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Plugin{store: store, logger: logger}
}

// Load registers commands and handlers with host according to the current settings.
// Toggling runOnSave or allowHotkey takes effect the next time the plugin is loaded
func (p *Plugin) Load(host Host) {
	p.logger.Debug("Loading two spaces plugin")
	s := p.store.Snapshot()

	host.AddCommand(Command{
		ID:             CommandID,
		Name:           "Ensure all lines end with exactly two spaces",
		EditorCallback: p.EnsureTwoSpaces,
	})

	if s.RunOnSave {
		host.OnSave(p.EnsureTwoSpaces)
	}

	if s.AllowHotkey {
		host.AddCommand(Command{
			ID:             HotkeyCommandID,
			Name:           "Hotkey: Ensure two spaces at end of lines",
			Hotkeys:        []hotkey.Hotkey{s.Hotkey()},
			EditorCallback: p.EnsureTwoSpaces,
		})
	}
}

// Unload is called when the host unloads the plugin
func (p *Plugin) Unload() {
	p.logger.Debug("Unloading two spaces plugin")
}

// EnsureTwoSpaces rewrites the editor with the settings in effect at call time
func (p *Plugin) EnsureTwoSpaces(ed editor.Editor) {
	opts := p.store.Snapshot().RewriteOptions()
	if editor.Apply(ed, opts) {
		p.logger.Debug("rewrote line endings")
	}
}
