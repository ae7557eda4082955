package plugin

import (
	"fmt"
	"sort"
	"sync"

	"github.com/patrickward/twospace/internal/editor"
)

// Registry is an in-process Host
type Registry struct {
	commands     map[string]Command
	saveHandlers []func(ed editor.Editor)
	mu           sync.RWMutex
}

// NewRegistry returns an empty Registry
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// AddCommand implements Host. A command with the same ID replaces the previous one
func (r *Registry) AddCommand(cmd Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[cmd.ID] = cmd
}

// OnSave implements Host
func (r *Registry) OnSave(handler func(ed editor.Editor)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saveHandlers = append(r.saveHandlers, handler)
}

// Command returns the command registered under id
func (r *Registry) Command(id string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[id]
	return cmd, ok
}

// Commands returns all commands sorted by ID
func (r *Registry) Commands() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cmds := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].ID < cmds[j].ID })
	return cmds
}

// Run invokes the command registered under id against ed
func (r *Registry) Run(id string, ed editor.Editor) error {
	cmd, ok := r.Command(id)
	if !ok {
		return fmt.Errorf("command %s is not registered", id)
	}
	cmd.EditorCallback(ed)
	return nil
}

// HasSaveHandlers reports whether anything listens for saves
func (r *Registry) HasSaveHandlers() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.saveHandlers) > 0
}

// Save fires the save handlers for ed in registration order
func (r *Registry) Save(ed editor.Editor) {
	r.mu.RLock()
	handlers := append([]func(ed editor.Editor){}, r.saveHandlers...)
	r.mu.RUnlock()

	for _, handler := range handlers {
		handler(ed)
	}
}
