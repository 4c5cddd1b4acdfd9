package command

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrDuplicateCommand is returned by NewRegistry when two commands share a name.
var ErrDuplicateCommand = errors.New("command: duplicate command name")

// Store is the storage handle commands operate on.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// Command is a named, stateless operation.
//
// Execute never fails: argument problems are reported as an error reply.
type Command interface {
	Name() string
	Execute(args []string, store Store) string
}

// Registry maps uppercase command names to commands.
// It is immutable after construction and safe for concurrent use.
type Registry struct {
	commands map[string]Command
}

// NewRegistry builds a registry from cmds. Names are matched
// case-insensitively, so "get" and "GET" collide.
func NewRegistry(cmds ...Command) (*Registry, error) {
	r := &Registry{
		commands: make(map[string]Command, len(cmds)),
	}
	for _, c := range cmds {
		name := strings.ToUpper(c.Name())
		if _, exists := r.commands[name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCommand, name)
		}
		r.commands[name] = c
	}
	return r, nil
}

// DefaultRegistry returns a registry holding GET and SET.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(Get{}, Set{})
	if err != nil {
		// Built from constants; a duplicate here is a programming error.
		panic(err)
	}
	return r
}

// Lookup returns the command registered under name, ignoring case.
func (r *Registry) Lookup(name string) (Command, bool) {
	c, ok := r.commands[strings.ToUpper(name)]
	return c, ok
}

// Names returns the registered command names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
