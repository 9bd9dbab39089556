// Package cli holds the command registry shared by the onsen and devtool binaries.
package cli

import (
	"fmt"
	"io"
	"sort"
)

// Named is the minimum a command exposes to the registry
type Named interface {
	Name() string
	Description() string
}

// usager is implemented by commands whose help line shows their arguments
type usager interface {
	Usage() string
}

// Registry maps command names to commands of type C
type Registry[C Named] struct {
	program  string
	commands map[string]C
}

// NewRegistry creates an empty registry for program
func NewRegistry[C Named](program string) *Registry[C] {
	return &Registry[C]{
		program:  program,
		commands: make(map[string]C),
	}
}

// Register adds cmd, replacing any command with the same name
func (r *Registry[C]) Register(cmd C) {
	r.commands[cmd.Name()] = cmd
}

// Get retrieves a command by name
func (r *Registry[C]) Get(name string) (C, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// List returns all registered commands sorted by name
func (r *Registry[C]) List() []C {
	cmds := make([]C, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool {
		return cmds[i].Name() < cmds[j].Name()
	})
	return cmds
}

// PrintHelp writes one line per command with descriptions in a common column
func (r *Registry[C]) PrintHelp(w io.Writer) {
	fmt.Fprintf(w, "Usage: %s <command> [args...]\n", r.program)
	fmt.Fprintln(w, "\nAvailable Commands:")

	cmds := r.List()
	maxLen := 0
	for _, cmd := range cmds {
		maxLen = max(maxLen, len(helpLabel(cmd)))
	}

	for _, cmd := range cmds {
		label := helpLabel(cmd)
		padding := maxLen - len(label) + 2
		fmt.Fprintf(w, "  %s%*s%s\n", label, padding, "", cmd.Description())
	}
}

func helpLabel(cmd Named) string {
	if u, ok := cmd.(usager); ok {
		return u.Usage()
	}
	return cmd.Name()
}
