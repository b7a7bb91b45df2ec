// Package commands wires the CLI surface: one constructor per command, an
// explicit registry, and the kernel that dispatches a single invocation.
package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// Registry maps command names to commands for one process. It is built at
// startup and read-only during dispatch. Registering two commands under the
// same name is rejected so registration order can never silently change
// behavior.
type Registry struct {
	byName map[string]*cobra.Command
	order  []*cobra.Command
}

// NewRegistry returns an empty registry. Build one per process (or per
// test) instead of sharing a package-level instance.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*cobra.Command)}
}

// Register adds a command under its cobra name (the first word of Use).
func (r *Registry) Register(cmd *cobra.Command) error {
	name := cmd.Name()
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("command %q registered twice", name)
	}
	r.byName[name] = cmd
	r.order = append(r.order, cmd)
	return nil
}

// Commands returns all registered commands in registration order.
func (r *Registry) Commands() []*cobra.Command {
	return r.order
}

// Names returns the sorted registered command names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry builds the registry with every magic command.
func DefaultRegistry() (*Registry, error) {
	r := NewRegistry()

	cmds := MakeCmds()
	cmds = append(cmds,
		InstallCmd(),
		KeyGenerateCmd(),
		ConfigListCmd(),
		ConfigGetCmd(),
		RouteListCmd(),
	)

	for _, cmd := range cmds {
		if err := r.Register(cmd); err != nil {
			return nil, err
		}
	}

	return r, nil
}
