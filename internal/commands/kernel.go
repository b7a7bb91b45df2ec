package commands

import (
	"github.com/magicframe/magic/output"
	"github.com/spf13/cobra"
)

// Kernel owns the root command and turns one argv into an exit code.
type Kernel struct {
	root *cobra.Command
}

// NewKernel builds a kernel around the given registry.
func NewKernel(registry *Registry, version string) *Kernel {
	root := RootCmd(version)
	for _, cmd := range registry.Commands() {
		root.AddCommand(cmd)
	}
	return &Kernel{root: root}
}

// Handle runs one dispatch. It returns 0 when the command succeeded (help
// and version output count as success) and 1 on unknown commands, usage
// errors, and command failures.
func (k *Kernel) Handle(args []string) int {
	if args == nil {
		// cobra falls back to os.Args when args is nil.
		args = []string{}
	}
	k.root.SetArgs(args)
	if err := k.root.Execute(); err != nil {
		output.Error(err.Error())
		return 1
	}
	return 0
}
