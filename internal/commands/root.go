package commands

import (
	"github.com/magicframe/magic/output"
	"github.com/spf13/cobra"
)

// RootCmd builds the bare root command. Subcommands are attached by the
// kernel from a registry.
func RootCmd(version string) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:     "magic",
		Short:   "Magic is a scaffolding and maintenance CLI for Magic applications",
		Long:    "Magic generates application artifacts from stubs, manages the\nproject configuration, and inspects an application from the command line.",
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
		},
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	cmd.Flags().BoolP("version", "V", false, "print the version and exit")

	return cmd
}
