package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/magicframe/magic/internal/project"
)

// ConfigListCmd prints every configuration key with its effective value,
// environment overrides included.
func ConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config:list",
		Short: "List all configuration values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := project.FindRoot(".")
			if err != nil {
				return err
			}
			v, err := project.LoadConfig(root)
			if err != nil {
				return err
			}

			keys := v.AllKeys()
			sort.Strings(keys)
			for _, key := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %v\n", key, v.Get(key))
			}
			return nil
		},
	}
}

// ConfigGetCmd prints one configuration value by dotted key.
func ConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config:get <key>",
		Short: "Print a single configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := project.FindRoot(".")
			if err != nil {
				return err
			}
			v, err := project.LoadConfig(root)
			if err != nil {
				return err
			}

			key := args[0]
			if !v.IsSet(key) {
				return fmt.Errorf("unknown config key %q", key)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%v\n", v.Get(key))
			return nil
		},
	}
}
