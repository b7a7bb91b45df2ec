package commands

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/magicframe/magic/input"
	"github.com/magicframe/magic/internal/project"
	"github.com/magicframe/magic/output"
)

// KeyGenerateCmd generates a fresh application key and stores it in .env.
// Replacing a key that is already set invalidates everything encrypted with
// it, so that path asks for confirmation unless --force is given.
func KeyGenerateCmd() *cobra.Command {
	var show bool
	var force bool

	cmd := &cobra.Command{
		Use:   "key:generate",
		Short: "Generate a new application key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := generateKey()
			if err != nil {
				return err
			}

			if show {
				fmt.Fprintln(cmd.OutOrStdout(), key)
				return nil
			}

			root, err := project.FindRoot(".")
			if err != nil {
				return err
			}

			existing, err := project.ReadEnvValue(root, "APP_KEY")
			if err != nil {
				return err
			}
			if existing != "" && !force {
				if !input.Confirm("An application key is already set. Overwrite it?", false) {
					output.Info("Keeping the existing key")
					return nil
				}
			}

			if err := project.WriteEnvValue(root, "APP_KEY", key); err != nil {
				return err
			}
			output.Success("Application key set")
			return nil
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "print the key instead of writing it")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "replace an existing key without asking")
	return cmd
}

// generateKey returns a base64-prefixed 256-bit random key, the format the
// framework's encrypter expects in APP_KEY.
func generateKey() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generating key material: %w", err)
	}
	return "base64:" + base64.StdEncoding.EncodeToString(raw), nil
}
