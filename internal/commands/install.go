package commands

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/magicframe/magic/generator"
	"github.com/magicframe/magic/internal/mutate"
	"github.com/magicframe/magic/internal/project"
	"github.com/magicframe/magic/internal/stub"
	"github.com/magicframe/magic/output"
)

const frameworkDependency = "  magic_framework: ^1.0.0\n"

// InstallCmd scaffolds the framework files into an existing Dart package:
// the application config, the .env file, the framework dependency in
// pubspec.yaml, and an application key. Every step is idempotent so
// install can be rerun after a partial failure.
func InstallCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the framework into the current project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := project.FindRoot(".")
			if err != nil {
				return err
			}
			return runInstall(cmd, root, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing config and .env files")
	return cmd
}

func runInstall(cmd *cobra.Command, root string, force bool) error {
	pubspec, err := project.LoadPubspec(root)
	if err != nil {
		return err
	}

	loader := stub.NewLoader(root)
	replacements := map[string]string{"appName": pubspec.Name}

	files := []struct {
		stubKey string
		relPath string
	}{
		{"config", filepath.Join("config", "app.yaml")},
		{"env", ".env"},
	}

	for _, f := range files {
		content, err := loader.Render(f.stubKey, replacements)
		if err != nil {
			return err
		}

		op := &generator.WriteFileOp{
			Path:    filepath.Join(root, f.relPath),
			Content: content,
			Mode:    0644,
		}
		opts := generator.ExecuteOptions{Force: force, Writer: io.Discard}
		if err := generator.Execute(cmd.Context(), []generator.Operation{op}, opts); err != nil {
			if errors.Is(err, generator.ErrAlreadyExists) {
				output.Info(filepath.ToSlash(f.relPath) + " already exists, skipping")
				continue
			}
			return err
		}
		output.Success("Created " + filepath.ToSlash(f.relPath))
	}

	if err := patchPubspec(root); err != nil {
		return err
	}
	if err := ensureAppKey(root); err != nil {
		return err
	}

	output.Info("Framework installed. Next steps:")
	output.Step("dart pub get")
	output.Step("magic make:controller HomeController")
	return nil
}

// patchPubspec adds the framework dependency under the dependencies block.
// A pubspec without a dependencies block is a structural error and is
// reported, not repaired.
func patchPubspec(root string) error {
	manifest := filepath.Join(root, project.Manifest)
	editor := mutate.YAMLEditor{}

	has, err := editor.HasContent(manifest, "magic_framework:")
	if err != nil {
		return err
	}
	if has {
		output.Info("pubspec.yaml already depends on magic_framework")
		return nil
	}

	if err := editor.AddAfterAnchor(manifest, "dependencies:", frameworkDependency); err != nil {
		if errors.Is(err, mutate.ErrAnchorNotFound) {
			return fmt.Errorf("pubspec.yaml has no dependencies block: %w", err)
		}
		return err
	}
	output.Success("Added magic_framework to pubspec.yaml")
	return nil
}

func ensureAppKey(root string) error {
	value, err := project.ReadEnvValue(root, "APP_KEY")
	if err != nil {
		return err
	}
	if value != "" {
		output.Info("Application key already set")
		return nil
	}

	key, err := generateKey()
	if err != nil {
		return err
	}
	if err := project.WriteEnvValue(root, "APP_KEY", key); err != nil {
		return err
	}
	output.Success("Application key set")
	return nil
}
