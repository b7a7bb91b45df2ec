package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/magicframe/magic/generator"
	"github.com/magicframe/magic/input"
	"github.com/magicframe/magic/internal/generate"
	"github.com/magicframe/magic/internal/mutate"
	"github.com/magicframe/magic/internal/project"
	"github.com/magicframe/magic/internal/stub"
	"github.com/magicframe/magic/output"
)

// makeFlags holds the flags shared by every make command.
type makeFlags struct {
	force       bool
	dryRun      bool
	interactive bool
}

func (f *makeFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.force, "force", "f", false, "overwrite an existing file")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "report operations without writing")
	cmd.Flags().BoolVarP(&f.interactive, "interactive", "i", false, "decide conflicts interactively")
}

func (f *makeFlags) options() (generate.Options, error) {
	opts := generate.Options{Force: f.force, DryRun: f.dryRun}
	if f.interactive {
		resolver, err := generator.NewResolver(f.force, true)
		if err != nil {
			return generate.Options{}, err
		}
		opts.Resolver = resolver
	}
	return opts, nil
}

// MakeCmds builds one make:<kind> command per artifact definition, plus
// make:lang which writes a translation file instead of a stub artifact.
func MakeCmds() []*cobra.Command {
	var cmds []*cobra.Command
	for _, def := range generate.Kinds() {
		if def.Kind == "model" {
			cmds = append(cmds, makeModelCmd(def))
			continue
		}
		cmds = append(cmds, makeCmd(def))
	}
	cmds = append(cmds, makeLangCmd())
	return cmds
}

// artifactName takes the name from the arguments or asks for one. An empty
// name is a usage error; it has to be caught here, before any directories
// are created for it.
func artifactName(args []string, kind string) (string, error) {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	if name == "" {
		name = input.Prompt("Name of the "+kind, "")
	}
	if name == "" {
		return "", fmt.Errorf("a %s name is required", kind)
	}
	return name, nil
}

func makeCmd(def generate.Definition) *cobra.Command {
	var flags makeFlags

	cmd := &cobra.Command{
		Use:   fmt.Sprintf("make:%s <name>", def.Kind),
		Short: fmt.Sprintf("Generate a %s", def.Kind),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := artifactName(args, def.Kind)
			if err != nil {
				return err
			}
			return runMake(cmd, def, name, &flags)
		},
	}

	flags.register(cmd)
	return cmd
}

func makeModelCmd(def generate.Definition) *cobra.Command {
	var flags makeFlags
	var all bool

	cmd := &cobra.Command{
		Use:   "make:model <name>",
		Short: "Generate a model",
		Long:  "Generate a model class. With --all, also generate the controller,\npolicy, factory, seeder, and create-table migration for it.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := artifactName(args, def.Kind)
			if err != nil {
				return err
			}
			if !all {
				return runMake(cmd, def, name, &flags)
			}

			root, err := project.FindRoot(".")
			if err != nil {
				return err
			}
			opts, err := flags.options()
			if err != nil {
				return err
			}
			return generate.NewRunner(root).RunAll(cmd.Context(), name, opts)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&all, "all", "a", false, "generate the full artifact set for the model")
	return cmd
}

func runMake(cmd *cobra.Command, def generate.Definition, name string, flags *makeFlags) error {
	root, err := project.FindRoot(".")
	if err != nil {
		return err
	}
	opts, err := flags.options()
	if err != nil {
		return err
	}

	result, err := generate.NewRunner(root).Run(cmd.Context(), def, name, opts)
	if err != nil {
		return err
	}
	if result.Skipped || flags.dryRun {
		return nil
	}

	rel, relErr := filepath.Rel(root, result.Path)
	if relErr != nil {
		rel = result.Path
	}
	output.Success("Created " + filepath.ToSlash(rel))
	return nil
}

func makeLangCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "make:lang <locale>",
		Short: "Generate a translation file for a locale",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := language.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid locale %q: %w", args[0], err)
			}

			root, err := project.FindRoot(".")
			if err != nil {
				return err
			}
			return makeLang(root, tag.String(), force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "reset existing keys to the skeleton values")
	return cmd
}

// makeLang merges the translation skeleton into assets/lang/<locale>.json.
// Existing keys survive unless force is set, so rerunning for a locale
// never loses translated strings.
func makeLang(root, locale string, force bool) error {
	skeleton, err := stub.NewLoader(root).Render("lang", map[string]string{"locale": locale})
	if err != nil {
		return err
	}

	var keys map[string]any
	if err := json.Unmarshal(skeleton, &keys); err != nil {
		return fmt.Errorf("translation skeleton is not valid JSON: %w", err)
	}

	dir := filepath.Join(root, "assets", "lang")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(dir, locale+".json")

	sorted := make([]string, 0, len(keys))
	for key := range keys {
		sorted = append(sorted, key)
	}
	sort.Strings(sorted)

	editor := mutate.JSONEditor{}
	merged := 0
	for _, key := range sorted {
		if !force {
			has, err := editor.HasKey(path, key)
			if err == nil && has {
				continue
			}
		}
		if err := editor.MergeKeyCreate(path, key, keys[key]); err != nil {
			return err
		}
		merged++
	}

	rel := filepath.ToSlash(filepath.Join("assets", "lang", locale+".json"))
	if merged == 0 {
		output.Info(rel + " already up to date")
		return nil
	}
	output.Success(fmt.Sprintf("Wrote %d keys to %s", merged, rel))
	return nil
}
