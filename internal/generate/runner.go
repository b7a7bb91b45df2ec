package generate

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/magicframe/magic/generator"
	"github.com/magicframe/magic/internal/naming"
	"github.com/magicframe/magic/internal/stub"
	"github.com/magicframe/magic/output"
)

// Options configures one generation.
type Options struct {
	// Force overwrites an existing target.
	Force bool

	// DryRun reports operations without writing.
	DryRun bool

	// Resolver, when set, decides what happens to an existing target
	// (interactive mode). When nil an existing target is reported and
	// skipped unless Force is set.
	Resolver *generator.Resolver

	// Writer receives operation output; defaults to os.Stdout.
	Writer io.Writer
}

// Result reports where an artifact went, or that it was skipped.
type Result struct {
	Path    string
	Skipped bool
}

// Runner generates artifacts into a project tree.
type Runner struct {
	root  string
	stubs *stub.Loader
	clock func() time.Time

	// migrationSeq offsets the timestamp of each migration generated by
	// this runner by one second, so migrations created in the same run
	// order deterministically and never collide with each other.
	migrationSeq int
}

// NewRunner creates a runner for the project rooted at root.
func NewRunner(root string) *Runner {
	return &Runner{
		root:  root,
		stubs: stub.NewLoader(root),
		clock: time.Now,
	}
}

const timestampLayout = "20060102150405"

// Run generates a single artifact: parse the symbolic name, resolve the
// output path, check for an existing file, render the stub, and write.
// An existing target without Force is reported and skipped rather than
// treated as an error, so composite runs and scripts keep going.
func (r *Runner) Run(ctx context.Context, def Definition, rawName string, opts Options) (*Result, error) {
	parsed := naming.ParseName(rawName)
	if parsed.ClassName == "" {
		return nil, fmt.Errorf("invalid %s name %q", def.Kind, rawName)
	}

	fileName := parsed.FileName + def.Extension
	replacements := map[string]string{
		"className": parsed.ClassName,
		"snakeName": parsed.FileName,
		"namespace": path.Join(def.BaseDir, parsed.Directory),
	}

	if def.Kind == "migration" {
		stamp := r.clock().UTC().Add(time.Duration(r.migrationSeq) * time.Second).Format(timestampLayout)
		r.migrationSeq++
		fileName = stamp + "_" + parsed.FileName + def.Extension
		replacements["timestamp"] = stamp
		replacements["tableName"] = migrationTable(parsed.FileName)
	}

	if def.Extras != nil {
		for k, v := range def.Extras(parsed) {
			replacements[k] = v
		}
	}

	outPath := filepath.Join(r.root, filepath.FromSlash(def.BaseDir), filepath.FromSlash(parsed.Directory), fileName)
	output.Verbose(fmt.Sprintf("Resolved %s %q to %s", def.Kind, rawName, outPath))

	force := opts.Force
	existing, err := os.ReadFile(outPath)
	exists := err == nil

	if exists && !force {
		if opts.Resolver == nil {
			output.Warn(fmt.Sprintf("%s already exists (use --force to overwrite)", outPath))
			return &Result{Path: outPath, Skipped: true}, nil
		}

		rendered, rerr := r.stubs.Render(def.StubKey, replacements)
		if rerr != nil {
			return nil, rerr
		}

		resolution, rerr := opts.Resolver.Resolve(outPath, existing, rendered)
		if rerr != nil {
			return nil, rerr
		}
		switch resolution {
		case generator.Skip:
			output.Warn(fmt.Sprintf("Skipped %s", outPath))
			return &Result{Path: outPath, Skipped: true}, nil
		case generator.Cancel:
			return nil, fmt.Errorf("generation cancelled")
		case generator.Overwrite:
			force = true
		}
	}

	rendered, err := r.stubs.Render(def.StubKey, replacements)
	if err != nil {
		return nil, err
	}

	op := &generator.WriteFileOp{Path: outPath, Content: rendered, Mode: 0644}
	if err := generator.Execute(ctx, []generator.Operation{op}, generator.ExecuteOptions{
		DryRun: opts.DryRun,
		Force:  force,
		Writer: opts.Writer,
	}); err != nil {
		return nil, err
	}

	return &Result{Path: outPath}, nil
}

// migrationTable extracts the table name from a conventional migration name:
// create_users_table → users. Anything else falls back to the name itself.
func migrationTable(snakeName string) string {
	const prefix, suffix = "create_", "_table"
	if len(snakeName) > len(prefix)+len(suffix) &&
		snakeName[:len(prefix)] == prefix &&
		snakeName[len(snakeName)-len(suffix):] == suffix {
		return snakeName[len(prefix) : len(snakeName)-len(suffix)]
	}
	return snakeName
}
