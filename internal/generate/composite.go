package generate

import (
	"context"
	"fmt"
	"path"

	"github.com/magicframe/magic/internal/naming"
	"github.com/magicframe/magic/output"
)

// compositeStep derives one sibling artifact from the base model name.
type compositeStep struct {
	kind string
	name func(base naming.ParsedName) string
}

// The -a/--all sequence for make:model. Each step is an independent
// generation sharing the base name.
var compositeSteps = []compositeStep{
	{"model", func(b naming.ParsedName) string { return b.ClassName }},
	{"controller", func(b naming.ParsedName) string { return b.ClassName + "Controller" }},
	{"policy", func(b naming.ParsedName) string { return b.ClassName + "Policy" }},
	{"factory", func(b naming.ParsedName) string { return b.ClassName + "Factory" }},
	{"seeder", func(b naming.ParsedName) string { return b.ClassName + "Seeder" }},
	{"migration", func(b naming.ParsedName) string {
		return "create_" + naming.Pluralize(b.FileName) + "_table"
	}},
}

// RunAll generates the full artifact set for a model name: model,
// controller, policy, factory, seeder, and a create-table migration. Each
// sub-generation reports independently; an already-exists skip in one never
// aborts the rest. The first real failure is returned after every sibling
// has had its turn.
func (r *Runner) RunAll(ctx context.Context, rawName string, opts Options) error {
	base := naming.ParseName(rawName)
	if base.ClassName == "" {
		return fmt.Errorf("invalid model name %q", rawName)
	}

	var firstErr error
	created, skipped := 0, 0

	for _, step := range compositeSteps {
		def, ok := Lookup(step.kind)
		if !ok {
			// The step table only names registered kinds; reaching this
			// means the definitions table was edited incorrectly.
			return fmt.Errorf("unknown artifact kind %q in composite sequence", step.kind)
		}

		name := step.name(base)
		if base.Directory != "" {
			name = path.Join(base.Directory, name)
		}

		result, err := r.Run(ctx, def, name, opts)
		if err != nil {
			output.Error(fmt.Sprintf("%s: %v", def.Kind, err))
			if firstErr == nil {
				firstErr = fmt.Errorf("generating %s: %w", def.Kind, err)
			}
			continue
		}
		if result.Skipped {
			skipped++
			continue
		}
		created++
	}

	output.Info(fmt.Sprintf("Done: %d created, %d skipped", created, skipped))
	return firstErr
}
