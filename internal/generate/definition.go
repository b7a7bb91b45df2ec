// Package generate orchestrates artifact generation: it resolves a symbolic
// name, renders the stub for an artifact kind, and writes the result under
// the kind's conventional directory.
package generate

import (
	"strings"

	"github.com/magicframe/magic/internal/naming"
)

// Definition describes one artifact kind: where it lives, which stub renders
// it, and any replacements beyond the shared className/snakeName/namespace
// set.
type Definition struct {
	Kind      string
	BaseDir   string
	StubKey   string
	Extension string

	// Extras produces kind-specific replacement tokens; may be nil.
	Extras func(parsed naming.ParsedName) map[string]string
}

// Output directories are fixed by convention, not configurable.
var definitions = []Definition{
	{Kind: "controller", BaseDir: "lib/app/controllers", StubKey: "controller", Extension: ".dart"},
	{Kind: "model", BaseDir: "lib/app/models", StubKey: "model", Extension: ".dart",
		Extras: func(p naming.ParsedName) map[string]string {
			return map[string]string{"tableName": naming.Pluralize(p.FileName)}
		}},
	{Kind: "event", BaseDir: "lib/app/events", StubKey: "event", Extension: ".dart"},
	{Kind: "listener", BaseDir: "lib/app/listeners", StubKey: "listener", Extension: ".dart"},
	{Kind: "middleware", BaseDir: "lib/app/middleware", StubKey: "middleware", Extension: ".dart"},
	{Kind: "policy", BaseDir: "lib/app/policies", StubKey: "policy", Extension: ".dart"},
	{Kind: "provider", BaseDir: "lib/app/providers", StubKey: "provider", Extension: ".dart"},
	{Kind: "request", BaseDir: "lib/app/validation/requests", StubKey: "request", Extension: ".dart"},
	{Kind: "factory", BaseDir: "lib/database/factories", StubKey: "factory", Extension: ".dart",
		Extras: func(p naming.ParsedName) map[string]string {
			return map[string]string{"modelName": strings.TrimSuffix(p.ClassName, "Factory")}
		}},
	{Kind: "seeder", BaseDir: "lib/database/seeders", StubKey: "seeder", Extension: ".dart",
		Extras: func(p naming.ParsedName) map[string]string {
			return map[string]string{"modelName": strings.TrimSuffix(p.ClassName, "Seeder")}
		}},
	{Kind: "migration", BaseDir: "lib/database/migrations", StubKey: "migration", Extension: ".dart"},
	{Kind: "view", BaseDir: "lib/resources/views", StubKey: "view", Extension: ".html"},
}

// Kinds returns every artifact definition in registration order.
func Kinds() []Definition {
	return definitions
}

// Lookup finds the definition for an artifact kind.
func Lookup(kind string) (Definition, bool) {
	for _, d := range definitions {
		if d.Kind == kind {
			return d, true
		}
	}
	return Definition{}, false
}
