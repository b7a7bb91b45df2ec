// Package stub loads code templates and substitutes {{ identifier }}
// placeholder tokens.
//
// Built-in stubs are embedded in the binary. A project can override any of
// them by dropping a file with the same key into <root>/stubs/; the override
// wins. Stubs are loaded fresh on every render, no caching, so edits to an
// override take effect immediately.
package stub

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

//go:embed templates/*.stub
var builtins embed.FS

// ErrStubNotFound marks a template key with neither a built-in nor an
// override stub.
var ErrStubNotFound = errors.New("stub not found")

// Source reports where a stub was resolved from.
type Source int

const (
	SourceBuiltin Source = iota
	SourceOverride
)

func (s Source) String() string {
	if s == SourceOverride {
		return "override"
	}
	return "builtin"
}

// tokenPattern matches {{ identifier }} placeholders. Whitespace around the
// identifier is insignificant.
var tokenPattern = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// Loader resolves stub templates by key.
type Loader struct {
	overrideDir string
}

// NewLoader creates a loader for a project rooted at root. An empty root
// disables overrides (builtins only).
func NewLoader(root string) *Loader {
	l := &Loader{}
	if root != "" {
		l.overrideDir = filepath.Join(root, "stubs")
	}
	return l
}

// Load returns the raw stub content for key along with its source.
func (l *Loader) Load(key string) ([]byte, Source, error) {
	if l.overrideDir != "" {
		overridePath := filepath.Join(l.overrideDir, key+".stub")
		if data, err := os.ReadFile(overridePath); err == nil {
			return data, SourceOverride, nil
		}
	}

	data, err := builtins.ReadFile("templates/" + key + ".stub")
	if err != nil {
		return nil, SourceBuiltin, fmt.Errorf("%w: %s", ErrStubNotFound, key)
	}
	return data, SourceBuiltin, nil
}

// Render loads the stub for key and substitutes its placeholder tokens.
func (l *Loader) Render(key string, replacements map[string]string) ([]byte, error) {
	data, _, err := l.Load(key)
	if err != nil {
		return nil, err
	}
	return Replace(data, replacements), nil
}

// Replace substitutes every {{ identifier }} occurrence whose identifier has
// a key in replacements. Each occurrence is replaced exactly once, in a
// single scan, so replacement values containing tokens are never expanded
// again. Tokens with no matching key are left verbatim.
func Replace(template []byte, replacements map[string]string) []byte {
	return tokenPattern.ReplaceAllFunc(template, func(match []byte) []byte {
		identifier := tokenPattern.FindSubmatch(match)[1]
		if value, ok := replacements[string(identifier)]; ok {
			return []byte(value)
		}
		return match
	})
}
