// Package project locates and reads the scaffolded project: root discovery
// via the pubspec manifest, application config access, and .env handling.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest is the file that marks a project root.
const Manifest = "pubspec.yaml"

// ErrNotProject means no pubspec.yaml was found walking up from the start
// directory.
var ErrNotProject = errors.New("not a magic project (no pubspec.yaml found)")

// IsProject checks whether dir contains a pubspec manifest.
func IsProject(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, Manifest))
	return err == nil
}

// FindRoot walks up from start to the filesystem root looking for the
// nearest directory containing pubspec.yaml.
func FindRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", start, err)
	}

	for {
		if IsProject(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: searched from %s", ErrNotProject, start)
		}
		dir = parent
	}
}

// Pubspec holds the fields of pubspec.yaml this tool cares about.
type Pubspec struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Version     string `yaml:"version"`
}

// LoadPubspec parses the manifest at the project root.
func LoadPubspec(root string) (*Pubspec, error) {
	data, err := os.ReadFile(filepath.Join(root, Manifest))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", Manifest, err)
	}

	var p Pubspec
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", Manifest, err)
	}

	return &p, nil
}
