package mutate

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLEditor patches YAML documents. Anchor insertions are textual to
// preserve the user's formatting and comments; SetKey round-trips the whole
// document instead and is only used for files this tool generated.
type YAMLEditor struct{}

// Read returns the document at path.
func (YAMLEditor) Read(path string) ([]byte, error) {
	return readFile(path)
}

// HasContent reports whether the document contains marker.
func (YAMLEditor) HasContent(path, marker string) (bool, error) {
	return hasContent(path, marker)
}

// AddAfterAnchor inserts block right after the line containing anchor. A
// document that already contains block is left untouched.
func (e YAMLEditor) AddAfterAnchor(path, anchor, block string) error {
	present, err := e.HasContent(path, block)
	if err != nil {
		return err
	}
	if present {
		return nil
	}

	data, err := e.Read(path)
	if err != nil {
		return err
	}

	content := string(data)
	idx := strings.Index(content, anchor)
	if idx == -1 {
		return fmt.Errorf("%w: %q in %s", ErrAnchorNotFound, anchor, path)
	}

	// Insert after the end of the anchor's line.
	lineEnd := strings.Index(content[idx:], "\n")
	if lineEnd == -1 {
		content = content + "\n" + block
	} else {
		pos := idx + lineEnd + 1
		content = content[:pos] + block + content[pos:]
	}

	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}

	return os.WriteFile(path, []byte(content), 0644)
}

// SetKey sets a top-level key to value, rewriting the whole document so the
// result is always valid YAML. Pre-existing keys are preserved.
func (e YAMLEditor) SetKey(path, key string, value any) error {
	data, err := e.Read(path)
	if err != nil {
		return err
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	if doc == nil {
		doc = make(map[string]any)
	}

	doc[key] = value

	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", path, err)
	}

	return os.WriteFile(path, out, 0644)
}
