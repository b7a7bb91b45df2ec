package mutate

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// JSONEditor merges values into JSON documents. Unlike the textual editors
// it always decodes and re-serializes the whole structure, so the output is
// guaranteed to be valid JSON no matter what was merged.
type JSONEditor struct{}

// Read returns the document at path.
func (JSONEditor) Read(path string) ([]byte, error) {
	return readFile(path)
}

// HasKey reports whether the top-level object at path has key.
func (e JSONEditor) HasKey(path, key string) (bool, error) {
	doc, err := e.load(path)
	if err != nil {
		return false, err
	}
	_, ok := doc[key]
	return ok, nil
}

// MergeKey sets key to value in the document, preserving every other key.
// Setting a key to the value it already has is a no-op for the file's
// semantics (the document is still rewritten in canonical form).
func (e JSONEditor) MergeKey(path, key string, value any) error {
	doc, err := e.load(path)
	if err != nil {
		return err
	}

	doc[key] = value
	return e.write(path, doc)
}

// MergeKeyCreate is MergeKey against a document that may not exist yet; a
// missing file starts as an empty object.
func (e JSONEditor) MergeKeyCreate(path, key string, value any) error {
	doc, err := e.load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		doc = make(map[string]any)
	}

	doc[key] = value
	return e.write(path, doc)
}

func (JSONEditor) load(path string) (map[string]any, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if doc == nil {
		doc = make(map[string]any)
	}
	return doc, nil
}

func (JSONEditor) write(path string, doc map[string]any) error {
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", path, err)
	}
	return os.WriteFile(path, append(out, '\n'), 0644)
}
