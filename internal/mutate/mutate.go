// Package mutate edits files the tool does not own: YAML configs and
// manifests, JSON documents, XML manifests, and HTML pages.
//
// The YAML/XML/HTML editors patch by literal anchor substrings rather than
// structural parsing. That keeps failure behavior simple (the anchor is
// present or it is not) and matches how the installer reasons about the
// files it touches. Every mutating operation probes for the content it is
// about to insert first, so calling it twice with the same arguments is a
// no-op. The JSON editor is the exception: it always round-trips the whole
// document through the codec so its output is guaranteed valid JSON.
package mutate

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrAnchorNotFound means the literal anchor the mutation pivots on is
// absent from the target document. The file is left untouched.
var ErrAnchorNotFound = errors.New("anchor not found")

// readFile loads a target document, mapping missing files onto a wrapped
// os.ErrNotExist the callers can test with errors.Is.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// hasContent reports whether the document at path contains marker as a
// literal substring. Used as the idempotency probe before any insertion.
func hasContent(path, marker string) (bool, error) {
	data, err := readFile(path)
	if err != nil {
		return false, err
	}
	return strings.Contains(string(data), marker), nil
}

// insertAfter inserts block immediately after the first occurrence of
// anchor, preserving the rest of the document byte for byte.
func insertAfter(content, anchor, block string) (string, error) {
	idx := strings.Index(content, anchor)
	if idx == -1 {
		return "", fmt.Errorf("%w: %q", ErrAnchorNotFound, anchor)
	}
	pos := idx + len(anchor)
	return content[:pos] + block + content[pos:], nil
}

// insertBefore inserts block immediately before the first occurrence of
// anchor.
func insertBefore(content, anchor, block string) (string, error) {
	idx := strings.Index(content, anchor)
	if idx == -1 {
		return "", fmt.Errorf("%w: %q", ErrAnchorNotFound, anchor)
	}
	return content[:idx] + block + content[idx:], nil
}
