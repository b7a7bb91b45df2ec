package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrAlreadyExists marks a write refused because the target file is present
// and force was not set. Callers use errors.Is to treat it as a skip rather
// than a failure.
var ErrAlreadyExists = errors.New("file already exists")

// Operation represents a file system operation that can be validated and
// executed.
//
// Validate checks whether the operation would succeed without executing it.
// Creating parent directories during validation is allowed (it is idempotent).
// force=true skips conflict checks.
//
// Execute performs the operation; call it only after Validate succeeds.
//
// Description returns a human-readable summary for output, e.g.
// "Create lib/app/models/user.dart (214 bytes)".
type Operation interface {
	Validate(ctx context.Context, force bool) error
	Execute(ctx context.Context) error
	Description() string
}

// WriteFileOp creates a file with content.
//
// Validation creates the parent directory, rejects nil content (empty is
// fine), and reports ErrAlreadyExists when the target is present unless
// force is set. Execution writes the file with the given mode.
type WriteFileOp struct {
	Path    string
	Content []byte
	Mode    fs.FileMode
}

func (op *WriteFileOp) Validate(ctx context.Context, force bool) error {
	dir := filepath.Dir(op.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create directory %s: %w", dir, err)
	}

	if !force {
		if _, err := os.Stat(op.Path); err == nil {
			return fmt.Errorf("%w: %s", ErrAlreadyExists, op.Path)
		}
	}

	if op.Content == nil {
		return fmt.Errorf("content is nil for file: %s", op.Path)
	}

	return nil
}

func (op *WriteFileOp) Execute(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(op.Path), 0755); err != nil {
		return err
	}
	return os.WriteFile(op.Path, op.Content, op.Mode)
}

func (op *WriteFileOp) Description() string {
	return fmt.Sprintf("Create %s (%d bytes)", op.Path, len(op.Content))
}
