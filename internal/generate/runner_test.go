package generate

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	r := NewRunner(t.TempDir())
	r.clock = func() time.Time {
		return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	}
	return r
}

func quietOpts() Options {
	return Options{Writer: io.Discard}
}

func TestRunController(t *testing.T) {
	r := newTestRunner(t)

	result, err := r.Run(context.Background(), mustLookup(t, "controller"), "Admin/UserController", quietOpts())
	require.NoError(t, err)
	assert.False(t, result.Skipped)

	want := filepath.Join(r.root, "lib", "app", "controllers", "admin", "user_controller.dart")
	assert.Equal(t, want, result.Path)

	data, err := os.ReadFile(want)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "class UserController extends Controller")
	assert.Contains(t, content, "lib/app/controllers/admin")
	assert.NotContains(t, content, "{{")
}

func TestRunModelTableName(t *testing.T) {
	r := newTestRunner(t)

	result, err := r.Run(context.Background(), mustLookup(t, "model"), "Category", quietOpts())
	require.NoError(t, err)

	data, err := os.ReadFile(result.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "'categories'")
}

func TestRunSkipsExisting(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	def := mustLookup(t, "controller")

	first, err := r.Run(ctx, def, "UserController", quietOpts())
	require.NoError(t, err)

	// User edits the file; a second run without --force must not touch it.
	edited := []byte("// my edits\n")
	require.NoError(t, os.WriteFile(first.Path, edited, 0644))

	second, err := r.Run(ctx, def, "UserController", quietOpts())
	require.NoError(t, err)
	assert.True(t, second.Skipped)

	data, err := os.ReadFile(first.Path)
	require.NoError(t, err)
	assert.Equal(t, edited, data)
}

func TestRunForceOverwrites(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	def := mustLookup(t, "controller")

	first, err := r.Run(ctx, def, "UserController", quietOpts())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(first.Path, []byte("// my edits\n"), 0644))

	opts := quietOpts()
	opts.Force = true
	second, err := r.Run(ctx, def, "UserController", opts)
	require.NoError(t, err)
	assert.False(t, second.Skipped)

	data, err := os.ReadFile(first.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "class UserController")
}

func TestRunMigrationNaming(t *testing.T) {
	r := newTestRunner(t)

	result, err := r.Run(context.Background(), mustLookup(t, "migration"), "create_users_table", quietOpts())
	require.NoError(t, err)

	assert.Equal(t, "20240101120000_create_users_table.dart", filepath.Base(result.Path))

	data, err := os.ReadFile(result.Path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "class CreateUsersTable extends Migration")
	assert.Contains(t, content, "'users'")
}

// Migrations generated in one run get strictly increasing timestamps even
// when the clock does not move.
func TestRunMigrationSequence(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	def := mustLookup(t, "migration")

	first, err := r.Run(ctx, def, "create_users_table", quietOpts())
	require.NoError(t, err)
	second, err := r.Run(ctx, def, "create_posts_table", quietOpts())
	require.NoError(t, err)

	assert.Equal(t, "20240101120000_create_users_table.dart", filepath.Base(first.Path))
	assert.Equal(t, "20240101120001_create_posts_table.dart", filepath.Base(second.Path))
	assert.True(t, filepath.Base(first.Path) < filepath.Base(second.Path))
}

func TestRunDryRunWritesNothing(t *testing.T) {
	r := newTestRunner(t)

	opts := quietOpts()
	opts.DryRun = true
	result, err := r.Run(context.Background(), mustLookup(t, "controller"), "UserController", opts)
	require.NoError(t, err)

	_, statErr := os.Stat(result.Path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunAll(t *testing.T) {
	r := newTestRunner(t)

	require.NoError(t, r.RunAll(context.Background(), "Post", quietOpts()))

	expected := []string{
		"lib/app/models/post.dart",
		"lib/app/controllers/post_controller.dart",
		"lib/app/policies/post_policy.dart",
		"lib/database/factories/post_factory.dart",
		"lib/database/seeders/post_seeder.dart",
		"lib/database/migrations/20240101120000_create_posts_table.dart",
	}

	for _, rel := range expected {
		path := filepath.Join(r.root, filepath.FromSlash(rel))
		_, err := os.Stat(path)
		assert.NoError(t, err, "expected %s to exist", rel)
	}
}

// An already-existing sibling is skipped without aborting the rest.
func TestRunAllSiblingIndependence(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	// Pre-create the controller so the composite run hits a conflict.
	_, err := r.Run(ctx, mustLookup(t, "controller"), "PostController", quietOpts())
	require.NoError(t, err)
	controllerPath := filepath.Join(r.root, "lib", "app", "controllers", "post_controller.dart")
	require.NoError(t, os.WriteFile(controllerPath, []byte("// user owned\n"), 0644))

	require.NoError(t, r.RunAll(ctx, "Post", quietOpts()))

	// The conflicting sibling kept the user's content.
	data, err := os.ReadFile(controllerPath)
	require.NoError(t, err)
	assert.Equal(t, "// user owned\n", string(data))

	// Every other sibling was still created.
	_, err = os.Stat(filepath.Join(r.root, "lib", "app", "models", "post.dart"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(r.root, "lib", "database", "seeders", "post_seeder.dart"))
	assert.NoError(t, err)
}

func TestRunAllNestedDirectory(t *testing.T) {
	r := newTestRunner(t)

	require.NoError(t, r.RunAll(context.Background(), "Admin/Post", quietOpts()))

	_, err := os.Stat(filepath.Join(r.root, "lib", "app", "models", "admin", "post.dart"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(r.root, "lib", "app", "controllers", "admin", "post_controller.dart"))
	assert.NoError(t, err)
}

func TestMigrationTable(t *testing.T) {
	tests := []struct {
		name  string
		table string
	}{
		{"create_users_table", "users"},
		{"create_order_items_table", "order_items"},
		{"add_index_to_users", "add_index_to_users"},
	}

	for _, tt := range tests {
		if got := migrationTable(tt.name); got != tt.table {
			t.Errorf("migrationTable(%q) = %q, want %q", tt.name, got, tt.table)
		}
	}
}

func mustLookup(t *testing.T, kind string) Definition {
	t.Helper()
	def, ok := Lookup(kind)
	require.True(t, ok, "kind %s not registered", kind)
	return def
}

func TestRunRejectsEmptyName(t *testing.T) {
	r := newTestRunner(t)

	for _, raw := range []string{"", "/", "//"} {
		_, err := r.Run(context.Background(), mustLookup(t, "controller"), raw, quietOpts())
		require.Error(t, err, "name %q", raw)
	}

	// Nothing may be written for a rejected name, not even directories.
	entries, err := os.ReadDir(r.root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunAllRejectsEmptyName(t *testing.T) {
	r := newTestRunner(t)

	require.Error(t, r.RunAll(context.Background(), "", quietOpts()))

	entries, err := os.ReadDir(r.root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
