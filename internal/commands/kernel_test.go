package commands

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the duration of the test,
// restoring the original directory on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(old)) })
}

// setupProject creates a minimal Dart package and makes it the working
// directory for the test.
func setupProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	pubspec := "name: shop\ndescription: A test application\nversion: 1.0.0\n\ndependencies:\n  http: ^1.0.0\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pubspec.yaml"), []byte(pubspec), 0644))

	chdir(t, dir)
	return dir
}

func newKernel(t *testing.T) *Kernel {
	t.Helper()
	registry, err := DefaultRegistry()
	require.NoError(t, err)
	return NewKernel(registry, "test")
}

func readBack(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRegistryRejectsDuplicate(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(KeyGenerateCmd()))

	err := r.Register(KeyGenerateCmd())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key:generate")
}

func TestDefaultRegistryNames(t *testing.T) {
	r, err := DefaultRegistry()
	require.NoError(t, err)

	names := r.Names()
	for _, want := range []string{
		"make:controller", "make:model", "make:migration", "make:view",
		"make:lang", "install", "key:generate", "config:list",
		"config:get", "route:list",
	} {
		assert.Contains(t, names, want)
	}
}

func TestKernelUnknownCommand(t *testing.T) {
	assert.Equal(t, 1, newKernel(t).Handle([]string{"make:sandwich"}))
}

func TestKernelNoArgsShowsHelp(t *testing.T) {
	assert.Equal(t, 0, newKernel(t).Handle(nil))
}

func TestKernelHelp(t *testing.T) {
	assert.Equal(t, 0, newKernel(t).Handle([]string{"--help"}))
}

func TestKernelVersion(t *testing.T) {
	assert.Equal(t, 0, newKernel(t).Handle([]string{"--version"}))
}

func TestKernelMissingArgument(t *testing.T) {
	setupProject(t)
	assert.Equal(t, 1, newKernel(t).Handle([]string{"make:controller"}))
}

func TestMakeControllerOutsideProject(t *testing.T) {
	chdir(t, t.TempDir())
	assert.Equal(t, 1, newKernel(t).Handle([]string{"make:controller", "UserController"}))
}

func TestMakeController(t *testing.T) {
	root := setupProject(t)

	code := newKernel(t).Handle([]string{"make:controller", "UserController"})
	require.Equal(t, 0, code)

	path := filepath.Join(root, "lib", "app", "controllers", "user_controller.dart")
	content := readBack(t, path)
	assert.Contains(t, content, "class UserController")
}

func TestMakeControllerExistingSkips(t *testing.T) {
	root := setupProject(t)
	path := filepath.Join(root, "lib", "app", "controllers", "user_controller.dart")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("// mine\n"), 0644))

	code := newKernel(t).Handle([]string{"make:controller", "UserController"})
	require.Equal(t, 0, code)
	assert.Equal(t, "// mine\n", readBack(t, path))
}

func TestMakeControllerForce(t *testing.T) {
	root := setupProject(t)
	path := filepath.Join(root, "lib", "app", "controllers", "user_controller.dart")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("// mine\n"), 0644))

	code := newKernel(t).Handle([]string{"make:controller", "UserController", "--force"})
	require.Equal(t, 0, code)
	assert.Contains(t, readBack(t, path), "class UserController")
}

func TestMakeModelAll(t *testing.T) {
	root := setupProject(t)

	code := newKernel(t).Handle([]string{"make:model", "Post", "--all"})
	require.Equal(t, 0, code)

	for _, rel := range []string{
		"lib/app/models/post.dart",
		"lib/app/controllers/post_controller.dart",
		"lib/app/policies/post_policy.dart",
		"lib/database/factories/post_factory.dart",
		"lib/database/seeders/post_seeder.dart",
	} {
		assert.FileExists(t, filepath.Join(root, filepath.FromSlash(rel)))
	}

	migrations, err := filepath.Glob(filepath.Join(root, "lib", "database", "migrations", "*_create_posts_table.dart"))
	require.NoError(t, err)
	assert.Len(t, migrations, 1)
}

func TestMakeLang(t *testing.T) {
	root := setupProject(t)

	code := newKernel(t).Handle([]string{"make:lang", "pt-BR"})
	require.Equal(t, 0, code)

	path := filepath.Join(root, "assets", "lang", "pt-BR.json")
	content := readBack(t, path)
	assert.Contains(t, content, `"welcome"`)
	assert.Contains(t, content, `"goodbye"`)
}

func TestMakeLangPreservesTranslations(t *testing.T) {
	root := setupProject(t)
	dir := filepath.Join(root, "assets", "lang")
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, "fr.json")
	require.NoError(t, os.WriteFile(path, []byte("{\n  \"welcome\": \"Bienvenue\"\n}\n"), 0644))

	code := newKernel(t).Handle([]string{"make:lang", "fr"})
	require.Equal(t, 0, code)

	content := readBack(t, path)
	assert.Contains(t, content, "Bienvenue")
	assert.Contains(t, content, `"goodbye"`)
}

func TestMakeLangInvalidLocale(t *testing.T) {
	setupProject(t)
	assert.Equal(t, 1, newKernel(t).Handle([]string{"make:lang", "not a locale"}))
}

func TestInstall(t *testing.T) {
	root := setupProject(t)

	code := newKernel(t).Handle([]string{"install"})
	require.Equal(t, 0, code)

	config := readBack(t, filepath.Join(root, "config", "app.yaml"))
	assert.Contains(t, config, "name: shop")

	env := readBack(t, filepath.Join(root, ".env"))
	assert.Contains(t, env, "APP_NAME=shop")
	assert.Regexp(t, `APP_KEY=base64:\S+`, env)

	pubspec := readBack(t, filepath.Join(root, "pubspec.yaml"))
	assert.Contains(t, pubspec, "magic_framework: ^1.0.0")
	assert.Contains(t, pubspec, "http: ^1.0.0")
}

func TestInstallIdempotent(t *testing.T) {
	root := setupProject(t)
	kernel := newKernel(t)
	require.Equal(t, 0, kernel.Handle([]string{"install"}))

	envBefore := readBack(t, filepath.Join(root, ".env"))
	pubspecBefore := readBack(t, filepath.Join(root, "pubspec.yaml"))

	require.Equal(t, 0, newKernel(t).Handle([]string{"install"}))

	assert.Equal(t, envBefore, readBack(t, filepath.Join(root, ".env")))
	assert.Equal(t, pubspecBefore, readBack(t, filepath.Join(root, "pubspec.yaml")))
	assert.Equal(t, 1, strings.Count(readBack(t, filepath.Join(root, "pubspec.yaml")), "magic_framework:"))
}

func TestInstallWithoutDependenciesBlock(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pubspec.yaml"), []byte("name: bare\n"), 0644))
	chdir(t, dir)

	assert.Equal(t, 1, newKernel(t).Handle([]string{"install"}))
}

func TestKeyGenerate(t *testing.T) {
	root := setupProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte("APP_KEY=\n"), 0644))

	code := newKernel(t).Handle([]string{"key:generate"})
	require.Equal(t, 0, code)

	env := readBack(t, filepath.Join(root, ".env"))
	assert.Regexp(t, `APP_KEY=base64:\S+`, env)
}

func TestGenerateKey(t *testing.T) {
	a, err := generateKey()
	require.NoError(t, err)
	b, err := generateKey()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(a, "base64:"))
	assert.NotEqual(t, a, b)

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(a, "base64:"))
	require.NoError(t, err)
	assert.Len(t, decoded, 32)
}

func TestConfigGet(t *testing.T) {
	setupProject(t)
	require.Equal(t, 0, newKernel(t).Handle([]string{"install"}))

	assert.Equal(t, 0, newKernel(t).Handle([]string{"config:get", "app.name"}))
	assert.Equal(t, 1, newKernel(t).Handle([]string{"config:get", "app.missing"}))
}

func TestConfigListBeforeInstall(t *testing.T) {
	setupProject(t)
	assert.Equal(t, 1, newKernel(t).Handle([]string{"config:list"}))
}

func TestScanRoutes(t *testing.T) {
	root := setupProject(t)
	dir := filepath.Join(root, "lib", "routes")
	require.NoError(t, os.MkdirAll(dir, 0755))

	web := `Router.get('/users', UserController.index);
Router.post('/users', UserController.store);
Router.get('/health', () => 'ok');
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "web.dart"), []byte(web), 0644))

	routes, err := scanRoutes(root)
	require.NoError(t, err)
	require.Len(t, routes, 3)

	assert.Equal(t, route{Method: "GET", Path: "/health", Handler: ""}, routes[0])
	assert.Equal(t, route{Method: "GET", Path: "/users", Handler: "UserController.index"}, routes[1])
	assert.Equal(t, route{Method: "POST", Path: "/users", Handler: "UserController.store"}, routes[2])
}

func TestScanRoutesNoDirectory(t *testing.T) {
	root := setupProject(t)

	routes, err := scanRoutes(root)
	require.NoError(t, err)
	assert.Empty(t, routes)
}

func TestRouteListEmpty(t *testing.T) {
	setupProject(t)
	assert.Equal(t, 0, newKernel(t).Handle([]string{"route:list"}))
}

func TestMakeControllerEmptyName(t *testing.T) {
	root := setupProject(t)

	// Under test there is no terminal to prompt on, so the empty argument
	// stays empty and must be rejected before anything is written.
	code := newKernel(t).Handle([]string{"make:controller", ""})
	require.Equal(t, 1, code)
	assert.NoDirExists(t, filepath.Join(root, "lib"))
}

func TestMakeModelAllEmptyName(t *testing.T) {
	root := setupProject(t)

	code := newKernel(t).Handle([]string{"make:model", "", "--all"})
	require.Equal(t, 1, code)
	assert.NoDirExists(t, filepath.Join(root, "lib"))
}

func TestKeyGenerateKeepsExistingKeyWithoutConfirmation(t *testing.T) {
	root := setupProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte("APP_KEY=base64:old\n"), 0644))

	// Stdin is not a terminal here; the overwrite confirmation falls back
	// to its default answer, no.
	code := newKernel(t).Handle([]string{"key:generate"})
	require.Equal(t, 0, code)
	assert.Contains(t, readBack(t, filepath.Join(root, ".env")), "APP_KEY=base64:old")
}

func TestKeyGenerateForceReplacesExistingKey(t *testing.T) {
	root := setupProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte("APP_KEY=base64:old\n"), 0644))

	code := newKernel(t).Handle([]string{"key:generate", "--force"})
	require.Equal(t, 0, code)

	env := readBack(t, filepath.Join(root, ".env"))
	assert.NotContains(t, env, "base64:old")
	assert.Regexp(t, `APP_KEY=base64:\S+`, env)
}
