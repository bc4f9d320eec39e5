// pkg/testutil/environment.go
// DEPENDENCIES: filesystem, afero
// PURPOSE: Build directory trees for traversal tests

package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/FrenchBear/myglob/pkg/filesystem"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment holds a tree and the filesystem that serves it
type TestEnvironment struct {
	// Root is the directory every tree path is relative to
	Root string

	// FS serves the tree to the engine
	FS filesystem.FS

	// Afero is the backing store; it writes to disk for EnvIsolated
	Afero afero.Fs

	Type EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}
	switch envType {
	case EnvMemoryOnly:
		env.Root = "/test"
		env.Afero = afero.NewMemMapFs()
		require.NoError(t, env.Afero.MkdirAll(env.Root, 0755))
		env.FS = filesystem.NewAferoFS(env.Afero)
	case EnvIsolated:
		env.Root = t.TempDir()
		env.Afero = afero.NewOsFs()
		env.FS = filesystem.NewOS()
	default:
		t.Fatalf("unknown environment type %d", envType)
	}
	return env
}

// Path joins slash-separated rel onto the environment root
func (env *TestEnvironment) Path(rel string) string {
	if rel == "" {
		return env.Root
	}
	return filepath.Join(env.Root, filepath.FromSlash(rel))
}

// Tree creates every entry; names ending in "/" are directories, others
// are files whose parents are created as needed
func (env *TestEnvironment) Tree(entries ...string) *TestEnvironment {
	env.t.Helper()
	for _, entry := range entries {
		if strings.HasSuffix(entry, "/") {
			require.NoError(env.t, env.Afero.MkdirAll(env.Path(entry), 0755))
			continue
		}
		full := env.Path(entry)
		require.NoError(env.t, env.Afero.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(env.t, afero.WriteFile(env.Afero, full, []byte(entry), 0644))
	}
	return env
}

// Lock removes all permissions from a directory of an isolated tree and
// restores them when the test ends. It skips on Windows and for root, where
// permissions are not enforced.
func (env *TestEnvironment) Lock(rel string) {
	env.t.Helper()
	if env.Type != EnvIsolated {
		env.t.Fatal("Lock requires an isolated environment")
	}
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		env.t.Skip("directory permissions are not enforced")
	}
	full := env.Path(rel)
	require.NoError(env.t, os.Chmod(full, 0))
	env.t.Cleanup(func() { _ = os.Chmod(full, 0755) })
}

// FruitTree builds the fruits/legumes/info tree used across engine tests
func (env *TestEnvironment) FruitTree() *TestEnvironment {
	return env.Tree(
		"root/fruits/pomme.txt",
		"root/fruits/poire.txt",
		"root/legumes/tomate.txt",
		"root/info",
	)
}
