package testutil

import (
	"errors"
	"io/fs"
	"os"
	"testing"

	"github.com/FrenchBear/myglob/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestEnvironment_MemoryOnly(t *testing.T) {
	env := NewTestEnvironment(t, EnvMemoryOnly).Tree("a/b.txt", "empty/")

	assert.Equal(t, "/test", env.Root)
	assert.True(t, filesystem.IsDir(env.FS, env.Path("a")))
	assert.True(t, filesystem.IsDir(env.FS, env.Path("empty")))
	_, err := env.FS.Stat(env.Path("a/b.txt"))
	assert.NoError(t, err)
	assert.False(t, filesystem.IsDir(env.FS, env.Path("a/b.txt")))
	assert.Equal(t, env.Root, env.Path(""))
}

func TestTestEnvironment_Isolated(t *testing.T) {
	env := NewTestEnvironment(t, EnvIsolated).Tree("x/y.txt")

	data, err := os.ReadFile(env.Path("x/y.txt"))
	require.NoError(t, err)
	assert.Equal(t, "x/y.txt", string(data), "files hold their own relative name")
}

func TestTestEnvironment_FruitTree(t *testing.T) {
	env := NewTestEnvironment(t, EnvMemoryOnly).FruitTree()

	entries, err := env.FS.ReadDir(env.Path("root"))
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"fruits", "legumes", "info"}, names)
}

func TestTestEnvironment_Lock(t *testing.T) {
	env := NewTestEnvironment(t, EnvIsolated).Tree("secret/file")
	env.Lock("secret")

	_, err := env.FS.ReadDir(env.Path("secret"))
	assert.ErrorIs(t, err, fs.ErrPermission)
}

func TestFaultyFS(t *testing.T) {
	env := NewTestEnvironment(t, EnvMemoryOnly).FruitTree()
	boom := errors.New("boom")
	faulty := NewFaultyFS(env.FS).FailReadDir(env.Path("root/fruits"), boom).PassThrough()

	_, err := faulty.ReadDir(env.Path("root/fruits"))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	var pathErr *fs.PathError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, env.Path("root/fruits"), pathErr.Path)

	entries, err := faulty.ReadDir(env.Path("root/legumes"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	info, err := faulty.Stat(env.Path("root/info"))
	require.NoError(t, err)
	assert.False(t, info.IsDir())

	faulty.AssertNumberOfCalls(t, "ReadDir", 2)
}
