package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/runtimeup/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseFS(t *testing.T, fsys types.FS, root string) {
	t.Helper()

	dir := filepath.Join(root, "etc", "php")
	require.NoError(t, fsys.MkdirAll(dir, 0755))

	file := filepath.Join(dir, "php.ini")
	require.NoError(t, fsys.WriteFile(file, []byte("memory_limit = 2G\n"), 0644))

	data, err := fsys.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "memory_limit = 2G\n", string(data))

	info, err := fsys.Stat(file)
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular())

	linfo, err := fsys.Lstat(file)
	require.NoError(t, err)
	assert.False(t, linfo.IsDir())

	_, err = fsys.ReadFile(dir)
	assert.Error(t, err)

	require.NoError(t, fsys.Remove(file))
	_, err = fsys.Stat(file)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestOSFS(t *testing.T) {
	exerciseFS(t, NewOS(), t.TempDir())
}

func TestMemoryFS(t *testing.T) {
	exerciseFS(t, NewMemory(), "/virtual")
}

func TestSynthfsFS(t *testing.T) {
	exerciseFS(t, NewSynthfs(NewOS()), t.TempDir())
}

func TestSynthfsFS_OverwritesAndCreatesParents(t *testing.T) {
	fsys := NewSynthfs(NewOS())
	file := filepath.Join(t.TempDir(), "php", "php-8.1.0", "etc", "php.ini")

	require.NoError(t, fsys.WriteFile(file, []byte("old\n"), 0644))
	require.NoError(t, fsys.WriteFile(file, []byte("new\n"), 0644))

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(data))

	info, err := os.Stat(filepath.Dir(file))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSynthfsFS_MkdirAllExisting(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, NewSynthfs(NewOS()).MkdirAll(dir, 0755))
}

func TestSynthfsFS_WriteOverDirectory(t *testing.T) {
	dir := t.TempDir()
	err := NewSynthfs(NewOS()).WriteFile(dir, []byte("x"), 0644)
	assert.Error(t, err)
}
