package deepcopy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	streamio "github.com/usherasnick/Useful-Go-Gadgets/stream-io"
)

func TestCopy(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "a", "b"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "top.txt"), []byte("top"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(src, "a", "b", "deep.bin"), make([]byte, 20000), 0644))
	require.NoError(t, os.Symlink("top.txt", filepath.Join(src, "link")))

	dst := filepath.Join(t.TempDir(), "copy")
	n, err := Copy(dst, src)
	require.NoError(t, err)
	assert.Equal(t, uint64(20003), n)

	data, err := os.ReadFile(filepath.Join(dst, "top.txt"))
	require.NoError(t, err)
	assert.Equal(t, "top", string(data))

	info, err := os.Stat(filepath.Join(dst, "top.txt"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	info, err = os.Stat(filepath.Join(dst, "a", "b", "deep.bin"))
	require.NoError(t, err)
	assert.Equal(t, int64(20000), info.Size())

	_, err = os.Lstat(filepath.Join(dst, "link"))
	assert.True(t, os.IsNotExist(err))
}

func TestCopyRejectsFiles(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(fn, nil, 0644))

	_, err := Copy(t.TempDir(), fn)
	assert.Equal(t, streamio.InvalidInput, streamio.KindOf(err))

	_, err = Copy(t.TempDir(), fn+".missing")
	assert.Error(t, err)
}
