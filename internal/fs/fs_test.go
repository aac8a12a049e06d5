package fs

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFS(t *testing.T) {
	lfs := LocalFS{}

	dir, err := lfs.MkdirTemp(t.TempDir(), "sort-*")
	require.NoError(t, err)

	fpath := filepath.Join(dir, "chunk-000000")
	f, err := lfs.OpenFile(fpath, os.O_CREATE|os.O_RDWR, 0o600)
	require.NoError(t, err)

	_, err = f.Write([]byte("hello"))
	assert.NoError(t, err)
	assert.NoError(t, f.Sync())

	info, err := f.Stat()
	require.NoError(t, err)
	assert.Equal(t, int64(5), info.Size())
	assert.NoError(t, f.Close())

	info2, err := lfs.Stat(fpath)
	require.NoError(t, err)
	assert.Equal(t, int64(5), info2.Size())

	assert.NoError(t, lfs.Remove(fpath))
	_, err = lfs.Stat(fpath)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, lfs.RemoveAll(dir))
	_, err = lfs.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestFaultyFS_WriteLimit(t *testing.T) {
	ffs := NewFaultyFS(LocalFS{})
	ffs.AddRule("faulty", Fault{FailAfterBytes: 5})

	fpath := filepath.Join(t.TempDir(), "faulty.bin")
	f, err := ffs.OpenFile(fpath, os.O_CREATE|os.O_RDWR, 0o600)
	require.NoError(t, err)

	n, err := f.Write([]byte("hello"))
	assert.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = f.Write([]byte("!"))
	assert.ErrorIs(t, err, ErrInjected)
	assert.Equal(t, 0, n)

	assert.NoError(t, f.Close())
	assert.Equal(t, []string{fpath}, ffs.Opened())
}

func TestFaultyFS_ReadAndOpen(t *testing.T) {
	tmp := t.TempDir()
	boom := errors.New("boom")

	ffs := NewFaultyFS(nil)
	ffs.AddRule("unreadable", Fault{FailAfterBytes: -1, FailOnRead: true, Err: boom})
	ffs.AddRule("missing", Fault{FailOnOpen: true})

	fpath := filepath.Join(tmp, "unreadable.bin")
	f, err := ffs.OpenFile(fpath, os.O_CREATE|os.O_RDWR, 0o600)
	require.NoError(t, err)
	_, err = f.Write([]byte("data"))
	require.NoError(t, err)

	_, err = io.ReadAll(f)
	assert.ErrorIs(t, err, boom)
	require.NoError(t, f.Close())

	_, err = ffs.OpenFile(filepath.Join(tmp, "missing.bin"), os.O_CREATE|os.O_RDWR, 0o600)
	assert.ErrorIs(t, err, ErrInjected)
}

func TestFaultyFS_SyncAndClose(t *testing.T) {
	ffs := NewFaultyFS(nil)
	ffs.AddRule("sticky", Fault{FailAfterBytes: -1, FailOnSync: true, FailOnClose: true})

	f, err := ffs.OpenFile(filepath.Join(t.TempDir(), "sticky.bin"), os.O_CREATE|os.O_RDWR, 0o600)
	require.NoError(t, err)

	assert.ErrorIs(t, f.Sync(), ErrInjected)
	assert.ErrorIs(t, f.Close(), ErrInjected)
}
