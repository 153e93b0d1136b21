//go:build linux

package fileio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestOpenFDAndInspect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 4096), 0o600))

	fd, err := OpenFD(path, "r", false, 0)
	require.NoError(t, err)
	defer func() { _ = Close(fd) }()

	size, err := FileSize(fd)
	require.NoError(t, err)
	assert.Equal(t, int64(4096), size)

	flags, err := OpenFlags(fd)
	require.NoError(t, err)
	assert.Equal(t, unix.O_RDONLY, flags&unix.O_ACCMODE)
}

func TestOpenFDCreatesWithW(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.bin")

	fd, err := OpenFD(path, "w+", false, 0o600)
	require.NoError(t, err)
	flags, err := OpenFlags(fd)
	require.NoError(t, err)
	assert.Equal(t, unix.O_RDWR, flags&unix.O_ACCMODE)
	require.NoError(t, Close(fd))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(0), info.Size())
}

func TestOpenFDMissingFile(t *testing.T) {
	_, err := OpenFD(filepath.Join(t.TempDir(), "missing"), "r", false, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDescribeFlags(t *testing.T) {
	assert.Equal(t, "O_RDONLY", DescribeFlags(unix.O_RDONLY))
	assert.Equal(t, "O_RDWR|O_DIRECT", DescribeFlags(unix.O_RDWR|unix.O_DIRECT))
	assert.Equal(t, "O_WRONLY|O_APPEND", DescribeFlags(unix.O_WRONLY|unix.O_APPEND))
}
