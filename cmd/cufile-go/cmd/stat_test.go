//go:build linux

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rapidsai/cufile-go/pkg/cufile"
	"github.com/rapidsai/cufile-go/pkg/cufile/cufiletest"
)

func TestStatCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 2048), 0o600))
	drv := cufiletest.New()

	out, err := run(t, drv, "stat", path, "--flags", "r+")
	require.NoError(t, err)
	assert.Contains(t, out, path)
	assert.Contains(t, out, "2048")
	assert.Contains(t, out, "O_RDWR")
	assert.Equal(t, 1, drv.DestroyCount(cufile.KindFile, cufiletest.FirstFileID), "stat closes its handle")
}

func TestStatRejectsAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	_, err := run(t, cufiletest.New(), "stat", path, "--flags", "a")
	assert.ErrorContains(t, err, "open flag 'a' isn't supported")
}

func TestStatRequiresPath(t *testing.T) {
	_, err := run(t, cufiletest.New(), "stat")
	assert.Error(t, err)
}
