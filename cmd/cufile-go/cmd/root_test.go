package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rapidsai/cufile-go/pkg/cufile"
	"github.com/rapidsai/cufile-go/pkg/cufile/cufiletest"
)

func run(t *testing.T, drv *cufiletest.Driver, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(func(cufile.Config) cufile.Driver { return drv })
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	// Keep the user's home config out of tests.
	root.SetArgs(append([]string{"--config", emptyConfig(t)}, args...))
	err := root.Execute()
	return out.String(), err
}

func emptyConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: error\n"), 0o600))
	return path
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, cufiletest.New(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "cufile-go version: "+cufile.WrapperVersion())
	assert.Contains(t, out, "libcufile version: ")
}

func TestProbeCommand(t *testing.T) {
	drv := cufiletest.New()
	out, err := run(t, drv, "probe")
	require.NoError(t, err)
	assert.Contains(t, out, "native driver initialized")
	assert.Equal(t, 1, drv.InitCalls())
}

func TestProbeReportsMissingBindings(t *testing.T) {
	drv := cufiletest.New()
	drv.InitHook = func(int) error { return cufile.ErrNotBuilt }

	_, err := run(t, drv, "probe")
	require.Error(t, err)
	assert.ErrorIs(t, err, cufile.ErrNotBuilt)
	assert.Contains(t, err.Error(), "native driver unavailable")
}

func TestProbeReportsInitFailure(t *testing.T) {
	drv := cufiletest.New()
	drv.InitHook = func(int) error { return errors.New("no nvidia-fs") }

	_, err := run(t, drv, "probe")
	assert.ErrorIs(t, err, cufile.ErrInitialization)
	assert.NotContains(t, err.Error(), "native driver unavailable")
}

func TestInvalidConfigIsRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: loud\n"), 0o600))

	drv := cufiletest.New()
	root := NewRootCmd(func(cufile.Config) cufile.Driver { return drv })
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--config", path, "probe"})

	err := root.Execute()
	assert.ErrorIs(t, err, cufile.ErrInvalidArgument)
	assert.Equal(t, 0, drv.InitCalls())
}

func TestEnvironmentOverridesConfig(t *testing.T) {
	t.Setenv("CUFILE_LOG_LEVEL", "bogus")

	_, err := run(t, cufiletest.New(), "version")
	assert.ErrorIs(t, err, cufile.ErrInvalidArgument)
}
