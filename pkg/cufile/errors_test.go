package cufile_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/rapidsai/cufile-go/internal/bindings"
	"github.com/rapidsai/cufile-go/pkg/cufile"
)

func TestRemapError(t *testing.T) {
	assert.NoError(t, cufile.RemapError(nil))

	plain := errors.New("plain")
	assert.Same(t, plain, cufile.RemapError(plain))

	err := cufile.RemapError(&bindings.StatusError{Op: "cuFileBufRegister", Code: 5030})
	var native *cufile.NativeError
	require.ErrorAs(t, err, &native)
	assert.Equal(t, "cuFileBufRegister", native.Op)
	assert.Equal(t, 5030, native.Code)
	assert.Equal(t, "cufile: cuFileBufRegister: status 5030", err.Error())

	err = cufile.RemapError(&bindings.StatusError{Op: "cuFileRead", Errno: unix.EIO})
	assert.ErrorIs(t, err, unix.EIO)
	assert.Equal(t, "cufile: cuFileRead: "+unix.EIO.Error(), err.Error())

	assert.ErrorIs(t, cufile.RemapError(bindings.ErrNotBuilt), cufile.ErrNotBuilt)
}

func TestInitializationErrorMessage(t *testing.T) {
	err := &cufile.InitializationError{Cause: errors.New("no driver")}
	assert.Equal(t, "cufile: native subsystem initialization failed: no driver", err.Error())
	assert.ErrorIs(t, err, cufile.ErrInitialization)

	empty := &cufile.InitializationError{}
	assert.Equal(t, cufile.ErrInitialization.Error(), empty.Error())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "file", cufile.KindFile.String())
	assert.Equal(t, "buffer", cufile.KindBuffer.String())
	assert.Equal(t, "kind(9)", cufile.Kind(9).String())
}
