package cufile_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rapidsai/cufile-go/pkg/cufile"
	"github.com/rapidsai/cufile-go/pkg/cufile/cufiletest"
)

func TestRegisterBufferLifecycle(t *testing.T) {
	ctx := context.Background()
	drv := cufiletest.New()
	sub := newSubsystem(t, drv)

	b, err := cufile.RegisterBuffer(ctx, sub, 0x7000_0000, 1<<20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1<<20, b.Size())
	assert.True(t, drv.Registered(cufile.KindBuffer, 0x7000_0000))

	ptr, err := b.Pointer()
	require.NoError(t, err)
	assert.Equal(t, cufile.DevicePointer(0x7000_0000), ptr)

	require.NoError(t, b.Close())
	require.NoError(t, b.Close())
	assert.Equal(t, 1, drv.DestroyCount(cufile.KindBuffer, 0x7000_0000))
	assert.True(t, b.Released())

	_, err = b.Pointer()
	assert.ErrorIs(t, err, cufile.ErrUseAfterRelease)
}

func TestRegisterBufferRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	drv := cufiletest.New()
	sub := newSubsystem(t, drv)

	_, err := cufile.RegisterBuffer(ctx, nil, 0x1000, 16, 0)
	assert.ErrorIs(t, err, cufile.ErrNilSubsystem)
	_, err = cufile.RegisterBuffer(ctx, sub, 0, 16, 0)
	assert.ErrorIs(t, err, cufile.ErrInvalidArgument)
	_, err = cufile.RegisterBuffer(ctx, sub, 0x1000, 0, 0)
	assert.ErrorIs(t, err, cufile.ErrInvalidArgument)
	assert.Equal(t, 0, drv.InitCalls())

	_, err = cufile.RegisterBuffer(ctx, newSubsystem(t, cufiletest.InitOnly{D: drv}), 0x1000, 16, 0)
	assert.ErrorIs(t, err, cufile.ErrUnsupported)
}

func TestBufferRegisteredTwiceIsRejected(t *testing.T) {
	ctx := context.Background()
	drv := cufiletest.New()
	sub := newSubsystem(t, drv)

	first, err := cufile.RegisterBuffer(ctx, sub, 0x4000, 64, 0)
	require.NoError(t, err)
	defer first.Close()

	_, err = cufile.RegisterBuffer(ctx, sub, 0x4000, 64, 0)
	assert.ErrorIs(t, err, cufile.ErrIdentifierInUse)
	assert.Equal(t, 0, drv.DestroyCount(cufile.KindBuffer, 0x4000))
}

func TestFileAndBufferShareOneGate(t *testing.T) {
	ctx := context.Background()
	drv := cufiletest.New()
	sub := newSubsystem(t, drv)

	b, err := cufile.RegisterBuffer(ctx, sub, 0x4000, 64, 0)
	require.NoError(t, err)
	defer b.Close()
	h, err := cufile.NewHandle(ctx, sub, cufile.KindFile, 0x4000)
	require.NoError(t, err)
	defer h.Close()

	assert.Equal(t, 1, drv.InitCalls())
	assert.Equal(t, 2, sub.Live())
}
