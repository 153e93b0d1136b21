package cufile

import (
	"context"
	"fmt"
	"runtime"
)

// BufferHandle is a device buffer registered for GPU-direct transfers. The
// device pointer is the native identifier; Close deregisters it once.
type BufferHandle struct {
	h    *Handle
	size int
}

// RegisterBuffer registers size bytes of device memory at ptr. flags are
// passed through to the driver.
func RegisterBuffer(ctx context.Context, sub *Subsystem, ptr DevicePointer, size int, flags int) (*BufferHandle, error) {
	if sub == nil {
		return nil, ErrNilSubsystem
	}
	drv, ok := sub.driver.(BufferDriver)
	if !ok {
		return nil, fmt.Errorf("%w: buffer handles", ErrUnsupported)
	}
	if ptr == 0 || size <= 0 {
		return nil, fmt.Errorf("%w: buffer %#x size %d", ErrInvalidArgument, uintptr(ptr), size)
	}
	if err := sub.EnsureInitialized(ctx); err != nil {
		return nil, err
	}

	id, err := drv.RegisterBuffer(ptr, size, flags)
	if err != nil {
		return nil, fmt.Errorf("cufile: register buffer: %w", err)
	}
	h, err := newHandle(ctx, sub, KindBuffer, id)
	if err != nil {
		return nil, err
	}
	b := &BufferHandle{h: h, size: size}
	runtime.SetFinalizer(b, (*BufferHandle).finalize)
	return b, nil
}

// Pointer returns the registered device pointer.
func (b *BufferHandle) Pointer() (DevicePointer, error) {
	id, err := b.h.Identifier()
	if err != nil {
		return 0, err
	}
	return DevicePointer(id), nil
}

func (b *BufferHandle) Size() int { return b.size }

func (b *BufferHandle) Released() bool { return b == nil || b.h.Released() }

func (b *BufferHandle) Close() error {
	if b == nil || !b.h.release(context.Background()) {
		return nil
	}
	runtime.SetFinalizer(b, nil)
	return nil
}

func (b *BufferHandle) finalize() {
	if !b.h.Released() {
		b.h.sub.logger.Warn(context.Background(), "open buffer handle released by finalizer; call Close",
			"size", b.size)
	}
	b.h.release(context.Background())
}
