package cufile

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync/atomic"

	"github.com/rapidsai/cufile-go/pkg/cufile/logging"
)

// Releaser is the lifecycle capability shared by every handle kind. Close is
// idempotent and always returns nil.
type Releaser interface {
	io.Closer
	Released() bool
}

var (
	_ Releaser = (*Handle)(nil)
	_ Releaser = (*FileHandle)(nil)
	_ Releaser = (*BufferHandle)(nil)
)

// Handle owns exactly one native identifier. It starts open and moves to
// released on the first Close; the driver's Destroy runs exactly once, on that
// transition. A finalizer closes handles that are dropped while still open,
// but owners should defer Close.
//
// Close may be called from any goroutine, concurrently. Using Identifier
// while another goroutine closes the handle is the caller's responsibility to
// serialize.
type Handle struct {
	sub      *Subsystem
	kind     Kind
	id       Identifier
	released atomic.Bool
}

// NewHandle takes ownership of id, which must denote a live resource
// acquired from sub's driver and not already owned by another open handle.
// The subsystem is initialized first if needed.
func NewHandle(ctx context.Context, sub *Subsystem, kind Kind, id Identifier) (*Handle, error) {
	h, err := newHandle(ctx, sub, kind, id)
	if err != nil {
		return nil, err
	}
	runtime.SetFinalizer(h, (*Handle).finalize)
	return h, nil
}

// newHandle builds a Handle without a finalizer; kinds install their own on
// the outer value.
func newHandle(ctx context.Context, sub *Subsystem, kind Kind, id Identifier) (*Handle, error) {
	if sub == nil {
		return nil, ErrNilSubsystem
	}
	if id == 0 {
		return nil, ErrInvalidIdentifier
	}
	if err := sub.EnsureInitialized(ctx); err != nil {
		return nil, err
	}
	if err := sub.claim(kind, id); err != nil {
		return nil, fmt.Errorf("%w: %s %#x", err, kind, uintptr(id))
	}
	sub.metrics.HandleOpened(kind.String())
	return &Handle{sub: sub, kind: kind, id: id}, nil
}

// Identifier returns the native identifier. After release it returns
// ErrUseAfterRelease and no native call may be made for this handle.
func (h *Handle) Identifier() (Identifier, error) {
	if h == nil || h.released.Load() {
		return 0, ErrUseAfterRelease
	}
	return h.id, nil
}

func (h *Handle) Kind() Kind { return h.kind }

func (h *Handle) Released() bool { return h == nil || h.released.Load() }

// Close releases the native resource. Repeated calls are no-ops.
func (h *Handle) Close() error {
	h.release(context.Background())
	return nil
}

func (h *Handle) String() string {
	state := "open"
	if h.Released() {
		state = "released"
	}
	return fmt.Sprintf("%s handle %#x (%s)", h.kind, uintptr(h.id), state)
}

func (h *Handle) finalize() {
	if h.released.Load() {
		return
	}
	h.sub.logger.Warn(context.Background(), "open handle released by finalizer; call Close",
		"kind", h.kind.String(), logging.Identifier("id", uintptr(h.id)))
	h.release(context.Background())
}

// release reports whether this call performed the open to released
// transition. Destroy errors and panics are logged, never returned.
func (h *Handle) release(ctx context.Context) bool {
	if h == nil || !h.released.CompareAndSwap(false, true) {
		return false
	}
	runtime.SetFinalizer(h, nil)
	defer h.sub.unclaim(h.kind, h.id)

	if err := h.destroy(); err != nil {
		h.sub.metrics.DestroyFailed(h.kind.String())
		h.sub.logger.Warn(ctx, "native destroy failed",
			"kind", h.kind.String(), logging.Identifier("id", uintptr(h.id)), "error", err)
	}
	h.sub.metrics.HandleReleased(h.kind.String())
	return true
}

func (h *Handle) destroy() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("destroy panicked: %v", r)
		}
	}()
	return h.sub.driver.Destroy(h.kind, h.id)
}
