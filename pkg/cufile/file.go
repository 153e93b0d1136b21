package cufile

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/rapidsai/cufile-go/internal/fileio"
)

// FileHandle is a file registered with the native subsystem for GPU-direct
// reads and writes. Lifecycle is delegated to a Handle of KindFile; every
// operation fails with ErrUseAfterRelease once it is closed.
type FileHandle struct {
	h      *Handle
	drv    FileDriver
	fd     int
	path   string
	ownsFD bool
}

type fileOptions struct {
	oDirect bool
	mode    os.FileMode
}

// FileOption customizes OpenFile.
type FileOption func(*fileOptions)

// WithODirect overrides Config.ODirect for one open.
func WithODirect(on bool) FileOption {
	return func(o *fileOptions) { o.oDirect = on }
}

// WithMode overrides Config.FileMode for one open.
func WithMode(mode os.FileMode) FileOption {
	return func(o *fileOptions) { o.mode = mode }
}

// OpenFile opens path with an fopen-style mode ("r", "r+", "w", "w+") and
// registers the descriptor with sub's driver. The returned handle owns the
// descriptor and closes it after deregistration.
func OpenFile(ctx context.Context, sub *Subsystem, path, flags string, opts ...FileOption) (*FileHandle, error) {
	drv, err := fileDriver(sub)
	if err != nil {
		return nil, err
	}
	if err := sub.EnsureInitialized(ctx); err != nil {
		return nil, err
	}

	o := fileOptions{oDirect: sub.cfg.ODirect, mode: sub.cfg.FileMode}
	for _, opt := range opts {
		opt(&o)
	}

	fd, err := fileio.OpenFD(path, flags, o.oDirect, uint32(o.mode.Perm()))
	if err != nil {
		return nil, fmt.Errorf("cufile: open %s: %w", path, err)
	}
	f, err := registerFile(ctx, sub, drv, fd, path, true)
	if err != nil {
		_ = fileio.Close(fd)
		return nil, err
	}
	return f, nil
}

// RegisterFD registers a descriptor the caller keeps ownership of. Closing
// the handle deregisters it but leaves fd open.
func RegisterFD(ctx context.Context, sub *Subsystem, fd int) (*FileHandle, error) {
	drv, err := fileDriver(sub)
	if err != nil {
		return nil, err
	}
	if fd < 0 {
		return nil, fmt.Errorf("%w: fd %d", ErrInvalidArgument, fd)
	}
	return registerFile(ctx, sub, drv, fd, "", false)
}

func fileDriver(sub *Subsystem) (FileDriver, error) {
	if sub == nil {
		return nil, ErrNilSubsystem
	}
	drv, ok := sub.driver.(FileDriver)
	if !ok {
		return nil, fmt.Errorf("%w: file handles", ErrUnsupported)
	}
	return drv, nil
}

func registerFile(ctx context.Context, sub *Subsystem, drv FileDriver, fd int, path string, ownsFD bool) (*FileHandle, error) {
	if err := sub.EnsureInitialized(ctx); err != nil {
		return nil, err
	}
	id, err := drv.RegisterFile(fd)
	if err != nil {
		return nil, fmt.Errorf("cufile: register fd %d: %w", fd, err)
	}
	// On failure the identifier is either invalid or owned by a live handle;
	// neither may be destroyed here.
	h, err := newHandle(ctx, sub, KindFile, id)
	if err != nil {
		return nil, err
	}
	f := &FileHandle{h: h, drv: drv, fd: fd, path: path, ownsFD: ownsFD}
	runtime.SetFinalizer(f, (*FileHandle).finalize)
	return f, nil
}

// Read copies size bytes from fileOffset into device memory at
// buf+bufOffset and returns the byte count transferred.
func (f *FileHandle) Read(ctx context.Context, buf DevicePointer, size int, fileOffset, bufOffset int64) (int, error) {
	return f.transfer(ctx, "read", f.drv.Read, buf, size, fileOffset, bufOffset)
}

// Write copies size bytes from device memory at buf+bufOffset to fileOffset.
func (f *FileHandle) Write(ctx context.Context, buf DevicePointer, size int, fileOffset, bufOffset int64) (int, error) {
	return f.transfer(ctx, "write", f.drv.Write, buf, size, fileOffset, bufOffset)
}

type transferFunc func(Identifier, DevicePointer, int, int64, int64) (int, error)

func (f *FileHandle) transfer(ctx context.Context, op string, fn transferFunc, buf DevicePointer, size int, fileOffset, bufOffset int64) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if size < 0 || fileOffset < 0 || bufOffset < 0 {
		return 0, fmt.Errorf("%w: size %d, file offset %d, buffer offset %d", ErrInvalidArgument, size, fileOffset, bufOffset)
	}
	id, err := f.h.Identifier()
	if err != nil {
		return 0, err
	}
	n, err := fn(id, buf, size, fileOffset, bufOffset)
	runtime.KeepAlive(f)
	if err != nil {
		return n, fmt.Errorf("cufile: %s %s: %w", op, f.name(), err)
	}
	return n, nil
}

// Size returns the current size of the underlying file.
func (f *FileHandle) Size() (int64, error) {
	if _, err := f.h.Identifier(); err != nil {
		return 0, err
	}
	n, err := fileio.FileSize(f.fd)
	runtime.KeepAlive(f)
	return n, err
}

// OpenFlags returns the descriptor's F_GETFL status flags.
func (f *FileHandle) OpenFlags() (int, error) {
	if _, err := f.h.Identifier(); err != nil {
		return 0, err
	}
	flags, err := fileio.OpenFlags(f.fd)
	runtime.KeepAlive(f)
	return flags, err
}

// FD returns the registered descriptor.
func (f *FileHandle) FD() (int, error) {
	if _, err := f.h.Identifier(); err != nil {
		return -1, err
	}
	return f.fd, nil
}

// Path is empty for handles built with RegisterFD.
func (f *FileHandle) Path() string { return f.path }

func (f *FileHandle) Released() bool { return f == nil || f.h.Released() }

// Close deregisters the file and, when the handle owns it, closes the
// descriptor. Repeated calls are no-ops.
func (f *FileHandle) Close() error {
	if f == nil || !f.h.release(context.Background()) {
		return nil
	}
	runtime.SetFinalizer(f, nil)
	f.closeFD()
	return nil
}

func (f *FileHandle) finalize() {
	if !f.h.Released() {
		f.h.sub.logger.Warn(context.Background(), "open file handle released by finalizer; call Close",
			"fd", f.fd)
	}
	if f.h.release(context.Background()) {
		f.closeFD()
	}
}

func (f *FileHandle) closeFD() {
	if !f.ownsFD {
		return
	}
	if err := fileio.Close(f.fd); err != nil {
		f.h.sub.logger.Warn(context.Background(), "close file descriptor failed",
			"fd", f.fd, "error", err)
	}
}

func (f *FileHandle) name() string {
	if f.path != "" {
		return f.path
	}
	return fmt.Sprintf("fd %d", f.fd)
}
