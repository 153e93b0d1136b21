// Package cufile wraps the handles handed out by the cuFile GPU-direct
// storage driver.
//
// The package has two layers. A Subsystem gates a native Driver so its
// process-wide Init runs exactly once before any handle exists; Default
// returns the subsystem backed by libcufile. A Handle owns one native
// identifier and destroys it exactly once, on the first Close:
//
//	f, err := cufile.OpenFile(ctx, cufile.Default(), "/data/shard.bin", "r")
//	if err != nil {
//		return err
//	}
//	defer f.Close()
//
//	n, err := f.Read(ctx, devPtr, size, 0, 0)
//
// FileHandle and BufferHandle are the two handle kinds. Both hold a *Handle
// and add their own native operations; once closed every operation returns
// ErrUseAfterRelease. Closing twice is a no-op, and a finalizer releases
// handles that are dropped while open.
//
// Native bindings need cgo on linux and the cufile build tag. Other builds
// compile against a stub whose calls fail with ErrNotBuilt; the cufiletest
// package provides an in-memory Driver for tests.
package cufile
