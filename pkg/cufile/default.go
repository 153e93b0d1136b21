package cufile

import (
	"context"
	"sync"
	"sync/atomic"
)

var (
	defaultMu  sync.Mutex
	defaultSub atomic.Pointer[Subsystem]
)

// Default returns the process-wide subsystem backed by NativeDriver. It is
// created on first use and lives for the rest of the process.
func Default() *Subsystem {
	if s := defaultSub.Load(); s != nil {
		return s
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if s := defaultSub.Load(); s != nil {
		return s
	}
	cfg := DefaultConfig()
	s, _ := NewSubsystem(NewNativeDriver(cfg), WithConfig(cfg))
	defaultSub.Store(s)
	return s
}

// ConfigureDefault installs the process-wide subsystem with cfg and opts. It
// fails with ErrDefaultInUse once Default has been called.
func ConfigureDefault(cfg Config, opts ...Option) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultSub.Load() != nil {
		return ErrDefaultInUse
	}
	opts = append([]Option{WithConfig(cfg)}, opts...)
	s, err := NewSubsystem(NewNativeDriver(cfg), opts...)
	if err != nil {
		return err
	}
	defaultSub.Store(s)
	return nil
}

// EnsureInitialized initializes the process-wide subsystem.
func EnsureInitialized(ctx context.Context) error {
	return Default().EnsureInitialized(ctx)
}
