//go:build !cgo || !linux || !cufile

package bindings

// Stub implementations for builds without cgo, off linux, or without the
// cufile tag. They compile everywhere and return ErrNotBuilt when called.

func DriverOpen() error { return ErrNotBuilt }

func HandleRegister(int) (uintptr, error) { return 0, ErrNotBuilt }

func HandleDeregister(uintptr) {}

func Read(uintptr, uintptr, int, int64, int64) (int, error) { return 0, ErrNotBuilt }

func Write(uintptr, uintptr, int, int64, int64) (int, error) { return 0, ErrNotBuilt }

func BufRegister(uintptr, int, int) error { return ErrNotBuilt }

func BufDeregister(uintptr) error { return ErrNotBuilt }

func Version() string { return "" }
