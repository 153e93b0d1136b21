package cufile

import (
	"errors"
	"fmt"

	"github.com/rapidsai/cufile-go/internal/bindings"
)

var (
	// ErrInitialization matches every *InitializationError.
	ErrInitialization = errors.New("cufile: native subsystem initialization failed")

	// ErrUseAfterRelease reports a native operation attempted through a
	// handle that has already been released. It is a programming error.
	ErrUseAfterRelease = errors.New("cufile: handle used after release")

	ErrIdentifierInUse   = errors.New("cufile: identifier already owned by a live handle")
	ErrInvalidIdentifier = errors.New("cufile: invalid native identifier")
	ErrInvalidArgument   = errors.New("cufile: invalid argument")
	ErrUnsupported       = errors.New("cufile: operation not supported by driver")
	ErrNilDriver         = errors.New("cufile: driver must not be nil")
	ErrNilSubsystem      = errors.New("cufile: subsystem must not be nil")
	ErrDefaultInUse      = errors.New("cufile: default subsystem already in use")

	// ErrNotBuilt reports that the native bindings were not linked in.
	ErrNotBuilt = bindings.ErrNotBuilt
)

// InitializationError wraps the failure reported by Driver.Init. The gate
// stays closed afterwards, so the next handle construction retries.
type InitializationError struct {
	Cause error
}

func (e *InitializationError) Error() string {
	if e.Cause == nil {
		return ErrInitialization.Error()
	}
	return ErrInitialization.Error() + ": " + e.Cause.Error()
}

func (e *InitializationError) Unwrap() error { return e.Cause }

func (e *InitializationError) Is(target error) bool { return target == ErrInitialization }

// NativeError is a non-success status returned by libcufile.
type NativeError struct {
	Op   string
	Code int
	Err  error
}

func (e *NativeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cufile: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("cufile: %s: status %d", e.Op, e.Code)
}

func (e *NativeError) Unwrap() error { return e.Err }

// RemapError converts bindings layer errors to public API errors.
func RemapError(err error) error {
	if err == nil {
		return nil
	}
	var st *bindings.StatusError
	if errors.As(err, &st) {
		return &NativeError{Op: st.Op, Code: st.Code, Err: st.Errno}
	}
	return err
}
