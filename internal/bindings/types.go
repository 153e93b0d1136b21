package bindings

import (
	"errors"
	"fmt"
)

// ErrNotBuilt reports that the native cuFile bindings were not linked into the
// current binary. Builds need cgo, linux and the cufile build tag.
var ErrNotBuilt = errors.New("cufile/internal/bindings: native bindings not built")

// StatusError carries a non-success status returned by libcufile. Code is the
// CUfileOpError value; Errno is set when the call reported -1 and errno.
type StatusError struct {
	Op    string
	Code  int
	Errno error
}

func (e *StatusError) Error() string {
	if e.Errno != nil {
		return fmt.Sprintf("%s failed: %v", e.Op, e.Errno)
	}
	return fmt.Sprintf("%s failed with status %d", e.Op, e.Code)
}

func (e *StatusError) Unwrap() error { return e.Errno }
