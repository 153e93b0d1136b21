//go:build !cgo || !linux || !cufile

package bindings

import (
	"errors"
	"testing"
)

func TestStubReportsNotBuilt(t *testing.T) {
	if err := DriverOpen(); !errors.Is(err, ErrNotBuilt) {
		t.Fatalf("DriverOpen: expected ErrNotBuilt, got %v", err)
	}
	if _, err := HandleRegister(3); !errors.Is(err, ErrNotBuilt) {
		t.Fatalf("HandleRegister: expected ErrNotBuilt, got %v", err)
	}
	if _, err := Read(1, 1, 16, 0, 0); !errors.Is(err, ErrNotBuilt) {
		t.Fatalf("Read: expected ErrNotBuilt, got %v", err)
	}
	if err := BufDeregister(1); !errors.Is(err, ErrNotBuilt) {
		t.Fatalf("BufDeregister: expected ErrNotBuilt, got %v", err)
	}
	HandleDeregister(1)
	if v := Version(); v != "" {
		t.Fatalf("expected empty version, got %q", v)
	}
}

func TestStatusErrorMessage(t *testing.T) {
	err := &StatusError{Op: "cuFileBufRegister", Code: 5030}
	if got, want := err.Error(), "cuFileBufRegister failed with status 5030"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if errors.Unwrap(err) != nil {
		t.Fatal("status without errno should not unwrap")
	}
}
