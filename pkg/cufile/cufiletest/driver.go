// Package cufiletest provides an in-memory cufile.Driver for tests.
//
// The Driver records every Init and Destroy call so tests can assert the
// exactly-once guarantees of the lifecycle core. Failures and delays are
// injected through InitHook and DestroyErr.
package cufiletest

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rapidsai/cufile-go/pkg/cufile"
)

// FirstFileID is the identifier handed out by the first RegisterFile call.
const FirstFileID cufile.Identifier = 0x1000

var ErrUnknownIdentifier = errors.New("cufiletest: unknown identifier")

// Call is one recorded Destroy.
type Call struct {
	Kind cufile.Kind
	ID   cufile.Identifier
}

// Driver implements cufile.FileDriver and cufile.BufferDriver in memory.
// It is safe for concurrent use.
type Driver struct {
	// InitHook, when set, runs inside Init with the 1-based attempt number
	// and supplies its result.
	InitHook func(attempt int) error

	// DestroyErr is returned by every Destroy while set.
	DestroyErr error

	// FixedFileID, when non-zero, is returned by every RegisterFile.
	FixedFileID cufile.Identifier

	mu        sync.Mutex
	initCalls int
	destroyed []Call
	next      cufile.Identifier
	live      map[Call]int // identifier -> fd or buffer size
}

var (
	_ cufile.FileDriver   = (*Driver)(nil)
	_ cufile.BufferDriver = (*Driver)(nil)
)

func New() *Driver {
	return &Driver{next: FirstFileID, live: make(map[Call]int)}
}

func (d *Driver) Init() error {
	d.mu.Lock()
	d.initCalls++
	attempt := d.initCalls
	hook := d.InitHook
	d.mu.Unlock()

	if hook != nil {
		return hook(attempt)
	}
	return nil
}

func (d *Driver) Destroy(kind cufile.Kind, id cufile.Identifier) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	c := Call{Kind: kind, ID: id}
	d.destroyed = append(d.destroyed, c)
	delete(d.live, c)
	return d.DestroyErr
}

func (d *Driver) RegisterFile(fd int) (cufile.Identifier, error) {
	if fd < 0 {
		return 0, fmt.Errorf("cufiletest: bad fd %d", fd)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.FixedFileID
	if id == 0 {
		id = d.next
		d.next++
	}
	d.live[Call{Kind: cufile.KindFile, ID: id}] = fd
	return id, nil
}

// Read reports size bytes transferred without touching memory.
func (d *Driver) Read(id cufile.Identifier, _ cufile.DevicePointer, size int, _, _ int64) (int, error) {
	return d.transfer(id, size)
}

// Write reports size bytes transferred without touching memory.
func (d *Driver) Write(id cufile.Identifier, _ cufile.DevicePointer, size int, _, _ int64) (int, error) {
	return d.transfer(id, size)
}

func (d *Driver) transfer(id cufile.Identifier, size int) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.live[Call{Kind: cufile.KindFile, ID: id}]; !ok {
		return 0, fmt.Errorf("%w: %#x", ErrUnknownIdentifier, uintptr(id))
	}
	return size, nil
}

func (d *Driver) RegisterBuffer(ptr cufile.DevicePointer, size int, _ int) (cufile.Identifier, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.live[Call{Kind: cufile.KindBuffer, ID: cufile.Identifier(ptr)}] = size
	return cufile.Identifier(ptr), nil
}

// InitCalls returns how many times Init ran.
func (d *Driver) InitCalls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.initCalls
}

// Destroyed returns a copy of the recorded Destroy calls in order.
func (d *Driver) Destroyed() []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Call, len(d.destroyed))
	copy(out, d.destroyed)
	return out
}

// DestroyCount returns how many times Destroy ran for (kind, id).
func (d *Driver) DestroyCount(kind cufile.Kind, id cufile.Identifier) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, c := range d.destroyed {
		if c.Kind == kind && c.ID == id {
			n++
		}
	}
	return n
}

// Registered reports whether (kind, id) was registered and not yet destroyed.
func (d *Driver) Registered(kind cufile.Kind, id cufile.Identifier) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.live[Call{Kind: kind, ID: id}]
	return ok
}

// InitOnly wraps a Driver and hides the file and buffer extensions, for
// exercising ErrUnsupported paths.
type InitOnly struct{ D *Driver }

func (d InitOnly) Init() error { return d.D.Init() }

func (d InitOnly) Destroy(kind cufile.Kind, id cufile.Identifier) error {
	return d.D.Destroy(kind, id)
}
