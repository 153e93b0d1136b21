package cufile

import "fmt"

// Identifier is the opaque value the native subsystem returns for a live
// resource. The wrapper never interprets it.
type Identifier uintptr

// DevicePointer is a CUDA device address.
type DevicePointer uintptr

// Kind names a handle specialization. Kinds share one lifecycle and differ
// in how the identifier is acquired and destroyed.
type Kind uint8

const (
	KindFile Kind = iota + 1
	KindBuffer
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindBuffer:
		return "buffer"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Driver is the native subsystem boundary used by the lifecycle core.
//
// Init performs the process-wide setup and is called at most once per
// successful initialization. Destroy releases the resource behind id; it is
// called at most once per live handle.
type Driver interface {
	Init() error
	Destroy(kind Kind, id Identifier) error
}

// FileDriver adds the operations backing FileHandle.
type FileDriver interface {
	Driver
	RegisterFile(fd int) (Identifier, error)
	Read(id Identifier, buf DevicePointer, size int, fileOffset, bufOffset int64) (int, error)
	Write(id Identifier, buf DevicePointer, size int, fileOffset, bufOffset int64) (int, error)
}

// BufferDriver adds the operations backing BufferHandle.
type BufferDriver interface {
	Driver
	RegisterBuffer(ptr DevicePointer, size int, flags int) (Identifier, error)
}
