package cufile

import (
	"fmt"
	"os"

	"github.com/rapidsai/cufile-go/internal/bindings"
)

// driverConfigEnv is read by libcufile when the driver opens.
const driverConfigEnv = "CUFILE_ENV_PATH_JSON"

// NativeDriver implements FileDriver and BufferDriver over libcufile.
// Without the native bindings every call returns ErrNotBuilt.
type NativeDriver struct {
	cfg Config
}

var (
	_ FileDriver   = (*NativeDriver)(nil)
	_ BufferDriver = (*NativeDriver)(nil)
)

func NewNativeDriver(cfg Config) *NativeDriver {
	return &NativeDriver{cfg: cfg}
}

func (d *NativeDriver) Init() error {
	if d.cfg.DriverConfigPath != "" {
		if err := os.Setenv(driverConfigEnv, d.cfg.DriverConfigPath); err != nil {
			return fmt.Errorf("set %s: %w", driverConfigEnv, err)
		}
	}
	return RemapError(bindings.DriverOpen())
}

func (d *NativeDriver) Destroy(kind Kind, id Identifier) error {
	switch kind {
	case KindFile:
		bindings.HandleDeregister(uintptr(id))
		return nil
	case KindBuffer:
		return RemapError(bindings.BufDeregister(uintptr(id)))
	default:
		return fmt.Errorf("%w: destroy %s", ErrUnsupported, kind)
	}
}

func (d *NativeDriver) RegisterFile(fd int) (Identifier, error) {
	h, err := bindings.HandleRegister(fd)
	if err != nil {
		return 0, RemapError(err)
	}
	return Identifier(h), nil
}

func (d *NativeDriver) Read(id Identifier, buf DevicePointer, size int, fileOffset, bufOffset int64) (int, error) {
	n, err := bindings.Read(uintptr(id), uintptr(buf), size, fileOffset, bufOffset)
	return n, RemapError(err)
}

func (d *NativeDriver) Write(id Identifier, buf DevicePointer, size int, fileOffset, bufOffset int64) (int, error) {
	n, err := bindings.Write(uintptr(id), uintptr(buf), size, fileOffset, bufOffset)
	return n, RemapError(err)
}

// RegisterBuffer registers device memory. The cuFile API keys buffer
// registrations by the device pointer itself, so it doubles as the identifier.
func (d *NativeDriver) RegisterBuffer(ptr DevicePointer, size int, flags int) (Identifier, error) {
	if err := bindings.BufRegister(uintptr(ptr), size, flags); err != nil {
		return 0, RemapError(err)
	}
	return Identifier(ptr), nil
}
