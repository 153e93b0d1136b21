//go:build linux

package fileio

import (
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

const (
	oCloexec        = unix.O_CLOEXEC
	oDirectFlag     = unix.O_DIRECT
	directSupported = true
)

// OpenFD opens path with flags parsed by ParseOpenFlags and returns the raw
// descriptor. The caller owns it.
func OpenFD(path, flags string, oDirect bool, mode uint32) (int, error) {
	f, err := ParseOpenFlags(flags, oDirect)
	if err != nil {
		return -1, err
	}
	fd, err := unix.Open(path, f, mode)
	if err != nil {
		return -1, &os.PathError{Op: "open", Path: path, Err: err}
	}
	return fd, nil
}

// OpenFlags returns the status flags of fd as reported by F_GETFL.
func OpenFlags(fd int) (int, error) {
	flags, err := unix.FcntlInt(uintptr(fd), unix.F_GETFL, 0)
	if err != nil {
		return 0, os.NewSyscallError("fcntl", err)
	}
	return flags, nil
}

// FileSize returns the size in bytes of the file behind fd.
func FileSize(fd int) (int64, error) {
	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		return 0, os.NewSyscallError("fstat", err)
	}
	return st.Size, nil
}

// Close closes fd.
func Close(fd int) error {
	if err := unix.Close(fd); err != nil {
		return os.NewSyscallError("close", err)
	}
	return nil
}

// DescribeFlags renders F_GETFL status flags, e.g. "O_RDWR|O_DIRECT".
func DescribeFlags(flags int) string {
	var parts []string
	switch flags & unix.O_ACCMODE {
	case unix.O_RDONLY:
		parts = append(parts, "O_RDONLY")
	case unix.O_WRONLY:
		parts = append(parts, "O_WRONLY")
	case unix.O_RDWR:
		parts = append(parts, "O_RDWR")
	}
	for _, f := range []struct {
		bit  int
		name string
	}{
		{unix.O_APPEND, "O_APPEND"},
		{unix.O_DIRECT, "O_DIRECT"},
		{unix.O_NONBLOCK, "O_NONBLOCK"},
		{unix.O_SYNC, "O_SYNC"},
	} {
		if flags&f.bit == f.bit {
			parts = append(parts, f.name)
		}
	}
	return strings.Join(parts, "|")
}
