//go:build !linux

package fileio

import "fmt"

const (
	oCloexec        = 0
	oDirectFlag     = 0
	directSupported = false
)

func OpenFD(path, flags string, oDirect bool, mode uint32) (int, error) {
	if _, err := ParseOpenFlags(flags, oDirect); err != nil {
		return -1, err
	}
	return -1, ErrUnsupportedPlatform
}

func OpenFlags(int) (int, error) { return 0, ErrUnsupportedPlatform }

func FileSize(int) (int64, error) { return 0, ErrUnsupportedPlatform }

func Close(int) error { return ErrUnsupportedPlatform }

func DescribeFlags(flags int) string { return fmt.Sprintf("%#x", flags) }
