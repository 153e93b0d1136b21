// Package fileio opens and inspects the POSIX file descriptors that back
// cuFile handles.
package fileio

import (
	"errors"
	"fmt"
	"os"
)

var (
	ErrUnknownFlag         = errors.New("unknown file open flag")
	ErrAppendUnsupported   = errors.New("open flag 'a' isn't supported")
	ErrDirectUnsupported   = errors.New("'o_direct' flag unsupported on this platform")
	ErrUnsupportedPlatform = errors.New("file descriptor helpers unsupported on this platform")
)

// ParseOpenFlags converts an fopen-style mode into open(2) flags. Only the
// first two characters are significant: "r", "r+", "w" and "w+". O_CLOEXEC is
// always set and O_DIRECT is added when oDirect is true.
func ParseOpenFlags(flags string, oDirect bool) (int, error) {
	if flags == "" {
		return 0, ErrUnknownFlag
	}
	plus := len(flags) > 1 && flags[1] == '+'

	var f int
	switch flags[0] {
	case 'r':
		f = os.O_RDONLY
		if plus {
			f = os.O_RDWR
		}
	case 'w':
		f = os.O_WRONLY
		if plus {
			f = os.O_RDWR
		}
		f |= os.O_CREATE | os.O_TRUNC
	case 'a':
		return 0, ErrAppendUnsupported
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFlag, flags)
	}

	f |= oCloexec
	if oDirect {
		if !directSupported {
			return 0, ErrDirectUnsupported
		}
		f |= oDirectFlag
	}
	return f, nil
}
