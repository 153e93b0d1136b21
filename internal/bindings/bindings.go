//go:build cgo && linux && cufile

package bindings

/*
#cgo LDFLAGS: -lcufile
#include <stdint.h>
#include <stdlib.h>
#include <string.h>
#include <sys/types.h>
#include <cufile.h>

static int cufile_go_driver_open(void) {
	CUfileError_t st = cuFileDriverOpen();
	return (int)st.err;
}

static int cufile_go_handle_register(int fd, uintptr_t* out) {
	CUfileDescr_t descr;
	CUfileHandle_t fh;
	CUfileError_t st;

	memset(&descr, 0, sizeof(descr));
	descr.handle.fd = fd;
	descr.type = CU_FILE_HANDLE_TYPE_OPAQUE_FD;
	st = cuFileHandleRegister(&fh, &descr);
	if (st.err == CU_FILE_SUCCESS) {
		*out = (uintptr_t)fh;
	}
	return (int)st.err;
}

static void cufile_go_handle_deregister(uintptr_t fh) {
	cuFileHandleDeregister((CUfileHandle_t)fh);
}

static ssize_t cufile_go_read(uintptr_t fh, uintptr_t buf, size_t size, int64_t file_offset, int64_t buf_offset) {
	return cuFileRead((CUfileHandle_t)fh, (void*)buf, size, (off_t)file_offset, (off_t)buf_offset);
}

static ssize_t cufile_go_write(uintptr_t fh, uintptr_t buf, size_t size, int64_t file_offset, int64_t buf_offset) {
	return cuFileWrite((CUfileHandle_t)fh, (const void*)buf, size, (off_t)file_offset, (off_t)buf_offset);
}

static int cufile_go_buf_register(uintptr_t ptr, size_t size, int flags) {
	CUfileError_t st = cuFileBufRegister((const void*)ptr, size, flags);
	return (int)st.err;
}

static int cufile_go_buf_deregister(uintptr_t ptr) {
	CUfileError_t st = cuFileBufDeregister((const void*)ptr);
	return (int)st.err;
}
*/
import "C"

func status(op string, rc C.int) error {
	if rc == 0 {
		return nil
	}
	return &StatusError{Op: op, Code: int(rc)}
}

// DriverOpen runs the process-wide cuFile driver setup.
func DriverOpen() error {
	return status("cuFileDriverOpen", C.cufile_go_driver_open())
}

// HandleRegister registers an open file descriptor and returns the opaque
// CUfileHandle_t value.
func HandleRegister(fd int) (uintptr, error) {
	var out C.uintptr_t
	if err := status("cuFileHandleRegister", C.cufile_go_handle_register(C.int(fd), &out)); err != nil {
		return 0, err
	}
	return uintptr(out), nil
}

// HandleDeregister releases a handle returned by HandleRegister. libcufile
// reports no status for this call.
func HandleDeregister(h uintptr) {
	C.cufile_go_handle_deregister(C.uintptr_t(h))
}

func transferResult(op string, n C.ssize_t, errno error) (int, error) {
	switch {
	case n >= 0:
		return int(n), nil
	case n == -1:
		return 0, &StatusError{Op: op, Code: -1, Errno: errno}
	default:
		return 0, &StatusError{Op: op, Code: int(-n)}
	}
}

// Read copies size bytes at fileOffset into device memory buf+bufOffset.
func Read(h, buf uintptr, size int, fileOffset, bufOffset int64) (int, error) {
	n, errno := C.cufile_go_read(C.uintptr_t(h), C.uintptr_t(buf), C.size_t(size), C.int64_t(fileOffset), C.int64_t(bufOffset))
	return transferResult("cuFileRead", n, errno)
}

// Write copies size bytes from device memory buf+bufOffset to fileOffset.
func Write(h, buf uintptr, size int, fileOffset, bufOffset int64) (int, error) {
	n, errno := C.cufile_go_write(C.uintptr_t(h), C.uintptr_t(buf), C.size_t(size), C.int64_t(fileOffset), C.int64_t(bufOffset))
	return transferResult("cuFileWrite", n, errno)
}

// BufRegister registers a device buffer for GPU-direct transfers.
func BufRegister(ptr uintptr, size int, flags int) error {
	return status("cuFileBufRegister", C.cufile_go_buf_register(C.uintptr_t(ptr), C.size_t(size), C.int(flags)))
}

// BufDeregister releases a registration made by BufRegister.
func BufDeregister(ptr uintptr) error {
	return status("cuFileBufDeregister", C.cufile_go_buf_deregister(C.uintptr_t(ptr)))
}

// Version returns the version reported by libcufile. The C API offers no
// portable query across releases, so the string stays empty.
func Version() string { return "" }
