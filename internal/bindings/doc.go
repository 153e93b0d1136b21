// Package bindings contains all cgo calls into libcufile.
//
// Every C type stays on this side of the boundary: handles and device
// pointers cross as uintptr and statuses as *StatusError. No other package
// imports "C".
//
// The real implementation needs cgo on linux and the cufile build tag:
//
//	go build -tags cufile ./...
//
// Every other build links the stub, which reports ErrNotBuilt.
package bindings
