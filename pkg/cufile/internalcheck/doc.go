// Package internalcheck holds repository policy tests.
//
// The tests load the module with golang.org/x/tools/go/packages and fail when
// native code or native teardown leaks outside the packages that own it:
//
//   - only internal/bindings may import "C";
//   - only pkg/cufile/native.go may call the bindings deregistration entry
//     points;
//   - only pkg/cufile/handle.go may call Driver.Destroy, so every teardown
//     goes through the exactly-once release path.
//
// The package has no exported API.
package internalcheck
