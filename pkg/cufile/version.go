package cufile

import "github.com/rapidsai/cufile-go/internal/bindings"

var (
	Version         = "v0.0.0-in-progress"
	UpstreamVersion = "unknown"
)

// WrapperVersion returns the semantic version populated at build time via
// ldflags. In development it defaults to v0.0.0-in-progress.
func WrapperVersion() string {
	return Version
}

// NativeVersion returns the version string reported by libcufile if
// available; otherwise it falls back to the pinned upstream version.
func NativeVersion() string {
	if v := bindings.Version(); v != "" {
		return v
	}
	return UpstreamVersion
}
