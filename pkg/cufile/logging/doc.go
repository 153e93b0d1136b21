// Package logging provides a minimal logging facade for the cufile wrapper.
//
// The Logger interface wraps a context-aware subset of log/slog so callers can
// plug in their own implementation. Two adapters ship with the package:
//
//	logger := logging.New(nil)              // slog.Default()
//	logger := logging.NewZap(zap.Must(...)) // go.uber.org/zap
//
// Pass the result to cufile.NewSubsystem with cufile.WithLogger. Handle
// lifecycle events (initialization, leaked handles released by the
// finalizer, failed native destroys) are reported through it.
package logging
