package cufile

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/rapidsai/cufile-go/pkg/cufile/logging"
	"github.com/rapidsai/cufile-go/pkg/cufile/metrics"
)

// Subsystem gates access to one native driver. Init runs before the first
// handle is built and, once it succeeds, never again. A failed Init leaves the
// gate closed so the next caller retries.
//
// Concurrent first callers share a single Init attempt and all wait for its
// outcome. After success EnsureInitialized is a single atomic load.
type Subsystem struct {
	driver  Driver
	cfg     Config
	logger  logging.Logger
	metrics *metrics.Metrics

	ready atomic.Bool
	group singleflight.Group

	mu   sync.Mutex
	live map[liveKey]struct{}
}

type liveKey struct {
	kind Kind
	id   Identifier
}

// Option configures a Subsystem.
type Option func(*Subsystem)

func WithLogger(l logging.Logger) Option {
	return func(s *Subsystem) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Subsystem) { s.metrics = m }
}

// WithConfig sets the defaults used by handle kinds, such as O_DIRECT and the
// creation mode for OpenFile.
func WithConfig(cfg Config) Option {
	return func(s *Subsystem) { s.cfg = cfg }
}

// NewSubsystem returns a gate around d. Most programs use Default instead;
// separate subsystems are useful for tests and alternate drivers.
func NewSubsystem(d Driver, opts ...Option) (*Subsystem, error) {
	if d == nil {
		return nil, ErrNilDriver
	}
	s := &Subsystem{
		driver: d,
		cfg:    DefaultConfig(),
		logger: logging.New(nil),
		live:   make(map[liveKey]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Driver returns the driver behind the gate.
func (s *Subsystem) Driver() Driver { return s.driver }

// Config returns the handle defaults.
func (s *Subsystem) Config() Config { return s.cfg }

// Initialized reports whether Init has completed successfully.
func (s *Subsystem) Initialized() bool { return s.ready.Load() }

// EnsureInitialized runs the driver's Init unless it already succeeded.
// Failures are returned as *InitializationError.
func (s *Subsystem) EnsureInitialized(ctx context.Context) error {
	if s == nil {
		return ErrNilSubsystem
	}
	if s.ready.Load() {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err, _ := s.group.Do("init", func() (any, error) {
		// A previous flight may have finished between the load above and Do.
		if s.ready.Load() {
			return nil, nil
		}
		s.logger.Debug(ctx, "initializing native subsystem")
		if err := s.driver.Init(); err != nil {
			s.metrics.InitAttempt(false)
			s.logger.Error(ctx, "native subsystem initialization failed", "error", err)
			return nil, &InitializationError{Cause: err}
		}
		s.ready.Store(true)
		s.metrics.InitAttempt(true)
		s.logger.Info(ctx, "native subsystem initialized")
		return nil, nil
	})
	return err
}

// Live returns the number of handles currently owned through s.
func (s *Subsystem) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.live)
}

func (s *Subsystem) claim(kind Kind, id Identifier) error {
	k := liveKey{kind: kind, id: id}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.live[k]; dup {
		return ErrIdentifierInUse
	}
	s.live[k] = struct{}{}
	return nil
}

func (s *Subsystem) unclaim(kind Kind, id Identifier) {
	s.mu.Lock()
	delete(s.live, liveKey{kind: kind, id: id})
	s.mu.Unlock()
}
