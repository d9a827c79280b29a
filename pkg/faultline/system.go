package faultline

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultCapacity is the history capacity used when WithCapacity is not
// supplied.
const DefaultCapacity = 100

// Handler is a per-template-key side effect invoked synchronously each
// time a log is recorded for that key. Handlers run on the logging
// goroutine without the engine lock held. A handler error or panic never
// prevents the log from being recorded or the error_logged event from
// firing; it is absorbed and recorded as a new system/critical ad-hoc
// error instead.
type Handler func(log ErrorLog) error

// RecoveryCallback receives the Action of the suggestion being applied by
// ApplyRecovery. It is invoked with the engine lock held so a concurrent
// Clear cannot race an in-progress resolution; it must therefore be fast
// and must not call back into the same System (reentrant calls deadlock).
type RecoveryCallback func(action string) error

// System is the error management orchestrator. It owns the bounded
// history store, the template registry, the listener set, and the per-key
// handler set. All methods are safe for concurrent use; a single
// instance-scoped lock serializes every mutation so the capacity,
// id-monotonicity, and delivery invariants hold across the whole
// structure.
type System struct {
	mu sync.RWMutex

	sessionID string
	capacity  int
	clock     func() time.Time
	diag      logrus.FieldLogger

	nextID  uint64
	history []*ErrorLog
	index   map[uint64]*ErrorLog

	templates map[string]Template
	handlers  map[string]Handler
	listeners map[EventType][]Listener
}

type config struct {
	capacity int
	builtins bool
	clock    func() time.Time
	diag     logrus.FieldLogger
}

// Option is a functional option for configuring a System.
type Option func(*config) error

// WithCapacity sets the history capacity (default DefaultCapacity). When
// the history is full the oldest entry is evicted to make room.
func WithCapacity(n int) Option {
	return func(c *config) error {
		if n <= 0 {
			return &ConfigError{Field: "capacity", Value: n, Msg: "capacity must be positive"}
		}
		c.capacity = n
		return nil
	}
}

// WithoutBuiltins skips seeding the built-in template catalogue.
func WithoutBuiltins() Option {
	return func(c *config) error {
		c.builtins = false
		return nil
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(c *config) error {
		if now == nil {
			return &ConfigError{Field: "clock", Value: nil, Msg: "clock cannot be nil"}
		}
		c.clock = now
		return nil
	}
}

// WithDiagnostics attaches a logger for the engine's own diagnostics
// (evictions, handler failures, callback failures). The engine stays
// silent without one.
func WithDiagnostics(logger logrus.FieldLogger) Option {
	return func(c *config) error {
		c.diag = logger
		return nil
	}
}

// New creates a System with the built-in templates seeded and an empty
// history.
func New(options ...Option) (*System, error) {
	cfg := &config{
		capacity: DefaultCapacity,
		builtins: true,
		clock:    time.Now,
	}
	for _, opt := range options {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	s := &System{
		sessionID: uuid.NewString(),
		capacity:  cfg.capacity,
		clock:     cfg.clock,
		diag:      cfg.diag,
		index:     make(map[uint64]*ErrorLog),
		templates: make(map[string]Template),
		handlers:  make(map[string]Handler),
		listeners: make(map[EventType][]Listener),
	}
	if cfg.builtins {
		for key, tpl := range builtinTemplates() {
			tpl.Suggestions = normalizeSuggestions(tpl.Suggestions)
			s.templates[key] = tpl
		}
	}
	return s, nil
}

// SessionID returns the unique id of this System instance. It is stamped
// on export snapshots so data from coexisting instances can be told
// apart.
func (s *System) SessionID() string {
	return s.sessionID
}

// Capacity returns the configured history capacity.
func (s *System) Capacity() int {
	return s.capacity
}

// RegisterHandler installs a per-key handler invoked for every log
// recorded under key. At most one handler per key; re-registering
// overwrites. A nil handler removes the registration.
func (s *System) RegisterHandler(key string, h Handler) error {
	if key == "" {
		return &ConfigError{Field: "key", Value: key, Msg: "handler key cannot be empty"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if h == nil {
		delete(s.handlers, key)
		return nil
	}
	s.handlers[key] = h
	return nil
}

// debugf emits an engine diagnostic when a diagnostics logger is set.
func (s *System) debugf(fields logrus.Fields, format string, args ...interface{}) {
	if s.diag != nil {
		s.diag.WithFields(fields).Debugf(format, args...)
	}
}

// warnf emits an engine warning when a diagnostics logger is set.
func (s *System) warnf(fields logrus.Fields, format string, args ...interface{}) {
	if s.diag != nil {
		s.diag.WithFields(fields).Warnf(format, args...)
	}
}
