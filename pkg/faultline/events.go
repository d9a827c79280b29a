package faultline

import "time"

// EventType names a state-changing event emitted by a System.
type EventType string

const (
	// EventErrorLogged fires after a new log is appended to history
	EventErrorLogged EventType = "error_logged"
	// EventErrorResolved fires after a log transitions to resolved
	EventErrorResolved EventType = "error_resolved"
	// EventRecoveryApplied fires after a suggestion is applied, before
	// the matching error_resolved
	EventRecoveryApplied EventType = "recovery_applied"
	// EventErrorsCleared fires after Clear empties the history
	EventErrorsCleared EventType = "errors_cleared"
)

// EventTypes lists all event types a listener can subscribe to.
func EventTypes() []EventType {
	return []EventType{
		EventErrorLogged,
		EventErrorResolved,
		EventRecoveryApplied,
		EventErrorsCleared,
	}
}

// Valid reports whether t is a defined event type.
func (t EventType) Valid() bool {
	switch t {
	case EventErrorLogged, EventErrorResolved, EventRecoveryApplied, EventErrorsCleared:
		return true
	}
	return false
}

// Event is the payload delivered to listeners. Log is a snapshot copy of
// the affected entry and is nil for errors_cleared; listeners must treat
// it as read-only since the same snapshot is shared across the listeners
// of one delivery.
type Event struct {
	Type EventType
	Log  *ErrorLog
	Time time.Time
}

// Listener receives events synchronously, in registration order, on the
// goroutine that triggered the mutation. The engine lock is not held
// during delivery. Listeners are required to be panic-free: a panicking
// listener is a caller bug and the panic propagates to the caller of the
// triggering operation.
//
// Listeners are deduplicated and removed by interface identity (==), so
// implementations should be pointers. Use ListenerFromFunc to adapt a
// plain function and keep the returned handle for removal.
type Listener interface {
	HandleEvent(Event)
}

type funcListener struct {
	fn func(Event)
}

func (l *funcListener) HandleEvent(e Event) { l.fn(e) }

// ListenerFromFunc adapts fn into a Listener. Each call returns a distinct
// identity; retain the result to remove it later.
func ListenerFromFunc(fn func(Event)) Listener {
	return &funcListener{fn: fn}
}

// AddListener subscribes l to events of type t. Adding the same listener
// twice for the same type is a no-op, guaranteeing at-most-once delivery
// per event per listener.
func (s *System) AddListener(t EventType, l Listener) error {
	if !t.Valid() {
		return &ConfigError{Field: "event_type", Value: t, Msg: "unknown event type"}
	}
	if l == nil {
		return &ConfigError{Field: "listener", Value: nil, Msg: "listener cannot be nil"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.listeners[t] {
		if existing == l {
			return nil
		}
	}
	s.listeners[t] = append(s.listeners[t], l)
	return nil
}

// RemoveListener unsubscribes l from events of type t. Removing a listener
// that was never added is a no-op.
func (s *System) RemoveListener(t EventType, l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current := s.listeners[t]
	for i, existing := range current {
		if existing == l {
			s.listeners[t] = append(current[:i:i], current[i+1:]...)
			return
		}
	}
}

// dispatch delivers an event to the listeners registered for its type.
// The listener list is snapshotted under the read lock and delivery
// happens outside it, so a listener may safely call back into the System.
func (s *System) dispatch(t EventType, log *ErrorLog) {
	s.mu.RLock()
	listeners := make([]Listener, len(s.listeners[t]))
	copy(listeners, s.listeners[t])
	now := s.clock()
	s.mu.RUnlock()

	if len(listeners) == 0 {
		return
	}
	ev := Event{Type: t, Log: log, Time: now}
	for _, l := range listeners {
		l.HandleEvent(ev)
	}
}
