package faultline

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// LogError records an error from the registered template key,
// interpolating ctx into the template's message pattern. It returns the
// new log's id, or an UnknownTemplateError if key is not registered.
//
// Insertion evicts the oldest history entry when the store is at
// capacity, then invokes the per-key handler (if any) and fires
// error_logged to all listeners.
func (s *System) LogError(key string, ctx map[string]interface{}) (uint64, error) {
	s.mu.Lock()
	tpl, ok := s.templates[key]
	if !ok {
		s.mu.Unlock()
		return 0, &UnknownTemplateError{Key: key}
	}
	log := s.newLogLocked(key, renderPattern(tpl.Pattern, ctx), tpl.Severity, tpl.Category, ctx, tpl.Suggestions)
	s.insertLocked(log)
	snap := log.clone()
	handler := s.handlers[key]
	s.mu.Unlock()

	if handler != nil {
		s.runHandler(key, handler, *snap)
	}
	s.dispatch(EventErrorLogged, snap)
	return snap.ID, nil
}

// LogAdHoc records an error without a template lookup. An unspecified
// severity defaults to SeverityError and an empty category to
// CategoryUnknown. Suggestions, if any, are normalized the same way
// template suggestions are. Returns the new log's id.
func (s *System) LogAdHoc(message string, severity Severity, category Category, ctx map[string]interface{}, suggestions []RecoverySuggestion) uint64 {
	if !severity.Valid() {
		severity = SeverityError
	}
	if category == "" || !category.Valid() {
		category = CategoryUnknown
	}

	s.mu.Lock()
	log := s.newLogLocked("", message, severity, category, ctx, suggestions)
	s.insertLocked(log)
	snap := log.clone()
	s.mu.Unlock()

	s.dispatch(EventErrorLogged, snap)
	return snap.ID
}

// newLogLocked assigns the next identity and builds the stored record.
// Caller holds the write lock.
func (s *System) newLogLocked(key, message string, severity Severity, category Category, ctx map[string]interface{}, suggestions []RecoverySuggestion) *ErrorLog {
	s.nextID++
	return &ErrorLog{
		ID:          s.nextID,
		TemplateKey: key,
		Message:     message,
		Severity:    severity,
		Category:    category,
		Timestamp:   s.clock(),
		Context:     cloneContext(ctx),
		Suggestions: normalizeSuggestions(suggestions),
	}
}

// insertLocked appends a log, evicting the oldest entry first when the
// history is at capacity. The evicted entry is always the lowest-id one;
// the newest is never dropped. Caller holds the write lock.
func (s *System) insertLocked(log *ErrorLog) {
	if len(s.history) >= s.capacity {
		evicted := s.history[0]
		s.history = s.history[1:]
		delete(s.index, evicted.ID)
		s.debugf(logrus.Fields{
			"evicted_id": evicted.ID,
			"new_id":     log.ID,
			"capacity":   s.capacity,
		}, "history at capacity, evicted oldest entry")
	}
	s.history = append(s.history, log)
	s.index[log.ID] = log
}

// runHandler invokes a per-key handler with panic and error isolation.
// The logging path must never fail to append, so a handler failure is
// recorded as a new system/critical ad-hoc error instead of propagating.
func (s *System) runHandler(key string, h Handler, log ErrorLog) {
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("handler panic: %v", r)
			}
		}()
		return h(log)
	}()
	if err == nil {
		return
	}
	s.warnf(logrus.Fields{
		"template_key": key,
		"error_id":     log.ID,
	}, "template handler failed: %v", err)
	s.LogAdHoc(
		fmt.Sprintf("error handler for %q failed: %v", key, err),
		SeverityCritical,
		CategorySystem,
		map[string]interface{}{
			"template_key": key,
			"error_id":     log.ID,
		},
		nil,
	)
}
