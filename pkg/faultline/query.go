package faultline

// History returns logs most-recent-first. A positive limit caps the
// result; limit <= 0 returns the full history. The returned logs are
// copies, detached from engine state.
func (s *System) History(limit int) []ErrorLog {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.history)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]ErrorLog, 0, n)
	for i := len(s.history) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, *s.history[i].clone())
	}
	return out
}

// Unresolved returns all unresolved logs, most-recent-first.
func (s *System) Unresolved() []ErrorLog {
	return s.filter(func(l *ErrorLog) bool { return !l.Resolved })
}

// BySeverity returns all logs of the given severity, most-recent-first.
func (s *System) BySeverity(sev Severity) []ErrorLog {
	return s.filter(func(l *ErrorLog) bool { return l.Severity == sev })
}

// ByCategory returns all logs of the given category, most-recent-first.
func (s *System) ByCategory(cat Category) []ErrorLog {
	return s.filter(func(l *ErrorLog) bool { return l.Category == cat })
}

// Current returns a copy of the most recently logged unresolved entry, or
// nil when every entry is resolved or the history is empty.
func (s *System) Current() *ErrorLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := len(s.history) - 1; i >= 0; i-- {
		if !s.history[i].Resolved {
			return s.history[i].clone()
		}
	}
	return nil
}

// Suggestions returns the recovery suggestions attached to the addressed
// log, priority-sorted (ascending, ties in registration order). Returns
// an UnknownErrorError if errorID is not in history.
func (s *System) Suggestions(errorID uint64) ([]RecoverySuggestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	log, ok := s.index[errorID]
	if !ok {
		return nil, &UnknownErrorError{ID: errorID}
	}
	// Already sorted at construction; normalize re-asserts the order and
	// copies.
	return normalizeSuggestions(log.Suggestions), nil
}

func (s *System) filter(keep func(*ErrorLog) bool) []ErrorLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []ErrorLog
	for i := len(s.history) - 1; i >= 0; i-- {
		if keep(s.history[i]) {
			out = append(out, *s.history[i].clone())
		}
	}
	return out
}
