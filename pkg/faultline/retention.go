package faultline

import "time"

// Clear empties the history and fires errors_cleared. The identity
// counter is not reset: ids stay unique for the lifetime of the System.
func (s *System) Clear() {
	s.mu.Lock()
	s.history = nil
	s.index = make(map[uint64]*ErrorLog)
	s.mu.Unlock()

	s.dispatch(EventErrorsCleared, nil)
}

// ClearOld removes resolved entries whose timestamp is before cutoff and
// returns how many were removed. Unresolved entries are never age-evicted
// regardless of timestamp; only capacity eviction or Clear can remove an
// open entry.
func (s *System) ClearOld(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.history[:0]
	removed := 0
	for _, log := range s.history {
		if log.Resolved && log.Timestamp.Before(cutoff) {
			delete(s.index, log.ID)
			removed++
			continue
		}
		kept = append(kept, log)
	}
	s.history = kept
	return removed
}
