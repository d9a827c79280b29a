package faultline

// Statistics is an aggregate snapshot of the current history. Breakdown
// maps only contain keys with non-zero counts.
type Statistics struct {
	Total      int              `json:"total"`
	Resolved   int              `json:"resolved"`
	Unresolved int              `json:"unresolved"`
	BySeverity map[Severity]int `json:"by_severity"`
	ByCategory map[Category]int `json:"by_category"`
}

// Stats computes statistics in a single pass over the current history. The
// result is never cached; it always reflects state at call time.
func (s *System) Stats() Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Statistics{
		BySeverity: make(map[Severity]int),
		ByCategory: make(map[Category]int),
	}
	for _, log := range s.history {
		stats.Total++
		if log.Resolved {
			stats.Resolved++
		} else {
			stats.Unresolved++
		}
		stats.BySeverity[log.Severity]++
		stats.ByCategory[log.Category]++
	}
	return stats
}
