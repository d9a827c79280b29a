package faultline

import (
	"fmt"
	"sort"
	"time"
)

// RecoverySuggestion is one ranked remediation option attached to an
// ErrorLog. Lower Priority values rank first; ties keep registration
// order. Automatic marks suggestions the UI may apply without further
// confirmation. It is advisory metadata only; the engine never applies a
// suggestion on its own.
type RecoverySuggestion struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	// Action is an opaque reference resolved by the caller's recovery
	// callback; the engine never interprets it.
	Action    string `json:"action,omitempty"`
	Priority  int    `json:"priority"`
	Automatic bool   `json:"automatic"`
}

// Resolution records which suggestion resolved an ErrorLog and when. An
// empty SuggestionID means the log was resolved manually via MarkResolved.
type Resolution struct {
	SuggestionID string    `json:"suggestion_id,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// ErrorLog is one recorded error occurrence. Logs are created exclusively
// by System.LogError and System.LogAdHoc and owned by the System's history
// store; callers always receive copies, so mutating a returned ErrorLog
// has no effect on engine state.
type ErrorLog struct {
	// ID is globally unique within the System and strictly increasing,
	// never reused, even across Clear.
	ID          uint64                 `json:"id"`
	TemplateKey string                 `json:"template_key,omitempty"`
	Message     string                 `json:"message"`
	Severity    Severity               `json:"severity"`
	Category    Category               `json:"category"`
	Timestamp   time.Time              `json:"timestamp"`
	Context     map[string]interface{} `json:"context,omitempty"`
	Suggestions []RecoverySuggestion   `json:"suggestions,omitempty"`
	Resolved    bool                   `json:"resolved"`
	Resolution  *Resolution            `json:"resolution,omitempty"`
}

// clone returns a deep copy safe to hand outside the lock.
func (l *ErrorLog) clone() *ErrorLog {
	c := *l
	if l.Context != nil {
		c.Context = make(map[string]interface{}, len(l.Context))
		for k, v := range l.Context {
			c.Context[k] = v
		}
	}
	if l.Suggestions != nil {
		c.Suggestions = make([]RecoverySuggestion, len(l.Suggestions))
		copy(c.Suggestions, l.Suggestions)
	}
	if l.Resolution != nil {
		r := *l.Resolution
		c.Resolution = &r
	}
	return &c
}

// normalizeSuggestions copies, id-fills, and priority-sorts a suggestion
// list. Suggestions with an empty or duplicate ID get a positional one so
// the per-log uniqueness invariant always holds. The sort is stable, so
// equal priorities keep their registration order.
func normalizeSuggestions(in []RecoverySuggestion) []RecoverySuggestion {
	if len(in) == 0 {
		return nil
	}
	out := make([]RecoverySuggestion, len(in))
	copy(out, in)

	seen := make(map[string]bool, len(out))
	for i := range out {
		if out[i].ID == "" || seen[out[i].ID] {
			out[i].ID = fmt.Sprintf("suggestion-%d", i+1)
		}
		seen[out[i].ID] = true
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority < out[j].Priority
	})
	return out
}

// cloneContext copies a caller-supplied context map so the stored log is
// immune to later mutation by the caller.
func cloneContext(ctx map[string]interface{}) map[string]interface{} {
	if ctx == nil {
		return nil
	}
	c := make(map[string]interface{}, len(ctx))
	for k, v := range ctx {
		c[k] = v
	}
	return c
}
