package faultline

import (
	"time"

	"github.com/google/uuid"
)

// ExportRecord is the flat, serialization-friendly form of one ErrorLog.
// Timestamps are RFC 3339 strings so records survive any encoder without
// timezone or precision surprises.
type ExportRecord struct {
	ID          uint64                 `json:"id" msgpack:"id"`
	TemplateKey string                 `json:"template_key,omitempty" msgpack:"template_key,omitempty"`
	Message     string                 `json:"message" msgpack:"message"`
	Severity    string                 `json:"severity" msgpack:"severity"`
	Category    string                 `json:"category" msgpack:"category"`
	Timestamp   string                 `json:"timestamp" msgpack:"timestamp"`
	Context     map[string]interface{} `json:"context,omitempty" msgpack:"context,omitempty"`
	Resolved    bool                   `json:"resolved" msgpack:"resolved"`
	Resolution  *ExportResolution      `json:"resolution" msgpack:"resolution"`
}

// ExportResolution is the flat form of a Resolution.
type ExportResolution struct {
	SuggestionID string `json:"suggestion_id,omitempty" msgpack:"suggestion_id,omitempty"`
	Timestamp    string `json:"timestamp" msgpack:"timestamp"`
}

// Snapshot is an export envelope: the records plus enough identity to tell
// exports from coexisting System instances (and repeated exports from one
// instance) apart.
type Snapshot struct {
	SnapshotID string         `json:"snapshot_id" msgpack:"snapshot_id"`
	SessionID  string         `json:"session_id" msgpack:"session_id"`
	CreatedAt  string         `json:"created_at" msgpack:"created_at"`
	Records    []ExportRecord `json:"records" msgpack:"records"`
}

// ExportFilter selects which logs an export includes. A nil filter
// includes everything.
type ExportFilter func(ErrorLog) bool

// Export returns a serializable snapshot of the (optionally filtered)
// history in insertion order. The result is fully detached from the live
// store; mutating it has no effect on engine state.
func (s *System) Export(filter ExportFilter) []ExportRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]ExportRecord, 0, len(s.history))
	for _, log := range s.history {
		if filter != nil && !filter(*log.clone()) {
			continue
		}
		records = append(records, exportRecord(log))
	}
	return records
}

// ExportSnapshot wraps Export in a Snapshot envelope stamped with a fresh
// snapshot id, this System's session id, and the creation time.
func (s *System) ExportSnapshot(filter ExportFilter) Snapshot {
	return Snapshot{
		SnapshotID: uuid.NewString(),
		SessionID:  s.sessionID,
		CreatedAt:  s.clock().UTC().Format(time.RFC3339Nano),
		Records:    s.Export(filter),
	}
}

// RecordOf flattens a single log into its export form. Export uses it for
// every history entry; outbound adapters use it to serialize event
// snapshots the same way.
func RecordOf(log ErrorLog) ExportRecord {
	return exportRecord(&log)
}

func exportRecord(log *ErrorLog) ExportRecord {
	rec := ExportRecord{
		ID:          log.ID,
		TemplateKey: log.TemplateKey,
		Message:     log.Message,
		Severity:    log.Severity.String(),
		Category:    string(log.Category),
		Timestamp:   log.Timestamp.UTC().Format(time.RFC3339Nano),
		Context:     cloneContext(log.Context),
		Resolved:    log.Resolved,
	}
	if log.Resolution != nil {
		rec.Resolution = &ExportResolution{
			SuggestionID: log.Resolution.SuggestionID,
			Timestamp:    log.Resolution.Timestamp.UTC().Format(time.RFC3339Nano),
		}
	}
	return rec
}
