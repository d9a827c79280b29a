package faultline

import (
	"testing"
	"time"
)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestExportRecordShape(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	sys := newTestSystem(t, WithClock(fixedClock(at)))
	id, err := sys.LogError(TemplateFileSaveFailed, map[string]interface{}{"path": "/x"})
	if err != nil {
		t.Fatal(err)
	}

	records := sys.Export(nil)
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	rec := records[0]
	if rec.ID != id {
		t.Errorf("id = %d, want %d", rec.ID, id)
	}
	if rec.TemplateKey != TemplateFileSaveFailed {
		t.Errorf("template_key = %q", rec.TemplateKey)
	}
	if rec.Severity != "error" || rec.Category != "file" {
		t.Errorf("severity/category = %q/%q", rec.Severity, rec.Category)
	}
	if rec.Timestamp != at.Format(time.RFC3339Nano) {
		t.Errorf("timestamp = %q, want RFC3339 %q", rec.Timestamp, at.Format(time.RFC3339Nano))
	}
	if rec.Resolved || rec.Resolution != nil {
		t.Errorf("unresolved record must have resolution null: %+v", rec.Resolution)
	}

	if _, err := sys.ApplyRecovery(id, "retry_save", nil); err != nil {
		t.Fatal(err)
	}
	rec = sys.Export(nil)[0]
	if !rec.Resolved || rec.Resolution == nil || rec.Resolution.SuggestionID != "retry_save" {
		t.Errorf("resolved record = %+v", rec)
	}
}

func TestExportIsDetached(t *testing.T) {
	sys := newTestSystem(t)
	sys.LogAdHoc("msg", SeverityError, CategoryUnknown, map[string]interface{}{"k": "v"}, nil)

	records := sys.Export(nil)
	records[0].Message = "tampered"
	records[0].Context["k"] = "tampered"

	fresh := sys.Export(nil)
	if fresh[0].Message != "msg" || fresh[0].Context["k"] != "v" {
		t.Errorf("mutating an export affected engine state: %+v", fresh[0])
	}
}

func TestExportFilter(t *testing.T) {
	sys := newTestSystem(t)
	sys.LogAdHoc("keep", SeverityCritical, CategorySystem, nil, nil)
	sys.LogAdHoc("drop", SeverityInfo, CategoryUnknown, nil, nil)

	records := sys.Export(func(l ErrorLog) bool { return l.Severity == SeverityCritical })
	if len(records) != 1 || records[0].Message != "keep" {
		t.Errorf("filtered export = %+v", records)
	}
}

func TestExportInsertionOrder(t *testing.T) {
	sys := newTestSystem(t)
	sys.LogAdHoc("first", SeverityError, CategoryUnknown, nil, nil)
	sys.LogAdHoc("second", SeverityError, CategoryUnknown, nil, nil)

	records := sys.Export(nil)
	if len(records) != 2 || records[0].Message != "first" || records[1].Message != "second" {
		t.Errorf("export order = %+v, want insertion order", records)
	}
}

func TestExportSnapshotEnvelope(t *testing.T) {
	sys := newTestSystem(t)
	sys.LogAdHoc("msg", SeverityError, CategoryUnknown, nil, nil)

	snap := sys.ExportSnapshot(nil)
	if snap.SessionID != sys.SessionID() {
		t.Errorf("session id = %q, want %q", snap.SessionID, sys.SessionID())
	}
	if snap.SnapshotID == "" || snap.CreatedAt == "" {
		t.Errorf("snapshot missing identity: %+v", snap)
	}
	if len(snap.Records) != 1 {
		t.Errorf("records = %d, want 1", len(snap.Records))
	}

	again := sys.ExportSnapshot(nil)
	if again.SnapshotID == snap.SnapshotID {
		t.Error("snapshot ids must differ between exports")
	}
}
