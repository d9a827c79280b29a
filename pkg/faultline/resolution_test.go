package faultline

import (
	"errors"
	"fmt"
	"testing"
)

func TestApplyRecoverySuccess(t *testing.T) {
	sys := newTestSystem(t)
	id, err := sys.LogError(TemplateFileSaveFailed, map[string]interface{}{"path": "/x"})
	if err != nil {
		t.Fatal(err)
	}

	var gotAction string
	resolved, err := sys.ApplyRecovery(id, "retry_save", func(action string) error {
		gotAction = action
		return nil
	})
	if err != nil {
		t.Fatalf("ApplyRecovery: %v", err)
	}
	if !resolved {
		t.Fatal("expected resolved=true")
	}
	if gotAction != "retry_save" {
		t.Errorf("callback action = %q, want retry_save", gotAction)
	}

	logs := sys.History(1)
	if !logs[0].Resolved {
		t.Error("log not marked resolved")
	}
	if logs[0].Resolution == nil || logs[0].Resolution.SuggestionID != "retry_save" {
		t.Errorf("resolution metadata = %+v", logs[0].Resolution)
	}
}

func TestApplyRecoveryWithoutCallback(t *testing.T) {
	sys := newTestSystem(t)
	id, err := sys.LogError(TemplateFileSaveFailed, map[string]interface{}{"path": "/x"})
	if err != nil {
		t.Fatal(err)
	}
	resolved, err := sys.ApplyRecovery(id, "save_elsewhere", nil)
	if err != nil || !resolved {
		t.Fatalf("ApplyRecovery without callback: resolved=%v err=%v", resolved, err)
	}
}

func TestApplyRecoveryInvalidIDs(t *testing.T) {
	sys := newTestSystem(t)
	id, err := sys.LogError(TemplateFileSaveFailed, map[string]interface{}{"path": "/x"})
	if err != nil {
		t.Fatal(err)
	}

	_, err = sys.ApplyRecovery(99999, "retry_save", nil)
	var unknownErr *UnknownErrorError
	if !errors.As(err, &unknownErr) {
		t.Errorf("expected *UnknownErrorError, got %T (%v)", err, err)
	}

	_, err = sys.ApplyRecovery(id, "no_such_suggestion", nil)
	var unknownSug *UnknownSuggestionError
	if !errors.As(err, &unknownSug) {
		t.Errorf("expected *UnknownSuggestionError, got %T (%v)", err, err)
	}
	if unknownSug != nil && (unknownSug.ErrorID != id || unknownSug.SuggestionID != "no_such_suggestion") {
		t.Errorf("suggestion error fields = %+v", unknownSug)
	}
}

func TestResolutionIsOneShot(t *testing.T) {
	sys := newTestSystem(t)
	id, err := sys.LogError(TemplateFileSaveFailed, map[string]interface{}{"path": "/x"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sys.ApplyRecovery(id, "retry_save", nil); err != nil {
		t.Fatal(err)
	}

	_, err = sys.ApplyRecovery(id, "retry_save", nil)
	var arErr *AlreadyResolvedError
	if !errors.As(err, &arErr) {
		t.Fatalf("second ApplyRecovery: expected *AlreadyResolvedError, got %T (%v)", err, err)
	}
	err = sys.MarkResolved(id)
	if !errors.As(err, &arErr) {
		t.Fatalf("MarkResolved after resolve: expected *AlreadyResolvedError, got %T (%v)", err, err)
	}
}

func TestFailingCallbackLeavesUnresolved(t *testing.T) {
	tests := []struct {
		name     string
		callback RecoveryCallback
	}{
		{
			name:     "error",
			callback: func(string) error { return fmt.Errorf("disk still full") },
		},
		{
			name:     "panic",
			callback: func(string) error { panic("disk still full") },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := newTestSystem(t)
			id, err := sys.LogError(TemplateFileSaveFailed, map[string]interface{}{"path": "/x"})
			if err != nil {
				t.Fatal(err)
			}
			before := sys.Stats().Total

			resolved, err := sys.ApplyRecovery(id, "retry_save", tt.callback)
			if err != nil {
				t.Fatalf("callback failure must not surface: %v", err)
			}
			if resolved {
				t.Fatal("log must stay unresolved after callback failure")
			}

			logs := sys.History(0)
			for _, log := range logs {
				if log.ID == id && log.Resolved {
					t.Error("original log resolved despite callback failure")
				}
			}
			stats := sys.Stats()
			if stats.Total != before+1 {
				t.Errorf("total = %d, want %d (one internal failure record)", stats.Total, before+1)
			}
			failure := sys.History(1)[0]
			if failure.Category != CategorySystem {
				t.Errorf("failure record category = %v, want system", failure.Category)
			}
		})
	}
}

func TestMarkResolved(t *testing.T) {
	sys := newTestSystem(t)
	id := sys.LogAdHoc("manual fix", SeverityError, CategoryUnknown, nil, nil)
	if err := sys.MarkResolved(id); err != nil {
		t.Fatal(err)
	}

	logs := sys.History(1)
	if !logs[0].Resolved {
		t.Error("log not resolved")
	}
	if logs[0].Resolution == nil || logs[0].Resolution.SuggestionID != "" {
		t.Errorf("manual resolution must carry no suggestion id: %+v", logs[0].Resolution)
	}

	err := sys.MarkResolved(99999)
	var unknownErr *UnknownErrorError
	if !errors.As(err, &unknownErr) {
		t.Errorf("expected *UnknownErrorError, got %T", err)
	}
}

func TestResolvedCountNeverDecreasesExceptClear(t *testing.T) {
	sys := newTestSystem(t)
	ids := make([]uint64, 0, 3)
	for i := 0; i < 3; i++ {
		ids = append(ids, sys.LogAdHoc("e", SeverityError, CategoryUnknown, nil, nil))
	}
	for _, id := range ids[:2] {
		if err := sys.MarkResolved(id); err != nil {
			t.Fatal(err)
		}
	}
	if got := sys.Stats().Resolved; got != 2 {
		t.Fatalf("resolved = %d, want 2", got)
	}
	sys.LogAdHoc("later", SeverityError, CategoryUnknown, nil, nil)
	if got := sys.Stats().Resolved; got != 2 {
		t.Errorf("resolved dropped to %d after unrelated logging", got)
	}
	sys.Clear()
	if got := sys.Stats().Resolved; got != 0 {
		t.Errorf("resolved = %d after Clear, want 0", got)
	}
}
