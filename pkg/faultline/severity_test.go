package faultline

import "testing"

func TestSeverityOrdering(t *testing.T) {
	if !(SeverityInfo < SeverityWarning && SeverityWarning < SeverityError && SeverityError < SeverityCritical) {
		t.Fatal("severities must be ordered Info < Warning < Error < Critical")
	}
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Severity
		wantErr bool
	}{
		{name: "info", input: "info", want: SeverityInfo},
		{name: "warning", input: "warning", want: SeverityWarning},
		{name: "warn alias", input: "warn", want: SeverityWarning},
		{name: "error", input: "error", want: SeverityError},
		{name: "critical", input: "critical", want: SeverityCritical},
		{name: "mixed case", input: "Critical", want: SeverityCritical},
		{name: "whitespace", input: " error ", want: SeverityError},
		{name: "unknown", input: "fatal", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSeverity(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseSeverity(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSeverity(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseSeverity(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSeverityTextRoundTrip(t *testing.T) {
	for _, sev := range []Severity{SeverityInfo, SeverityWarning, SeverityError, SeverityCritical} {
		text, err := sev.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", sev, err)
		}
		var back Severity
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if back != sev {
			t.Errorf("round trip %v -> %q -> %v", sev, text, back)
		}
	}
}

func TestSeverityValid(t *testing.T) {
	if SeverityUnspecified.Valid() {
		t.Error("unspecified severity must not be valid")
	}
	if !SeverityInfo.Valid() || !SeverityCritical.Valid() {
		t.Error("defined severities must be valid")
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input   string
		want    Category
		wantErr bool
	}{
		{input: "validation", want: CategoryValidation},
		{input: "Component", want: CategoryComponent},
		{input: "file", want: CategoryFile},
		{input: "unknown", want: CategoryUnknown},
		{input: "network", wantErr: true},
		{input: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseCategory(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseCategory(%q) expected error, got %v", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCategory(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCategory(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestCategoriesAllValid(t *testing.T) {
	for _, c := range Categories() {
		if !c.Valid() {
			t.Errorf("category %q reported invalid", c)
		}
	}
}
