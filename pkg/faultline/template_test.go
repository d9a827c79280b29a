package faultline

import (
	"errors"
	"testing"
)

func TestRenderPattern(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		ctx     map[string]interface{}
		want    string
	}{
		{
			name:    "single field",
			pattern: "Failed to save file {path}",
			ctx:     map[string]interface{}{"path": "/x"},
			want:    "Failed to save file /x",
		},
		{
			name:    "multiple fields",
			pattern: "Operation {operation} timed out after {timeout}",
			ctx:     map[string]interface{}{"operation": "export", "timeout": "5s"},
			want:    "Operation export timed out after 5s",
		},
		{
			name:    "missing field renders marker",
			pattern: "Component {name} already exists",
			ctx:     map[string]interface{}{},
			want:    "Component <missing:name> already exists",
		},
		{
			name:    "nil context renders marker",
			pattern: "Invalid component name: {name}",
			ctx:     nil,
			want:    "Invalid component name: <missing:name>",
		},
		{
			name:    "non-string value",
			pattern: "retry {count}",
			ctx:     map[string]interface{}{"count": 3},
			want:    "retry 3",
		},
		{
			name:    "no placeholders",
			pattern: "plain message",
			ctx:     map[string]interface{}{"unused": "x"},
			want:    "plain message",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderPattern(tt.pattern, tt.ctx); got != tt.want {
				t.Errorf("renderPattern(%q) = %q, want %q", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestRegisterTemplateEmptyKey(t *testing.T) {
	sys := newTestSystem(t)
	err := sys.RegisterTemplate("", Template{Pattern: "x"})
	if err == nil {
		t.Fatal("expected error for empty key")
	}
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %T", err)
	}
}

func TestRegisterTemplateLastWriteWins(t *testing.T) {
	sys := newTestSystem(t)
	if err := sys.RegisterTemplate("k", Template{Pattern: "first", Severity: SeverityWarning}); err != nil {
		t.Fatal(err)
	}
	if err := sys.RegisterTemplate("k", Template{Pattern: "second", Severity: SeverityCritical}); err != nil {
		t.Fatal(err)
	}
	tpl, ok := sys.Template("k")
	if !ok {
		t.Fatal("template missing after re-registration")
	}
	if tpl.Pattern != "second" || tpl.Severity != SeverityCritical {
		t.Errorf("re-registration did not overwrite: %+v", tpl)
	}
}

func TestRegisterTemplateDefaults(t *testing.T) {
	sys := newTestSystem(t)
	if err := sys.RegisterTemplate("bare", Template{Pattern: "x"}); err != nil {
		t.Fatal(err)
	}
	tpl, _ := sys.Template("bare")
	if tpl.Severity != SeverityError {
		t.Errorf("default severity = %v, want %v", tpl.Severity, SeverityError)
	}
	if tpl.Category != CategoryUnknown {
		t.Errorf("default category = %v, want %v", tpl.Category, CategoryUnknown)
	}
}

func TestBuiltinTemplatesSeeded(t *testing.T) {
	sys := newTestSystem(t)
	builtins := []string{
		TemplateInvalidComponentName,
		TemplateDuplicateComponent,
		TemplateInvalidTemplate,
		TemplateFileSaveFailed,
		TemplateOperationTimeout,
	}
	for _, key := range builtins {
		tpl, ok := sys.Template(key)
		if !ok {
			t.Errorf("builtin %q not seeded", key)
			continue
		}
		if n := len(tpl.Suggestions); n < 1 || n > 3 {
			t.Errorf("builtin %q has %d suggestions, want 1-3", key, n)
		}
	}
}

func TestWithoutBuiltins(t *testing.T) {
	sys, err := New(WithoutBuiltins())
	if err != nil {
		t.Fatal(err)
	}
	if keys := sys.TemplateKeys(); len(keys) != 0 {
		t.Errorf("expected empty registry, got %v", keys)
	}
}

func TestTemplateSuggestionsSorted(t *testing.T) {
	sys := newTestSystem(t)
	err := sys.RegisterTemplate("sorted", Template{
		Pattern: "x",
		Suggestions: []RecoverySuggestion{
			{ID: "c", Title: "c", Priority: 3},
			{ID: "a", Title: "a", Priority: 1},
			{ID: "b", Title: "b", Priority: 2},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	tpl, _ := sys.Template("sorted")
	for i, want := range []string{"a", "b", "c"} {
		if tpl.Suggestions[i].ID != want {
			t.Errorf("suggestion %d = %q, want %q", i, tpl.Suggestions[i].ID, want)
		}
	}
}
