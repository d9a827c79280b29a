package faultline

import (
	"fmt"
	"regexp"
)

// Template is a reusable (message pattern, severity, category, suggestion
// set) preset for a class of errors. Patterns interpolate context fields
// with {field} placeholders; a placeholder whose field is absent from the
// context renders as an explicit <missing:field> marker rather than
// failing, so a malformed context never blocks error reporting.
type Template struct {
	Pattern     string
	Severity    Severity
	Category    Category
	Suggestions []RecoverySuggestion
}

var placeholderRe = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// renderPattern substitutes {field} placeholders with values from ctx.
func renderPattern(pattern string, ctx map[string]interface{}) string {
	return placeholderRe.ReplaceAllStringFunc(pattern, func(m string) string {
		field := m[1 : len(m)-1]
		if v, ok := ctx[field]; ok {
			return fmt.Sprintf("%v", v)
		}
		return "<missing:" + field + ">"
	})
}

// RegisterTemplate registers tpl under key, overwriting any existing entry
// (last write wins). The key must be non-empty; an unspecified severity
// defaults to SeverityError and an empty category to CategoryUnknown.
// Suggestions are normalized once at registration: copied, id-filled, and
// priority-sorted.
func (s *System) RegisterTemplate(key string, tpl Template) error {
	if key == "" {
		return &ConfigError{Field: "key", Value: key, Msg: "template key cannot be empty"}
	}
	if tpl.Severity == SeverityUnspecified {
		tpl.Severity = SeverityError
	}
	if tpl.Category == "" {
		tpl.Category = CategoryUnknown
	}
	tpl.Suggestions = normalizeSuggestions(tpl.Suggestions)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates[key] = tpl
	return nil
}

// Template returns the registered template for key.
func (s *System) Template(key string) (Template, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tpl, ok := s.templates[key]
	if ok {
		tpl.Suggestions = normalizeSuggestions(tpl.Suggestions)
	}
	return tpl, ok
}

// TemplateKeys returns the keys of all registered templates, in no
// particular order.
func (s *System) TemplateKeys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.templates))
	for k := range s.templates {
		keys = append(keys, k)
	}
	return keys
}

// Built-in template keys seeded at construction.
const (
	TemplateInvalidComponentName = "invalid_component_name"
	TemplateDuplicateComponent   = "duplicate_component"
	TemplateInvalidTemplate      = "invalid_template"
	TemplateFileSaveFailed       = "file_save_failed"
	TemplateOperationTimeout     = "operation_timeout"
)

// builtinTemplates returns the catalogue seeded into every new System
// unless WithoutBuiltins is set.
func builtinTemplates() map[string]Template {
	return map[string]Template{
		TemplateInvalidComponentName: {
			Pattern:  "Invalid component name: {name}",
			Severity: SeverityError,
			Category: CategoryValidation,
			Suggestions: []RecoverySuggestion{
				{
					ID:          "rename_component",
					Title:       "Rename the component",
					Description: "Choose a name using only letters, digits, and underscores.",
					Action:      "rename_component",
					Priority:    1,
				},
				{
					ID:          "use_sanitized_name",
					Title:       "Use the sanitized name",
					Description: "Accept an automatically cleaned-up version of the name.",
					Action:      "use_sanitized_name",
					Priority:    2,
					Automatic:   true,
				},
			},
		},
		TemplateDuplicateComponent: {
			Pattern:  "Component {name} already exists",
			Severity: SeverityError,
			Category: CategoryComponent,
			Suggestions: []RecoverySuggestion{
				{
					ID:          "rename_new_component",
					Title:       "Rename the new component",
					Description: "Keep both components by giving the new one a different name.",
					Action:      "rename_new_component",
					Priority:    1,
				},
				{
					ID:          "replace_existing",
					Title:       "Replace the existing component",
					Description: "Overwrite the existing component with the new definition.",
					Action:      "replace_existing",
					Priority:    2,
				},
			},
		},
		TemplateInvalidTemplate: {
			Pattern:  "Template {name} is invalid: {reason}",
			Severity: SeverityError,
			Category: CategoryTemplate,
			Suggestions: []RecoverySuggestion{
				{
					ID:          "revert_to_default",
					Title:       "Revert to the default template",
					Description: "Discard the broken definition and restore the built-in default.",
					Action:      "revert_to_default",
					Priority:    1,
					Automatic:   true,
				},
			},
		},
		TemplateFileSaveFailed: {
			Pattern:  "Failed to save file {path}",
			Severity: SeverityError,
			Category: CategoryFile,
			Suggestions: []RecoverySuggestion{
				{
					ID:          "retry_save",
					Title:       "Retry the save",
					Description: "Attempt to write the file again.",
					Action:      "retry_save",
					Priority:    1,
					Automatic:   true,
				},
				{
					ID:          "save_elsewhere",
					Title:       "Save to a different location",
					Description: "Pick another directory with write access.",
					Action:      "save_elsewhere",
					Priority:    2,
				},
				{
					ID:          "copy_to_clipboard",
					Title:       "Copy content to clipboard",
					Description: "Keep the unsaved content so it can be pasted elsewhere.",
					Action:      "copy_to_clipboard",
					Priority:    3,
				},
			},
		},
		TemplateOperationTimeout: {
			Pattern:  "Operation {operation} timed out after {timeout}",
			Severity: SeverityError,
			Category: CategoryOperation,
			Suggestions: []RecoverySuggestion{
				{
					ID:          "retry_operation",
					Title:       "Retry the operation",
					Description: "Run the operation again.",
					Action:      "retry_operation",
					Priority:    1,
					Automatic:   true,
				},
				{
					ID:          "increase_timeout",
					Title:       "Increase the timeout",
					Description: "Raise the operation timeout and retry.",
					Action:      "increase_timeout",
					Priority:    2,
				},
			},
		},
	}
}
