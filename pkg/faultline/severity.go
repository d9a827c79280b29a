package faultline

import (
	"fmt"
	"strings"
)

// Severity classifies how serious an error occurrence is. Severities are
// ordered: Info < Warning < Error < Critical. The zero value is
// unspecified and is treated as SeverityError by LogAdHoc.
type Severity int

const (
	// SeverityUnspecified is the zero value; logging paths substitute
	// SeverityError for it.
	SeverityUnspecified Severity = iota

	// SeverityInfo for informational notices
	SeverityInfo

	// SeverityWarning for conditions that degrade but do not block
	SeverityWarning

	// SeverityError for failures of a requested operation
	SeverityError

	// SeverityCritical for failures that threaten the whole application
	SeverityCritical
)

// String returns the lowercase name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unspecified"
	}
}

// Valid reports whether s is one of the four defined severities.
func (s Severity) Valid() bool {
	return s >= SeverityInfo && s <= SeverityCritical
}

// ParseSeverity converts a string (case-insensitive) to a Severity.
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "info":
		return SeverityInfo, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	case "critical":
		return SeverityCritical, nil
	default:
		return SeverityUnspecified, fmt.Errorf("unknown severity %q", name)
	}
}

// MarshalText implements encoding.TextMarshaler so severities serialize as
// their names, including as map keys.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	sev, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = sev
	return nil
}

// Category classifies the functional area an error belongs to. Categories
// are unordered; CategoryUnknown is the default when none is supplied.
type Category string

const (
	// CategoryValidation for rejected user or host input
	CategoryValidation Category = "validation"
	// CategoryComponent for component lifecycle failures
	CategoryComponent Category = "component"
	// CategoryTemplate for template definition or rendering failures
	CategoryTemplate Category = "template"
	// CategoryFile for filesystem failures
	CategoryFile Category = "file"
	// CategoryOperation for failed or timed-out operations
	CategoryOperation Category = "operation"
	// CategorySystem for internal failures of the host or of this engine
	CategorySystem Category = "system"
	// CategoryUnknown when no category applies or none was supplied
	CategoryUnknown Category = "unknown"
)

// Categories lists all defined categories.
func Categories() []Category {
	return []Category{
		CategoryValidation,
		CategoryComponent,
		CategoryTemplate,
		CategoryFile,
		CategoryOperation,
		CategorySystem,
		CategoryUnknown,
	}
}

// Valid reports whether c is one of the defined categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryValidation, CategoryComponent, CategoryTemplate,
		CategoryFile, CategoryOperation, CategorySystem, CategoryUnknown:
		return true
	}
	return false
}

// ParseCategory converts a string (case-insensitive) to a Category.
func ParseCategory(name string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(name)))
	if !c.Valid() {
		return CategoryUnknown, fmt.Errorf("unknown category %q", name)
	}
	return c, nil
}
