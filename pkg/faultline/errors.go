package faultline

import "fmt"

// ErrorCode identifies the failure modes of the engine itself, as opposed
// to the host errors it records.
type ErrorCode int

const (
	// ErrCodeUnknown represents an unclassified engine failure
	ErrCodeUnknown ErrorCode = iota

	// ErrCodeUnknownTemplate for LogError with an unregistered key
	ErrCodeUnknownTemplate

	// ErrCodeUnknownError for a stale or invalid error log id
	ErrCodeUnknownError

	// ErrCodeUnknownSuggestion for a suggestion id absent from the log
	ErrCodeUnknownSuggestion

	// ErrCodeAlreadyResolved for a second resolution attempt
	ErrCodeAlreadyResolved

	// ErrCodeInvalidConfig for bad construction or registration input
	ErrCodeInvalidConfig
)

// coded is implemented by all engine error types.
type coded interface {
	code() ErrorCode
}

// CodeOf extracts the ErrorCode from an engine error, or ErrCodeUnknown if
// err did not originate here.
func CodeOf(err error) ErrorCode {
	if c, ok := err.(coded); ok {
		return c.code()
	}
	return ErrCodeUnknown
}

// UnknownTemplateError reports a LogError call with a template key that
// was never registered. The host must register the template or use
// LogAdHoc instead.
type UnknownTemplateError struct {
	Key string
}

func (e *UnknownTemplateError) Error() string {
	return fmt.Sprintf("template %q is not registered", e.Key)
}

func (e *UnknownTemplateError) code() ErrorCode { return ErrCodeUnknownTemplate }

// UnknownErrorError reports an error log id that does not exist in
// history, either because it was never issued or because the entry was
// evicted or cleared.
type UnknownErrorError struct {
	ID uint64
}

func (e *UnknownErrorError) Error() string {
	return fmt.Sprintf("error log %d not found in history", e.ID)
}

func (e *UnknownErrorError) code() ErrorCode { return ErrCodeUnknownError }

// UnknownSuggestionError reports a suggestion id that is not attached to
// the addressed error log.
type UnknownSuggestionError struct {
	ErrorID      uint64
	SuggestionID string
}

func (e *UnknownSuggestionError) Error() string {
	return fmt.Sprintf("error log %d has no suggestion %q", e.ErrorID, e.SuggestionID)
}

func (e *UnknownSuggestionError) code() ErrorCode { return ErrCodeUnknownSuggestion }

// AlreadyResolvedError reports a second resolution attempt on the same
// log. Resolution is one-shot; re-application is rejected rather than
// silently accepted so callers can detect double-invocation bugs.
type AlreadyResolvedError struct {
	ID uint64
}

func (e *AlreadyResolvedError) Error() string {
	return fmt.Sprintf("error log %d is already resolved", e.ID)
}

func (e *AlreadyResolvedError) code() ErrorCode { return ErrCodeAlreadyResolved }

// ConfigError reports invalid construction or registration input.
type ConfigError struct {
	Field string
	Value interface{}
	Msg   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: field %s with value %v: %s", e.Field, e.Value, e.Msg)
}

func (e *ConfigError) code() ErrorCode { return ErrCodeInvalidConfig }
