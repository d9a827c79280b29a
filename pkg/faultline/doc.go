// Package faultline is an in-process error management and
// recovery-suggestion engine.
//
// A System captures structured error events raised anywhere in a host
// application, classifies them by severity and category, attaches ranked
// recovery suggestions, tracks resolution state, exposes aggregate
// statistics, and notifies registered listeners. History is bounded: when
// the configured capacity is reached the oldest entry is evicted so the
// newest is never dropped.
//
// Errors are logged either through a named template registered with the
// System (which supplies the message pattern, default severity, category,
// and suggestion set) or ad hoc with explicit values:
//
//	sys, _ := faultline.New()
//	id, err := sys.LogError("file_save_failed", map[string]interface{}{
//		"path": "/tmp/report.md",
//	})
//
// Resolution is driven by the caller, typically in response to a user
// picking one of the suggestions returned by Suggestions:
//
//	resolved, err := sys.ApplyRecovery(id, "retry_save", func(action string) error {
//		return saveAgain(action)
//	})
//
// All state is private to the System instance; multiple instances may
// coexist for isolated subsystems or tests. Every operation is safe for
// concurrent use.
package faultline
