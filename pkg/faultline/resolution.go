package faultline

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ApplyRecovery applies the addressed suggestion to the addressed log.
// The first return value reports whether the log transitioned to
// resolved.
//
// It fails with UnknownErrorError, UnknownSuggestionError, or
// AlreadyResolvedError for invalid arguments. When callback is non-nil it
// is invoked with the suggestion's Action while the engine lock is held
// (see RecoveryCallback for the non-reentrancy contract). A callback
// failure (error or panic) is never surfaced to the caller: it is
// recorded as a new system/critical ad-hoc error, the original log stays
// unresolved, and ApplyRecovery returns (false, nil).
//
// On success the log is marked resolved with resolution metadata and
// recovery_applied then error_resolved fire.
func (s *System) ApplyRecovery(errorID uint64, suggestionID string, callback RecoveryCallback) (bool, error) {
	s.mu.Lock()
	log, ok := s.index[errorID]
	if !ok {
		s.mu.Unlock()
		return false, &UnknownErrorError{ID: errorID}
	}
	if log.Resolved {
		s.mu.Unlock()
		return false, &AlreadyResolvedError{ID: errorID}
	}
	var suggestion *RecoverySuggestion
	for i := range log.Suggestions {
		if log.Suggestions[i].ID == suggestionID {
			suggestion = &log.Suggestions[i]
			break
		}
	}
	if suggestion == nil {
		s.mu.Unlock()
		return false, &UnknownSuggestionError{ErrorID: errorID, SuggestionID: suggestionID}
	}

	if callback != nil {
		// Deliberately invoked under the lock so a concurrent Clear
		// cannot race the resolution in progress.
		if err := invokeCallback(callback, suggestion.Action); err != nil {
			failure := s.newLogLocked("",
				fmt.Sprintf("recovery callback for error %d failed: %v", errorID, err),
				SeverityError,
				CategorySystem,
				map[string]interface{}{
					"error_id":      errorID,
					"suggestion_id": suggestionID,
					"action":        suggestion.Action,
				},
				nil,
			)
			s.insertLocked(failure)
			snap := failure.clone()
			s.mu.Unlock()

			s.warnf(logrus.Fields{
				"error_id":      errorID,
				"suggestion_id": suggestionID,
			}, "recovery callback failed: %v", err)
			s.dispatch(EventErrorLogged, snap)
			return false, nil
		}
	}

	log.Resolved = true
	log.Resolution = &Resolution{SuggestionID: suggestionID, Timestamp: s.clock()}
	snap := log.clone()
	s.mu.Unlock()

	s.dispatch(EventRecoveryApplied, snap)
	s.dispatch(EventErrorResolved, snap)
	return true, nil
}

// MarkResolved resolves the addressed log without applying a suggestion,
// for fixes performed outside the suggestion mechanism. Fires
// error_resolved. Subject to the same one-shot guard as ApplyRecovery.
func (s *System) MarkResolved(errorID uint64) error {
	s.mu.Lock()
	log, ok := s.index[errorID]
	if !ok {
		s.mu.Unlock()
		return &UnknownErrorError{ID: errorID}
	}
	if log.Resolved {
		s.mu.Unlock()
		return &AlreadyResolvedError{ID: errorID}
	}
	log.Resolved = true
	log.Resolution = &Resolution{Timestamp: s.clock()}
	snap := log.clone()
	s.mu.Unlock()

	s.dispatch(EventErrorResolved, snap)
	return nil
}

// invokeCallback runs a recovery callback with panic isolation. Recovery
// must never cascade: a failing callback becomes an error value, not an
// unwound stack.
func invokeCallback(cb RecoveryCallback, action string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("recovery callback panic: %v", r)
		}
	}()
	if cbErr := cb(action); cbErr != nil {
		return errors.Wrap(cbErr, "recovery callback")
	}
	return nil
}
