package extractor

import (
	"errors"
	"fmt"
)

// ErrEmptyTranscript is returned before any network call when there is
// nothing to extract from.
var ErrEmptyTranscript = errors.New("empty transcript")

// MalformedResponseError means the backend reply was not valid JSON.
// It is never retried: resending the same prompt risks the same
// malformed output.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	raw := e.Raw
	if len(raw) > 120 {
		raw = raw[:120] + "..."
	}
	return fmt.Sprintf("malformed extraction response: %v (response was: %q)", e.Err, raw)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

func IsMalformedResponse(err error) bool {
	var me *MalformedResponseError
	return errors.As(err, &me)
}

// ModelUnavailableError surfaces after the single automatic downgrade
// retry has also failed. Err is the original (primary model) failure.
type ModelUnavailableError struct {
	Model string
	Err   error
}

func (e *ModelUnavailableError) Error() string {
	return fmt.Sprintf("model %s unavailable: %v", e.Model, e.Err)
}

func (e *ModelUnavailableError) Unwrap() error { return e.Err }

func IsModelUnavailable(err error) bool {
	var me *ModelUnavailableError
	return errors.As(err, &me)
}

// NoRouteError is a valid outcome, not a failure: the input carried no
// extractable route. InputWas preserves the original text.
type NoRouteError struct {
	Reason   string
	InputWas string
}

func (e *NoRouteError) Error() string {
	if e.Reason == "" {
		return "no route detected"
	}
	return fmt.Sprintf("no route detected: %s", e.Reason)
}

func AsNoRoute(err error) (*NoRouteError, bool) {
	var nr *NoRouteError
	if errors.As(err, &nr) {
		return nr, true
	}
	return nil, false
}
