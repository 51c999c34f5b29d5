package transcriber

import (
	"errors"
	"fmt"
)

// ErrEmptyAudio is returned for a zero-length clip before any network
// call is made.
var ErrEmptyAudio = errors.New("no audio data to transcribe")

// TranscriptionError means both the batch path and the streaming
// fallback failed. Unwrap yields the batch cause, which is the error
// that triggered the fallback.
type TranscriptionError struct {
	Batch     error
	Streaming error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcription failed: batch: %v; streaming fallback: %v", e.Batch, e.Streaming)
}

func (e *TranscriptionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Batch
}

func IsTranscriptionError(err error) bool {
	var te *TranscriptionError
	return errors.As(err, &te)
}
