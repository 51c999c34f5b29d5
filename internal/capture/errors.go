package capture

import (
	"errors"
	"fmt"
)

// DeviceError means the microphone could not be opened or failed before
// any audio was captured. It is fatal to the capture stage and is never
// retried automatically.
type DeviceError struct {
	Err error
}

func (e *DeviceError) Error() string {
	if e == nil || e.Err == nil {
		return "audio device unavailable"
	}
	return fmt.Sprintf("audio device unavailable: %v", e.Err)
}

func (e *DeviceError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func IsDeviceError(err error) bool {
	var de *DeviceError
	return errors.As(err, &de)
}
