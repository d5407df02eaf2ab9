package espeak

import (
	"errors"
	"fmt"
)

// Common errors for session operations.
var (
	// ErrSessionClosed is returned by Say when the session has been closed
	// or terminated. The caller can reopen or construct a new session.
	ErrSessionClosed = errors.New("espeak session is closed")

	// ErrUnsupportedInput is returned by Say when its argument is neither
	// text nor a readable stream.
	ErrUnsupportedInput = errors.New("unsupported input: not text or a readable stream")
)

// SpawnError reports that the espeak program could not be located or
// started. It is fatal to construction and to the respawn phase of Reopen.
type SpawnError struct {
	Program string   // program the spawn was attempted with
	Args    []string // full launch-argument list
	Err     error    // underlying exec error
}

// Error implements the error interface.
func (e *SpawnError) Error() string {
	return fmt.Sprintf("unable to start %s: %v", e.Program, e.Err)
}

// Unwrap returns the underlying exec error.
func (e *SpawnError) Unwrap() error {
	return e.Err
}
