package supervisor

import (
	"errors"
	"fmt"
)

// ErrEmptyCommand is returned by Start when the command prefix has no tokens.
var ErrEmptyCommand = errors.New("empty command prefix")

// SpawnError reports a failure to start the solver process
// (executable missing, permission denied).
type SpawnError struct {
	Cmd string
	Err error
}

func (e *SpawnError) Error() string { return fmt.Sprintf("starting %s: %v", e.Cmd, e.Err) }
func (e *SpawnError) Unwrap() error { return e.Err }

// ExitError reports a run that terminated with a failure status. Its
// message carries the exit code and the full captured stderr text.
type ExitError struct {
	Code   int
	Stderr string
}

func (e *ExitError) Error() string { return fmt.Sprintf("Exit Code: %d\n%s", e.Code, e.Stderr) }

// WaitError reports an OS-level wait failure.
type WaitError struct {
	Err error
}

func (e *WaitError) Error() string { return fmt.Sprintf("waiting for solver: %v", e.Err) }
func (e *WaitError) Unwrap() error { return e.Err }

// CancelError reports a best-effort cancellation that could not be
// delivered. Callers log or surface it but never treat it as a run
// failure.
type CancelError struct {
	PID int
	Err error
}

func (e *CancelError) Error() string { return fmt.Sprintf("cancel pid %d: %v", e.PID, e.Err) }
func (e *CancelError) Unwrap() error { return e.Err }
