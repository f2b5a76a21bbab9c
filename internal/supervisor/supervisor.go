// Package supervisor spawns and supervises external solver processes.
// Each run is one OS process with two concurrent stream readers; the
// caller's waiting context is the third and last concurrent activity.
// Cancellation is out-of-band: a pid published at spawn time is the only
// handle a cancel request ever needs.
package supervisor

import (
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ktsuchiya/solvent/internal/digest"
)

// Supervisor runs solver processes. The zero value is not usable;
// populate Registry at minimum.
type Supervisor struct {
	Registry *Registry
	Sink     Sink        // live event sink; nil drops events
	Logger   *zap.Logger // nil disables logging
	Banners  []string    // display sanitizer substrings; nil = defaults
}

// Handle identifies one spawned run. It is owned by the supervisor and
// becomes invalid once the run has been waited on.
type Handle struct {
	RunID string
	PID   int

	cmd     *exec.Cmd
	stdoutC <-chan string
	stderrC <-chan string
	started time.Time
}

// RunResult holds the captured output of a completed run.
type RunResult struct {
	RunID    string
	PID      int
	ExitCode int

	Display  string // sanitized stdout for the human-facing channel
	Stdout   string // raw stdout
	Stderr   string // raw stderr
	Combined string // raw stdout followed by raw stderr; compression input

	StartedAt time.Time
	Duration  time.Duration
}

// Start builds and spawns the solver process. commandPrefix is
// whitespace-tokenized; its first token is the executable and the rest
// are prepended arguments (typically an interpreter invocation).
// scriptPath is appended as a single argument, then the
// whitespace-tokenized elements of argString.
//
// Stdin is bound to the null device so the child can never block on
// interactive input. The pid is registered and published before Start
// returns, so a caller can cancel a run before it completes.
func (s *Supervisor) Start(commandPrefix, scriptPath, argString string) (*Handle, error) {
	argv := strings.Fields(commandPrefix)
	if len(argv) == 0 {
		return nil, ErrEmptyCommand
	}
	if scriptPath != "" {
		argv = append(argv, scriptPath)
	}
	argv = append(argv, strings.Fields(argString)...)

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = nil // exec.Cmd reads from the null device when Stdin is nil
	cmd.SysProcAttr = sysProcAttr()

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &SpawnError{Cmd: argv[0], Err: err}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, &SpawnError{Cmd: argv[0], Err: err}
	}

	if err := cmd.Start(); err != nil {
		return nil, &SpawnError{Cmd: argv[0], Err: err}
	}

	pid := cmd.Process.Pid
	s.Registry.Register(pid, cmd.Process)
	s.publish(Event{Kind: EventPID, PID: pid})

	h := &Handle{
		RunID:   uuid.New().String(),
		PID:     pid,
		cmd:     cmd,
		started: time.Now(),
	}
	h.stdoutC = s.readStream("stdout", stdout)
	h.stderrC = s.readStream("stderr", stderr)

	s.logger().Info("solver spawned",
		zap.String("run_id", h.RunID),
		zap.Int("pid", pid),
		zap.Strings("argv", argv))
	return h, nil
}

// Wait blocks until the run terminates and both stream readers have
// drained their pipes. On a failure exit status it returns the captured
// result together with an *ExitError carrying the exit code and full
// stderr text; the result is returned in both cases so callers can
// record it.
func (s *Supervisor) Wait(h *Handle) (*RunResult, error) {
	// Join the readers first: Wait closes the pipes, so reading must
	// finish before the process is reaped.
	stdout := <-h.stdoutC
	stderr := <-h.stderrC
	waitErr := h.cmd.Wait()
	s.Registry.Unregister(h.PID)

	res := &RunResult{
		RunID:     h.RunID,
		PID:       h.PID,
		Stdout:    stdout,
		Stderr:    stderr,
		Combined:  stdout + stderr,
		Display:   digest.Sanitize(stdout, s.Banners),
		StartedAt: h.started,
		Duration:  time.Since(h.started),
	}

	if waitErr != nil {
		var ee *exec.ExitError
		if errors.As(waitErr, &ee) {
			res.ExitCode = ee.ExitCode()
			return res, &ExitError{Code: res.ExitCode, Stderr: stderr}
		}
		return res, &WaitError{Err: waitErr}
	}
	return res, nil
}

// Run spawns the process and waits for it to finish.
func (s *Supervisor) Run(commandPrefix, scriptPath, argString string) (*RunResult, error) {
	h, err := s.Start(commandPrefix, scriptPath, argString)
	if err != nil {
		return nil, err
	}
	return s.Wait(h)
}

// Cancel forcibly terminates the process tree for pid. It is best
// effort: an unknown or already-exited pid yields a *CancelError that
// callers report but never escalate, and the pending Wait observes the
// process death through the normal exit path.
func (s *Supervisor) Cancel(pid int) error {
	proc, ok := s.Registry.Lookup(pid)
	if !ok {
		return &CancelError{PID: pid, Err: errors.New("no live run with this pid")}
	}
	if err := killTree(proc); err != nil {
		s.logger().Warn("cancel failed", zap.Int("pid", pid), zap.Error(err))
		return &CancelError{PID: pid, Err: err}
	}
	s.logger().Info("run cancelled", zap.Int("pid", pid))
	return nil
}

func (s *Supervisor) publish(ev Event) {
	if s.Sink != nil {
		s.Sink.Publish(ev)
	}
}

func (s *Supervisor) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}
