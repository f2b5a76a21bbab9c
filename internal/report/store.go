// Package report persists and retrieves solver run records: the
// captured output of a run, its digest, and any analysis report
// generated for it.
package report

import "time"

// Store persists and retrieves run records.
type Store interface {
	Save(rec *RunRecord) error
	Load(runID string) (*RunRecord, error)
}

// RunRecord holds everything captured for one solver run. Display is
// the banner-sanitized stdout shown to a human; Combined is the raw
// stdout+stderr the compression pipeline consumes.
type RunRecord struct {
	ID         string `json:"id"`
	ScriptPath string `json:"script_path"`
	Args       string `json:"args,omitempty"`
	PID        int    `json:"pid,omitempty"`
	ExitCode   int    `json:"exit_code"`

	Display  string `json:"display,omitempty"`
	Stderr   string `json:"stderr,omitempty"`
	Combined string `json:"combined,omitempty"`

	Digest string `json:"digest,omitempty"`
	Report string `json:"report,omitempty"`

	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}
