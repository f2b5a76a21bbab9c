package supervisor

import (
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
)

// EventKind discriminates live run events.
type EventKind string

const (
	// EventLine is one line of solver output.
	EventLine EventKind = "line"
	// EventPID announces the spawned process identifier, published
	// exactly once, immediately after a successful spawn.
	EventPID EventKind = "pid"
)

// Event is a live notification emitted while a run is in flight.
type Event struct {
	Kind   EventKind
	Stream string // "stdout" or "stderr" for line events
	Line   string
	PID    int
}

// Sink receives live run events. Publish must be safe for concurrent
// use from both stream readers; delivery is fire-and-forget and must
// never stall the readers beyond normal pipe buffering.
type Sink interface {
	Publish(Event)
}

// WriterSink writes events to w, one line each. Both stream readers
// publish concurrently, so writes are serialized; ordering across the
// two streams is whatever interleaving the readers produce.
type WriterSink struct {
	W io.Writer

	mu sync.Mutex
}

func (s *WriterSink) Publish(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch ev.Kind {
	case EventLine:
		fmt.Fprintln(s.W, ev.Line)
	case EventPID:
		fmt.Fprintf(s.W, "[pid %d]\n", ev.PID)
	}
}

// LogSink publishes events to a zap logger: output lines at debug,
// process starts at info.
type LogSink struct {
	L *zap.Logger
}

func (s *LogSink) Publish(ev Event) {
	switch ev.Kind {
	case EventLine:
		s.L.Debug("solver output",
			zap.String("stream", ev.Stream),
			zap.String("line", ev.Line))
	case EventPID:
		s.L.Info("solver started", zap.Int("pid", ev.PID))
	}
}
