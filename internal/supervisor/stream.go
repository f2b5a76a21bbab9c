package supervisor

import (
	"bufio"
	"io"
	"strings"

	"go.uber.org/zap"
)

// maxLineBytes bounds a single scanned line. Solver rows are short; the
// generous cap only guards against a pathological unbroken stream.
const maxLineBytes = 1 << 20

// readStream drains one pipe line-by-line until end-of-stream. Every
// line is published to the sink (fire-and-forget) and appended, plus a
// newline, to the accumulator. The returned channel yields the final
// accumulated text exactly once, when the pipe closes.
//
// A read error ends only this stream: the error is logged and whatever
// was captured so far is returned, so a broken pipe never fails the run.
func (s *Supervisor) readStream(name string, r io.Reader) <-chan string {
	out := make(chan string, 1)
	go func() {
		var full strings.Builder
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
		for sc.Scan() {
			line := sc.Text()
			s.publish(Event{Kind: EventLine, Stream: name, Line: line})
			full.WriteString(line)
			full.WriteByte('\n')
		}
		if err := sc.Err(); err != nil {
			s.logger().Warn("stream ended early",
				zap.String("stream", name),
				zap.Error(err))
		}
		out <- full.String()
	}()
	return out
}
