package digest

import (
	"fmt"
	"strings"
)

// DefaultInstruction is the built-in system instruction used when the
// caller provides none.
const DefaultInstruction = "You are a data scientist. Analyze the following " +
	"optimization run log (a JSON result block often appears near the end) and " +
	"output only a well-structured Markdown report. Do not open with a greeting " +
	"or preamble; start directly with a Markdown heading. Do not quote raw log " +
	"lines verbatim."

// defaultFocus is always appended after the instruction.
const defaultFocus = "In particular, comment on the result summary and on the " +
	"health of the solve process."

// logDelimiter separates the instruction block from the digest body.
const logDelimiter = "\n\n--- Log ---\n"

// AssemblePrompt combines a system instruction, an optional user focus,
// and a digest into one prompt string. An empty instruction falls back
// to DefaultInstruction; a non-empty focus adds a verbatim directive.
//
// maxChars bounds the assembled prompt (0 means unbounded). The fixed
// text is small and the digest is already budgeted, so in the normal
// case nothing is cut; if the combination would still overflow, the
// digest tail is re-trimmed from the front to fit.
func AssemblePrompt(instruction, focus string, d Digest, maxChars int) string {
	if strings.TrimSpace(instruction) == "" {
		instruction = DefaultInstruction
	}
	f := defaultFocus
	if strings.TrimSpace(focus) != "" {
		f += fmt.Sprintf(" Additionally, examine and explain the following point in depth: %q.", focus)
	}

	prefix := instruction + "\n" + f + logDelimiter
	body := d.Text
	if maxChars > 0 && len(prefix)+len(body) > maxChars {
		allow := maxChars - len(prefix)
		if allow < 0 {
			allow = 0
		}
		body = enforceBudget(body, allow)
	}
	return prefix + body
}
