// Package digest condenses raw solver output into a bounded,
// structure-preserving text digest. The pipeline is a pure function of
// its input and configuration: no I/O, deterministic byte-for-byte.
package digest

import (
	"regexp"
	"strings"
)

// Default tunables. The array-truncation threshold and sampling stride
// are configuration, not constants: callers routinely tune them per
// solver, so nothing here assumes these particular values.
const (
	DefaultMaxArrayItems = 5
	DefaultSampleWindow  = 15
	DefaultSampleStride  = 15
	DefaultMaxChars      = 12000

	DefaultBeginMarker = "=== RESULT JSON ==="
	DefaultEndMarker   = "=== END RESULT JSON ==="
)

// ElisionMarker prefixes a digest whose head was cut to fit the budget.
// The tail is favoured because final solver state appears at the end.
const ElisionMarker = "... (earlier output elided) ...\n"

// jsonSectionTag introduces the pruned JSON fragment in the assembled digest.
const jsonSectionTag = "\n\n--- Result JSON ---\n"

// Config holds the compression tunables.
type Config struct {
	MaxArrayItems int    // arrays longer than this are truncated
	SampleWindow  int    // leading numeric lines always kept
	SampleStride  int    // every Nth numeric line kept thereafter
	MaxChars      int    // hard budget on the digest text
	BeginMarker   string // start of the embedded JSON block
	EndMarker     string // end of the embedded JSON block
}

// withDefaults fills zero fields with the package defaults.
func (c Config) withDefaults() Config {
	if c.MaxArrayItems <= 0 {
		c.MaxArrayItems = DefaultMaxArrayItems
	}
	if c.SampleWindow <= 0 {
		c.SampleWindow = DefaultSampleWindow
	}
	if c.SampleStride <= 0 {
		c.SampleStride = DefaultSampleStride
	}
	if c.MaxChars <= 0 {
		c.MaxChars = DefaultMaxChars
	}
	if c.BeginMarker == "" {
		c.BeginMarker = DefaultBeginMarker
	}
	if c.EndMarker == "" {
		c.EndMarker = DefaultEndMarker
	}
	return c
}

// Digest is the compressed representation of one run's output.
// Immutable once built.
type Digest struct {
	Body string // normalized, sampled log body
	JSON string // pruned JSON fragment; empty if the run emitted none
	Text string // assembled digest, len(Text) <= Config.MaxChars
}

var multiSpace = regexp.MustCompile(` {2,}`)

// Compress turns raw captured output into a bounded digest. It expects
// the raw (unsanitized) text: banner removal is a display concern and
// would interfere with marker detection here.
func Compress(raw string, cfg Config) Digest {
	cfg = cfg.withDefaults()

	body, fragment := splitResultJSON(raw, cfg.BeginMarker, cfg.EndMarker)
	if fragment != "" {
		fragment = PruneJSON(fragment, cfg.MaxArrayItems)
	}

	body = multiSpace.ReplaceAllString(body, " ")
	body = sampleLines(body, cfg.SampleWindow, cfg.SampleStride)

	text := body
	if fragment != "" {
		text += jsonSectionTag + fragment
	}
	text = enforceBudget(text, cfg.MaxChars)

	return Digest{Body: body, JSON: fragment, Text: text}
}

// splitResultJSON separates the log body from the delimited JSON block.
// Text after the end marker is discarded. A begin marker without an end
// marker claims the remainder of the text as the fragment.
func splitResultJSON(raw, begin, end string) (body, fragment string) {
	i := strings.Index(raw, begin)
	if i < 0 {
		return raw, ""
	}
	body = raw[:i]
	rest := raw[i+len(begin):]
	if j := strings.Index(rest, end); j >= 0 {
		rest = rest[:j]
	}
	return body, strings.TrimSpace(rest)
}

// sampleLines decimates dense numeric iteration rows while keeping all
// structural lines. A numeric line is one whose first non-whitespace
// character is a decimal digit; the first window such lines are kept,
// then every stride-th. Header, heuristic ("H") and improved-solution
// ("*") lines never count against the sampler. Blank lines are dropped.
func sampleLines(body string, window, stride int) string {
	var kept []string
	numeric := 0
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if c := trimmed[0]; c >= '0' && c <= '9' {
			numeric++
			if numeric < window || numeric%stride == 0 {
				kept = append(kept, line)
			}
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// enforceBudget keeps the digest within max characters, retaining the
// tail and prefixing the elision marker. The marker counts against the
// budget so the result never exceeds max.
func enforceBudget(text string, max int) string {
	if len(text) <= max {
		return text
	}
	if len(ElisionMarker) >= max {
		return text[len(text)-max:]
	}
	keep := max - len(ElisionMarker)
	return ElisionMarker + text[len(text)-keep:]
}
