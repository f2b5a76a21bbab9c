package digest

import "strings"

// DefaultBanners are the vendor banner substrings removed from display
// output: license notices, version banners, hardware/thread info,
// parameter echoes, and the model fingerprint line.
var DefaultBanners = []string{
	"Set parameter",
	"Academic license",
	"Gurobi Optimizer version",
	"CPU model",
	"Thread count",
	"Model fingerprint",
}

// Sanitize removes every line containing any of the banner substrings,
// preserving the order of the remaining lines. Pass nil to use
// DefaultBanners.
//
// Sanitize only affects what a human sees. It must never run before
// Compress, which needs the raw text for JSON marker detection.
func Sanitize(raw string, banners []string) string {
	if banners == nil {
		banners = DefaultBanners
	}
	lines := strings.Split(strings.TrimSuffix(raw, "\n"), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if containsAny(line, banners) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
