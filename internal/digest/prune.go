package digest

import (
	"encoding/json"
	"fmt"
)

// PruneJSON truncates long arrays inside a JSON fragment. Every array
// with more than maxItems elements is cut to its first maxItems plus a
// synthetic marker element recording how many were removed; the walk
// then recurses into remaining array elements and all object values.
// Scalars pass through untouched. A fragment that does not parse is
// returned verbatim: malformed results are opaque text, not an error.
//
// Keys are never dropped. Re-marshalling sorts object keys, which keeps
// the output deterministic; key order is not preserved.
func PruneJSON(fragment string, maxItems int) string {
	var v any
	if err := json.Unmarshal([]byte(fragment), &v); err != nil {
		return fragment
	}
	out, err := json.Marshal(pruneValue(v, maxItems))
	if err != nil {
		return fragment
	}
	return string(out)
}

func pruneValue(v any, maxItems int) any {
	switch x := v.(type) {
	case []any:
		if len(x) > maxItems {
			removed := len(x) - maxItems
			x = append(x[:maxItems:maxItems], truncationMarker(removed))
		}
		for i, e := range x {
			x[i] = pruneValue(e, maxItems)
		}
		return x
	case map[string]any:
		for k, e := range x {
			x[k] = pruneValue(e, maxItems)
		}
		return x
	default:
		return v
	}
}

// truncationMarker is the synthetic array element appended in place of
// removed entries.
func truncationMarker(removed int) string {
	return fmt.Sprintf("... (truncated %d items) ...", removed)
}
