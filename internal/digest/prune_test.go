package digest

import (
	"strings"
	"testing"
)

func TestPruneJSON_ArrayAtThreshold(t *testing.T) {
	got := PruneJSON(`[1,2,3,4,5]`, 5)
	if got != `[1,2,3,4,5]` {
		t.Errorf("array at the threshold must not be touched, got %s", got)
	}
}

func TestPruneJSON_ArrayOverThreshold(t *testing.T) {
	got := PruneJSON(`[1,2,3,4,5,6]`, 5)
	want := `[1,2,3,4,5,"... (truncated 1 items) ..."]`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestPruneJSON_RecursesIntoObjectsAndKeptElements(t *testing.T) {
	in := `{"runs": [{"values": [1,2,3,4]}, {"values": [9,9,9]}, 3, 4], "meta": {"tags": ["a","b","c","d"]}}`
	got := PruneJSON(in, 2)
	if !strings.Contains(got, `"values":[1,2,"... (truncated 2 items) ..."]`) {
		t.Errorf("nested array inside kept element not pruned: %s", got)
	}
	if !strings.Contains(got, `"tags":["a","b","... (truncated 2 items) ..."]`) {
		t.Errorf("array under object value not pruned: %s", got)
	}
	if !strings.Contains(got, `"... (truncated 2 items) ..."]`) {
		t.Errorf("outer array not pruned: %s", got)
	}
}

func TestPruneJSON_KeysNeverDropped(t *testing.T) {
	in := `{"a":1,"b":2,"c":3,"d":4,"e":5,"f":6,"g":7}`
	got := PruneJSON(in, 2)
	for _, key := range []string{`"a"`, `"b"`, `"c"`, `"d"`, `"e"`, `"f"`, `"g"`} {
		if !strings.Contains(got, key) {
			t.Errorf("key %s dropped: %s", key, got)
		}
	}
}

func TestPruneJSON_MalformedVerbatim(t *testing.T) {
	in := "status: optimal (not json)"
	if got := PruneJSON(in, 5); got != in {
		t.Errorf("malformed input must pass through verbatim, got %q", got)
	}
}

func TestPruneJSON_Scalars(t *testing.T) {
	if got := PruneJSON(`42`, 1); got != `42` {
		t.Errorf("scalar changed: %s", got)
	}
	if got := PruneJSON(`"text"`, 1); got != `"text"` {
		t.Errorf("string changed: %s", got)
	}
}
