package digest

import (
	"fmt"
	"strings"
	"testing"
)

func TestCompress_Deterministic(t *testing.T) {
	raw := "iter 1\n=== RESULT JSON ===\n{\"b\": [1,2,3], \"a\": {\"z\": 1, \"y\": 2}}\n=== END RESULT JSON ===\n"
	first := Compress(raw, Config{})
	for i := 0; i < 10; i++ {
		if got := Compress(raw, Config{}); got.Text != first.Text {
			t.Fatalf("run %d differs:\n%s\nvs\n%s", i, got.Text, first.Text)
		}
	}
}

func TestCompress_SamplesNumericLines(t *testing.T) {
	var b strings.Builder
	b.WriteString("    Nodes    |    Current Node    |     Objective Bounds\n")
	for i := 1; i <= 50; i++ {
		fmt.Fprintf(&b, "%d 12.5 40.0\n", i)
		if i == 20 {
			b.WriteString("H   heuristic solution found\n")
			b.WriteString("*   35    12.5\n")
			b.WriteString("\n")
		}
	}
	d := Compress(b.String(), Config{SampleWindow: 15, SampleStride: 15})

	lines := strings.Split(d.Body, "\n")
	var numeric []string
	for _, l := range lines {
		trimmed := strings.TrimSpace(l)
		if trimmed != "" && trimmed[0] >= '0' && trimmed[0] <= '9' {
			numeric = append(numeric, strings.Fields(trimmed)[0])
		}
	}
	want := []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12", "13", "14", "15", "30", "45"}
	if len(numeric) != len(want) {
		t.Fatalf("kept %d numeric lines %v, want %d %v", len(numeric), numeric, len(want), want)
	}
	for i := range want {
		if numeric[i] != want[i] {
			t.Errorf("numeric[%d] = %s, want %s", i, numeric[i], want[i])
		}
	}

	if !strings.Contains(d.Body, "H heuristic solution found") {
		t.Error("heuristic line must always be kept")
	}
	if !strings.Contains(d.Body, "* 35 12.5") {
		t.Error("improved-solution line must always be kept")
	}
	if !strings.Contains(d.Body, "Objective Bounds") {
		t.Error("header line must always be kept")
	}
	if strings.Contains(d.Body, "\n\n") {
		t.Error("blank lines must be dropped")
	}
}

func TestCompress_CollapsesRunsOfSpaces(t *testing.T) {
	d := Compress("Best objective    1.250000e+01,    gap 0.0000%\n", Config{})
	if !strings.Contains(d.Body, "Best objective 1.250000e+01, gap 0.0000%") {
		t.Errorf("spaces not collapsed: %q", d.Body)
	}
	if strings.Contains(d.Body, "  ") {
		t.Errorf("double space survived: %q", d.Body)
	}
}

func TestCompress_PrunesResultJSON(t *testing.T) {
	raw := "solving\n=== RESULT JSON ===\n" +
		`{"assignments": [1,2,3,4,5,6,7,8,9,10], "status": "optimal"}` +
		"\n=== END RESULT JSON ===\ntrailing noise\n"
	d := Compress(raw, Config{MaxArrayItems: 5})

	if !strings.Contains(d.Text, "--- Result JSON ---") {
		t.Fatalf("missing JSON section tag:\n%s", d.Text)
	}
	if !strings.Contains(d.JSON, "... (truncated 5 items) ...") {
		t.Errorf("array not truncated: %s", d.JSON)
	}
	if !strings.Contains(d.JSON, `"status":"optimal"`) {
		t.Errorf("scalar value lost: %s", d.JSON)
	}
	if strings.Contains(d.Text, "trailing noise") {
		t.Errorf("text after end marker must be discarded:\n%s", d.Text)
	}
}

func TestCompress_MalformedJSONVerbatim(t *testing.T) {
	raw := "work\n=== RESULT JSON ===\n{broken json!!\n=== END RESULT JSON ===\n"
	d := Compress(raw, Config{})
	if d.JSON != "{broken json!!" {
		t.Errorf("malformed fragment must pass through verbatim, got %q", d.JSON)
	}
}

func TestCompress_BeginMarkerWithoutEnd(t *testing.T) {
	raw := "work\n=== RESULT JSON ===\n{\"done\": true}\n"
	d := Compress(raw, Config{})
	if d.JSON != `{"done":true}` {
		t.Errorf("remainder after begin marker should be the fragment, got %q", d.JSON)
	}
	if strings.Contains(d.Body, "done") {
		t.Errorf("fragment leaked into the body: %q", d.Body)
	}
}

func TestCompress_NoMarkers(t *testing.T) {
	d := Compress("just a log line\n", Config{})
	if d.JSON != "" {
		t.Errorf("expected no fragment, got %q", d.JSON)
	}
	if strings.Contains(d.Text, "--- Result JSON ---") {
		t.Errorf("section tag must not appear without a fragment:\n%s", d.Text)
	}
}

func TestCompress_BudgetKeepsTail(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 200; i++ {
		fmt.Fprintf(&b, "line-%03d some solver chatter\n", i)
	}
	b.WriteString("final answer here\n")

	d := Compress(b.String(), Config{MaxChars: 300})
	if len(d.Text) > 300 {
		t.Fatalf("digest is %d chars, budget is 300", len(d.Text))
	}
	if !strings.HasPrefix(d.Text, ElisionMarker) {
		t.Errorf("truncated digest must start with the elision marker:\n%s", d.Text)
	}
	if !strings.Contains(d.Text, "final answer here") {
		t.Errorf("tail must survive truncation:\n%s", d.Text)
	}
	if strings.Contains(d.Text, "line-000") {
		t.Errorf("head must be elided:\n%s", d.Text)
	}
}

func TestCompress_UnderBudgetUntouched(t *testing.T) {
	d := Compress("short log\n", Config{MaxChars: 100})
	if strings.Contains(d.Text, ElisionMarker) {
		t.Errorf("no elision expected under budget: %q", d.Text)
	}
}

func TestEnforceBudget_MarkerCountsAgainstBudget(t *testing.T) {
	text := strings.Repeat("x", 500)
	got := enforceBudget(text, 100)
	if len(got) != 100 {
		t.Fatalf("len = %d, want exactly 100", len(got))
	}
	if !strings.HasPrefix(got, ElisionMarker) {
		t.Errorf("expected elision marker prefix, got %q", got[:40])
	}
}

func TestEnforceBudget_TinyBudget(t *testing.T) {
	got := enforceBudget("abcdefghij", 4)
	if got != "ghij" {
		t.Errorf("got %q, want last 4 chars", got)
	}
}
