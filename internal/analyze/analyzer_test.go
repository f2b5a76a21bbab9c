package analyze

import (
	"context"
	"strings"
	"testing"

	"github.com/ktsuchiya/solvent/internal/digest"
)

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New(context.Background(), "", "gemini-2.5-flash", digest.Config{}, 0, nil)
	if err == nil {
		t.Fatal("expected an error for a missing API key")
	}
	if !strings.Contains(err.Error(), "API key") {
		t.Errorf("error should name the missing key: %v", err)
	}
}
