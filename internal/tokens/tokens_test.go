package tokens

import (
	"strings"
	"testing"
)

type fixedCounter int

func (c fixedCounter) Count(string) int { return int(c) }

func TestCounter_FallbackEstimate(t *testing.T) {
	var c Counter
	if got := c.Count("12345678"); got != 2 {
		t.Fatalf("fallback Count() = %d, want 2", got)
	}
	if got := c.Count(""); got != 0 {
		t.Fatalf("fallback Count(\"\") = %d, want 0", got)
	}
}

func TestNewCounter_CountsSomething(t *testing.T) {
	c := NewCounter()
	if got := c.Count("hello world, this is a test"); got <= 0 {
		t.Fatalf("Count() = %d, want > 0", got)
	}
}

func TestGate_Check(t *testing.T) {
	gate := NewGate(fixedCounter(120))

	count, msg := gate.Check("deploy.md", "text", 100)
	if count != 120 {
		t.Fatalf("Check() count = %d, want 120", count)
	}
	if !strings.Contains(msg, "deploy.md") || !strings.Contains(msg, "120") || !strings.Contains(msg, "100") {
		t.Fatalf("advisory must name context, count, and ceiling: %q", msg)
	}

	if _, msg := gate.Check("deploy.md", "text", 200); msg != "" {
		t.Fatalf("under budget must produce no message, got %q", msg)
	}
	if _, msg := gate.Check("deploy.md", "text", 0); msg != "" {
		t.Fatalf("no ceiling must produce no message, got %q", msg)
	}
}
