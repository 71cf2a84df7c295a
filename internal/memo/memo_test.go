package memo

import (
	"strings"
	"testing"
)

func TestNormalizedMemoizes(t *testing.T) {
	c, err := New(4, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	calls := 0
	fn := func(s string) string {
		calls++
		return strings.ToUpper(s)
	}
	if got := c.Normalized("a", fn); got != "A" {
		t.Fatalf("got %q", got)
	}
	if got := c.Normalized("a", fn); got != "A" {
		t.Fatalf("got %q", got)
	}
	if calls != 1 {
		t.Errorf("fn called %d times, want 1", calls)
	}
}

func TestTokensMemoizes(t *testing.T) {
	c, err := New(4, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	calls := 0
	fn := func(s string) []string {
		calls++
		return strings.Fields(s)
	}
	c.Tokens("a b", fn)
	got := c.Tokens("a b", fn)
	if calls != 1 {
		t.Errorf("fn called %d times, want 1", calls)
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("got %v", got)
	}
}

func TestEviction(t *testing.T) {
	c, err := New(2, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	calls := 0
	fn := func(s string) string {
		calls++
		return s
	}
	c.Normalized("a", fn)
	c.Normalized("b", fn)
	c.Normalized("c", fn) // evicts "a"
	c.Normalized("a", fn)
	if calls != 4 {
		t.Errorf("fn called %d times, want 4", calls)
	}
}

func TestPurge(t *testing.T) {
	c, err := New(4, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	calls := 0
	fn := func(s string) string {
		calls++
		return s
	}
	c.Normalized("a", fn)
	c.Purge()
	c.Normalized("a", fn)
	if calls != 2 {
		t.Errorf("fn called %d times, want 2", calls)
	}
}
