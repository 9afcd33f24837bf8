package budget

import "testing"

func TestTruncate_Short(t *testing.T) {
	if got := Truncate("abc", 10); got != "abc" {
		t.Fatalf("got %q", got)
	}
}

func TestTruncate_KeepsPrefix(t *testing.T) {
	if got := Truncate("abcdef", 4); got != "abcd" {
		t.Fatalf("got %q", got)
	}
}

func TestTruncate_CountsRunes(t *testing.T) {
	// 4 runes, 8 bytes
	s := "äöüß"
	if got := Truncate(s, 4); got != s {
		t.Fatalf("got %q, want unchanged", got)
	}
	if got := Truncate(s, 2); got != "äö" {
		t.Fatalf("got %q", got)
	}
}

func TestTruncate_NonPositiveMax(t *testing.T) {
	if got := Truncate("abc", 0); got != "abc" {
		t.Fatalf("got %q", got)
	}
}
