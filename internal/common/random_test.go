package common

import (
	"strings"
	"testing"
)

// ---------- RandomString ----------

func TestRandomString_LengthAndAlphabet(t *testing.T) {
	const n = 64
	s, err := RandomString(n, "ab")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s) != n {
		t.Fatalf("expected length %d, got %d", n, len(s))
	}
	for _, r := range s {
		if r != 'a' && r != 'b' {
			t.Fatalf("unexpected rune %q in %q", r, s)
		}
	}
}

func TestRandomString_ZeroSize(t *testing.T) {
	s, err := RandomString(0, ShareHashAlphabet)
	if err != nil {
		t.Fatalf("unexpected error for size=0: %v", err)
	}
	if s != "" {
		t.Fatalf("expected empty string for size=0, got %q", s)
	}
}

func TestRandomString_EmptyAlphabet(t *testing.T) {
	s, err := RandomString(8, "")
	if err != nil || s != "" {
		t.Fatalf("expected empty result, got %q, %v", s, err)
	}
}

// ---------- NewShareHash ----------

func TestNewShareHash_UsesUnambiguousAlphabet(t *testing.T) {
	for i := 0; i < 100; i++ {
		h, err := NewShareHash()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(h) != ShareHashLength {
			t.Fatalf("expected length %d, got %d", ShareHashLength, len(h))
		}
		for _, r := range h {
			if !strings.ContainsRune(ShareHashAlphabet, r) {
				t.Fatalf("rune %q not in alphabet", r)
			}
		}
		if strings.ContainsAny(h, "0O1lI") {
			t.Fatalf("ambiguous character in %q", h)
		}
	}
}

func TestNewShareHash_EntropyHint(t *testing.T) {
	a, _ := NewShareHash()
	b, _ := NewShareHash()
	if a == b {
		t.Logf("warning: two NewShareHash results are identical; extremely unlikely")
	}
}
