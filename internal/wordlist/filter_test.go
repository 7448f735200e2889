package wordlist

import "testing"

func TestTypeable(t *testing.T) {
	if !Typeable(`const hello = () => "world";`) {
		t.Fatalf("expected code snippet to pass")
	}
	for _, snippet := range []string{"", "tab\there", "nul\x00", "nbsp\u00a0x"} {
		if Typeable(snippet) {
			t.Fatalf("expected %q to be rejected", snippet)
		}
	}
}

func TestMaxLength(t *testing.T) {
	keep := MaxLength(5)
	if !keep("x = 1") {
		t.Fatalf("expected 5-rune snippet to pass")
	}
	if keep("x = 10") {
		t.Fatalf("expected 6-rune snippet to be rejected")
	}
}
