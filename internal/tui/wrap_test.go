package tui

import (
	"strings"
	"testing"

	"github.com/eshginfarzali/eshgin/internal/typing"
)

func styled(snippet, input string, cursor int) []styledRune {
	return buildStyledRunes([]rune(snippet), typing.FeedbackFor(input, snippet), cursor)
}

func TestBuildStyledRunesCursor(t *testing.T) {
	runes := styled("ab", "a", 1)
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != currentWordStyle.Underline(true).Render("b") {
		t.Fatalf("expected underlined cursor on second rune")
	}
}

func TestBuildStyledRunesNoCursorWhenComplete(t *testing.T) {
	runes := styled("a", "a", -1)
	if len(runes) != 1 {
		t.Fatalf("expected 1 rune, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for completed rune")
	}
}

func TestBuildStyledRunesKeepsSnippetOnMistype(t *testing.T) {
	runes := styled("ab", "ax", -1)
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != incorrectStyle.Render("b") {
		t.Fatalf("expected snippet rune in incorrect style")
	}
}

func TestBuildStyledRunesWordHighlighting(t *testing.T) {
	runes := styled("one two", "o", 1)
	if runes[0].s != correctStyle.Render("o") {
		t.Fatalf("expected correct style for typed rune")
	}
	if runes[2].s != currentWordStyle.Render("e") {
		t.Fatalf("expected current word style for untyped rune in current word")
	}
	if runes[4].s != pendingStyle.Render("t") {
		t.Fatalf("expected pending style for next word")
	}
}

func TestBuildStyledRunesWrongSpaceDot(t *testing.T) {
	runes := styled("a b", "ax", 2)
	if len(runes) != 3 {
		t.Fatalf("expected 3 runes, got %d", len(runes))
	}
	if runes[1].s != incorrectStyle.Render("•") {
		t.Fatalf("expected dot for mistyped space")
	}
	if !runes[1].isSpace {
		t.Fatalf("mistyped space should still wrap as a space")
	}
}

func TestWrapStyledRunesBreaksAtSpaces(t *testing.T) {
	runes := styled("const x = 10;", "", -1)
	out := wrapStyledRunes(runes, 9)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", out)
	}
	if lines[0] != "const x " || lines[1] != "= 10;" {
		t.Fatalf("unexpected wrap %q", lines)
	}
}

func TestWrapStyledRunesHardBreaksLongWord(t *testing.T) {
	runes := styled("abcdef", "", -1)
	out := wrapStyledRunes(runes, 4)
	if out != "abcd\nef" {
		t.Fatalf("unexpected wrap %q", out)
	}
}

func TestWrapStyledRunesNoWidth(t *testing.T) {
	runes := styled("a b", "", -1)
	if out := wrapStyledRunes(runes, 0); out != "a b" {
		t.Fatalf("unexpected output %q", out)
	}
}
