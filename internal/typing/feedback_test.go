package typing

import (
	"encoding/json"
	"testing"
)

func TestClassifyMixedInput(t *testing.T) {
	want := []CharState{Correct, Incorrect, Pending}
	for i, w := range want {
		if got := Classify("ax", "abc", i); got != w {
			t.Fatalf("index %d: expected %s, got %s", i, w, got)
		}
	}
}

func TestClassifyIgnoresOvertyping(t *testing.T) {
	if got := Classify("abcdef", "abc", 3); got != Pending {
		t.Fatalf("expected pending beyond snippet, got %s", got)
	}
}

func TestFeedbackForRunes(t *testing.T) {
	got := FeedbackFor("héx", "hél")
	want := []CharState{Correct, Correct, Incorrect}
	if len(got) != len(want) {
		t.Fatalf("expected %d states, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestCharStateText(t *testing.T) {
	text, err := Incorrect.MarshalText()
	if err != nil || string(text) != "incorrect" {
		t.Fatalf("unexpected text %q (%v)", text, err)
	}
}

func TestCharStateTextRoundTrip(t *testing.T) {
	for _, want := range []CharState{Pending, Correct, Incorrect} {
		text, err := want.MarshalText()
		if err != nil {
			t.Fatalf("marshal %s: %v", want, err)
		}
		var got CharState
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("unmarshal %q: %v", text, err)
		}
		if got != want {
			t.Fatalf("expected %s, got %s", want, got)
		}
	}
}

func TestCharStateUnmarshalRejectsUnknown(t *testing.T) {
	var c CharState
	if err := c.UnmarshalText([]byte("typo")); err == nil {
		t.Fatalf("expected error for unknown state")
	}
}

func TestSnapshotJSONRoundTrip(t *testing.T) {
	g, _ := newTestGame(t, []string{"ab"})
	g.Start()
	g.Input("ax")

	data, err := json.Marshal(g.Snapshot())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("unmarshal %s: %v", data, err)
	}
	if len(snap.Feedback) != 2 || snap.Feedback[0] != Correct || snap.Feedback[1] != Incorrect {
		t.Fatalf("unexpected feedback %v", snap.Feedback)
	}
}
