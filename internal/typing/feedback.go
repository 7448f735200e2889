package typing

import "fmt"

// CharState classifies one snippet character against the player's input.
type CharState int

const (
	Pending CharState = iota
	Correct
	Incorrect
)

func (c CharState) String() string {
	switch c {
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	default:
		return "pending"
	}
}

// MarshalText encodes the state by name.
func (c CharState) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a name written by MarshalText.
func (c *CharState) UnmarshalText(text []byte) error {
	switch string(text) {
	case "pending":
		*c = Pending
	case "correct":
		*c = Correct
	case "incorrect":
		*c = Incorrect
	default:
		return fmt.Errorf("unknown char state %q", text)
	}
	return nil
}

// Classify reports the state of snippet rune i given input.
// Indexes are rune positions.
func Classify(input, snippet string, i int) CharState {
	return classifyRunes([]rune(input), []rune(snippet), i)
}

// FeedbackFor classifies every rune of snippet.
func FeedbackFor(input, snippet string) []CharState {
	in := []rune(input)
	sn := []rune(snippet)
	out := make([]CharState, len(sn))
	for i := range sn {
		out[i] = classifyRunes(in, sn, i)
	}
	return out
}

func classifyRunes(input, snippet []rune, i int) CharState {
	if i < 0 || i >= len(snippet) || i >= len(input) {
		return Pending
	}
	if input[i] == snippet[i] {
		return Correct
	}
	return Incorrect
}
