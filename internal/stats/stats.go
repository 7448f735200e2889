// Package stats contains typing metrics and text table helpers.
package stats

import (
	"math"
	"strings"
	"time"
)

const sparkChars = " .:-=+*#%@"

// WordCount counts words the way the speed test does: fields separated by single spaces.
func WordCount(s string) int {
	return len(strings.Split(s, " "))
}

// WordsPerMinute returns round(words / elapsed minutes). ok is false when no
// time has elapsed and the caller should keep its previous value.
func WordsPerMinute(words int, elapsed time.Duration) (wpm int, ok bool) {
	minutes := elapsed.Minutes()
	if minutes <= 0 {
		return 0, false
	}
	return int(math.Round(float64(words) / minutes)), true
}

// Accuracy returns correct / (correct + incorrect), or 0 with no keystrokes.
func Accuracy(correct, incorrect int) float64 {
	den := correct + incorrect
	if den <= 0 {
		return 0
	}
	return float64(correct) / float64(den)
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// Bar renders level (0-100) as a filled bar of the given width.
func Bar(level, width int) string {
	if width <= 0 {
		return ""
	}
	if level < 0 {
		level = 0
	}
	if level > 100 {
		level = 100
	}
	filled := int(math.Round(float64(level) / 100 * float64(width)))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
