package tokens

import (
	"strings"
	"testing"
)

func TestEstimateEmpty(t *testing.T) {
	if got := Estimate(""); got != 0 {
		t.Errorf("Estimate(\"\") = %d, want 0", got)
	}
}

func TestEstimateHeuristicBounds(t *testing.T) {
	got := Estimate(strings.Repeat("A", 100))
	if got < 20 || got > 30 {
		t.Errorf("Estimate(100 chars) = %d, want within [20, 30]", got)
	}
}

func TestEstimateNeverNegative(t *testing.T) {
	for _, s := range []string{"a", "ab", "abc", "abcd", "hello world", "é"} {
		if got := Estimate(s); got <= 0 {
			t.Errorf("Estimate(%q) = %d, want positive", s, got)
		}
	}
}

func TestEstimateCountsRunesNotBytes(t *testing.T) {
	// 8 multibyte runes should estimate like 8 characters, not 24 bytes.
	if got := Estimate(strings.Repeat("日", 8)); got != 2 {
		t.Errorf("Estimate(8 runes) = %d, want 2", got)
	}
}
