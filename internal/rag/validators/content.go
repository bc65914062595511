// Package validators gates converted content before it enters the
// ingestion pipeline, rejecting uploads that converted to nothing
// useful.
package validators

import (
	"fmt"
	"regexp"
	"strings"
)

// Options are the acceptance thresholds for one validation run.
type Options struct {
	// MinLength is the minimum number of trimmed characters.
	MinLength int
	// MaxLength rejects content above this size when > 0.
	MaxLength int
	// RequireText additionally demands that at least half of MinLength
	// survives after stripping whitespace and non-word characters.
	RequireText bool
}

// Result reports the outcome of validating one converted document.
type Result struct {
	Valid    bool     `json:"valid"`
	Error    string   `json:"error,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

var (
	// wordRe matches characters that count as real text, including
	// accented letters and digits.
	wordRe = regexp.MustCompile(`[\p{L}\p{N}]`)
	// structuralRe matches markup punctuation that dominates failed
	// conversions.
	structuralRe = regexp.MustCompile(`[<>{}\[\]]`)
)

// converterFailurePhrases are strings converters emit instead of real
// content when extraction fails.
var converterFailurePhrases = []string{
	"unable to extract",
	"could not convert",
	"conversion failed",
	"no text content",
	"error reading file",
}

// ValidateContent checks converted text against the given thresholds.
// Failures are hard errors; heuristic findings come back as warnings
// on an otherwise valid result.
func ValidateContent(content string, opts Options) Result {
	trimmed := strings.TrimSpace(content)

	if trimmed == "" {
		return Result{Valid: false, Error: "empty content"}
	}

	if len([]rune(trimmed)) < opts.MinLength {
		return Result{
			Valid: false,
			Error: fmt.Sprintf("content too small: %d characters, minimum %d", len([]rune(trimmed)), opts.MinLength),
		}
	}

	if opts.MaxLength > 0 && len([]rune(trimmed)) > opts.MaxLength {
		return Result{
			Valid: false,
			Error: fmt.Sprintf("content too large: %d characters, maximum %d", len([]rune(trimmed)), opts.MaxLength),
		}
	}

	if opts.RequireText {
		realText := len(wordRe.FindAllString(trimmed, -1))
		if realText < opts.MinLength/2 {
			return Result{
				Valid: false,
				Error: fmt.Sprintf("insufficient real text: %d word characters, minimum %d", realText, opts.MinLength/2),
			}
		}
	}

	var warnings []string

	lower := strings.ToLower(trimmed)
	if len([]rune(trimmed)) < 200 {
		for _, phrase := range converterFailurePhrases {
			if strings.Contains(lower, phrase) {
				warnings = append(warnings, fmt.Sprintf("content matches converter failure phrase %q", phrase))
				break
			}
		}
	}

	nonSpace := 0
	for _, r := range trimmed {
		if r != ' ' && r != '\n' && r != '\t' && r != '\r' {
			nonSpace++
		}
	}
	if nonSpace > 0 {
		structural := len(structuralRe.FindAllString(trimmed, -1))
		if float64(structural)/float64(nonSpace) > 0.8 {
			warnings = append(warnings, "content is dominated by structural punctuation")
		}
	}

	return Result{Valid: true, Warnings: warnings}
}
