package textutil

import (
	"regexp"
	"strings"
)

var (
	contentsWordRe = regexp.MustCompile(`\bcontents\b`)
	dotLeaderRe    = regexp.MustCompile(`\.{3,}`)
	numericTailRe  = regexp.MustCompile(`\d+\s*$`)
)

// IsTOCPage reports whether a page looks like a table of contents.
// A keyword ("목차", "table of contents", or a bare "contents" word) gates
// the check; structural signals over the first 80 non-empty lines then score
// the page. Heuristic only: misclassification just affects image display.
func IsTOCPage(text string) bool {
	t := strings.TrimSpace(text)
	if t == "" {
		return false
	}

	low := strings.ToLower(t)
	keyword := strings.Contains(t, "목차") ||
		strings.Contains(low, "table of contents") ||
		contentsWordRe.MatchString(low)
	if !keyword {
		return false
	}

	dotLeaderCount := len(dotLeaderRe.FindAllString(t, -1))

	var lines []string
	for _, ln := range strings.Split(t, "\n") {
		if ln = strings.TrimSpace(ln); ln != "" {
			lines = append(lines, ln)
		}
	}
	if len(lines) > 80 {
		lines = lines[:80]
	}

	numericTailLines := 0
	shortLines := 0
	for _, ln := range lines {
		length := len([]rune(ln))
		if length < 120 && numericTailRe.MatchString(ln) {
			numericTailLines++
		}
		if length <= 60 {
			shortLines++
		}
	}

	// Thresholds are empirical.
	score := 0
	if dotLeaderCount >= 3 {
		score++
	}
	if numericTailLines >= 6 {
		score++
	}
	if shortLines >= 25 {
		score++
	}
	return score >= 1
}
