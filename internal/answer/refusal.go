package answer

import (
	"regexp"
	"strings"
)

// refusalPhrase is the canonical refusal without the trailing period, used
// for containment checks; Refusal is the exact string returned to users.
const refusalPhrase = "문서에 존재하지 않습니다"

// Refusal is the canonical answer when the corpus lacks evidence.
const Refusal = refusalPhrase + "."

// The generator is instructed to emit the canonical refusal literal, but it
// sometimes writes a refusal-shaped sentence instead. These patterns catch
// the common Korean variants with a bounded gap between subject and predicate.
var refusalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`존재하지\s*않습니다`),
	regexp.MustCompile(`찾을\s*수\s*없습니다`),
	regexp.MustCompile(`확인할\s*수\s*없습니다`),
	regexp.MustCompile(`근거(가|를)\s*찾을\s*수\s*없습니다`),
	regexp.MustCompile(`(문서|매뉴얼).{0,20}없습니다`),
	regexp.MustCompile(`(문서|매뉴얼).{0,20}존재하지`),
}

// IsRefusal reports whether the final answer text declines to answer.
// Blank text is a refusal (fail-closed).
func IsRefusal(text string) bool {
	a := strings.TrimSpace(text)
	if a == "" {
		return true
	}
	if strings.Contains(a, refusalPhrase) {
		return true
	}
	for _, p := range refusalPatterns {
		if p.MatchString(a) {
			return true
		}
	}
	return false
}
