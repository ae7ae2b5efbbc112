package answer

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// Extraction is the parsed generator output.
type Extraction struct {
	Answer     string
	CitedPages []int
}

// refusalExtraction is returned whenever the generator output cannot be
// trusted; parsing never fails upward.
func refusalExtraction() Extraction {
	return Extraction{Answer: Refusal, CitedPages: []int{}}
}

// Extract parses the generator's raw output into an answer plus a
// deduplicated, ascending set of cited page numbers. The prompt mandates a
// single pure-JSON object, but fenced or prose-wrapped output is expected
// noise: the outermost JSON object is located before parsing, and any
// failure degrades to the canonical refusal.
func Extract(raw string) Extraction {
	s := strings.TrimSpace(raw)
	if s == "" {
		return refusalExtraction()
	}

	if obj := outerObject(s); obj != "" {
		s = obj
	}

	var data map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &data); err != nil {
		return refusalExtraction()
	}
	rawAnswer, ok := data["answer"]
	if !ok {
		return refusalExtraction()
	}

	var text string
	if err := json.Unmarshal(rawAnswer, &text); err != nil {
		// Non-string answer values are stringified, not rejected.
		text = string(rawAnswer)
	}

	return Extraction{
		Answer:     strings.TrimSpace(text),
		CitedPages: coercePages(data["cited_pages"]),
	}
}

// outerObject returns the substring from the first '{' to the last '}',
// which strips markdown fences and surrounding prose.
func outerObject(s string) string {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

// coercePages converts each raw cited-page value to an int. Entries that
// fail coercion are dropped, never fatal; the result is deduplicated and
// sorted ascending.
func coercePages(raw json.RawMessage) []int {
	pages := []int{}
	if raw == nil {
		return pages
	}
	var values []any
	if err := json.Unmarshal(raw, &values); err != nil {
		return pages
	}

	seen := make(map[int]bool)
	for _, v := range values {
		p, ok := coerceInt(v)
		if !ok || seen[p] {
			continue
		}
		seen[p] = true
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages
}

func coerceInt(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		return int(t), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
