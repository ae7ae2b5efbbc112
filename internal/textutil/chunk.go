package textutil

import "strings"

// ChunkText splits text into overlapping windows of chunkSize characters,
// advancing by chunkSize-overlap per step. Windows are trimmed and empty
// windows dropped. Sizes are in characters (runes), not bytes, so Korean
// text chunks the same as ASCII.
func ChunkText(text string, chunkSize, overlap int) []string {
	text = strings.TrimSpace(text)
	if text == "" || chunkSize <= 0 {
		return nil
	}

	runes := []rune(text)
	n := len(runes)

	var chunks []string
	start := 0
	for start < n {
		end := start + chunkSize
		if end > n {
			end = n
		}
		if c := strings.TrimSpace(string(runes[start:end])); c != "" {
			chunks = append(chunks, c)
		}
		if end == n {
			break
		}
		next := end - overlap
		if next < 0 {
			next = 0
		}
		// overlap >= chunkSize would otherwise stall the window
		if next <= start {
			next = start + 1
		}
		start = next
	}
	return chunks
}

// NormalizeVerticalText flattens vertical OCR output into a horizontal
// string, e.g. "E\nR\nR\nO\nR" -> "ERROR". Anything else is joined with
// single spaces.
func NormalizeVerticalText(text string) string {
	var lines []string
	for _, ln := range strings.Split(text, "\n") {
		if ln = strings.TrimSpace(ln); ln != "" {
			lines = append(lines, ln)
		}
	}
	if len(lines) == 0 {
		return ""
	}
	single := true
	for _, ln := range lines {
		if len([]rune(ln)) != 1 {
			single = false
			break
		}
	}
	if single {
		return strings.Join(lines, "")
	}
	return strings.Join(lines, " ")
}
