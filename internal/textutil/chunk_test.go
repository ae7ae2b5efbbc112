package textutil

import (
	"strings"
	"testing"
)

func TestChunkTextEmpty(t *testing.T) {
	if got := ChunkText("", 100, 20); got != nil {
		t.Errorf("Expected nil for empty text, got %v", got)
	}
	if got := ChunkText("   \n\t  ", 100, 20); got != nil {
		t.Errorf("Expected nil for whitespace-only text, got %v", got)
	}
}

func TestChunkTextShorterThanChunkSize(t *testing.T) {
	got := ChunkText("hello world", 100, 20)
	if len(got) != 1 || got[0] != "hello world" {
		t.Fatalf("Expected single chunk, got %v", got)
	}
}

func TestChunkTextWindowsAndOverlap(t *testing.T) {
	text := strings.Repeat("0123456789", 10) // 100 chars, no whitespace
	chunks := ChunkText(text, 30, 10)

	// Windows start at 0, 20, 40, 60, 80; the last one ends at 100.
	starts := []int{0, 20, 40, 60, 80}
	if len(chunks) != len(starts) {
		t.Fatalf("Expected %d chunks, got %d: %v", len(starts), len(chunks), chunks)
	}
	for i, start := range starts {
		end := start + 30
		if end > len(text) {
			end = len(text)
		}
		if chunks[i] != text[start:end] {
			t.Errorf("Chunk %d mismatch: got %q, want %q", i, chunks[i], text[start:end])
		}
	}
}

func TestChunkTextCoversWholeText(t *testing.T) {
	text := strings.Repeat("abcdefghij", 37) // 370 chars
	chunks := ChunkText(text, 90, 15)

	// Stitch chunks back: each step advances 75 chars, so trimming the
	// 15-char overlap from every chunk after the first must rebuild the text.
	var b strings.Builder
	b.WriteString(chunks[0])
	for _, c := range chunks[1:] {
		b.WriteString(c[15:])
	}
	if b.String() != text {
		t.Errorf("Reconstructed text does not match original")
	}
}

func TestChunkTextOverlapNotSmallerThanChunkSize(t *testing.T) {
	// overlap >= chunkSize must still terminate and make forward progress.
	text := strings.Repeat("x", 50)
	chunks := ChunkText(text, 10, 10)
	if len(chunks) == 0 {
		t.Fatal("Expected chunks, got none")
	}
	if len(chunks) > len(text) {
		t.Errorf("Too many chunks (%d), forward progress broken", len(chunks))
	}

	chunks = ChunkText(text, 10, 25)
	if len(chunks) == 0 || len(chunks) > len(text) {
		t.Errorf("Overlap > chunkSize misbehaved: %d chunks", len(chunks))
	}
}

func TestChunkTextKoreanRuneBoundaries(t *testing.T) {
	text := strings.Repeat("장비매뉴얼", 20) // 100 runes
	chunks := ChunkText(text, 30, 10)
	for i, c := range chunks {
		if !strings.ContainsAny(c, "장비매뉴얼") {
			t.Errorf("Chunk %d lost content: %q", i, c)
		}
		if len([]rune(c)) > 30 {
			t.Errorf("Chunk %d exceeds 30 runes: %d", i, len([]rune(c)))
		}
	}
}

func TestNormalizeVerticalText(t *testing.T) {
	if got := NormalizeVerticalText("E\nR\nR\nO\nR"); got != "ERROR" {
		t.Errorf("Expected ERROR, got %q", got)
	}
	if got := NormalizeVerticalText("first line\nsecond line"); got != "first line second line" {
		t.Errorf("Expected joined lines, got %q", got)
	}
	if got := NormalizeVerticalText("  \n "); got != "" {
		t.Errorf("Expected empty, got %q", got)
	}
}
