package textutil

import (
	"strings"
	"testing"
)

func TestIsTOCPageKoreanNumericTails(t *testing.T) {
	lines := []string{"목차"}
	for i := 1; i <= 7; i++ {
		lines = append(lines, strings.Repeat("항목 ", 3)+"........ "+string(rune('0'+i)))
	}
	if !IsTOCPage(strings.Join(lines, "\n")) {
		t.Error("Expected TOC page with 목차 header and numeric tails")
	}
}

func TestIsTOCPageEnglishDotLeaders(t *testing.T) {
	page := "Table of Contents\n" +
		"Introduction ........ 1\n" +
		"Safety ........ 5\n" +
		"Maintenance ........ 12\n"
	if !IsTOCPage(page) {
		t.Error("Expected TOC page with dot leaders")
	}
}

func TestIsTOCPageKeywordButProse(t *testing.T) {
	page := "목차라는 단어가 본문에 한 번 등장하지만 이 페이지는 장비의 동작 원리를 길게 설명하는 산문으로만 구성되어 있으며 점선이나 페이지 번호로 끝나는 줄이 전혀 없습니다. " +
		strings.Repeat("이 문장은 매우 길어서 짧은 줄 판정에 걸리지 않도록 예순 글자를 넘기기 위해 계속 이어집니다. ", 2)
	if IsTOCPage(page) {
		t.Error("Keyword alone without structural signals must not classify as TOC")
	}
}

func TestIsTOCPageNoKeyword(t *testing.T) {
	page := "Chapter 1 ........ 1\nChapter 2 ........ 2\nChapter 3 ........ 3\n" +
		"a 1\nb 2\nc 3\nd 4\ne 5\nf 6\n"
	if IsTOCPage(page) {
		t.Error("Structural signals without the keyword gate must not classify as TOC")
	}
}

func TestIsTOCPageEmpty(t *testing.T) {
	if IsTOCPage("") || IsTOCPage("   \n ") {
		t.Error("Blank page must not classify as TOC")
	}
}

func TestIsTOCPageShortLineSignal(t *testing.T) {
	lines := []string{"contents"}
	for i := 0; i < 30; i++ {
		lines = append(lines, "short entry line")
	}
	if !IsTOCPage(strings.Join(lines, "\n")) {
		t.Error("25+ short lines behind the keyword should classify as TOC")
	}
}
