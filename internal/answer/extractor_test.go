package answer

import (
	"reflect"
	"testing"
)

func TestExtractValidObject(t *testing.T) {
	out := Extract(`{"answer": "1. 전원을 끄십시오.", "cited_pages": [7, 3]}`)
	if out.Answer != "1. 전원을 끄십시오." {
		t.Errorf("Answer mismatch: %q", out.Answer)
	}
	if !reflect.DeepEqual(out.CitedPages, []int{3, 7}) {
		t.Errorf("Expected [3 7], got %v", out.CitedPages)
	}
}

func TestExtractMalformedInputs(t *testing.T) {
	for _, raw := range []string{"not json", "{incomplete", "", "   ", "[1,2,3]"} {
		out := Extract(raw)
		if out.Answer != Refusal {
			t.Errorf("Extract(%q): expected canonical refusal, got %q", raw, out.Answer)
		}
		if len(out.CitedPages) != 0 {
			t.Errorf("Extract(%q): expected no cited pages, got %v", raw, out.CitedPages)
		}
	}
}

func TestExtractMissingAnswerField(t *testing.T) {
	out := Extract(`{"cited_pages": [1, 2]}`)
	if out.Answer != Refusal || len(out.CitedPages) != 0 {
		t.Errorf("Missing answer field must degrade to refusal, got %+v", out)
	}
}

func TestExtractMarkdownFenced(t *testing.T) {
	raw := "```json\n{\"answer\": \"2번 밸브를 잠그십시오.\", \"cited_pages\": [12]}\n```"
	out := Extract(raw)
	if out.Answer != "2번 밸브를 잠그십시오." {
		t.Errorf("Fenced JSON not parsed: %q", out.Answer)
	}
	if !reflect.DeepEqual(out.CitedPages, []int{12}) {
		t.Errorf("Expected [12], got %v", out.CitedPages)
	}
}

func TestExtractProseWrapped(t *testing.T) {
	raw := "다음은 결과입니다: {\"answer\": \"필터를 교체하십시오.\", \"cited_pages\": [4]} 이상입니다."
	out := Extract(raw)
	if out.Answer != "필터를 교체하십시오." {
		t.Errorf("Prose-wrapped JSON not parsed: %q", out.Answer)
	}
}

func TestExtractCitationCoercion(t *testing.T) {
	out := Extract(`{"answer": "ok", "cited_pages": [3, "x", 3, 7]}`)
	if !reflect.DeepEqual(out.CitedPages, []int{3, 7}) {
		t.Errorf("Expected [3 7], got %v", out.CitedPages)
	}

	out = Extract(`{"answer": "ok", "cited_pages": ["5", 2.0, null, true]}`)
	if !reflect.DeepEqual(out.CitedPages, []int{2, 5}) {
		t.Errorf("Expected [2 5], got %v", out.CitedPages)
	}
}

func TestExtractNoCitedPagesField(t *testing.T) {
	out := Extract(`{"answer": "ok"}`)
	if out.Answer != "ok" {
		t.Errorf("Answer mismatch: %q", out.Answer)
	}
	if out.CitedPages == nil || len(out.CitedPages) != 0 {
		t.Errorf("Expected empty non-nil page set, got %v", out.CitedPages)
	}
}
