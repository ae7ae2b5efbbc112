package answer

import "testing"

func TestIsRefusalCanonicalAndVariants(t *testing.T) {
	refusals := []string{
		Refusal,
		"문서에 존재하지 않습니다",
		"근거를 찾을 수 없습니다",
		"해당 내용은 확인할 수 없습니다.",
		"매뉴얼 어디에도 관련 내용이 없습니다.",
		"문서에서 해당 절차를 찾을 수 없습니다.",
		"",
		"   ",
	}
	for _, a := range refusals {
		if !IsRefusal(a) {
			t.Errorf("Expected refusal for %q", a)
		}
	}
}

func TestIsRefusalNonRefusal(t *testing.T) {
	answers := []string{
		"1. 전원 스위치를 끕니다.\n2. 커버를 분리합니다.\n3. 필터를 교체합니다.",
		"압력 게이지가 2.5bar를 가리키면 정상입니다.",
	}
	for _, a := range answers {
		if IsRefusal(a) {
			t.Errorf("Expected non-refusal for %q", a)
		}
	}
}

func TestIsRefusalBoundedGap(t *testing.T) {
	// Gap over 20 characters between subject and predicate must not match.
	long := "문서" + "는 매우 길고 장황한 수식어구가 덧붙어 스물 글자를 확실히 넘어가는 경우" + "없습니다"
	if IsRefusal(long) {
		t.Errorf("Gap over 20 chars should not classify as refusal")
	}
}
