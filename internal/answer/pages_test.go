package answer

import (
	"reflect"
	"testing"

	"github.com/ksjang99-lgtm/langchain-rag/internal/models"
)

func contextsWithPages(pages ...int) []models.Context {
	out := make([]models.Context, len(pages))
	for i, p := range pages {
		out[i] = models.Context{PageNumber: p}
	}
	return out
}

func TestMergePagesCitedThenBackfill(t *testing.T) {
	got := MergePages([]int{5, 2}, contextsWithPages(2, 9, 1, 1), 3)
	if !reflect.DeepEqual(got, []int{2, 5, 9}) {
		t.Errorf("Expected [2 5 9], got %v", got)
	}
}

func TestMergePagesCapHitWithinCited(t *testing.T) {
	got := MergePages([]int{5, 2, 7, 1}, contextsWithPages(9, 8), 2)
	if !reflect.DeepEqual(got, []int{2, 5}) {
		t.Errorf("Expected [2 5], got %v", got)
	}
}

func TestMergePagesDeduplicatesCited(t *testing.T) {
	got := MergePages([]int{5, 2, 5}, contextsWithPages(9), 4)
	if !reflect.DeepEqual(got, []int{2, 5, 9}) {
		t.Errorf("Expected [2 5 9], got %v", got)
	}
}

func TestMergePagesBackfillOnly(t *testing.T) {
	got := MergePages(nil, contextsWithPages(7, 3, 7, 1), 6)
	if !reflect.DeepEqual(got, []int{1, 3, 7}) {
		t.Errorf("Expected [1 3 7], got %v", got)
	}
}

func TestMergePagesEmptyInputs(t *testing.T) {
	got := MergePages(nil, nil, 6)
	if got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil list, got %v", got)
	}
}
