package answer

import (
	"strings"

	"github.com/ksjang99-lgtm/langchain-rag/internal/models"
)

// confirmMargin widens the threshold for the post-generation check. The
// similarity signal is noisy near the boundary, so a generated answer at
// [threshold, threshold+margin) is still overridden to a refusal.
const confirmMargin = 0.02

// Gate decides whether the system may answer or must refuse.
type Gate struct {
	Threshold float64
}

// OutOfScope is the pre-generation check: refuse without calling the
// generator when nothing was retrieved or the best match is below the
// threshold. Similarity exactly at the threshold answers.
func (g Gate) OutOfScope(contexts []models.Context, top1Similarity float64) bool {
	return len(contexts) == 0 || top1Similarity < g.Threshold
}

// Reconfirm is the stricter post-generation check: a generated answer that
// does not already refuse is overridden when top-1 similarity sits inside
// the margin band above the threshold.
func (g Gate) Reconfirm(answerText string, top1Similarity float64) bool {
	return !strings.Contains(answerText, refusalPhrase) &&
		top1Similarity < g.Threshold+confirmMargin
}
