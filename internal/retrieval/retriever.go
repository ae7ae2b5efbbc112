package retrieval

import (
	"context"
	"fmt"

	"github.com/ksjang99-lgtm/langchain-rag/internal/core"
	"github.com/ksjang99-lgtm/langchain-rag/internal/models"
)

// NoMatchSimilarity is reported when retrieval returns no contexts; it sits
// below any realistic cosine score so every threshold refuses on it.
const NoMatchSimilarity = -1.0

// Searcher is the slice of persistence the retriever needs.
type Searcher interface {
	SearchChunks(ctx context.Context, queryVec []float32, topK int, docID *string) ([]models.Context, error)
}

// Retriever embeds a question and ranks corpus chunks against it.
type Retriever struct {
	embedder core.EmbeddingProvider
	store    Searcher
	topK     int
}

func NewRetriever(embedder core.EmbeddingProvider, store Searcher, topK int) *Retriever {
	if topK <= 0 {
		topK = 10
	}
	return &Retriever{embedder: embedder, store: store, topK: topK}
}

// Retrieve returns the ranked contexts for a question plus the similarity
// of the best match. The store returns rows in descending similarity order;
// the first row's score is trusted as top-1 without re-sorting.
func (r *Retriever) Retrieve(ctx context.Context, question string, docID *string) ([]models.Context, float64, error) {
	vecs, err := r.embedder.EmbedTexts(ctx, []string{question})
	if err != nil {
		return nil, NoMatchSimilarity, fmt.Errorf("embed question: %w", err)
	}
	if len(vecs) == 0 {
		return nil, NoMatchSimilarity, fmt.Errorf("embed question: empty response")
	}

	contexts, err := r.store.SearchChunks(ctx, vecs[0], r.topK, docID)
	if err != nil {
		return nil, NoMatchSimilarity, fmt.Errorf("search chunks: %w", err)
	}

	top1 := NoMatchSimilarity
	if len(contexts) > 0 {
		top1 = contexts[0].Similarity
	}
	return contexts, top1, nil
}
