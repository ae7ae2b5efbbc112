package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ksjang99-lgtm/langchain-rag/internal/answer"
	"github.com/ksjang99-lgtm/langchain-rag/internal/core"
	"github.com/ksjang99-lgtm/langchain-rag/internal/models"
)

// ContextRetriever is what the pipeline needs from retrieval.
type ContextRetriever interface {
	Retrieve(ctx context.Context, question string, docID *string) ([]models.Context, float64, error)
}

// QueryService runs one question end to end: retrieve, gate, generate,
// extract, re-gate, classify, reconcile. Single caller, no fan-out.
type QueryService struct {
	retriever ContextRetriever
	llm       core.LLMProvider

	defaultThreshold float64
	maxRelatedPages  int
	log              zerolog.Logger
}

func NewQueryService(retriever ContextRetriever, llm core.LLMProvider, defaultThreshold float64, maxRelatedPages int, log zerolog.Logger) *QueryService {
	return &QueryService{
		retriever:        retriever,
		llm:              llm,
		defaultThreshold: defaultThreshold,
		maxRelatedPages:  maxRelatedPages,
		log:              log,
	}
}

// ProcessQuery answers a question against the corpus, optionally scoped to
// one document. threshold overrides the configured similarity threshold for
// this request (the UI exposes it as a slider).
func (s *QueryService) ProcessQuery(ctx context.Context, question string, docID *string, threshold *float64) (*models.QueryResult, error) {
	contexts, top1, err := s.retriever.Retrieve(ctx, question, docID)
	if err != nil {
		return nil, fmt.Errorf("retrieve: %w", err)
	}

	thr := s.defaultThreshold
	if threshold != nil {
		thr = *threshold
	}
	gate := answer.Gate{Threshold: thr}

	answerText := ""
	citedPages := []int{}

	if gate.OutOfScope(contexts, top1) {
		// No generation call: the refusal is free and exactly canonical.
		answerText = answer.Refusal
	} else {
		system, user := answer.BuildPrompts(question, contexts)
		raw, err := s.llm.Generate(ctx, system, user)
		if err != nil {
			return nil, fmt.Errorf("generate: %w", err)
		}

		ext := answer.Extract(raw)
		answerText = ext.Answer
		citedPages = ext.CitedPages

		if gate.Reconfirm(answerText, top1) {
			answerText = answer.Refusal
			citedPages = []int{}
		}
	}

	result := &models.QueryResult{
		Answer:         answerText,
		RelatedPages:   []int{},
		Top1Similarity: top1,
	}

	if !answer.IsRefusal(answerText) {
		result.RelatedPages = answer.MergePages(citedPages, contexts, s.maxRelatedPages)
		switch {
		case docID != nil:
			result.ResolvedDocumentID = *docID
		case len(contexts) > 0:
			result.ResolvedDocumentID = contexts[0].DocumentID
		}
	}

	s.log.Debug().
		Float64("top1", top1).
		Float64("threshold", thr).
		Bool("refused", answer.IsRefusal(answerText)).
		Int("related_pages", len(result.RelatedPages)).
		Msg("query processed")

	return result, nil
}
