package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ksjang99-lgtm/langchain-rag/internal/config"
	db "github.com/ksjang99-lgtm/langchain-rag/internal/core/database"
	"github.com/ksjang99-lgtm/langchain-rag/internal/core/extract"
	"github.com/ksjang99-lgtm/langchain-rag/internal/core/llm"
	"github.com/ksjang99-lgtm/langchain-rag/internal/core/objectstore"
	"github.com/ksjang99-lgtm/langchain-rag/internal/core/render"
	"github.com/ksjang99-lgtm/langchain-rag/internal/ingest"
	"github.com/ksjang99-lgtm/langchain-rag/internal/retrieval"
	"github.com/ksjang99-lgtm/langchain-rag/internal/services"
)

// App owns the process-wide client handles. Components receive them through
// constructors; nothing reaches into ambient state.
type App struct {
	DBClient *db.DatabaseClient
	Embedder *llm.GeminiEmbedder
	LLM      *llm.GeminiLLM
	Server   *Server
	log      zerolog.Logger
}

func NewApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	appCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	dbClient, err := db.NewDatabaseClient(appCtx, cfg)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	log.Info().Msg("database initialized and ready")

	objClient, err := objectstore.NewS3Client(appCtx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("object storage: %w", err)
	}
	log.Info().Msg("object client initialized and ready")

	embedder, err := llm.NewGeminiEmbedder(appCtx, cfg.AIAPIKey, cfg.EmbedModel, cfg.EmbedDim)
	if err != nil {
		return nil, fmt.Errorf("embedder: %w", err)
	}

	llmProvider, err := llm.NewGeminiLLM(appCtx, cfg.AIAPIKey, cfg.GenModel)
	if err != nil {
		return nil, fmt.Errorf("llm: %w", err)
	}

	ingestor := ingest.NewIngestor(
		dbClient,
		objClient,
		embedder,
		extract.NewPDFExtractor(),
		render.NewPopplerRenderer(cfg.RenderDPI),
		ingest.Config{ChunkSize: cfg.ChunkSize, ChunkOverlap: cfg.ChunkOverlap},
		log,
	)

	retriever := retrieval.NewRetriever(embedder, dbClient, cfg.TopK)
	queryService := services.NewQueryService(retriever, llmProvider, cfg.SimilarityThreshold, cfg.MaxRelatedPages, log)
	deleteService := services.NewDeleteService(dbClient, objClient, log)

	server := NewServer(cfg, dbClient, ingestor, queryService, deleteService, llmProvider, log)

	return &App{
		DBClient: dbClient,
		Embedder: embedder,
		LLM:      llmProvider,
		Server:   server,
		log:      log,
	}, nil
}

func (a *App) Close() {
	if a.Embedder != nil {
		_ = a.Embedder.Close()
	}
	if a.LLM != nil {
		_ = a.LLM.Close()
	}
	if a.DBClient != nil {
		_ = a.DBClient.Close()
	}
}
