package core

import (
	"context"
	"errors"

	"github.com/ksjang99-lgtm/langchain-rag/internal/models"
)

// ErrDimensionMismatch is returned when an embedding's length disagrees with
// the configured dimensionality. Checked identically at ingest and at query
// time so corpus and query vectors always live in the same space.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// DbClient defines all persistence operations the services need.
// It abstracts Postgres/pgvector so higher layers never depend on a specific DB.
type DbClient interface {
	CreateDocument(ctx context.Context, doc *models.Document) error
	GetDocumentByID(ctx context.Context, id string) (*models.Document, error)
	ListDocuments(ctx context.Context) ([]models.Document, error)

	UpsertPage(ctx context.Context, page *models.Page) error
	GetPage(ctx context.Context, docID string, pageNumber int) (*models.Page, error)
	ListPageImagePaths(ctx context.Context, docID string) ([]string, error)

	InsertChunks(ctx context.Context, chunks []models.Chunk) error
	SearchChunks(ctx context.Context, queryVec []float32, topK int, docID *string) ([]models.Context, error)

	DeleteChunksByDocument(ctx context.Context, docID string) error
	DeletePagesByDocument(ctx context.Context, docID string) error
	DeleteDocument(ctx context.Context, docID string) error

	Close() error
}

// ObjectClient defines interactions with S3 or any object storage.
// The bucket is bound at construction; DeleteFiles is best-effort and
// reports failed keys instead of aborting the batch.
type ObjectClient interface {
	UploadFile(ctx context.Context, key string, data []byte, contentType string) (url string, err error)
	DeleteFiles(ctx context.Context, keys []string) (deleted int, failed []string)
}

// EmbeddingProvider turns texts into fixed-dimension vectors. Implementations
// must validate dimensionality and return ErrDimensionMismatch on disagreement.
type EmbeddingProvider interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// LLMProvider generates free-form text from a system and user prompt.
type LLMProvider interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ImageTextExtractor reads the text off a photographed equipment screen so
// it can seed a question. Vertical character stacks come back as horizontal
// sentences.
type ImageTextExtractor interface {
	ExtractImageText(ctx context.Context, imageBytes []byte, mime string) (string, error)
}

// PageExtractor extracts the plain text of every physical page of a PDF,
// in order. A page without extractable text yields an empty string, never
// a missing entry; page numbering must stay dense.
type PageExtractor interface {
	ExtractPages(data []byte) ([]string, error)
}

// PageRenderer rasterizes one 1-based PDF page to an image.
type PageRenderer interface {
	RenderPage(ctx context.Context, pdfBytes []byte, pageNumber int) ([]byte, error)
}
