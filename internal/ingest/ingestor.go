package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ksjang99-lgtm/langchain-rag/internal/core"
	"github.com/ksjang99-lgtm/langchain-rag/internal/models"
	"github.com/ksjang99-lgtm/langchain-rag/internal/textutil"
)

// Store is the slice of persistence the indexer needs.
type Store interface {
	CreateDocument(ctx context.Context, doc *models.Document) error
	UpsertPage(ctx context.Context, page *models.Page) error
	InsertChunks(ctx context.Context, chunks []models.Chunk) error
}

// Config tunes segmentation and embedding pacing.
//
// ChunkSize / ChunkOverlap set the character window for segmentation.
// PauseEvery / PauseFor pace outbound embedding calls: a short pause after
// every batch of embedded chunks keeps the hosted API's rate limiter happy
// without affecting insert order.
type Config struct {
	ChunkSize    int
	ChunkOverlap int
	PauseEvery   int
	PauseFor     time.Duration
}

// Ingestor builds the corpus index: one Document, one Page row per physical
// PDF page, and embedded Chunks for every page with extractable text.
type Ingestor struct {
	store     Store
	obj       core.ObjectClient
	embedder  core.EmbeddingProvider
	extractor core.PageExtractor
	renderer  core.PageRenderer
	cfg       Config
	log       zerolog.Logger
}

func NewIngestor(store Store, obj core.ObjectClient, emb core.EmbeddingProvider, ext core.PageExtractor, ren core.PageRenderer, cfg Config, log zerolog.Logger) *Ingestor {
	if cfg.PauseEvery <= 0 {
		cfg.PauseEvery = 60
	}
	if cfg.PauseFor <= 0 {
		cfg.PauseFor = 250 * time.Millisecond
	}
	return &Ingestor{
		store: store, obj: obj, embedder: emb, extractor: ext, renderer: ren,
		cfg: cfg, log: log,
	}
}

// IngestPDF creates a new document from raw PDF bytes and populates its
// pages and chunks. Pages are processed sequentially; a wrong-length
// embedding aborts the whole ingest. Pages without extractable text are
// still recorded (image plus TOC flag) but contribute no chunks.
func (i *Ingestor) IngestPDF(ctx context.Context, pdfBytes []byte, title string) (string, int, error) {
	doc := &models.Document{
		ID:        uuid.NewString(),
		Title:     title,
		FileName:  title + ".pdf",
		CreatedAt: time.Now().UTC(),
	}
	if err := i.store.CreateDocument(ctx, doc); err != nil {
		return "", 0, fmt.Errorf("create document: %w", err)
	}

	pages, err := i.extractor.ExtractPages(pdfBytes)
	if err != nil {
		return "", 0, fmt.Errorf("extract pages: %w", err)
	}

	totalChunks := 0
	for idx, text := range pages {
		pageNumber := idx + 1
		isTOC := textutil.IsTOCPage(text)

		imagePath, imageURL, err := i.storePageImage(ctx, doc.ID, pdfBytes, pageNumber)
		if err != nil {
			return "", 0, err
		}

		page := &models.Page{
			DocumentID: doc.ID,
			PageNumber: pageNumber,
			ImagePath:  imagePath,
			ImageURL:   imageURL,
			IsTOC:      isTOC,
		}
		if err := i.store.UpsertPage(ctx, page); err != nil {
			return "", 0, fmt.Errorf("upsert page %d: %w", pageNumber, err)
		}

		segments := textutil.ChunkText(text, i.cfg.ChunkSize, i.cfg.ChunkOverlap)
		if len(segments) == 0 {
			continue
		}

		embeddings, err := i.embedder.EmbedTexts(ctx, segments)
		if err != nil {
			return "", 0, fmt.Errorf("embed page %d: %w", pageNumber, err)
		}

		chunks := make([]models.Chunk, 0, len(segments))
		for ci, seg := range segments {
			chunks = append(chunks, models.Chunk{
				DocumentID: doc.ID,
				PageNumber: pageNumber,
				ChunkIndex: ci,
				Content:    seg,
				Embedding:  embeddings[ci],
				IsTOC:      isTOC,
			})
		}
		if err := i.store.InsertChunks(ctx, chunks); err != nil {
			return "", 0, fmt.Errorf("insert chunks page %d: %w", pageNumber, err)
		}

		before := totalChunks
		totalChunks += len(chunks)
		if totalChunks/i.cfg.PauseEvery > before/i.cfg.PauseEvery {
			time.Sleep(i.cfg.PauseFor)
		}
	}

	i.log.Info().Str("doc_id", doc.ID).Int("pages", len(pages)).Int("chunks", totalChunks).Msg("ingest complete")
	return doc.ID, totalChunks, nil
}

// storePageImage rasterizes and uploads one page. A render failure means
// "no image" for that page; an upload failure (already retried once inside
// the object client) aborts the ingest.
func (i *Ingestor) storePageImage(ctx context.Context, docID string, pdfBytes []byte, pageNumber int) (path, url string, err error) {
	png, err := i.renderer.RenderPage(ctx, pdfBytes, pageNumber)
	if err != nil {
		i.log.Warn().Err(err).Int("page", pageNumber).Msg("page render failed, storing without image")
		return "", "", nil
	}

	key := fmt.Sprintf("%s/page_%04d.png", docID, pageNumber)
	uploaded, err := i.obj.UploadFile(ctx, key, png, "image/png")
	if err != nil {
		return "", "", fmt.Errorf("upload page image %d: %w", pageNumber, err)
	}
	return key, uploaded, nil
}
