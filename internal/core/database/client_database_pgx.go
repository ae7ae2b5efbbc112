package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pgvector/pgvector-go"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ksjang99-lgtm/langchain-rag/internal/config"
	"github.com/ksjang99-lgtm/langchain-rag/internal/core"
	"github.com/ksjang99-lgtm/langchain-rag/internal/models"
)

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(ctx context.Context, cfg *config.Config) (*DatabaseClient, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database client configuration is nil")
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(10 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := EnsureBootstrapped(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

func (c *DatabaseClient) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func (c *DatabaseClient) CreateDocument(ctx context.Context, doc *models.Document) error {
	if doc == nil {
		return errors.New("nil document")
	}
	const q = `
		INSERT INTO manual_docs (id, title, file_name, created_at)
		VALUES ($1, $2, $3, COALESCE($4, now()))
	`
	_, err := c.db.ExecContext(ctx, q, doc.ID, doc.Title, doc.FileName, doc.CreatedAt)
	return err
}

func (c *DatabaseClient) GetDocumentByID(ctx context.Context, id string) (*models.Document, error) {
	const q = `
		SELECT id, title, file_name, created_at
		FROM manual_docs
		WHERE id = $1
	`
	var d models.Document
	err := c.db.QueryRowContext(ctx, q, id).Scan(&d.ID, &d.Title, &d.FileName, &d.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *DatabaseClient) ListDocuments(ctx context.Context) ([]models.Document, error) {
	const q = `
		SELECT id, title, file_name, created_at
		FROM manual_docs
		ORDER BY created_at DESC
	`
	rows, err := c.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Document
	for rows.Next() {
		var d models.Document
		if err := rows.Scan(&d.ID, &d.Title, &d.FileName, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// UpsertPage writes one page row keyed by (doc_id, page_number) so that
// re-ingesting the same document stays idempotent at the page level.
func (c *DatabaseClient) UpsertPage(ctx context.Context, page *models.Page) error {
	if page == nil {
		return errors.New("nil page")
	}
	const q = `
		INSERT INTO manual_pages (doc_id, page_number, image_path, image_url, is_toc)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (doc_id, page_number)
		DO UPDATE SET image_path = EXCLUDED.image_path,
		              image_url = EXCLUDED.image_url,
		              is_toc = EXCLUDED.is_toc
	`
	_, err := c.db.ExecContext(ctx, q,
		page.DocumentID, page.PageNumber, page.ImagePath, page.ImageURL, page.IsTOC)
	return err
}

func (c *DatabaseClient) GetPage(ctx context.Context, docID string, pageNumber int) (*models.Page, error) {
	const q = `
		SELECT doc_id, page_number, image_path, image_url, is_toc
		FROM manual_pages
		WHERE doc_id = $1 AND page_number = $2
	`
	var p models.Page
	err := c.db.QueryRowContext(ctx, q, docID, pageNumber).Scan(
		&p.DocumentID, &p.PageNumber, &p.ImagePath, &p.ImageURL, &p.IsTOC)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *DatabaseClient) ListPageImagePaths(ctx context.Context, docID string) ([]string, error) {
	const q = `
		SELECT image_path
		FROM manual_pages
		WHERE doc_id = $1 AND image_path <> ''
	`
	rows, err := c.db.QueryContext(ctx, q, docID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, err
		}
		out = append(out, path)
	}
	return out, rows.Err()
}

// InsertChunks inserts chunks in a single transaction, preserving the
// caller's order so chunk_index reflects segmentation order.
func (c *DatabaseClient) InsertChunks(ctx context.Context, chunks []models.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	tx, err := c.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}

	const q = `
		INSERT INTO rag_chunks (doc_id, page_number, chunk_index, content, embedding, is_toc)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()

	for i := range chunks {
		ch := &chunks[i]
		vec := pgvector.NewVector(ch.Embedding)
		if _, err := stmt.ExecContext(ctx,
			ch.DocumentID, ch.PageNumber, ch.ChunkIndex, ch.Content, vec, ch.IsTOC,
		); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// SearchChunks returns the top-K chunks by cosine similarity, descending,
// optionally scoped to one document. Callers rely on this ordering for
// top-1 selection and never re-sort.
func (c *DatabaseClient) SearchChunks(ctx context.Context, queryVec []float32, topK int, docID *string) ([]models.Context, error) {
	const q = `
		SELECT id, doc_id, page_number, chunk_index, content,
		       1 - (embedding <=> $1) AS similarity
		FROM rag_chunks
		WHERE ($2::uuid IS NULL OR doc_id = $2::uuid)
		ORDER BY embedding <=> $1
		LIMIT $3
	`
	vec := pgvector.NewVector(queryVec)

	var filter any
	if docID != nil {
		filter = *docID
	}

	rows, err := c.db.QueryContext(ctx, q, vec, filter, topK)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Context
	for rows.Next() {
		var cx models.Context
		if err := rows.Scan(&cx.ID, &cx.DocumentID, &cx.PageNumber, &cx.ChunkIndex, &cx.Content, &cx.Similarity); err != nil {
			return nil, err
		}
		out = append(out, cx)
	}
	return out, rows.Err()
}

// The three deletes below are separate statements, not one transaction.
// A failure mid-sequence leaves pages or the document row behind; callers
// surface that through DeleteResult instead of pretending atomicity.

func (c *DatabaseClient) DeleteChunksByDocument(ctx context.Context, docID string) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM rag_chunks WHERE doc_id = $1`, docID)
	return err
}

func (c *DatabaseClient) DeletePagesByDocument(ctx context.Context, docID string) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM manual_pages WHERE doc_id = $1`, docID)
	return err
}

func (c *DatabaseClient) DeleteDocument(ctx context.Context, docID string) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM manual_docs WHERE id = $1`, docID)
	return err
}

var _ core.DbClient = (*DatabaseClient)(nil)
