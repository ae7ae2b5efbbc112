package models

import (
	"time"
)

// Document represents one ingested manual PDF.
type Document struct {
	ID        string    `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	FileName  string    `db:"file_name" json:"file_name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Page represents one physical PDF page of a document.
// Pages are upserted by (doc_id, page_number) so re-ingest is idempotent.
type Page struct {
	DocumentID string `db:"doc_id" json:"doc_id"`
	PageNumber int    `db:"page_number" json:"page_number"` // 1-based
	ImagePath  string `db:"image_path" json:"image_path"`   // storage key, empty when no image
	ImageURL   string `db:"image_url" json:"image_url"`
	IsTOC      bool   `db:"is_toc" json:"is_toc"`
}

// Chunk is one embedded slice of a page's text.
type Chunk struct {
	DocumentID string    `db:"doc_id" json:"doc_id"`
	PageNumber int       `db:"page_number" json:"page_number"`
	ChunkIndex int       `db:"chunk_index" json:"chunk_index"` // zero-based within the page
	Content    string    `db:"content" json:"content"`
	Embedding  []float32 `db:"embedding" json:"embedding"` // pgvector column
	IsTOC      bool      `db:"is_toc" json:"is_toc"`
}

// Context is a retrieved chunk scored against the current question.
// Query-time only, never persisted.
type Context struct {
	ID         int64   `json:"id"`
	DocumentID string  `json:"doc_id"`
	PageNumber int     `json:"page_number"`
	ChunkIndex int     `json:"chunk_index"`
	Content    string  `json:"content"`
	Similarity float64 `json:"similarity"`
}

// QueryResult is the final outcome of one question.
type QueryResult struct {
	Answer             string  `json:"answer"`
	RelatedPages       []int   `json:"related_pages"`
	ResolvedDocumentID string  `json:"resolved_document_id,omitempty"`
	Top1Similarity     float64 `json:"top1_similarity"`
}

// DeleteResult reports a document deletion. Storage cleanup is best-effort
// and reported separately from the metadata deletes; callers inspect the
// result instead of relying on an error.
type DeleteResult struct {
	OK             bool     `json:"ok"`
	Error          string   `json:"error,omitempty"`
	StorageDeleted int      `json:"storage_deleted"`
	StorageFailed  []string `json:"storage_failed"`
}
