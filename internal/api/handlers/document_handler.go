package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ksjang99-lgtm/langchain-rag/internal/core"
	"github.com/ksjang99-lgtm/langchain-rag/internal/ingest"
	"github.com/ksjang99-lgtm/langchain-rag/internal/services"
)

// maxUploadBytes caps an uploaded manual at 100MB.
const maxUploadBytes = 100 << 20

type DocumentHandler struct {
	dbclient core.DbClient
	ingestor *ingest.Ingestor
	deleter  *services.DeleteService
	log      zerolog.Logger
}

func NewDocumentHandler(db core.DbClient, ing *ingest.Ingestor, del *services.DeleteService, log zerolog.Logger) *DocumentHandler {
	return &DocumentHandler{dbclient: db, ingestor: ing, deleter: del, log: log}
}

// UploadDocument ingests a manual PDF: multipart form with a "file" part
// and an optional "title" (defaults to the file name).
func (h *DocumentHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file part missing", http.StatusBadRequest)
		return
	}
	defer file.Close()

	pdfBytes, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		http.Error(w, "read upload failed", http.StatusInternalServerError)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		title = strings.TrimSuffix(header.Filename, ".pdf")
	}
	if title == "" {
		http.Error(w, "title missing", http.StatusBadRequest)
		return
	}

	docID, totalChunks, err := h.ingestor.IngestPDF(ctx, pdfBytes, title)
	if err != nil {
		h.log.Error().Err(err).Str("title", title).Msg("ingest failed")
		http.Error(w, "ingest failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"document_id":  docID,
		"total_chunks": totalChunks,
	})
}

func (h *DocumentHandler) GetDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.dbclient.ListDocuments(r.Context())
	if err != nil {
		http.Error(w, "list documents failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

// GetPageImage resolves a page's image URL. TOC pages and pages without an
// image return 404: navigational front-matter is never displayed.
func (h *DocumentHandler) GetPageImage(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "documentID")
	pageNumber, err := strconv.Atoi(chi.URLParam(r, "pageNumber"))
	if err != nil || pageNumber < 1 {
		http.Error(w, "invalid page number", http.StatusBadRequest)
		return
	}

	page, err := h.dbclient.GetPage(r.Context(), docID, pageNumber)
	if err != nil {
		http.Error(w, "page lookup failed", http.StatusInternalServerError)
		return
	}
	if page == nil || page.IsTOC || page.ImageURL == "" {
		http.Error(w, "no image for this page", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"image_url": page.ImageURL})
}

// DeleteDocument removes a document and its assets. The response always
// carries the structured result; callers inspect ok rather than the status.
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "documentID")
	result := h.deleter.DeleteDocument(r.Context(), docID)
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
