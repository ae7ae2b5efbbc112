package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ksjang99-lgtm/langchain-rag/internal/core"
	"github.com/ksjang99-lgtm/langchain-rag/internal/services"
	"github.com/ksjang99-lgtm/langchain-rag/internal/textutil"
)

// maxOCRImageBytes caps an uploaded screen photo at 10MB.
const maxOCRImageBytes = 10 << 20

type ChatHandler struct {
	query *services.QueryService
	ocr   core.ImageTextExtractor
	log   zerolog.Logger
}

func NewChatHandler(query *services.QueryService, ocr core.ImageTextExtractor, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{query: query, ocr: ocr, log: log}
}

type ChatRequest struct {
	Question   string   `json:"question"`
	DocumentID *string  `json:"document_id,omitempty"`
	Threshold  *float64 `json:"threshold,omitempty"`
}

// QueryDocuments answers one question against the corpus. document_id scopes
// retrieval to one manual; threshold overrides the configured similarity
// threshold for this request.
func (h *ChatHandler) QueryDocuments(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		http.Error(w, "question missing", http.StatusBadRequest)
		return
	}

	result, err := h.query.ProcessQuery(r.Context(), req.Question, req.DocumentID, req.Threshold)
	if err != nil {
		h.log.Error().Err(err).Msg("query failed")
		http.Error(w, "query failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ExtractQuestionText OCRs an uploaded equipment-screen photo into draft
// question text. Multipart form with an "image" part; the response text is
// already normalized (vertical character stacks flattened), so the client
// can drop it straight into the question box.
func (h *ChatHandler) ExtractQuestionText(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxOCRImageBytes); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "image part missing", http.StatusBadRequest)
		return
	}
	defer file.Close()

	imgBytes, err := io.ReadAll(io.LimitReader(file, maxOCRImageBytes))
	if err != nil {
		http.Error(w, "read upload failed", http.StatusInternalServerError)
		return
	}

	mime := header.Header.Get("Content-Type")
	if mime == "" {
		mime = "image/png"
	}

	raw, err := h.ocr.ExtractImageText(r.Context(), imgBytes, mime)
	if err != nil {
		h.log.Error().Err(err).Msg("image ocr failed")
		http.Error(w, "ocr failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"text": textutil.NormalizeVerticalText(raw),
	})
}
