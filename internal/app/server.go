package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/ksjang99-lgtm/langchain-rag/internal/api/handlers"
	"github.com/ksjang99-lgtm/langchain-rag/internal/config"
	"github.com/ksjang99-lgtm/langchain-rag/internal/core"
	"github.com/ksjang99-lgtm/langchain-rag/internal/ingest"
	"github.com/ksjang99-lgtm/langchain-rag/internal/services"
)

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
	log        zerolog.Logger
}

// NewServer builds and wires all routes.
func NewServer(cfg *config.Config, db core.DbClient, ing *ingest.Ingestor, query *services.QueryService, del *services.DeleteService, ocr core.ImageTextExtractor, log zerolog.Logger) *Server {
	docHandler := handlers.NewDocumentHandler(db, ing, del, log)
	chatHandler := handlers.NewChatHandler(query, ocr, log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8888"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(api chi.Router) {
		api.Post("/documents", docHandler.UploadDocument)
		api.Get("/documents", docHandler.GetDocuments)
		api.Get("/documents/{documentID}/pages/{pageNumber}/image", docHandler.GetPageImage)
		api.Delete("/documents/{documentID}", docHandler.DeleteDocument)

		api.Post("/chat/query", chatHandler.QueryDocuments)
		api.Post("/chat/ocr", chatHandler.ExtractQuestionText)
	})

	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	return &Server{httpServer: httpSrv, log: log}
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.httpServer.Addr).Msg("HTTP server listening")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
