package server

import (
	"context"
	"net/http"
	"time"

	"github.com/lipinotes/backend/internal/auth"
	"github.com/lipinotes/backend/internal/config"
	"github.com/lipinotes/backend/internal/http/handlers"
	"github.com/lipinotes/backend/internal/middleware"
	"github.com/lipinotes/backend/internal/ocr"
	"github.com/lipinotes/backend/internal/storage"
	"github.com/lipinotes/backend/internal/upload"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.Store, extractor ocr.Extractor, uploads *upload.DiskStore) *Server {
	mux := http.NewServeMux()
	tokens := auth.NewTokenManager(cfg.SessionSecret, cfg.SessionIssuer, cfg.SessionTTL)

	handlers.NewHealthHandler(time.Now()).Register(mux)
	handlers.NewAuthHandler(store, tokens).Register(mux)
	handlers.NewNotesHandler(store, tokens).Register(mux)
	handlers.NewProfileHandler(store, tokens).Register(mux)
	handlers.NewOCRHandler(uploads, extractor, tokens).Register(mux)

	handler := middleware.CORS(cfg.CORSOrigins, middleware.Logging(mux))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
