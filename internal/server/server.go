// Package server provides the HTTP API for textract.
package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/docfox/textract/internal/analyze"
	"github.com/docfox/textract/internal/config"
	"github.com/docfox/textract/internal/extract"
	"go.uber.org/zap"
)

// Server is the HTTP server for the textract API.
type Server struct {
	extractor *extract.Extractor
	analyzer  *analyze.Client
	config    *config.Config
	logger    *zap.Logger
	version   string
	server    *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	extractor *extract.Extractor,
	analyzer *analyze.Client,
	cfg *config.Config,
	logger *zap.Logger,
	version string,
) *Server {
	return &Server{
		extractor: extractor,
		analyzer:  analyzer,
		config:    cfg,
		logger:    logger,
		version:   version,
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins(s.config.Server.CORSAllowOrigin),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "x-api-key"},
	}))

	r.Post("/api/v1/extract", s.handleExtract)
	r.Post("/api/v1/analyze", s.handleAnalyze)
	r.Get("/health", s.handleHealth)

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: r,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// allowedOrigins splits the comma-separated origin config into the list
// the CORS middleware wants.
func allowedOrigins(origins string) []string {
	var out []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		out = []string{"*"}
	}
	return out
}
