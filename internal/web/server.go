// Package web serves the prompt studio JSON API and its single page UI.
package web

import (
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"prompt-studio/internal/preview"
)

const maxBodyBytes = 25 << 20

type Options struct {
	// Preview may be nil; /api/preview then answers 503.
	Preview        *preview.Service
	Static         fs.FS
	RequestTimeout time.Duration
	Logger         *slog.Logger
}

type Server struct {
	preview        *preview.Service
	static         fs.FS
	requestTimeout time.Duration
	logger         *slog.Logger
}

func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = 240 * time.Second
	}
	return &Server{
		preview:        opts.Preview,
		static:         opts.Static,
		requestTimeout: timeout,
		logger:         logger,
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID, middleware.RealIP, middleware.Recoverer, accessLog(s.logger))

	r.Get("/healthz", s.health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", s.catalog)
		r.Get("/intelligence", s.intelligence)
		r.Post("/prompts", s.prompts)
		r.Post("/preview", s.previewImage)
	})

	if s.static != nil {
		r.Handle("/*", http.FileServer(http.FS(s.static)))
	}
	return r
}
