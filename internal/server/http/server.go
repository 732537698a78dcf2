// Package http exposes the rewrite and speech services as a JSON API with
// a small embedded UI page.
package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/echoverse-team/echoverse/internal/history"
	"github.com/echoverse-team/echoverse/internal/service"
)

// Options configure the HTTP server.
type Options struct {
	Port     int
	AudioDir string
}

// Server hosts the EchoVerse API.
type Server struct {
	srv *http.Server
}

// New wires the services into a configured HTTP server.
func New(opts Options, rewriteSvc *service.Rewrite, speechSvc *service.Speech, store history.Store) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(requestLogger)

	api := humachi.New(router, huma.DefaultConfig("EchoVerse", "1.0.0"))

	NewRewriteHandler(api, rewriteSvc, store)
	NewSpeechHandler(api, speechSvc, store)
	NewProcessHandler(api, rewriteSvc, speechSvc, store)
	NewHistoryHandler(api, store)
	NewStatsHandler(api)
	NewHealthHandler(api, rewriteSvc, speechSvc)

	registerUI(router)

	// Generated audio files are downloadable by name.
	router.Handle("/audio/*", http.StripPrefix("/audio/",
		http.FileServer(http.Dir(opts.AudioDir))))

	return &Server{
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// ListenAndServe blocks serving requests until Shutdown or failure.
func (s *Server) ListenAndServe() error {
	slog.Info("HTTP server listening", "addr", s.srv.Addr)

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// requestLogger logs one line per request through slog.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		slog.Debug("Request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"elapsed", time.Since(start),
		)
	})
}
