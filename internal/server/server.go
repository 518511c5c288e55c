// Package server serves the book library and reveal snapshots over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/metcalfc/bcc/internal/book"
	"github.com/metcalfc/bcc/internal/reveal"
)

// ShutdownTimeout bounds how long Serve waits for in-flight requests.
const ShutdownTimeout = 10 * time.Second

type errorResponse struct {
	Error string `json:"error"`
}

// Server answers read-only requests against a library.
type Server struct {
	lib     *book.Library
	logger  *log.Logger
	handler http.Handler
}

// New returns a server for lib. A nil logger discards access logs.
func New(lib *book.Library, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Server{lib: lib, logger: logger}

	mux := http.NewServeMux()
	for _, prefix := range []string{"/books", "/api/books"} {
		mux.HandleFunc("GET "+prefix, s.handleList)
		mux.HandleFunc("GET "+prefix+"/{slug}", s.handleBook)
		mux.HandleFunc("GET "+prefix+"/{slug}/at/{position}", s.handleSnapshot)
	}
	mux.HandleFunc("GET /healthz", s.handleHealth)

	s.handler = withRequestLog(logger, withCORS(mux))
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Printf("bcc server listening on %s (library %s)", addr, s.lib.Dir())
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	s.logger.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// writeJSON encodes v before writing the status line so an encoding failure
// can still be reported as a 500.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Printf("error encoding response: %v", err)
		status = http.StatusInternalServerError
		data, _ = json.Marshal(errorResponse{Error: "Failed to encode response"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(data, '\n')); err != nil {
		s.logger.Printf("error writing response: %v", err)
	}
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	books, err := s.lib.List(r.Context())
	if err != nil {
		s.logger.Printf("error listing books: %v", err)
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to list books"})
		return
	}
	s.writeJSON(w, http.StatusOK, books)
}

// loadBook writes the error response itself and returns nil when the book
// cannot be served.
func (s *Server) loadBook(w http.ResponseWriter, r *http.Request) *book.Book {
	slug := r.PathValue("slug")
	b, err := s.lib.Load(r.Context(), slug)
	switch {
	case errors.Is(err, book.ErrNotFound):
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "Book not found"})
		return nil
	case err != nil:
		s.logger.Printf("error loading book %s: %v", slug, err)
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to load book data"})
		return nil
	}
	return b
}

func (s *Server) handleBook(w http.ResponseWriter, r *http.Request) {
	if b := s.loadBook(w, r); b != nil {
		s.writeJSON(w, http.StatusOK, b)
	}
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	position, err := strconv.Atoi(r.PathValue("position"))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "position must be an integer"})
		return
	}

	b := s.loadBook(w, r)
	if b == nil {
		return
	}
	if position < 0 || position >= len(b.Chunks) {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: fmt.Sprintf("position must be between 0 and %d", len(b.Chunks)-1),
		})
		return
	}

	s.writeJSON(w, http.StatusOK, reveal.TakeSnapshot(b, position))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
