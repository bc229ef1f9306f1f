// Package http exposes the expense tracker's REST API.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"gastos/internal/services"
	"gastos/internal/storage"
)

type contextKey string

const requestIDKey contextKey = "request_id"

type Server struct {
	http.Server

	expenses      *services.ExpenseService
	categories    *storage.CategoryStore
	subcategories *storage.SubcategoryStore

	environment string
	production  bool
	now         func() time.Time
}

// Options carries the handler dependencies and environment knobs.
type Options struct {
	Expenses      *services.ExpenseService
	Categories    *storage.CategoryStore
	Subcategories *storage.SubcategoryStore
	Environment   string
	Production    bool

	// Now overrides the clock, mainly for tests. Defaults to time.Now.
	Now func() time.Time
}

// NewServer configures routes and middleware, returning a ready-to-run
// server.
func NewServer(addr string, opts Options) *Server {
	s := &Server{
		expenses:      opts.Expenses,
		categories:    opts.Categories,
		subcategories: opts.Subcategories,
		environment:   opts.Environment,
		production:    opts.Production,
		now:           opts.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.withMiddleware(s.handleHealth))
	mux.HandleFunc("/expenses", s.withMiddleware(s.handleExpenses))
	mux.HandleFunc("/expenses/{id}", s.withMiddleware(s.handleExpenseByID))
	mux.HandleFunc("/categories", s.withMiddleware(s.handleCategories))
	mux.HandleFunc("/subcategories", s.withMiddleware(s.handleSubcategories))
	mux.HandleFunc("/summary", s.withMiddleware(s.handleSummary))

	s.Server = http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// withMiddleware applies CORS, request identification, logging and panic
// recovery around a handler. Preflight requests are answered here and
// never reach the handler.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		requestID := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		defer func() {
			if rec := recover(); rec != nil {
				slog.ErrorContext(ctx, "Handler panicked",
					"request_id", requestID,
					"method", r.Method,
					"url", r.URL.Path,
					"panic", rec)
				writeErrorMessage(rw, http.StatusInternalServerError, "Internal server error")
			}
			slog.InfoContext(ctx, "Request completed",
				"request_id", requestID,
				"method", r.Method,
				"url", r.URL.Path,
				"status", rw.statusCode,
				"duration_ms", time.Since(start).Milliseconds())
		}()

		next(rw, r)
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":      "ok",
		"timestamp":   s.now().UTC().Format(time.RFC3339),
		"environment": s.environment,
	})
}
