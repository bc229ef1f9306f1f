package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"gastos/internal/core"
)

// errorResponse is the JSON body of every non-2xx response.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeError maps domain errors to HTTP statuses. Unexpected errors become
// opaque 500s; details are attached outside production.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrValidation),
		errors.Is(err, core.ErrCategoryInUse),
		errors.Is(err, core.ErrSubcategoryInUse):
		writeErrorMessage(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, core.ErrNotFound):
		writeErrorMessage(w, http.StatusNotFound, "not found")

	default:
		slog.ErrorContext(r.Context(), "Request failed",
			"method", r.Method, "url", r.URL.Path, "error", err)
		resp := errorResponse{Error: "Internal server error"}
		if !s.production {
			resp.Details = err.Error()
		}
		writeJSON(w, http.StatusInternalServerError, resp)
	}
}

// decodeJSON decodes the request body into dst, rejecting unparseable
// payloads.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return nil
}

// parseID parses a positive integer id, typically from a path segment or
// query parameter.
func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// methodNotAllowed replies 405 with the allowed methods.
func methodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	writeErrorMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
}
