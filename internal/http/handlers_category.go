package http

import (
	"net/http"

	"gastos/internal/core"
)

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		categories, err := s.categories.List(r.Context())
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, categories)

	case http.MethodPost:
		var category core.Category
		if err := decodeJSON(r, &category); err != nil {
			writeErrorMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		created, err := s.categories.Create(r.Context(), category)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)

	case http.MethodPut:
		id, ok := parseID(r.URL.Query().Get("id"))
		if !ok {
			writeErrorMessage(w, http.StatusBadRequest, "Category ID is required")
			return
		}
		var category core.Category
		if err := decodeJSON(r, &category); err != nil {
			writeErrorMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		updated, err := s.categories.Update(r.Context(), id, category)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)

	case http.MethodDelete:
		id, ok := parseID(r.URL.Query().Get("id"))
		if !ok {
			writeErrorMessage(w, http.StatusBadRequest, "Category ID is required")
			return
		}
		if err := s.categories.Delete(r.Context(), id); err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Category deleted successfully"})

	default:
		methodNotAllowed(w, "GET, POST, PUT, DELETE")
	}
}
