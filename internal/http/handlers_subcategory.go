package http

import (
	"net/http"

	"gastos/internal/core"
)

func (s *Server) handleSubcategories(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		var categoryID int64
		if raw := r.URL.Query().Get("category_id"); raw != "" {
			id, ok := parseID(raw)
			if !ok {
				writeErrorMessage(w, http.StatusBadRequest, "Invalid category ID")
				return
			}
			categoryID = id
		}
		subcategories, err := s.subcategories.List(r.Context(), categoryID)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, subcategories)

	case http.MethodPost:
		var subcategory core.Subcategory
		if err := decodeJSON(r, &subcategory); err != nil {
			writeErrorMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		created, err := s.subcategories.Create(r.Context(), subcategory)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)

	case http.MethodPut:
		id, ok := parseID(r.URL.Query().Get("id"))
		if !ok {
			writeErrorMessage(w, http.StatusBadRequest, "Subcategory ID is required")
			return
		}
		var subcategory core.Subcategory
		if err := decodeJSON(r, &subcategory); err != nil {
			writeErrorMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		updated, err := s.subcategories.Update(r.Context(), id, subcategory)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)

	case http.MethodDelete:
		id, ok := parseID(r.URL.Query().Get("id"))
		if !ok {
			writeErrorMessage(w, http.StatusBadRequest, "Subcategory ID is required")
			return
		}
		if err := s.subcategories.Delete(r.Context(), id); err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Subcategory deleted successfully"})

	default:
		methodNotAllowed(w, "GET, POST, PUT, DELETE")
	}
}
