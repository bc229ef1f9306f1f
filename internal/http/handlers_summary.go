package http

import (
	"net/http"
)

// handleSummary returns the aggregated totals for the current calendar
// month.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	summary, err := s.expenses.MonthlySummary(r.Context(), s.now())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
