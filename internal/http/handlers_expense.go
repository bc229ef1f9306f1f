package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"gastos/internal/core"
)

// createExpenseRequest mirrors core.Expense with a pointer amount so a
// payload that omits the field entirely can be told apart from an
// explicit zero.
type createExpenseRequest struct {
	Amount        *decimal.Decimal `json:"amount"`
	Currency      core.Currency    `json:"currency"`
	Category      string           `json:"category"`
	CategoryID    *int64           `json:"category_id"`
	Subcategory   string           `json:"subcategory"`
	SubcategoryID *int64           `json:"subcategory_id"`
	Owner         string           `json:"owner"`
	Description   *string          `json:"description"`
	Date          string           `json:"date"`
}

func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listExpenses(w, r)
	case http.MethodPost:
		s.createExpense(w, r)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (s *Server) listExpenses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := core.ExpenseFilter{
		Category:    q.Get("category"),
		Subcategory: q.Get("subcategory"),
		Owner:       q.Get("owner"),
	}

	expenses, err := s.expenses.List(r.Context(), filter)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

func (s *Server) createExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Amount == nil {
		s.writeError(w, r, core.ErrMissingAmount)
		return
	}
	if req.Currency == "" {
		req.Currency = core.PEN
	}

	created, err := s.expenses.Create(r.Context(), core.Expense{
		Amount:        *req.Amount,
		Currency:      req.Currency,
		Category:      req.Category,
		CategoryID:    req.CategoryID,
		Subcategory:   req.Subcategory,
		SubcategoryID: req.SubcategoryID,
		Owner:         req.Owner,
		Description:   req.Description,
		Date:          req.Date,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleExpenseByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r.PathValue("id"))
	if !ok {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid expense ID")
		return
	}

	switch r.Method {
	case http.MethodGet:
		expense, err := s.expenses.Get(r.Context(), id)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, expense)

	case http.MethodPut:
		var update core.ExpenseUpdate
		if err := decodeJSON(r, &update); err != nil {
			writeErrorMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		updated, err := s.expenses.Update(r.Context(), id, update)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)

	case http.MethodDelete:
		if err := s.expenses.Delete(r.Context(), id); err != nil {
			s.writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		methodNotAllowed(w, "GET, PUT, DELETE")
	}
}
