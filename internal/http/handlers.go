package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"expensetracker/internal/core"
	"expensetracker/internal/storage"
)

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleAddExpense(w, r)
	case http.MethodGet:
		s.handleListExpensesByRange(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

type addExpenseRequest struct {
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory"`
	Remark      string  `json:"remark"`
}

type addExpenseResponse struct {
	Status  string `json:"status"`
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var req addExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.ErrorContext(r.Context(), "Parse request body error", "error", err, "url", r.URL.Path)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry := core.Entry{
		Date:        strings.TrimSpace(req.Date),
		Amount:      req.Amount,
		Category:    strings.TrimSpace(req.Category),
		Subcategory: strings.TrimSpace(req.Subcategory),
		Remark:      strings.TrimSpace(req.Remark),
	}

	id, err := s.ledger.AddExpense(r.Context(), entry)
	if err != nil {
		s.writeOperationError(w, r, err, "failed to add expense")
		return
	}

	writeJSON(w, http.StatusOK, addExpenseResponse{
		Status:  "success",
		ID:      id,
		Message: "Transaction committed.",
	})
}

func (s *Server) handleListExpensesByRange(w http.ResponseWriter, r *http.Request) {
	startDate := strings.TrimSpace(r.URL.Query().Get("start_date"))
	endDate := strings.TrimSpace(r.URL.Query().Get("end_date"))
	if startDate == "" || endDate == "" {
		writeError(w, http.StatusBadRequest, "start_date and end_date are required")
		return
	}

	records, err := s.ledger.ListExpensesByRange(r.Context(), startDate, endDate)
	if err != nil {
		s.writeOperationError(w, r, err, "failed to retrieve records")
		return
	}

	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleExpensesByCategory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	category := strings.TrimSpace(r.URL.Query().Get("category"))
	if category == "" {
		writeError(w, http.StatusBadRequest, "category is required")
		return
	}

	records, err := s.ledger.GetExpensesByCategory(r.Context(), category)
	if err != nil {
		s.writeOperationError(w, r, err, "failed to retrieve records")
		return
	}

	writeJSON(w, http.StatusOK, records)
}

type totalSpendingResponse struct {
	TotalSpending float64 `json:"total_spending"`
}

func (s *Server) handleTotalSpending(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	total, err := s.ledger.GetTotalSpending(r.Context())
	if err != nil {
		s.writeOperationError(w, r, err, "failed to retrieve total spending")
		return
	}

	writeJSON(w, http.StatusOK, totalSpendingResponse{TotalSpending: total})
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()
	startDate := strings.TrimSpace(q.Get("start_date"))
	endDate := strings.TrimSpace(q.Get("end_date"))
	category := strings.TrimSpace(q.Get("category"))
	if startDate == "" || endDate == "" {
		writeError(w, http.StatusBadRequest, "start_date and end_date are required")
		return
	}

	summaries, err := s.ledger.Summarize(r.Context(), startDate, endDate, category)
	if err != nil {
		s.writeOperationError(w, r, err, "failed to summarize expenses")
		return
	}

	writeJSON(w, http.StatusOK, summaries)
}

// writeOperationError converts service errors into the structured error
// shape. Validation problems keep their field detail; storage failures are
// logged with full detail and surfaced with a generic message only.
func (s *Server) writeOperationError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var verr *core.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Status:  "error",
			Message: verr.Error(),
			Fields:  verr.Fields,
		})
		return
	}

	var serr *storage.StorageError
	if errors.As(err, &serr) {
		slog.ErrorContext(r.Context(), "Storage operation failed",
			"error", err, "url", r.URL.Path, "operation", serr.Op)
		writeError(w, http.StatusInternalServerError, serr.Message())
		return
	}

	slog.ErrorContext(r.Context(), "Operation failed", "error", err, "url", r.URL.Path)
	writeError(w, http.StatusInternalServerError, fallback)
}
