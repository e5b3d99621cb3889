package handler

import (
	"net/http"

	"github.com/pkordes/wanderplan/internal/domain"
)

// Pagination describes the page returned by a list endpoint.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// ExpenseList is one page of expenses.
type ExpenseList struct {
	Data       []domain.Expense `json:"data"`
	Pagination Pagination       `json:"pagination"`
}

// TransferList is the settlement plan.
type TransferList struct {
	Data []domain.Transfer `json:"data"`
}

// BalanceList is the per-traveler balances.
type BalanceList struct {
	Data []domain.Balance `json:"data"`
}

// ListExpenses handles GET /trip/expenses.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListExpenses(w http.ResponseWriter, r *http.Request) {
	var page, limit *int
	if !queryParam(w, r, "page", &page) || !queryParam(w, r, "limit", &limit) {
		return
	}
	params := domain.NewPaginationParams(page, limit)

	expenses, total, err := s.expenses.ListExpenses(r.Context(), params)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, ExpenseList{
		Data: expenses,
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// CreateExpense handles POST /trip/expenses.
func (s *Server) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var body domain.Expense
	if !s.decodeBody(w, r, &body) {
		return
	}
	created, err := s.expenses.RecordExpense(r.Context(), body)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// DeleteExpense handles DELETE /trip/expenses/{expenseId}.
func (s *Server) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	var id string
	if !pathParam(w, r, "expenseId", &id) {
		return
	}
	if err := s.expenses.DeleteExpense(r.Context(), id); err != nil {
		s.writeError(w, r, err, "expense not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetBalances handles GET /trip/balances. Amounts are rounded to cents.
func (s *Server) GetBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := s.expenses.Balances(r.Context())
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	out := make([]domain.Balance, len(balances))
	for i, b := range balances {
		out[i] = domain.Balance{
			TravelerID: b.TravelerID,
			Paid:       money(b.Paid),
			Owed:       money(b.Owed),
			Balance:    money(b.Balance),
		}
	}
	writeJSON(w, http.StatusOK, BalanceList{Data: out})
}

// GetSettlement handles GET /trip/settlement. Amounts are rounded to cents.
func (s *Server) GetSettlement(w http.ResponseWriter, r *http.Request) {
	transfers, err := s.expenses.Settlement(r.Context())
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	out := make([]domain.Transfer, len(transfers))
	for i, t := range transfers {
		out[i] = domain.Transfer{From: t.From, To: t.To, Amount: money(t.Amount)}
	}
	writeJSON(w, http.StatusOK, TransferList{Data: out})
}
