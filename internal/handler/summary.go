package handler

import (
	"net/http"

	"github.com/pkordes/wanderplan/internal/domain"
)

// GetSummary handles GET /trip/summary. Amounts are rounded to cents.
func (s *Server) GetSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.reports.Summary(r.Context())
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, roundSummary(sum))
}

func roundSummary(sum domain.Summary) domain.Summary {
	sum.Budget = money(sum.Budget)
	sum.Planned = money(sum.Planned)
	sum.Spent = money(sum.Spent)
	sum.BudgetUsedPct = money(sum.BudgetUsedPct)

	byCategory := make([]domain.CategoryTotal, len(sum.ByCategory))
	for i, c := range sum.ByCategory {
		byCategory[i] = domain.CategoryTotal{Category: c.Category, Amount: money(c.Amount)}
	}
	sum.ByCategory = byCategory

	byDay := make([]domain.DayTotal, len(sum.ByDay))
	for i, d := range sum.ByDay {
		byDay[i] = domain.DayTotal{DayIndex: d.DayIndex, Amount: money(d.Amount)}
	}
	sum.ByDay = byDay

	if sum.Bookings == nil {
		sum.Bookings = []domain.ItineraryItem{}
	}
	return sum
}
