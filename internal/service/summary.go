package service

import (
	"cmp"
	"context"
	"slices"

	"github.com/pkordes/wanderplan/internal/domain"
)

var summaryCategories = []domain.Category{
	domain.CategoryTransport,
	domain.CategoryActivity,
	domain.CategoryFood,
	domain.CategoryAccommodation,
}

// Summary returns the budget overview. Planned figures sum item costs; Spent
// is the ledger total. Every category and every trip day is listed, zero or not.
func (s *TripService) Summary(ctx context.Context) (domain.Summary, error) {
	var out domain.Summary
	err := s.withTrip("Summary", func() error {
		out = s.summarize()
		return nil
	})
	return out, err
}

// summarize requires s.mu.
func (s *TripService) summarize() domain.Summary {
	sum := domain.Summary{
		Budget:       s.trip.Budget,
		Spent:        s.ledger.TotalSpent(),
		ByCategory:   make([]domain.CategoryTotal, len(summaryCategories)),
		ByDay:        make([]domain.DayTotal, s.trip.DurationDays),
		Bookings:     []domain.ItineraryItem{},
		ExpenseCount: len(s.trip.Expenses),
		ItemCount:    len(s.trip.Items),
	}
	for i, c := range summaryCategories {
		sum.ByCategory[i].Category = c
	}
	for i := range sum.ByDay {
		sum.ByDay[i].DayIndex = i + 1
	}
	if s.pending != nil {
		sum.PendingPlanSize = len(s.pending.Items)
	}

	for _, it := range s.store.Items() {
		if it.BookingLink != "" {
			sum.Bookings = append(sum.Bookings, it)
		}
		if it.Cost == nil {
			continue
		}
		sum.Planned += *it.Cost
		if i := slices.Index(summaryCategories, it.Category); i >= 0 {
			sum.ByCategory[i].Amount += *it.Cost
		}
		if it.DayIndex >= 1 && it.DayIndex <= len(sum.ByDay) {
			sum.ByDay[it.DayIndex-1].Amount += *it.Cost
		}
	}
	slices.SortStableFunc(sum.Bookings, byDayAndTime)

	if sum.Budget > 0 {
		sum.BudgetUsedPct = min(sum.Planned/sum.Budget*100, 100)
	}
	return sum
}

func byDayAndTime(a, b domain.ItineraryItem) int {
	return cmp.Or(cmp.Compare(a.DayIndex, b.DayIndex), cmp.Compare(a.StartTime, b.StartTime))
}
