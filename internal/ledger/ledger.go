// Package ledger records shared trip expenses and derives balances and a
// settlement plan from them. Like the itinerary store it is synchronous and
// unlocked; its owner serializes access.
package ledger

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/wanderplan/internal/domain"
)

// Ledger applies expense commands to the Expenses of a TripData.
type Ledger struct {
	trip *domain.TripData
}

// New returns a Ledger operating on trip.
func New(trip *domain.TripData) *Ledger {
	return &Ledger{trip: trip}
}

// RecordExpense validates expense and appends it. An empty ID is replaced by a
// new UUID.
// Returns domain.ErrValidation if the amount is not positive, the split is
// empty or repeats a traveler, or any referenced traveler is unknown.
func (l *Ledger) RecordExpense(expense domain.Expense) (domain.Expense, error) {
	expense = expense.Clone()
	if expense.ID == "" {
		expense.ID = uuid.NewString()
	} else if l.indexOf(expense.ID) >= 0 {
		return domain.Expense{}, fmt.Errorf("%w: expense id %q is already in use", domain.ErrValidation, expense.ID)
	}
	if err := l.validate(expense); err != nil {
		return domain.Expense{}, err
	}
	l.trip.Expenses = append(l.trip.Expenses, expense)
	return expense.Clone(), nil
}

// DeleteExpense removes the expense with the given id.
// Returns domain.ErrNotFound if it does not exist.
func (l *Ledger) DeleteExpense(id string) error {
	i := l.indexOf(id)
	if i < 0 {
		return fmt.Errorf("ledger.Ledger.DeleteExpense: expense %s %w", id, domain.ErrNotFound)
	}
	l.trip.Expenses = slices.Delete(l.trip.Expenses, i, i+1)
	return nil
}

// Expenses returns a copy of every expense in recording order.
func (l *Ledger) Expenses() []domain.Expense {
	out := make([]domain.Expense, len(l.trip.Expenses))
	for i, e := range l.trip.Expenses {
		out[i] = e.Clone()
	}
	return out
}

// ExpensesPage returns one page of expenses in recording order and the total
// number of expenses.
func (l *Ledger) ExpensesPage(p domain.PaginationParams) ([]domain.Expense, int) {
	return domain.Paginate(l.Expenses(), p), len(l.trip.Expenses)
}

// TotalSpent is the sum of all recorded expense amounts.
func (l *Ledger) TotalSpent() float64 {
	var total float64
	for _, e := range l.trip.Expenses {
		total += e.Amount
	}
	return total
}

// Balances returns one entry per traveler, in trip order.
//
//	paid    = sum of amounts the traveler paid
//	owed    = sum of amount/len(splitBetween) over expenses the traveler shares
//	balance = paid - owed
//
// Values are recomputed from the source expenses on every call, using plain
// division with no intermediate rounding, so the balances sum to zero up to
// floating point error.
func (l *Ledger) Balances() []domain.Balance {
	paid := make(map[string]float64, len(l.trip.Travelers))
	owed := make(map[string]float64, len(l.trip.Travelers))

	for _, e := range l.trip.Expenses {
		paid[e.PayerID] += e.Amount
		if n := len(e.SplitBetween); n > 0 {
			share := e.Amount / float64(n)
			for _, id := range e.SplitBetween {
				owed[id] += share
			}
		}
	}

	out := make([]domain.Balance, len(l.trip.Travelers))
	for i, t := range l.trip.Travelers {
		out[i] = domain.Balance{
			TravelerID: t.ID,
			Paid:       paid[t.ID],
			Owed:       owed[t.ID],
			Balance:    paid[t.ID] - owed[t.ID],
		}
	}
	return out
}

// Settlement derives the transfers that zero out the current balances.
func (l *Ledger) Settlement() []domain.Transfer {
	return Settle(l.Balances())
}

func (l *Ledger) validate(e domain.Expense) error {
	if !(e.Amount > 0) || math.IsInf(e.Amount, 1) {
		return fmt.Errorf("%w: amount must be a finite number greater than 0", domain.ErrValidation)
	}
	if !l.trip.HasTraveler(e.PayerID) {
		return fmt.Errorf("%w: unknown payer %q", domain.ErrValidation, e.PayerID)
	}
	if len(e.SplitBetween) == 0 {
		return fmt.Errorf("%w: splitBetween must name at least one traveler", domain.ErrValidation)
	}
	seen := make(map[string]struct{}, len(e.SplitBetween))
	for _, id := range e.SplitBetween {
		if !l.trip.HasTraveler(id) {
			return fmt.Errorf("%w: unknown traveler %q in splitBetween", domain.ErrValidation, id)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: traveler %q appears twice in splitBetween", domain.ErrValidation, id)
		}
		seen[id] = struct{}{}
	}
	if e.Date != "" {
		if _, err := time.Parse(time.DateOnly, e.Date); err != nil {
			return fmt.Errorf("%w: date must use YYYY-MM-DD", domain.ErrValidation)
		}
	}
	return nil
}

func (l *Ledger) indexOf(id string) int {
	return slices.IndexFunc(l.trip.Expenses, func(e domain.Expense) bool {
		return e.ID == id
	})
}
