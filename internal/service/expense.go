package service

import (
	"context"

	"github.com/pkordes/wanderplan/internal/domain"
)

// RecordExpense validates and appends expense to the ledger.
// Returns domain.ErrValidation for invalid input and domain.ErrNoTrip before Setup.
func (s *TripService) RecordExpense(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	var out domain.Expense
	err := s.withTrip("RecordExpense", func() error {
		var err error
		out, err = s.ledger.RecordExpense(expense)
		return err
	})
	return out, err
}

// DeleteExpense removes the expense with the given ID.
// Returns domain.ErrNotFound if it does not exist.
func (s *TripService) DeleteExpense(ctx context.Context, id string) error {
	return s.withTrip("DeleteExpense", func() error {
		return s.ledger.DeleteExpense(id)
	})
}

// ListExpenses returns one page of expenses in recording order and the total count.
func (s *TripService) ListExpenses(ctx context.Context, p domain.PaginationParams) ([]domain.Expense, int, error) {
	var (
		out   []domain.Expense
		total int
	)
	err := s.withTrip("ListExpenses", func() error {
		out, total = s.ledger.ExpensesPage(p)
		return nil
	})
	return out, total, err
}

// Balances returns the per-traveler balances, in trip order.
func (s *TripService) Balances(ctx context.Context) ([]domain.Balance, error) {
	var out []domain.Balance
	err := s.withTrip("Balances", func() error {
		out = s.ledger.Balances()
		return nil
	})
	return out, err
}

// Settlement returns the transfers that settle the current balances.
func (s *TripService) Settlement(ctx context.Context) ([]domain.Transfer, error) {
	var out []domain.Transfer
	err := s.withTrip("Settlement", func() error {
		out = s.ledger.Settlement()
		return nil
	})
	return out, err
}
