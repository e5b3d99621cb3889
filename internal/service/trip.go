// Package service contains the business logic of the WanderPlan API.
// TripService owns the single trip of a session and routes every command to
// the itinerary store or the expense ledger. Those are unlocked, so the
// service serializes all access behind one mutex; only calls to the external
// planner run outside it.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pkordes/wanderplan/internal/domain"
	"github.com/pkordes/wanderplan/internal/itinerary"
	"github.com/pkordes/wanderplan/internal/ledger"
	"github.com/pkordes/wanderplan/internal/planner"
)

// TripService implements business logic for the trip session.
type TripService struct {
	mu      sync.Mutex
	trip    *domain.TripData // nil until Setup
	store   *itinerary.Store
	ledger  *ledger.Ledger
	pending *planner.Proposal

	planner *planner.Planner
	policy  itinerary.ReorderPolicy
	timeout time.Duration
}

// Option configures a TripService.
type Option func(*TripService)

// WithReorderPolicy selects the itinerary reorder policy.
func WithReorderPolicy(p itinerary.ReorderPolicy) Option {
	return func(s *TripService) { s.policy = p }
}

// WithExternalTimeout bounds each generation or estimate call. Zero means no
// timeout beyond the caller's context.
func WithExternalTimeout(d time.Duration) Option {
	return func(s *TripService) { s.timeout = d }
}

// NewTripService constructs a TripService with no trip set up yet.
func NewTripService(p *planner.Planner, opts ...Option) *TripService {
	if p == nil {
		p = planner.New(nil, nil, nil)
	}
	s := &TripService{planner: p}
	for _, o := range opts {
		o(s)
	}
	return s
}

// TripPatch is a partial update of the trip-level fields. Travelers are fixed
// for the session and cannot be patched.
type TripPatch struct {
	Title        *string
	StartDate    *time.Time
	DurationDays *int
	Budget       *float64
}

// Setup starts a new session from trip, replacing any previous one and its
// pending plan. Items and expenses in trip are validated exactly as if they
// were added one by one; nothing is kept if any of them fails.
// Returns domain.ErrValidation for invalid input.
func (s *TripService) Setup(ctx context.Context, trip domain.TripData) (domain.TripData, error) {
	trip.Title = strings.TrimSpace(trip.Title)
	if err := trip.Validate(); err != nil {
		return domain.TripData{}, err
	}

	fresh := &domain.TripData{
		Title:        trip.Title,
		StartDate:    trip.StartDate,
		DurationDays: trip.DurationDays,
		Budget:       trip.Budget,
		Travelers:    append([]domain.Traveler(nil), trip.Travelers...),
		Items:        []domain.ItineraryItem{},
		Expenses:     []domain.Expense{},
	}
	store := itinerary.NewStore(fresh, itinerary.WithReorderPolicy(s.policy))
	led := ledger.New(fresh)

	if err := store.ReplaceItems(trip.Items); err != nil {
		return domain.TripData{}, err
	}
	for _, e := range trip.Expenses {
		if _, err := led.RecordExpense(e); err != nil {
			return domain.TripData{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.trip, s.store, s.ledger, s.pending = fresh, store, led, nil
	return fresh.Clone(), nil
}

// Get returns a snapshot of the whole trip.
// Returns domain.ErrNoTrip before Setup.
func (s *TripService) Get(ctx context.Context) (domain.TripData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.trip == nil {
		return domain.TripData{}, fmt.Errorf("service.TripService.Get: %w", domain.ErrNoTrip)
	}
	return s.trip.Clone(), nil
}

// Update applies patch to the trip-level fields. Shrinking the duration below
// the day of an existing item is rejected.
// Returns domain.ErrValidation for invalid input and domain.ErrNoTrip before Setup.
func (s *TripService) Update(ctx context.Context, patch TripPatch) (domain.TripData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.trip == nil {
		return domain.TripData{}, fmt.Errorf("service.TripService.Update: %w", domain.ErrNoTrip)
	}

	next := *s.trip
	if patch.Title != nil {
		next.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.StartDate != nil {
		next.StartDate = *patch.StartDate
	}
	if patch.Budget != nil {
		next.Budget = *patch.Budget
	}
	if patch.DurationDays != nil {
		next.DurationDays = *patch.DurationDays
	}
	if err := next.Validate(); err != nil {
		return domain.TripData{}, err
	}
	if patch.DurationDays != nil {
		if err := s.store.SetDuration(*patch.DurationDays); err != nil {
			return domain.TripData{}, err
		}
	}

	s.trip.Title = next.Title
	s.trip.StartDate = next.StartDate
	s.trip.Budget = next.Budget
	return s.trip.Clone(), nil
}

// withTrip runs fn under the session lock once a trip exists.
func (s *TripService) withTrip(op string, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.trip == nil {
		return fmt.Errorf("service.TripService.%s: %w", op, domain.ErrNoTrip)
	}
	return fn()
}

// external derives the context used for planner calls.
func (s *TripService) external(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}
