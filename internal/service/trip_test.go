package service_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/wanderplan/internal/domain"
	"github.com/pkordes/wanderplan/internal/planner"
	"github.com/pkordes/wanderplan/internal/service"
)

// ---- mocks -----------------------------------------------------------------

// mockGenerator is a test double for planner.Generator.
type mockGenerator struct {
	generate func(ctx context.Context, req planner.Request) ([]planner.Candidate, error)
}

func (m *mockGenerator) Generate(ctx context.Context, req planner.Request) ([]planner.Candidate, error) {
	return m.generate(ctx, req)
}

// mockEstimator is a test double for planner.Estimator.
type mockEstimator struct {
	estimate func(ctx context.Context, origin, destination string, mode domain.TransportMode) (planner.TravelEstimate, error)
}

func (m *mockEstimator) Estimate(ctx context.Context, origin, destination string, mode domain.TransportMode) (planner.TravelEstimate, error) {
	return m.estimate(ctx, origin, destination, mode)
}

var (
	_ planner.Generator = (*mockGenerator)(nil)
	_ planner.Estimator = (*mockEstimator)(nil)
)

// ---- helpers ---------------------------------------------------------------

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func validTrip() domain.TripData {
	return domain.TripData{
		Title:        "Taiwan Spring",
		StartDate:    time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		DurationDays: 3,
		Budget:       60000,
		Travelers: []domain.Traveler{
			{ID: "A", Name: "Alice"},
			{ID: "B", Name: "Bob"},
			{ID: "C", Name: "Chen"},
		},
	}
}

func cost(v float64) *float64 { return &v }

func food(day int, start, title string) domain.ItineraryItem {
	return domain.ItineraryItem{
		DayIndex:  day,
		StartTime: start,
		Title:     title,
		Category:  domain.CategoryFood,
		Location:  &domain.Location{Name: title},
		Cost:      cost(500),
	}
}

// newService returns a service with a trip already set up and no external
// services configured.
func newService(t *testing.T, opts ...service.Option) *service.TripService {
	t.Helper()
	return newServiceWith(t, planner.New(nil, nil, quietLogger()), opts...)
}

func newServiceWith(t *testing.T, p *planner.Planner, opts ...service.Option) *service.TripService {
	t.Helper()
	svc := service.NewTripService(p, opts...)
	_, err := svc.Setup(context.Background(), validTrip())
	require.NoError(t, err)
	return svc
}

// ---- Setup -----------------------------------------------------------------

func TestTripService_NoTrip(t *testing.T) {
	svc := service.NewTripService(nil)
	ctx := context.Background()

	_, err := svc.Get(ctx)
	assert.ErrorIs(t, err, domain.ErrNoTrip)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Items(ctx)
	assert.ErrorIs(t, err, domain.ErrNoTrip)

	_, err = svc.Balances(ctx)
	assert.ErrorIs(t, err, domain.ErrNoTrip)

	_, err = svc.ProposePlan(ctx, planner.Request{Destination: "Taipei"})
	assert.ErrorIs(t, err, domain.ErrNoTrip)
}

func TestTripService_Setup_Valid(t *testing.T) {
	svc := service.NewTripService(nil)
	trip := validTrip()
	trip.Title = "  Taiwan Spring  "
	trip.Items = []domain.ItineraryItem{food(1, "12:00", "Lunch")}
	trip.Expenses = []domain.Expense{{Amount: 300, Currency: "TWD", PayerID: "A", SplitBetween: []string{"A", "B"}}}

	got, err := svc.Setup(context.Background(), trip)

	require.NoError(t, err)
	assert.Equal(t, "Taiwan Spring", got.Title)
	require.Len(t, got.Items, 1)
	assert.NotEmpty(t, got.Items[0].ID)
	require.Len(t, got.Expenses, 1)
	assert.NotEmpty(t, got.Expenses[0].ID)
}

func TestTripService_Setup_Invalid(t *testing.T) {
	cases := map[string]func(*domain.TripData){
		"no title":      func(tr *domain.TripData) { tr.Title = "  " },
		"zero duration": func(tr *domain.TripData) { tr.DurationDays = 0 },
		"no travelers":  func(tr *domain.TripData) { tr.Travelers = nil },
		"item out of range": func(tr *domain.TripData) {
			tr.Items = []domain.ItineraryItem{food(4, "12:00", "Late lunch")}
		},
		"unknown payer": func(tr *domain.TripData) {
			tr.Expenses = []domain.Expense{{Amount: 1, PayerID: "Z", SplitBetween: []string{"A"}}}
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			svc := service.NewTripService(nil)
			trip := validTrip()
			mutate(&trip)

			_, err := svc.Setup(context.Background(), trip)

			assert.ErrorIs(t, err, domain.ErrValidation)
			_, err = svc.Get(context.Background())
			assert.ErrorIs(t, err, domain.ErrNoTrip, "a failed setup must not start a session")
		})
	}
}

func TestTripService_Setup_ReplacesSessionAndPendingPlan(t *testing.T) {
	gen := &mockGenerator{generate: func(context.Context, planner.Request) ([]planner.Candidate, error) {
		return []planner.Candidate{{DayIndex: 1, StartTime: "09:00", Title: "Temple", Category: domain.CategoryActivity}}, nil
	}}
	svc := newServiceWith(t, planner.New(gen, nil, quietLogger()))
	ctx := context.Background()
	_, err := svc.AddItem(ctx, food(1, "12:00", "Lunch"))
	require.NoError(t, err)
	_, err = svc.ProposePlan(ctx, planner.Request{Destination: "Taipei"})
	require.NoError(t, err)

	_, err = svc.Setup(ctx, validTrip())
	require.NoError(t, err)

	items, err := svc.Items(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
	_, err = svc.PendingPlan(ctx)
	assert.ErrorIs(t, err, domain.ErrNoPendingPlan)
}

// ---- Update ----------------------------------------------------------------

func TestTripService_Update_Fields(t *testing.T) {
	svc := newService(t)
	title := "Renamed"
	budget := 1000.0
	days := 5

	got, err := svc.Update(context.Background(), service.TripPatch{Title: &title, Budget: &budget, DurationDays: &days})

	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, 1000.0, got.Budget)
	assert.Equal(t, 5, got.DurationDays)
	assert.Len(t, got.Travelers, 3)
}

func TestTripService_Update_ShrinkBelowItemRejected(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	_, err := svc.AddItem(ctx, food(3, "12:00", "Lunch"))
	require.NoError(t, err)
	days := 2
	title := "Renamed"

	_, err = svc.Update(ctx, service.TripPatch{Title: &title, DurationDays: &days})

	assert.ErrorIs(t, err, domain.ErrValidation)
	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, got.DurationDays)
	assert.Equal(t, "Taiwan Spring", got.Title, "a rejected patch changes nothing")
}

func TestTripService_Update_NegativeBudget(t *testing.T) {
	svc := newService(t)
	budget := -1.0

	_, err := svc.Update(context.Background(), service.TripPatch{Budget: &budget})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Get_ReturnsCopy(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	_, err := svc.AddItem(ctx, food(1, "12:00", "Lunch"))
	require.NoError(t, err)

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	got.Items[0].Title = "mutated"
	got.Travelers[0].Name = "mutated"

	again, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Lunch", again.Items[0].Title)
	assert.Equal(t, "Alice", again.Travelers[0].Name)
}
