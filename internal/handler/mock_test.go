package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/wanderplan/internal/domain"
	"github.com/pkordes/wanderplan/internal/handler"
	"github.com/pkordes/wanderplan/internal/itinerary"
	"github.com/pkordes/wanderplan/internal/planner"
	"github.com/pkordes/wanderplan/internal/service"
)

// mockSession is a test double for handler.TripSession.
// Set only the method fields your test needs.
type mockSession struct {
	setup  func(ctx context.Context, trip domain.TripData) (domain.TripData, error)
	get    func(ctx context.Context) (domain.TripData, error)
	update func(ctx context.Context, patch service.TripPatch) (domain.TripData, error)

	itemsForDay   func(ctx context.Context, day int) ([]domain.ItineraryItem, error)
	items         func(ctx context.Context) ([]domain.ItineraryItem, error)
	item          func(ctx context.Context, id string) (domain.ItineraryItem, error)
	addItem       func(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error)
	updateItem    func(ctx context.Context, id string, patch domain.ItemPatch) (domain.ItineraryItem, error)
	deleteItem    func(ctx context.Context, id string) error
	moveItem      func(ctx context.Context, id string, dir itinerary.Direction) ([]domain.ItineraryItem, error)
	routeEstimate func(ctx context.Context, id string) (service.RouteEstimate, error)

	recordExpense func(ctx context.Context, e domain.Expense) (domain.Expense, error)
	deleteExpense func(ctx context.Context, id string) error
	listExpenses  func(ctx context.Context, p domain.PaginationParams) ([]domain.Expense, int, error)
	balances      func(ctx context.Context) ([]domain.Balance, error)
	settlement    func(ctx context.Context) ([]domain.Transfer, error)

	proposePlan func(ctx context.Context, req planner.Request) (planner.Proposal, error)
	pendingPlan func(ctx context.Context) (planner.Proposal, error)
	confirmPlan func(ctx context.Context, mode service.ConfirmMode) ([]domain.ItineraryItem, error)
	discardPlan func(ctx context.Context) error

	summary func(ctx context.Context) (domain.Summary, error)
	export  func(ctx context.Context) ([]domain.ExportRow, error)
}

func (m *mockSession) Setup(ctx context.Context, t domain.TripData) (domain.TripData, error) {
	return m.setup(ctx, t)
}
func (m *mockSession) Get(ctx context.Context) (domain.TripData, error) { return m.get(ctx) }
func (m *mockSession) Update(ctx context.Context, p service.TripPatch) (domain.TripData, error) {
	return m.update(ctx, p)
}
func (m *mockSession) ItemsForDay(ctx context.Context, day int) ([]domain.ItineraryItem, error) {
	return m.itemsForDay(ctx, day)
}
func (m *mockSession) Items(ctx context.Context) ([]domain.ItineraryItem, error) { return m.items(ctx) }
func (m *mockSession) Item(ctx context.Context, id string) (domain.ItineraryItem, error) {
	return m.item(ctx, id)
}
func (m *mockSession) AddItem(ctx context.Context, it domain.ItineraryItem) (domain.ItineraryItem, error) {
	return m.addItem(ctx, it)
}
func (m *mockSession) UpdateItem(ctx context.Context, id string, p domain.ItemPatch) (domain.ItineraryItem, error) {
	return m.updateItem(ctx, id, p)
}
func (m *mockSession) DeleteItem(ctx context.Context, id string) error { return m.deleteItem(ctx, id) }
func (m *mockSession) MoveItem(ctx context.Context, id string, dir itinerary.Direction) ([]domain.ItineraryItem, error) {
	return m.moveItem(ctx, id, dir)
}
func (m *mockSession) RouteEstimate(ctx context.Context, id string) (service.RouteEstimate, error) {
	return m.routeEstimate(ctx, id)
}
func (m *mockSession) RecordExpense(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	return m.recordExpense(ctx, e)
}
func (m *mockSession) DeleteExpense(ctx context.Context, id string) error {
	return m.deleteExpense(ctx, id)
}
func (m *mockSession) ListExpenses(ctx context.Context, p domain.PaginationParams) ([]domain.Expense, int, error) {
	return m.listExpenses(ctx, p)
}
func (m *mockSession) Balances(ctx context.Context) ([]domain.Balance, error) { return m.balances(ctx) }
func (m *mockSession) Settlement(ctx context.Context) ([]domain.Transfer, error) {
	return m.settlement(ctx)
}
func (m *mockSession) ProposePlan(ctx context.Context, req planner.Request) (planner.Proposal, error) {
	return m.proposePlan(ctx, req)
}
func (m *mockSession) PendingPlan(ctx context.Context) (planner.Proposal, error) {
	return m.pendingPlan(ctx)
}
func (m *mockSession) ConfirmPlan(ctx context.Context, mode service.ConfirmMode) ([]domain.ItineraryItem, error) {
	return m.confirmPlan(ctx, mode)
}
func (m *mockSession) DiscardPlan(ctx context.Context) error { return m.discardPlan(ctx) }
func (m *mockSession) Summary(ctx context.Context) (domain.Summary, error) {
	return m.summary(ctx)
}
func (m *mockSession) Export(ctx context.Context) ([]domain.ExportRow, error) {
	return m.export(ctx)
}

// compile-time checks: the mock and the real service satisfy handler.TripSession.
var (
	_ handler.TripSession = (*mockSession)(nil)
	_ handler.TripSession = (*service.TripService)(nil)
)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given mock into the chi router.
// This mirrors exactly how main.go wires it in production.
func newHTTPHandler(svc *mockSession) http.Handler {
	return handler.Handler(handler.NewSessionServer(svc))
}

func serve(t *testing.T, h http.Handler, method, path string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorDetail {
	t.Helper()
	var body handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error
}

func tripFixture() domain.TripData {
	return domain.TripData{
		Title:        "Taiwan Spring",
		StartDate:    time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		DurationDays: 3,
		Budget:       60000,
		Travelers:    []domain.Traveler{{ID: "A", Name: "Alice"}, {ID: "B", Name: "Bob"}},
	}
}

func itemFixture() domain.ItineraryItem {
	c := 1500.0
	return domain.ItineraryItem{
		ID:        "item-1",
		DayIndex:  1,
		StartTime: "12:00",
		Title:     "Din Tai Fung",
		Category:  domain.CategoryFood,
		Location:  &domain.Location{Name: "Xinyi"},
		Cost:      &c,
	}
}
