// Package handler implements the HTTP handlers for the WanderPlan API.
// All handlers are methods on Server and are mounted on a chi router by
// HandlerFromMux. Methods are split into domain-specific files (health.go,
// trip.go, item.go, etc.) but all share the same Server struct so they can
// access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/wanderplan/internal/domain"
	"github.com/pkordes/wanderplan/internal/itinerary"
	"github.com/pkordes/wanderplan/internal/planner"
	"github.com/pkordes/wanderplan/internal/service"
)

// TripServicer defines the trip-level operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the service layer.
type TripServicer interface {
	Setup(ctx context.Context, trip domain.TripData) (domain.TripData, error)
	Get(ctx context.Context) (domain.TripData, error)
	Update(ctx context.Context, patch service.TripPatch) (domain.TripData, error)
}

// ItemServicer defines the itinerary operations the item handlers depend on.
type ItemServicer interface {
	ItemsForDay(ctx context.Context, day int) ([]domain.ItineraryItem, error)
	Items(ctx context.Context) ([]domain.ItineraryItem, error)
	Item(ctx context.Context, id string) (domain.ItineraryItem, error)
	AddItem(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error)
	UpdateItem(ctx context.Context, id string, patch domain.ItemPatch) (domain.ItineraryItem, error)
	DeleteItem(ctx context.Context, id string) error
	MoveItem(ctx context.Context, id string, dir itinerary.Direction) ([]domain.ItineraryItem, error)
	RouteEstimate(ctx context.Context, id string) (service.RouteEstimate, error)
}

// ExpenseServicer defines the ledger operations the expense handlers depend on.
type ExpenseServicer interface {
	RecordExpense(ctx context.Context, expense domain.Expense) (domain.Expense, error)
	DeleteExpense(ctx context.Context, id string) error
	ListExpenses(ctx context.Context, p domain.PaginationParams) ([]domain.Expense, int, error)
	Balances(ctx context.Context) ([]domain.Balance, error)
	Settlement(ctx context.Context) ([]domain.Transfer, error)
}

// PlanServicer defines the plan generation operations.
type PlanServicer interface {
	ProposePlan(ctx context.Context, req planner.Request) (planner.Proposal, error)
	PendingPlan(ctx context.Context) (planner.Proposal, error)
	ConfirmPlan(ctx context.Context, mode service.ConfirmMode) ([]domain.ItineraryItem, error)
	DiscardPlan(ctx context.Context) error
}

// ReportServicer defines the read-only reports: budget summary and export.
type ReportServicer interface {
	Summary(ctx context.Context) (domain.Summary, error)
	Export(ctx context.Context) ([]domain.ExportRow, error)
}

// TripSession is everything the API needs. *service.TripService implements it.
type TripSession interface {
	TripServicer
	ItemServicer
	ExpenseServicer
	PlanServicer
	ReportServicer
}

// Server holds the dependencies shared by all handlers.
// Methods are in domain-specific files but all operate on this struct.
type Server struct {
	trips    TripServicer
	items    ItemServicer
	expenses ExpenseServicer
	plans    PlanServicer
	reports  ReportServicer
	log      *slog.Logger
}

// NewServer constructs the Server with all its dependencies. Any servicer may
// be nil in tests that do not exercise its routes.
func NewServer(trips TripServicer, items ItemServicer, expenses ExpenseServicer, plans PlanServicer, reports ReportServicer) *Server {
	return &Server{
		trips:    trips,
		items:    items,
		expenses: expenses,
		plans:    plans,
		reports:  reports,
		log:      slog.Default(),
	}
}

// NewSessionServer wires every servicer to the same session.
func NewSessionServer(s TripSession) *Server {
	return NewServer(s, s, s, s, s)
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil, nil, nil)
}

// WithLogger sets the logger used for unexpected errors.
func (s *Server) WithLogger(log *slog.Logger) *Server {
	s.log = log
	return s
}

// Handler returns a router serving every endpoint of s.
func Handler(s *Server) http.Handler {
	return HandlerFromMux(s, chi.NewRouter())
}

// HandlerFromMux registers every endpoint of s on r and returns it.
func HandlerFromMux(s *Server, r chi.Router) http.Handler {
	r.Get("/healthz", s.GetHealth)

	r.Route("/trip", func(r chi.Router) {
		r.Get("/", s.GetTrip)
		r.Put("/", s.SetupTrip)
		r.Patch("/", s.UpdateTrip)

		r.Get("/days/{day}/items", s.ListDayItems)
		r.Get("/items", s.ListItems)
		r.Post("/items", s.CreateItem)
		r.Get("/items/{itemId}", s.GetItem)
		r.Patch("/items/{itemId}", s.UpdateItem)
		r.Delete("/items/{itemId}", s.DeleteItem)
		r.Post("/items/{itemId}/move", s.MoveItem)
		r.Get("/items/{itemId}/route-estimate", s.GetRouteEstimate)

		r.Get("/expenses", s.ListExpenses)
		r.Post("/expenses", s.CreateExpense)
		r.Delete("/expenses/{expenseId}", s.DeleteExpense)
		r.Get("/balances", s.GetBalances)
		r.Get("/settlement", s.GetSettlement)

		r.Post("/plans", s.ProposePlan)
		r.Get("/plans/pending", s.GetPendingPlan)
		r.Post("/plans/pending/confirm", s.ConfirmPlan)
		r.Delete("/plans/pending", s.DiscardPlan)

		r.Get("/summary", s.GetSummary)
		r.Get("/export", s.GetExport)
	})
	return r
}
