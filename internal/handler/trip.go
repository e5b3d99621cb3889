package handler

import (
	"net/http"
	"strings"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/wanderplan/internal/domain"
	"github.com/pkordes/wanderplan/internal/service"
)

// TripRequest is the body of PUT /trip. Items and expenses are optional and
// validated exactly like individual additions.
type TripRequest struct {
	Title        string                 `json:"title"`
	StartDate    openapi_types.Date     `json:"startDate"`
	DurationDays int                    `json:"durationDays"`
	Budget       float64                `json:"budget"`
	Travelers    []domain.Traveler      `json:"travelers"`
	Items        []domain.ItineraryItem `json:"items,omitempty"`
	Expenses     []domain.Expense       `json:"expenses,omitempty"`
}

// TripPatchRequest is the body of PATCH /trip.
type TripPatchRequest struct {
	Title        *string             `json:"title,omitempty"`
	StartDate    *openapi_types.Date `json:"startDate,omitempty"`
	DurationDays *int                `json:"durationDays,omitempty"`
	Budget       *float64            `json:"budget,omitempty"`
}

// Trip is the JSON view of the whole session.
type Trip struct {
	Title        string                 `json:"title"`
	StartDate    openapi_types.Date     `json:"startDate"`
	EndDate      openapi_types.Date     `json:"endDate"`
	DurationDays int                    `json:"durationDays"`
	Budget       float64                `json:"budget"`
	Travelers    []domain.Traveler      `json:"travelers"`
	Items        []domain.ItineraryItem `json:"items"`
	Expenses     []domain.Expense       `json:"expenses"`
}

// GetTrip handles GET /trip.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := s.trips.Get(r.Context())
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// SetupTrip handles PUT /trip. It starts a new session, discarding any
// previous trip.
func (s *Server) SetupTrip(w http.ResponseWriter, r *http.Request) {
	var body TripRequest
	if !s.decodeBody(w, r, &body) {
		return
	}
	if body.StartDate.Time.IsZero() {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("startDate is required"))
		return
	}

	trip, err := s.trips.Setup(r.Context(), requestToTrip(body))
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// UpdateTrip handles PATCH /trip.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	var body TripPatchRequest
	if !s.decodeBody(w, r, &body) {
		return
	}
	patch := service.TripPatch{
		Title:        body.Title,
		DurationDays: body.DurationDays,
		Budget:       body.Budget,
	}
	if body.StartDate != nil {
		patch.StartDate = &body.StartDate.Time
	}

	trip, err := s.trips.Update(r.Context(), patch)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// --- mapping helpers --------------------------------------------------------

// requestToTrip converts a TripRequest body into a domain.TripData.
func requestToTrip(body TripRequest) domain.TripData {
	travelers := make([]domain.Traveler, len(body.Travelers))
	for i, t := range body.Travelers {
		travelers[i] = domain.Traveler{ID: strings.TrimSpace(t.ID), Name: strings.TrimSpace(t.Name)}
	}
	return domain.TripData{
		Title:        body.Title,
		StartDate:    body.StartDate.Time,
		DurationDays: body.DurationDays,
		Budget:       body.Budget,
		Travelers:    travelers,
		Items:        body.Items,
		Expenses:     body.Expenses,
	}
}

// tripToResponse converts a domain.TripData into its JSON view. Nil slices
// are rendered as empty arrays.
func tripToResponse(t domain.TripData) Trip {
	resp := Trip{
		Title:        t.Title,
		StartDate:    openapi_types.Date{Time: t.StartDate},
		EndDate:      openapi_types.Date{Time: t.DateOf(t.DurationDays)},
		DurationDays: t.DurationDays,
		Budget:       t.Budget,
		Travelers:    t.Travelers,
		Items:        t.Items,
		Expenses:     t.Expenses,
	}
	if resp.Travelers == nil {
		resp.Travelers = []domain.Traveler{}
	}
	if resp.Items == nil {
		resp.Items = []domain.ItineraryItem{}
	}
	if resp.Expenses == nil {
		resp.Expenses = []domain.Expense{}
	}
	return resp
}
