package handler

import (
	"net/http"

	"github.com/pkordes/wanderplan/internal/domain"
	"github.com/pkordes/wanderplan/internal/itinerary"
)

// MoveRequest is the body of POST /trip/items/{itemId}/move.
type MoveRequest struct {
	Direction itinerary.Direction `json:"direction"`
}

// ItemList wraps a list of items.
type ItemList struct {
	Data []domain.ItineraryItem `json:"data"`
}

// ListDayItems handles GET /trip/days/{day}/items.
// Items are sorted by start time.
func (s *Server) ListDayItems(w http.ResponseWriter, r *http.Request) {
	var day int
	if !pathParam(w, r, "day", &day) {
		return
	}
	items, err := s.items.ItemsForDay(r.Context(), day)
	if err != nil {
		s.writeError(w, r, err, "day not found")
		return
	}
	writeJSON(w, http.StatusOK, ItemList{Data: items})
}

// ListItems handles GET /trip/items, in insertion order.
func (s *Server) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.items.Items(r.Context())
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, ItemList{Data: items})
}

// CreateItem handles POST /trip/items.
func (s *Server) CreateItem(w http.ResponseWriter, r *http.Request) {
	var body domain.ItineraryItem
	if !s.decodeBody(w, r, &body) {
		return
	}
	created, err := s.items.AddItem(r.Context(), body)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// GetItem handles GET /trip/items/{itemId}.
func (s *Server) GetItem(w http.ResponseWriter, r *http.Request) {
	var id string
	if !pathParam(w, r, "itemId", &id) {
		return
	}
	item, err := s.items.Item(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "item not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// UpdateItem handles PATCH /trip/items/{itemId}. Fields set to null are
// cleared; absent fields are left untouched.
func (s *Server) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var id string
	if !pathParam(w, r, "itemId", &id) {
		return
	}
	var patch domain.ItemPatch
	if !s.decodeBody(w, r, &patch) {
		return
	}
	updated, err := s.items.UpdateItem(r.Context(), id, patch)
	if err != nil {
		s.writeError(w, r, err, "item not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteItem handles DELETE /trip/items/{itemId}.
func (s *Server) DeleteItem(w http.ResponseWriter, r *http.Request) {
	var id string
	if !pathParam(w, r, "itemId", &id) {
		return
	}
	if err := s.items.DeleteItem(r.Context(), id); err != nil {
		s.writeError(w, r, err, "item not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MoveItem handles POST /trip/items/{itemId}/move and returns the item's day
// after the move.
func (s *Server) MoveItem(w http.ResponseWriter, r *http.Request) {
	var id string
	if !pathParam(w, r, "itemId", &id) {
		return
	}
	var body MoveRequest
	if !s.decodeBody(w, r, &body) {
		return
	}
	day, err := s.items.MoveItem(r.Context(), id, body.Direction)
	if err != nil {
		s.writeError(w, r, err, "item not found")
		return
	}
	writeJSON(w, http.StatusOK, ItemList{Data: day})
}

// GetRouteEstimate handles GET /trip/items/{itemId}/route-estimate.
// Estimator failures come back as "Unknown", never as an error status.
func (s *Server) GetRouteEstimate(w http.ResponseWriter, r *http.Request) {
	var id string
	if !pathParam(w, r, "itemId", &id) {
		return
	}
	est, err := s.items.RouteEstimate(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "item not found")
		return
	}
	writeJSON(w, http.StatusOK, est)
}
