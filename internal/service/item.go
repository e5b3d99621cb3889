package service

import (
	"context"
	"fmt"

	"github.com/pkordes/wanderplan/internal/domain"
	"github.com/pkordes/wanderplan/internal/itinerary"
	"github.com/pkordes/wanderplan/internal/planner"
)

// RouteEstimate is the travel estimate for a TRANSPORT item, measured from the
// item scheduled before it on the same day.
type RouteEstimate struct {
	ItemID      string               `json:"itemId"`
	Origin      string               `json:"origin"`
	Destination string               `json:"destination"`
	Mode        domain.TransportMode `json:"mode"`
	planner.TravelEstimate
}

// ItemsForDay returns the items of day sorted by start time.
// Returns domain.ErrNoTrip before Setup.
func (s *TripService) ItemsForDay(ctx context.Context, day int) ([]domain.ItineraryItem, error) {
	var out []domain.ItineraryItem
	err := s.withTrip("ItemsForDay", func() error {
		out = s.store.ItemsForDay(day)
		return nil
	})
	return out, err
}

// Items returns every item in insertion order.
func (s *TripService) Items(ctx context.Context) ([]domain.ItineraryItem, error) {
	var out []domain.ItineraryItem
	err := s.withTrip("Items", func() error {
		out = s.store.Items()
		return nil
	})
	return out, err
}

// Item returns a single item.
// Returns domain.ErrNotFound if no item has that ID.
func (s *TripService) Item(ctx context.Context, id string) (domain.ItineraryItem, error) {
	var out domain.ItineraryItem
	err := s.withTrip("Item", func() error {
		var err error
		out, err = s.store.Item(id)
		return err
	})
	return out, err
}

// AddItem validates and appends item.
// Returns domain.ErrValidation for invalid input.
func (s *TripService) AddItem(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error) {
	var out domain.ItineraryItem
	err := s.withTrip("AddItem", func() error {
		var err error
		out, err = s.store.AddItem(item)
		return err
	})
	return out, err
}

// UpdateItem applies patch to the item with the given ID.
// Returns domain.ErrNotFound or domain.ErrValidation.
func (s *TripService) UpdateItem(ctx context.Context, id string, patch domain.ItemPatch) (domain.ItineraryItem, error) {
	var out domain.ItineraryItem
	err := s.withTrip("UpdateItem", func() error {
		var err error
		out, err = s.store.UpdateItem(id, patch)
		return err
	})
	return out, err
}

// DeleteItem removes the item with the given ID.
// Returns domain.ErrNotFound if it does not exist.
func (s *TripService) DeleteItem(ctx context.Context, id string) error {
	return s.withTrip("DeleteItem", func() error {
		return s.store.DeleteItem(id)
	})
}

// MoveItem reorders the item one step in dir and returns the item's day view
// after the move.
func (s *TripService) MoveItem(ctx context.Context, id string, dir itinerary.Direction) ([]domain.ItineraryItem, error) {
	var out []domain.ItineraryItem
	err := s.withTrip("MoveItem", func() error {
		if err := s.store.Reorder(id, dir); err != nil {
			return err
		}
		it, err := s.store.Item(id)
		if err != nil {
			return err
		}
		out = s.store.ItemsForDay(it.DayIndex)
		return nil
	})
	return out, err
}

// RouteEstimate asks the estimator how long the TRANSPORT item takes from the
// previous item of its day. The first item of a day has no origin and yields
// an unknown estimate without calling out.
// Returns domain.ErrValidation for non-transport items.
func (s *TripService) RouteEstimate(ctx context.Context, id string) (RouteEstimate, error) {
	var out RouteEstimate
	err := s.withTrip("RouteEstimate", func() error {
		it, err := s.store.Item(id)
		if err != nil {
			return err
		}
		if it.Category != domain.CategoryTransport || it.Transport == nil {
			return fmt.Errorf("%w: route estimates need a TRANSPORT item", domain.ErrValidation)
		}
		out = RouteEstimate{ItemID: it.ID, Mode: it.Transport.Mode, TravelEstimate: planner.UnknownEstimate}
		if it.Location != nil {
			out.Destination = it.Location.Name
		}
		day := s.store.ItemsForDay(it.DayIndex)
		for i := 1; i < len(day); i++ {
			if day[i].ID == id && day[i-1].Location != nil {
				out.Origin = day[i-1].Location.Name
				break
			}
		}
		return nil
	})
	if err != nil || out.Origin == "" || out.Destination == "" {
		return out, err
	}

	ctx, cancel := s.external(ctx)
	defer cancel()
	out.TravelEstimate = s.planner.Estimate(ctx, out.Origin, out.Destination, out.Mode)
	return out, nil
}
