// Package itinerary owns the scheduled items of a trip: day partitioning,
// ordering, validated insert/update/delete and reordering.
// The store is synchronous and unlocked; its owner serializes access.
package itinerary

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/pkordes/wanderplan/internal/domain"
)

// Direction is the way Reorder moves an item in the global collection.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ReorderPolicy decides what Reorder does beyond swapping positions.
// Day views are sorted by start time, so a bare position swap is only visible
// between items sharing a start time.
type ReorderPolicy int

const (
	// ReorderSwapSlots swaps positions and, when both items are on the same
	// day, their time slots (start and end time). The neighbour is taken from
	// the global collection, not the day view: when the global order is not
	// time-sorted the item can end up in a later slot after moving Up (or an
	// earlier one after moving Down).
	ReorderSwapSlots ReorderPolicy = iota
	// ReorderSwapPosition swaps positions in the global collection only.
	ReorderSwapPosition
)

// ParseReorderPolicy maps the configuration values "slots" and "position".
func ParseReorderPolicy(s string) (ReorderPolicy, error) {
	switch s {
	case "", "slots":
		return ReorderSwapSlots, nil
	case "position":
		return ReorderSwapPosition, nil
	}
	return 0, fmt.Errorf("unknown reorder policy %q (want slots or position)", s)
}

// Store applies itinerary commands to the Items of a TripData.
type Store struct {
	trip   *domain.TripData
	policy ReorderPolicy
}

// Option configures a Store.
type Option func(*Store)

// WithReorderPolicy selects how Reorder behaves. The default is ReorderSwapSlots.
func WithReorderPolicy(p ReorderPolicy) Option {
	return func(s *Store) { s.policy = p }
}

// NewStore returns a Store operating on trip. The store keeps the pointer; it
// never copies the aggregate.
func NewStore(trip *domain.TripData, opts ...Option) *Store {
	s := &Store{trip: trip}
	for _, o := range opts {
		o(s)
	}
	return s
}

// ItemsForDay returns the items of the given day sorted by start time. Items
// with equal start times keep their global collection order. The result is a
// fresh copy and the call never mutates the store.
func (s *Store) ItemsForDay(day int) []domain.ItineraryItem {
	out := []domain.ItineraryItem{}
	for _, it := range s.trip.Items {
		if it.DayIndex == day {
			out = append(out, it.Clone())
		}
	}
	slices.SortStableFunc(out, func(a, b domain.ItineraryItem) int {
		return cmp.Compare(a.StartTime, b.StartTime)
	})
	return out
}

// Items returns a copy of every item in global collection order.
func (s *Store) Items() []domain.ItineraryItem {
	out := make([]domain.ItineraryItem, len(s.trip.Items))
	for i, it := range s.trip.Items {
		out[i] = it.Clone()
	}
	return out
}

// Item returns a copy of the item with the given id.
// Returns domain.ErrNotFound if no such item exists.
func (s *Store) Item(id string) (domain.ItineraryItem, error) {
	i := s.indexOf(id)
	if i < 0 {
		return domain.ItineraryItem{}, fmt.Errorf("itinerary.Store.Item: item %s %w", id, domain.ErrNotFound)
	}
	return s.trip.Items[i].Clone(), nil
}

// AddItem validates item and appends it to the collection. An empty ID is
// replaced by a new UUID; a supplied ID must not already be in use.
// Returns domain.ErrValidation if the item breaks any item rule.
func (s *Store) AddItem(item domain.ItineraryItem) (domain.ItineraryItem, error) {
	item = item.Clone()
	if item.ID == "" {
		item.ID = uuid.NewString()
	} else if s.indexOf(item.ID) >= 0 {
		return domain.ItineraryItem{}, fmt.Errorf("%w: item id %q is already in use", domain.ErrValidation, item.ID)
	}
	if err := ValidateItem(item, s.trip.DurationDays); err != nil {
		return domain.ItineraryItem{}, err
	}
	s.trip.Items = append(s.trip.Items, item)
	return item.Clone(), nil
}

// UpdateItem merges patch into the item with the given id and re-validates the
// result under the AddItem rules. The ID is preserved.
// Returns domain.ErrNotFound if the item does not exist and
// domain.ErrValidation if the merged item is invalid; the stored item is left
// untouched on error.
func (s *Store) UpdateItem(id string, patch domain.ItemPatch) (domain.ItineraryItem, error) {
	i := s.indexOf(id)
	if i < 0 {
		return domain.ItineraryItem{}, fmt.Errorf("itinerary.Store.UpdateItem: item %s %w", id, domain.ErrNotFound)
	}
	merged := patch.Apply(s.trip.Items[i])
	merged.ID = id
	if err := ValidateItem(merged, s.trip.DurationDays); err != nil {
		return domain.ItineraryItem{}, err
	}
	s.trip.Items[i] = merged
	return merged.Clone(), nil
}

// DeleteItem removes the item with the given id. Expenses are unaffected.
// Returns domain.ErrNotFound if the item does not exist.
func (s *Store) DeleteItem(id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("itinerary.Store.DeleteItem: item %s %w", id, domain.ErrNotFound)
	}
	s.trip.Items = slices.Delete(s.trip.Items, i, i+1)
	return nil
}

// Reorder swaps the item with its neighbor in the global collection (not the
// day view). Moving past either end is a no-op without error. Under
// ReorderSwapSlots the two items also exchange start and end times when they
// share a day.
// Returns domain.ErrNotFound for an unknown id and domain.ErrValidation for an
// unknown direction.
func (s *Store) Reorder(id string, dir Direction) error {
	var step int
	switch dir {
	case Up:
		step = -1
	case Down:
		step = 1
	default:
		return fmt.Errorf("%w: direction must be up or down", domain.ErrValidation)
	}

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("itinerary.Store.Reorder: item %s %w", id, domain.ErrNotFound)
	}
	j := i + step
	if j < 0 || j >= len(s.trip.Items) {
		return nil
	}

	items := s.trip.Items
	if s.policy == ReorderSwapSlots && items[i].DayIndex == items[j].DayIndex {
		items[i].StartTime, items[j].StartTime = items[j].StartTime, items[i].StartTime
		items[i].EndTime, items[j].EndTime = items[j].EndTime, items[i].EndTime
	}
	items[i], items[j] = items[j], items[i]
	return nil
}

// ReplaceItems validates every item of the batch and, only if all pass,
// replaces the whole collection with it. Empty IDs receive new UUIDs.
func (s *Store) ReplaceItems(items []domain.ItineraryItem) error {
	batch, err := s.prepareBatch(items, nil)
	if err != nil {
		return err
	}
	s.trip.Items = batch
	return nil
}

// MergeItems validates every item of the batch and, only if all pass, appends
// them after the existing items.
func (s *Store) MergeItems(items []domain.ItineraryItem) error {
	batch, err := s.prepareBatch(items, s.trip.Items)
	if err != nil {
		return err
	}
	s.trip.Items = append(s.trip.Items, batch...)
	return nil
}

// SetDuration changes the trip length. Shrinking below the day of an existing
// item is rejected with domain.ErrValidation.
func (s *Store) SetDuration(days int) error {
	if days <= 0 {
		return fmt.Errorf("%w: durationDays must be greater than 0", domain.ErrValidation)
	}
	for _, it := range s.trip.Items {
		if it.DayIndex > days {
			return fmt.Errorf("%w: item %q is scheduled on day %d", domain.ErrValidation, it.Title, it.DayIndex)
		}
	}
	s.trip.DurationDays = days
	return nil
}

// prepareBatch clones, assigns IDs to and validates items. IDs must be unique
// within the batch and must not collide with existing.
func (s *Store) prepareBatch(items, existing []domain.ItineraryItem) ([]domain.ItineraryItem, error) {
	seen := make(map[string]struct{}, len(items)+len(existing))
	for _, it := range existing {
		seen[it.ID] = struct{}{}
	}
	out := make([]domain.ItineraryItem, 0, len(items))
	for _, it := range items {
		it = it.Clone()
		if it.ID == "" {
			it.ID = uuid.NewString()
		}
		if _, dup := seen[it.ID]; dup {
			return nil, fmt.Errorf("%w: item id %q is already in use", domain.ErrValidation, it.ID)
		}
		seen[it.ID] = struct{}{}
		if err := ValidateItem(it, s.trip.DurationDays); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, nil
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.trip.Items, func(it domain.ItineraryItem) bool {
		return it.ID == id
	})
}
