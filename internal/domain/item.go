package domain

import (
	"bytes"
	"encoding/json"
)

// Category classifies an itinerary item.
type Category string

const (
	CategoryTransport     Category = "TRANSPORT"
	CategoryActivity      Category = "ACTIVITY"
	CategoryFood          Category = "FOOD"
	CategoryAccommodation Category = "ACCOMMODATION"
)

// Valid reports whether c is one of the four item categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryTransport, CategoryActivity, CategoryFood, CategoryAccommodation:
		return true
	}
	return false
}

// Location is purely descriptive; nothing in the core reads lat/lng.
type Location struct {
	Name    string   `json:"name"`
	Address string   `json:"address,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

// ItineraryItem is one scheduled entry of the trip.
// Items are identified by ID, never by their position in the collection.
// StartTime and EndTime use the "HH:mm" 24-hour format; EndTime is empty when
// the item has no fixed end. Transport is set exactly when Category is
// TRANSPORT. IsLocked is advisory and not enforced by the store.
type ItineraryItem struct {
	ID          string            `json:"id"`
	DayIndex    int               `json:"dayIndex"`
	StartTime   string            `json:"startTime"`
	EndTime     string            `json:"endTime,omitempty"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Category    Category          `json:"category"`
	Location    *Location         `json:"location,omitempty"`
	Transport   *TransportDetails `json:"transportDetails,omitempty"`
	Cost        *float64          `json:"cost,omitempty"`
	BookingLink string            `json:"bookingLink,omitempty"`
	IsLocked    bool              `json:"isLocked,omitempty"`
}

// Clone returns a deep copy of it so callers can never reach the store's
// copy through a shared pointer.
func (it ItineraryItem) Clone() ItineraryItem {
	out := it
	if it.Location != nil {
		loc := *it.Location
		if loc.Lat != nil {
			lat := *loc.Lat
			loc.Lat = &lat
		}
		if loc.Lng != nil {
			lng := *loc.Lng
			loc.Lng = &lng
		}
		out.Location = &loc
	}
	if it.Transport != nil {
		td := *it.Transport
		out.Transport = &td
	}
	if it.Cost != nil {
		c := *it.Cost
		out.Cost = &c
	}
	return out
}

// Optional is a patch field that tells "absent" apart from "explicitly null".
// Set is true whenever the field appeared in the JSON document; Value is nil
// when it appeared as null.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some returns an Optional that sets the field to v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// Null returns an Optional that clears the field.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// UnmarshalJSON records presence and decodes the value unless it is null.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// ItemPatch is a partial update of an ItineraryItem. Nil pointers and unset
// Optionals leave the field untouched. ID is not patchable.
type ItemPatch struct {
	DayIndex    *int                       `json:"dayIndex,omitempty"`
	StartTime   *string                    `json:"startTime,omitempty"`
	EndTime     Optional[string]           `json:"endTime"`
	Title       *string                    `json:"title,omitempty"`
	Description Optional[string]           `json:"description"`
	Category    *Category                  `json:"category,omitempty"`
	Location    Optional[Location]         `json:"location"`
	Transport   Optional[TransportDetails] `json:"transportDetails"`
	Cost        Optional[float64]          `json:"cost"`
	BookingLink Optional[string]           `json:"bookingLink"`
	IsLocked    *bool                      `json:"isLocked,omitempty"`
}

// Apply returns a copy of it with the patch merged in.
func (p ItemPatch) Apply(it ItineraryItem) ItineraryItem {
	out := it.Clone()
	if p.DayIndex != nil {
		out.DayIndex = *p.DayIndex
	}
	if p.StartTime != nil {
		out.StartTime = *p.StartTime
	}
	if p.EndTime.Set {
		out.EndTime = deref(p.EndTime.Value)
	}
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Description.Set {
		out.Description = deref(p.Description.Value)
	}
	if p.Category != nil {
		out.Category = *p.Category
	}
	if p.Location.Set {
		out.Location = p.Location.Value
	}
	if p.Transport.Set {
		out.Transport = p.Transport.Value
	}
	if p.Cost.Set {
		out.Cost = p.Cost.Value
	}
	if p.BookingLink.Set {
		out.BookingLink = deref(p.BookingLink.Value)
	}
	if p.IsLocked != nil {
		out.IsLocked = *p.IsLocked
	}
	return out.Clone()
}
