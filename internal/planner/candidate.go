package planner

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/wanderplan/internal/domain"
)

// Candidate is one item as returned by a generator. TransportType,
// TransportProvider and MetroCity are only meaningful for TRANSPORT items.
type Candidate struct {
	DayIndex          int                   `json:"dayIndex"`
	StartTime         string                `json:"startTime"`
	EndTime           string                `json:"endTime,omitempty"`
	Title             string                `json:"title"`
	Description       string                `json:"description,omitempty"`
	Category          domain.Category       `json:"category"`
	Cost              float64               `json:"cost"`
	LocationName      string                `json:"locationName,omitempty"`
	TransportType     *domain.TransportMode `json:"transportType,omitempty"`
	TransportProvider *string               `json:"transportProvider,omitempty"`
	MetroCity         *domain.MetroCity     `json:"metroCity,omitempty"`

	// DecodeErr is set by a generator for an element it could not decode.
	// Such a candidate is dropped.
	DecodeErr error `json:"-"`
}

// Malformed returns a candidate standing in for an element that failed to
// decode.
func Malformed(err error) Candidate {
	return Candidate{DecodeErr: fmt.Errorf("%w: malformed candidate: %w", domain.ErrValidation, err)}
}

// ToItem maps the candidate onto an ItineraryItem with a fresh ID.
// The location falls back to the title; a transport item without a type
// becomes OTHER and a metro leg without a city gets NONE. Transport fields on
// a non-transport item, or a metro city on a non-metro leg, are rejected with
// domain.ErrValidation, as is a candidate carrying a DecodeErr. The result
// still has to pass item validation.
func (c Candidate) ToItem() (domain.ItineraryItem, error) {
	if c.DecodeErr != nil {
		return domain.ItineraryItem{}, c.DecodeErr
	}
	cost := c.Cost
	item := domain.ItineraryItem{
		ID:          uuid.NewString(),
		DayIndex:    c.DayIndex,
		StartTime:   c.StartTime,
		EndTime:     c.EndTime,
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category,
		Cost:        &cost,
		Location:    &domain.Location{Name: c.LocationName},
	}
	if item.Location.Name == "" {
		item.Location.Name = c.Title
	}

	city := domain.MetroNone
	if c.MetroCity != nil && *c.MetroCity != "" {
		city = *c.MetroCity
	}

	if c.Category != domain.CategoryTransport {
		if c.TransportType != nil || c.TransportProvider != nil || city != domain.MetroNone {
			return domain.ItineraryItem{}, fmt.Errorf("%w: transport fields on a %s item", domain.ErrValidation, c.Category)
		}
		return item, nil
	}

	td := domain.TransportDetails{Mode: domain.ModeOther}
	if c.TransportType != nil && *c.TransportType != "" {
		td.Mode = *c.TransportType
	}
	if c.TransportProvider != nil {
		td.Provider = *c.TransportProvider
	}
	switch {
	case td.Mode == domain.ModeMetro:
		td.Variant = domain.MetroInfo{City: city}
	case city != domain.MetroNone:
		return domain.ItineraryItem{}, fmt.Errorf("%w: metroCity on a %s leg", domain.ErrValidation, td.Mode)
	}
	item.Transport = &td
	return item, nil
}
