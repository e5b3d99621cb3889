// Package domain contains the core data types for the WanderPlan trip planner:
// the trip aggregate, itinerary items, transport legs, expenses and the error
// sentinels shared by every other internal package.
package domain

import "time"

// Traveler is a member of the travelling group. Travelers are fixed at trip
// setup; their IDs are only used as references from expenses.
type Traveler struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TripData is the aggregate root of a planning session. It is the single
// source of truth: the itinerary store and the expense ledger operate on it by
// reference and nothing else mutates it.
type TripData struct {
	Title        string
	StartDate    time.Time
	DurationDays int
	Budget       float64
	Travelers    []Traveler
	Items        []ItineraryItem
	Expenses     []Expense
}

// HasTraveler reports whether id names one of the trip's travelers.
func (t *TripData) HasTraveler(id string) bool {
	for _, tr := range t.Travelers {
		if tr.ID == id {
			return true
		}
	}
	return false
}

// DateOf returns the calendar date of the given 1-based day index.
func (t *TripData) DateOf(day int) time.Time {
	return t.StartDate.AddDate(0, 0, day-1)
}

// Validate checks the trip-level invariants: a title, a positive duration, a
// non-negative budget and at least one traveler, each with a unique non-empty ID.
func (t *TripData) Validate() error {
	if t.Title == "" {
		return validationf("title is required")
	}
	if t.DurationDays <= 0 {
		return validationf("durationDays must be greater than 0")
	}
	if t.Budget < 0 {
		return validationf("budget must not be negative")
	}
	if len(t.Travelers) == 0 {
		return validationf("at least one traveler is required")
	}
	seen := make(map[string]struct{}, len(t.Travelers))
	for _, tr := range t.Travelers {
		if tr.ID == "" {
			return validationf("traveler id is required")
		}
		if _, dup := seen[tr.ID]; dup {
			return validationf("duplicate traveler id %q", tr.ID)
		}
		seen[tr.ID] = struct{}{}
	}
	return nil
}

// Clone returns a deep copy of t.
func (t *TripData) Clone() TripData {
	out := *t
	out.Travelers = append([]Traveler(nil), t.Travelers...)
	out.Items = make([]ItineraryItem, len(t.Items))
	for i, it := range t.Items {
		out.Items[i] = it.Clone()
	}
	out.Expenses = make([]Expense, len(t.Expenses))
	for i, e := range t.Expenses {
		out.Expenses[i] = e.Clone()
	}
	return out
}
