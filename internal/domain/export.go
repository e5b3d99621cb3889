package domain

// ExportRow is a single row in the itinerary export.
// It is a flat, denormalized view: one row per item in day order, with the
// calendar date resolved from the trip start date. Transport columns are empty
// for non-transport items.
type ExportRow struct {
	DayIndex  int
	Date      string // "2006-01-02"
	StartTime string
	EndTime   string
	Title     string
	Category  Category
	Location  string

	TransportMode TransportMode
	Provider      string
	Identifier    string

	Cost        *float64
	BookingLink string
}
