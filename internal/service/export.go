package service

import (
	"context"
	"slices"

	"github.com/pkordes/wanderplan/internal/domain"
)

// Export returns one ExportRow per item, ordered by day and start time.
// Returns domain.ErrNoTrip before Setup.
func (s *TripService) Export(ctx context.Context) ([]domain.ExportRow, error) {
	var rows []domain.ExportRow
	err := s.withTrip("Export", func() error {
		items := s.store.Items()
		slices.SortStableFunc(items, byDayAndTime)

		rows = make([]domain.ExportRow, 0, len(items))
		for _, it := range items {
			row := domain.ExportRow{
				DayIndex:    it.DayIndex,
				Date:        s.trip.DateOf(it.DayIndex).Format("2006-01-02"),
				StartTime:   it.StartTime,
				EndTime:     it.EndTime,
				Title:       it.Title,
				Category:    it.Category,
				Cost:        it.Cost,
				BookingLink: it.BookingLink,
			}
			if it.Location != nil {
				row.Location = it.Location.Name
			}
			if it.Transport != nil {
				row.TransportMode = it.Transport.Mode
				row.Provider = it.Transport.Provider
				row.Identifier = it.Transport.Identifier
			}
			rows = append(rows, row)
		}
		return nil
	})
	return rows, err
}
