package itinerary

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkordes/wanderplan/internal/domain"
)

// clockLayout is the "HH:mm" 24-hour layout used by StartTime and EndTime.
// Only zero-padded values are accepted so that string order equals time order.
const clockLayout = "15:04"

// ValidateItem enforces the item rules shared by AddItem, UpdateItem and
// generated plans.
//   - DayIndex must lie in 1..durationDays.
//   - StartTime is required; EndTime, if set, must not be before StartTime.
//   - Title is required; a Location, if set, must have a name.
//   - Transport details are present exactly when Category is TRANSPORT and
//     carry only the fields of their mode.
//   - Cost, if set, must not be negative.
func ValidateItem(it domain.ItineraryItem, durationDays int) error {
	if it.DayIndex < 1 || it.DayIndex > durationDays {
		return fmt.Errorf("%w: dayIndex %d is outside the trip range 1..%d", domain.ErrValidation, it.DayIndex, durationDays)
	}
	if err := validClock("startTime", it.StartTime); err != nil {
		return err
	}
	if it.EndTime != "" {
		if err := validClock("endTime", it.EndTime); err != nil {
			return err
		}
		if it.EndTime < it.StartTime {
			return fmt.Errorf("%w: endTime must not be before startTime", domain.ErrValidation)
		}
	}
	if strings.TrimSpace(it.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if !it.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", domain.ErrValidation, it.Category)
	}
	if it.Location != nil && strings.TrimSpace(it.Location.Name) == "" {
		return fmt.Errorf("%w: location name is required", domain.ErrValidation)
	}
	if it.Category == domain.CategoryTransport {
		if it.Transport == nil {
			return fmt.Errorf("%w: transport items require transportDetails", domain.ErrValidation)
		}
		if err := it.Transport.Validate(); err != nil {
			return err
		}
	} else if it.Transport != nil {
		return fmt.Errorf("%w: transportDetails are only allowed on transport items", domain.ErrValidation)
	}
	if it.Cost != nil && *it.Cost < 0 {
		return fmt.Errorf("%w: cost must not be negative", domain.ErrValidation)
	}
	return nil
}

func validClock(field, v string) error {
	if len(v) != len(clockLayout) {
		return fmt.Errorf("%w: %s must use HH:mm", domain.ErrValidation, field)
	}
	if _, err := time.Parse(clockLayout, v); err != nil {
		return fmt.Errorf("%w: %s must use HH:mm", domain.ErrValidation, field)
	}
	return nil
}
