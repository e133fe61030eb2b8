package timeofday

import (
	"fmt"
	"time"

	"github.com/KasumiMercury/primind-task-time-predictor/internal/domain"
)

const (
	// MorningStartHour is the first hour (inclusive) bucketed as Morning.
	MorningStartHour = 5
	// AfternoonStartHour is the first hour (inclusive) bucketed as Afternoon.
	AfternoonStartHour = 12
	// EveningStartHour is the first hour (inclusive) bucketed as Evening.
	// Evening wraps past midnight up to MorningStartHour.
	EveningStartHour = 18
)

// FromHour maps an hour of day to its bucket. Hours outside [0, 23] are
// rejected with domain.ErrHourOutOfRange instead of being clamped.
func FromHour(hour int) (domain.TimeOfDay, error) {
	if hour < 0 || hour > 23 {
		return "", fmt.Errorf("%w: %d", domain.ErrHourOutOfRange, hour)
	}

	switch {
	case hour >= MorningStartHour && hour < AfternoonStartHour:
		return domain.TimeOfDayMorning, nil
	case hour >= AfternoonStartHour && hour < EveningStartHour:
		return domain.TimeOfDayAfternoon, nil
	default:
		return domain.TimeOfDayEvening, nil
	}
}

// FromTime buckets the hour of t in t's own location.
func FromTime(t time.Time) domain.TimeOfDay {
	// Hour() is always within [0, 23].
	tod, _ := FromHour(t.Hour())
	return tod
}
