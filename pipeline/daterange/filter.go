package daterange

import (
	"github.com/mrsyaban/bike-rental-analysis/domain/entities/interval"
	"github.com/mrsyaban/bike-rental-analysis/domain/entities/rental"
)

// Filter returns a new slice with the records whose date lies in dateInterval (both ends included).
// records is never modified. An inverted interval returns an empty slice
func Filter(records []rental.Record, dateInterval interval.DateInterval) []rental.Record {
	filtered := make([]rental.Record, 0)
	if dateInterval.IsInverted() {
		return filtered
	}

	for idx := range records {
		if dateInterval.Contains(records[idx].Date) {
			filtered = append(filtered, records[idx])
		}
	}
	return filtered
}

// Bounds returns the first and last date observed in records. ok is false for an empty slice
func Bounds(records []rental.Record) (interval.DateInterval, bool) {
	if len(records) == 0 {
		return interval.DateInterval{}, false
	}

	minDate, maxDate := records[0].Day(), records[0].Day()
	for idx := range records {
		day := records[idx].Day()
		if day.Before(minDate) {
			minDate = day
		}
		if day.After(maxDate) {
			maxDate = day
		}
	}
	return interval.NewDateInterval(minDate, maxDate), true
}

// Clamp moves both ends of dateInterval inside the dates observed in records.
// Without records the interval is returned as is
func Clamp(dateInterval interval.DateInterval, records []rental.Record) interval.DateInterval {
	bounds, ok := Bounds(records)
	if !ok {
		return dateInterval
	}
	return dateInterval.Clamp(bounds)
}
