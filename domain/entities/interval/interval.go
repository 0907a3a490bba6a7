package interval

import (
	"fmt"
	"time"

	"github.com/mrsyaban/bike-rental-analysis/domain/entities/rental"
)

const DateLayout = "2006-01-02"

// DateInterval closed interval of calendar dates
// + Start: first date included
// + End: last date included
type DateInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateInterval drops the time of day of both ends. No ordering check is made:
// an interval with Start after End simply contains no date
func NewDateInterval(start time.Time, end time.Time) DateInterval {
	return DateInterval{
		Start: rental.TruncateToDay(start),
		End:   rental.TruncateToDay(end),
	}
}

// ParseDateInterval builds an interval from two YYYY-MM-DD strings
func ParseDateInterval(start string, end string) (DateInterval, error) {
	startDate, err := time.Parse(DateLayout, start)
	if err != nil {
		return DateInterval{}, fmt.Errorf("invalid start date %q: %w", start, err)
	}

	endDate, err := time.Parse(DateLayout, end)
	if err != nil {
		return DateInterval{}, fmt.Errorf("invalid end date %q: %w", end, err)
	}

	return NewDateInterval(startDate, endDate), nil
}

// Contains reports whether the date part of t lies in [Start, End]
func (di DateInterval) Contains(t time.Time) bool {
	day := rental.TruncateToDay(t)
	return !day.Before(di.Start) && !day.After(di.End)
}

// IsZero returns true when neither end was set
func (di DateInterval) IsZero() bool {
	return di.Start.IsZero() && di.End.IsZero()
}

// IsInverted returns true when Start is after End
func (di DateInterval) IsInverted() bool {
	return di.Start.After(di.End)
}

// Clamp moves both ends inside bounds
func (di DateInterval) Clamp(bounds DateInterval) DateInterval {
	return DateInterval{
		Start: clampDate(di.Start, bounds),
		End:   clampDate(di.End, bounds),
	}
}

func (di DateInterval) String() string {
	return fmt.Sprintf("[%s, %s]", di.Start.Format(DateLayout), di.End.Format(DateLayout))
}

func clampDate(date time.Time, bounds DateInterval) time.Time {
	if date.Before(bounds.Start) {
		return bounds.Start
	}
	if date.After(bounds.End) {
		return bounds.End
	}
	return date
}
