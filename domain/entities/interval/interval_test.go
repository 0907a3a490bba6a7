package interval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestParseDateInterval(t *testing.T) {
	dateInterval, err := ParseDateInterval("2011-01-01", "2011-01-31")
	require.NoError(t, err)
	assert.Equal(t, date(2011, 1, 1), dateInterval.Start)
	assert.Equal(t, date(2011, 1, 31), dateInterval.End)
	assert.Equal(t, "[2011-01-01, 2011-01-31]", dateInterval.String())

	_, err = ParseDateInterval("2011-01-01", "31/01/2011")
	assert.Error(t, err)
}

func TestContainsIgnoresTimeOfDay(t *testing.T) {
	dateInterval := NewDateInterval(date(2011, 1, 2), time.Date(2011, 1, 3, 18, 0, 0, 0, time.UTC))

	assert.True(t, dateInterval.Contains(time.Date(2011, 1, 2, 23, 0, 0, 0, time.UTC)))
	assert.True(t, dateInterval.Contains(time.Date(2011, 1, 3, 5, 0, 0, 0, time.UTC)))
	assert.False(t, dateInterval.Contains(date(2011, 1, 1)))
	assert.False(t, dateInterval.Contains(date(2011, 1, 4)))
}

func TestInvertedInterval(t *testing.T) {
	dateInterval := NewDateInterval(date(2011, 1, 3), date(2011, 1, 1))

	assert.True(t, dateInterval.IsInverted())
	assert.False(t, dateInterval.Contains(date(2011, 1, 2)))
}

func TestClamp(t *testing.T) {
	bounds := NewDateInterval(date(2011, 1, 1), date(2012, 12, 31))

	clamped := NewDateInterval(date(2010, 6, 1), date(2013, 1, 1)).Clamp(bounds)
	assert.Equal(t, bounds, clamped)

	inside := NewDateInterval(date(2011, 3, 1), date(2011, 4, 1))
	assert.Equal(t, inside, inside.Clamp(bounds))
}

func TestIsZero(t *testing.T) {
	assert.True(t, DateInterval{}.IsZero())
	assert.False(t, NewDateInterval(date(2011, 1, 1), date(2011, 1, 1)).IsZero())
}
