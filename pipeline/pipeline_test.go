package pipeline

import (
	"context"
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrsyaban/bike-rental-analysis/dataset"
	"github.com/mrsyaban/bike-rental-analysis/domain/business/aggregate"
	"github.com/mrsyaban/bike-rental-analysis/domain/entities/interval"
	"github.com/mrsyaban/bike-rental-analysis/domain/entities/rental"
	"github.com/mrsyaban/bike-rental-analysis/domain/entities/weather"
	"github.com/mrsyaban/bike-rental-analysis/pipeline/classifier"
)

func day(d int) time.Time {
	return time.Date(2011, 1, d, 0, 0, 0, 0, time.UTC)
}

func loadTestDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	loaded, err := dataset.NewLoader(nil).Load(context.Background(), "../dataset/testdata/hour.csv", "../dataset/testdata/day.csv")
	require.NoError(t, err)
	return loaded
}

func TestRunWholeDataset(t *testing.T) {
	result := Run(loadTestDataset(t), Request{})

	assert.Equal(t, interval.NewDateInterval(day(1), day(3)), result.Request.Interval)
	assert.Equal(t, result.Bounds, result.Request.Interval)
	assert.Equal(t, rental.AllUsers, result.Request.UserType)
	assert.Equal(t, Hourly, result.Request.Granularity)
	assert.Equal(t, aggregate.Totals{Records: 8, Casual: 27, Registered: 329, Total: 356}, result.Totals)

	expectedCategories := []weather.Category{
		weather.Poor, weather.Poor, weather.Poor, weather.Poor, weather.Poor,
		weather.Good, weather.Ideal, weather.Moderate,
	}
	assert.Equal(t, expectedCategories, result.Categories)

	expectedNonWorking := []aggregate.DailyPoint{
		{Date: day(1), Casual: 16, Registered: 72, Total: 88},
		{Date: day(2), Casual: 6, Registered: 37, Total: 43},
	}
	expectedWorking := []aggregate.DailyPoint{
		{Date: day(3), WorkingDay: true, Casual: 5, Registered: 220, Total: 225},
	}
	assert.Equal(t, expectedNonWorking, result.Daily.NonWorking)
	assert.Equal(t, expectedWorking, result.Daily.Working)

	expectedWeather := []aggregate.AverageRow{
		{Key: "Clear/Partly Cloudy", Records: 5, Casual: 3.8, Registered: 46, Total: 49.8},
		{Key: "Mist/Cloudy", Records: 2, Casual: 2.5, Registered: 14.5, Total: 17},
		{Key: "Light Rain/Snow", Records: 1, Casual: 3, Registered: 70, Total: 73},
	}
	assert.Equal(t, expectedWeather, result.WeatherAverages)

	expectedCategoryAverages := []aggregate.AverageRow{
		{Key: "Ideal", Records: 1, Casual: 2, Registered: 150, Total: 152},
		{Key: "Good", Records: 1, Casual: 1, Registered: 8, Total: 9},
		{Key: "Moderate", Records: 1, Casual: 3, Registered: 70, Total: 73},
		{Key: "Poor", Records: 5, Casual: 4.2, Registered: 20.2, Total: 24.4},
	}
	assert.Equal(t, expectedCategoryAverages, result.CategoryAverages)

	// one summary per key and user type
	assert.Len(t, result.WeatherDistributions, 9)
	assert.Len(t, result.CategoryDistributions, 12)

	assert.Equal(t, 5, result.Correlation.Size())
	for i := 0; i < 5; i++ {
		assert.InDelta(t, 1.0, result.Correlation.At(i, i), 1e-12)
	}
}

func TestRunFilterAndSplitScenario(t *testing.T) {
	ds := dataset.NewDataset(dataset.Source{}, []rental.Record{
		{Date: day(1), WorkingDay: true, WeatherSituation: 1, Total: 10},
		{Date: day(2), WorkingDay: false, WeatherSituation: 1, Total: 20},
		{Date: day(3), WorkingDay: true, WeatherSituation: 1, Total: 30},
	}, nil)

	result := Run(ds, NewRequest(interval.NewDateInterval(day(1), day(2)), rental.AllUsers))

	require.Len(t, result.Records, 2)
	assert.Equal(t, 30, result.Totals.Total)
	assert.Equal(t, []aggregate.SeriesPoint{{Date: day(1), Value: 10}}, result.Selected.Working)
	assert.Equal(t, []aggregate.SeriesPoint{{Date: day(2), Value: 20}}, result.Selected.NonWorking)
}

func TestRunSelectedUserType(t *testing.T) {
	result := Run(loadTestDataset(t), NewRequest(interval.NewDateInterval(day(1), day(3)), rental.CasualUsers))

	assert.Equal(t, "Casual", result.Selected.UserType)
	assert.Equal(t, []aggregate.SeriesPoint{{Date: day(3), Value: 5}}, result.Selected.Working)
	assert.Equal(t, []aggregate.SeriesPoint{{Date: day(1), Value: 16}, {Date: day(2), Value: 6}}, result.Selected.NonWorking)
}

func TestRunIsIdempotent(t *testing.T) {
	ds := loadTestDataset(t)
	req := NewRequest(interval.NewDateInterval(day(1), day(2)), rental.RegisteredUsers)

	first, err := json.Marshal(Run(ds, req))
	require.NoError(t, err)
	second, err := json.Marshal(Run(ds, req))
	require.NoError(t, err)
	assert.JSONEq(t, string(first), string(second))
}

func TestRunDoesNotModifyDataset(t *testing.T) {
	ds := loadTestDataset(t)
	before := make([]rental.Record, len(ds.Hourly))
	copy(before, ds.Hourly)

	result := Run(ds, NewRequest(interval.NewDateInterval(day(2), day(2)), rental.AllUsers))
	require.Len(t, result.Records, 3)
	result.Records[0].Total = 1000

	assert.Equal(t, before, ds.Hourly)
}

func TestRunClamp(t *testing.T) {
	ds := loadTestDataset(t)
	wide := interval.NewDateInterval(time.Date(2010, 6, 1, 0, 0, 0, 0, time.UTC), day(2))

	unclamped := Run(ds, NewRequest(wide, rental.AllUsers))
	assert.Equal(t, wide, unclamped.Request.Interval)

	req := NewRequest(wide, rental.AllUsers)
	req.Clamp = true
	clamped := Run(ds, req)
	assert.Equal(t, interval.NewDateInterval(day(1), day(2)), clamped.Request.Interval)

	assert.Equal(t, unclamped.Totals, clamped.Totals)
	assert.Equal(t, 6, clamped.Totals.Records)
}

func TestRunInvertedIntervalIsEmpty(t *testing.T) {
	result := Run(loadTestDataset(t), NewRequest(interval.NewDateInterval(day(3), day(1)), rental.AllUsers))

	assert.Empty(t, result.Records)
	assert.Equal(t, aggregate.Totals{}, result.Totals)
	assert.Equal(t, 0, result.Daily.Len())
	assert.Empty(t, result.WeatherAverages)
	assert.Empty(t, result.CategoryAverages)
	assert.Empty(t, result.WeatherDistributions)
	assert.Equal(t, 5, result.Correlation.Size())
	assert.True(t, math.IsNaN(result.Correlation.At(0, 0)))

	_, err := json.Marshal(result)
	assert.NoError(t, err)
}

func TestRunDailyGranularity(t *testing.T) {
	req := Request{Granularity: Daily}
	result := Run(loadTestDataset(t), req)

	assert.Equal(t, 3, result.Totals.Records)
	assert.Equal(t, 985+801+1349, result.Totals.Total)
	assert.Len(t, result.Daily.NonWorking, 2)
	assert.Len(t, result.Daily.Working, 1)
}

func TestRunWithClassifier(t *testing.T) {
	rules := []classifier.Rule{
		{Category: weather.Moderate, Situations: []int{1, 2, 3, 4}, MinTemperature: -1, MaxHumidity: 2},
	}
	weatherClassifier, err := classifier.NewClassifier(rules, weather.Poor)
	require.NoError(t, err)

	result := Run(loadTestDataset(t), Request{}, WithClassifier(weatherClassifier), WithCorrelationColumns([]string{"temp", "cnt"}))

	require.Len(t, result.CategoryAverages, 4)
	assert.Equal(t, 0, result.CategoryAverages[0].Records)
	assert.Equal(t, 8, result.CategoryAverages[2].Records)
	assert.Equal(t, []string{"temp", "cnt"}, result.Correlation.Columns())
}

func TestRunNilDataset(t *testing.T) {
	result := Run(nil, Request{})
	assert.Empty(t, result.Records)
	assert.Equal(t, aggregate.Totals{}, result.Totals)
}

func TestBounds(t *testing.T) {
	loaded := loadTestDataset(t)

	bounds, ok := Bounds(loaded, Hourly)
	require.True(t, ok)
	assert.Equal(t, interval.NewDateInterval(day(1), day(3)), bounds)

	bounds, ok = Bounds(loaded, Daily)
	require.True(t, ok)
	assert.Equal(t, interval.NewDateInterval(day(1), day(3)), bounds)

	_, ok = Bounds(nil, Hourly)
	assert.False(t, ok)
}
