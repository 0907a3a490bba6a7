package aggregator

import (
	"time"

	"github.com/mrsyaban/bike-rental-analysis/domain/business/aggregate"
	"github.com/mrsyaban/bike-rental-analysis/domain/business/ridershipaccumulator"
	"github.com/mrsyaban/bike-rental-analysis/domain/entities/rental"
	"github.com/mrsyaban/bike-rental-analysis/domain/entities/weather"
)

const dateKeyLayout = "2006-01-02"

// KeyFunc returns the group key of the record at position idx
type KeyFunc func(idx int, record rental.Record) string

// WeatherDescriptorKey groups by the label of the weather situation
func WeatherDescriptorKey(_ int, record rental.Record) string {
	return string(weather.Describe(record.WeatherSituation))
}

// CategoryKey groups by the category already assigned to each row. categories[idx] belongs to records[idx]
func CategoryKey(categories []weather.Category) KeyFunc {
	return func(idx int, _ rental.Record) string {
		return categories[idx].String()
	}
}

// CategoryOrder returns the category names in display order
func CategoryOrder() []string {
	categories := weather.Categories()
	order := make([]string, len(categories))
	for idx, category := range categories {
		order[idx] = category.String()
	}
	return order
}

type dailyKey struct {
	date       string
	workingDay bool
}

// SumByDateAndWorkingDay sums the ridership of each (date, working day) pair and splits the
// result in one series per flag value. Points keep the order in which their key first appears
func SumByDateAndWorkingDay(records []rental.Record) aggregate.WorkingDaySeries {
	series := aggregate.WorkingDaySeries{
		Working:    make([]aggregate.DailyPoint, 0),
		NonWorking: make([]aggregate.DailyPoint, 0),
	}

	accumulators := make(map[dailyKey]*ridershipaccumulator.RidershipAccumulator)
	dates := make(map[dailyKey]time.Time)
	order := make([]dailyKey, 0)
	for idx := range records {
		key := dailyKey{
			date:       records[idx].Day().Format(dateKeyLayout),
			workingDay: records[idx].WorkingDay,
		}
		accumulator, ok := accumulators[key]
		if !ok {
			accumulator = ridershipaccumulator.NewRidershipAccumulator(key.date)
			accumulators[key] = accumulator
			dates[key] = records[idx].Day()
			order = append(order, key)
		}
		accumulator.UpdateAccumulator(records[idx])
	}

	for _, key := range order {
		accumulator := accumulators[key]
		point := aggregate.DailyPoint{
			Date:       dates[key],
			WorkingDay: key.workingDay,
			Casual:     accumulator.Casual,
			Registered: accumulator.Registered,
			Total:      accumulator.Total,
		}
		if key.workingDay {
			series.Working = append(series.Working, point)
		} else {
			series.NonWorking = append(series.NonWorking, point)
		}
	}

	return series
}

// MeanBy averages the ridership columns of every group. When order is not empty the rows
// follow it and keys without records get a zero-filled row. Keys outside order are dropped.
// Without order the rows follow the first appearance of each key
func MeanBy(records []rental.Record, keyFn KeyFunc, order []string) []aggregate.AverageRow {
	rows := make([]aggregate.AverageRow, 0)
	if len(records) == 0 {
		return rows
	}

	accumulators, seen := groupRecords(records, keyFn)
	if len(order) == 0 {
		order = seen
	}

	for _, key := range order {
		accumulator, ok := accumulators[key]
		if !ok {
			accumulator = ridershipaccumulator.NewRidershipAccumulator(key)
		}
		casual, registered, total := accumulator.GetAverages()
		rows = append(rows, aggregate.AverageRow{
			Key:        key,
			Records:    accumulator.Counter,
			Casual:     casual,
			Registered: registered,
			Total:      total,
		})
	}

	return rows
}

// MeanByWeatherDescriptor averages the ridership per weather situation label
func MeanByWeatherDescriptor(records []rental.Record) []aggregate.AverageRow {
	return MeanBy(records, WeatherDescriptorKey, nil)
}

// MeanByCategory averages the ridership per weather category. Every category is present,
// in display order, as long as records is not empty
func MeanByCategory(records []rental.Record, categories []weather.Category) []aggregate.AverageRow {
	if len(records) != len(categories) {
		panic("[Aggregator] records and categories must have the same length")
	}
	return MeanBy(records, CategoryKey(categories), CategoryOrder())
}

// Totals sums the ridership columns of all the records
func Totals(records []rental.Record) aggregate.Totals {
	accumulator := ridershipaccumulator.NewRidershipAccumulator("totals")
	for idx := range records {
		accumulator.UpdateAccumulator(records[idx])
	}

	return aggregate.Totals{
		Records:    accumulator.Counter,
		Casual:     accumulator.Casual,
		Registered: accumulator.Registered,
		Total:      accumulator.Total,
	}
}

// Series projects both daily series on the column of userType
func Series(series aggregate.WorkingDaySeries, userType rental.UserType) aggregate.UserSeries {
	return aggregate.UserSeries{
		UserType:   string(userType),
		Working:    projectPoints(series.Working, userType),
		NonWorking: projectPoints(series.NonWorking, userType),
	}
}

func projectPoints(points []aggregate.DailyPoint, userType rental.UserType) []aggregate.SeriesPoint {
	projected := make([]aggregate.SeriesPoint, len(points))
	for idx, point := range points {
		projected[idx] = aggregate.SeriesPoint{
			Date:  point.Date,
			Value: userType.Count(float64(point.Casual), float64(point.Registered), float64(point.Total)),
		}
	}
	return projected
}

func groupRecords(records []rental.Record, keyFn KeyFunc) (map[string]*ridershipaccumulator.RidershipAccumulator, []string) {
	accumulators := make(map[string]*ridershipaccumulator.RidershipAccumulator)
	seen := make([]string, 0)
	for idx := range records {
		key := keyFn(idx, records[idx])
		accumulator, ok := accumulators[key]
		if !ok {
			accumulator = ridershipaccumulator.NewRidershipAccumulator(key)
			accumulators[key] = accumulator
			seen = append(seen, key)
		}
		accumulator.UpdateAccumulator(records[idx])
	}
	return accumulators, seen
}
