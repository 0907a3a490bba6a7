package correlation

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/mrsyaban/bike-rental-analysis/domain/business/correlation"
	"github.com/mrsyaban/bike-rental-analysis/domain/entities/rental"
)

const (
	TemperatureColumn = "temp"
	FeelsLikeColumn   = "atemp"
	HumidityColumn    = "hum"
	WindSpeedColumn   = "windspeed"
	CasualColumn      = "casual"
	RegisteredColumn  = "registered"
	TotalColumn       = "cnt"
)

var extractors = map[string]func(record rental.Record) float64{
	TemperatureColumn: func(record rental.Record) float64 { return record.Temperature },
	FeelsLikeColumn:   func(record rental.Record) float64 { return record.FeelsLike },
	HumidityColumn:    func(record rental.Record) float64 { return record.Humidity },
	WindSpeedColumn:   func(record rental.Record) float64 { return record.WindSpeed },
	CasualColumn:      func(record rental.Record) float64 { return float64(record.Casual) },
	RegisteredColumn:  func(record rental.Record) float64 { return float64(record.Registered) },
	TotalColumn:       func(record rental.Record) float64 { return float64(record.Total) },
}

// DefaultColumns returns the columns of the dashboard heatmap in display order
func DefaultColumns() []string {
	return []string{TemperatureColumn, FeelsLikeColumn, HumidityColumn, WindSpeedColumn, TotalColumn}
}

// IsKnownColumn returns true if Compute can extract the column from a record
func IsKnownColumn(column string) bool {
	_, ok := extractors[column]
	return ok
}

// Compute returns the sample Pearson correlation of every pair of columns over records.
// The diagonal is computed as well, so a column with zero variance (or fewer than two
// records) produces NaN on its row and column. Unknown columns are all NaN
func Compute(records []rental.Record, columns []string) correlation.Matrix {
	if len(columns) == 0 {
		return correlation.NewMatrix(columns, nil)
	}

	data := make([][]float64, len(columns))
	for idx, column := range columns {
		data[idx] = columnValues(records, column)
	}

	values := mat.NewSymDense(len(columns), nil)
	for i := range columns {
		for j := i; j < len(columns); j++ {
			values.SetSym(i, j, pearson(data[i], data[j]))
		}
	}

	return correlation.NewMatrix(columns, values)
}

func columnValues(records []rental.Record, column string) []float64 {
	extractor, ok := extractors[column]
	if !ok {
		return nil
	}

	values := make([]float64, len(records))
	for idx := range records {
		values[idx] = extractor(records[idx])
	}
	return values
}

func pearson(x []float64, y []float64) float64 {
	if x == nil || y == nil || len(x) < 2 {
		return math.NaN()
	}
	return stat.Correlation(x, y, nil)
}
