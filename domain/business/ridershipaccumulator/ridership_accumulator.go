package ridershipaccumulator

import (
	"math"

	"github.com/mrsyaban/bike-rental-analysis/domain/entities/rental"
)

// RidershipAccumulator struct that collects the ridership of every record that shares a group key
// + Key: group key of the accumulator. Once set, it cannot change
// + Counter: counts the amount of records collected
// + Casual, Registered, Total: sums of the ridership columns
type RidershipAccumulator struct {
	Key        string `json:"key"`
	Counter    int    `json:"counter"`
	Casual     int    `json:"casual"`
	Registered int    `json:"registered"`
	Total      int    `json:"total"`
}

func NewRidershipAccumulator(key string) *RidershipAccumulator {
	return &RidershipAccumulator{
		Key: key,
	}
}

func (ra *RidershipAccumulator) UpdateAccumulator(record rental.Record) {
	ra.Counter += 1
	ra.Casual += record.Casual
	ra.Registered += record.Registered
	ra.Total += record.Total
}

// GetAverages returns the mean of casual, registered and total rounded to 2 decimals.
// An empty accumulator averages to zero
func (ra *RidershipAccumulator) GetAverages() (float64, float64, float64) {
	if ra.Counter == 0 {
		return 0, 0, 0
	}
	counter := float64(ra.Counter)
	return RoundTo2(float64(ra.Casual) / counter),
		RoundTo2(float64(ra.Registered) / counter),
		RoundTo2(float64(ra.Total) / counter)
}

// RoundTo2 rounds half to even on the second decimal, the same way numpy does
func RoundTo2(value float64) float64 {
	return math.RoundToEven(value*100) / 100
}
