package aggregator

import (
	"math"
	"sort"

	"github.com/mrsyaban/bike-rental-analysis/domain/business/aggregate"
	"github.com/mrsyaban/bike-rental-analysis/domain/entities/rental"
)

// Distributions returns the five-number summary of the userType column for every group.
// Ordering follows the same rules as MeanBy, a key without records gets a zero summary
func Distributions(records []rental.Record, keyFn KeyFunc, order []string, userType rental.UserType) []aggregate.Distribution {
	distributions := make([]aggregate.Distribution, 0)
	if len(records) == 0 {
		return distributions
	}

	values := make(map[string][]float64)
	seen := make([]string, 0)
	for idx := range records {
		key := keyFn(idx, records[idx])
		if _, ok := values[key]; !ok {
			seen = append(seen, key)
		}
		record := records[idx]
		values[key] = append(values[key], userType.Count(float64(record.Casual), float64(record.Registered), float64(record.Total)))
	}

	if len(order) == 0 {
		order = seen
	}

	for _, key := range order {
		distributions = append(distributions, summarize(key, userType, values[key]))
	}

	return distributions
}

// summarize sorts values in place
func summarize(key string, userType rental.UserType, values []float64) aggregate.Distribution {
	distribution := aggregate.Distribution{
		Key:      key,
		UserType: string(userType),
		Records:  len(values),
	}
	if len(values) == 0 {
		return distribution
	}

	sort.Float64s(values)
	distribution.Min = values[0]
	distribution.Q1 = linearQuantile(0.25, values)
	distribution.Median = linearQuantile(0.5, values)
	distribution.Q3 = linearQuantile(0.75, values)
	distribution.Max = values[len(values)-1]
	return distribution
}

// linearQuantile interpolates between the two closest ranks of sorted, the quartiles a box plot draws.
// sorted must not be empty
func linearQuantile(p float64, sorted []float64) float64 {
	h := float64(len(sorted)-1) * p
	lower := int(math.Floor(h))
	upper := int(math.Ceil(h))
	return sorted[lower] + (h-float64(lower))*(sorted[upper]-sorted[lower])
}
