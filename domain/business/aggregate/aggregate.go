package aggregate

import "time"

// DailyPoint sums of the ridership of one (date, working day) group
type DailyPoint struct {
	Date       time.Time `json:"date"`
	WorkingDay bool      `json:"working_day"`
	Casual     int       `json:"casual"`
	Registered int       `json:"registered"`
	Total      int       `json:"total"`
}

// WorkingDaySeries the daily sums split in one series per working day flag
type WorkingDaySeries struct {
	Working    []DailyPoint `json:"working"`
	NonWorking []DailyPoint `json:"non_working"`
}

// Len returns the amount of points of both series
func (wds WorkingDaySeries) Len() int {
	return len(wds.Working) + len(wds.NonWorking)
}

// SeriesPoint one point of a single user type series
type SeriesPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// UserSeries the daily series projected on the column of the selected user type
type UserSeries struct {
	UserType   string        `json:"user_type"`
	Working    []SeriesPoint `json:"working"`
	NonWorking []SeriesPoint `json:"non_working"`
}

// AverageRow means of the ridership columns of one group, rounded to 2 decimals
// + Key: weather descriptor or weather category
// + Records: amount of records of the group, zero for categories without data
type AverageRow struct {
	Key        string  `json:"key"`
	Records    int     `json:"records"`
	Casual     float64 `json:"casual"`
	Registered float64 `json:"registered"`
	Total      float64 `json:"total"`
}

// Totals grand sums of the filtered rows
type Totals struct {
	Records    int `json:"records"`
	Casual     int `json:"casual"`
	Registered int `json:"registered"`
	Total      int `json:"total"`
}

// Distribution five-number summary of one ridership column inside a group
type Distribution struct {
	Key      string  `json:"key"`
	UserType string  `json:"user_type"`
	Records  int     `json:"records"`
	Min      float64 `json:"min"`
	Q1       float64 `json:"q1"`
	Median   float64 `json:"median"`
	Q3       float64 `json:"q3"`
	Max      float64 `json:"max"`
}
