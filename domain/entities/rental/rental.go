package rental

import "time"

// Record struct that contains one row of the rental dataset (hourly or daily)
// + Date: calendar date of the record, time of day is always zero
// + Hour: hour of the day, only meaningful for the hourly dataset
// + WorkingDay: true when the day is neither a weekend nor a holiday
// + WeatherSituation: 1 (clearest) to 4 (most severe)
// + Temperature, FeelsLike, Humidity, WindSpeed: normalized values
// + Casual, Registered, Total: ridership counts. Total is expected to be Casual + Registered
type Record struct {
	Instant          int       `json:"instant"`
	Date             time.Time `json:"date"`
	Season           int       `json:"season"`
	Year             int       `json:"year"`
	Month            int       `json:"month"`
	Hour             int       `json:"hour"`
	Holiday          bool      `json:"holiday"`
	Weekday          int       `json:"weekday"`
	WorkingDay       bool      `json:"working_day"`
	WeatherSituation int       `json:"weather_situation"`
	Temperature      float64   `json:"temperature"`
	FeelsLike        float64   `json:"feels_like"`
	Humidity         float64   `json:"humidity"`
	WindSpeed        float64   `json:"wind_speed"`
	Casual           int       `json:"casual"`
	Registered       int       `json:"registered"`
	Total            int       `json:"total"`
}

// Day returns the date part of the record in UTC
func (r Record) Day() time.Time {
	return TruncateToDay(r.Date)
}

// TruncateToDay drops the time of day and keeps only year, month and day
func TruncateToDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
