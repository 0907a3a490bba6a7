package pipeline

import (
	"fmt"
	"strings"

	"github.com/mrsyaban/bike-rental-analysis/domain/entities/interval"
	"github.com/mrsyaban/bike-rental-analysis/domain/entities/rental"
)

// Granularity selects which records of the dataset the pipeline runs on
type Granularity string

const (
	Hourly Granularity = "hour"
	Daily  Granularity = "day"
)

// ParseGranularity is case-insensitive. An empty string means Hourly
func ParseGranularity(value string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "hour", "hourly":
		return Hourly, nil
	case "day", "daily":
		return Daily, nil
	default:
		return "", fmt.Errorf("%w: %s. Must be: %s or %s", ErrInvalidGranularity, value, Hourly, Daily)
	}
}

// Request filter chosen by the analyst
// + Interval: dates to keep, both ends included. The zero value keeps the whole dataset
// + UserType: ridership column of the single series view
// + Clamp: when true the interval is moved inside the dates of the dataset before filtering
// + Granularity: hourly or daily records
type Request struct {
	Interval    interval.DateInterval `json:"interval"`
	UserType    rental.UserType       `json:"user_type"`
	Clamp       bool                  `json:"clamp"`
	Granularity Granularity           `json:"granularity"`
}

func NewRequest(dateInterval interval.DateInterval, userType rental.UserType) Request {
	return Request{
		Interval:    dateInterval,
		UserType:    userType,
		Granularity: Hourly,
	}
}

// ParseRequest builds a request from raw values. Empty start and end keep the whole dataset
func ParseRequest(start string, end string, userType string, granularity string) (Request, error) {
	var dateInterval interval.DateInterval
	if start != "" || end != "" {
		if start == "" || end == "" {
			return Request{}, fmt.Errorf("both start and end dates are required, got start=%q end=%q", start, end)
		}
		var err error
		dateInterval, err = interval.ParseDateInterval(start, end)
		if err != nil {
			return Request{}, err
		}
	}

	parsedUserType, err := rental.ParseUserType(userType)
	if err != nil {
		return Request{}, err
	}

	request := NewRequest(dateInterval, parsedUserType)
	request.Granularity, err = ParseGranularity(granularity)
	if err != nil {
		return Request{}, err
	}

	return request, nil
}
