package pipeline

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/mrsyaban/bike-rental-analysis/dataset"
	"github.com/mrsyaban/bike-rental-analysis/domain/business/aggregate"
	"github.com/mrsyaban/bike-rental-analysis/domain/business/correlation"
	"github.com/mrsyaban/bike-rental-analysis/domain/entities/interval"
	"github.com/mrsyaban/bike-rental-analysis/domain/entities/rental"
	"github.com/mrsyaban/bike-rental-analysis/domain/entities/weather"
	"github.com/mrsyaban/bike-rental-analysis/pipeline/aggregator"
	"github.com/mrsyaban/bike-rental-analysis/pipeline/classifier"
	correlationengine "github.com/mrsyaban/bike-rental-analysis/pipeline/correlation"
	"github.com/mrsyaban/bike-rental-analysis/pipeline/daterange"
)

const pipelineType = "pipeline"

// Result every view of the dashboard for one Request
// + Request: the request after defaults and clamping were applied
// + Bounds: first and last date of the records the request ran on
// + Records, Categories: filtered rows and their weather category, Categories[i] belongs to Records[i]
// + Distributions: one entry per key and user type (casual, registered and total)
type Result struct {
	Request               Request                    `json:"request"`
	Bounds                interval.DateInterval      `json:"bounds"`
	Records               []rental.Record            `json:"-"`
	Categories            []weather.Category         `json:"-"`
	Totals                aggregate.Totals           `json:"totals"`
	Daily                 aggregate.WorkingDaySeries `json:"daily"`
	Selected              aggregate.UserSeries       `json:"selected"`
	WeatherAverages       []aggregate.AverageRow     `json:"weather_averages"`
	WeatherDistributions  []aggregate.Distribution   `json:"weather_distributions"`
	CategoryAverages      []aggregate.AverageRow     `json:"category_averages"`
	CategoryDistributions []aggregate.Distribution   `json:"category_distributions"`
	Correlation           correlation.Matrix         `json:"correlation"`
}

type options struct {
	classifier         *classifier.Classifier
	correlationColumns []string
}

// Option customizes a Run
type Option func(*options)

// WithClassifier replaces the default weather rules
func WithClassifier(weatherClassifier *classifier.Classifier) Option {
	return func(o *options) {
		if weatherClassifier != nil {
			o.classifier = weatherClassifier
		}
	}
}

// WithCorrelationColumns replaces the columns of the correlation matrix
func WithCorrelationColumns(columns []string) Option {
	return func(o *options) {
		if len(columns) > 0 {
			o.correlationColumns = columns
		}
	}
}

func getLogMessage(method string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[component: %s][method: %s][status: ERROR] %s: %s", pipelineType, method, message, err.Error())
	}
	return fmt.Sprintf("[component: %s][method: %s][status: OK] %s", pipelineType, method, message)
}

// Run filters the records of ds with req and computes every view over the filtered rows.
// ds is only read. A nil dataset behaves as an empty one
func Run(ds *dataset.Dataset, req Request, opts ...Option) *Result {
	cfg := options{
		classifier:         classifier.NewDefaultClassifier(),
		correlationColumns: correlationengine.DefaultColumns(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if req.UserType == "" {
		req.UserType = rental.AllUsers
	}
	if req.Granularity == "" {
		req.Granularity = Hourly
	}

	records := selectRecords(ds, req.Granularity)
	bounds, _ := daterange.Bounds(records)
	if req.Interval.IsZero() {
		req.Interval = bounds
	} else if req.Clamp {
		req.Interval = daterange.Clamp(req.Interval, records)
	}

	filtered := daterange.Filter(records, req.Interval)
	categories := cfg.classifier.ClassifyAll(filtered)
	daily := aggregator.SumByDateAndWorkingDay(filtered)

	result := &Result{
		Request:               req,
		Bounds:                bounds,
		Records:               filtered,
		Categories:            categories,
		Totals:                aggregator.Totals(filtered),
		Daily:                 daily,
		Selected:              aggregator.Series(daily, req.UserType),
		WeatherAverages:       aggregator.MeanByWeatherDescriptor(filtered),
		WeatherDistributions:  distributions(filtered, aggregator.WeatherDescriptorKey, nil),
		CategoryAverages:      aggregator.MeanByCategory(filtered, categories),
		CategoryDistributions: distributions(filtered, aggregator.CategoryKey(categories), aggregator.CategoryOrder()),
		Correlation:           correlationengine.Compute(filtered, cfg.correlationColumns),
	}

	log.Debug(getLogMessage("Run", fmt.Sprintf("interval %s kept %v of %v %s records", req.Interval, len(filtered), len(records), req.Granularity), nil))
	return result
}

// distributions returns the summaries of casual, registered and total for every key
func distributions(records []rental.Record, keyFn aggregator.KeyFunc, order []string) []aggregate.Distribution {
	summaries := make([]aggregate.Distribution, 0)
	for _, userType := range []rental.UserType{rental.CasualUsers, rental.RegisteredUsers, rental.AllUsers} {
		summaries = append(summaries, aggregator.Distributions(records, keyFn, order, userType)...)
	}
	return summaries
}

func selectRecords(ds *dataset.Dataset, granularity Granularity) []rental.Record {
	if ds == nil {
		return nil
	}
	if granularity == Daily {
		return ds.Daily
	}
	return ds.Hourly
}

// Bounds returns the first and last date of the records of granularity. ok is false when there are none
func Bounds(ds *dataset.Dataset, granularity Granularity) (interval.DateInterval, bool) {
	return daterange.Bounds(selectRecords(ds, granularity))
}
