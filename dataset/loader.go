package dataset

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	log "github.com/sirupsen/logrus"

	"github.com/mrsyaban/bike-rental-analysis/domain/entities/rental"
	"github.com/mrsyaban/bike-rental-analysis/domain/entities/weather"
	"github.com/mrsyaban/bike-rental-analysis/utils"
)

const (
	loaderType = "dataset-loader"
	dateLayout = "2006-01-02"

	dateColumn       = "dteday"
	workingDayColumn = "workingday"
	weatherColumn    = "weathersit"
	tempColumn       = "temp"
	atempColumn      = "atemp"
	humColumn        = "hum"
	windSpeedColumn  = "windspeed"
	casualColumn     = "casual"
	registeredColumn = "registered"
	countColumn      = "cnt"
)

var requiredColumns = []string{
	dateColumn,
	workingDayColumn,
	weatherColumn,
	tempColumn,
	atempColumn,
	humColumn,
	windSpeedColumn,
	casualColumn,
	registeredColumn,
	countColumn,
}

// optionalColumns maps a column that may be absent (day.csv has no hr) to its record setter
var optionalColumns = map[string]func(record *rental.Record, value int){
	"instant": func(record *rental.Record, value int) { record.Instant = value },
	"season":  func(record *rental.Record, value int) { record.Season = value },
	"yr":      func(record *rental.Record, value int) { record.Year = value },
	"mnth":    func(record *rental.Record, value int) { record.Month = value },
	"hr":      func(record *rental.Record, value int) { record.Hour = value },
	"holiday": func(record *rental.Record, value int) { record.Holiday = value == 1 },
	"weekday": func(record *rental.Record, value int) { record.Weekday = value },
}

// Loader reads the hourly and daily CSV files. When a cache is set, files whose
// content was already parsed are not parsed again
type Loader struct {
	cache Cache
}

func NewLoader(cache Cache) *Loader {
	return &Loader{
		cache: cache,
	}
}

func getLogMessage(method string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[component: %s][method: %s][status: ERROR] %s: %s", loaderType, method, message, err.Error())
	}
	return fmt.Sprintf("[component: %s][method: %s][status: OK] %s", loaderType, method, message)
}

// Load returns the dataset stored in hourPath and dayPath. The cache key is built
// from both paths and the hash of their content
func (l *Loader) Load(ctx context.Context, hourPath string, dayPath string) (*Dataset, error) {
	hourContent, err := os.ReadFile(hourPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrReadingSource, hourPath, err)
	}

	dayContent, err := os.ReadFile(dayPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrReadingSource, dayPath, err)
	}

	source := Source{
		HourPath: hourPath,
		DayPath:  dayPath,
		Hash:     contentHash(hourContent, dayContent),
	}
	cacheKey := CacheKey(source)

	if l.cache != nil {
		cached, found, err := l.cache.Get(ctx, cacheKey)
		if err != nil {
			log.Warn(getLogMessage("Load", "cache lookup failed, parsing files", err))
		}
		if found {
			log.Debug(getLogMessage("Load", fmt.Sprintf("cache hit for %s", cacheKey), nil))
			return cached, nil
		}
	}

	hourly, err := ParseRecords(bytes.NewReader(hourContent))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", hourPath, err)
	}

	daily, err := ParseRecords(bytes.NewReader(dayContent))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dayPath, err)
	}

	loaded := NewDataset(source, hourly, daily)
	log.Info(getLogMessage("Load", fmt.Sprintf("loaded %v hourly and %v daily records over %v days", len(hourly), len(daily), loaded.Days()), nil))

	if l.cache != nil {
		if err := l.cache.Set(ctx, cacheKey, loaded); err != nil {
			log.Warn(getLogMessage("Load", "error saving dataset in cache", err))
		}
	}

	return loaded, nil
}

// ParseRecords reads a CSV with header. Every required column must be present and every
// value must be valid, otherwise an error describing the first bad value is returned
func ParseRecords(reader io.Reader) ([]rental.Record, error) {
	df := dataframe.ReadCSV(reader,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		if strings.Contains(strings.ToLower(df.Err.Error()), "empty") {
			return nil, fmt.Errorf("%w: %s", ErrEmptyDataset, df.Err)
		}
		return nil, fmt.Errorf("%w: %s", ErrReadingSource, df.Err)
	}

	names := df.Names()
	for _, column := range requiredColumns {
		if !utils.ContainsString(column, names) {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, column)
		}
	}

	if df.Nrow() == 0 {
		return nil, ErrEmptyDataset
	}

	columns := make(map[string][]string, len(names))
	for _, name := range names {
		columns[name] = df.Col(name).Records()
	}

	records := make([]rental.Record, df.Nrow())
	for row := range records {
		record, err := parseRecord(columns, row)
		if err != nil {
			// header is line 1
			return nil, fmt.Errorf("line %d: %w", row+2, err)
		}
		records[row] = record
	}

	return records, nil
}

func parseRecord(columns map[string][]string, row int) (rental.Record, error) {
	var record rental.Record

	date, err := time.Parse(dateLayout, strings.TrimSpace(columns[dateColumn][row]))
	if err != nil {
		return record, fmt.Errorf("%w: %s", ErrInvalidDate, columns[dateColumn][row])
	}
	record.Date = date

	workingDay, err := parseInt(columns, workingDayColumn, row)
	if err != nil {
		return record, err
	}
	if workingDay != 0 && workingDay != 1 {
		return record, fmt.Errorf("%w: %v", ErrInvalidWorkingDay, workingDay)
	}
	record.WorkingDay = workingDay == 1

	record.WeatherSituation, err = parseInt(columns, weatherColumn, row)
	if err != nil {
		return record, err
	}
	if !weather.IsValidSituation(record.WeatherSituation) {
		return record, fmt.Errorf("%w: %v", ErrInvalidWeatherSituation, record.WeatherSituation)
	}

	floatTargets := []struct {
		column string
		target *float64
	}{
		{tempColumn, &record.Temperature},
		{atempColumn, &record.FeelsLike},
		{humColumn, &record.Humidity},
		{windSpeedColumn, &record.WindSpeed},
	}
	for _, floatTarget := range floatTargets {
		*floatTarget.target, err = parseFloat(columns, floatTarget.column, row)
		if err != nil {
			return record, err
		}
	}

	countTargets := []struct {
		column string
		target *int
	}{
		{casualColumn, &record.Casual},
		{registeredColumn, &record.Registered},
		{countColumn, &record.Total},
	}
	for _, countTarget := range countTargets {
		*countTarget.target, err = parseInt(columns, countTarget.column, row)
		if err != nil {
			return record, err
		}
		if *countTarget.target < 0 {
			return record, fmt.Errorf("%w: column %s is negative: %v", ErrInvalidNumericValue, countTarget.column, *countTarget.target)
		}
	}

	for column, setter := range optionalColumns {
		if _, ok := columns[column]; !ok {
			continue
		}
		value, err := parseInt(columns, column, row)
		if err != nil {
			return record, err
		}
		setter(&record, value)
	}

	return record, nil
}

func parseInt(columns map[string][]string, column string, row int) (int, error) {
	raw := strings.TrimSpace(columns[column][row])
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: column %s: %q", ErrInvalidNumericValue, column, raw)
	}
	return value, nil
}

func parseFloat(columns map[string][]string, column string, row int) (float64, error) {
	raw := strings.TrimSpace(columns[column][row])
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: column %s: %q", ErrInvalidNumericValue, column, raw)
	}
	return value, nil
}

func contentHash(contents ...[]byte) string {
	hash := sha256.New()
	for _, content := range contents {
		hash.Write(content)
	}
	return hex.EncodeToString(hash.Sum(nil))
}
