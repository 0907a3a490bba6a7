package dataset

import (
	"github.com/mrsyaban/bike-rental-analysis/domain/entities/rental"
	"github.com/mrsyaban/bike-rental-analysis/utils"
)

// Source identifies the files a Dataset was loaded from
// + HourPath, DayPath: paths of the CSV files
// + Hash: sha256 of the content of both files
type Source struct {
	HourPath string `json:"hour_path"`
	DayPath  string `json:"day_path"`
	Hash     string `json:"hash"`
}

// Dataset read-only snapshot of the hourly and daily records. Nothing in the
// pipeline modifies it after it is loaded
type Dataset struct {
	Source Source          `json:"source"`
	Hourly []rental.Record `json:"hourly"`
	Daily  []rental.Record `json:"daily"`
}

func NewDataset(source Source, hourly []rental.Record, daily []rental.Record) *Dataset {
	return &Dataset{
		Source: source,
		Hourly: hourly,
		Daily:  daily,
	}
}

// Days returns the amount of distinct dates of the hourly records
func (d *Dataset) Days() int {
	dateSet := make(utils.DateSet)
	for idx := range d.Hourly {
		dateSet.Add(d.Hourly[idx].Day())
	}
	return len(dateSet)
}
