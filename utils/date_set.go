package utils

import "time"

const dateKeyLayout = "2006-01-02"

// DateSet set of calendar dates, the time of day is ignored
type DateSet map[string]bool

func (ds DateSet) Add(element time.Time) {
	ds[element.Format(dateKeyLayout)] = true
}
