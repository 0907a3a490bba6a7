package dataset

import "errors"

var (
	ErrMissingColumn           = errors.New("missing required column")
	ErrInvalidDate             = errors.New("invalid date")
	ErrInvalidNumericValue     = errors.New("invalid numeric value")
	ErrInvalidWorkingDay       = errors.New("invalid working day flag")
	ErrInvalidWeatherSituation = errors.New("invalid weather situation")
	ErrEmptyDataset            = errors.New("empty dataset")
	ErrReadingSource           = errors.New("error reading dataset source")
)
