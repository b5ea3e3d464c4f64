package series

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrDataShape is matched by every *DataShapeError via errors.Is.
var ErrDataShape = errors.New("malformed daily record")

var errMissingDate = errors.New("missing date")

// DataShapeError reports a daily record that cannot be averaged.
type DataShapeError struct {
	Index int
	Date  time.Time
	Field string // "Date" or "NewConfirmed"
	Value float64
	Err   error
}

func (e *DataShapeError) Error() string {
	date := "unknown date"
	if !e.Date.IsZero() {
		date = e.Date.Format(DateLayout)
	}
	msg := fmt.Sprintf("record %d (%s): %s", e.Index, date, e.Field)
	switch {
	case e.Err != nil:
		msg += ": " + e.Err.Error()
	case math.IsNaN(e.Value):
		msg += " is missing or not a number"
	default:
		msg += fmt.Sprintf(" has invalid value %v", e.Value)
	}
	return msg
}

func (e *DataShapeError) Unwrap() error {
	return e.Err
}

func (e *DataShapeError) Is(target error) bool {
	return target == ErrDataShape
}

// NewDataShapeError creates a DataShapeError for the record at index.
func NewDataShapeError(index int, date time.Time, field string, value float64, err error) *DataShapeError {
	return &DataShapeError{
		Index: index,
		Date:  date,
		Field: field,
		Value: value,
		Err:   err,
	}
}
