package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyFile is returned when an upload has no header row.
	ErrEmptyFile = errors.New("no header row")
	// ErrNoFile is returned when a session has nothing uploaded yet.
	ErrNoFile = errors.New("no file uploaded")
	// ErrFilterNotOffered is returned for a selection on a column that was
	// not offered as a filter.
	ErrFilterNotOffered = errors.New("filter column not offered")
	// ErrInvalidRange is returned for a date range whose start is after its end
	// or whose bounds cannot be parsed.
	ErrInvalidRange = errors.New("invalid date range")
	// ErrUnsupportedFormat is returned for legacy binary .xls workbooks.
	ErrUnsupportedFormat = errors.New("legacy .xls workbooks are not supported; save as .xlsx or .csv")
)

// ReadError reports an upload that could not be parsed as a table.
type ReadError struct {
	File string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.File, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }
