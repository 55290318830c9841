package benchmark

import (
	"errors"
	"fmt"
)

var (
	// ErrNoData is returned when discovery finds no measurement files.
	ErrNoData = errors.New("no data found")

	// ErrEmptyRange matches any *EmptyRangeError via errors.Is.
	ErrEmptyRange = errors.New("no observation within cutoff")
)

// FormatError reports a filename or content line with the wrong number of fields,
// or a filename with an empty algorithm, variant or tag. Line is 0 for filename errors.
type FormatError struct {
	Path  string
	Line  int
	Got   int
	Want  int
	Input string
	Empty bool
}

func (e *FormatError) Error() string {
	if e.Empty {
		return fmt.Sprintf("%s: malformed filename %q: empty algorithm, variant or tag", e.Path, e.Input)
	}
	if e.Line == 0 {
		return fmt.Sprintf("%s: malformed filename %q: got %d fields, want %d", e.Path, e.Input, e.Got, e.Want)
	}
	return fmt.Sprintf("%s:%d: malformed line %q: got %d fields, want %d", e.Path, e.Line, e.Input, e.Got, e.Want)
}

// ConversionError reports a field that is not the expected numeric type.
type ConversionError struct {
	Path  string
	Line  int
	Field string
	Value string
	Err   error
}

func (e *ConversionError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: invalid %s %q in filename: %v", e.Path, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("%s:%d: invalid %s %q: %v", e.Path, e.Line, e.Field, e.Value, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// EmptyRangeError is returned by RestrictedMax when every observation exceeds the cutoff.
type EmptyRangeError struct {
	Key    SeriesKey
	Cutoff float64
}

func (e *EmptyRangeError) Error() string {
	if e.Key == (SeriesKey{}) {
		return fmt.Sprintf("no observation within cutoff %g", e.Cutoff)
	}
	return fmt.Sprintf("%s: no observation within cutoff %g", e.Key, e.Cutoff)
}

func (e *EmptyRangeError) Is(target error) bool {
	return target == ErrEmptyRange
}

// ErrorKind names an error for logs and metric labels.
func ErrorKind(err error) string {
	var formatErr *FormatError
	var convErr *ConversionError
	switch {
	case errors.As(err, &formatErr):
		return "format"
	case errors.As(err, &convErr):
		return "conversion"
	case errors.Is(err, ErrEmptyRange):
		return "empty_range"
	default:
		return "io"
	}
}
