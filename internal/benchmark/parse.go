package benchmark

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// FieldSeparator splits the columns of a measurement line.
	FieldSeparator = "::"

	filenameFields = 4
	lineFields     = 3
)

// ParseFilename decodes <algorithm>.<variant>.<cutoff>.<tag> from the base
// name of path. The cutoff is everything between the second and the last
// dot so decimal budgets like "quicksort.opt2.2.5.dat" decode to 2.5.
// Algorithm, variant and tag must not be empty. The returned measurement
// has no series.
func ParseFilename(path string) (*Measurement, error) {
	base := filepath.Base(path)
	parts := strings.Split(base, ".")
	if len(parts) < filenameFields {
		return nil, &FormatError{Path: path, Got: len(parts), Want: filenameFields, Input: base}
	}
	if parts[0] == "" || parts[1] == "" || parts[len(parts)-1] == "" {
		return nil, &FormatError{Path: path, Got: len(parts), Want: filenameFields, Input: base, Empty: true}
	}

	cutText := strings.Join(parts[2:len(parts)-1], ".")
	cutoff, err := strconv.ParseFloat(cutText, 64)
	if err != nil {
		return nil, &ConversionError{Path: path, Field: "cutoff", Value: cutText, Err: err}
	}

	return &Measurement{
		Key:    SeriesKey{Algorithm: parts[0], Variant: parts[1]},
		Cutoff: cutoff,
		Tag:    parts[len(parts)-1],
		Path:   path,
	}, nil
}

// ParseSeries reads "<size> :: <result> :: <time>" lines. Blank lines are
// skipped; path is only used to annotate errors.
func ParseSeries(r io.Reader, path string) (Series, error) {
	var series Series
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, FieldSeparator)
		if len(fields) != lineFields {
			return nil, &FormatError{Path: path, Line: lineNo, Got: len(fields), Want: lineFields, Input: line}
		}
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}

		size, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return nil, &ConversionError{Path: path, Line: lineNo, Field: "size", Value: fields[0], Err: err}
		}
		elapsed, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, &ConversionError{Path: path, Line: lineNo, Field: "time", Value: fields[2], Err: err}
		}

		series = append(series, Observation{Size: size, Result: fields[1], Time: elapsed})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return series, nil
}

// LoadFile decodes the filename of path and parses its content.
// The file is closed before LoadFile returns.
func LoadFile(path string) (*Measurement, error) {
	m, err := ParseFilename(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	series, err := ParseSeries(f, path)
	if err != nil {
		return nil, err
	}
	m.Series = series
	return m, nil
}
