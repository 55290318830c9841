package benchmark

import "fmt"

// Observation is a single timed run of an algorithm at one input size.
type Observation struct {
	Size   int64   `json:"size"`
	Result string  `json:"result,omitempty"` // Output of the benchmarked program, not interpreted
	Time   float64 `json:"time"`             // Elapsed seconds
}

// Series is the ordered list of observations for one algorithm/variant.
// Order follows the measurement file and is not sorted by size.
type Series []Observation

// SeriesKey identifies a series by algorithm and optimization variant.
type SeriesKey struct {
	Algorithm string `json:"algorithm"`
	Variant   string `json:"variant"`
}

func (k SeriesKey) String() string {
	return fmt.Sprintf("%s[%s]", k.Algorithm, k.Variant)
}

// Less orders keys lexicographically by algorithm, then variant.
func (k SeriesKey) Less(o SeriesKey) bool {
	if k.Algorithm != o.Algorithm {
		return k.Algorithm < o.Algorithm
	}
	return k.Variant < o.Variant
}

// Measurement is the decoded content of one measurement file.
type Measurement struct {
	Key    SeriesKey `json:"key"`
	Cutoff float64   `json:"cutoff"` // Time budget in seconds, from the filename
	Tag    string    `json:"tag"`
	Path   string    `json:"path"`
	Series Series    `json:"series"`
}

// FileResult is the outcome of loading a single measurement file.
// Exactly one of Measurement and Err is set.
type FileResult struct {
	Path        string
	Measurement *Measurement
	Err         error
}
