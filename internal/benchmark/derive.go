package benchmark

import (
	"errors"
	"math"
	"sort"
)

// RestrictedMax returns the size of the slowest observation whose time is
// within cutoff. It is not the largest such size: when runtimes are
// noisy the two can differ. Ties in time go to the earliest observation.
func RestrictedMax(series Series, cutoff float64) (int64, error) {
	i, err := RestrictedMaxIndex(series, cutoff)
	if err != nil {
		return 0, err
	}
	return series[i].Size, nil
}

// RestrictedMaxIndex returns the index of the observation RestrictedMax
// selects.
func RestrictedMaxIndex(series Series, cutoff float64) (int, error) {
	best := -1
	for i, o := range series {
		if math.IsNaN(o.Time) || o.Time > cutoff {
			continue
		}
		if best < 0 || o.Time > series[best].Time {
			best = i
		}
	}
	if best < 0 {
		return -1, &EmptyRangeError{Cutoff: cutoff}
	}
	return best, nil
}

// Ranking is the derived scalar of one series.
type Ranking struct {
	Key    SeriesKey `json:"key"`
	Cutoff float64   `json:"cutoff"`
	Size   int64     `json:"restricted_max"`
	Err    error     `json:"-"`
}

// OK reports whether the restricted maximum was derived.
func (r Ranking) OK() bool {
	return r.Err == nil
}

// Rank derives the restricted maximum of every series and orders them
// ascending by it, ties broken by key. Series without any observation
// within their cutoff carry an *EmptyRangeError and sort last, by key.
func Rank(d *Dataset, opts Options) ([]Ranking, error) {
	rankings := make([]Ranking, 0, d.Len())
	for _, key := range d.Keys() {
		cutoff, err := d.CutoffFor(key, opts)
		if err != nil {
			return nil, err
		}

		r := Ranking{Key: key, Cutoff: cutoff}
		size, err := RestrictedMax(d.Series[key].Series, cutoff)
		if err != nil {
			var rangeErr *EmptyRangeError
			if !errors.As(err, &rangeErr) {
				return nil, err
			}
			r.Err = &EmptyRangeError{Key: key, Cutoff: cutoff}
		} else {
			r.Size = size
		}
		rankings = append(rankings, r)
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		a, b := rankings[i], rankings[j]
		if a.OK() != b.OK() {
			return a.OK()
		}
		if a.OK() && a.Size != b.Size {
			return a.Size < b.Size
		}
		return a.Key.Less(b.Key)
	})
	return rankings, nil
}
