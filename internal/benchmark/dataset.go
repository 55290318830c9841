package benchmark

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// CutoffMode selects which cutoff governs a series during derivation.
type CutoffMode string

const (
	// CutoffPerSeries uses the cutoff decoded from each series' own filename.
	CutoffPerSeries CutoffMode = "per-series"
	// CutoffShared uses the cutoff of the last accepted file for every series.
	CutoffShared CutoffMode = "shared"
)

// ParseCutoffMode validates a cutoff mode name.
func ParseCutoffMode(s string) (CutoffMode, error) {
	switch m := CutoffMode(strings.ToLower(strings.TrimSpace(s))); m {
	case CutoffPerSeries, CutoffShared:
		return m, nil
	case "":
		return CutoffPerSeries, nil
	default:
		return "", fmt.Errorf("unknown cutoff mode %q (want %q or %q)", s, CutoffPerSeries, CutoffShared)
	}
}

// Options control how cutoffs are resolved.
type Options struct {
	Mode CutoffMode
	// Override, when non-nil, replaces every recorded cutoff.
	Override *float64
}

// Dataset holds all accepted measurements of one run, keyed by series.
type Dataset struct {
	Series map[SeriesKey]*Measurement

	variants     map[string]struct{}
	sharedCutoff float64
	hasCutoff    bool
}

// NewDataset returns an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{
		Series:   make(map[SeriesKey]*Measurement),
		variants: make(map[string]struct{}),
	}
}

// Add stores m, replacing any measurement with the same key, and makes
// its cutoff the shared one.
func (d *Dataset) Add(m *Measurement) {
	if prev, ok := d.Series[m.Key]; ok {
		slog.Warn("Measurement overwrites an earlier file with the same key",
			"series", m.Key.String(), "previous", prev.Path, "path", m.Path)
	}
	d.Series[m.Key] = m
	d.variants[m.Key.Variant] = struct{}{}
	d.sharedCutoff = m.Cutoff
	d.hasCutoff = true
}

// Len returns the number of series.
func (d *Dataset) Len() int {
	return len(d.Series)
}

// Keys returns every series key in lexicographic order.
func (d *Dataset) Keys() []SeriesKey {
	keys := make([]SeriesKey, 0, len(d.Series))
	for k := range d.Series {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

// Variants returns the distinct variants, sorted.
func (d *Dataset) Variants() []string {
	vs := make([]string, 0, len(d.variants))
	for v := range d.variants {
		vs = append(vs, v)
	}
	sort.Strings(vs)
	return vs
}

// SharedCutoff returns the cutoff of the last accepted file. ok is false
// for an empty dataset.
func (d *Dataset) SharedCutoff() (cutoff float64, ok bool) {
	return d.sharedCutoff, d.hasCutoff
}

// CutoffFor resolves the cutoff that governs key under opts.
func (d *Dataset) CutoffFor(key SeriesKey, opts Options) (float64, error) {
	if opts.Override != nil {
		return *opts.Override, nil
	}

	m, ok := d.Series[key]
	if !ok {
		return 0, fmt.Errorf("unknown series %s", key)
	}
	if opts.Mode == CutoffShared {
		return d.sharedCutoff, nil
	}
	return m.Cutoff, nil
}

// Curve is one algorithm's series within a variant.
type Curve struct {
	Algorithm string
	Series    Series
}

// ByVariant groups the series by variant, each group ordered by algorithm.
func (d *Dataset) ByVariant() map[string][]Curve {
	groups := make(map[string][]Curve, len(d.variants))
	for _, k := range d.Keys() {
		groups[k.Variant] = append(groups[k.Variant], Curve{Algorithm: k.Algorithm, Series: d.Series[k].Series})
	}
	return groups
}
