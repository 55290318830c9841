package benchmark

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var growth = Series{
	{Size: 10, Time: 0.5},
	{Size: 20, Time: 0.9},
	{Size: 30, Time: 1.5},
}

func TestRestrictedMax(t *testing.T) {
	tests := []struct {
		name    string
		series  Series
		cutoff  float64
		want    int64
		wantErr bool
	}{
		{name: "some within budget", series: growth, cutoff: 1.0, want: 20},
		{name: "all within budget", series: growth, cutoff: 10, want: 30},
		{name: "cutoff is inclusive", series: growth, cutoff: 0.9, want: 20},
		{name: "none within budget", series: growth, cutoff: 0.3, wantErr: true},
		{name: "empty series", series: nil, cutoff: 1, wantErr: true},
		{
			// Slowest eligible observation wins, not the largest size.
			name: "noisy runtimes",
			series: Series{
				{Size: 10, Time: 0.2},
				{Size: 40, Time: 0.6},
				{Size: 50, Time: 0.4},
				{Size: 60, Time: 2.0},
			},
			cutoff: 1,
			want:   40,
		},
		{
			name: "ties go to first occurrence",
			series: Series{
				{Size: 5, Time: 0.1},
				{Size: 7, Time: 0.8},
				{Size: 3, Time: 0.8},
			},
			cutoff: 1,
			want:   7,
		},
		{
			name: "NaN times are ignored",
			series: Series{
				{Size: 5, Time: math.NaN()},
				{Size: 7, Time: 0.3},
			},
			cutoff: 1,
			want:   7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RestrictedMax(tt.series, tt.cutoff)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrEmptyRange))
				var rangeErr *EmptyRangeError
				require.ErrorAs(t, err, &rangeErr)
				assert.Equal(t, tt.cutoff, rangeErr.Cutoff)
				assert.Zero(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			again, err := RestrictedMax(tt.series, tt.cutoff)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestRestrictedMax_Property(t *testing.T) {
	series := Series{
		{Size: 1, Time: 0.01}, {Size: 2, Time: 0.30}, {Size: 3, Time: 0.05},
		{Size: 4, Time: 0.70}, {Size: 5, Time: 0.69}, {Size: 6, Time: 1.10},
		{Size: 7, Time: 0.70}, {Size: 8, Time: 3.00},
	}

	for _, cutoff := range []float64{0.01, 0.05, 0.3, 0.5, 0.7, 1, 2, 5} {
		size, err := RestrictedMax(series, cutoff)
		require.NoError(t, err)

		idx := -1
		for i, o := range series {
			if o.Size == size {
				idx = i
			}
		}
		require.GreaterOrEqual(t, idx, 0)
		chosen := series[idx]
		assert.LessOrEqual(t, chosen.Time, cutoff)
		for _, o := range series {
			if o.Time <= cutoff {
				assert.LessOrEqual(t, o.Time, chosen.Time, "cutoff %v", cutoff)
			}
		}
	}
}

func TestRank(t *testing.T) {
	ds := NewDataset()
	ds.Add(&Measurement{Key: SeriesKey{"A", "O2"}, Cutoff: 1, Series: Series{{Size: 20, Time: 0.5}}})
	ds.Add(&Measurement{Key: SeriesKey{"C", "O2"}, Cutoff: 1, Series: Series{{Size: 20, Time: 0.5}}})
	ds.Add(&Measurement{Key: SeriesKey{"B", "O2"}, Cutoff: 1, Series: Series{{Size: 15, Time: 0.5}}})

	rankings, err := Rank(ds, Options{Mode: CutoffPerSeries})
	require.NoError(t, err)
	require.Len(t, rankings, 3)

	assert.Equal(t, "B", rankings[0].Key.Algorithm)
	assert.Equal(t, int64(15), rankings[0].Size)
	assert.Equal(t, "A", rankings[1].Key.Algorithm)
	assert.Equal(t, "C", rankings[2].Key.Algorithm)
	for _, r := range rankings {
		assert.True(t, r.OK())
	}
}

func TestRank_TiesAcrossVariants(t *testing.T) {
	ds := NewDataset()
	ds.Add(&Measurement{Key: SeriesKey{"fft", "O3"}, Cutoff: 1, Series: Series{{Size: 8, Time: 0.5}}})
	ds.Add(&Measurement{Key: SeriesKey{"fft", "O0"}, Cutoff: 1, Series: Series{{Size: 8, Time: 0.5}}})

	rankings, err := Rank(ds, Options{})
	require.NoError(t, err)
	assert.Equal(t, "O0", rankings[0].Key.Variant)
	assert.Equal(t, "O3", rankings[1].Key.Variant)
}

func TestRank_FailedSeriesSortLast(t *testing.T) {
	ds := NewDataset()
	ds.Add(&Measurement{Key: SeriesKey{"slow", "O0"}, Cutoff: 0.1, Series: growth})
	ds.Add(&Measurement{Key: SeriesKey{"fast", "O0"}, Cutoff: 1, Series: growth})
	ds.Add(&Measurement{Key: SeriesKey{"alsoslow", "O0"}, Cutoff: 0.2, Series: growth})

	rankings, err := Rank(ds, Options{Mode: CutoffPerSeries})
	require.NoError(t, err)
	require.Len(t, rankings, 3)

	assert.Equal(t, "fast", rankings[0].Key.Algorithm)
	assert.Equal(t, int64(20), rankings[0].Size)

	assert.Equal(t, "alsoslow", rankings[1].Key.Algorithm)
	assert.Equal(t, "slow", rankings[2].Key.Algorithm)
	for _, r := range rankings[1:] {
		assert.False(t, r.OK())
		var rangeErr *EmptyRangeError
		require.ErrorAs(t, r.Err, &rangeErr)
		assert.Equal(t, r.Key, rangeErr.Key)
	}
}

func TestRank_CutoffModes(t *testing.T) {
	newDataset := func() *Dataset {
		ds := NewDataset()
		// Added in discovery order: the last file sets the shared cutoff.
		ds.Add(&Measurement{Key: SeriesKey{"quick", "O2"}, Cutoff: 1.0, Series: growth})
		ds.Add(&Measurement{Key: SeriesKey{"heap", "O2"}, Cutoff: 2.0, Series: growth})
		return ds
	}

	t.Run("Per series", func(t *testing.T) {
		rankings, err := Rank(newDataset(), Options{Mode: CutoffPerSeries})
		require.NoError(t, err)
		assert.Equal(t, "quick", rankings[0].Key.Algorithm)
		assert.Equal(t, int64(20), rankings[0].Size)
		assert.Equal(t, 1.0, rankings[0].Cutoff)
		assert.Equal(t, "heap", rankings[1].Key.Algorithm)
		assert.Equal(t, int64(30), rankings[1].Size)
	})

	t.Run("Shared", func(t *testing.T) {
		rankings, err := Rank(newDataset(), Options{Mode: CutoffShared})
		require.NoError(t, err)
		for _, r := range rankings {
			assert.Equal(t, 2.0, r.Cutoff)
			assert.Equal(t, int64(30), r.Size)
		}
		assert.Equal(t, "heap", rankings[0].Key.Algorithm)
	})

	t.Run("Override", func(t *testing.T) {
		cutoff := 0.6
		rankings, err := Rank(newDataset(), Options{Mode: CutoffShared, Override: &cutoff})
		require.NoError(t, err)
		for _, r := range rankings {
			assert.Equal(t, 0.6, r.Cutoff)
			assert.Equal(t, int64(10), r.Size)
		}
	})
}

func TestRestrictedMaxIndex(t *testing.T) {
	i, err := RestrictedMaxIndex(growth, 1.0)
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	i, err = RestrictedMaxIndex(growth, 0.3)
	assert.ErrorIs(t, err, ErrEmptyRange)
	assert.Equal(t, -1, i)
}
