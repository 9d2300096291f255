package describe_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-describe/pkg/describe"
)

func TestValueCounts(t *testing.T) {
	t.Parallel()

	counts := describe.ValueCounts([]string{"b", "a", "c", "a", "", "b", "NaN", "a"})

	require.Len(t, counts, 3)
	assert.Equal(t, describe.Count{Value: "a", N: 3, Share: 0.5}, counts[0])
	assert.Equal(t, "b", counts[1].Value)
	assert.Equal(t, 2, counts[1].N)
	assert.Equal(t, "c", counts[2].Value)

	assert.Equal(t, []string{"a"}, describe.ModeValues(counts))
	assert.Len(t, describe.Top(counts, 2), 2)
	assert.Len(t, describe.Top(counts, 10), 3)
	assert.Len(t, describe.Top(counts, -1), 3)
}

func TestValueCountsTies(t *testing.T) {
	t.Parallel()

	counts := describe.ValueCounts([]string{"z", "y", "x", "y", "z"})
	assert.Equal(t, []string{"y", "z"}, describe.ModeValues(counts))
	assert.Nil(t, describe.ModeValues(nil))
}

func TestNumericCounts(t *testing.T) {
	t.Parallel()

	counts := describe.NumericCounts([]float64{2, 1.5, 2, math.NaN()})
	require.Len(t, counts, 2)
	assert.Equal(t, "2", counts[0].Value)
	assert.Equal(t, "1.5", counts[1].Value)
}

func TestCrosstab(t *testing.T) {
	t.Parallel()

	products := []string{"TM195", "TM195", "TM498", "TM798", "TM195", "TM798"}
	genders := []string{"Male", "Female", "Male", "Male", "Male", ""}

	tcs := map[string]struct {
		norm describe.Normalize
		want [][]float64
	}{
		"counts": {
			norm: describe.NormalizeNone,
			want: [][]float64{{1, 2}, {0, 1}, {0, 1}},
		},
		"index": {
			norm: describe.NormalizeIndex,
			want: [][]float64{{1.0 / 3, 2.0 / 3}, {0, 1}, {0, 1}},
		},
		"columns": {
			norm: describe.NormalizeColumns,
			want: [][]float64{{1, 0.5}, {0, 0.25}, {0, 0.25}},
		},
		"all": {
			norm: describe.NormalizeAll,
			want: [][]float64{{0.2, 0.4}, {0, 0.2}, {0, 0.2}},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ct, err := describe.NewCrosstab(products, genders, tc.norm)
			require.NoError(t, err)
			assert.Equal(t, []string{"TM195", "TM498", "TM798"}, ct.Rows)
			assert.Equal(t, []string{"Female", "Male"}, ct.Cols)
			for i := range tc.want {
				assert.InDeltaSlice(t, tc.want[i], ct.Cells[i], 1e-12, "row %s", ct.Rows[i])
			}
		})
	}
}

func TestCrosstabLookup(t *testing.T) {
	t.Parallel()

	ct, err := describe.NewCrosstab([]string{"a", "a", "b"}, []string{"x", "y", "y"}, describe.NormalizeNone)
	require.NoError(t, err)

	v, ok := ct.At("a", "y")
	assert.True(t, ok)
	assert.Equal(t, 1.0, v)
	_, ok = ct.At("c", "y")
	assert.False(t, ok)
	_, ok = ct.At("a", "z")
	assert.False(t, ok)

	_, err = describe.NewCrosstab([]string{"a"}, nil, describe.NormalizeNone)
	assert.ErrorIs(t, err, describe.ErrLengthMismatch)
}

func TestParseNormalize(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]describe.Normalize{
		"":        describe.NormalizeNone,
		"none":    describe.NormalizeNone,
		"Columns": describe.NormalizeColumns,
		"index":   describe.NormalizeIndex,
		"all":     describe.NormalizeAll,
	} {
		got, err := describe.ParseNormalize(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := describe.ParseNormalize("rows")
	assert.Error(t, err)
}
