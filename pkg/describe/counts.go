package describe

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Count is the number of occurrences of a categorical value.
type Count struct {
	Value string  `json:"value" yaml:"value"`
	N     int     `json:"n" yaml:"n"`
	Share float64 `json:"share" yaml:"share"`
}

// IsMissing reports whether a categorical cell holds no value.
func IsMissing(v string) bool {
	v = strings.TrimSpace(v)

	return v == "" || strings.EqualFold(v, "nan") || strings.EqualFold(v, "na") || strings.EqualFold(v, "null")
}

// ValueCounts counts every non missing value, most frequent first. Ties are ordered by value.
// Share is the fraction of non missing values equal to Value.
func ValueCounts(values []string) []Count {
	counter := make(map[string]int)
	total := 0
	for _, v := range values {
		if IsMissing(v) {
			continue
		}
		counter[v]++
		total++
	}

	counts := make([]Count, 0, len(counter))
	for v, n := range counter {
		counts = append(counts, Count{Value: v, N: n, Share: float64(n) / float64(total)})
	}
	sortCounts(counts)

	return counts
}

func sortCounts(counts []Count) {
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].N != counts[j].N {
			return counts[i].N > counts[j].N
		}

		return counts[i].Value < counts[j].Value
	})
}

// Top returns the k most frequent counts. A negative or too large k returns every count.
func Top(counts []Count, k int) []Count {
	if k < 0 || k >= len(counts) {
		return counts
	}

	return counts[:k]
}

// ModeValues returns the values sharing the highest count.
func ModeValues(counts []Count) []string {
	if len(counts) == 0 {
		return nil
	}

	var modes []string
	for _, c := range counts {
		if c.N != counts[0].N {
			break
		}
		modes = append(modes, c.Value)
	}

	return modes
}

// NumericCounts counts the non NaN values of xs, formatted with the shortest representation.
func NumericCounts(xs []float64) []Count {
	values := make([]string, 0, len(xs))
	for _, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		values = append(values, formatFloat(x))
	}

	return ValueCounts(values)
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
