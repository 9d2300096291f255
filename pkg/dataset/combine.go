package dataset

import (
	"math"
	"sort"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/askiada/go-describe/pkg/describe"
)

var (
	ErrUnknownAgg  = errors.New("unknown aggregation")
	ErrUnknownJoin = errors.New("unknown join")
)

// Agg aggregates the values falling in one pivot table cell.
type Agg string

const (
	AggMean   Agg = "mean"
	AggMedian Agg = "median"
	AggSum    Agg = "sum"
	// AggCount counts the non missing values.
	AggCount Agg = "count"
	// AggLen counts the rows, missing values included.
	AggLen Agg = "len"
)

// ParseAgg returns the aggregation matching name.
func ParseAgg(name string) (Agg, error) {
	switch a := Agg(strings.ToLower(strings.TrimSpace(name))); a {
	case AggMean, AggMedian, AggSum, AggCount, AggLen:
		return a, nil
	}

	return "", errors.Wrapf(ErrUnknownAgg, "%q", name)
}

func (a Agg) apply(xs []float64) float64 {
	switch a {
	case AggMean:
		return orNaN(describe.Mean(xs))
	case AggMedian:
		return orNaN(describe.Median(xs))
	case AggSum:
		return floats.Sum(describe.Clean(xs))
	case AggCount:
		return float64(len(describe.Clean(xs)))
	case AggLen:
		return float64(len(xs))
	}

	return math.NaN()
}

func orNaN(v float64, err error) float64 {
	if err != nil {
		return math.NaN()
	}

	return v
}

// Pivot is a spreadsheet style pivot table. Rows[i] holds the labels of the index columns for Values[i].
// Cells without any row are NaN.
type Pivot struct {
	Index   []string    `json:"index" yaml:"index"`
	Rows    [][]string  `json:"rows" yaml:"rows"`
	Columns []string    `json:"columns" yaml:"columns"`
	Values  [][]float64 `json:"values" yaml:"values"`
}

// Pivot aggregates the numeric column value for every combination of the index columns (rows) and of
// the columns column. Rows with a missing label are dropped. Rows and columns are sorted by label.
func (ds *Dataset) Pivot(index []string, columns, value string, agg Agg) (*Pivot, error) {
	if len(index) == 0 {
		return nil, errors.New("pivot needs at least one index column")
	}
	if _, err := ParseAgg(string(agg)); err != nil {
		return nil, err
	}

	keys := append(append([]string{}, index...), columns)
	for _, name := range keys {
		if _, err := ds.column(name); err != nil {
			return nil, err
		}
	}
	valueCol, err := ds.column(value)
	if err != nil {
		return nil, err
	}
	if !isNumeric(valueCol) {
		return nil, errors.Wrapf(ErrNotNumeric, "%q is %s", value, valueCol.Type())
	}

	groups := ds.df.GroupBy(keys...)
	if groups.Err != nil {
		return nil, errors.Wrapf(groups.Err, "unable to group by %s", strings.Join(keys, ", "))
	}

	rowLabels := make(map[string][]string)
	cells := make(map[string]map[string]float64)
	colSet := make(map[string]struct{})
	for _, group := range groups.GetGroups() {
		groupKeys, ok := groupLabels(group, keys)
		if !ok {
			continue
		}
		row, col := groupKeys[:len(index)], groupKeys[len(index)]
		rowKey := strings.Join(row, "\x1f")
		if _, ok := cells[rowKey]; !ok {
			rowLabels[rowKey] = row
			cells[rowKey] = make(map[string]float64)
		}
		cells[rowKey][col] = agg.apply(group.Col(value).Float())
		colSet[col] = struct{}{}
	}

	pivot := &Pivot{Index: index, Rows: [][]string{}, Columns: []string{}, Values: [][]float64{}}
	for col := range colSet {
		pivot.Columns = append(pivot.Columns, col)
	}
	sort.Strings(pivot.Columns)

	rowKeys := make([]string, 0, len(rowLabels))
	for k := range rowLabels {
		rowKeys = append(rowKeys, k)
	}
	sort.Slice(rowKeys, func(i, j int) bool {
		return lessLabels(rowLabels[rowKeys[i]], rowLabels[rowKeys[j]])
	})

	for _, k := range rowKeys {
		values := make([]float64, len(pivot.Columns))
		for j, col := range pivot.Columns {
			v, ok := cells[k][col]
			if !ok {
				v = math.NaN()
			}
			values[j] = v
		}
		pivot.Rows = append(pivot.Rows, rowLabels[k])
		pivot.Values = append(pivot.Values, values)
	}

	return pivot, nil
}

func groupLabels(group dataframe.DataFrame, keys []string) ([]string, bool) {
	out := make([]string, len(keys))
	for i, key := range keys {
		label, ok := groupLabel(group, key)
		if !ok {
			return nil, false
		}
		out[i] = label
	}

	return out, true
}

func lessLabels(a, b []string) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}

	return false
}

// Join selects which rows a join keeps.
type Join string

const (
	// InnerJoin keeps the keys present on both sides.
	InnerJoin Join = "inner"
	// LeftJoin keeps every row of the left dataset.
	LeftJoin Join = "left"
	// RightJoin keeps every row of the right dataset.
	RightJoin Join = "right"
	// OuterJoin keeps every row of both datasets.
	OuterJoin Join = "outer"
)

// ParseJoin returns the join matching name.
func ParseJoin(name string) (Join, error) {
	switch j := Join(strings.ToLower(strings.TrimSpace(name))); j {
	case InnerJoin, LeftJoin, RightJoin, OuterJoin:
		return j, nil
	}

	return "", errors.Wrapf(ErrUnknownJoin, "%q", name)
}

// Join merges ds and other on the key columns on. The key columns come first, then the other columns
// of ds and of other. Cells of a row without a match on the other side are missing. Non key columns
// present on both sides get a numeric suffix.
func (ds *Dataset) Join(other *Dataset, on []string, how Join) (*Dataset, error) {
	if len(on) == 0 {
		return nil, errors.New("join needs at least one key column")
	}
	for _, key := range on {
		if _, err := ds.column(key); err != nil {
			return nil, errors.Wrap(err, "left dataset")
		}
		if _, err := other.column(key); err != nil {
			return nil, errors.Wrap(err, "right dataset")
		}
	}

	switch how {
	case InnerJoin:
		return fromJoin(ds.df.InnerJoin(other.df, on...), how)
	case LeftJoin:
		return fromJoin(ds.df.LeftJoin(other.df, on...), how)
	case RightJoin:
		return fromJoin(ds.df.RightJoin(other.df, on...), how)
	case OuterJoin:
		return fromJoin(ds.df.OuterJoin(other.df, on...), how)
	}

	return nil, errors.Wrapf(ErrUnknownJoin, "%q", how)
}

func fromJoin(df dataframe.DataFrame, how Join) (*Dataset, error) {
	if df.Err != nil {
		return nil, errors.Wrapf(df.Err, "unable to %s join", how)
	}

	return &Dataset{df: df}, nil
}
