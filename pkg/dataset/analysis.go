package dataset

import (
	"math"
	"sort"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/askiada/go-describe/pkg/describe"
)

// ColumnSummary is the summary of a single numeric column.
type ColumnSummary struct {
	Column  string           `json:"column" yaml:"column"`
	Summary describe.Summary `json:"summary" yaml:"summary"`
}

// GroupSummary is the summary of a numeric column restricted to the rows of one group.
type GroupSummary struct {
	Group   string           `json:"group" yaml:"group"`
	Summary describe.Summary `json:"summary" yaml:"summary"`
}

// Matrix is a square matrix indexed by column names.
type Matrix struct {
	Names  []string    `json:"names" yaml:"names"`
	Values [][]float64 `json:"values" yaml:"values"`
}

func emptySummary() describe.Summary {
	nan := math.NaN()

	return describe.Summary{
		Mean: nan, Std: nan, Min: nan, Q1: nan, Median: nan, Q3: nan, Max: nan,
		IQR: nan, CV: nan, Skew: nan, Kurtosis: nan, GeoMean: nan,
	}
}

func summarize(xs []float64) (describe.Summary, error) {
	sum, err := describe.Summarize(xs)
	if errors.Is(err, describe.ErrEmptySample) {
		return emptySummary(), nil
	}

	return sum, err
}

// Describe summarises every numeric column. A column without any value has a zero count and NaN statistics.
func (ds *Dataset) Describe() ([]ColumnSummary, error) {
	names := ds.NumericNames()
	out := make([]ColumnSummary, 0, len(names))
	for _, name := range names {
		xs, err := ds.Floats(name)
		if err != nil {
			return nil, err
		}
		sum, err := summarize(xs)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to summarise %s", name)
		}
		out = append(out, ColumnSummary{Column: name, Summary: sum})
	}

	return out, nil
}

// ValueCounts counts the non missing values of a column, most frequent first.
func (ds *Dataset) ValueCounts(name string) ([]describe.Count, error) {
	values, err := ds.Strings(name)
	if err != nil {
		return nil, err
	}

	return describe.ValueCounts(values), nil
}

// Crosstab builds the contingency table of two columns.
func (ds *Dataset) Crosstab(index, columns string, norm describe.Normalize) (*describe.Crosstab, error) {
	rows, err := ds.Strings(index)
	if err != nil {
		return nil, err
	}
	cols, err := ds.Strings(columns)
	if err != nil {
		return nil, err
	}

	return describe.NewCrosstab(rows, cols, norm)
}

// Corr returns the pairwise Pearson correlation of the numeric columns.
func (ds *Dataset) Corr() (*Matrix, error) {
	return ds.pairwise(describe.CorrMatrix)
}

// Cov returns the pairwise sample covariance of the numeric columns.
func (ds *Dataset) Cov() (*Matrix, error) {
	return ds.pairwise(describe.CovMatrix)
}

func (ds *Dataset) pairwise(fn func([][]float64) (*mat.SymDense, error)) (*Matrix, error) {
	names := ds.NumericNames()
	if len(names) == 0 {
		return nil, errors.Wrap(ErrNotNumeric, "no numeric column")
	}

	columns := make([][]float64, len(names))
	for i, name := range names {
		xs, err := ds.Floats(name)
		if err != nil {
			return nil, err
		}
		columns[i] = xs
	}

	m, err := fn(columns)
	if err != nil {
		return nil, err
	}

	values := make([][]float64, len(names))
	for i := range values {
		values[i] = make([]float64, len(names))
		for j := range values[i] {
			values[i][j] = m.At(i, j)
		}
	}

	return &Matrix{Names: names, Values: values}, nil
}

// Explode splits every cell of a column on sep and returns the trimmed tokens in row order.
// Missing cells and empty tokens are skipped.
func (ds *Dataset) Explode(name, sep string) ([]string, error) {
	if sep == "" {
		return nil, errors.New("separator must not be empty")
	}
	values, err := ds.Strings(name)
	if err != nil {
		return nil, err
	}

	var tokens []string
	for _, v := range values {
		if describe.IsMissing(v) {
			continue
		}
		for _, token := range strings.Split(v, sep) {
			token = strings.TrimSpace(token)
			if token == "" {
				continue
			}
			tokens = append(tokens, token)
		}
	}

	return tokens, nil
}

// GroupSummary summarises the numeric column value for every group of the column by.
// Rows whose group is missing are dropped. Groups are sorted by name.
func (ds *Dataset) GroupSummary(by, value string) ([]GroupSummary, error) {
	if _, err := ds.column(by); err != nil {
		return nil, err
	}
	valueCol, err := ds.column(value)
	if err != nil {
		return nil, err
	}
	if !isNumeric(valueCol) {
		return nil, errors.Wrapf(ErrNotNumeric, "%q is %s", value, valueCol.Type())
	}

	groups := ds.df.GroupBy(by)
	if groups.Err != nil {
		return nil, errors.Wrapf(groups.Err, "unable to group by %s", by)
	}

	out := []GroupSummary{}
	for _, group := range groups.GetGroups() {
		label, ok := groupLabel(group, by)
		if !ok {
			continue
		}
		sum, err := summarize(group.Col(value).Float())
		if err != nil {
			return nil, errors.Wrapf(err, "unable to summarise group %s", label)
		}
		out = append(out, GroupSummary{Group: label, Summary: sum})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Group < out[j].Group
	})

	return out, nil
}

// groupLabel reads the group name from the rows rather than from the map key, whose format depends on the column type.
func groupLabel(group dataframe.DataFrame, by string) (string, bool) {
	records := labels(group.Col(by))
	if len(records) == 0 || describe.IsMissing(records[0]) {
		return "", false
	}

	return records[0], true
}

// Filter keeps the rows whose column holds one of values.
func (ds *Dataset) Filter(name string, values []string) (*Dataset, error) {
	if _, err := ds.column(name); err != nil {
		return nil, err
	}

	df := ds.df.Filter(dataframe.F{
		Colname:    name,
		Comparator: series.In,
		Comparando: values,
	})
	if df.Err != nil {
		return nil, errors.Wrapf(df.Err, "unable to filter %s", name)
	}

	return &Dataset{df: df}, nil
}

// TopFilter keeps the rows whose column holds one of its k most frequent values.
func (ds *Dataset) TopFilter(name string, k int) (*Dataset, error) {
	counts, err := ds.ValueCounts(name)
	if err != nil {
		return nil, err
	}

	top := describe.Top(counts, k)
	values := make([]string, len(top))
	for i, c := range top {
		values[i] = c.Value
	}

	return ds.Filter(name, values)
}
