package report

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/askiada/go-describe/pkg/dataset"
	"github.com/askiada/go-describe/pkg/describe"
	"github.com/askiada/go-describe/pkg/dist"
	"github.com/askiada/go-describe/pkg/profile"
)

// FormatFloat prints x with up to ten significant digits.
func FormatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', 10, 64)
}

var summaryHeader = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max", "iqr", "cv", "skew", "kurtosis", "geomean"}

func summaryRow(s describe.Summary) []string {
	row := []string{strconv.Itoa(s.Count)}
	for _, v := range []float64{s.Mean, s.Std, s.Min, s.Q1, s.Median, s.Q3, s.Max, s.IQR, s.CV, s.Skew, s.Kurtosis, s.GeoMean} {
		row = append(row, FormatFloat(v))
	}

	return row
}

// Results lists distribution queries.
type Results []dist.Result

func (r Results) TableHeader() []string { return []string{"dist", "op", "x", "value"} }

func (r Results) TableRows() [][]string {
	rows := make([][]string, len(r))
	for i, res := range r {
		rows[i] = []string{res.Dist, string(res.Op), FormatFloat(res.X), FormatFloat(res.Value)}
	}

	return rows
}

// Points lists evaluations of a mass or density function.
type Points []dist.Point

func (p Points) TableHeader() []string { return []string{"x", "prob"} }

func (p Points) TableRows() [][]string {
	rows := make([][]string, len(p))
	for i, pt := range p {
		rows[i] = []string{FormatFloat(pt.X), FormatFloat(pt.Prob)}
	}

	return rows
}

// Summaries lists the summary of every numeric column of a dataset.
type Summaries []dataset.ColumnSummary

func (s Summaries) TableHeader() []string { return append([]string{"column"}, summaryHeader...) }

func (s Summaries) TableRows() [][]string {
	rows := make([][]string, len(s))
	for i, cs := range s {
		rows[i] = append([]string{cs.Column}, summaryRow(cs.Summary)...)
	}

	return rows
}

// Groups lists the summary of a column per group.
type Groups []dataset.GroupSummary

func (g Groups) TableHeader() []string { return append([]string{"group"}, summaryHeader...) }

func (g Groups) TableRows() [][]string {
	rows := make([][]string, len(g))
	for i, gs := range g {
		rows[i] = append([]string{gs.Group}, summaryRow(gs.Summary)...)
	}

	return rows
}

// Counts lists value counts.
type Counts []describe.Count

func (c Counts) TableHeader() []string { return []string{"value", "n", "share"} }

func (c Counts) TableRows() [][]string {
	rows := make([][]string, len(c))
	for i, cnt := range c {
		rows[i] = []string{cnt.Value, strconv.Itoa(cnt.N), FormatFloat(cnt.Share)}
	}

	return rows
}

// Crosstab is a contingency table.
type Crosstab describe.Crosstab

func (ct *Crosstab) TableHeader() []string { return append([]string{""}, ct.Cols...) }

func (ct *Crosstab) TableRows() [][]string {
	rows := make([][]string, len(ct.Rows))
	for i, label := range ct.Rows {
		row := []string{label}
		for _, v := range ct.Cells[i] {
			row = append(row, FormatFloat(v))
		}
		rows[i] = row
	}

	return rows
}

// Matrix is a correlation or covariance matrix.
type Matrix dataset.Matrix

func (m *Matrix) TableHeader() []string { return append([]string{""}, m.Names...) }

func (m *Matrix) TableRows() [][]string {
	rows := make([][]string, len(m.Names))
	for i, name := range m.Names {
		row := []string{name}
		for _, v := range m.Values[i] {
			row = append(row, FormatFloat(v))
		}
		rows[i] = row
	}

	return rows
}

// Pivot is a pivot table, one line per combination of index labels.
type Pivot dataset.Pivot

func (p *Pivot) TableHeader() []string { return append(append([]string{}, p.Index...), p.Columns...) }

func (p *Pivot) TableRows() [][]string {
	rows := make([][]string, len(p.Rows))
	for i, labels := range p.Rows {
		row := append([]string{}, labels...)
		for _, v := range p.Values[i] {
			row = append(row, FormatFloat(v))
		}
		rows[i] = row
	}

	return rows
}

// Frame is a whole dataset. In YAML and JSON every row is a mapping keyed by column name, in column order.
type Frame dataset.Dataset

func (f *Frame) TableHeader() []string { return (*dataset.Dataset)(f).Names() }

func (f *Frame) TableRows() [][]string { return (*dataset.Dataset)(f).Rows() }

func (f *Frame) MarshalYAML() (any, error) {
	ds := (*dataset.Dataset)(f)
	names := ds.Names()
	numeric := make(map[string]bool)
	for _, name := range ds.NumericNames() {
		numeric[name] = true
	}

	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, row := range ds.Rows() {
		m := &yaml.Node{Kind: yaml.MappingNode}
		for j, cell := range row {
			m.Content = append(m.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: names[j]},
				cellNode(cell, numeric[names[j]]),
			)
		}
		seq.Content = append(seq.Content, m)
	}

	return seq, nil
}

func cellNode(cell string, numeric bool) *yaml.Node {
	switch {
	case describe.IsMissing(cell):
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case numeric:
		// untagged so that integers and floats resolve to numbers
		return &yaml.Node{Kind: yaml.ScalarNode, Value: cell}
	}

	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: cell}
}

// Profile lists the columns of a streamed CSV file.
type Profile []profile.Column

func (p Profile) TableHeader() []string {
	return []string{"column", "type", "missing", "count", "mean", "std", "min", "50%", "max", "top"}
}

func (p Profile) TableRows() [][]string {
	rows := make([][]string, len(p))
	for i, col := range p {
		if col.Numeric && col.Summary != nil {
			s := col.Summary
			rows[i] = []string{
				col.Name, "numeric", strconv.Itoa(col.Missing), strconv.Itoa(s.Count),
				FormatFloat(s.Mean), FormatFloat(s.Std), FormatFloat(s.Min), FormatFloat(s.Median), FormatFloat(s.Max), "",
			}

			continue
		}

		n := 0
		for _, c := range col.Counts {
			n += c.N
		}
		top := make([]string, 0, 3)
		for _, c := range describe.Top(col.Counts, 3) {
			top = append(top, c.Value+" ("+strconv.Itoa(c.N)+")")
		}
		rows[i] = []string{
			col.Name, "categorical", strconv.Itoa(col.Missing), strconv.Itoa(n),
			"", "", "", "", "", strings.Join(top, ", "),
		}
	}

	return rows
}
