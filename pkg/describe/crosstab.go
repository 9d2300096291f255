package describe

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Normalize selects how the cells of a Crosstab are scaled.
type Normalize string

const (
	NormalizeNone    Normalize = ""
	NormalizeIndex   Normalize = "index"
	NormalizeColumns Normalize = "columns"
	NormalizeAll     Normalize = "all"
)

// ParseNormalize returns the normalisation matching name. "none" and "" both mean raw counts.
func ParseNormalize(name string) (Normalize, error) {
	switch n := Normalize(strings.ToLower(strings.TrimSpace(name))); n {
	case NormalizeNone, NormalizeIndex, NormalizeColumns, NormalizeAll:
		return n, nil
	case "none":
		return NormalizeNone, nil
	}

	return NormalizeNone, errors.Errorf("unknown normalisation %q", name)
}

// Crosstab is a contingency table. Cells[i][j] counts the pairs (Rows[i], Cols[j]).
type Crosstab struct {
	Rows  []string    `json:"rows" yaml:"rows"`
	Cols  []string    `json:"cols" yaml:"cols"`
	Cells [][]float64 `json:"cells" yaml:"cells"`
}

// NewCrosstab counts the co-occurrences of rows[i] and cols[i]. Pairs with a missing side are skipped.
// Labels are sorted in ascending order.
func NewCrosstab(rows, cols []string, norm Normalize) (*Crosstab, error) {
	if len(rows) != len(cols) {
		return nil, errors.Wrapf(ErrLengthMismatch, "%d rows and %d columns", len(rows), len(cols))
	}

	rowIdx := make(map[string]int)
	colIdx := make(map[string]int)
	type pair struct{ r, c string }
	pairs := make(map[pair]int)

	for i := range rows {
		if IsMissing(rows[i]) || IsMissing(cols[i]) {
			continue
		}
		rowIdx[rows[i]] = 0
		colIdx[cols[i]] = 0
		pairs[pair{rows[i], cols[i]}]++
	}

	ct := &Crosstab{
		Rows: sortedKeys(rowIdx),
		Cols: sortedKeys(colIdx),
	}
	for i, r := range ct.Rows {
		rowIdx[r] = i
	}
	for j, c := range ct.Cols {
		colIdx[c] = j
	}

	ct.Cells = make([][]float64, len(ct.Rows))
	for i := range ct.Cells {
		ct.Cells[i] = make([]float64, len(ct.Cols))
	}
	for p, n := range pairs {
		ct.Cells[rowIdx[p.r]][colIdx[p.c]] = float64(n)
	}

	ct.normalize(norm)

	return ct, nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

func (ct *Crosstab) normalize(norm Normalize) {
	switch norm {
	case NormalizeIndex:
		for _, row := range ct.Cells {
			scale(row, sum(row))
		}
	case NormalizeColumns:
		for j := range ct.Cols {
			total := 0.0
			for i := range ct.Rows {
				total += ct.Cells[i][j]
			}
			for i := range ct.Rows {
				if total != 0 {
					ct.Cells[i][j] /= total
				}
			}
		}
	case NormalizeAll:
		total := 0.0
		for _, row := range ct.Cells {
			total += sum(row)
		}
		for _, row := range ct.Cells {
			scale(row, total)
		}
	}
}

func sum(xs []float64) float64 {
	s := 0.0
	for _, x := range xs {
		s += x
	}

	return s
}

func scale(xs []float64, total float64) {
	if total == 0 {
		return
	}
	for i := range xs {
		xs[i] /= total
	}
}

// Row returns the cells of the row labelled r.
func (ct *Crosstab) Row(r string) ([]float64, bool) {
	for i, name := range ct.Rows {
		if name == r {
			return ct.Cells[i], true
		}
	}

	return nil, false
}

// At returns the cell for the pair (r, c) and whether both labels exist.
func (ct *Crosstab) At(r, c string) (float64, bool) {
	row, ok := ct.Row(r)
	if !ok {
		return 0, false
	}
	for j, name := range ct.Cols {
		if name == c {
			return row[j], true
		}
	}

	return 0, false
}
