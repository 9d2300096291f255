// Package dataset loads CSV files into a dataframe and answers the exploratory questions asked of a table:
// per column summaries, value counts, contingency tables, correlations, filters and group summaries.
package dataset

import (
	"io"
	"math"
	"os"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
)

var (
	ErrUnknownColumn = errors.New("unknown column")
	ErrNotNumeric    = errors.New("column is not numeric")
)

// DefaultNaValues are the cells read as missing values when no other list is configured.
var DefaultNaValues = []string{"", "NA", "NaN", "nan", "null"}

type options struct {
	delimiter rune
	naValues  []string
}

// Option configures how a CSV file is read.
type Option func(*options)

// WithDelimiter sets the field delimiter. The default is a comma.
func WithDelimiter(delimiter rune) Option {
	return func(o *options) {
		o.delimiter = delimiter
	}
}

// WithNaValues sets the cells read as missing values. They replace DefaultNaValues.
func WithNaValues(values []string) Option {
	return func(o *options) {
		o.naValues = values
	}
}

// Dataset is a table read from a CSV file whose first row holds the column names.
type Dataset struct {
	df dataframe.DataFrame
}

// Load reads the CSV file at path.
func Load(path string, opts ...Option) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s", path)
	}
	defer f.Close()

	ds, err := Read(f, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to load %s", path)
	}

	return ds, nil
}

// Read reads a CSV document from r. Column types are detected from the values.
func Read(r io.Reader, opts ...Option) (*Dataset, error) {
	o := &options{delimiter: ',', naValues: DefaultNaValues}
	for _, opt := range opts {
		opt(o)
	}

	df := dataframe.ReadCSV(r,
		dataframe.WithDelimiter(o.delimiter),
		dataframe.NaNValues(o.naValues),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
	)
	if df.Err != nil {
		return nil, errors.Wrap(df.Err, "unable to read csv")
	}

	return &Dataset{df: df}, nil
}

// FromFrame wraps an existing dataframe.
func FromFrame(df dataframe.DataFrame) (*Dataset, error) {
	if df.Err != nil {
		return nil, errors.Wrap(df.Err, "invalid dataframe")
	}

	return &Dataset{df: df}, nil
}

// Frame returns the underlying dataframe.
func (ds *Dataset) Frame() dataframe.DataFrame {
	return ds.df
}

// Names returns the column names in file order.
func (ds *Dataset) Names() []string {
	return ds.df.Names()
}

// Dims returns the number of rows and columns.
func (ds *Dataset) Dims() (int, int) {
	return ds.df.Dims()
}

func (ds *Dataset) column(name string) (series.Series, error) {
	for _, n := range ds.df.Names() {
		if n == name {
			return ds.df.Col(name), nil
		}
	}

	return series.Series{}, errors.Wrapf(ErrUnknownColumn, "%q", name)
}

func isNumeric(s series.Series) bool {
	return s.Type() == series.Int || s.Type() == series.Float
}

// NumericNames returns the names of the integer and float columns, in file order.
func (ds *Dataset) NumericNames() []string {
	var names []string
	for _, name := range ds.df.Names() {
		if isNumeric(ds.df.Col(name)) {
			names = append(names, name)
		}
	}

	return names
}

// Floats returns the values of a numeric column. Missing values are NaN.
func (ds *Dataset) Floats(name string) ([]float64, error) {
	s, err := ds.column(name)
	if err != nil {
		return nil, err
	}
	if !isNumeric(s) {
		return nil, errors.Wrapf(ErrNotNumeric, "%q is %s", name, s.Type())
	}

	return s.Float(), nil
}

// Strings returns the values of any column as text. Float values use their shortest representation
// and missing values are "NaN".
func (ds *Dataset) Strings(name string) ([]string, error) {
	s, err := ds.column(name)
	if err != nil {
		return nil, err
	}

	return labels(s), nil
}

// Rows returns every row as text, columns in the order of Names.
func (ds *Dataset) Rows() [][]string {
	nrows, ncols := ds.df.Dims()
	cols := make([][]string, ncols)
	for j, name := range ds.df.Names() {
		cols[j] = labels(ds.df.Col(name))
	}

	rows := make([][]string, nrows)
	for i := range rows {
		rows[i] = make([]string, ncols)
		for j := range cols {
			rows[i][j] = cols[j][i]
		}
	}

	return rows
}

// labels formats the values of s. gota prints floats with a fixed six decimals, which does not match
// the way numbers are written anywhere else.
func labels(s series.Series) []string {
	if s.Type() != series.Float {
		return s.Records()
	}

	xs := s.Float()
	out := make([]string, len(xs))
	for i, x := range xs {
		if math.IsNaN(x) {
			out[i] = "NaN"

			continue
		}
		out[i] = strconv.FormatFloat(x, 'g', -1, 64)
	}

	return out
}
