// Package profile summarises every column of a CSV stream without loading it into memory as a table.
//
// Records flow through a stream of four stages: read (csv records), cells (one value per column),
// classify (number parsing) and collect (per column accumulation). The cells and classify stages run
// with the configured concurrency, so the order in which values reach collect is not the file order;
// every statistic computed afterwards is independent of that order.
package profile

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/askiada/go-describe/internal/stream"
	"github.com/askiada/go-describe/internal/stream/measure"
	"github.com/askiada/go-describe/internal/stream/model"
	"github.com/askiada/go-describe/internal/stream/topology"
	"github.com/askiada/go-describe/pkg/dataset"
	"github.com/askiada/go-describe/pkg/describe"
)

var (
	ErrNoHeader      = errors.New("csv has no header")
	ErrRaggedRow     = errors.New("row does not have as many fields as the header")
	ErrUnknownColumn = errors.New("unknown column")
)

// Column is the profile of a single CSV column.
// Numeric columns carry a Summary, the others carry their value counts.
type Column struct {
	Name    string            `json:"name" yaml:"name"`
	Numeric bool              `json:"numeric" yaml:"numeric"`
	Missing int               `json:"missing" yaml:"missing"`
	Summary *describe.Summary `json:"summary,omitempty" yaml:"summary,omitempty"`
	Counts  []describe.Count  `json:"counts,omitempty" yaml:"counts,omitempty"`
}

type record struct {
	row    int
	fields []string
}

type cell struct {
	col   int
	value string
}

type value struct {
	col     int
	raw     string
	num     float64
	numeric bool
	missing bool
}

type accumulator struct {
	missing int
	allNum  bool
	raws    []string
	nums    []float64
}

// Profiler reads CSV streams and profiles their columns.
// A Profiler with a timing hook runs once, the hook refuses to measure the same stage twice.
type Profiler struct {
	opts *options
	na   map[string]struct{}
}

// New returns a profiler configured by opts.
func New(opts ...Option) *Profiler {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	na := make(map[string]struct{}, len(o.naValues))
	for _, v := range o.naValues {
		na[v] = struct{}{}
	}

	return &Profiler{opts: o, na: na}
}

// File profiles the CSV file at path.
func (p *Profiler) File(ctx context.Context, path string) ([]Column, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s", path)
	}
	defer f.Close()

	cols, err := p.Run(ctx, f)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to profile %s", path)
	}

	return cols, nil
}

// Run profiles the CSV document read from r. The first record is the header.
func (p *Profiler) Run(ctx context.Context, r io.Reader) ([]Column, error) {
	reader := csv.NewReader(r)
	reader.Comma = p.opts.delimiter
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, errors.Wrap(err, "unable to read header")
	}

	selected, err := p.selectColumns(header)
	if err != nil {
		return nil, err
	}

	logger := p.opts.logger.With("columns", len(header), "concurrency", p.opts.concurrency)
	logger.Debug("profiling csv")

	accs, rows, err := p.stream(ctx, reader, len(header), selected)
	if err != nil {
		return nil, err
	}

	cols := make([]Column, 0, len(selected))
	for i, name := range header {
		if _, ok := selected[i]; !ok {
			continue
		}
		cols = append(cols, p.column(name, accs[i]))
	}

	logger.Debug("csv profiled", "rows", rows)
	if p.opts.timing != nil {
		for _, st := range p.opts.timing.Stats() {
			logger.Debug("stage timing", "stage", st.Name, "count", st.Count, "compute", st.AvgCompute, "total", st.Total)
		}
	}

	return cols, nil
}

func (p *Profiler) selectColumns(header []string) (map[int]struct{}, error) {
	selected := make(map[int]struct{}, len(header))
	if len(p.opts.columns) == 0 {
		for i := range header {
			selected[i] = struct{}{}
		}

		return selected, nil
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, name := range p.opts.columns {
		i, ok := index[name]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownColumn, "%q", name)
		}
		selected[i] = struct{}{}
	}

	return selected, nil
}

func (p *Profiler) hooks() []model.Hook {
	var hooks []model.Hook
	if p.opts.timing != nil {
		hooks = append(hooks, p.opts.timing)
	}
	if p.opts.graph != nil {
		hooks = append(hooks, topology.NewDOT(p.opts.graph, p.opts.timing))
	}

	return hooks
}

func (p *Profiler) stream(ctx context.Context, reader *csv.Reader, width int, selected map[int]struct{}) ([]*accumulator, int, error) {
	s, err := stream.New(ctx, p.hooks()...)
	if err != nil {
		return nil, 0, err
	}

	rows := 0
	records, err := stream.AddSource(s, "read", func(ctx context.Context, out chan<- record) error {
		for {
			fields, err := reader.Read()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return errors.Wrapf(err, "unable to read row %d", rows+1)
			}
			rows++
			select {
			case <-ctx.Done():
				return ctx.Err()
			case out <- record{row: rows, fields: fields}:
			}
		}
	})
	if err != nil {
		return nil, 0, err
	}

	cells, err := stream.AddFlatMap(s, "cells", records, func(_ context.Context, rec record) ([]cell, error) {
		if len(rec.fields) != width {
			return nil, errors.Wrapf(ErrRaggedRow, "row %d has %d fields, header has %d", rec.row, len(rec.fields), width)
		}
		out := make([]cell, 0, len(selected))
		for i, field := range rec.fields {
			if _, ok := selected[i]; ok {
				out = append(out, cell{col: i, value: field})
			}
		}

		return out, nil
	}, stream.WithConcurrency(p.opts.concurrency))
	if err != nil {
		return nil, 0, err
	}

	values, err := stream.AddMap(s, "classify", cells, func(_ context.Context, c cell) (value, error) {
		return p.classify(c), nil
	}, stream.WithConcurrency(p.opts.concurrency))
	if err != nil {
		return nil, 0, err
	}

	accs := make([]*accumulator, width)
	for i := range accs {
		accs[i] = &accumulator{allNum: true}
	}
	// collect is the only stage writing to accs
	err = stream.AddSink(s, "collect", values, func(_ context.Context, v value) error {
		acc := accs[v.col]
		if v.missing {
			acc.missing++

			return nil
		}
		acc.raws = append(acc.raws, v.raw)
		if v.numeric {
			acc.nums = append(acc.nums, v.num)
		} else {
			acc.allNum = false
		}

		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	err = s.Run()
	if err != nil {
		return nil, 0, err
	}

	return accs, rows, nil
}

func (p *Profiler) classify(c cell) value {
	raw := strings.TrimSpace(c.value)
	if _, ok := p.na[raw]; ok {
		return value{col: c.col, missing: true}
	}

	v := value{col: c.col, raw: raw}
	num, err := strconv.ParseFloat(raw, 64)
	if err == nil && math.IsNaN(num) {
		return value{col: c.col, missing: true}
	}
	if err == nil {
		v.num = num
		v.numeric = true
	}

	return v
}

func (p *Profiler) column(name string, acc *accumulator) Column {
	col := Column{Name: name, Missing: acc.missing}
	if len(acc.raws) > 0 && acc.allNum {
		// Summarize only fails on empty samples.
		sum, err := describe.Summarize(acc.nums)
		if err == nil {
			col.Numeric = true
			col.Summary = &sum

			return col
		}
	}
	col.Counts = describe.Top(describe.ValueCounts(acc.raws), p.opts.top)

	return col
}

type options struct {
	concurrency int
	delimiter   rune
	naValues    []string
	columns     []string
	top         int
	timing      *measure.Timing
	graph       io.Writer
	logger      *slog.Logger
}

func defaultOptions() *options {
	return &options{
		concurrency: 1,
		delimiter:   ',',
		naValues:    dataset.DefaultNaValues,
		top:         -1,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Option configures a Profiler.
type Option func(*options)

// WithConcurrency sets the number of goroutines of the cells and classify stages.
func WithConcurrency(concurrency int) Option {
	return func(o *options) {
		o.concurrency = concurrency
	}
}

// WithDelimiter sets the field delimiter.
func WithDelimiter(delimiter rune) Option {
	return func(o *options) {
		o.delimiter = delimiter
	}
}

// WithNaValues sets the cells counted as missing. Cells are trimmed before the comparison.
func WithNaValues(values []string) Option {
	return func(o *options) {
		o.naValues = values
	}
}

// WithColumns restricts the profile to the named columns.
func WithColumns(columns ...string) Option {
	return func(o *options) {
		o.columns = columns
	}
}

// WithTop keeps only the k most frequent values of non numeric columns.
func WithTop(k int) Option {
	return func(o *options) {
		o.top = k
	}
}

// WithTiming attaches a timing hook to the stream.
func WithTiming(timing *measure.Timing) Option {
	return func(o *options) {
		o.timing = timing
	}
}

// WithGraph writes the topology of the stream as DOT to w once the profile is complete.
func WithGraph(w io.Writer) Option {
	return func(o *options) {
		o.graph = w
	}
}

// WithLogger sets the logger. Nothing is logged by default.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
