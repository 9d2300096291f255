package stream_test

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-describe/internal/stream"
	"github.com/askiada/go-describe/internal/stream/measure"
	"github.com/askiada/go-describe/internal/stream/model"
	"github.com/askiada/go-describe/internal/stream/topology"
)

func identity(_ context.Context, in int) (int, error) {
	return in, nil
}

func TestAddMapNilStream(t *testing.T) {
	t.Parallel()

	_, err := stream.AddMap(nil, "map", inputStage(t, 0), identity)
	assert.ErrorIs(t, err, stream.ErrStreamMustBeSet)
}

func TestAddMapNilInput(t *testing.T) {
	t.Parallel()

	s, err := stream.New(context.Background())
	require.NoError(t, err)

	_, err = stream.AddMap[int, int](s, "map", nil, identity)
	assert.ErrorIs(t, err, stream.ErrInputMustBeSet)
}

func TestAddMap(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		concurrency int
	}{
		"default":        {concurrency: 0},
		"sequential":     {concurrency: 1},
		"concurrent 2":   {concurrency: 2},
		"concurrent 100": {concurrency: 100},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s, err := stream.New(context.Background())
			require.NoError(t, err)

			doubled, err := stream.AddMap(s, "double", inputStage(t, 10), func(_ context.Context, in int) (int, error) {
				return in * 2, nil
			}, stream.WithConcurrency(tc.concurrency))
			require.NoError(t, err)

			got := collect(t, doubled.Output)

			require.NoError(t, s.Run())
			assert.ElementsMatch(t, []int{0, 2, 4, 6, 8, 10, 12, 14, 16, 18}, <-got)
		})
	}
}

func TestAddMapError(t *testing.T) {
	t.Parallel()

	for name, concurrency := range map[string]int{"sequential": 1, "concurrent": 4} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s, err := stream.New(context.Background())
			require.NoError(t, err)

			output, err := stream.AddMap(s, "failing", inputStage(t, 10), func(_ context.Context, in int) (int, error) {
				if in == 5 {
					return 0, assert.AnError
				}

				return in, nil
			}, stream.WithConcurrency(concurrency))
			require.NoError(t, err)

			got := collect(t, output.Output)

			err = s.Run()
			require.ErrorIs(t, err, assert.AnError)
			assert.Contains(t, err.Error(), "failing")
			<-got
		})
	}
}

func TestAddMapCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s, err := stream.New(ctx)
	require.NoError(t, err)

	output, err := stream.AddMap(s, "map", inputStageWithCancel(t, 10, 5, cancel), func(ctx context.Context, in int) (int, error) {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
			return in, nil
		}
	})
	require.NoError(t, err)

	got := collect(t, output.Output)

	err = s.Run()
	assert.ErrorIs(t, err, context.Canceled)
	<-got
}

func TestAddFlatMap(t *testing.T) {
	t.Parallel()

	s, err := stream.New(context.Background())
	require.NoError(t, err)

	output, err := stream.AddFlatMap(s, "repeat", inputStage(t, 4), func(_ context.Context, in int) ([]int, error) {
		out := make([]int, in)
		for i := range out {
			out[i] = in
		}

		return out, nil
	}, stream.WithConcurrency(3))
	require.NoError(t, err)

	got := collect(t, output.Output)

	require.NoError(t, s.Run())
	assert.ElementsMatch(t, []int{1, 2, 2, 3, 3, 3}, <-got)
}

func TestAddFlatMapNilFn(t *testing.T) {
	t.Parallel()

	s, err := stream.New(context.Background())
	require.NoError(t, err)

	_, err = stream.AddFlatMap[int, int](s, "nil", inputStage(t, 0), nil)
	assert.ErrorIs(t, err, stream.ErrFnMustBeSet)
}

func TestAddSourceNilStream(t *testing.T) {
	t.Parallel()

	_, err := stream.AddSource(nil, "source", func(_ context.Context, out chan<- int) error {
		return nil
	})
	assert.ErrorIs(t, err, stream.ErrStreamMustBeSet)
}

func TestAddSourceError(t *testing.T) {
	t.Parallel()

	s, err := stream.New(context.Background())
	require.NoError(t, err)

	source, err := stream.AddSource(s, "source", func(ctx context.Context, out chan<- int) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case out <- 1:
		}

		return assert.AnError
	})
	require.NoError(t, err)

	got := collect(t, source.Output)

	err = s.Run()
	assert.ErrorIs(t, err, assert.AnError)
	<-got
}

func TestSourceToSink(t *testing.T) {
	t.Parallel()

	timing := measure.NewTiming()
	var dot bytes.Buffer

	s, err := stream.New(context.Background(), timing, topology.NewDOT(&dot, timing))
	require.NoError(t, err)

	source, err := stream.AddSource(s, "numbers", func(ctx context.Context, out chan<- int) error {
		for i := 0; i < 100; i++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case out <- i:
			}
		}

		return nil
	})
	require.NoError(t, err)

	squares, err := stream.AddMap(s, "square", source, func(_ context.Context, in int) (int, error) {
		return in * in, nil
	}, stream.WithConcurrency(4))
	require.NoError(t, err)

	var (
		mu  sync.Mutex
		sum int
	)
	err = stream.AddSink(s, "sum", squares, func(_ context.Context, in int) error {
		mu.Lock()
		defer mu.Unlock()
		sum += in

		return nil
	})
	require.NoError(t, err)

	require.NoError(t, s.Run())
	assert.Equal(t, 328350, sum)

	stats := timing.Stats()
	require.Len(t, stats, 3)
	assert.Equal(t, "numbers", stats[0].Name)
	assert.Equal(t, int64(0), stats[0].Count)
	assert.Equal(t, "square", stats[1].Name)
	assert.Equal(t, int64(100), stats[1].Count)
	assert.Contains(t, stats[1].AvgWait, "numbers")
	assert.Equal(t, "sum", stats[2].Name)
	assert.Equal(t, int64(100), stats[2].Count)
	assert.True(t, stats[2].Total > 0)

	out := dot.String()
	assert.Contains(t, out, "digraph")
	assert.Contains(t, out, `"numbers" -> "square"`)
	assert.Contains(t, out, `"square" -> "sum"`)
	assert.Contains(t, out, `"sum" -> "end"`)
}

func TestSinkError(t *testing.T) {
	t.Parallel()

	s, err := stream.New(context.Background())
	require.NoError(t, err)

	err = stream.AddSink(s, "sink", inputStage(t, 10), func(_ context.Context, in int) error {
		if in == 3 {
			return assert.AnError
		}

		return nil
	})
	require.NoError(t, err)

	err = s.Run()
	require.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "sink")
}

func TestAddSinkNilInput(t *testing.T) {
	t.Parallel()

	s, err := stream.New(context.Background())
	require.NoError(t, err)

	err = stream.AddSink[int](s, "sink", nil, func(context.Context, int) error { return nil })
	assert.ErrorIs(t, err, stream.ErrInputMustBeSet)
}

type failingHook struct {
	measure.Timing
}

func (*failingHook) Start() error { return assert.AnError }

func TestNewHookError(t *testing.T) {
	t.Parallel()

	_, err := stream.New(context.Background(), &failingHook{})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestDuplicateStageName(t *testing.T) {
	t.Parallel()

	s, err := stream.New(context.Background(), measure.NewTiming())
	require.NoError(t, err)

	_, err = stream.AddMap(s, "same", inputStage(t, 0), identity)
	require.NoError(t, err)
	_, err = stream.AddMap(s, "same", inputStage(t, 0), identity)
	assert.Error(t, err)
}

var _ model.Hook = (*failingHook)(nil)
