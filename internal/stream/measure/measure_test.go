package measure_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-describe/internal/stream/measure"
	"github.com/askiada/go-describe/internal/stream/model"
)

func TestTiming(t *testing.T) {
	t.Parallel()

	tm := measure.NewTiming()
	source := &model.StageInfo{Kind: model.SourceKind, Name: "read", Concurrency: 1}
	parse := &model.StageInfo{Kind: model.MapKind, Name: "parse", Concurrency: 2}

	require.NoError(t, tm.Start())
	require.NoError(t, tm.PrepareStage(model.Start, source))
	require.NoError(t, tm.PrepareStage(source, parse))

	require.NoError(t, tm.OnOutput(source, parse, 4*time.Millisecond, 10*time.Millisecond))
	require.NoError(t, tm.OnOutput(source, parse, 8*time.Millisecond, 20*time.Millisecond))

	st, err := tm.Stage("parse")
	require.NoError(t, err)
	assert.Equal(t, int64(2), st.Count)
	assert.Equal(t, 15*time.Millisecond, st.AvgCompute)
	// 12ms over 2 values and 2 goroutines
	assert.Equal(t, 3*time.Millisecond, st.AvgWait["read"])

	stats := tm.Stats()
	require.Len(t, stats, 2)
	assert.Equal(t, "read", stats[0].Name)
	assert.Equal(t, int64(0), stats[0].Count)
	assert.Zero(t, stats[0].AvgCompute)

	require.NoError(t, tm.Finish())
}

func TestTimingAfterSink(t *testing.T) {
	t.Parallel()

	tm := measure.NewTiming()
	sink := &model.StageInfo{Kind: model.SinkKind, Name: "collect"}
	require.NoError(t, tm.PrepareStage(model.Start, sink))
	require.NoError(t, tm.AfterSink(sink, time.Second))

	st, err := tm.Stage("collect")
	require.NoError(t, err)
	assert.Equal(t, time.Second, st.Total)
}

func TestTimingUnknownStage(t *testing.T) {
	t.Parallel()

	tm := measure.NewTiming()
	ghost := &model.StageInfo{Name: "ghost"}

	assert.ErrorIs(t, tm.OnOutput(model.Start, ghost, 0, 0), measure.ErrUnknownStage)
	assert.ErrorIs(t, tm.AfterSink(ghost, 0), measure.ErrUnknownStage)
	_, err := tm.Stage("ghost")
	assert.ErrorIs(t, err, measure.ErrUnknownStage)
}

func TestTimingDuplicateStage(t *testing.T) {
	t.Parallel()

	tm := measure.NewTiming()
	stage := &model.StageInfo{Name: "twice"}
	require.NoError(t, tm.PrepareStage(model.Start, stage))
	assert.Error(t, tm.PrepareStage(model.Start, stage))
}
