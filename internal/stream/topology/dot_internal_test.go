package topology

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-describe/internal/stream/measure"
	"github.com/askiada/go-describe/internal/stream/model"
)

func TestWaitColour(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		wait, min, max time.Duration
		want           string
	}{
		"fastest":    {wait: time.Millisecond, min: time.Millisecond, max: 3 * time.Millisecond, want: "#0000f0"},
		"slowest":    {wait: 3 * time.Millisecond, min: time.Millisecond, max: 3 * time.Millisecond, want: "#f00000"},
		"middle":     {wait: 2 * time.Millisecond, min: time.Millisecond, max: 3 * time.Millisecond, want: "#780078"},
		"single one": {wait: time.Millisecond, min: time.Millisecond, max: time.Millisecond, want: "#f00000"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := waitColour(tc.wait, tc.min, tc.max)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDOTWithTiming(t *testing.T) {
	t.Parallel()

	timing := measure.NewTiming()
	var out bytes.Buffer
	d := NewDOT(&out, timing)

	read := &model.StageInfo{Kind: model.SourceKind, Name: "read"}
	sink := &model.StageInfo{Kind: model.SinkKind, Name: "collect"}

	require.NoError(t, d.Start())
	for _, hook := range []model.Hook{timing, d} {
		require.NoError(t, hook.PrepareStage(model.Start, read))
		require.NoError(t, hook.PrepareStage(read, sink))
	}
	require.NoError(t, timing.OnOutput(read, sink, 2*time.Millisecond, time.Millisecond))
	require.NoError(t, timing.AfterSink(sink, 5*time.Millisecond))

	require.NoError(t, d.Finish())

	dot := out.String()
	assert.Contains(t, dot, `"start" -> "read"`)
	assert.Contains(t, dot, `"read" -> "collect"`)
	assert.Contains(t, dot, `"collect" -> "end"`)
	assert.Contains(t, dot, `label="2ms"`)
	assert.Contains(t, dot, `collect\n1ms\nend: 5ms`)
}
