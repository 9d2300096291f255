// Package measure records how long every stage of a stream spends computing and waiting for input.
package measure

import (
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-describe/internal/stream/model"
)

var ErrUnknownStage = errors.New("unknown stage")

// Metric accumulates the durations of a single stage.
type Metric struct {
	mu          sync.Mutex
	order       int
	concurrency int
	total       int64
	compute     time.Duration
	wait        map[string]time.Duration
	end         time.Duration
}

func (mt *Metric) add(parent string, wait, compute time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.total++
	mt.compute += compute
	mt.wait[parent] += wait
}

// StageStats is a snapshot of a Metric.
type StageStats struct {
	Name string
	// Count is the number of values the stage handled.
	Count int64
	// AvgCompute is the average time spent in the stage function per value.
	AvgCompute time.Duration
	// AvgWait is the average time a goroutine of the stage waited for its parent, per value.
	AvgWait map[string]time.Duration
	// Total is the time from the start of the stream to the end of a sink. It is 0 for other stages.
	Total time.Duration
}

func (mt *Metric) stats(name string) StageStats {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	st := StageStats{
		Name:    name,
		Count:   mt.total,
		AvgWait: make(map[string]time.Duration, len(mt.wait)),
		Total:   mt.end,
	}
	if mt.total == 0 {
		return st
	}
	st.AvgCompute = round(time.Duration(float64(mt.compute) / float64(mt.total)))
	for parent, wait := range mt.wait {
		st.AvgWait[parent] = round(time.Duration(float64(wait) / float64(mt.total) / float64(mt.concurrency)))
	}

	return st
}

// Timing is a stream hook collecting a Metric per stage.
type Timing struct {
	mu      sync.RWMutex
	metrics map[string]*Metric
}

// NewTiming returns an empty Timing hook.
func NewTiming() *Timing {
	return &Timing{metrics: make(map[string]*Metric)}
}

func (tm *Timing) Start() error { return nil }

func (tm *Timing) PrepareStage(_, stage *model.StageInfo) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if _, ok := tm.metrics[stage.Name]; ok {
		return errors.Errorf("stage %q is already measured", stage.Name)
	}
	concurrency := stage.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	tm.metrics[stage.Name] = &Metric{
		order:       len(tm.metrics),
		concurrency: concurrency,
		wait:        make(map[string]time.Duration),
	}

	return nil
}

func (tm *Timing) metric(name string) (*Metric, error) {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	mt, ok := tm.metrics[name]
	if !ok {
		return nil, errors.Wrap(ErrUnknownStage, name)
	}

	return mt, nil
}

func (tm *Timing) OnOutput(parent, stage *model.StageInfo, wait, compute time.Duration) error {
	mt, err := tm.metric(stage.Name)
	if err != nil {
		return err
	}
	mt.add(parent.Name, wait, compute)

	return nil
}

func (tm *Timing) AfterSink(stage *model.StageInfo, total time.Duration) error {
	mt, err := tm.metric(stage.Name)
	if err != nil {
		return err
	}
	mt.mu.Lock()
	mt.end = total
	mt.mu.Unlock()

	return nil
}

func (tm *Timing) Finish() error { return nil }

// Stats returns a snapshot of every stage, in the order the stages were added.
func (tm *Timing) Stats() []StageStats {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	names := make([]string, 0, len(tm.metrics))
	for name := range tm.metrics {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return tm.metrics[names[i]].order < tm.metrics[names[j]].order
	})

	stats := make([]StageStats, len(names))
	for i, name := range names {
		stats[i] = tm.metrics[name].stats(name)
	}

	return stats
}

// Stage returns the snapshot of a single stage.
func (tm *Timing) Stage(name string) (StageStats, error) {
	mt, err := tm.metric(name)
	if err != nil {
		return StageStats{}, err
	}

	return mt.stats(name), nil
}

func round(d time.Duration) time.Duration {
	switch {
	case d > time.Second:
		return d.Round(time.Millisecond)
	case d > time.Millisecond:
		return d.Round(time.Microsecond)
	}

	return d
}

var _ model.Hook = (*Timing)(nil)
