package model

import "time"

type StageKind string

const (
	SourceKind  StageKind = "source"
	MapKind     StageKind = "map"
	FlatMapKind StageKind = "flatmap"
	SinkKind    StageKind = "sink"
)

// StageInfo describes a stage independently of the type of values it produces.
type StageInfo struct {
	Kind        StageKind
	Name        string
	Concurrency int
}

var (
	// Start is the implicit parent of every source.
	Start = &StageInfo{Name: "start"}
	// End is the implicit child of every sink.
	End = &StageInfo{Name: "end"}
)

// Stage is a handle on a stage producing values of type O.
type Stage[O any] struct {
	Output <-chan O
	Info   *StageInfo
}

// Hook observes a stream while it is built and while it runs.
// Hooks are called from many goroutines and must be safe for concurrent use.
type Hook interface {
	// Start runs when the stream is created.
	Start() error
	// PrepareStage runs once per stage, before the stage starts.
	PrepareStage(parent, stage *StageInfo) error
	// OnOutput runs every time a map, flat-map or sink stage handles a value.
	// wait is the time spent waiting on the parent, compute the time spent in the stage function.
	OnOutput(parent, stage *StageInfo, wait, compute time.Duration) error
	// AfterSink runs when a sink has drained its input.
	AfterSink(stage *StageInfo, total time.Duration) error
	// Finish runs after the stream completed without error.
	Finish() error
}
