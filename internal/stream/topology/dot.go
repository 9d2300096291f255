// Package topology exports the topology of a stream as a Graphviz DOT document.
package topology

import (
	"io"
	"sync"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint

	"github.com/askiada/go-describe/internal/stream/measure"
	"github.com/askiada/go-describe/internal/stream/model"
)

const maxRGB = 240

// DOT is a stream hook that records every stage and link and writes them as DOT when the stream finishes.
// When a Timing hook is attached, stages are labelled with their average compute time and edges are coloured
// from blue (fastest) to red (slowest) by the average wait of the child stage.
type DOT struct {
	mu     sync.Mutex
	graph  graph.Graph[string, string]
	out    io.Writer
	timing *measure.Timing
}

// NewDOT returns a hook writing to out. timing may be nil.
func NewDOT(out io.Writer, timing *measure.Timing) *DOT {
	return &DOT{
		graph:  graph.New(graph.StringHash, graph.Directed()),
		out:    out,
		timing: timing,
	}
}

func (d *DOT) addStage(name, shape string) error {
	err := d.graph.AddVertex(name, graph.VertexAttribute("shape", shape))
	if err != nil {
		return errors.Wrapf(err, "unable to add stage %s", name)
	}

	return nil
}

func (d *DOT) addLink(parent, child string) error {
	err := d.graph.AddEdge(parent, child)
	if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
		return errors.Wrapf(err, "unable to link %s to %s", parent, child)
	}

	return nil
}

func (d *DOT) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	err := d.addStage(model.Start.Name, "circle")
	if err != nil {
		return err
	}

	return d.addStage(model.End.Name, "doublecircle")
}

func (d *DOT) PrepareStage(parent, stage *model.StageInfo) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	err := d.addStage(stage.Name, "box")
	if err != nil {
		return err
	}
	err = d.addLink(parent.Name, stage.Name)
	if err != nil {
		return err
	}
	if stage.Kind == model.SinkKind {
		return d.addLink(stage.Name, model.End.Name)
	}

	return nil
}

func (d *DOT) OnOutput(_, _ *model.StageInfo, _, _ time.Duration) error { return nil }

func (d *DOT) AfterSink(_ *model.StageInfo, _ time.Duration) error { return nil }

// Finish annotates the graph with timings, if any, and writes it.
func (d *DOT) Finish() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timing != nil {
		err := d.annotate(d.timing.Stats())
		if err != nil {
			return err
		}
	}

	err := draw.DOT(d.graph, d.out, draw.GraphAttribute("rankdir", "LR"))
	if err != nil {
		return errors.Wrap(err, "unable to write dot graph")
	}

	return nil
}

func (d *DOT) annotate(stats []measure.StageStats) error {
	minWait, maxWait := time.Duration(-1), time.Duration(0)
	for _, st := range stats {
		for _, wait := range st.AvgWait {
			if minWait < 0 || wait < minWait {
				minWait = wait
			}
			if wait > maxWait {
				maxWait = wait
			}
		}
	}

	for _, st := range stats {
		_, properties, err := d.graph.VertexWithProperties(st.Name)
		if err != nil {
			return errors.Wrapf(err, "unable to get stage %s", st.Name)
		}
		label := st.Name
		if st.Count > 0 {
			label += "\\n" + st.AvgCompute.String()
		}
		if st.Total > 0 {
			label += "\\nend: " + st.Total.String()
		}
		properties.Attributes["label"] = label

		for parent, wait := range st.AvgWait {
			colour, err := waitColour(wait, minWait, maxWait)
			if err != nil {
				return err
			}
			err = d.graph.UpdateEdge(parent, st.Name,
				graph.EdgeAttribute("label", wait.String()),
				graph.EdgeAttribute("color", colour),
			)
			if err != nil {
				return errors.Wrapf(err, "unable to update link %s to %s", parent, st.Name)
			}
		}
	}

	return nil
}

// waitColour maps wait linearly from blue at minWait to red at maxWait.
func waitColour(wait, minWait, maxWait time.Duration) (string, error) {
	fraction := 1.0
	if maxWait > minWait {
		fraction = float64(wait-minWait) / float64(maxWait-minWait)
	}

	red := maxRGB * fraction
	blue := maxRGB - red

	rgb, err := colors.RGB(uint8(red), 0, uint8(blue))
	if err != nil {
		return "", errors.Wrap(err, "unable to get colour")
	}

	return rgb.ToHEX().String(), nil
}

var _ model.Hook = (*DOT)(nil)
