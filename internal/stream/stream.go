package stream

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-describe/internal/stream/model"
)

// Stream is a set of stages connected by channels.
type Stream struct {
	ctx       context.Context
	cancel    context.CancelFunc
	errcList  *errorChans
	hooks     []model.Hook
	startTime time.Time
}

// New creates a stream whose stages stop when ctx is done.
func New(ctx context.Context, hooks ...model.Hook) (*Stream, error) {
	dCtx, cancel := context.WithCancel(ctx)
	s := &Stream{
		ctx:       dCtx,
		cancel:    cancel,
		errcList:  &errorChans{},
		hooks:     hooks,
		startTime: time.Now(),
	}

	for _, hook := range hooks {
		err := hook.Start()
		if err != nil {
			cancel()

			return nil, errors.Wrap(err, "unable to start stream hook")
		}
	}

	return s, nil
}

// Run waits for every stage to finish. It returns early on the first error and cancels the remaining stages.
func (s *Stream) Run() error {
	defer s.cancel()

	err := waitForStream(s.errcList.all()...)
	if err != nil {
		return err
	}

	for _, hook := range s.hooks {
		err := hook.Finish()
		if err != nil {
			return errors.Wrap(err, "unable to finish stream hook")
		}
	}

	return nil
}

func waitForStream(errs ...*errorChan) error {
	for err := range mergeErrors(errs...) {
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *Stream) prepare(parent, stage *model.StageInfo) error {
	for _, hook := range s.hooks {
		err := hook.PrepareStage(parent, stage)
		if err != nil {
			return errors.Wrapf(err, "unable to prepare stage %s", stage.Name)
		}
	}

	return nil
}

func (s *Stream) output(parent, stage *model.StageInfo, wait, compute time.Duration) error {
	for _, hook := range s.hooks {
		err := hook.OnOutput(parent, stage, wait, compute)
		if err != nil {
			return errors.Wrapf(err, "unable to record output of stage %s", stage.Name)
		}
	}

	return nil
}

func (s *Stream) afterSink(stage *model.StageInfo) error {
	for _, hook := range s.hooks {
		err := hook.AfterSink(stage, time.Since(s.startTime))
		if err != nil {
			return errors.Wrapf(err, "unable to close sink %s", stage.Name)
		}
	}

	return nil
}
