package stream

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/go-describe/internal/stream/model"
)

// StageOption configures a map or flat-map stage.
type StageOption func(info *model.StageInfo)

// WithConcurrency sets how many goroutines consume the input of a stage. Values below 1 mean 1.
func WithConcurrency(concurrency int) StageOption {
	return func(info *model.StageInfo) {
		info.Concurrency = concurrency
	}
}

// AddSource adds a stage that produces values by sending them to out. out is closed when fn returns.
// fn must stop sending when ctx is done.
func AddSource[O any](s *Stream, name string, fn func(ctx context.Context, out chan<- O) error) (*model.Stage[O], error) {
	if s == nil {
		return nil, ErrStreamMustBeSet
	}
	if fn == nil {
		return nil, ErrFnMustBeSet
	}

	info := &model.StageInfo{Kind: model.SourceKind, Name: name, Concurrency: 1}
	err := s.prepare(model.Start, info)
	if err != nil {
		return nil, err
	}

	output := make(chan O)
	errC := make(chan error, 1)
	s.errcList.add(newErrorChan(name, errC))

	go func() {
		defer func() {
			close(output)
			close(errC)
		}()
		err := fn(s.ctx, output)
		if err != nil {
			errC <- err
		}
	}()

	return &model.Stage[O]{Output: output, Info: info}, nil
}

// AddMap adds a stage that turns every input value into exactly one output value.
func AddMap[I, O any](s *Stream, name string, input *model.Stage[I], fn func(ctx context.Context, in I) (O, error), opts ...StageOption) (*model.Stage[O], error) {
	if fn == nil {
		return nil, ErrFnMustBeSet
	}

	return addTransform(s, model.MapKind, name, input, func(ctx context.Context, in I) ([]O, error) {
		out, err := fn(ctx, in)
		if err != nil {
			return nil, err
		}

		return []O{out}, nil
	}, opts...)
}

// AddFlatMap adds a stage that turns every input value into zero or more output values.
func AddFlatMap[I, O any](s *Stream, name string, input *model.Stage[I], fn func(ctx context.Context, in I) ([]O, error), opts ...StageOption) (*model.Stage[O], error) {
	if fn == nil {
		return nil, ErrFnMustBeSet
	}

	return addTransform(s, model.FlatMapKind, name, input, fn, opts...)
}

func addTransform[I, O any](s *Stream, kind model.StageKind, name string, input *model.Stage[I], fn func(context.Context, I) ([]O, error), opts ...StageOption) (*model.Stage[O], error) {
	if s == nil {
		return nil, ErrStreamMustBeSet
	}
	if input == nil {
		return nil, ErrInputMustBeSet
	}

	info := &model.StageInfo{Kind: kind, Name: name, Concurrency: 1}
	for _, opt := range opts {
		opt(info)
	}
	if info.Concurrency < 1 {
		info.Concurrency = 1
	}

	err := s.prepare(parentInfo(input), info)
	if err != nil {
		return nil, err
	}

	output := make(chan O)
	errC := make(chan error, 1)
	s.errcList.add(newErrorChan(name, errC))

	go func() {
		defer func() {
			close(output)
			close(errC)
		}()
		err := runTransform(s, input, info, output, fn)
		if err != nil {
			errC <- err
		}
	}()

	return &model.Stage[O]{Output: output, Info: info}, nil
}

func parentInfo[I any](input *model.Stage[I]) *model.StageInfo {
	if input.Info == nil {
		return model.Start
	}

	return input.Info
}

func runTransform[I, O any](s *Stream, input *model.Stage[I], info *model.StageInfo, output chan<- O, fn func(context.Context, I) ([]O, error)) error {
	if info.Concurrency == 1 {
		return consume(s.ctx, s, 0, input, info, output, fn)
	}

	errGrp, dCtx := errgroup.WithContext(s.ctx)
	// each consumer stops as soon as one of them fails
	for goIdx := 0; goIdx < info.Concurrency; goIdx++ {
		localGoIdx := goIdx
		errGrp.Go(func() error {
			return consume(dCtx, s, localGoIdx, input, info, output, fn)
		})
	}

	return errGrp.Wait()
}

func consume[I, O any](ctx context.Context, s *Stream, goIdx int, input *model.Stage[I], info *model.StageInfo, output chan<- O, fn func(context.Context, I) ([]O, error)) error {
	parent := parentInfo(input)
	for {
		start := time.Now()
		select {
		case <-ctx.Done():
			return errors.Wrapf(ctx.Err(), "goroutine %d", goIdx)
		case in, ok := <-input.Output:
			if !ok {
				return nil
			}
			wait := time.Since(start)

			startFn := time.Now()
			outs, err := fn(ctx, in)
			if err != nil {
				return errors.Wrapf(err, "goroutine %d", goIdx)
			}
			compute := time.Since(startFn)

			for _, out := range outs {
				// check the context again so that no goroutine keeps feeding a cancelled stream
				select {
				case <-ctx.Done():
					return errors.Wrapf(ctx.Err(), "goroutine %d", goIdx)
				case output <- out:
				}
			}

			err = s.output(parent, info, wait, compute)
			if err != nil {
				return err
			}
		}
	}
}

// AddSink adds a final stage that calls fn for every value of input.
func AddSink[I any](s *Stream, name string, input *model.Stage[I], fn func(ctx context.Context, in I) error) error {
	if s == nil {
		return ErrStreamMustBeSet
	}
	if input == nil {
		return ErrInputMustBeSet
	}
	if fn == nil {
		return ErrFnMustBeSet
	}

	info := &model.StageInfo{Kind: model.SinkKind, Name: name, Concurrency: 1}
	parent := parentInfo(input)
	err := s.prepare(parent, info)
	if err != nil {
		return err
	}

	errC := make(chan error, 1)
	s.errcList.add(newErrorChan(name, errC))

	go func() {
		defer close(errC)
		err := drain(s, parent, info, input.Output, fn)
		if err != nil {
			errC <- err

			return
		}
		err = s.afterSink(info)
		if err != nil {
			errC <- err
		}
	}()

	return nil
}

func drain[I any](s *Stream, parent, info *model.StageInfo, input <-chan I, fn func(context.Context, I) error) error {
	for {
		start := time.Now()
		select {
		case <-s.ctx.Done():
			return s.ctx.Err()
		case in, ok := <-input:
			if !ok {
				return nil
			}
			wait := time.Since(start)

			startFn := time.Now()
			err := fn(s.ctx, in)
			if err != nil {
				return err
			}

			err = s.output(parent, info, wait, time.Since(startFn))
			if err != nil {
				return err
			}
		}
	}
}
