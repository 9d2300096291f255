package stream

import (
	"sync"

	"github.com/pkg/errors"
)

var (
	ErrStreamMustBeSet = errors.New("stream must be set")
	ErrInputMustBeSet  = errors.New("input must be set")
	ErrFnMustBeSet     = errors.New("stage function must be set")
)

type errorChans struct {
	mu   sync.Mutex
	list []*errorChan
}

func (ec *errorChans) add(errChan *errorChan) {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	ec.list = append(ec.list, errChan)
}

func (ec *errorChans) all() []*errorChan {
	ec.mu.Lock()
	defer ec.mu.Unlock()

	return append([]*errorChan(nil), ec.list...)
}

// errorChan carries the errors of a single stage.
type errorChan struct {
	c     <-chan error
	stage string
}

func newErrorChan(stage string, c <-chan error) *errorChan {
	return &errorChan{
		c:     c,
		stage: stage,
	}
}

// mergeErrors fans every stage error into a single channel, prefixed with the stage name.
func mergeErrors(cs ...*errorChan) <-chan error {
	var wg sync.WaitGroup
	// One slot per stage so that forwarding never blocks once the reader gave up on the first error.
	out := make(chan error, len(cs))

	forward := func(c *errorChan) {
		defer wg.Done()
		if c.c == nil {
			return
		}
		for err := range c.c {
			out <- errors.Wrap(err, c.stage)
		}
	}
	wg.Add(len(cs))
	for _, c := range cs {
		go forward(c)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}
