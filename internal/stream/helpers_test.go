package stream_test

import (
	"context"
	"testing"

	"github.com/askiada/go-describe/internal/stream/model"
)

func inputStage(t *testing.T, total int) *model.Stage[int] {
	t.Helper()

	inputChan := make(chan int)

	go func() {
		defer close(inputChan)

		for i := 0; i < total; i++ {
			inputChan <- i
		}
	}()

	return &model.Stage[int]{Output: inputChan}
}

func inputStageWithCancel(t *testing.T, total int, offset int, cancel context.CancelFunc) *model.Stage[int] {
	t.Helper()

	inputChan := make(chan int)

	go func() {
		defer close(inputChan)

		for i := 0; i < total; i++ {
			if i == offset {
				cancel()
			}

			inputChan <- i
		}
	}()

	return &model.Stage[int]{Output: inputChan}
}

func collect(t *testing.T, output <-chan int) <-chan []int {
	t.Helper()

	done := make(chan []int, 1)

	go func() {
		res := []int{}
		for out := range output {
			res = append(res, out)
		}
		done <- res
	}()

	return done
}
