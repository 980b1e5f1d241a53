package async

import (
	"context"

	"github.com/krancour/compute/sdk/meta"
)

// Operation is a single API call yielding a result and the raw response it
// was derived from.
type Operation[T any] func(context.Context) (T, *meta.APIResponse, error)

// Callback receives the outcome of an Operation. When err is non-nil, result
// and response are zero values.
type Callback[T any] func(err error, result T, response *meta.APIResponse)

// Future is the deferred outcome of an Operation. The outcome is published
// exactly once and may be observed any number of times, from any number of
// goroutines.
type Future[T any] struct {
	done     chan struct{}
	result   T
	response *meta.APIResponse
	err      error
}

// Go starts op in its own goroutine and returns a Future for its outcome.
func Go[T any](ctx context.Context, op Operation[T]) *Future[T] {
	f := &Future[T]{
		done: make(chan struct{}),
	}
	go func() {
		defer close(f.done)
		result, response, err := op(ctx)
		if err != nil {
			f.err = err
			return
		}
		f.result = result
		f.response = response
	}()
	return f
}

// Done returns a channel that is closed once the outcome is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the outcome is available or ctx is done, whichever
// comes first. In the latter case, ctx's error is returned and the operation
// itself continues to run under the context it was started with.
func (f *Future[T]) Await(
	ctx context.Context,
) (T, *meta.APIResponse, error) {
	select {
	case <-f.done:
		return f.result, f.response, f.err
	case <-ctx.Done():
		var zero T
		return zero, nil, ctx.Err()
	}
}

// Then arranges for callback to be invoked exactly once, in its own
// goroutine, when the outcome is available.
func (f *Future[T]) Then(callback Callback[T]) {
	go func() {
		<-f.done
		callback(f.err, f.result, f.response)
	}()
}
