package rest

import "context"

// Promise is the handle to an in-flight computation started by [Async].
// It resolves exactly once; Get may be called any number of times and
// from multiple goroutines.
type Promise[T any] struct {
	done   chan struct{}
	val    T
	err    error
	cancel context.CancelFunc
}

// Async runs fn on its own goroutine and returns a handle the caller
// resolves when ready. Together with the plain blocking methods this
// gives every operation two entry points over a single implementation:
// call the method directly for blocking semantics, or lift it with
// Async for non-blocking ones.
//
//	p := rest.Async(ctx, func(ctx context.Context) ([]byte, error) {
//		return dl.GetFile(ctx)
//	})
//	// ... other work ...
//	data, err := p.Get()
func Async[T any](ctx context.Context, fn func(context.Context) (T, error)) *Promise[T] {
	ctx, cancel := context.WithCancel(ctx)
	p := &Promise[T]{
		done:   make(chan struct{}),
		cancel: cancel,
	}

	go func() {
		defer cancel()
		p.val, p.err = fn(ctx)
		close(p.done)
	}()

	return p
}

// Done returns a channel that is closed when the computation completes.
func (p *Promise[T]) Done() <-chan struct{} { return p.done }

// Get blocks until the computation completes and returns its outcome.
func (p *Promise[T]) Get() (T, error) {
	<-p.done
	return p.val, p.err
}

// Cancel cancels the computation's context. Get still returns, with
// whatever outcome the cancelled computation produced.
func (p *Promise[T]) Cancel() { p.cancel() }
