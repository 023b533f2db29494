package rest_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/meridianapi/meridian-go/rest"
)

func TestAsync_MatchesBlockingOutcome(t *testing.T) {
	fn := func(ctx context.Context) (string, error) {
		return "result", nil
	}

	direct, directErr := fn(context.Background())
	async, asyncErr := rest.Async(context.Background(), fn).Get()

	if direct != async || !errors.Is(asyncErr, directErr) {
		t.Errorf("expected identical outcomes, got (%q, %v) and (%q, %v)",
			direct, directErr, async, asyncErr)
	}
}

func TestAsync_PropagatesError(t *testing.T) {
	failure := errors.New("backend rejected the call")

	p := rest.Async(context.Background(), func(ctx context.Context) (int, error) {
		return 0, failure
	})

	if _, err := p.Get(); !errors.Is(err, failure) {
		t.Errorf("expected %v, got: %v", failure, err)
	}
}

func TestAsync_GetIsRepeatable(t *testing.T) {
	calls := 0
	p := rest.Async(context.Background(), func(ctx context.Context) (int, error) {
		calls++
		return 42, nil
	})

	for i := 0; i < 3; i++ {
		if v, err := p.Get(); v != 42 || err != nil {
			t.Errorf("expected (42, nil), got (%d, %v)", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("expected the computation to run once, ran %d times", calls)
	}
}

func TestAsync_Cancel(t *testing.T) {
	p := rest.Async(context.Background(), func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})

	p.Cancel()

	select {
	case <-p.Done():
	case <-time.After(time.Second):
		t.Fatal("expected cancellation to resolve the promise")
	}

	if _, err := p.Get(); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got: %v", err)
	}
}
