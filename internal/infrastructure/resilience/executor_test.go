package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errFlaky = errors.New("flaky downstream")

func retryAlways(error) Verdict { return Verdict{Retry: true, CountAsFailure: true} }

func testConfig() Config {
	return Config{
		RetryMaxAttempts:    3,
		RetryInitialBackoff: time.Millisecond,
		RetryMaxBackoff:     2 * time.Millisecond,
		RetryMultiplier:     2.0,
		BreakerEnabled:      false,
	}
}

func TestDoRetriesUntilSuccess(t *testing.T) {
	executor := NewExecutor(testConfig(), nil)

	calls := 0
	err := executor.Do(context.Background(), "op", func(context.Context) error {
		calls++
		if calls < 3 {
			return errFlaky
		}
		return nil
	}, retryAlways)

	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
}

func TestDoStopsOnNonRetryable(t *testing.T) {
	executor := NewExecutor(testConfig(), nil)

	calls := 0
	err := executor.Do(context.Background(), "op", func(context.Context) error {
		calls++
		return errFlaky
	}, neverRetry)

	if !errors.Is(err, errFlaky) {
		t.Fatalf("Do() error = %v, want %v", err, errFlaky)
	}
	if calls != 1 {
		t.Fatalf("non-retryable failure must not be retried, got %d calls", calls)
	}
}

func TestDoExhaustsAttempts(t *testing.T) {
	executor := NewExecutor(testConfig(), nil)

	calls := 0
	err := executor.Do(context.Background(), "op", func(context.Context) error {
		calls++
		return errFlaky
	}, retryAlways)

	if !errors.Is(err, errFlaky) {
		t.Fatalf("Do() error = %v, want %v", err, errFlaky)
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
}

func TestDoHonorsCanceledContext(t *testing.T) {
	executor := NewExecutor(testConfig(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := executor.Do(ctx, "op", func(context.Context) error {
		calls++
		return errFlaky
	}, retryAlways)

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Do() error = %v, want context.Canceled", err)
	}
	if calls != 0 {
		t.Fatalf("canceled context must prevent the call, got %d calls", calls)
	}
}

func TestBreakerOpensAfterRepeatedFailures(t *testing.T) {
	cfg := testConfig()
	cfg.BreakerEnabled = true
	cfg.BreakerMinRequests = 2
	cfg.BreakerFailureRatio = 0.5
	cfg.BreakerOpenTimeout = time.Minute
	cfg.RetryMaxAttempts = 1
	executor := NewExecutor(cfg, nil)

	for i := 0; i < 2; i++ {
		_ = executor.Do(context.Background(), "op", func(context.Context) error {
			return errFlaky
		}, neverRetry)
	}

	err := executor.Do(context.Background(), "op", func(context.Context) error {
		t.Fatal("call must not reach the callback while the breaker is open")
		return nil
	}, neverRetry)

	if !IsCircuitOpen(err) {
		t.Fatalf("expected open-circuit error, got %v", err)
	}
}
