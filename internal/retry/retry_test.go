package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestDoSucceedsAfterTransientFailures(t *testing.T) {
	policy := Policy{MaxRetries: 2, InitialInterval: 5 * time.Millisecond, Multiplier: 2}
	attempts := 0

	start := time.Now()
	result, err := Do(context.Background(), zap.NewNop(), "analyze", policy,
		func(ctx context.Context) (string, error) {
			attempts++
			if attempts < 3 {
				return "", errors.New("upstream overloaded")
			}
			return "done", nil
		})
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("expected success on third attempt, got %v", err)
	}
	if result != "done" {
		t.Errorf("unexpected result %q", result)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
	// 5ms then 10ms between attempts.
	if elapsed < 15*time.Millisecond {
		t.Errorf("backoff delays not applied, elapsed %v", elapsed)
	}
}

func TestDoExhaustsBudget(t *testing.T) {
	policy := Policy{MaxRetries: 2, InitialInterval: time.Millisecond, Multiplier: 2}
	attempts := 0
	lastErr := errors.New("still failing")

	_, err := Do(context.Background(), zap.NewNop(), "analyze", policy,
		func(ctx context.Context) (string, error) {
			attempts++
			return "", lastErr
		})

	if !errors.Is(err, lastErr) {
		t.Fatalf("expected the last attempt's error, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 1 initial + 2 retries = 3 attempts, got %d", attempts)
	}
}

func TestNoRetryMakesSingleAttempt(t *testing.T) {
	attempts := 0
	_, err := Do(context.Background(), zap.NewNop(), "rewrite", NoRetry(),
		func(ctx context.Context) (string, error) {
			attempts++
			return "", errors.New("bad request")
		})

	if err == nil {
		t.Fatal("expected error to surface immediately")
	}
	if attempts != 1 {
		t.Errorf("expected exactly 1 attempt, got %d", attempts)
	}
}

func TestDoRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	policy := Policy{MaxRetries: 10, InitialInterval: 50 * time.Millisecond, Multiplier: 2}
	attempts := 0

	_, err := Do(ctx, zap.NewNop(), "research", policy,
		func(ctx context.Context) (string, error) {
			attempts++
			cancel()
			return "", errors.New("transient")
		})

	if err == nil {
		t.Fatal("expected error after cancellation")
	}
	if attempts != 1 {
		t.Errorf("cancellation should stop further attempts, got %d", attempts)
	}
}

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	if p.MaxRetries != 2 {
		t.Errorf("expected 2 retries, got %d", p.MaxRetries)
	}
	if p.InitialInterval != time.Second {
		t.Errorf("expected 1s initial interval, got %v", p.InitialInterval)
	}
	if p.Multiplier != 2 {
		t.Errorf("expected doubling, got %f", p.Multiplier)
	}
}
