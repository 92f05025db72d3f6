package runner_test

import (
	"context"
	"testing"
	"time"

	"github.com/truthlayerai-dev/truthlayer-cli/internal/check"
	"github.com/truthlayerai-dev/truthlayer-cli/internal/model"
	"github.com/truthlayerai-dev/truthlayer-cli/internal/runner"
)

func TestRunKeepsInputOrder(t *testing.T) {
	claims := []string{"claim a", "claim b", "claim c", "claim d"}
	fn := func(ctx context.Context, claim string) check.Outcome {
		return check.Outcome{Result: &model.NormalizedResult{Verdict: claim}}
	}

	r := runner.New(runner.Config{Threads: 3}, fn)
	outcomes := r.Run(context.Background(), claims)
	if len(outcomes) != len(claims) {
		t.Fatalf("expected %d outcomes, got %d", len(claims), len(outcomes))
	}
	for i, out := range outcomes {
		if out.Result == nil || out.Result.Verdict != claims[i] {
			t.Fatalf("outcome %d out of order: %+v", i, out)
		}
	}
}

func TestRunRateLimitedCancelReturns(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fn := func(ctx context.Context, claim string) check.Outcome {
		return check.Outcome{}
	}
	r := runner.New(runner.Config{Threads: 2, RateLimit: 1}, fn)

	claims := make([]string, 16)
	for i := range claims {
		claims[i] = "claim"
	}

	done := make(chan struct{})
	go func() {
		r.Run(ctx, claims)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}

func TestRunZeroThreadsDefaultsToOne(t *testing.T) {
	called := 0
	fn := func(ctx context.Context, claim string) check.Outcome {
		called++
		return check.Outcome{}
	}
	r := runner.New(runner.Config{}, fn)
	r.Run(context.Background(), []string{"one", "two"})
	if called != 2 {
		t.Fatalf("expected both claims checked, got %d", called)
	}
}
