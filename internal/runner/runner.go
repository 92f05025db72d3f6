package runner

import (
	"context"
	"sync"
	"time"

	"github.com/truthlayerai-dev/truthlayer-cli/internal/check"
)

// Config holds settings for the batch runner.
type Config struct {
	Threads   int
	RateLimit int // requests per second, 0 = unlimited
}

// CheckFunc performs a single claim check.
type CheckFunc func(ctx context.Context, claim string) check.Outcome

// Runner fans a list of claims out over a bounded worker pool, keeping the
// results in input order.
type Runner struct {
	cfg   Config
	check CheckFunc
}

// New creates a new Runner.
func New(cfg Config, fn CheckFunc) *Runner {
	if cfg.Threads <= 0 {
		cfg.Threads = 1
	}
	return &Runner{cfg: cfg, check: fn}
}

// Run processes claims and returns one outcome per claim, in order.
func (r *Runner) Run(ctx context.Context, claims []string) []check.Outcome {
	out := make([]check.Outcome, len(claims))
	mu := &sync.Mutex{}
	var (
		rateCh <-chan time.Time
		ticker *time.Ticker
	)
	if r.cfg.RateLimit > 0 {
		ticker = time.NewTicker(time.Second / time.Duration(r.cfg.RateLimit))
		rateCh = ticker.C
		defer ticker.Stop()
	}

	type job struct {
		idx   int
		claim string
	}

	jobs := make(chan job)
	wg := sync.WaitGroup{}
	for i := 0; i < r.cfg.Threads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for jb := range jobs {
				if rateCh != nil {
					select {
					case <-ctx.Done():
						return
					case <-rateCh:
					}
				}
				res := r.check(ctx, jb.claim)
				mu.Lock()
				out[jb.idx] = res
				mu.Unlock()
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i, c := range claims {
			select {
			case <-ctx.Done():
				return
			case jobs <- job{idx: i, claim: c}:
			}
		}
	}()

	wg.Wait()
	return out
}
