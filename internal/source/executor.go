package source

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of remote fetches allowed in flight.
const DefaultConcurrency = 16

// Executor fetches a batch of descriptors. Remote descriptors run
// concurrently up to the ceiling; local ones are read in the caller's
// goroutine. Every dispatched descriptor finishes before Run returns.
type Executor struct {
	concurrency int
	logger      *zap.Logger
}

// NewExecutor returns an Executor. concurrency <= 0 means DefaultConcurrency.
func NewExecutor(concurrency int, logger *zap.Logger) *Executor {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{concurrency: concurrency, logger: logger}
}

// Run fetches every descriptor with s. outcomes[i] belongs to ds[i]
// whatever order the fetches completed in.
func (e *Executor) Run(ctx context.Context, s Strategy, ds []Descriptor) []Outcome {
	outcomes := make([]Outcome, len(ds))

	var g errgroup.Group
	g.SetLimit(e.concurrency)
	remote := 0
	for i, d := range ds {
		if !d.Origin.Remote() {
			outcomes[i] = s.Fetch(ctx, d)
			continue
		}
		remote++
		i, d := i, d
		g.Go(func() error {
			outcomes[i] = s.Fetch(ctx, d)
			return nil
		})
	}
	_ = g.Wait()

	ok := 0
	for _, o := range outcomes {
		if o.OK() {
			ok++
		}
	}
	e.logger.Debug("batch fetched",
		zap.String("source", s.Kind()),
		zap.Int("descriptors", len(ds)),
		zap.Int("remote", remote),
		zap.Int("succeeded", ok))
	return outcomes
}
