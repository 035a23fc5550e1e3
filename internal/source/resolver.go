package source

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// Mode selects how many descriptors the resolver probes.
type Mode int

const (
	// ModeFirst stops at the first descriptor, in rank order, that succeeds.
	ModeFirst Mode = iota
	// ModeExhaustive probes everything and returns all successes.
	ModeExhaustive
)

func (m Mode) String() string {
	if m == ModeExhaustive {
		return "exhaustive"
	}
	return "first"
}

// Resolver drives a strategy and the executor for one term.
type Resolver struct {
	registry *Registry
	exec     *Executor
	logger   *zap.Logger
}

// NewResolver ties a registry to an executor.
func NewResolver(registry *Registry, exec *Executor, logger *zap.Logger) *Resolver {
	if exec == nil {
		exec = NewExecutor(DefaultConcurrency, logger)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{registry: registry, exec: exec, logger: logger}
}

// Registry exposes the strategies the resolver knows.
func (r *Resolver) Registry() *Registry { return r.registry }

// Resolve returns the variants available for term on the source named kind,
// in candidate rank order. It fails with ErrNotFound when nothing was fetched
// and ErrUnsupported when the source cannot handle the term.
func (r *Resolver) Resolve(ctx context.Context, kind, term string, mode Mode) ([]Variant, error) {
	s, err := r.registry.Lookup(kind)
	if err != nil {
		return nil, err
	}
	ds, err := s.Candidates(ctx, term)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(ds, func(i, j int) bool { return ds[i].Rank < ds[j].Rank })
	r.logger.Debug("candidates generated",
		zap.String("source", kind),
		zap.String("term", term),
		zap.Int("count", len(ds)),
		zap.Stringer("mode", mode))

	var variants []Variant
	switch mode {
	case ModeExhaustive:
		outcomes := r.exec.Run(ctx, s, ds)
		sort.SliceStable(outcomes, func(i, j int) bool {
			return outcomes[i].Descriptor.Rank < outcomes[j].Descriptor.Rank
		})
		for _, o := range outcomes {
			if o.OK() {
				variants = append(variants, o.Variant)
			}
		}
	default:
		for _, d := range ds {
			if o := s.Fetch(ctx, d); o.OK() {
				variants = []Variant{o.Variant}
				break
			}
		}
	}
	if len(variants) == 0 {
		return nil, fmt.Errorf("%w: no image for %q on %s", ErrNotFound, term, kind)
	}
	return variants, nil
}
