package source

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Strategy knows how to find art for one kind of source.
type Strategy interface {
	// Kind is the tag users select the source by, e.g. "dotgg" or "local".
	Kind() string
	// Candidates lists descriptors for term, best first.
	Candidates(ctx context.Context, term string) ([]Descriptor, error)
	// Fetch retrieves one descriptor.
	Fetch(ctx context.Context, d Descriptor) Outcome
}

// NameLookup maps a card name to card codes. The card catalogue implements
// it so code-only sources can still serve name lines.
type NameLookup interface {
	CodesByName(name string) []string
}

// Registry holds strategies keyed by kind.
type Registry struct {
	strategies map[string]Strategy
}

// NewRegistry registers the given strategies.
func NewRegistry(strategies ...Strategy) *Registry {
	r := &Registry{strategies: make(map[string]Strategy, len(strategies))}
	for _, s := range strategies {
		r.Register(s)
	}
	return r
}

// Register adds or replaces the strategy for s.Kind().
func (r *Registry) Register(s Strategy) {
	r.strategies[strings.ToLower(s.Kind())] = s
}

// Lookup returns the strategy for kind.
func (r *Registry) Lookup(kind string) (Strategy, error) {
	s, ok := r.strategies[strings.ToLower(kind)]
	if !ok {
		return nil, fmt.Errorf("%w: unknown source %q", ErrUnsupported, kind)
	}
	return s, nil
}

// Kinds lists the registered source kinds alphabetically.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.strategies))
	for k := range r.strategies {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
