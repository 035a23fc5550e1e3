package source

import (
	"net/http"

	"go.uber.org/zap"
)

// Options configures the standard set of strategies.
type Options struct {
	Client        *http.Client
	DotGGBase     string
	LimitlessBase string
	APIBase       string
	ScrapeBase    string
	LocalDir      string
	Names         NameLookup
	Match         MatchPolicy
	FetcherOpts   []FetcherOption
	Logger        *zap.Logger
}

// NewDefaultRegistry registers dotgg, limitless, api, scrape and local,
// all sharing one Fetcher around opts.Client.
func NewDefaultRegistry(opts Options) *Registry {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	fopts := append([]FetcherOption{WithLogger(logger)}, opts.FetcherOpts...)
	f := NewFetcher(opts.Client, fopts...)
	return NewRegistry(
		NewDotGG(opts.DotGGBase, f, opts.Names),
		NewLimitless(opts.LimitlessBase, f, opts.Names),
		NewAPI(opts.APIBase, f),
		NewScrape(opts.ScrapeBase, f, opts.Match),
		NewLocal(opts.LocalDir, f),
	)
}
