// Package app wires configuration into the long-lived pieces shared by the
// CLI and the HTTP server.
package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/youruser/cardsheet/internal/cards"
	"github.com/youruser/cardsheet/internal/config"
	"github.com/youruser/cardsheet/internal/output"
	"github.com/youruser/cardsheet/internal/pipeline"
	"github.com/youruser/cardsheet/internal/source"
	"github.com/youruser/cardsheet/internal/util"
)

// Env is a configured resolver plus what it was built from.
type Env struct {
	Config   *config.Config
	Logger   *zap.Logger
	Catalog  *cards.Catalog // nil when no catalogue is available
	Resolver *source.Resolver
}

// New builds the HTTP client, catalogue, strategies and resolver for cfg.
// A missing catalogue only disables name lookups on code-only sources.
func New(cfg *config.Config, logger *zap.Logger) (*Env, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	env := &Env{Config: cfg, Logger: logger}
	var names source.NameLookup
	if cfg.Catalog.Dir != "" {
		cat, err := cards.LoadCatalog(cfg.Catalog.Dir)
		if err != nil {
			logger.Warn("card catalogue not loaded", zap.String("dir", cfg.Catalog.Dir), zap.Error(err))
		} else {
			logger.Info("card catalogue loaded", zap.Int("cards", cat.Len()))
			env.Catalog = cat
			names = cat
		}
	}

	timeout := cfg.GetTimeout()
	registry := source.NewDefaultRegistry(source.Options{
		Client:        util.NewHTTPClient(cfg.Remote.Concurrency, timeout),
		DotGGBase:     cfg.Remote.DotGGBase,
		LimitlessBase: cfg.Remote.LimitlessBase,
		APIBase:       cfg.Remote.APIBase,
		ScrapeBase:    cfg.Remote.ScrapeBase,
		LocalDir:      cfg.LocalDir,
		Names:         names,
		FetcherOpts: []source.FetcherOption{
			source.WithTimeout(timeout),
			source.WithRetries(cfg.Remote.Retries, source.DefaultBackoff),
		},
		Logger: logger,
	})
	exec := source.NewExecutor(cfg.Remote.Concurrency, logger)
	env.Resolver = source.NewResolver(registry, exec, logger)
	return env, nil
}

// PipelineOptions converts the configuration into run options.
func (e *Env) PipelineOptions() (pipeline.Options, error) {
	cfg := e.Config
	sheet, err := cfg.Layout()
	if err != nil {
		return pipeline.Options{}, err
	}
	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		Source:      cfg.Source,
		Output:      cfg.Output.Mode,
		Format:      format,
		Sheet:       sheet,
		Upscale:     cfg.Image.Upscale,
		MinHeightPx: cfg.Image.MinHeightPx,
		Multiply:    cfg.Options.Multiply,
		ChooseArt:   cfg.Options.ChooseArt,
		DeckQR:      cfg.Options.DeckQR,
	}, nil
}
