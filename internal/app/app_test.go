package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youruser/cardsheet/internal/config"
	"github.com/youruser/cardsheet/internal/output"
	"github.com/youruser/cardsheet/internal/pipeline"
	"github.com/youruser/cardsheet/internal/source"
)

func TestNewRegistersEverySource(t *testing.T) {
	cfg := config.Default()
	cfg.Catalog.Dir = filepath.Join(t.TempDir(), "missing")

	env, err := New(cfg, nil)
	require.NoError(t, err)
	assert.Nil(t, env.Catalog)
	assert.Equal(t, []string{"api", "dotgg", "limitless", "local", "scrape"}, env.Resolver.Registry().Kinds())
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Mode = "poster"
	_, err := New(cfg, nil)
	assert.Error(t, err)
}

func TestNewResolvesLocal(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "OP01-001.png"), []byte("png"), 0o644))
	cfg := config.Default()
	cfg.Source = "local"
	cfg.LocalDir = dir
	cfg.Catalog.Dir = ""

	env, err := New(cfg, nil)
	require.NoError(t, err)
	vs, err := env.Resolver.Resolve(context.Background(), "local", "op01-001", source.ModeFirst)
	require.NoError(t, err)
	require.Len(t, vs, 1)
	assert.Equal(t, []byte("png"), vs[0].Bytes)
}

func TestPipelineOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Format = "JPEG"
	cfg.Options.DeckQR = true
	env, err := New(cfg, nil)
	require.NoError(t, err)

	opts, err := env.PipelineOptions()
	require.NoError(t, err)
	assert.Equal(t, output.FormatJPG, opts.Format)
	assert.Equal(t, pipeline.ModeSheet, opts.Output)
	assert.Equal(t, 300, opts.Sheet.DPI)
	assert.True(t, opts.Multiply)
	assert.True(t, opts.ChooseArt)
	assert.True(t, opts.DeckQR)
}
