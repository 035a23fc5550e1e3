package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestLocalCandidatesByCode(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "set5", "op05-067_p2.png"))
	touch(t, filepath.Join(dir, "OP05-067_p1.webp"))
	touch(t, filepath.Join(dir, "alt", "OP05-067.jpg"))
	touch(t, filepath.Join(dir, "OP05-067.txt"))
	touch(t, filepath.Join(dir, "OP05-068.png"))

	ds, err := NewLocal(dir, NewFetcher(nil)).Candidates(context.Background(), "op05-067")
	require.NoError(t, err)

	var names []string
	for _, d := range ds {
		assert.Equal(t, OriginLocalFile, d.Origin)
		names = append(names, filepath.Base(d.Locator))
	}
	assert.Equal(t, []string{"OP05-067.jpg", "OP05-067_p1.webp", "op05-067_p2.png"}, names)
}

func TestLocalCandidatesByName(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "Kuzan_b.png"))
	touch(t, filepath.Join(dir, "kuzan.png"))
	touch(t, filepath.Join(dir, "Nami.png"))

	ds, err := NewLocal(dir, NewFetcher(nil)).Candidates(context.Background(), "Kuzan")
	require.NoError(t, err)
	require.Len(t, ds, 2)
	assert.Equal(t, "kuzan.png", filepath.Base(ds[0].Locator))
	assert.Equal(t, "Kuzan_b.png", filepath.Base(ds[1].Locator))
}

func TestLocalMissingRoot(t *testing.T) {
	ds, err := NewLocal(filepath.Join(t.TempDir(), "nope"), NewFetcher(nil)).Candidates(context.Background(), "OP01-001")
	require.NoError(t, err)
	assert.Empty(t, ds)
}
