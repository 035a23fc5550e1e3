package source

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/youruser/cardsheet/internal/deck"
)

// ImageExts are the file extensions the local source considers.
var ImageExts = map[string]bool{".png": true, ".webp": true, ".jpg": true, ".jpeg": true, ".bmp": true}

// exactExts are the extensions for which "CODE.ext" counts as the plain art.
var exactExts = []string{".png", ".webp", ".jpg", ".jpeg"}

// LocalStrategy finds art in a directory tree.
type LocalStrategy struct {
	root    string
	fetcher *Fetcher
}

// NewLocal searches below root.
func NewLocal(root string, f *Fetcher) *LocalStrategy {
	return &LocalStrategy{root: root, fetcher: f}
}

func (s *LocalStrategy) Kind() string { return "local" }

// Candidates returns matching files. A missing root yields no candidates.
func (s *LocalStrategy) Candidates(_ context.Context, term string) ([]Descriptor, error) {
	if info, err := os.Stat(s.root); err != nil || !info.IsDir() {
		return nil, nil
	}
	needle := strings.ToUpper(strings.TrimSpace(term))
	hits, err := walkImages(s.root, needle)
	if err != nil {
		return nil, err
	}
	exact := deck.LooksLikeCode(term)
	sort.SliceStable(hits, func(i, j int) bool {
		ni, nj := strings.ToUpper(filepath.Base(hits[i])), strings.ToUpper(filepath.Base(hits[j]))
		if exact {
			pi, pj := isPlain(ni, needle), isPlain(nj, needle)
			if pi != pj {
				return pi
			}
		}
		return ni < nj
	})
	return ranked(OriginLocalFile, hits), nil
}

func (s *LocalStrategy) Fetch(ctx context.Context, d Descriptor) Outcome {
	return s.fetcher.Fetch(ctx, d)
}

func walkImages(root, needle string) ([]string, error) {
	var hits []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, not fatal.
			if d != nil && d.IsDir() && p != root {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if !ImageExts[strings.ToLower(filepath.Ext(name))] {
			return nil
		}
		if strings.Contains(strings.ToUpper(name), needle) {
			hits = append(hits, p)
		}
		return nil
	})
	return hits, err
}

func isPlain(upperName, code string) bool {
	for _, ext := range exactExts {
		if upperName == code+strings.ToUpper(ext) {
			return true
		}
	}
	return false
}
