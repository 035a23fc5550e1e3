package source

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/youruser/cardsheet/internal/deck"
)

const (
	DotGGBase     = "https://static.dotgg.gg/onepiece/card/"
	LimitlessBase = "https://limitlesstcg.nyc3.cdn.digitaloceanspaces.com/one-piece/"

	minVariant = 1
	maxVariant = 10
)

// TemplateStrategy builds URLs from a card code. It cannot search by name on
// its own; names go through the optional NameLookup.
type TemplateStrategy struct {
	kind    string
	build   func(code string) []string
	fetcher *Fetcher
	names   NameLookup
}

// NewDotGG serves art from the dotgg CDN.
func NewDotGG(base string, f *Fetcher, names NameLookup) *TemplateStrategy {
	if base == "" {
		base = DotGGBase
	}
	return &TemplateStrategy{
		kind:    "dotgg",
		build:   func(code string) []string { return DotGGCandidates(base, code) },
		fetcher: f,
		names:   names,
	}
}

// NewLimitless serves art from the limitless CDN.
func NewLimitless(base string, f *Fetcher, names NameLookup) *TemplateStrategy {
	if base == "" {
		base = LimitlessBase
	}
	return &TemplateStrategy{
		kind:    "limitless",
		build:   func(code string) []string { return LimitlessCandidates(base, code) },
		fetcher: f,
		names:   names,
	}
}

func (s *TemplateStrategy) Kind() string { return s.kind }

func (s *TemplateStrategy) Candidates(_ context.Context, term string) ([]Descriptor, error) {
	if deck.LooksLikeCode(term) {
		return ranked(OriginRemoteTemplate, s.build(normalizeCode(term))), nil
	}
	if s.names == nil {
		return nil, fmt.Errorf("%w: %s only understands card codes, got %q", ErrUnsupported, s.kind, term)
	}
	codes := s.names.CodesByName(term)
	if len(codes) == 0 {
		return nil, fmt.Errorf("%w: no catalogue card named %q", ErrNotFound, term)
	}
	var urls []string
	for _, c := range codes {
		urls = append(urls, s.build(normalizeCode(c))...)
	}
	return ranked(OriginRemoteTemplate, urls), nil
}

func (s *TemplateStrategy) Fetch(ctx context.Context, d Descriptor) Outcome {
	return s.fetcher.Fetch(ctx, d)
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// separatorFamilies returns the code with its own separator followed by the
// underscore form.
func separatorFamilies(code string) []string {
	return []string{code, strings.ReplaceAll(code, "-", "_")}
}

// DotGGCandidates lists plain art then _p1.._p10 for the dash form, then the
// same for the underscore form. Repeats are removed by ranked.
func DotGGCandidates(base, code string) []string {
	var urls []string
	for _, c := range separatorFamilies(code) {
		urls = append(urls, base+c+".webp")
		for i := minVariant; i <= maxVariant; i++ {
			urls = append(urls, fmt.Sprintf("%s%s_p%d.webp", base, c, i))
		}
	}
	return urls
}

var setPrefix = regexp.MustCompile(`^([A-Z]+\d{2})-`)

// LimitlessCandidates places art under a per-set folder with an _EN suffix.
func LimitlessCandidates(base, code string) []string {
	set := strings.SplitN(code, "-", 2)[0]
	if m := setPrefix.FindStringSubmatch(code); m != nil {
		set = m[1]
	}
	dir := base + set + "/"
	var urls []string
	for _, c := range separatorFamilies(code) {
		urls = append(urls, dir+c+"_EN.webp")
		for i := minVariant; i <= maxVariant; i++ {
			urls = append(urls, fmt.Sprintf("%s%s_p%d_EN.webp", dir, c, i))
		}
	}
	return urls
}
