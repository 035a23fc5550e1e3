package source

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/youruser/cardsheet/internal/cards"
)

// MatchPolicy decides whether an image filename answers a search query.
type MatchPolicy func(query, filename string) bool

// ScrapeStrategy searches an HTML card database and harvests image URLs from
// the result page.
type ScrapeStrategy struct {
	base    string
	fetcher *Fetcher
	match   MatchPolicy
}

// NewScrape returns a ScrapeStrategy searching base with "?s=<query>".
// A nil match uses cards.MatchKeywords.
func NewScrape(base string, f *Fetcher, match MatchPolicy) *ScrapeStrategy {
	if match == nil {
		match = cards.MatchKeywords
	}
	return &ScrapeStrategy{base: strings.TrimRight(base, "/"), fetcher: f, match: match}
}

func (s *ScrapeStrategy) Kind() string { return "scrape" }

func (s *ScrapeStrategy) Candidates(ctx context.Context, term string) ([]Descriptor, error) {
	if s.base == "" {
		return nil, fmt.Errorf("%w: scrape source has no base URL configured", ErrUnsupported)
	}
	query := strings.TrimSpace(term)
	searchURL := s.base + "/?s=" + url.QueryEscape(query)
	doc, err := s.document(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", s.base, err)
	}
	pageURL, _ := url.Parse(searchURL)

	var urls []string
	for _, raw := range imageURLs(doc, pageURL) {
		full := FullResolution(raw)
		name := fileName(full)
		if IsDerivative(name) || !s.match(query, name) {
			continue
		}
		urls = append(urls, full)
	}
	if len(urls) > 0 {
		return ranked(OriginRemoteScrape, urls), nil
	}

	// Nothing matched by filename: take the primary image of the first hit.
	first := firstResultLink(doc, pageURL)
	if first == "" {
		return nil, nil
	}
	resultDoc, err := s.document(ctx, first)
	if err != nil {
		return nil, fmt.Errorf("opening first result: %w", err)
	}
	resultURL, _ := url.Parse(first)
	if img := primaryImage(resultDoc, resultURL); img != "" {
		return ranked(OriginRemoteScrape, []string{FullResolution(img)}), nil
	}
	return nil, nil
}

func (s *ScrapeStrategy) Fetch(ctx context.Context, d Descriptor) Outcome {
	return s.fetcher.Fetch(ctx, d)
}

func (s *ScrapeStrategy) document(ctx context.Context, u string) (*goquery.Document, error) {
	body, err := s.fetcher.Get(ctx, u, acceptHTML)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

// thumbSuffix matches WordPress-style size suffixes: name-300x419.png.
var thumbSuffix = regexp.MustCompile(`-\d+x\d+(\.[A-Za-z0-9]+)$`)

// FullResolution rewrites a thumbnail URL to the unsuffixed original.
func FullResolution(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return thumbSuffix.ReplaceAllString(raw, "$1")
	}
	u.Path = thumbSuffix.ReplaceAllString(u.Path, "$1")
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

var derivativeTag = regexp.MustCompile(`(?i)(^|[-_.])(crop|cropped|thumb|thumbnail)([-_.]|$)`)

// IsDerivative reports whether a filename is tagged as a crop or thumbnail.
func IsDerivative(name string) bool {
	return derivativeTag.MatchString(name)
}

func fileName(raw string) string {
	if u, err := url.Parse(raw); err == nil {
		return path.Base(u.Path)
	}
	return path.Base(raw)
}

var imageExt = map[string]bool{".png": true, ".webp": true, ".jpg": true, ".jpeg": true}

// imageURLs collects absolute image URLs from src, data-src and srcset.
func imageURLs(doc *goquery.Document, base *url.URL) []string {
	var out []string
	add := func(ref string) {
		ref = strings.TrimSpace(ref)
		if ref == "" || strings.HasPrefix(ref, "data:") {
			return
		}
		abs := resolve(base, ref)
		if abs != "" && imageExt[strings.ToLower(path.Ext(fileName(abs)))] {
			out = append(out, abs)
		}
	}
	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		for _, attr := range []string{"src", "data-src", "data-lazy-src"} {
			if v, ok := sel.Attr(attr); ok {
				add(v)
			}
		}
		if set, ok := sel.Attr("srcset"); ok {
			for _, entry := range strings.Split(set, ",") {
				fields := strings.Fields(entry)
				if len(fields) > 0 {
					add(fields[0])
				}
			}
		}
	})
	return out
}

func firstResultLink(doc *goquery.Document, base *url.URL) string {
	for _, sel := range []string{"article a[href]", ".search-result a[href]", "h2 a[href]"} {
		if href, ok := doc.Find(sel).First().Attr("href"); ok {
			if abs := resolve(base, href); abs != "" {
				return abs
			}
		}
	}
	return ""
}

func primaryImage(doc *goquery.Document, base *url.URL) string {
	if og, ok := doc.Find(`meta[property="og:image"]`).First().Attr("content"); ok && og != "" {
		return resolve(base, og)
	}
	for _, sel := range []string{"article img", "main img", "img"} {
		if src, ok := doc.Find(sel).First().Attr("src"); ok && src != "" {
			return resolve(base, src)
		}
	}
	return ""
}

func resolve(base *url.URL, ref string) string {
	parsed, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if base == nil {
		return parsed.String()
	}
	return base.ResolveReference(parsed).String()
}
