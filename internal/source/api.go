package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/youruser/cardsheet/internal/deck"
)

// apiCard is one entry of the card API's search response.
type apiCard struct {
	SetID string `json:"card_set_id"`
	Name  string `json:"card_name"`
	Image string `json:"card_image"`
}

// APIStrategy asks a structured card API for image URLs.
//
//	GET {base}/cards/search?name=<q>  -> [apiCard...]
//	GET {base}/cards/{CODE}           -> apiCard or [apiCard...]
type APIStrategy struct {
	base    string
	fetcher *Fetcher
}

// NewAPI returns an APIStrategy rooted at base.
func NewAPI(base string, f *Fetcher) *APIStrategy {
	return &APIStrategy{base: strings.TrimRight(base, "/"), fetcher: f}
}

func (s *APIStrategy) Kind() string { return "api" }

func (s *APIStrategy) Candidates(ctx context.Context, term string) ([]Descriptor, error) {
	if s.base == "" {
		return nil, fmt.Errorf("%w: api source has no base URL configured", ErrUnsupported)
	}
	var endpoint string
	if deck.LooksLikeCode(term) {
		endpoint = s.base + "/cards/" + url.PathEscape(normalizeCode(term))
	} else {
		endpoint = s.base + "/cards/search?name=" + url.QueryEscape(strings.TrimSpace(term))
	}
	body, err := s.fetcher.Get(ctx, endpoint, acceptJSON)
	if err != nil {
		return nil, fmt.Errorf("querying card API: %w", err)
	}
	cards, err := decodeAPICards(body)
	if err != nil {
		return nil, err
	}
	urls := make([]string, 0, len(cards))
	for _, c := range cards {
		urls = append(urls, c.Image)
	}
	return ranked(OriginRemoteTemplate, urls), nil
}

func (s *APIStrategy) Fetch(ctx context.Context, d Descriptor) Outcome {
	return s.fetcher.Fetch(ctx, d)
}

// decodeAPICards accepts either a single object or an array.
func decodeAPICards(body []byte) ([]apiCard, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var one apiCard
		if err := json.Unmarshal(trimmed, &one); err != nil {
			return nil, fmt.Errorf("decoding card API response: %w", err)
		}
		return []apiCard{one}, nil
	}
	var many []apiCard
	if err := json.Unmarshal(trimmed, &many); err != nil {
		return nil, fmt.Errorf("decoding card API response: %w", err)
	}
	return many, nil
}
