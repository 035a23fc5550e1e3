// Package source turns a deck-list term into card art. Strategies generate
// ranked fetch descriptors for one kind of source, the Executor fetches them
// under a concurrency ceiling and the Resolver puts the results back in rank
// order.
package source

// Origin says how a descriptor is fetched.
type Origin int

const (
	OriginRemoteTemplate Origin = iota // URL built from a template or returned by an API
	OriginRemoteScrape                 // URL found on a scraped HTML page
	OriginLocalFile                    // path on local disk
)

func (o Origin) String() string {
	switch o {
	case OriginRemoteTemplate:
		return "remote-template"
	case OriginRemoteScrape:
		return "remote-scrape"
	case OriginLocalFile:
		return "local-file"
	default:
		return "unknown"
	}
}

// Remote reports whether the descriptor needs the network.
func (o Origin) Remote() bool { return o != OriginLocalFile }

// Descriptor is one hypothesized location of a card image. Lower Rank means
// higher confidence.
type Descriptor struct {
	Origin  Origin `json:"origin"`
	Locator string `json:"locator"`
	Rank    int    `json:"rank"`
}

// Variant is a fetched image. Bytes must not be modified once returned.
type Variant struct {
	Locator string `json:"locator"`
	Bytes   []byte `json:"-"`
}

// Outcome is the result of fetching a single descriptor. Exactly one of
// Variant and Err is set.
type Outcome struct {
	Descriptor Descriptor
	Variant    Variant
	Err        error
}

// OK reports whether the fetch produced an image.
func (o Outcome) OK() bool { return o.Err == nil }

func succeeded(d Descriptor, data []byte) Outcome {
	return Outcome{Descriptor: d, Variant: Variant{Locator: d.Locator, Bytes: data}}
}

func failed(d Descriptor, err error) Outcome {
	return Outcome{Descriptor: d, Err: err}
}

// ranked turns locators into descriptors, dropping repeats but keeping the
// first-seen order.
func ranked(origin Origin, locators []string) []Descriptor {
	seen := make(map[string]bool, len(locators))
	out := make([]Descriptor, 0, len(locators))
	for _, loc := range locators {
		if loc == "" || seen[loc] {
			continue
		}
		seen[loc] = true
		out = append(out, Descriptor{Origin: origin, Locator: loc, Rank: len(out)})
	}
	return out
}
