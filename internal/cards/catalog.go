package cards

import "strings"

// Catalog answers name lookups for sources that only understand codes.
type Catalog struct {
	cards []Card
}

// NewCatalog wraps an already loaded card list.
func NewCatalog(cards []Card) *Catalog {
	return &Catalog{cards: cards}
}

// LoadCatalog reads the CSVs in dataDir.
func LoadCatalog(dataDir string) (*Catalog, error) {
	cs, err := LoadDir(dataDir)
	if err != nil {
		return nil, err
	}
	return NewCatalog(cs), nil
}

// Len is the number of catalogue rows.
func (c *Catalog) Len() int { return len(c.cards) }

// CodesByName lists card codes for name. Exact (case-insensitive) name
// matches come first, then keyword matches; parallel printings are ignored
// since the code already covers them.
func (c *Catalog) CodesByName(name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	normal := Filter(c.cards, FilterOptions{ParallelMode: "normal"})
	seen := map[string]bool{}
	var exact, partial []string
	for _, card := range normal {
		if seen[card.CardID] {
			continue
		}
		switch {
		case strings.EqualFold(card.Name, name):
			exact = append(exact, card.CardID)
		case MatchKeywords(name, card.Name):
			partial = append(partial, card.CardID)
		default:
			continue
		}
		seen[card.CardID] = true
	}
	return append(exact, partial...)
}

// Filter applies opt to the whole catalogue.
func (c *Catalog) Filter(opt FilterOptions) []Card {
	return Filter(c.cards, opt)
}
