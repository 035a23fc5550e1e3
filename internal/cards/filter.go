package cards

import "strings"

// FilterOptions narrows a card list.
type FilterOptions struct {
	Types        []string `json:"types"`
	FreeWords    string   `json:"free_words"`
	ParallelMode string   `json:"parallel_mode"` // "normal", "parallel", "both"
}

var keywordReplacer = strings.NewReplacer("-", " ", "_", " ", ".", " ", "+", " ", "%20", " ")

func normalizeWords(s string) string {
	return strings.ToLower(keywordReplacer.Replace(s))
}

// MatchKeywords reports whether every whitespace-separated keyword of query
// appears in text, in any order, ignoring case and -/_/. separators.
func MatchKeywords(query, text string) bool {
	kw := strings.Fields(normalizeWords(query))
	if len(kw) == 0 {
		return false
	}
	hay := normalizeWords(text)
	for _, k := range kw {
		if !strings.Contains(hay, k) {
			return false
		}
	}
	return true
}

// Filter returns the cards matching opt, preserving order.
func Filter(cards []Card, opt FilterOptions) []Card {
	var out []Card
	for _, c := range cards {
		if opt.ParallelMode == "normal" && c.IsParallel {
			continue
		}
		if opt.ParallelMode == "parallel" && !c.IsParallel {
			continue
		}
		if len(opt.Types) > 0 {
			matched := false
			for _, t := range opt.Types {
				if strings.EqualFold(c.Type, t) {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		if opt.FreeWords != "" && !MatchKeywords(opt.FreeWords, c.Name+" "+strings.Join(c.Features, " ")) {
			continue
		}
		out = append(out, c)
	}
	return out
}
