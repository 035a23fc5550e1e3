package cards

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CatalogFiles are read from the catalogue directory in this order; missing
// files are skipped.
var CatalogFiles = []string{"cardlist_filtered.csv", "custom_cards.csv", "cardlist_p_only.csv"}

// headerAliases maps each field to the column names accepted for it. The
// official card list uses Japanese headers.
var headerAliases = map[string][]string{
	"id":       {"カードID", "card_id", "id"},
	"name":     {"カード名", "card_name", "name"},
	"color":    {"色", "color"},
	"type":     {"タイプ", "type"},
	"features": {"特徴", "features"},
	"image":    {"画像URL", "image_url"},
	"info":     {"入手情報", "series"},
	"parallel": {"is_parallel"},
}

func parseListCell(s string) []string {
	s = strings.ReplaceAll(s, "／", "/")
	out := []string{}
	for _, p := range strings.Split(s, "/") {
		t := strings.TrimSpace(p)
		if t != "" && t != "-" {
			out = append(out, t)
		}
	}
	return out
}

// LoadDir loads every catalogue CSV present in dataDir.
func LoadDir(dataDir string) ([]Card, error) {
	var all []Card
	var found bool
	for _, name := range CatalogFiles {
		f := filepath.Join(dataDir, name)
		if _, err := os.Stat(f); err != nil {
			continue
		}
		found = true
		cs, err := loadSingleCSV(f)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
		all = append(all, cs...)
	}
	if !found {
		return nil, fmt.Errorf("no catalogue CSVs found in %s", dataDir)
	}
	return all, nil
}

func loadSingleCSV(path string) ([]Card, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	r := csv.NewReader(fp)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("csv %s has no header", path)
	}
	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	get := func(row []string, field string) string {
		for _, alias := range headerAliases[field] {
			if idx, ok := cols[alias]; ok && idx < len(row) {
				return strings.TrimSpace(row[idx])
			}
		}
		return ""
	}

	out := []Card{}
	for _, row := range rows[1:] {
		c := Card{
			CardID:   strings.ToUpper(get(row, "id")),
			Name:     get(row, "name"),
			Color:    get(row, "color"),
			Type:     get(row, "type"),
			Features: parseListCell(get(row, "features")),
			ImageURL: get(row, "image"),
			SeriesID: seriesOf(get(row, "info")),
		}
		switch strings.ToLower(get(row, "parallel")) {
		case "true", "1":
			c.IsParallel = true
		}
		if c.CardID == "" {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// seriesOf extracts the set name between 【】 from the acquisition info.
func seriesOf(info string) string {
	a := strings.Index(info, "【")
	b := strings.Index(info, "】")
	if a >= 0 && b > a+len("【") {
		return strings.TrimSpace(info[a+len("【") : b])
	}
	if info == "" || info == "-" {
		return "-"
	}
	return "その他"
}
