package cards

// Card is one catalogue row. Only the fields needed to map names to codes
// and to pick printings are kept.
type Card struct {
	CardID     string   `json:"card_id"`
	Name       string   `json:"name"`
	Color      string   `json:"color"`
	Type       string   `json:"type"`
	Features   []string `json:"features"`
	IsParallel bool     `json:"is_parallel"`
	ImageURL   string   `json:"image_url"`
	SeriesID   string   `json:"series_id"`
}
