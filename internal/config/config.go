// Package config loads cardsheet settings from YAML, with environment
// overrides on top.
package config

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/youruser/cardsheet/internal/layout"
)

// Output modes.
const (
	ModeImages = "images"
	ModeSheet  = "sheet"
)

// Config holds all cardsheet configuration.
type Config struct {
	// Source kind: dotgg, limitless, api, scrape or local.
	Source    string `yaml:"source"`
	LocalDir  string `yaml:"local_dir"`
	OutputDir string `yaml:"output_dir"`

	Output  OutputConfig  `yaml:"output"`
	Sheet   SheetConfig   `yaml:"sheet"`
	Image   ImageConfig   `yaml:"image"`
	Options OptionsConfig `yaml:"options"`
	Catalog CatalogConfig `yaml:"catalog"`
	Remote  RemoteConfig  `yaml:"remote"`
	Logging LoggingConfig `yaml:"logging"`
	Server  ServerConfig  `yaml:"server"`
}

// OutputConfig selects what a run produces.
type OutputConfig struct {
	Mode      string `yaml:"mode"`   // images | sheet
	Format    string `yaml:"format"` // pdf | png | jpg
	Overwrite bool   `yaml:"overwrite"`
}

// SheetConfig is the physical sheet layout in millimeters.
type SheetConfig struct {
	DPI          int          `yaml:"dpi"`
	CardWidthMM  float64      `yaml:"card_width_mm"`
	CardHeightMM float64      `yaml:"card_height_mm"`
	MarginXMM    float64      `yaml:"margin_x_mm"`
	MarginYMM    float64      `yaml:"margin_y_mm"`
	GapXMM       float64      `yaml:"gap_x_mm"`
	GapYMM       float64      `yaml:"gap_y_mm"`
	Crop         CropConfig   `yaml:"crop"`
	Border       BorderConfig `yaml:"border"`
}

// CropConfig configures corner crop marks.
type CropConfig struct {
	Enabled         bool    `yaml:"enabled"`
	LengthMM        float64 `yaml:"length_mm"`
	GapMM           float64 `yaml:"gap_mm"`
	StrokePx        int     `yaml:"stroke_px"`
	Color           string  `yaml:"color"`
	HideUnderBorder bool    `yaml:"hide_under_border"`
}

// BorderConfig configures the solid border around every card.
type BorderConfig struct {
	Enabled bool   `yaml:"enabled"`
	WidthPx int    `yaml:"width_px"`
	Color   string `yaml:"color"`
}

// ImageConfig configures the upscale pre-pass.
type ImageConfig struct {
	Upscale     bool `yaml:"upscale"`
	MinHeightPx int  `yaml:"min_height_px"`
}

// OptionsConfig holds per-run behaviour switches.
type OptionsConfig struct {
	Multiply  bool `yaml:"multiply"`
	ChooseArt bool `yaml:"choose_art"`
	DeckQR    bool `yaml:"deck_qr"`
}

// CatalogConfig points at the optional card CSV directory.
type CatalogConfig struct {
	Dir string `yaml:"dir"`
}

// RemoteConfig configures remote sources.
type RemoteConfig struct {
	DotGGBase     string `yaml:"dotgg_base"`
	LimitlessBase string `yaml:"limitless_base"`
	APIBase       string `yaml:"api_base"`
	ScrapeBase    string `yaml:"scrape_base"`
	Timeout       string `yaml:"timeout"`
	Retries       int    `yaml:"retries"`
	Concurrency   int    `yaml:"concurrency"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port string `yaml:"port"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		Source:    "dotgg",
		OutputDir: "out",
		Output: OutputConfig{
			Mode:   ModeSheet,
			Format: "pdf",
		},
		Sheet: SheetConfig{
			DPI:          300,
			CardWidthMM:  63,
			CardHeightMM: 88,
			MarginXMM:    7,
			MarginYMM:    13,
			GapXMM:       3,
			GapYMM:       3,
			Crop: CropConfig{
				Enabled:  true,
				LengthMM: 2.5,
				GapMM:    0.8,
				StrokePx: 1,
				Color:    "#000000",
			},
			Border: BorderConfig{
				WidthPx: 50,
				Color:   "#FFFFFF",
			},
		},
		Image: ImageConfig{
			MinHeightPx: 1500,
		},
		Options: OptionsConfig{
			Multiply:  true,
			ChooseArt: true,
		},
		Catalog: CatalogConfig{Dir: "data"},
		Remote: RemoteConfig{
			DotGGBase:     "https://static.dotgg.gg/onepiece/card/",
			LimitlessBase: "https://limitlesstcg.nyc3.cdn.digitaloceanspaces.com/one-piece/",
			Timeout:       "8s",
			Retries:       2,
			Concurrency:   16,
		},
		Logging: LoggingConfig{Level: "info"},
		Server:  ServerConfig{Port: "8080"},
	}
}

// Load reads path over the defaults and applies environment overrides. A
// missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies CARDSHEET_* environment variables.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("CARDSHEET_SOURCE"); v != "" {
		c.Source = v
	}
	if v := os.Getenv("CARDSHEET_LOCAL_DIR"); v != "" {
		c.LocalDir = v
	}
	if v := os.Getenv("CARDSHEET_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("CARDSHEET_CATALOG_DIR"); v != "" {
		c.Catalog.Dir = v
	}
	if v := os.Getenv("CARDSHEET_API_BASE"); v != "" {
		c.Remote.APIBase = v
	}
	if v := os.Getenv("CARDSHEET_SCRAPE_BASE"); v != "" {
		c.Remote.ScrapeBase = v
	}
	if v := os.Getenv("CARDSHEET_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("CARDSHEET_DPI"); v != "" {
		if dpi, err := strconv.Atoi(v); err == nil {
			c.Sheet.DPI = dpi
		}
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
}

// GetTimeout returns the per-attempt remote timeout.
func (c *Config) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Remote.Timeout)
	if err != nil || d <= 0 {
		return 8 * time.Second
	}
	return d
}

// Validate checks values that are not covered by layout validation.
func (c *Config) Validate() error {
	switch c.Output.Mode {
	case ModeImages, ModeSheet:
	default:
		return fmt.Errorf("invalid output mode %q (valid: %s, %s)", c.Output.Mode, ModeImages, ModeSheet)
	}
	switch strings.ToLower(c.Output.Format) {
	case "pdf", "png", "jpg", "jpeg":
	default:
		return fmt.Errorf("invalid sheet format %q", c.Output.Format)
	}
	if c.Remote.Concurrency < 1 {
		return fmt.Errorf("remote concurrency must be at least 1, got %d", c.Remote.Concurrency)
	}
	if c.Remote.Retries < 0 {
		return fmt.Errorf("remote retries must not be negative, got %d", c.Remote.Retries)
	}
	if c.Image.Upscale && c.Image.MinHeightPx < 1 {
		return fmt.Errorf("upscale min height must be positive, got %d", c.Image.MinHeightPx)
	}
	sc, err := c.Layout()
	if err != nil {
		return err
	}
	return sc.Validate()
}

// Layout converts the sheet section into a layout.SheetConfig.
func (c *Config) Layout() (layout.SheetConfig, error) {
	crop, err := ParseColor(c.Sheet.Crop.Color)
	if err != nil {
		return layout.SheetConfig{}, fmt.Errorf("crop color: %w", err)
	}
	border, err := ParseColor(c.Sheet.Border.Color)
	if err != nil {
		return layout.SheetConfig{}, fmt.Errorf("border color: %w", err)
	}
	s := c.Sheet
	return layout.SheetConfig{
		DPI:       s.DPI,
		CardWMM:   s.CardWidthMM,
		CardHMM:   s.CardHeightMM,
		MarginXMM: s.MarginXMM,
		MarginYMM: s.MarginYMM,
		GapXMM:    s.GapXMM,
		GapYMM:    s.GapYMM,
		Crop: layout.CropConfig{
			Enabled:         s.Crop.Enabled,
			LengthMM:        s.Crop.LengthMM,
			GapMM:           s.Crop.GapMM,
			StrokePx:        s.Crop.StrokePx,
			Color:           crop,
			HideUnderBorder: s.Crop.HideUnderBorder,
		},
		Border: layout.BorderConfig{
			Enabled: s.Border.Enabled,
			WidthPx: s.Border.WidthPx,
			Color:   border,
		},
	}, nil
}

// ParseColor reads "#RRGGBB" or "#RRGGBBAA". Empty means opaque black.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if s == "" {
		return color.NRGBA{A: 255}, nil
	}
	if len(s) != 6 && len(s) != 8 {
		return color.NRGBA{}, fmt.Errorf("color %q: want #RRGGBB or #RRGGBBAA", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	if len(s) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
