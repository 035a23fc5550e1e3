// Package pipeline runs a deck list end to end: resolve each line, pick a
// variant, then write single images or composed sheets.
package pipeline

import (
	"context"
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/youruser/cardsheet/internal/deck"
	imagepkg "github.com/youruser/cardsheet/internal/image"
	"github.com/youruser/cardsheet/internal/layout"
	"github.com/youruser/cardsheet/internal/output"
	"github.com/youruser/cardsheet/internal/source"
)

// Output modes.
const (
	ModeImages = "images"
	ModeSheet  = "sheet"
)

// Options configures one run.
type Options struct {
	Source      string
	Output      string // ModeImages or ModeSheet
	Format      output.Format
	Sheet       layout.SheetConfig
	Upscale     bool
	MinHeightPx int
	Multiply    bool
	ChooseArt   bool
	DeckQR      bool
}

// Copies is how many times a line's image is emitted.
func (o Options) Copies(l deck.Line) int {
	if o.Multiply && l.Quantity > 1 {
		return l.Quantity
	}
	return 1
}

// Chosen is the decoded image picked for one line.
type Chosen struct {
	Line    deck.Line
	Locator string
	Image   image.Image
	Copies  int
}

// Runner executes deck lists.
type Runner struct {
	resolver *source.Resolver
	selector Selector
	logger   *zap.Logger
}

// New returns a Runner. A nil selector takes the first variant.
func New(resolver *source.Resolver, selector Selector, logger *zap.Logger) *Runner {
	if selector == nil {
		selector = FirstSelector{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{resolver: resolver, selector: selector, logger: logger}
}

// Collect resolves every line in order. Lines that fail are recorded in the
// report and do not stop the run; only a cancelled context or a selector
// error does.
func (r *Runner) Collect(ctx context.Context, lines []deck.Line, opts Options) ([]Chosen, *Report, error) {
	mode := source.ModeFirst
	if opts.ChooseArt {
		mode = source.ModeExhaustive
	}
	report := &Report{}
	var chosen []Chosen
	for i, line := range lines {
		if err := ctx.Err(); err != nil {
			return chosen, report, err
		}
		r.logger.Debug("processing line",
			zap.Int("index", i+1),
			zap.Int("total", len(lines)),
			zap.String("term", line.Display()))

		variants, err := r.resolver.Resolve(ctx, opts.Source, line.Term, mode)
		if err != nil {
			r.fail(report, line, err)
			continue
		}
		idx := 0
		if len(variants) > 1 {
			var ok bool
			idx, ok, err = r.selector.Select(line, variants)
			if err != nil {
				return chosen, report, err
			}
			if !ok {
				report.Skipped = append(report.Skipped, line)
				continue
			}
		}
		v := variants[idx]
		img, err := imagepkg.Decode(v.Bytes)
		if err != nil {
			r.fail(report, line, fmt.Errorf("%s: %w", v.Locator, err))
			continue
		}
		chosen = append(chosen, Chosen{Line: line, Locator: v.Locator, Image: img, Copies: opts.Copies(line)})
	}
	return chosen, report, nil
}

func (r *Runner) fail(report *Report, line deck.Line, err error) {
	f := Failure{Line: line, Err: err}
	report.Failures = append(report.Failures, f)
	r.logger.Warn("line failed", zap.String("line", f.String()), zap.Error(err))
}

// Pages lays the chosen images onto sheets, each repeated Copies times, with
// an optional deck-list QR card last.
func (r *Runner) Pages(chosen []Chosen, lines []deck.Line, grid layout.Grid, opts Options) []*imagepkg.Page {
	var imgs []image.Image
	for _, c := range chosen {
		for i := 0; i < c.Copies; i++ {
			imgs = append(imgs, c.Image)
		}
	}
	if opts.DeckQR && len(imgs) > 0 {
		qr, err := imagepkg.QRCard(deck.ExportText(Title(lines), lines), grid.CardW, grid.CardH)
		if err != nil {
			r.logger.Warn("deck qr card skipped", zap.Error(err))
		} else {
			imgs = append(imgs, qr)
		}
	}
	return imagepkg.NewCompositor(grid, opts.Sheet.Crop, opts.Sheet.Border, r.logger).Compose(imgs)
}

// Title names a sheet after the first line of the deck list.
func Title(lines []deck.Line) string {
	if len(lines) == 0 {
		return "sheet"
	}
	return lines[0].Display()
}

// Run resolves lines and writes the results with w. In sheet mode the
// geometry is checked before anything is fetched.
func (r *Runner) Run(ctx context.Context, lines []deck.Line, opts Options, w *output.Writer) (*Report, error) {
	var (
		grid layout.Grid
		enc  output.Encoder
	)
	if opts.Output == ModeSheet {
		var err error
		if grid, err = layout.Plan(opts.Sheet); err != nil {
			return nil, err
		}
		if enc, err = output.NewEncoder(opts.Format, Title(lines)); err != nil {
			return nil, err
		}
	}

	chosen, report, err := r.Collect(ctx, lines, opts)
	if err != nil {
		return report, err
	}

	if opts.Output != ModeSheet {
		for _, c := range chosen {
			img := c.Image
			if opts.Upscale {
				img = imagepkg.Upscale(img, opts.MinHeightPx)
			}
			if opts.Sheet.Border.Active() {
				img = imagepkg.AddBorder(img, opts.Sheet.Border.WidthPx, opts.Sheet.Border.Color)
			}
			for n := 1; n <= c.Copies; n++ {
				path, err := w.WriteCard(c.Line.Display(), n, c.Copies, img)
				if err != nil {
					return report, err
				}
				report.Files = append(report.Files, path)
				report.Placed++
			}
		}
		return report, nil
	}

	pages := r.Pages(chosen, lines, grid, opts)
	files, err := w.WriteSheets(Title(lines), enc, pages)
	report.Files = append(report.Files, files...)
	for _, c := range chosen {
		report.Placed += c.Copies
	}
	return report, err
}
