package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/youruser/cardsheet/internal/app"
	"github.com/youruser/cardsheet/internal/deck"
	"github.com/youruser/cardsheet/internal/output"
	"github.com/youruser/cardsheet/internal/pipeline"
)

type buildFlags struct {
	source      string
	localDir    string
	outputDir   string
	mode        string
	format      string
	overwrite   bool
	dpi         int
	multiply    bool
	chooseArt   bool
	interactive bool
	deckQR      bool
	crop        bool
	border      bool
	borderPx    int
	upscale     bool
	minHeight   int
}

func newBuildCmd(st *rootState) *cobra.Command {
	f := &buildFlags{}
	cmd := &cobra.Command{
		Use:   "build [deck-file]",
		Short: "Resolve a deck list and write card images or A4 sheets",
		Long: `Build reads a deck list (a file, or stdin when the argument is "-" or missing),
resolves every line against the selected source and writes the result.

Examples:
  cardsheet build deck.txt
  cardsheet build deck.txt --mode images --border --border-px 36
  cat deck.txt | cardsheet build --source local --local-dir ./art --format png
  cardsheet build deck.txt --choose-art --interactive`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, st, f, args)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.source, "source", "", "Art source: dotgg, limitless, api, scrape or local")
	fl.StringVar(&f.localDir, "local-dir", "", "Folder searched by the local source")
	fl.StringVar(&f.outputDir, "output-dir", "", "Where files are written")
	fl.StringVar(&f.mode, "mode", "", "Output mode: images or sheet")
	fl.StringVar(&f.format, "format", "", "Sheet format: pdf, png or jpg")
	fl.BoolVar(&f.overwrite, "overwrite", false, "Replace existing single-card files")
	fl.IntVar(&f.dpi, "dpi", 0, "Sheet resolution")
	fl.BoolVar(&f.multiply, "multiply", true, "Emit each card as many times as its quantity")
	fl.BoolVar(&f.chooseArt, "choose-art", false, "Probe every candidate so an art variant can be chosen")
	fl.BoolVar(&f.interactive, "interactive", false, "Ask on the terminal when several variants exist")
	fl.BoolVar(&f.deckQR, "deck-qr", false, "Append a QR card holding the deck list")
	fl.BoolVar(&f.crop, "crop", true, "Draw crop marks on sheets")
	fl.BoolVar(&f.border, "border", false, "Add a solid border around each card")
	fl.IntVar(&f.borderPx, "border-px", 0, "Border width in pixels")
	fl.BoolVar(&f.upscale, "upscale", false, "Upscale small single-card images")
	fl.IntVar(&f.minHeight, "min-height", 0, "Target height for --upscale")
	return cmd
}

// apply copies explicitly set flags over the loaded configuration.
func (f *buildFlags) apply(cmd *cobra.Command, st *rootState) {
	cfg := st.cfg
	set := cmd.Flags().Changed
	if set("source") {
		cfg.Source = f.source
	}
	if set("local-dir") {
		cfg.LocalDir = f.localDir
	}
	if set("output-dir") {
		cfg.OutputDir = f.outputDir
	}
	if set("mode") {
		cfg.Output.Mode = f.mode
	}
	if set("format") {
		cfg.Output.Format = f.format
	}
	if set("overwrite") {
		cfg.Output.Overwrite = f.overwrite
	}
	if set("dpi") {
		cfg.Sheet.DPI = f.dpi
	}
	if set("multiply") {
		cfg.Options.Multiply = f.multiply
	}
	if set("choose-art") {
		cfg.Options.ChooseArt = f.chooseArt
	}
	if set("deck-qr") {
		cfg.Options.DeckQR = f.deckQR
	}
	if set("crop") {
		cfg.Sheet.Crop.Enabled = f.crop
	}
	if set("border") {
		cfg.Sheet.Border.Enabled = f.border
	}
	if set("border-px") {
		cfg.Sheet.Border.WidthPx = f.borderPx
	}
	if set("upscale") {
		cfg.Image.Upscale = f.upscale
	}
	if set("min-height") {
		cfg.Image.MinHeightPx = f.minHeight
	}
}

func runBuild(cmd *cobra.Command, st *rootState, f *buildFlags, args []string) error {
	f.apply(cmd, st)

	lines, err := readDeck(cmd, args)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return fmt.Errorf("deck list is empty")
	}

	env, err := app.New(st.cfg, st.logger)
	if err != nil {
		return err
	}
	opts, err := env.PipelineOptions()
	if err != nil {
		return err
	}
	writer, err := output.New(st.cfg.OutputDir, st.cfg.Output.Overwrite, st.logger)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	var sel pipeline.Selector = pipeline.FirstSelector{}
	if f.interactive {
		sel = pipeline.NewPromptSelector(cmd.InOrStdin(), cmd.OutOrStdout())
	}
	runner := pipeline.New(env.Resolver, sel, st.logger)

	report, err := runner.Run(cmd.Context(), lines, opts, writer)
	if report != nil {
		printReport(cmd.OutOrStdout(), report, writer.OutputDir)
	}
	return err
}

func readDeck(cmd *cobra.Command, args []string) ([]deck.Line, error) {
	if len(args) == 0 || args[0] == "-" {
		return deck.Parse(cmd.InOrStdin())
	}
	file, err := os.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("opening deck list: %w", err)
	}
	defer file.Close()
	return deck.Parse(file)
}

func printReport(w io.Writer, r *pipeline.Report, dir string) {
	for _, path := range r.Files {
		fmt.Fprintf(w, "✓ Written: %s\n", path)
	}
	fmt.Fprintf(w, "%d file(s) saved in %s\n", len(r.Files), dir)
	for _, fl := range r.Failures {
		fmt.Fprintf(w, "✗ Failed: %s (%v)\n", fl, fl.Err)
	}
	for _, l := range r.Skipped {
		fmt.Fprintf(w, "- Skipped: %s\n", l)
	}
}
