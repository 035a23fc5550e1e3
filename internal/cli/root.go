// Package cli implements the cardsheet commands using Cobra.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/youruser/cardsheet/internal/config"
	"github.com/youruser/cardsheet/internal/logging"
)

// rootState is shared by every subcommand of one root.
type rootState struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

// NewRootCmd assembles the command tree.
func NewRootCmd() *cobra.Command {
	st := &rootState{}
	root := &cobra.Command{
		Use:   "cardsheet",
		Short: "cardsheet - fetch trading-card art and lay it out on printable A4 sheets",
		Long: `cardsheet resolves every line of a deck list ("4xOP05-067", "2x Kuzan") to card
art from a CDN, a card API, a scraped card site or a local folder, then writes
the images one by one or composes them 3x3 onto A4 sheets with crop marks.

Usage:
  cardsheet build deck.txt --source dotgg --format pdf
  cardsheet resolve OP05-067 --exhaustive`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(st.configPath)
			if err != nil {
				return err
			}
			st.cfg = cfg
			st.logger, err = logging.New(cfg.Logging.Level, st.verbose)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if st.logger != nil {
				_ = st.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&st.configPath, "config", "cardsheet.yaml", "Settings file (missing file means defaults)")
	root.PersistentFlags().BoolVarP(&st.verbose, "verbose", "v", false, "Debug logging")

	root.AddCommand(
		newBuildCmd(st),
		newResolveCmd(st),
		newSourcesCmd(st),
		newConfigCmd(st),
	)
	return root
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
