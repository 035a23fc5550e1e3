package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/youruser/cardsheet/internal/app"
	"github.com/youruser/cardsheet/internal/source"
)

func newResolveCmd(st *rootState) *cobra.Command {
	var (
		kind       string
		exhaustive bool
	)
	cmd := &cobra.Command{
		Use:   "resolve <term>",
		Short: "List the art found for one card code or name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("source") {
				st.cfg.Source = kind
			}
			env, err := app.New(st.cfg, st.logger)
			if err != nil {
				return err
			}
			mode := source.ModeFirst
			if exhaustive {
				mode = source.ModeExhaustive
			}
			term := strings.Join(args, " ")
			variants, err := env.Resolver.Resolve(cmd.Context(), st.cfg.Source, term, mode)
			if err != nil {
				return err
			}
			for i, v := range variants {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%d\n", i+1, v.Locator, len(v.Bytes))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "source", "", "Art source (default from config)")
	cmd.Flags().BoolVar(&exhaustive, "exhaustive", false, "Probe every candidate instead of stopping at the first hit")
	return cmd
}

func newSourcesCmd(st *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List the available art sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.New(st.cfg, st.logger)
			if err != nil {
				return err
			}
			for _, k := range env.Resolver.Registry().Kinds() {
				marker := " "
				if k == st.cfg.Source {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, k)
			}
			return nil
		},
	}
}
