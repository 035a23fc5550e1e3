package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/youruser/cardsheet/internal/api"
	"github.com/youruser/cardsheet/internal/app"
	"github.com/youruser/cardsheet/internal/config"
	"github.com/youruser/cardsheet/internal/logging"
)

func main() {
	var (
		configPath string
		verbose    bool
	)
	cmd := &cobra.Command{
		Use:          "cardsheet-server",
		Short:        "HTTP API for resolving card art and building sheets",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(configPath, verbose)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "cardsheet.yaml", "Settings file (missing file means defaults)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve(configPath string, verbose bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Logging.Level, verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	// catalogue and strategies are loaded once at startup
	env, err := app.New(cfg, logger)
	if err != nil {
		return err
	}

	r := gin.Default()
	api.RegisterRoutes(r, api.NewHandler(env))

	addr := ":" + cfg.Server.Port
	logger.Info("starting server", zap.String("addr", "http://localhost"+addr))
	if err := r.Run(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
