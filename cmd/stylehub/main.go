package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dwikikusuma/stylehub/pkg/config"
	"github.com/dwikikusuma/stylehub/pkg/logger"
)

var (
	cfg config.Config
	log *slog.Logger

	storageFlag  string
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "stylehub",
	Short: "StyleHub storefront: catalog, cart and checkout",
	Long: `StyleHub runs the storefront API and lets you work with the
persisted cart, wishlist and compare list from the command line.

The cart lives in the configured durable store (STORAGE_DRIVER) and
survives restarts. A running server reads it once at startup, so edits
made here while it runs are overwritten by the server's next change.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if storageFlag != "" {
			cfg.StorageDriver = storageFlag
		}
		if logLevelFlag != "" {
			cfg.LogLevel = logLevelFlag
		}

		opts := logger.Options{
			Service: "stylehub",
			Env:     cfg.AppEnv,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
			Output:  cmd.ErrOrStderr(),
		}
		if cmd != serveCmd {
			// one-shot commands talk to a person, keep the log quiet
			opts.Format = "text"
			if logLevelFlag == "" {
				opts.Level = "warn"
			}
		}
		log = logger.New(opts)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storageFlag, "storage", "", "storage driver: sqlite, redis or memory (overrides STORAGE_DRIVER)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level (overrides LOG_LEVEL)")

	rootCmd.AddCommand(serveCmd, cartCmd, catalogCmd, wishlistCmd, compareCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
