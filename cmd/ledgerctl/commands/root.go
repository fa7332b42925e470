// Package commands implements the ledgerctl command line.
package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mmynk/splitledger/internal/config"
	"github.com/mmynk/splitledger/pkg/logging"
)

var (
	envFile string
	debug   bool
	cfg     *config.Config
)

// Execute runs the root command until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ledgerctl",
		Short:         "Track who paid what in shared-expense groups",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(envFile)
			if err != nil {
				return err
			}

			if debug {
				logging.SetupWithLevel(slog.LevelDebug)
			} else {
				logging.Setup(cfg.LogLevel)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&envFile, "env", "", "env file to load (default .env if present)")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	root.AddCommand(replCmd(), loginCmd(), tokenCmd(), hashPasswordCmd())
	return root
}
