package commands

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/repl"
	"github.com/mmynk/splitledger/internal/seed"
	"github.com/mmynk/splitledger/internal/service"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/pkg/api/apiconnect"
)

const rpcTimeout = 10 * time.Second

func replCmd() *cobra.Command {
	var (
		file      string
		serverURL string
		seedFile  string
		token     string
	)

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Run ledger commands interactively or from a file",
		Long: `Run ledger commands read from stdin or a batch file.

Without --server the ledger lives in this process and is gone on exit.
With --server commands run against a splitledger server; mutating
commands then need a token when the server has auth enabled.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if serverURL == "" {
				serverURL = cfg.ServerURL
			}
			if seedFile == "" {
				seedFile = cfg.SeedFile
			}
			if token == "" {
				token = cfg.Token
			}

			var l storage.Ledger
			if serverURL != "" {
				var opts []connect.ClientOption
				if token != "" {
					opts = append(opts, connect.WithInterceptors(middleware.BearerToken(token)))
				}
				client := apiconnect.NewLedgerServiceClient(http.DefaultClient, serverURL, opts...)
				l = service.NewRemoteLedger(client, rpcTimeout)
				slog.Debug("Using remote ledger", "server", serverURL)
			} else {
				l = ledger.NewStore()
			}

			if seedFile != "" {
				fixtures, err := seed.Load(seedFile)
				if err != nil {
					return err
				}
				if err := seed.Apply(l, fixtures); err != nil {
					return err
				}
			}

			var in io.Reader = os.Stdin
			interactive := isTerminal(os.Stdin)
			if file != "" {
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("failed to open batch file: %w", err)
				}
				defer f.Close()
				in, interactive = f, false
			}

			if interactive {
				fmt.Fprintln(cmd.OutOrStdout(), "Type help for the list of commands.")
			}
			return repl.New(l, cmd.OutOrStdout()).Run(cmd.Context(), in, interactive)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read commands from a batch file")
	cmd.Flags().StringVar(&serverURL, "server", "", "server base URL (default $SERVER_URL)")
	cmd.Flags().StringVar(&seedFile, "seed", "", "YAML fixtures to load first (default $SEED_FILE)")
	cmd.Flags().StringVar(&token, "token", "", "bearer token for mutating commands (default $TOKEN)")
	return cmd
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
