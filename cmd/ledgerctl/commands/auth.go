package commands

import (
	"bufio"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/pkg/api"
	"github.com/mmynk/splitledger/pkg/api/apiconnect"
)

func loginCmd() *cobra.Command {
	var serverURL string

	cmd := &cobra.Command{
		Use:   "login <operator> <password>",
		Short: "Log in to a server and print a bearer token",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if serverURL == "" {
				serverURL = cfg.ServerURL
			}
			if serverURL == "" {
				return errors.New("server URL required (--server or SERVER_URL)")
			}

			client := apiconnect.NewAuthServiceClient(http.DefaultClient, serverURL)
			resp, err := client.Login(cmd.Context(), connect.NewRequest(&api.LoginRequest{
				Operator: args[0],
				Password: args[1],
			}))
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), resp.Msg.Token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", time.Unix(resp.Msg.ExpiresAt, 0).Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVar(&serverURL, "server", "", "server base URL (default $SERVER_URL)")
	return cmd
}

func tokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token [operator]",
		Short: "Mint a bearer token with the configured JWT secret",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cfg.AuthEnabled() {
				return errors.New("JWT_SECRET is not set")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			operator := cfg.Operator
			if len(args) == 1 {
				operator = args[0]
			}

			token, expiresAt, err := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration).Generate(operator)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", expiresAt.Format(time.RFC3339))
			return nil
		},
	}
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print the bcrypt hash for OPERATOR_PASSWORD_HASH",
		Long:  "Print the bcrypt hash for OPERATOR_PASSWORD_HASH. The password is read from stdin when not given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("failed to read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}

			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
