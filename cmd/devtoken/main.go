package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sahilchouksey/paper-insight-api/config"
	"github.com/sahilchouksey/paper-insight-api/utils/auth"
	"github.com/spf13/cobra"
)

func newRootCmd(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "devtoken",
		Short: "Mint an access token for local testing",
		Long: `Mint an HS256 access token signed with JWT_SECRET and issued by JWT_ISSUER,
the same values the API server reads from the environment (or .env).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			subject, _ := cmd.Flags().GetString("subject")
			email, _ := cmd.Flags().GetString("email")
			role, _ := cmd.Flags().GetString("role")
			ttl, _ := cmd.Flags().GetDuration("ttl")

			if err := config.LoadENV(); err != nil {
				return err
			}
			env, err := config.Get()
			if err != nil {
				return err
			}

			jwtManager := auth.NewJWTManager(auth.JWTConfig{
				Secret: env.JWT_SECRET,
				Expiry: ttl,
				Issuer: env.JWT_ISSUER,
			})

			token, jti, err := jwtManager.GenerateAccessToken(subject, email, role)
			if err != nil {
				return fmt.Errorf("failed to sign token: %w", err)
			}

			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				fmt.Fprintf(cmd.ErrOrStderr(), "jti=%s expires=%s\n", jti, time.Now().Add(ttl).Format(time.RFC3339))
			}
			fmt.Fprintln(out, token)
			return nil
		},
	}

	cmd.Flags().StringP("subject", "s", "dev-user", "Token subject (user ID)")
	cmd.Flags().StringP("email", "e", "dev@example.com", "Email claim")
	cmd.Flags().String("role", "student", "Role claim")
	cmd.Flags().Duration("ttl", 24*time.Hour, "Token lifetime")
	cmd.Flags().BoolP("verbose", "v", false, "Print token ID and expiry to stderr")

	return cmd
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
