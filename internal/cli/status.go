package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/rangelab/rangebridge/internal/mcpserver/client"
	"github.com/rangelab/rangebridge/internal/mcpserver/creds"
	"github.com/spf13/cobra"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Preflight check: config, credential, backend reachability, identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				fmt.Println("config:     FAILED -", err)
				return err
			}
			if err := cfg.Validate(); err != nil {
				fmt.Println("config:     FAILED -", err)
				return err
			}
			fmt.Println("config:     ok -", cfg.APIBaseURL)

			store := creds.NewStore(credentialsPath(cfg))
			credentials, err := store.Load()
			if err != nil {
				fmt.Println("credential: FAILED -", err)
				return err
			}

			identity := client.DecodeIdentity(credentials.AuthToken)
			switch {
			case credentials.IsZero():
				fmt.Println("credential: none (anonymous) -", store.Path())
			case identity.Expired():
				fmt.Println("credential: present but expired")
			default:
				fmt.Println("credential: present -", identity.Role())
			}

			api := client.NewHTTPClient(cfg.APIBaseURL, credentials)
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			if credentials.IsZero() {
				fmt.Println("backend:    skipped (no credential to probe with)")
				return nil
			}

			user, err := api.GetUserInfo(ctx)
			if err != nil {
				fmt.Println("backend:    FAILED -", err)
				return err
			}

			role := "standard user"
			if user.Admin {
				role = "administrator"
			}
			fmt.Printf("backend:    ok - authenticated as %s (%s)\n", user.Email, role)
			return nil
		},
	}
}
