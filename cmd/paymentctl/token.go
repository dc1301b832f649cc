package main

import (
	"fmt"
	"time"

	"github.com/Behyna/hypeconnect/pkg/token"
	"github.com/spf13/cobra"
)

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token [subject]",
		Short: "Mint an API bearer token signed with the configured secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			role, _ := cmd.Flags().GetString("role")
			ttl, _ := cmd.Flags().GetDuration("ttl")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			if role == "admin" {
				role = cfg.JWT.AdminRole
			}

			signed, err := token.Generate(cfg.JWT.Secret, args[0], role, ttl)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), signed)
			return err
		},
	}

	cmd.Flags().String("role", "user", "Role claim; admin maps to the configured admin role")
	cmd.Flags().Duration("ttl", time.Hour, "Token lifetime")

	return cmd
}
