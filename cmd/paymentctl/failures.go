package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func failuresCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "failures",
		Short: "List payments that failed within the last hours",
		RunE: func(cmd *cobra.Command, args []string) error {
			hours, _ := cmd.Flags().GetInt("hours")
			if hours <= 0 {
				return fmt.Errorf("--hours must be positive")
			}

			svc, err := loadServices(cmd)
			if err != nil {
				return err
			}

			records, err := svc.ledger.GetRecentFailures(cmd.Context(), hours)
			if err != nil {
				return err
			}

			return printJSON(cmd, records)
		},
	}

	cmd.Flags().Int("hours", 24, "Look back this many hours")

	return cmd
}
