package main

import "github.com/spf13/cobra"

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show transaction counts and amounts by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadServices(cmd)
			if err != nil {
				return err
			}

			stats, err := svc.ledger.GetStats(cmd.Context())
			if err != nil {
				return err
			}

			return printJSON(cmd, stats)
		},
	}
}
