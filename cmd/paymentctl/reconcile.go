package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func reconcileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Check every ledger entry for missing status fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadServices(cmd)
			if err != nil {
				return err
			}

			report, err := svc.ledger.Reconcile(cmd.Context())
			if err != nil {
				return err
			}

			if err := printJSON(cmd, report); err != nil {
				return err
			}

			strict, _ := cmd.Flags().GetBool("strict")
			if strict && len(report.Issues) > 0 {
				return fmt.Errorf("%d ledger issues found", len(report.Issues))
			}

			return nil
		},
	}

	cmd.Flags().Bool("strict", false, "Exit non-zero when any issue is found")

	return cmd
}
