package main

import (
	"github.com/Behyna/hypeconnect/internal/model"
	"github.com/Behyna/hypeconnect/internal/service"
	"github.com/spf13/cobra"
)

func alertsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Review fraud alerts",
	}

	cmd.AddCommand(alertsListCmd())
	cmd.AddCommand(alertsResolveCmd())

	return cmd
}

func alertsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List fraud alerts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			status, _ := cmd.Flags().GetString("status")
			alertType, _ := cmd.Flags().GetString("type")
			severity, _ := cmd.Flags().GetString("severity")

			svc, err := loadServices(cmd)
			if err != nil {
				return err
			}

			alerts, err := svc.fraud.GetFraudAlerts(cmd.Context(), service.GetAlertsQuery{
				Limit:    limit,
				Status:   model.AlertStatus(status),
				Type:     model.AlertType(alertType),
				Severity: model.Severity(severity),
			})
			if err != nil {
				return err
			}

			return printJSON(cmd, alerts)
		},
	}

	cmd.Flags().IntP("limit", "n", 50, "Maximum alerts")
	cmd.Flags().String("status", "unreviewed", "Filter by status (unreviewed, reviewed, empty for all)")
	cmd.Flags().String("type", "", "Filter by alert type")
	cmd.Flags().String("severity", "", "Filter by severity")

	return cmd
}

func alertsResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [alert-id]",
		Short: "Mark a fraud alert as reviewed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolution, _ := cmd.Flags().GetString("resolution")
			reviewer, _ := cmd.Flags().GetString("reviewer")
			notes, _ := cmd.Flags().GetString("notes")

			svc, err := loadServices(cmd)
			if err != nil {
				return err
			}

			alert, err := svc.fraud.ResolveFraudAlert(cmd.Context(), service.ResolveAlertCommand{
				AlertID:    args[0],
				Resolution: model.Resolution(resolution),
				ReviewedBy: reviewer,
				Notes:      notes,
			})
			if err != nil {
				return err
			}

			return printJSON(cmd, alert)
		},
	}

	cmd.Flags().String("resolution", "", "false_positive, confirmed_fraud or other")
	cmd.Flags().String("reviewer", "", "Who reviewed the alert")
	cmd.Flags().String("notes", "", "Review notes")
	_ = cmd.MarkFlagRequired("resolution")
	_ = cmd.MarkFlagRequired("reviewer")

	return cmd
}
