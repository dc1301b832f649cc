package main

import (
	"encoding/json"
	"fmt"

	"github.com/Behyna/hypeconnect/internal/config"
	"github.com/Behyna/hypeconnect/internal/database"
	"github.com/Behyna/hypeconnect/internal/metrics"
	"github.com/Behyna/hypeconnect/internal/repository"
	"github.com/Behyna/hypeconnect/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var Version = "dev"

type services struct {
	cfg    *config.Config
	ledger service.LedgerService
	fraud  service.FraudService
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "paymentctl",
		Short:         "Operate the HypeConnect payment ledger",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "./config", "Directory holding config.yml")

	root.AddCommand(statsCmd())
	root.AddCommand(failuresCmd())
	root.AddCommand(reconcileCmd())
	root.AddCommand(alertsCmd())
	root.AddCommand(tokenCmd())

	return root
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	return config.LoadFrom(path)
}

// loadServices opens the database and builds the read side of the ledger.
// Metrics go to a private registry since nothing scrapes a CLI.
func loadServices(cmd *cobra.Command) (*services, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}

	db, err := database.NewConnection(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	m := metrics.NewMetrics(prometheus.NewRegistry())
	txRepo := repository.NewTransactionRepository(db)

	return &services{
		cfg:    cfg,
		ledger: service.NewLedgerService(txRepo, m, logger),
		fraud: service.NewFraudService(txRepo, repository.NewFraudAlertRepository(db),
			repository.NewBookingRepository(db), m, logger),
	}, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
