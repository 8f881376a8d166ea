package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chainsafe/swap-status/pkg/app/statusapi"
	"github.com/chainsafe/swap-status/pkg/config"
	"github.com/chainsafe/swap-status/pkg/swap"
)

func newRootCommand() *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "txstatus",
		Short:         "Inspect the progress of cross-chain swap orders",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "config.yaml", "Path to configuration file")
	rootCmd.AddCommand(checkCommand(&configFile))

	return rootCmd
}

func checkCommand(configFile *string) *cobra.Command {
	var (
		id     swap.Identifier
		output string
	)

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Run a status check for one order",
		Example: "  txstatus check --create-id 7f3c...\n" +
			"  txstatus check --address 0x5290... --output json",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if id.IsZero() {
				return fmt.Errorf("one of --create-id or --address is required")
			}
			if output != "text" && output != "json" {
				return fmt.Errorf("unsupported output %q, use text or json", output)
			}

			cfg, err := config.LoadStatusServer(*configFile)
			if err != nil {
				return err
			}
			// stdout carries the report
			cfg.Logging.OutputPath = "stderr"

			logger, err := config.NewLogger(cfg.Logging)
			if err != nil {
				return fmt.Errorf("setup logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if cfg.Server.RequestTimeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, cfg.Server.RequestTimeout)
				defer cancel()
			}

			svc, cleanup, err := statusapi.NewStatusService(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.GetTransactionStatus(ctx, id)
			if err != nil {
				logger.Error("status check failed", zap.Error(err))
				return err
			}

			out := cmd.OutOrStdout()
			if output == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			return renderText(out, res)
		},
	}

	checkCmd.Flags().StringVar(&id.OrderID, "create-id", "", "Order create_id to inspect")
	checkCmd.Flags().StringVar(&id.InitiatorAddress, "address", "", "Initiator source address; the most recent order is inspected")
	checkCmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text or json")

	return checkCmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
