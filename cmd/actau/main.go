package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/subosito/gotenv"

	"github.com/actau-dev/actau/pkg/classify"
	"github.com/actau-dev/actau/pkg/config"
	"github.com/actau-dev/actau/pkg/importer"
	"github.com/actau-dev/actau/pkg/ledger"
	"github.com/actau-dev/actau/pkg/reconcile"
	"github.com/actau-dev/actau/pkg/statement"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "actau",
	Short: "Import bank transaction listing exports into an Actual budget server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var importCmd = &cobra.Command{
	Use:   "import [flags] <statement.csv> [statement2.csv ...]",
	Short: "Classify statement rows and import them into the budget",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		level := log.InfoLevel
		if verbose {
			level = log.DebugLevel
		}
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "actau",
			Level:           level,
		})

		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		client, err := ledger.New(cfg.ServerURL, cfg.Password, cfg.SyncID, logger)
		if err != nil {
			return err
		}

		taxonomy := reconcile.New(client, logger, dryRun)
		classifier := classify.New(cfg.Accounts, taxonomy, logger)
		reader := statement.New(logger)

		imp := importer.New(reader, classifier, client, logger, dryRun)
		return imp.Run(args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is ./actau.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Debug logging")

	importCmd.Flags().String("server", "", "Budget server URL")
	importCmd.Flags().String("password", "", "Budget server API password")
	importCmd.Flags().String("sync-id", "", "Budget sync id")
	importCmd.Flags().StringArray("account", nil, "Account mapping pair bank-account-number=ledger-account-id (repeatable)")
	importCmd.Flags().String("accounts-file", "", "YAML file with an accounts: mapping")
	importCmd.Flags().Bool("dry-run", false, "Classify and preview without importing")

	rootCmd.AddCommand(importCmd)
}

func main() {
	_ = gotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
