// Package cli provides the command-line interface for aimreport.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/raphaelgruber/aimreport/internal/config"
	"github.com/raphaelgruber/aimreport/internal/location"
	"github.com/raphaelgruber/aimreport/internal/metrics"
	"github.com/raphaelgruber/aimreport/internal/parser"
	"github.com/raphaelgruber/aimreport/internal/service"
	"github.com/raphaelgruber/aimreport/internal/store"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose   bool
	noColor   bool
	rulesFile string

	// Loaded once per invocation
	cfg       config.Config
	rules     config.Rules
	logger    *slog.Logger
	closeLog  func() error
	collector *metrics.Collector
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "aimreport",
	Short: "Normalize and rank maintenance work-order exports",
	Long: `aimreport turns a maintenance work-order export into an inspection report.

Floor and room are extracted from each free-text description, buildings are
resolved, ages are counted in business days and blank inspection statuses are
set to Pending. Statuses that are already set are never changed. Records are
ordered by floor and room, split per building, and summarized on a dashboard.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()

		level := cfg.LogLevel
		if verbose {
			level = slog.LevelDebug
		}
		logger, closeLog = config.SetupLogger(cfg.LogFile, level)
		slog.SetDefault(logger)

		path := rulesFile
		if path == "" {
			path = cfg.RulesFile
		}
		var err error
		rules, err = config.LoadRules(path)
		if err != nil {
			return err
		}

		collector = metrics.NewCollector()
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if closeLog != nil {
			if err := closeLog(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
			}
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging and stage timings")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&rulesFile, "rules", "", "YAML rules file (buildings, floor rules)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(buildingsCmd)
	rootCmd.AddCommand(storeCmd)
}

// newPipeline builds a pipeline from the loaded rules and config.
func newPipeline() *service.Pipeline {
	p := service.NewPipeline(
		location.NewDirectory(rules.Buildings),
		location.Normalizer{TwoDigitFloors: rules.TwoDigitFloors},
		logger,
	)
	p.Concurrency = cfg.Concurrency
	p.Metrics = collector
	return p
}

// openStore connects to SurrealDB and makes sure the schema exists.
func openStore(ctx context.Context) (*store.Client, error) {
	client, err := store.NewClient(ctx, store.Config{
		URL:       cfg.SurrealDBURL,
		Namespace: cfg.SurrealDBNamespace,
		Database:  cfg.SurrealDBDatabase,
		Username:  cfg.SurrealDBUser,
		Password:  cfg.SurrealDBPass,
		AuthLevel: cfg.SurrealDBAuthLevel,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := client.InitSchema(ctx); err != nil {
		_ = client.Close(ctx)
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return client, nil
}

// readInput ingests an export and logs its row warnings.
func readInput(path string) (*parser.ReadResult, error) {
	start := time.Now()
	res, err := parser.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	collector.RecordTiming(metrics.StageIngest, time.Since(start), len(res.Batch.Records))

	for _, w := range res.Warnings {
		logger.Warn("input row", "file", path, "row", w.Row, "problem", w.Message)
	}
	logger.Debug("input read",
		"file", path,
		"records", len(res.Batch.Records),
		"encoding", res.Encoding,
		"description_column", res.Batch.Schema.Description,
		"id_column", res.Batch.Schema.ID,
		"created_column", res.Batch.Schema.Created,
		"building_column", res.Batch.Schema.Building,
		"status_column", res.Batch.Schema.Status)
	return res, nil
}

// colorEnabled reports whether stdout should get colored cells.
func colorEnabled() bool {
	return !noColor && os.Getenv("NO_COLOR") == "" && isTerminal(os.Stdout)
}

// printStages prints stage timings when --verbose is set.
func printStages(cmd *cobra.Command) {
	if !verbose {
		return
	}
	fmt.Fprintln(cmd.ErrOrStderr(), renderStages(collector.Snapshot(), defaultTheme))
}
