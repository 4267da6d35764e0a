package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/raphaelgruber/aimreport/internal/models"
	"github.com/raphaelgruber/aimreport/internal/service"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	dashboardFormat      string
	dashboardFromStore   bool
	dashboardNoPartition bool
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard [report.csv]",
	Short: "Summarize statuses and ages",
	Long: `Show status counts, mean age and overdue work orders.

The summary is computed from an export or report file, or from the work orders
saved in the store (--store). Nothing is written.

Examples:
  aimreport dashboard export_report.csv
  aimreport dashboard export_report.csv --format yaml
  aimreport dashboard --store --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDashboard,
}

func init() {
	dashboardCmd.Flags().StringVarP(&dashboardFormat, "format", "f", "text", "output format: text, yaml or json")
	dashboardCmd.Flags().BoolVar(&dashboardFromStore, "store", false, "summarize the work orders saved in SurrealDB")
	dashboardCmd.Flags().BoolVar(&dashboardNoPartition, "no-partition", false, "omit the per-building breakdown")
}

func runDashboard(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var d models.Dashboard
	switch {
	case len(args) == 1:
		read, err := readInput(args[0])
		if err != nil {
			return err
		}
		res, err := newPipeline().Run(ctx, read.Batch, service.RunOptions{SkipPartition: dashboardNoPartition})
		if err != nil {
			return err
		}
		d = res.Dashboard

	case dashboardFromStore || cfg.StoreEnabled:
		db, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer db.Close(context.Background())

		records, err := db.LoadWorkOrders(ctx)
		if err != nil {
			return err
		}
		res, err := rederive(ctx, newPipeline(), records, dashboardNoPartition)
		if err != nil {
			return err
		}
		d = res.Dashboard

	default:
		return errors.New("give a report file or use --store")
	}

	if err := writeDashboard(cmd.OutOrStdout(), d, dashboardFormat); err != nil {
		return err
	}
	printStages(cmd)
	return nil
}

// rederive runs stored work orders through the pipeline again so ages count up
// to the run date. Stored statuses are kept.
func rederive(ctx context.Context, p *service.Pipeline, records []*models.WorkOrder, skipPartition bool) (*service.Result, error) {
	return p.Run(ctx, &models.Batch{Records: records}, service.RunOptions{SkipPartition: skipPartition})
}

// writeDashboard encodes d in the requested format.
func writeDashboard(w io.Writer, d models.Dashboard, format string) error {
	switch format {
	case "text", "":
		_, err := fmt.Fprint(w, renderDashboard(d, defaultTheme))
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want text, yaml or json)", format)
	}
}
