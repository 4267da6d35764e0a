package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/raphaelgruber/aimreport/internal/location"
	"github.com/raphaelgruber/aimreport/internal/models"
	"github.com/raphaelgruber/aimreport/internal/service"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var (
	showBuilding string
	showStatus   string
	showOverdue  bool
	showLimit    int
)

var showCmd = &cobra.Command{
	Use:   "show <export.csv>",
	Short: "Print work orders in location order",
	Long: `Print the processed work orders as a table, ordered by floor and room.

Status cells are colored per status and age cells along a gradient that turns
red at 30 business days. Nothing is written.

Examples:
  aimreport show export.csv
  aimreport show export.csv --building ETB --status Pending
  aimreport show export.csv --overdue`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVarP(&showBuilding, "building", "b", "", "only this building (code or name)")
	showCmd.Flags().StringVarP(&showStatus, "status", "s", "", "only this inspection status")
	showCmd.Flags().BoolVar(&showOverdue, "overdue", false, "only work orders aged 30 business days or more")
	showCmd.Flags().IntVarP(&showLimit, "limit", "n", 0, "max rows (0 = all)")
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	read, err := readInput(args[0])
	if err != nil {
		return err
	}
	res, err := newPipeline().Run(ctx, read.Batch, service.RunOptions{SkipPartition: true})
	if err != nil {
		return err
	}

	records := filterRecords(res.Records, recordFilter{
		building: showBuilding,
		status:   models.Status(showStatus),
		overdue:  showOverdue,
	})
	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No work orders found.")
		return nil
	}
	total := len(records)
	if showLimit > 0 && len(records) > showLimit {
		records = records[:showLimit]
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderRecords(records, defaultTheme, colorEnabled()))
	if len(records) < total {
		fmt.Fprintln(cmd.OutOrStdout(), defaultTheme.hintStyle().Render(fmt.Sprintf("%d of %d work orders shown", len(records), total)))
	}
	printStages(cmd)
	return nil
}

type recordFilter struct {
	building string
	status   models.Status
	overdue  bool
}

// filterRecords keeps the order of records.
func filterRecords(records []*models.WorkOrder, f recordFilter) []*models.WorkOrder {
	code := ""
	if f.building != "" {
		if c, ok := location.CanonicalCode(f.building); ok {
			code = c
		}
	}
	return lo.Filter(records, func(r *models.WorkOrder, _ int) bool {
		if f.building != "" && !matchesBuilding(r, f.building, code) {
			return false
		}
		if f.status != "" && r.Status != f.status {
			return false
		}
		if f.overdue && (r.AgeDays == nil || *r.AgeDays < service.OverdueDays) {
			return false
		}
		return true
	})
}

func matchesBuilding(r *models.WorkOrder, query, code string) bool {
	if code != "" && r.BuildingCode == code {
		return true
	}
	return r.BuildingName != "" && strings.EqualFold(r.BuildingName, query)
}
