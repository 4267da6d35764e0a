package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/raphaelgruber/aimreport/internal/models"
	"github.com/raphaelgruber/aimreport/internal/store"
	"github.com/spf13/cobra"
)

var (
	storeRunsLimit int
	storeWipeYes   bool
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Inspect the SurrealDB work-order store",
	Long: `Inspect or reset the SurrealDB store used to carry statuses between runs.

Connection settings come from SURREALDB_URL, SURREALDB_NAMESPACE,
SURREALDB_DATABASE, SURREALDB_USER, SURREALDB_PASS and SURREALDB_AUTH_LEVEL.`,
}

var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Count stored work orders per status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		db, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer db.Close(ctx)

		counts, err := db.CountByStatus(ctx)
		if err != nil {
			return err
		}
		if len(counts) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No work orders stored.")
			return nil
		}
		for _, c := range counts {
			status := c.Status
			if status == "" {
				status = "(blank)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "- %s (%d)\n", status, c.Count)
		}
		return nil
	},
}

var storeRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		db, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer db.Close(ctx)

		runs, err := db.ListRuns(ctx, storeRunsLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No runs stored.")
			return nil
		}
		for _, r := range runs {
			fmt.Fprintf(cmd.OutOrStdout(), "- %s  %s  %d work orders, %d overdue  %s\n",
				r.Created.Local().Format("2006-01-02 15:04"), r.AsOf, r.Total, r.Overdue, r.Source)
		}
		return nil
	},
}

var storeGetCmd = &cobra.Command{
	Use:   "get <work-order-id>",
	Short: "Show one stored work order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		db, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer db.Close(ctx)

		wo, err := db.GetWorkOrder(ctx, args[0])
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("work order %q is not stored", args[0])
		}
		if err != nil {
			return err
		}
		res, err := rederive(ctx, newPipeline(), []*models.WorkOrder{wo}, true)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderRecords(res.Records, defaultTheme, colorEnabled()))
		return nil
	},
}

var storeWipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete all stored work orders and runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !storeWipeYes {
			return errors.New("refusing to wipe without --yes")
		}
		ctx := context.Background()
		db, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer db.Close(ctx)

		if err := db.WipeData(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), defaultTheme.completedStyle().Render("✓ Store wiped"))
		return nil
	},
}

func init() {
	storeRunsCmd.Flags().IntVarP(&storeRunsLimit, "limit", "n", 20, "max runs")
	storeWipeCmd.Flags().BoolVar(&storeWipeYes, "yes", false, "confirm deletion")

	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeRunsCmd)
	storeCmd.AddCommand(storeGetCmd)
	storeCmd.AddCommand(storeWipeCmd)
}
