package cli

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/raphaelgruber/aimreport/internal/metrics"
	"github.com/raphaelgruber/aimreport/internal/models"
	"github.com/raphaelgruber/aimreport/internal/report"
	"github.com/raphaelgruber/aimreport/internal/service"
	"github.com/raphaelgruber/aimreport/internal/store"
	"github.com/spf13/cobra"
)

var (
	runOutput      string
	runPrevious    string
	runNoPartition bool
	runStore       bool
	runPrune       bool
	runQuiet       bool
)

var runCmd = &cobra.Command{
	Use:   "run <export.csv>",
	Short: "Build the inspection report for an export",
	Long: `Run the full pipeline on a work-order export and write the report.

The report holds the derived columns (work order, building, floor, room, age,
inspection status) followed by every original column, ordered by floor and
room. When the export covers more than one building, one extra file per
building is written next to the report.

Statuses already present in the export are kept. Blank statuses are taken from
the previous report (--previous) or the store (--store), and otherwise set to
Pending. The report can itself be fed back in as the next export.

Examples:
  aimreport run export.csv
  aimreport run export.csv -o weekly.csv --previous last_week.csv
  aimreport run export.csv --store --prune`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "report path (default <export>_report.csv)")
	runCmd.Flags().StringVarP(&runPrevious, "previous", "p", "", "previous report to carry statuses from")
	runCmd.Flags().BoolVar(&runNoPartition, "no-partition", false, "do not write per-building files")
	runCmd.Flags().BoolVar(&runStore, "store", false, "load and save statuses in SurrealDB (also AIMREPORT_STORE=true)")
	runCmd.Flags().BoolVar(&runPrune, "prune", false, "with --store, delete stored work orders missing from this export")
	runCmd.Flags().BoolVarP(&runQuiet, "quiet", "q", false, "do not print the dashboard")
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	input := args[0]

	out := runOutput
	if out == "" {
		out = strings.TrimSuffix(input, filepath.Ext(input)) + "_report.csv"
	}

	read, err := readInput(input)
	if err != nil {
		return err
	}

	useStore := runStore || cfg.StoreEnabled
	var db *store.Client
	if useStore {
		db, err = openStore(ctx)
		if err != nil {
			return err
		}
		defer db.Close(context.Background())
	}

	prior, err := loadPrior(ctx, db, runPrevious)
	if err != nil {
		return err
	}

	res, err := newPipeline().Run(ctx, read.Batch, service.RunOptions{
		Prior:         prior,
		SkipPartition: runNoPartition,
	})
	if err != nil {
		return err
	}

	if err := report.WriteFile(out, read.Batch, res.Records); err != nil {
		return err
	}
	logger.Info("report written", "file", out, "records", len(res.Records))

	paths, err := report.WritePartitions(out, read.Batch, res.Partitions)
	if err != nil {
		return err
	}
	for _, p := range paths {
		logger.Info("building report written", "file", p)
	}

	if db != nil {
		if err := persistRun(ctx, db, filepath.Base(input), res); err != nil {
			return err
		}
	}

	if !runQuiet {
		fmt.Fprint(cmd.OutOrStdout(), renderDashboard(res.Dashboard, defaultTheme))
	}
	printStages(cmd)
	return nil
}

// loadPrior merges prior statuses from the store and a previous report.
// Entries from the report file win.
func loadPrior(ctx context.Context, db *store.Client, previous string) (map[string]models.Status, error) {
	defer collector.Time(metrics.StageLoadPrior, 0)()

	prior := map[string]models.Status{}
	if db != nil {
		stored, err := db.LoadStatuses(ctx)
		if err != nil {
			return nil, err
		}
		maps.Copy(prior, stored)
	}
	if previous != "" {
		fromFile, err := report.LoadPrior(previous)
		if err != nil {
			return nil, err
		}
		maps.Copy(prior, fromFile)
	}
	logger.Debug("prior statuses loaded", "count", len(prior))
	return prior, nil
}

// persistRun saves the run's records and summary, showing a progress bar on a terminal.
func persistRun(ctx context.Context, db *store.Client, source string, res *service.Result) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	done := collector.Time(metrics.StagePersist, len(res.Records))
	defer done()

	job := service.NewJob("persist", len(res.Records))
	finished := make(chan error, 1)
	go func() {
		err := db.SaveWorkOrders(ctx, res.RunID, res.Records, job.UpdateProgress)
		if err != nil {
			job.Fail(err)
		} else {
			job.Complete()
		}
		finished <- err
	}()

	if isTerminal(os.Stdout) && !runQuiet {
		if err := RunJobProgress(job, "work orders"); errors.Is(err, errInterrupted) {
			cancel()
		}
	}
	if err := <-finished; err != nil {
		return fmt.Errorf("save work orders: %w", err)
	}

	if runPrune {
		n, err := db.PruneStale(ctx, res.RunID)
		if err != nil {
			return err
		}
		logger.Info("stale work orders pruned", "count", n)
	}

	saveCtx, saveCancel := context.WithTimeout(ctx, 10*time.Second)
	defer saveCancel()
	return db.SaveRun(saveCtx, source, res.Dashboard)
}
