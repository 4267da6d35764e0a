// Package service runs the work-order pipeline: field derivation, status
// reconciliation, location ordering, building partitions and dashboard figures.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/raphaelgruber/aimreport/internal/location"
	"github.com/raphaelgruber/aimreport/internal/metrics"
	"github.com/raphaelgruber/aimreport/internal/models"
	"github.com/raphaelgruber/aimreport/internal/parser"
	"github.com/raphaelgruber/aimreport/internal/workdays"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 4

// Pipeline derives the report fields for an ingested batch.
type Pipeline struct {
	Buildings  *location.Directory
	Normalizer location.Normalizer
	// Now returns the current time. The run date is its UTC calendar date.
	Now func() time.Time
	// Concurrency bounds the per-record derivation workers (default 4).
	Concurrency int
	Logger      *slog.Logger
	Metrics     *metrics.Collector
}

// NewPipeline creates a pipeline with the given building directory.
func NewPipeline(buildings *location.Directory, normalizer location.Normalizer, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		Buildings:   buildings,
		Normalizer:  normalizer,
		Now:         time.Now,
		Concurrency: defaultConcurrency,
		Logger:      logger,
	}
}

// RunOptions configures a pipeline run.
type RunOptions struct {
	// Prior maps record IDs to the statuses they had in the previous run.
	Prior map[string]models.Status
	// SkipPartition disables the per-building split.
	SkipPartition bool
}

// Result is the outcome of a run. Records and partition members are the batch's
// own records, mutated in place and sorted by location.
type Result struct {
	RunID      string
	AsOf       time.Time
	Records    []*models.WorkOrder
	Partitions []models.Partition
	Dashboard  models.Dashboard
	// Unparseable counts source values that could not be interpreted.
	Unparseable int
	// Carried counts statuses taken over from the previous run.
	Carried int
}

// Run derives every record's fields, then sorts, partitions and summarizes the batch.
// Derived fields are committed only once every record has been processed, so a
// cancelled run leaves the batch untouched.
func (p *Pipeline) Run(ctx context.Context, batch *models.Batch, opts RunOptions) (*Result, error) {
	if batch == nil {
		return nil, errors.New("nil batch")
	}
	dir := p.Buildings
	if dir == nil {
		dir = location.NewDirectory(location.DefaultBuildings())
	}

	res := &Result{
		RunID: uuid.NewString(),
		AsOf:  workdays.Day(p.now()),
	}
	logger := p.logger().With("run_id", res.RunID)

	start := time.Now()
	derived := make([]models.Derived, len(batch.Records))
	var unparseable, carried atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency())
	for i, rec := range batch.Records {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			d, issues := p.derive(rec, dir, res.AsOf, opts.Prior)
			for _, issue := range issues {
				logger.Debug("unparseable value", "record", issue.RecordID, "field", issue.Field, "value", issue.Value)
			}
			unparseable.Add(int64(len(issues)))
			if rec.Status.IsBlank() && !opts.Prior[rec.ID].IsBlank() {
				carried.Add(1)
			}
			derived[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("derive fields: %w", err)
	}
	for i, rec := range batch.Records {
		*rec = rec.Apply(derived[i])
	}
	res.Unparseable = int(unparseable.Load())
	res.Carried = int(carried.Load())
	p.Metrics.RecordTiming(metrics.StageDerive, time.Since(start), len(batch.Records))

	done := p.Metrics.Time(metrics.StageSort, len(batch.Records))
	res.Records = SortByLocation(batch.Records)
	done()

	if !opts.SkipPartition {
		done = p.Metrics.Time(metrics.StagePartition, len(res.Records))
		res.Partitions = Partition(res.Records)
		done()
	}

	done = p.Metrics.Time(metrics.StageAggregate, len(res.Records))
	res.Dashboard = BuildDashboard(res.RunID, res.AsOf, res.Records, res.Partitions)
	done()

	logger.Info("pipeline finished",
		"records", len(res.Records),
		"partitions", len(res.Partitions),
		"unparseable", res.Unparseable,
		"carried", res.Carried,
		"elapsed", time.Since(start))

	return res, nil
}

// derive computes the derived fields of one record. It reads only the record and
// the prior map, and returns the source values it could not interpret.
func (p *Pipeline) derive(rec *models.WorkOrder, dir *location.Directory, today time.Time, prior map[string]models.Status) (models.Derived, []*models.UnparseableError) {
	var issues []*models.UnparseableError

	floor, room := p.Normalizer.Normalize(parser.ExtractLocation(rec.Description))

	code, name, err := dir.Resolve(rec.BuildingRaw, rec.Description)
	var perr *models.UnparseableError
	if errors.As(err, &perr) {
		perr.RecordID = rec.ID
		issues = append(issues, perr)
	}

	var age *int
	if rec.CreatedRaw != "" {
		created, err := workdays.ParseDate(rec.CreatedRaw)
		if err != nil {
			issues = append(issues, &models.UnparseableError{RecordID: rec.ID, Field: "created", Value: rec.CreatedRaw})
		} else {
			age = models.IntPtr(workdays.Between(created, today))
		}
	}

	return models.Derived{
		Floor:        floor,
		Room:         room,
		AgeDays:      age,
		Status:       Reconcile(rec.Status, prior[rec.ID]),
		BuildingCode: code,
		BuildingName: name,
	}, issues
}

func (p *Pipeline) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

func (p *Pipeline) concurrency() int {
	if p.Concurrency <= 0 {
		return defaultConcurrency
	}
	return p.Concurrency
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}
