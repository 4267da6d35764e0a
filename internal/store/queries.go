package store

import (
	"context"
	"fmt"
	"time"

	"github.com/raphaelgruber/aimreport/internal/models"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// workOrderRow is the stored form of a work order.
type workOrderRow struct {
	ID           surrealmodels.RecordID `json:"id"`
	Seq          int                    `json:"seq"`
	Description  string                 `json:"description"`
	CreatedRaw   string                 `json:"created_raw"`
	BuildingRaw  string                 `json:"building_raw"`
	Floor        string                 `json:"floor"`
	Room         string                 `json:"room"`
	AgeDays      *int                   `json:"age_days,omitempty"`
	Status       string                 `json:"inspection_status"`
	BuildingCode string                 `json:"building_code"`
	BuildingName string                 `json:"building_name"`
	Fields       map[string]string      `json:"fields,omitempty"`
	LastRun      string                 `json:"last_run"`
	Updated      time.Time              `json:"updated,omitempty"`
}

func (r workOrderRow) toModel() (*models.WorkOrder, error) {
	id, err := models.RecordIDString(r.ID)
	if err != nil {
		return nil, err
	}
	return &models.WorkOrder{
		ID:           id,
		Seq:          r.Seq,
		Description:  r.Description,
		CreatedRaw:   r.CreatedRaw,
		BuildingRaw:  r.BuildingRaw,
		Floor:        r.Floor,
		Room:         r.Room,
		AgeDays:      r.AgeDays,
		Status:       models.Status(r.Status),
		BuildingCode: r.BuildingCode,
		BuildingName: r.BuildingName,
		Fields:       r.Fields,
	}, nil
}

// StatusCount is the number of stored work orders with one status.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// Run is a stored run summary.
type Run struct {
	ID      surrealmodels.RecordID `json:"id"`
	Source  string                 `json:"source"`
	AsOf    string                 `json:"as_of"`
	Total   int                    `json:"total"`
	Overdue int                    `json:"overdue"`
	Created time.Time              `json:"created"`
}

// SaveWorkOrders upserts the records of a run. Derived fields are overwritten;
// the stored inspection status is replaced only by a non-empty one. progress,
// if non-nil, is called after each record.
func (c *Client) SaveWorkOrders(ctx context.Context, runID string, records []*models.WorkOrder, progress func(done, total int)) error {
	sql := `
		UPSERT type::record("work_order", $id) SET
			seq = $seq,
			description = $description,
			created_raw = $created_raw,
			building_raw = $building_raw,
			floor = $floor,
			room = $room,
			age_days = $age_days ?? NONE,
			building_code = $building_code,
			building_name = $building_name,
			inspection_status = IF $status THEN $status ELSE inspection_status ?? "" END,
			fields = $fields ?? NONE,
			last_run = $run_id,
			updated = time::now()
	`

	for i, r := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, err := surrealdb.Query[any](ctx, c.db, sql, map[string]any{
			"id":            r.ID,
			"seq":           r.Seq,
			"description":   r.Description,
			"created_raw":   r.CreatedRaw,
			"building_raw":  r.BuildingRaw,
			"floor":         r.Floor,
			"room":          r.Room,
			"age_days":      r.AgeDays,
			"building_code": r.BuildingCode,
			"building_name": r.BuildingName,
			"status":        string(r.Status),
			"fields":        r.Fields,
			"run_id":        runID,
		})
		if err != nil {
			return fmt.Errorf("save work order %s: %w", r.ID, wrapQueryError(err))
		}
		if progress != nil {
			progress(i+1, len(records))
		}
	}
	return nil
}

// LoadWorkOrders returns every stored work order in input order.
func (c *Client) LoadWorkOrders(ctx context.Context) ([]*models.WorkOrder, error) {
	results, err := surrealdb.Query[[]workOrderRow](ctx, c.db, `SELECT * FROM work_order ORDER BY seq`, nil)
	if err != nil {
		return nil, fmt.Errorf("load work orders: %w", wrapQueryError(err))
	}
	if results == nil || len(*results) == 0 {
		return []*models.WorkOrder{}, nil
	}

	rows := (*results)[0].Result
	out := make([]*models.WorkOrder, 0, len(rows))
	for _, row := range rows {
		wo, err := row.toModel()
		if err != nil {
			return nil, fmt.Errorf("load work orders: %w", err)
		}
		out = append(out, wo)
	}
	return out, nil
}

// LoadStatuses returns the non-empty stored statuses keyed by work order ID.
func (c *Client) LoadStatuses(ctx context.Context) (map[string]models.Status, error) {
	type statusRow struct {
		ID     surrealmodels.RecordID `json:"id"`
		Status string                 `json:"inspection_status"`
	}

	results, err := surrealdb.Query[[]statusRow](ctx, c.db, `
		SELECT id, inspection_status FROM work_order WHERE inspection_status != ""
	`, nil)
	if err != nil {
		return nil, fmt.Errorf("load statuses: %w", wrapQueryError(err))
	}

	statuses := map[string]models.Status{}
	if results == nil || len(*results) == 0 {
		return statuses, nil
	}
	for _, row := range (*results)[0].Result {
		id, err := models.RecordIDString(row.ID)
		if err != nil {
			return nil, fmt.Errorf("load statuses: %w", err)
		}
		statuses[id] = models.Status(row.Status)
	}
	return statuses, nil
}

// GetWorkOrder retrieves a work order by ID. Returns ErrNotFound if it does not exist.
func (c *Client) GetWorkOrder(ctx context.Context, id string) (*models.WorkOrder, error) {
	results, err := surrealdb.Query[[]workOrderRow](ctx, c.db, `
		SELECT * FROM type::record("work_order", $id)
	`, map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("get work order: %w", wrapQueryError(err))
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return (*results)[0].Result[0].toModel()
}

// CountByStatus returns stored work-order counts grouped by status.
func (c *Client) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	results, err := surrealdb.Query[[]StatusCount](ctx, c.db, `
		SELECT inspection_status AS status, count() AS count
		FROM work_order
		GROUP BY status
		ORDER BY status
	`, nil)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", wrapQueryError(err))
	}
	if results == nil || len(*results) == 0 {
		return []StatusCount{}, nil
	}
	return (*results)[0].Result, nil
}

// PruneStale deletes work orders not written by the given run. Returns the
// number deleted (0 if none, so the call is idempotent).
func (c *Client) PruneStale(ctx context.Context, runID string) (int, error) {
	results, err := surrealdb.Query[[]workOrderRow](ctx, c.db, `
		DELETE work_order WHERE last_run != $run_id RETURN BEFORE
	`, map[string]any{"run_id": runID})
	if err != nil {
		return 0, fmt.Errorf("prune work orders: %w", wrapQueryError(err))
	}
	if results == nil || len(*results) == 0 {
		return 0, nil
	}
	return len((*results)[0].Result), nil
}

// SaveRun records the summary of a finished run.
func (c *Client) SaveRun(ctx context.Context, source string, d models.Dashboard) error {
	_, err := surrealdb.Query[any](ctx, c.db, `
		CREATE type::record("report_run", $id) SET
			source = $source,
			as_of = $as_of,
			total = $total,
			overdue = $overdue,
			summary = $summary
	`, map[string]any{
		"id":      d.RunID,
		"source":  source,
		"as_of":   d.AsOf,
		"total":   d.Overall.Total,
		"overdue": d.Overall.OverdueCount,
		"summary": summaryDoc(d.Overall),
	})
	if err != nil {
		return fmt.Errorf("save run: %w", wrapQueryError(err))
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (c *Client) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	results, err := surrealdb.Query[[]Run](ctx, c.db, `
		SELECT id, source, as_of, total, overdue, created FROM report_run
		ORDER BY created DESC
		LIMIT $limit
	`, map[string]any{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", wrapQueryError(err))
	}
	if results == nil || len(*results) == 0 {
		return []Run{}, nil
	}
	return (*results)[0].Result, nil
}

// summaryDoc flattens a summary into a plain document for a FLEXIBLE field.
func summaryDoc(s models.DashboardSummary) map[string]any {
	byStatus := make(map[string]int, len(s.ByStatus))
	for status, n := range s.ByStatus {
		byStatus[string(status)] = n
	}
	doc := map[string]any{
		"total":         s.Total,
		"by_status":     byStatus,
		"unclassified":  s.Unclassified,
		"aged_count":    s.AgedCount,
		"overdue_count": s.OverdueCount,
	}
	if s.MeanAge != nil {
		doc["mean_age"] = *s.MeanAge
	}
	return doc
}
