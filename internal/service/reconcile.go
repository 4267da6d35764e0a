package service

import "github.com/raphaelgruber/aimreport/internal/models"

// Reconcile returns the inspection status a record should carry after this run.
// A set status is never replaced. A blank one takes the status the record had in
// the previous run, and failing that, Pending.
func Reconcile(current, prior models.Status) models.Status {
	return models.DeriveIfAbsent(current, models.Status.IsBlank,
		func() models.Status { return prior },
		func() models.Status { return models.StatusPending },
	)
}

// PriorStatuses indexes the non-blank statuses of a previous run's records by ID.
func PriorStatuses(records []*models.WorkOrder) map[string]models.Status {
	prior := make(map[string]models.Status, len(records))
	for _, r := range records {
		if r.ID != "" && !r.Status.IsBlank() {
			prior[r.ID] = r.Status
		}
	}
	return prior
}
