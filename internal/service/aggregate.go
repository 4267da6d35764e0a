package service

import (
	"math"
	"time"

	"github.com/raphaelgruber/aimreport/internal/models"
	"github.com/samber/lo"
)

// OverdueDays is the age, in business days, from which a work order is overdue.
const OverdueDays = 30

// Summarize computes the dashboard figures for a record set.
func Summarize(records []*models.WorkOrder) models.DashboardSummary {
	s := models.DashboardSummary{
		Total:    len(records),
		ByStatus: make(map[models.Status]int, len(models.Statuses)),
	}
	for _, status := range models.Statuses {
		s.ByStatus[status] = 0
	}

	for _, r := range records {
		switch {
		case r.Status.Valid():
			s.ByStatus[r.Status]++
		case r.Status.IsBlank():
			s.Blank++
		default:
			s.Unclassified++
		}
	}

	aged := lo.Filter(records, func(r *models.WorkOrder, _ int) bool { return r.AgeDays != nil })
	s.AgedCount = len(aged)
	if len(aged) > 0 {
		total := lo.SumBy(aged, func(r *models.WorkOrder) int { return *r.AgeDays })
		mean := math.Round(float64(total)/float64(len(aged))*10) / 10
		s.MeanAge = &mean
	}
	s.OverdueCount = lo.CountBy(aged, func(r *models.WorkOrder) bool { return *r.AgeDays >= OverdueDays })

	return s
}

// BuildDashboard summarizes the full set and each partition.
func BuildDashboard(runID string, asOf time.Time, records []*models.WorkOrder, parts []models.Partition) models.Dashboard {
	d := models.Dashboard{
		RunID:   runID,
		AsOf:    asOf.Format("2006-01-02"),
		Overall: Summarize(records),
	}
	for _, p := range parts {
		d.Buildings = append(d.Buildings, models.BuildingSummary{
			Code:    p.Code,
			Name:    p.Name,
			Summary: Summarize(p.Records),
		})
	}
	return d
}
