package service

import (
	"testing"
	"time"

	"github.com/raphaelgruber/aimreport/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withStatuses(counts map[models.Status]int) []*models.WorkOrder {
	var out []*models.WorkOrder
	for _, status := range models.Statuses {
		for range counts[status] {
			out = append(out, &models.WorkOrder{Seq: len(out), Status: status})
		}
	}
	return out
}

func TestSummarizeStatusCounts(t *testing.T) {
	records := withStatuses(map[models.Status]int{
		models.StatusPending:     4,
		models.StatusComplete:    3,
		models.StatusIncomplete:  2,
		models.StatusNeedsReview: 1,
	})
	require.Len(t, records, 10)

	s := Summarize(records)
	assert.Equal(t, 10, s.Total)
	assert.Equal(t, map[models.Status]int{
		models.StatusPending:     4,
		models.StatusComplete:    3,
		models.StatusIncomplete:  2,
		models.StatusNeedsReview: 1,
	}, s.ByStatus)
	assert.Zero(t, s.Unclassified)
	assert.Zero(t, s.Blank)
}

func TestSummarizeOutOfVocabulary(t *testing.T) {
	records := []*models.WorkOrder{
		{Status: "complete"},
		{Status: "Done"},
		{Status: ""},
		{Status: models.StatusComplete},
	}

	s := Summarize(records)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 1, s.ByStatus[models.StatusComplete])
	assert.Equal(t, 0, s.ByStatus[models.StatusPending], "zero-filled")
	assert.Len(t, s.ByStatus, 4)
	assert.Equal(t, 2, s.Unclassified)
	assert.Equal(t, 1, s.Blank)
}

func TestSummarizeAges(t *testing.T) {
	tests := []struct {
		name    string
		ages    []*int
		mean    *float64
		overdue int
	}{
		{name: "no ages", ages: []*int{nil, nil}, mean: nil},
		{name: "empty set", ages: nil, mean: nil},
		{name: "rounded to one decimal", ages: []*int{models.IntPtr(1), models.IntPtr(2), models.IntPtr(2)}, mean: ptr(1.7)},
		{name: "absent ages are ignored", ages: []*int{models.IntPtr(10), nil, models.IntPtr(20)}, mean: ptr(15.0)},
		{name: "overdue from thirty", ages: []*int{models.IntPtr(29), models.IntPtr(30), models.IntPtr(45)}, mean: ptr(34.7), overdue: 2},
		{name: "negative ages count", ages: []*int{models.IntPtr(-2), models.IntPtr(4)}, mean: ptr(1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := make([]*models.WorkOrder, len(tt.ages))
			for i, age := range tt.ages {
				records[i] = &models.WorkOrder{AgeDays: age, Status: models.StatusPending}
			}

			s := Summarize(records)
			if tt.mean == nil {
				assert.Nil(t, s.MeanAge)
			} else {
				require.NotNil(t, s.MeanAge)
				assert.InDelta(t, *tt.mean, *s.MeanAge, 1e-9)
			}
			assert.Equal(t, tt.overdue, s.OverdueCount)
		})
	}
}

func TestBuildDashboard(t *testing.T) {
	records := located(
		[]string{"1", "2", "3"},
		[]string{"", "", ""},
		[]string{"0548", "0485", "0548"},
	)
	for _, r := range records {
		r.Status = models.StatusPending
	}
	records[2].Status = models.StatusComplete
	parts := Partition(records)

	d := BuildDashboard("run-1", time.Date(2024, 3, 11, 23, 0, 0, 0, time.UTC), records, parts)
	assert.Equal(t, "run-1", d.RunID)
	assert.Equal(t, "2024-03-11", d.AsOf)
	assert.Equal(t, 3, d.Overall.Total)
	require.Len(t, d.Buildings, 2)
	assert.Equal(t, "0485", d.Buildings[0].Code)
	assert.Equal(t, 1, d.Buildings[0].Summary.Total)
	assert.Equal(t, 1, d.Buildings[1].Summary.ByStatus[models.StatusComplete])
}

func ptr(f float64) *float64 {
	return &f
}
