package service

import (
	"cmp"
	"slices"
	"sort"

	"github.com/raphaelgruber/aimreport/internal/location"
	"github.com/raphaelgruber/aimreport/internal/models"
	"github.com/samber/lo"
)

// UnassignedPartition names the partition of records with no building.
const UnassignedPartition = "UNASSIGNED"

type rankedRecord struct {
	key location.RankKey
	rec *models.WorkOrder
}

// SortByLocation returns the records ordered by floor rank then room rank.
// Records with equal ranks keep their input order. The input slice is not modified
// and the rank keys do not outlive the call.
func SortByLocation(records []*models.WorkOrder) []*models.WorkOrder {
	ranked := make([]rankedRecord, len(records))
	for i, r := range records {
		ranked[i] = rankedRecord{key: location.KeyOf(r.Floor, r.Room), rec: r}
	}

	slices.SortStableFunc(ranked, func(a, b rankedRecord) int {
		if c := a.key.Compare(b.key); c != 0 {
			return c
		}
		return cmp.Compare(a.rec.Seq, b.rec.Seq)
	})

	sorted := make([]*models.WorkOrder, len(ranked))
	for i, r := range ranked {
		sorted[i] = r.rec
	}
	return sorted
}

// Partition splits a sorted record set by building code. Nothing is returned when
// the set holds fewer than two distinct codes. Otherwise there is one partition per
// code, in code order, plus UnassignedPartition for records without a code, so the
// partitions together hold every record exactly once. Each partition keeps the
// order of the input.
func Partition(sorted []*models.WorkOrder) []models.Partition {
	codes := lo.Uniq(lo.FilterMap(sorted, func(r *models.WorkOrder, _ int) (string, bool) {
		return r.BuildingCode, r.BuildingCode != ""
	}))
	if len(codes) < 2 {
		return nil
	}
	sort.Strings(codes)

	parts := make([]models.Partition, 0, len(codes)+1)
	for _, code := range codes {
		records := lo.Filter(sorted, func(r *models.WorkOrder, _ int) bool {
			return r.BuildingCode == code
		})
		name := code
		if named, ok := lo.Find(records, func(r *models.WorkOrder) bool { return r.BuildingName != "" }); ok {
			name = named.BuildingName
		}
		parts = append(parts, models.Partition{Code: code, Name: name, Records: records})
	}

	unassigned := lo.Filter(sorted, func(r *models.WorkOrder, _ int) bool {
		return r.BuildingCode == ""
	})
	if len(unassigned) > 0 {
		parts = append(parts, models.Partition{Name: UnassignedPartition, Records: unassigned})
	}
	return parts
}
