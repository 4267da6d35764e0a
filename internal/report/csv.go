// Package report writes pipeline output back to CSV and reads a previous output
// as prior state.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/raphaelgruber/aimreport/internal/models"
	"github.com/raphaelgruber/aimreport/internal/parser"
	"github.com/raphaelgruber/aimreport/internal/service"
)

// Output column names. Re-reading an output file resolves these through the
// ordinary header rules, so a report can serve as the next run's input.
const (
	ColWorkOrder    = "Work Order"
	ColBuilding     = "Building"
	ColBuildingName = "Building Name"
	ColFloor        = "Floor"
	ColRoom         = "Room"
	ColAge          = "Age (Work Days)"
	ColStatus       = "Inspection Status"
)

// DerivedColumns lists the columns written ahead of the source columns.
var DerivedColumns = []string{ColWorkOrder, ColBuilding, ColBuildingName, ColFloor, ColRoom, ColAge, ColStatus}

// Header returns the output header row for a batch: the derived columns, then
// every source column whose name they do not already use.
func Header(batch *models.Batch) []string {
	header := slices.Clone(DerivedColumns)
	for _, col := range batch.Columns {
		if !slices.ContainsFunc(DerivedColumns, func(d string) bool { return strings.EqualFold(d, col) }) {
			header = append(header, col)
		}
	}
	return header
}

// WriteCSV writes records under the batch's output header.
func WriteCSV(w io.Writer, batch *models.Batch, records []*models.WorkOrder) error {
	header := Header(batch)
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(row(header, r)); err != nil {
			return fmt.Errorf("write record %s: %w", r.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func row(header []string, r *models.WorkOrder) []string {
	building := r.BuildingCode
	if building == "" {
		building = r.BuildingRaw
	}
	age := ""
	if r.AgeDays != nil {
		age = strconv.Itoa(*r.AgeDays)
	}

	out := make([]string, len(header))
	copy(out, []string{r.ID, building, r.BuildingName, r.Floor, r.Room, age, string(r.Status)})
	for i := len(DerivedColumns); i < len(header); i++ {
		out[i] = r.Fields[header[i]]
	}
	return out
}

// WriteFile writes records to path, replacing any existing file.
func WriteFile(path string, batch *models.Batch, records []*models.WorkOrder) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return WriteCSV(f, batch, records)
}

// PartitionPath returns the file a partition is written to: the output path with
// the partition name appended to its base name.
func PartitionPath(out string, p models.Partition) string {
	ext := filepath.Ext(out)
	if ext == "" {
		ext = ".csv"
	}
	base := strings.TrimSuffix(out, filepath.Ext(out))
	return base + "_" + fileSafe(p.Name) + ext
}

// WritePartitions writes one file per partition next to out and returns their paths.
func WritePartitions(out string, batch *models.Batch, parts []models.Partition) ([]string, error) {
	paths := make([]string, 0, len(parts))
	for _, p := range parts {
		path := PartitionPath(out, p)
		if err := WriteFile(path, batch, p.Records); err != nil {
			return paths, fmt.Errorf("partition %s: %w", p.Name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func fileSafe(name string) string {
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			return r
		}
		return '_'
	}, strings.TrimSpace(name))
	if name == "" {
		return service.UnassignedPartition
	}
	return name
}

// LoadPrior reads a previous output file and returns its statuses by record ID.
// A missing file is not an error: there is simply no prior state.
func LoadPrior(path string) (map[string]models.Status, error) {
	res, err := parser.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]models.Status{}, nil
		}
		return nil, fmt.Errorf("load prior run: %w", err)
	}
	return service.PriorStatuses(res.Batch.Records), nil
}
