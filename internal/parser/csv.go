// Package parser reads work-order exports and extracts location tokens from their
// free-text descriptions.
package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/raphaelgruber/aimreport/internal/models"
)

var (
	// ErrMissingDescription means no row of the input carries a description.
	// There is nothing to extract from, so the whole run fails.
	ErrMissingDescription = errors.New("missing required description field")

	// ErrEmptyInput means the file has no header row.
	ErrEmptyInput = errors.New("empty input: no header row found")
)

// idNamespace seeds synthesized record IDs for exports without a work-order column.
var idNamespace = uuid.MustParse("6f1c9b52-3d5e-4d8a-9a51-7c0e2b8f4a13")

// ParseWarning is a non-fatal problem with one input row.
type ParseWarning struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ReadResult is an ingested export.
type ReadResult struct {
	Batch    *models.Batch
	Warnings []ParseWarning
	Encoding string
}

// ReadFile ingests the export at path.
func ReadFile(path string) (*ReadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return Read(data)
}

// Read ingests a CSV export. Headers are cleaned and the pipeline columns are
// resolved once; each row becomes a WorkOrder in file order. Rows with too few or
// too many cells are padded or truncated with a warning.
func Read(data []byte) (*ReadResult, error) {
	decoded, encoding, err := decodeInput(data)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	raw, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyInput
		}
		return nil, fmt.Errorf("read header row: %w", err)
	}

	headers := cleanHeaders(raw)
	schema := resolveSchema(headers)
	if schema.Description == "" {
		return nil, fmt.Errorf("%w: no description column in %v", ErrMissingDescription, headers)
	}

	result := &ReadResult{
		Batch:    &models.Batch{Columns: headers, Schema: schema},
		Encoding: encoding,
	}
	ids := newIDAllocator()
	described := false
	rowNum := 1

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++
		if err != nil {
			result.Warnings = append(result.Warnings, ParseWarning{Row: rowNum, Message: fmt.Sprintf("parse error: %v", err)})
			continue
		}
		if isBlankRow(row) {
			continue
		}
		if len(row) != len(headers) {
			result.Warnings = append(result.Warnings, ParseWarning{
				Row:     rowNum,
				Message: fmt.Sprintf("row has %d columns, expected %d", len(row), len(headers)),
			})
			row = fitRow(row, len(headers))
		}

		fields := make(map[string]string, len(headers))
		for i, h := range headers {
			fields[h] = row[i]
		}

		wo := &models.WorkOrder{
			Seq:         len(result.Batch.Records),
			Description: strings.TrimSpace(fields[schema.Description]),
			Fields:      fields,
		}
		if schema.Created != "" {
			wo.CreatedRaw = strings.TrimSpace(fields[schema.Created])
		}
		if schema.Building != "" {
			wo.BuildingRaw = strings.TrimSpace(fields[schema.Building])
		}
		if schema.Status != "" {
			wo.Status = models.Status(strings.TrimSpace(fields[schema.Status]))
		}
		if schema.ID != "" {
			wo.ID = strings.TrimSpace(fields[schema.ID])
		}
		if wo.ID == "" {
			wo.ID = ids.next(wo.Description, wo.CreatedRaw)
		}
		if wo.Description != "" {
			described = true
		}

		result.Batch.Records = append(result.Batch.Records, wo)
	}

	if !described {
		return nil, fmt.Errorf("%w: column %q is empty in every row", ErrMissingDescription, schema.Description)
	}
	return result, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func fitRow(row []string, n int) []string {
	if len(row) > n {
		return row[:n]
	}
	padded := make([]string, n)
	copy(padded, row)
	return padded
}

// idAllocator derives stable IDs from row content. Identical rows get an
// occurrence suffix so the IDs stay unique within one file.
type idAllocator struct {
	seen map[string]int
}

func newIDAllocator() *idAllocator {
	return &idAllocator{seen: make(map[string]int)}
}

func (a *idAllocator) next(description, created string) string {
	key := description + "\x00" + created
	a.seen[key]++
	if n := a.seen[key]; n > 1 {
		key += "\x00" + strconv.Itoa(n)
	}
	return "wo-" + uuid.NewSHA1(idNamespace, []byte(key)).String()[:13]
}
