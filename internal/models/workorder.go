// Package models defines data structures for the work-order report pipeline.
package models

// WorkOrder is one row of a maintenance work-order export.
//
// Description, CreatedRaw and BuildingRaw come from the source file and are never
// rewritten by the pipeline. Floor, Room, AgeDays and the building identity are
// derived on every run. Status is derived only while it is blank.
type WorkOrder struct {
	// ID is the stable identifier (work-order number, or a deterministic hash).
	ID string `json:"id" yaml:"id"`
	// Seq is the position of the row in the input file.
	Seq int `json:"seq" yaml:"seq"`

	Description string `json:"description" yaml:"description"`
	CreatedRaw  string `json:"created_raw,omitempty" yaml:"created_raw,omitempty"`
	BuildingRaw string `json:"building_raw,omitempty" yaml:"building_raw,omitempty"`

	Floor        string `json:"floor,omitempty" yaml:"floor,omitempty"`
	Room         string `json:"room,omitempty" yaml:"room,omitempty"`
	AgeDays      *int   `json:"age_days,omitempty" yaml:"age_days,omitempty"`
	Status       Status `json:"inspection_status,omitempty" yaml:"inspection_status,omitempty"`
	BuildingCode string `json:"building_code,omitempty" yaml:"building_code,omitempty"`
	BuildingName string `json:"building_name,omitempty" yaml:"building_name,omitempty"`

	// Fields holds every source column by cleaned header name, for write-back.
	Fields map[string]string `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Derived is the group of fields recomputed for a record on each run.
// It is computed in full and then committed to the record with Apply.
type Derived struct {
	Floor        string
	Room         string
	AgeDays      *int
	Status       Status
	BuildingCode string
	BuildingName string
}

// Apply commits d to a copy of w and returns it. The source fields are left as they were.
func (w WorkOrder) Apply(d Derived) WorkOrder {
	w.Floor = d.Floor
	w.Room = d.Room
	w.AgeDays = d.AgeDays
	w.Status = d.Status
	w.BuildingCode = d.BuildingCode
	w.BuildingName = d.BuildingName
	return w
}

// Batch is an ingested file: the records in input order plus the source header layout.
type Batch struct {
	// Columns is the cleaned source header row, in file order.
	Columns []string
	// Schema names the source columns resolved for each pipeline input.
	Schema Schema
	// Records are ordered by Seq.
	Records []*WorkOrder
}

// Schema maps pipeline inputs to the source column that carries them.
// An empty name means the column is missing from the file.
type Schema struct {
	Description string `json:"description" yaml:"description"`
	ID          string `json:"id,omitempty" yaml:"id,omitempty"`
	Created     string `json:"created,omitempty" yaml:"created,omitempty"`
	Building    string `json:"building,omitempty" yaml:"building,omitempty"`
	Status      string `json:"status,omitempty" yaml:"status,omitempty"`
}

// Partition is the subset of a sorted record set that shares one building code.
// It is a view: the records are the same values held by the full set.
type Partition struct {
	Code    string       `json:"code" yaml:"code"`
	Name    string       `json:"name" yaml:"name"`
	Records []*WorkOrder `json:"-" yaml:"-"`
}
