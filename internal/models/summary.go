package models

// DashboardSummary holds the aggregate figures for one record set.
type DashboardSummary struct {
	Total int `json:"total" yaml:"total"`
	// ByStatus always carries all four statuses, zero-filled.
	ByStatus map[Status]int `json:"count_by_status" yaml:"count_by_status"`
	// Unclassified counts non-empty status values outside the vocabulary.
	Unclassified int `json:"unclassified,omitempty" yaml:"unclassified,omitempty"`
	// Blank counts records with no status at all.
	Blank int `json:"blank,omitempty" yaml:"blank,omitempty"`
	// MeanAge is nil when no record has an age.
	MeanAge      *float64 `json:"mean_age" yaml:"mean_age"`
	AgedCount    int      `json:"aged_count" yaml:"aged_count"`
	OverdueCount int      `json:"overdue_count" yaml:"overdue_count"`
}

// BuildingSummary is a DashboardSummary scoped to one partition.
type BuildingSummary struct {
	Code    string           `json:"code" yaml:"code"`
	Name    string           `json:"name" yaml:"name"`
	Summary DashboardSummary `json:"summary" yaml:"summary"`
}

// Dashboard is everything the dashboard renderer receives.
type Dashboard struct {
	RunID     string            `json:"run_id" yaml:"run_id"`
	AsOf      string            `json:"as_of" yaml:"as_of"`
	Overall   DashboardSummary  `json:"overall" yaml:"overall"`
	Buildings []BuildingSummary `json:"buildings,omitempty" yaml:"buildings,omitempty"`
}
