// Package metrics provides in-memory timing statistics for pipeline stages.
package metrics

import (
	"math"
	"sort"
	"sync"
	"time"
)

// Stage names for the collector.
const (
	StageIngest    = "ingest"
	StageDerive    = "derive"
	StageSort      = "sort"
	StagePartition = "partition"
	StageAggregate = "aggregate"
	StageLoadPrior = "load_prior"
	StagePersist   = "persist"
)

// StageMetrics holds aggregated metrics for a single stage.
type StageMetrics struct {
	Count     int64
	Items     int64
	TotalTime time.Duration
	MinTime   time.Duration
	MaxTime   time.Duration
}

// StageSnapshot provides computed stats from raw metrics.
type StageSnapshot struct {
	Stage       string
	Count       int64
	Items       int64
	TotalTimeMs int64
	AvgTimeMs   float64
	MinTimeMs   int64
	MaxTimeMs   int64
}

// Snapshot represents all stage statistics at a point in time.
type Snapshot struct {
	UptimeSeconds float64
	Stages        []StageSnapshot
}

// Collector aggregates in-memory timing statistics.
// All methods are thread-safe. A nil *Collector discards everything.
type Collector struct {
	mu        sync.RWMutex
	startTime time.Time
	stages    map[string]*StageMetrics
}

// NewCollector creates a new metrics collector.
func NewCollector() *Collector {
	return &Collector{
		startTime: time.Now(),
		stages:    make(map[string]*StageMetrics),
	}
}

// getOrCreate returns existing metrics or creates new ones for a stage.
// Caller must hold write lock.
func (c *Collector) getOrCreate(stage string) *StageMetrics {
	m, ok := c.stages[stage]
	if !ok {
		m = &StageMetrics{MinTime: time.Duration(math.MaxInt64)}
		c.stages[stage] = m
	}
	return m
}

// RecordTiming records one execution of a stage that processed items records.
func (c *Collector) RecordTiming(stage string, duration time.Duration, items int) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	m := c.getOrCreate(stage)
	m.Count++
	m.Items += int64(items)
	m.TotalTime += duration

	if duration < m.MinTime {
		m.MinTime = duration
	}
	if duration > m.MaxTime {
		m.MaxTime = duration
	}
}

// Time returns a func that records the elapsed time for stage when called.
//
//	defer c.Time(metrics.StageSort, len(records))()
func (c *Collector) Time(stage string, items int) func() {
	start := time.Now()
	return func() {
		c.RecordTiming(stage, time.Since(start), items)
	}
}

func snapshotStage(stage string, m *StageMetrics) StageSnapshot {
	return StageSnapshot{
		Stage:       stage,
		Count:       m.Count,
		Items:       m.Items,
		TotalTimeMs: m.TotalTime.Milliseconds(),
		AvgTimeMs:   float64(m.TotalTime.Milliseconds()) / float64(m.Count),
		MinTimeMs:   m.MinTime.Milliseconds(),
		MaxTimeMs:   m.MaxTime.Milliseconds(),
	}
}

// Snapshot returns a point-in-time snapshot of all stages, sorted by name.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := Snapshot{UptimeSeconds: time.Since(c.startTime).Seconds()}
	for stage, m := range c.stages {
		if m.Count == 0 {
			continue
		}
		snap.Stages = append(snap.Stages, snapshotStage(stage, m))
	}
	sort.Slice(snap.Stages, func(i, j int) bool { return snap.Stages[i].Stage < snap.Stages[j].Stage })
	return snap
}
