package service

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the state of a background job.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// Job tracks a long-running step, such as persisting a run, so a progress view
// can poll it from another goroutine.
type Job struct {
	ID          string
	Type        string // "persist", "load"
	Status      JobStatus
	Progress    int
	Total       int
	Error       string
	StartedAt   time.Time
	CompletedAt *time.Time

	mu sync.RWMutex
}

// JobSnapshot is a consistent copy of a job's progress.
type JobSnapshot struct {
	ID       string
	Type     string
	Status   JobStatus
	Progress int
	Total    int
	Error    string
	Elapsed  time.Duration
}

// NewJob creates a pending job of the given type.
func NewJob(jobType string, total int) *Job {
	return &Job{
		ID:        uuid.New().String()[:8],
		Type:      jobType,
		Status:    JobStatusPending,
		Total:     total,
		StartedAt: time.Now(),
	}
}

// UpdateProgress records that current of total items are done.
func (j *Job) UpdateProgress(current, total int) {
	if j == nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress = current
	j.Total = total
	if j.Status == JobStatusPending {
		j.Status = JobStatusRunning
	}
}

// Complete marks the job as completed.
func (j *Job) Complete() {
	if j == nil {
		return
	}
	j.mu.Lock()
	j.Status = JobStatusCompleted
	j.Progress = j.Total
	now := time.Now()
	j.CompletedAt = &now
	j.mu.Unlock()

	slog.Debug("job completed", "job_id", j.ID, "type", j.Type, "items", j.Total)
}

// Fail marks the job as failed with err.
func (j *Job) Fail(err error) {
	if j == nil {
		return
	}
	j.mu.Lock()
	j.Status = JobStatusFailed
	j.Error = err.Error()
	now := time.Now()
	j.CompletedAt = &now
	j.mu.Unlock()

	slog.Warn("job failed", "job_id", j.ID, "type", j.Type, "error", err)
}

// Snapshot returns the job's current progress.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.RLock()
	defer j.mu.RUnlock()

	end := time.Now()
	if j.CompletedAt != nil {
		end = *j.CompletedAt
	}
	return JobSnapshot{
		ID:       j.ID,
		Type:     j.Type,
		Status:   j.Status,
		Progress: j.Progress,
		Total:    j.Total,
		Error:    j.Error,
		Elapsed:  end.Sub(j.StartedAt),
	}
}

// Done reports whether the job has finished, successfully or not.
func (s JobSnapshot) Done() bool {
	return s.Status == JobStatusCompleted || s.Status == JobStatusFailed
}

// Percent returns progress as a fraction in [0, 1].
func (s JobSnapshot) Percent() float64 {
	if s.Total <= 0 {
		if s.Done() {
			return 1
		}
		return 0
	}
	return min(float64(s.Progress)/float64(s.Total), 1)
}
