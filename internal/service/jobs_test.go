package service

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobProgress(t *testing.T) {
	job := NewJob("persist", 10)
	assert.Len(t, job.ID, 8)

	snap := job.Snapshot()
	assert.Equal(t, JobStatusPending, snap.Status)
	assert.Zero(t, snap.Percent())
	assert.False(t, snap.Done())

	job.UpdateProgress(5, 10)
	snap = job.Snapshot()
	assert.Equal(t, JobStatusRunning, snap.Status)
	assert.InDelta(t, 0.5, snap.Percent(), 1e-9)

	job.Complete()
	snap = job.Snapshot()
	assert.True(t, snap.Done())
	assert.Equal(t, 10, snap.Progress)
	assert.InDelta(t, 1.0, snap.Percent(), 1e-9)
}

func TestJobFail(t *testing.T) {
	job := NewJob("load", 0)
	job.Fail(errors.New("connection refused"))

	snap := job.Snapshot()
	assert.True(t, snap.Done())
	assert.Equal(t, JobStatusFailed, snap.Status)
	assert.Equal(t, "connection refused", snap.Error)
	assert.InDelta(t, 1.0, snap.Percent(), 1e-9)
}

func TestJobConcurrentUpdates(t *testing.T) {
	job := NewJob("persist", 100)

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			job.UpdateProgress(i+1, 100)
			_ = job.Snapshot()
		}()
	}
	wg.Wait()

	assert.Equal(t, JobStatusRunning, job.Snapshot().Status)
}

func TestNilJobIsNoop(t *testing.T) {
	var job *Job
	assert.NotPanics(t, func() {
		job.UpdateProgress(1, 2)
		job.Complete()
		job.Fail(errors.New("x"))
	})
}
