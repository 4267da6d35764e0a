package cli

import (
	"errors"
	"testing"

	"github.com/raphaelgruber/aimreport/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestProgressModelFollowsJob(t *testing.T) {
	job := service.NewJob("persist", 4)
	m := newProgressModel(job, "work orders")

	job.UpdateProgress(2, 4)
	next, cmd := m.Update(jobUpdateMsg{snap: job.Snapshot()})
	m = next.(progressModel)
	assert.False(t, m.done)
	assert.NotNil(t, cmd, "keeps polling")
	assert.Contains(t, m.renderContent(), "2/4 work orders")

	job.Complete()
	next, _ = m.Update(jobUpdateMsg{snap: job.Snapshot()})
	m = next.(progressModel)
	assert.True(t, m.done)
	assert.NoError(t, m.err)
	assert.Contains(t, m.renderContent(), "4 work orders saved")
}

func TestProgressModelReportsFailure(t *testing.T) {
	job := service.NewJob("persist", 4)
	m := newProgressModel(job, "work orders")

	job.Fail(errors.New("connection reset"))
	next, _ := m.Update(jobUpdateMsg{snap: job.Snapshot()})
	m = next.(progressModel)

	assert.True(t, m.done)
	assert.EqualError(t, m.err, "connection reset")
	assert.Contains(t, m.renderContent(), "connection reset")
}
