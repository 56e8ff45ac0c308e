package jobs

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForJob(t *testing.T, m *Manager, id string) *Job {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		job := m.Get(id)
		require.NotNil(t, job)
		if job.Status == StatusFinished || job.Status == StatusFailed {
			return job
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("job did not finish in time")
	return nil
}

func TestManagerSuccess(t *testing.T) {
	m := NewManager(nil)
	id := m.Enqueue(func() (interface{}, error) {
		return map[string]int{"count": 3}, nil
	})

	job := waitForJob(t, m, id)
	assert.Equal(t, StatusFinished, job.Status)
	assert.Equal(t, map[string]int{"count": 3}, job.Result)
	assert.Empty(t, job.Error)
	assert.NotNil(t, job.FinishedAt)
}

func TestManagerFailure(t *testing.T) {
	m := NewManager(nil)
	id := m.Enqueue(func() (interface{}, error) {
		return nil, errors.New("analysis exploded")
	})

	job := waitForJob(t, m, id)
	assert.Equal(t, StatusFailed, job.Status)
	assert.Equal(t, "analysis exploded", job.Error)
	assert.Nil(t, job.Result)
}

func TestManagerPanicRecovered(t *testing.T) {
	m := NewManager(nil)
	id := m.Enqueue(func() (interface{}, error) {
		panic("boom")
	})

	job := waitForJob(t, m, id)
	assert.Equal(t, StatusFailed, job.Status)
}

func TestManagerUnknownJob(t *testing.T) {
	m := NewManager(nil)
	assert.Nil(t, m.Get("no-such-id"))
}

func TestManagerGetReturnsSnapshot(t *testing.T) {
	m := NewManager(nil)
	id := m.Enqueue(func() (interface{}, error) { return "ok", nil })
	job := waitForJob(t, m, id)

	job.Status = StatusQueued
	assert.Equal(t, StatusFinished, m.Get(id).Status)
}

func TestManagerPrune(t *testing.T) {
	m := NewManager(nil)
	m.retention = time.Millisecond

	id := m.Enqueue(func() (interface{}, error) { return nil, nil })
	waitForJob(t, m, id)
	time.Sleep(10 * time.Millisecond)

	// The next enqueue prunes expired results.
	m.Enqueue(func() (interface{}, error) { return nil, nil })
	assert.Nil(t, m.Get(id))
}
