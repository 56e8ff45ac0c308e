package jobs

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusQueued   Status = "queued"
	StatusStarted  Status = "started"
	StatusFinished Status = "finished"
	StatusFailed   Status = "failed"
)

// Job is the externally visible state of one background task.
type Job struct {
	ID         string      `json:"job_id"`
	Status     Status      `json:"status"`
	Result     interface{} `json:"result,omitempty"`
	Error      string      `json:"error,omitempty"`
	EnqueuedAt time.Time   `json:"enqueued_at"`
	FinishedAt *time.Time  `json:"finished_at,omitempty"`
}

// Manager runs tasks on their own goroutines and keeps finished results
// around long enough for the frontend to poll them.
type Manager struct {
	mu        sync.RWMutex
	jobs      map[string]*Job
	retention time.Duration
	Log       *log.Logger
}

func NewManager(logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		jobs:      make(map[string]*Job),
		retention: 30 * time.Minute,
		Log:       logger,
	}
}

// Enqueue registers a task and starts it immediately on its own
// goroutine. The returned id can be polled with Get.
func (m *Manager) Enqueue(task func() (interface{}, error)) string {
	id := uuid.NewString()
	job := &Job{ID: id, Status: StatusQueued, EnqueuedAt: time.Now()}

	m.mu.Lock()
	m.prune()
	m.jobs[id] = job
	m.mu.Unlock()

	go m.run(id, task)
	return id
}

func (m *Manager) run(id string, task func() (interface{}, error)) {
	m.setStatus(id, StatusStarted)

	defer func() {
		if r := recover(); r != nil {
			m.Log.Printf("job %s panicked: %v", id, r)
			m.finish(id, nil, &panicError{r})
		}
	}()

	result, err := task()
	m.finish(id, result, err)
}

type panicError struct{ value interface{} }

func (e *panicError) Error() string { return "job panicked" }

func (m *Manager) setStatus(id string, status Status) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if job, ok := m.jobs[id]; ok {
		job.Status = status
	}
}

func (m *Manager) finish(id string, result interface{}, err error) {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	if !ok {
		return
	}
	job.FinishedAt = &now
	if err != nil {
		job.Status = StatusFailed
		job.Error = err.Error()
		m.Log.Printf("job %s failed: %v", id, err)
		return
	}
	job.Status = StatusFinished
	job.Result = result
}

// Get returns a snapshot of one job, or nil when the id is unknown or
// already pruned.
func (m *Manager) Get(id string) *Job {
	m.mu.RLock()
	defer m.mu.RUnlock()
	job, ok := m.jobs[id]
	if !ok {
		return nil
	}
	snapshot := *job
	return &snapshot
}

// prune drops finished jobs past the retention window. Caller holds the
// write lock.
func (m *Manager) prune() {
	cutoff := time.Now().Add(-m.retention)
	for id, job := range m.jobs {
		if job.FinishedAt != nil && job.FinishedAt.Before(cutoff) {
			delete(m.jobs, id)
		}
	}
}
