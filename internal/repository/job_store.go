package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/fadilmartias/profile-scorer/internal/model"
)

var (
	ErrJobExists    = errors.New("job already exists")
	ErrJobNotFound  = errors.New("job not found")
	ErrJobFinalized = errors.New("job already finished")
	ErrInvalidState = errors.New("invalid job status")
)

// JobStore owns every job record. Reads return copies, never references
// into the store.
type JobStore interface {
	Create(ctx context.Context, id string) (model.Job, error)
	Get(ctx context.Context, id string) (model.Job, bool, error)
	Update(ctx context.Context, id string, status model.JobStatus, result json.RawMessage, errMsg string) error
	Exists(ctx context.Context, id string) (bool, error)
}

// MemoryJobStore keeps jobs in a map behind a single lock. Records are never
// evicted.
type MemoryJobStore struct {
	mu   sync.RWMutex
	jobs map[string]*model.Job
	now  func() time.Time
}

func NewMemoryJobStore() *MemoryJobStore {
	return &MemoryJobStore{
		jobs: make(map[string]*model.Job),
		now:  time.Now,
	}
}

func (s *MemoryJobStore) Create(_ context.Context, id string) (model.Job, error) {
	now := s.now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[id]; ok {
		return model.Job{}, ErrJobExists
	}
	job := &model.Job{
		ID:        id,
		Status:    model.JobStatusRunning,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.jobs[id] = job
	return job.Clone(), nil
}

func (s *MemoryJobStore) Get(_ context.Context, id string) (model.Job, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return model.Job{}, false, nil
	}
	return job.Clone(), true, nil
}

func (s *MemoryJobStore) Update(_ context.Context, id string, status model.JobStatus, result json.RawMessage, errMsg string) error {
	if !status.Valid() {
		return ErrInvalidState
	}
	// copied outside the lock so the caller's buffer is never aliased
	if result != nil {
		result = append(json.RawMessage(nil), result...)
	}
	now := s.now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return ErrJobNotFound
	}
	if job.Status.IsTerminal() {
		return ErrJobFinalized
	}
	applyStatus(job, status, result, errMsg)
	job.UpdatedAt = now
	return nil
}

func (s *MemoryJobStore) Exists(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.jobs[id]
	return ok, nil
}

// Len returns the number of stored jobs.
func (s *MemoryJobStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}

// applyStatus keeps exactly one of Result and Error populated for terminal jobs.
func applyStatus(job *model.Job, status model.JobStatus, result json.RawMessage, errMsg string) {
	job.Status = status
	job.Result = nil
	job.Error = ""
	switch status {
	case model.JobStatusDone:
		job.Result = result
	case model.JobStatusFailed:
		if errMsg == "" {
			errMsg = "unknown error"
		}
		job.Error = errMsg
	}
}
