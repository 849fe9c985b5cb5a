package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fadilmartias/profile-scorer/internal/model"
	"github.com/redis/go-redis/v9"
)

const redisUpdateAttempts = 5

// RedisJobStore keeps each job as a JSON document under prefix+id. Updates
// run in a WATCH transaction so a terminal status is never overwritten.
type RedisJobStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

// NewRedisJobStore creates a Redis-backed store. A ttl of zero keeps jobs
// forever.
func NewRedisJobStore(client redis.UniversalClient, ttl time.Duration) *RedisJobStore {
	return &RedisJobStore{
		client: client,
		prefix: "job:",
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *RedisJobStore) Create(ctx context.Context, id string) (model.Job, error) {
	now := s.now().UTC()
	job := model.Job{
		ID:        id,
		Status:    model.JobStatusRunning,
		CreatedAt: now,
		UpdatedAt: now,
	}
	data, err := json.Marshal(job)
	if err != nil {
		return model.Job{}, fmt.Errorf("marshal job: %w", err)
	}

	ok, err := s.client.SetNX(ctx, s.prefix+id, data, s.ttl).Result()
	if err != nil {
		return model.Job{}, fmt.Errorf("redis setnx: %w", err)
	}
	if !ok {
		return model.Job{}, ErrJobExists
	}
	return job, nil
}

func (s *RedisJobStore) Get(ctx context.Context, id string) (model.Job, bool, error) {
	data, err := s.client.Get(ctx, s.prefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.Job{}, false, nil
		}
		return model.Job{}, false, fmt.Errorf("redis get: %w", err)
	}

	var job model.Job
	if err := json.Unmarshal(data, &job); err != nil {
		return model.Job{}, false, fmt.Errorf("unmarshal job: %w", err)
	}
	return job, true, nil
}

func (s *RedisJobStore) Update(ctx context.Context, id string, status model.JobStatus, result json.RawMessage, errMsg string) error {
	if !status.Valid() {
		return ErrInvalidState
	}
	key := s.prefix + id

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrJobNotFound
			}
			return fmt.Errorf("redis get: %w", err)
		}

		var job model.Job
		if err := json.Unmarshal(data, &job); err != nil {
			return fmt.Errorf("unmarshal job: %w", err)
		}
		if job.Status.IsTerminal() {
			return ErrJobFinalized
		}
		applyStatus(&job, status, result, errMsg)
		job.UpdatedAt = s.now().UTC()

		updated, err := json.Marshal(job)
		if err != nil {
			return fmt.Errorf("marshal job: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, redis.KeepTTL)
			return nil
		})
		return err
	}

	for i := 0; i < redisUpdateAttempts; i++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("update job %s: %w", id, redis.TxFailedErr)
}

func (s *RedisJobStore) Exists(ctx context.Context, id string) (bool, error) {
	n, err := s.client.Exists(ctx, s.prefix+id).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}
