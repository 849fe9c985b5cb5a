package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/fadilmartias/profile-scorer/internal/model"
	"gorm.io/gorm"
)

// JobRepository is a JobStore backed by PostgreSQL through gorm.
type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db}
}

func (r *JobRepository) Migrate() error {
	return r.db.AutoMigrate(&model.JobRecord{})
}

func (r *JobRepository) Create(ctx context.Context, id string) (model.Job, error) {
	now := time.Now().UTC()
	rec := model.JobRecord{
		ID:        id,
		Status:    string(model.JobStatusRunning),
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := r.db.WithContext(ctx).Create(&rec).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return model.Job{}, ErrJobExists
	}
	if err != nil {
		return model.Job{}, err
	}
	return rec.ToJob(), nil
}

func (r *JobRepository) Get(ctx context.Context, id string) (model.Job, bool, error) {
	var rec model.JobRecord
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Job{}, false, nil
	}
	if err != nil {
		return model.Job{}, false, err
	}
	return rec.ToJob(), true, nil
}

// Update only touches rows still in progress, so a finished job is never
// rewritten even with several writers.
func (r *JobRepository) Update(ctx context.Context, id string, status model.JobStatus, result json.RawMessage, errMsg string) error {
	if !status.Valid() {
		return ErrInvalidState
	}
	var job model.Job
	applyStatus(&job, status, result, errMsg)

	updates := map[string]any{
		"status":     string(job.Status),
		"result":     nil,
		"error":      nil,
		"updated_at": time.Now().UTC(),
	}
	if job.Result != nil {
		updates["result"] = string(job.Result)
	}
	if job.Error != "" {
		updates["error"] = job.Error
	}

	tx := r.db.WithContext(ctx).
		Model(&model.JobRecord{}).
		Where("id = ? AND status = ?", id, string(model.JobStatusRunning)).
		Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected > 0 {
		return nil
	}

	exists, err := r.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrJobNotFound
	}
	return ErrJobFinalized
}

func (r *JobRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.JobRecord{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
