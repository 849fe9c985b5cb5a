package model

import (
	"encoding/json"
	"time"
)

// JobRecord is the persisted row for a Job.
type JobRecord struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Status    string    `gorm:"type:varchar(20);index" json:"status"`
	Result    *string   `gorm:"type:jsonb" json:"result"`
	Error     *string   `gorm:"type:text" json:"error"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *JobRecord) TableName() string {
	return "jobs"
}

func (r *JobRecord) ToJob() Job {
	job := Job{
		ID:        r.ID,
		Status:    JobStatus(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.Result != nil {
		job.Result = json.RawMessage(*r.Result)
	}
	if r.Error != nil {
		job.Error = *r.Error
	}
	return job
}
