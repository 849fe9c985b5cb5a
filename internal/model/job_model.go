package model

import (
	"encoding/json"
	"time"
)

type JobStatus string

const (
	JobStatusRunning JobStatus = "inprogress"
	JobStatusDone    JobStatus = "complete"
	JobStatusFailed  JobStatus = "failed"
)

// IsTerminal reports whether the status can no longer change.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusDone || s == JobStatusFailed
}

func (s JobStatus) Valid() bool {
	return s == JobStatusRunning || s.IsTerminal()
}

// Job tracks one asynchronous fetch-and-score run. Result is set only when
// Status is complete and Error only when Status is failed.
type Job struct {
	ID        string          `json:"id"`
	Status    JobStatus       `json:"status"`
	Result    json.RawMessage `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Clone returns a copy that shares no memory with j.
func (j Job) Clone() Job {
	if j.Result != nil {
		j.Result = append(json.RawMessage(nil), j.Result...)
	}
	return j
}

// ProfileInput is the caller-supplied submission.
type ProfileInput struct {
	Name        string
	CellNumber  string
	LinkedInURL string
}
