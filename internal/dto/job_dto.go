package dto

import (
	"encoding/json"

	"github.com/fadilmartias/profile-scorer/internal/model"
)

type CreateJobRequest struct {
	Name            string `json:"name" validate:"required,notblank"`
	CellNumber      string `json:"cell_number" validate:"required,cellnumber"`
	LinkedInAccount string `json:"linkedin_account" validate:"required,linkedinurl"`
}

func (r CreateJobRequest) ToProfileInput() model.ProfileInput {
	return model.ProfileInput{
		Name:        r.Name,
		CellNumber:  r.CellNumber,
		LinkedInURL: r.LinkedInAccount,
	}
}

type CreateJobResponse struct {
	JobID string `json:"job_id"`
}

// JobStatusDTO is the public view of a job: result only when complete,
// error only when failed.
type JobStatusDTO struct {
	Status model.JobStatus `json:"status"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

func NewJobStatusDTO(job model.Job) *JobStatusDTO {
	view := &JobStatusDTO{Status: job.Status}
	switch job.Status {
	case model.JobStatusDone:
		view.Result = job.Result
	case model.JobStatusFailed:
		view.Error = job.Error
	}
	return view
}
