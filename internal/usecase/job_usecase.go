package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/fadilmartias/profile-scorer/internal/dto"
	"github.com/fadilmartias/profile-scorer/internal/logging"
	"github.com/fadilmartias/profile-scorer/internal/model"
	"github.com/fadilmartias/profile-scorer/internal/repository"
	"github.com/fadilmartias/profile-scorer/internal/service"
	"github.com/fadilmartias/profile-scorer/internal/worker"
	"github.com/google/uuid"
)

// ErrJobNotFound is returned by Status for ids the store has never seen.
var ErrJobNotFound = repository.ErrJobNotFound

// Scheduler is the part of worker.JobRunner the usecase depends on.
type Scheduler interface {
	Schedule(name string, task worker.Task) error
}

// JobUsecaseOptions wires the usecase. Logger and Now are optional.
type JobUsecaseOptions struct {
	Store   repository.JobStore
	Runner  Scheduler
	Fetcher service.ProfileFetcher
	Scorer  service.ProfileScorer
	Logger  *slog.Logger
	Now     func() time.Time
}

// JobUsecase creates scoring jobs, runs their pipeline in the background and
// answers status polls.
type JobUsecase struct {
	store   repository.JobStore
	runner  Scheduler
	fetcher service.ProfileFetcher
	scorer  service.ProfileScorer
	logger  *slog.Logger
	now     func() time.Time
}

// NewJobUsecase builds the usecase; a nil Logger uses slog's default.
func NewJobUsecase(opts JobUsecaseOptions) *JobUsecase {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &JobUsecase{
		store:   opts.Store,
		runner:  opts.Runner,
		fetcher: opts.Fetcher,
		scorer:  opts.Scorer,
		logger:  logging.OrDefault(opts.Logger),
		now:     now,
	}
}

// Submit registers a new job and schedules its pipeline. It returns as soon as
// the job is queued. When the runner rejects the job, the job is recorded as
// failed and its id is returned together with the error.
func (uc *JobUsecase) Submit(ctx context.Context, input model.ProfileInput) (string, error) {
	id := uuid.NewString()
	if _, err := uc.store.Create(ctx, id); err != nil {
		return "", fmt.Errorf("create job: %w", err)
	}

	err := uc.runner.Schedule("job:"+id, func(taskCtx context.Context) error {
		return uc.Execute(taskCtx, id, input)
	})
	if err != nil {
		uc.logger.Error("job could not be scheduled", "job_id", id, "error", err)
		uc.finish(context.WithoutCancel(ctx), id, model.JobStatusFailed, nil, err.Error())
		return id, fmt.Errorf("schedule job: %w", err)
	}

	uc.logger.Info("job submitted", "job_id", id)
	return id, nil
}

// Status returns the public view of a job, or ErrJobNotFound.
func (uc *JobUsecase) Status(ctx context.Context, id string) (*dto.JobStatusDTO, error) {
	job, found, err := uc.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	if !found {
		return nil, ErrJobNotFound
	}
	return dto.NewJobStatusDTO(job), nil
}

// Execute runs fetch, map and score for one job and records the outcome.
// Every failure, including a panic, ends the job as failed and is returned.
func (uc *JobUsecase) Execute(ctx context.Context, id string, input model.ProfileInput) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &worker.PanicError{Value: rec, Stack: debug.Stack()}
			uc.finish(ctx, id, model.JobStatusFailed, nil, fmt.Sprintf("pipeline panic: %v", rec))
		}
	}()

	uc.logger.Info("starting job execution", "job_id", id)

	profile, err := uc.fetcher.Fetch(ctx, input.LinkedInURL)
	if err != nil {
		uc.finish(ctx, id, model.JobStatusFailed, nil, err.Error())
		return fmt.Errorf("job %s: %w", id, err)
	}

	modelInput := service.MapToModelInput(profile, uc.now())

	result, err := uc.scorer.Score(ctx, modelInput)
	if err != nil {
		uc.finish(ctx, id, model.JobStatusFailed, nil, err.Error())
		return fmt.Errorf("job %s: %w", id, err)
	}

	uc.finish(ctx, id, model.JobStatusDone, result, "")
	return nil
}

// finish persists a terminal state. Store errors are logged only; this runs
// on the background path.
func (uc *JobUsecase) finish(ctx context.Context, id string, status model.JobStatus, result json.RawMessage, errMsg string) {
	err := uc.store.Update(ctx, id, status, result, errMsg)
	switch {
	case err == nil:
		if status == model.JobStatusDone {
			uc.logger.Info("job completed successfully", "job_id", id)
		} else {
			uc.logger.Warn("job failed", "job_id", id, "error", errMsg)
		}
	case errors.Is(err, repository.ErrJobFinalized):
		uc.logger.Warn("job already finished, update ignored", "job_id", id, "status", status)
	default:
		uc.logger.Error("failed to record job outcome", "job_id", id, "status", status, "error", err)
	}
}
