package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fadilmartias/profile-scorer/internal/dto"
	"github.com/fadilmartias/profile-scorer/internal/model"
	"github.com/fadilmartias/profile-scorer/internal/usecase"
	"github.com/fadilmartias/profile-scorer/internal/util"
	"github.com/fadilmartias/profile-scorer/internal/validation"
	"github.com/fadilmartias/profile-scorer/internal/worker"
	"github.com/gofiber/fiber/v2"
	"github.com/tidwall/gjson"
)

type JobService interface {
	Submit(ctx context.Context, input model.ProfileInput) (string, error)
	Status(ctx context.Context, id string) (*dto.JobStatusDTO, error)
}

type JobHandler struct {
	uc            JobService
	validator     *validation.Validator
	submitLimiter fiber.Handler
}

// NewJobHandler builds the job routes. submitLimiter guards POST /job and may
// be nil.
func NewJobHandler(uc JobService, submitLimiter fiber.Handler) *JobHandler {
	return &JobHandler{
		uc:            uc,
		validator:     validation.New(),
		submitLimiter: submitLimiter,
	}
}

func (h *JobHandler) RegisterRoutes(app *fiber.App) {
	if h.submitLimiter != nil {
		app.Post("/job", h.submitLimiter, h.CreateJob)
	} else {
		app.Post("/job", h.CreateJob)
	}
	app.Get("/job/:id", h.GetJob)
	app.Get("/health", h.Health)
}

func (h *JobHandler) CreateJob(c *fiber.Ctx) error {
	body := c.Body()
	if !gjson.ValidBytes(body) {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Request body must be JSON",
		})
	}
	parsed := gjson.ParseBytes(body)
	if !parsed.IsObject() {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Request body must be JSON",
		})
	}

	req, details := decodeCreateJob(parsed)
	mistyped := make([]string, 0, len(details))
	for field := range details {
		mistyped = append(mistyped, field)
	}

	var fieldErrs validation.Errors
	if err := h.validator.Struct(req, mistyped...); err != nil {
		if !errors.As(err, &fieldErrs) {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Message: "Internal server error",
			}, err)
		}
	}
	if len(details) > 0 || len(fieldErrs) > 0 {
		return validationFailed(c, mergeFieldErrors(details, fieldErrs))
	}

	id, err := h.uc.Submit(c.UserContext(), req.ToProfileInput())
	if err != nil {
		if errors.Is(err, worker.ErrQueueFull) || errors.Is(err, worker.ErrRunnerClosed) {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusServiceUnavailable,
				Message: "Job queue is full, try again later",
				JobID:   id,
			}, err)
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "Internal server error",
		}, err)
	}

	return util.SuccessResponse(c, fiber.StatusAccepted, dto.CreateJobResponse{JobID: id})
}

func (h *JobHandler) GetJob(c *fiber.Ctx) error {
	view, err := h.uc.Status(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrJobNotFound) {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusNotFound,
				Message: "Job not found",
			})
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "Internal server error",
		}, err)
	}
	return util.SuccessResponse(c, fiber.StatusOK, view)
}

func (h *JobHandler) Health(c *fiber.Ctx) error {
	return util.SuccessResponse(c, fiber.StatusOK, fiber.Map{"status": "healthy"})
}

// createJobFields lists the request fields in the order errors are reported.
var createJobFields = []string{"name", "cell_number", "linkedin_account"}

// decodeCreateJob reads the request fields and reports every field holding a
// non-string value. null counts as missing.
func decodeCreateJob(body gjson.Result) (dto.CreateJobRequest, map[string]string) {
	values := make(map[string]string, len(createJobFields))
	mistyped := map[string]string{}
	for _, field := range createJobFields {
		v := body.Get(field)
		switch v.Type {
		case gjson.String:
			values[field] = v.Str
		case gjson.Null:
		default:
			mistyped[field] = fmt.Sprintf("'%s' must be a string", field)
		}
	}
	return dto.CreateJobRequest{
		Name:            values["name"],
		CellNumber:      values["cell_number"],
		LinkedInAccount: values["linkedin_account"],
	}, mistyped
}

// mergeFieldErrors orders type and rule failures by request field.
func mergeFieldErrors(mistyped map[string]string, ruleErrs validation.Errors) validation.Errors {
	merged := make(validation.Errors, 0, len(mistyped)+len(ruleErrs))
	for _, field := range createJobFields {
		if msg, ok := mistyped[field]; ok {
			merged = append(merged, msg)
			continue
		}
		prefix := "'" + field + "'"
		for _, msg := range ruleErrs {
			if strings.HasPrefix(msg, prefix) {
				merged = append(merged, msg)
			}
		}
	}
	return merged
}

func validationFailed(c *fiber.Ctx, details validation.Errors) error {
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    fiber.StatusBadRequest,
		Message: "Validation failed",
		Details: []string(details),
	})
}
