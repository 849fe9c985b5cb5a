package util

import (
	"errors"

	"github.com/fadilmartias/profile-scorer/internal/config"
	"github.com/gofiber/fiber/v2"
)

type ErrorResponseFormat struct {
	Code       int
	Message    string
	DevMessage string
	Details    any
	JobID      string
}

type OrderedErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
	JobID   string `json:"job_id,omitempty"`
}

// SuccessResponse writes data as the JSON body with the given status code.
func SuccessResponse(c *fiber.Ctx, code int, data any) error {
	if code == 0 {
		code = fiber.StatusOK
	}
	return c.Status(code).JSON(data)
}

// ErrorResponse writes {"error": ...}. Outside production the first error's
// text is exposed as "message".
func ErrorResponse(c *fiber.Ctx, params ErrorResponseFormat, errs ...error) error {
	response := OrderedErrorResponse{
		Error:   params.Message,
		Details: params.Details,
		JobID:   params.JobID,
	}
	if !config.LoadAppConfig().IsProduction() {
		if len(errs) > 0 && errs[0] != nil {
			response.Message = errs[0].Error()
		}
		if params.DevMessage != "" {
			response.Message = params.DevMessage
		}
	}

	errorCode := params.Code
	if params.Code == 0 {
		errorCode = fiber.StatusInternalServerError
	}
	return c.Status(errorCode).JSON(response)
}

// ErrorHandler is the fiber error handler: *fiber.Error keeps its code and
// message, anything else becomes a generic 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var e *fiber.Error
	if errors.As(err, &e) {
		message := e.Message
		if message == "" {
			message = "Internal server error"
		}
		return c.Status(e.Code).JSON(OrderedErrorResponse{Error: message})
	}
	return ErrorResponse(c, ErrorResponseFormat{
		Code:    fiber.StatusInternalServerError,
		Message: "Internal server error",
	}, err)
}
