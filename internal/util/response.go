package util

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
)

type ErrorResponseFormat struct {
	Code       int
	Message    string
	DevMessage string
	Details    any
	Trace      string
}

// OrderedErrorResponse is the single error body of the API. Only "error" is
// part of the contract; the rest is filled outside production.
type OrderedErrorResponse struct {
	Error      string `json:"error"`
	DevMessage string `json:"dev_message,omitempty"`
	Details    any    `json:"details,omitempty"`
	Trace      string `json:"trace,omitempty"`
}

type FormError struct {
	Errors  map[string]string
	Message string
}

func (e *FormError) Error() string {
	return fmt.Sprintf("form error: %s", e.Message)
}

func NewFormError(message string, errors map[string]string) *FormError {
	return &FormError{
		Message: message,
		Errors:  errors,
	}
}

// ErrorResponse writes the standard error body.
func ErrorResponse(c *fiber.Ctx, production bool, params ErrorResponseFormat, errs ...error) error {
	response := OrderedErrorResponse{
		Error:   params.Message,
		Details: params.Details,
	}
	if !production {
		if len(errs) > 0 && errs[0] != nil {
			response.DevMessage = errs[0].Error()
			if params.Code >= fiber.StatusInternalServerError || params.Code == 0 {
				response.Trace = string(debug.Stack())
			}
		}
		if params.DevMessage != "" {
			response.DevMessage = params.DevMessage
		}
		if params.Trace != "" {
			response.Trace = params.Trace
		}
	}

	errorCode := params.Code
	if params.Code == 0 {
		errorCode = fiber.StatusInternalServerError
	}
	return c.Status(errorCode).JSON(response)
}
