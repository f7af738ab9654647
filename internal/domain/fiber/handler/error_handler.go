package handler

import (
	"errors"
	"log"

	"github.com/fadilmartias/careermate-api/internal/service"
	"github.com/fadilmartias/careermate-api/internal/util"
	"github.com/gofiber/fiber/v2"
)

// NewErrorHandler renders every error returned by a route as {"error": msg}.
func NewErrorHandler(production bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var formErr *util.FormError
		if errors.As(err, &formErr) {
			return util.ErrorResponse(c, production, util.ErrorResponseFormat{
				Code:    fiber.StatusBadRequest,
				Message: formErr.Message,
				Details: formErr.Errors,
			})
		}

		if errors.Is(err, service.ErrQuotaExceeded) {
			log.Printf("%s %s: %v", c.Method(), c.Path(), err)
			return util.ErrorResponse(c, production, util.ErrorResponseFormat{
				Code:    fiber.StatusTooManyRequests,
				Message: service.ErrQuotaExceeded.Error(),
			}, err)
		}

		code := fiber.StatusInternalServerError
		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
		}

		message := err.Error()
		if message == "" {
			message = "Internal Server Error"
		}
		if code >= fiber.StatusInternalServerError {
			log.Printf("%s %s: %v", c.Method(), c.Path(), err)
		}

		return util.ErrorResponse(c, production, util.ErrorResponseFormat{
			Code:    code,
			Message: message,
		}, err)
	}
}
