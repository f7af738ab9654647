package handler

import (
	"github.com/fadilmartias/careermate-api/internal/dto"
	"github.com/fadilmartias/careermate-api/internal/usecase"
	"github.com/gofiber/fiber/v2"
)

type CareerHandler struct {
	uc *usecase.CareerUsecase
}

func NewCareerHandler(uc *usecase.CareerUsecase) *CareerHandler {
	return &CareerHandler{uc: uc}
}

func (h *CareerHandler) Coach(c *fiber.Ctx) error {
	var req dto.CareerCoachRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	reply, err := h.uc.Coach(c.UserContext(), req.ResumeText, req.JobDescription, req.UserMessage)
	if err != nil {
		return err
	}
	return c.JSON(dto.CareerCoachResponse{Response: reply})
}
