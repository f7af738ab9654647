package handler

import (
	"fmt"
	"io"
	"strings"

	"github.com/fadilmartias/careermate-api/internal/dto"
	"github.com/fadilmartias/careermate-api/internal/usecase"
	"github.com/gofiber/fiber/v2"
)

const maxResumeSize = 10 * 1024 * 1024

type ResumeHandler struct {
	uc *usecase.ResumeUsecase
}

func NewResumeHandler(uc *usecase.ResumeUsecase) *ResumeHandler {
	return &ResumeHandler{uc: uc}
}

func (h *ResumeHandler) AnalyzeResume(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "resume file is required")
	}
	if file.Size > maxResumeSize {
		return fiber.NewError(fiber.StatusBadRequest, "resume file size is too large (max 10MB)")
	}
	jobDescription := c.FormValue("job_description")
	if strings.TrimSpace(jobDescription) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "job_description is required")
	}

	f, err := file.Open()
	if err != nil {
		return fmt.Errorf("cannot open resume file: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("cannot read resume file: %w", err)
	}

	score, text, err := h.uc.AnalyzeResume(c.UserContext(), file.Filename, data, jobDescription)
	if err != nil {
		return err
	}
	return c.JSON(dto.AnalyzeResumeResponse{ATSScore: score, ResumeText: text})
}

func (h *ResumeHandler) ExtractName(c *fiber.Ctx) error {
	var req dto.ExtractNameRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	return c.JSON(dto.ExtractNameResponse{Name: h.uc.ExtractName(req.ResumeText)})
}
