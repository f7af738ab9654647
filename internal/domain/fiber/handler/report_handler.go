package handler

import (
	"github.com/fadilmartias/careermate-api/internal/usecase"
	"github.com/gofiber/fiber/v2"
)

const reportFilename = "CareerMate-Report.pdf"

type ReportHandler struct {
	uc *usecase.ReportUsecase
}

func NewReportHandler(uc *usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func (h *ReportHandler) GenerateReport(c *fiber.Ctx) error {
	pdf, err := h.uc.GenerateReport(c.Body())
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+reportFilename)
	return c.Send(pdf)
}
