package usecase

import (
	"fmt"

	"github.com/fadilmartias/careermate-api/internal/service"
	"github.com/fadilmartias/careermate-api/internal/util"
)

type ReportUsecase struct {
	reports *service.ReportService
}

func NewReportUsecase(reports *service.ReportService) *ReportUsecase {
	return &ReportUsecase{reports: reports}
}

// GenerateReport renders the raw request body as a PDF.
func (uc *ReportUsecase) GenerateReport(body []byte) ([]byte, error) {
	payload, err := service.ParseReportPayload(body)
	if err != nil {
		return nil, util.NewFormError(err.Error(), nil)
	}
	pdf, err := uc.reports.Compose(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to generate report: %w", err)
	}
	return pdf, nil
}
