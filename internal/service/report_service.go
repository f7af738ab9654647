package service

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/fadilmartias/careermate-api/internal/model"
	"github.com/go-pdf/fpdf"
	"github.com/tidwall/gjson"
)

// Layout constants, in points on a bottom-origin page.
const (
	reportTop        = 800.0
	reportBottom     = 100.0
	reportLeft       = 100.0
	reportBulletX    = 110.0
	reportIndentX    = 120.0
	reportFontFamily = "Helvetica"
)

type ReportLine struct {
	X     float64
	Y     float64
	Style string // "" or "B"
	Size  float64
	Text  string
}

type ReportPage struct {
	Lines []ReportLine
}

type ReportService struct{}

func NewReportService() *ReportService {
	return &ReportService{}
}

// ParseReportPayload decodes a report request, unwrapping {"reportData": {...}}
// when present.
func ParseReportPayload(body []byte) (model.ReportPayload, error) {
	var payload model.ReportPayload
	if !gjson.ValidBytes(body) {
		return payload, fmt.Errorf("report payload is not valid JSON")
	}
	if wrapped := gjson.GetBytes(body, "reportData"); wrapped.IsObject() {
		body = []byte(wrapped.Raw)
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return payload, fmt.Errorf("invalid report payload: %w", err)
	}
	return payload, nil
}

type reportCursor struct {
	pages []ReportPage
	y     float64
}

func (c *reportCursor) draw(x float64, style string, size float64, text string) {
	page := &c.pages[len(c.pages)-1]
	page.Lines = append(page.Lines, ReportLine{X: x, Y: c.y, Style: style, Size: size, Text: text})
}

// breakIfNeeded starts a new page once the cursor has dropped below the
// bottom margin.
func (c *reportCursor) breakIfNeeded() {
	if c.y < reportBottom {
		c.pages = append(c.pages, ReportPage{})
		c.y = reportTop
	}
}

// Layout places every line of the report. Text is never wrapped.
func (s *ReportService) Layout(p model.ReportPayload) []ReportPage {
	c := &reportCursor{pages: []ReportPage{{}}, y: reportTop}

	c.draw(reportLeft, "B", 16, "CareerMate AI - Professional Report")
	c.y -= 30

	fields := []string{
		"ATS Score: " + p.ATSScore.String(),
		"Interview Score: " + p.InterviewScore.String(),
		"Overall Grade: " + p.OverallGrade.String(),
		"Questions Answered: " + p.TotalQuestions.String(),
		"Completed: " + p.CompletedAt.String(),
	}
	for i, f := range fields {
		c.draw(reportLeft, "", 12, f)
		if i == len(fields)-1 {
			c.y -= 30
		} else {
			c.y -= 20
		}
	}

	bulletSection := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		c.draw(reportLeft, "B", 14, title)
		c.y -= 18
		for _, item := range items {
			c.draw(reportBulletX, "", 12, "- "+item)
			c.y -= 15
			c.breakIfNeeded()
		}
		c.y -= 10
	}
	bulletSection("Key Strengths:", p.Strengths)
	bulletSection("Areas for Improvement:", p.Improvements)

	if len(p.InterviewData) > 0 {
		c.draw(reportLeft, "B", 14, "Interview Summary:")
		c.y -= 18
		for i, qa := range p.InterviewData {
			c.draw(reportBulletX, "", 12, fmt.Sprintf("Q%d: %s", i+1, qa.Question))
			c.y -= 15
			c.draw(reportIndentX, "", 12, "A: "+qa.Answer)
			c.y -= 15
			if qa.Feedback != "" {
				c.draw(reportIndentX, "", 12, "Feedback: "+qa.Feedback)
				c.y -= 15
			}
			c.y -= 5
			c.breakIfNeeded()
		}
	}

	return c.pages
}

// Render draws laid-out pages onto A4 and returns the PDF bytes.
func (s *ReportService) Render(pages []ReportPage) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	_, pageHeight := pdf.GetPageSize()

	for _, page := range pages {
		pdf.AddPage()
		for _, line := range page.Lines {
			pdf.SetFont(reportFontFamily, line.Style, line.Size)
			pdf.Text(line.X, pageHeight-line.Y, tr(line.Text))
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *ReportService) Compose(p model.ReportPayload) ([]byte, error) {
	return s.Render(s.Layout(p))
}
