package handler

import (
	"github.com/fadilmartias/careermate-api/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Resume    *ResumeHandler
	Interview *InterviewHandler
	Career    *CareerHandler
	Report    *ReportHandler
	Speech    *SpeechHandler
}

// RegisterRoutes mounts every route under /api. llmLimiter guards the routes
// that call the language model and may be nil.
func (h *Handlers) RegisterRoutes(app *fiber.App, llmLimiter fiber.Handler) {
	if llmLimiter == nil {
		llmLimiter = func(c *fiber.Ctx) error { return c.Next() }
	}

	api := app.Group("/api")
	api.Get("/test", Status)

	api.Post("/analyze-resume", h.Resume.AnalyzeResume)
	api.Post("/extract-name", h.Resume.ExtractName)

	api.Post("/interview/start", llmLimiter, h.Interview.Start)
	api.Post("/interview/evaluate", llmLimiter, h.Interview.Evaluate)
	api.Post("/interview/report", llmLimiter, h.Interview.Report)
	api.Post("/interview/next-question", llmLimiter, h.Interview.NextQuestion)
	api.Post("/generate-questions", llmLimiter, h.Interview.GenerateQuestions)
	api.Post("/evaluate-answer", llmLimiter, h.Interview.EvaluateAnswer)

	api.Post("/career-coach", llmLimiter, h.Career.Coach)

	api.Post("/generate-report", h.Report.GenerateReport)
	api.Post("/speech-to-text", h.Speech.SpeechToText)
}

func Status(c *fiber.Ctx) error {
	return c.JSON(dto.StatusResponse{
		Message: "Backend server is running!",
		Status:  "ok",
	})
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body: "+err.Error())
	}
	return nil
}
