package handler

import (
	"encoding/json"

	"github.com/fadilmartias/careermate-api/internal/dto"
	"github.com/fadilmartias/careermate-api/internal/model"
	"github.com/fadilmartias/careermate-api/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/tidwall/gjson"
)

type InterviewHandler struct {
	uc *usecase.InterviewUsecase
}

func NewInterviewHandler(uc *usecase.InterviewUsecase) *InterviewHandler {
	return &InterviewHandler{uc: uc}
}

func (h *InterviewHandler) Start(c *fiber.Ctx) error {
	var req dto.StartInterviewRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	questions, err := h.uc.StartInterview(c.UserContext(), req.ResumeText)
	if err != nil {
		return err
	}
	return c.JSON(dto.StartInterviewResponse{Questions: questions})
}

func (h *InterviewHandler) Evaluate(c *fiber.Ctx) error {
	var req dto.EvaluateAnswerRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	eval, err := h.uc.EvaluateAnswer(c.UserContext(), req.Question, req.Answer, req.ResumeText)
	if err != nil {
		return err
	}
	return c.JSON(eval)
}

func (h *InterviewHandler) Report(c *fiber.Ctx) error {
	var req dto.InterviewReportRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	report, err := h.uc.FinalReport(c.UserContext(), req.Items(), req.UserName, req.ResumeText)
	if err != nil {
		return err
	}
	return c.JSON(dto.InterviewReportResponse{Report: report})
}

func (h *InterviewHandler) NextQuestion(c *fiber.Ctx) error {
	var req dto.NextQuestionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	question, err := h.uc.NextQuestion(c.UserContext(), req.ResumeText, req.History(), req.UserIntro)
	if err != nil {
		return err
	}
	return c.JSON(dto.NextQuestionResponse{Question: question})
}

// GenerateQuestions accepts the resume summary either bare or wrapped as
// {"resumeInfo": {...}}.
func (h *InterviewHandler) GenerateQuestions(c *fiber.Ctx) error {
	body := gjson.ParseBytes(c.Body())
	if wrapped := body.Get("resumeInfo"); wrapped.IsObject() {
		body = wrapped
	}
	if !body.IsObject() || len(body.Map()) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Resume information is required")
	}

	var info model.ResumeInfo
	if err := json.Unmarshal([]byte(body.Raw), &info); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid resume information: "+err.Error())
	}

	questions, err := h.uc.GenerateQuestions(c.UserContext(), info)
	if err != nil {
		return err
	}
	return c.JSON(dto.GenerateQuestionsResponse{
		Success:        true,
		Questions:      questions,
		TotalQuestions: len(questions),
		EstimatedTime:  usecase.EstimatedTime(len(questions)),
	})
}

func (h *InterviewHandler) EvaluateAnswer(c *fiber.Ctx) error {
	var req dto.LegacyEvaluateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	eval, err := h.uc.LegacyEvaluate(c.UserContext(), req.Question, req.Answer)
	if err != nil {
		return err
	}
	followUps := eval.FollowUpQuestions
	if followUps == nil {
		followUps = []string{}
	}
	return c.JSON(dto.LegacyEvaluateResponse{
		Success:           true,
		Score:             eval.Score,
		Feedback:          eval.Feedback,
		Strengths:         eval.Strengths,
		Improvements:      eval.Improvements,
		FollowUpQuestions: followUps,
	})
}
