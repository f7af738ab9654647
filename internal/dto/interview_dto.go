package dto

import (
	"encoding/json"
	"strings"

	"github.com/fadilmartias/careermate-api/internal/model"
	"github.com/fadilmartias/careermate-api/internal/util"
	"github.com/tidwall/gjson"
)

type StartInterviewRequest struct {
	ResumeText string `json:"resumeText"`
}

func (r StartInterviewRequest) Validate() error {
	if blank(r.ResumeText) {
		return util.NewFormError("Missing resumeText", map[string]string{"resumeText": "required"})
	}
	return nil
}

type StartInterviewResponse struct {
	Questions []model.InterviewQuestion `json:"questions"`
}

type EvaluateAnswerRequest struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	ResumeText string `json:"resumeText"`
}

func (r EvaluateAnswerRequest) Validate() error {
	errs := required(map[string]string{
		"question":   r.Question,
		"answer":     r.Answer,
		"resumeText": r.ResumeText,
	})
	if len(errs) > 0 {
		return util.NewFormError("Missing question, answer, or resumeText", errs)
	}
	return nil
}

// NextQuestionRequest carries the whole caller-held transcript. ChatHistory
// is kept raw so a non-array value can be rejected instead of coerced.
type NextQuestionRequest struct {
	ResumeText  string          `json:"resumeText"`
	ChatHistory json.RawMessage `json:"chatHistory"`
	UserIntro   *string         `json:"userIntro"`
}

func (r NextQuestionRequest) Validate() error {
	errs := required(map[string]string{"resumeText": r.ResumeText})
	if isNull(r.ChatHistory) {
		errs["chatHistory"] = "required"
	}
	if len(errs) > 0 {
		return util.NewFormError("Missing resumeText or chatHistory", errs)
	}
	if !gjson.ParseBytes(r.ChatHistory).IsArray() {
		return util.NewFormError("chatHistory must be an array", map[string]string{"chatHistory": "must be an array"})
	}
	return nil
}

// History decodes ChatHistory; call Validate first.
func (r NextQuestionRequest) History() []model.ChatTurn {
	var turns []model.ChatTurn
	gjson.ParseBytes(r.ChatHistory).ForEach(func(_, item gjson.Result) bool {
		turn := model.ChatTurn{
			Question: item.Get("question").String(),
			Answer:   item.Get("answer").String(),
		}
		if score := item.Get("score"); score.Type == gjson.Number {
			v := score.Float()
			turn.Score = &v
		}
		turns = append(turns, turn)
		return true
	})
	return turns
}

type NextQuestionResponse struct {
	Question string `json:"question"`
}

type InterviewReportRequest struct {
	InterviewData json.RawMessage `json:"interviewData"`
	UserName      string          `json:"userName"`
	ResumeText    string          `json:"resumeText"`
}

func (r InterviewReportRequest) Validate() error {
	data := gjson.ParseBytes(r.InterviewData)
	if !data.IsArray() || len(data.Array()) == 0 {
		return util.NewFormError("Missing interviewData", map[string]string{"interviewData": "required"})
	}
	return nil
}

// Items normalises both transcript shapes clients send: the generated
// question set ({question_data, candidate_answer}) and the chat view
// ({question, answer, feedback}).
func (r InterviewReportRequest) Items() []model.InterviewItem {
	var items []model.InterviewItem
	gjson.ParseBytes(r.InterviewData).ForEach(func(_, item gjson.Result) bool {
		if qd := item.Get("question_data"); qd.IsObject() {
			items = append(items, model.InterviewItem{
				Question:        qd.Get("question").String(),
				ExpectedAnswer:  qd.Get("answer").String(),
				Difficulty:      qd.Get("difficulty").String(),
				Topic:           qd.Get("main_subject").String(),
				CandidateAnswer: item.Get("candidate_answer").String(),
			})
			return true
		}
		items = append(items, model.InterviewItem{
			Question:        item.Get("question").String(),
			CandidateAnswer: item.Get("answer").String(),
			Feedback:        item.Get("feedback").String(),
		})
		return true
	})
	return items
}

type InterviewReportResponse struct {
	Report string `json:"report"`
}

type GenerateQuestionsResponse struct {
	Success        bool                      `json:"success"`
	Questions      []model.InterviewQuestion `json:"questions"`
	TotalQuestions int                       `json:"totalQuestions"`
	EstimatedTime  string                    `json:"estimatedTime"`
}

type LegacyEvaluateRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func (r LegacyEvaluateRequest) Validate() error {
	errs := required(map[string]string{"question": r.Question, "answer": r.Answer})
	if len(errs) > 0 {
		return util.NewFormError("Question and answer are required", errs)
	}
	return nil
}

type LegacyEvaluateResponse struct {
	Success           bool     `json:"success"`
	Score             float64  `json:"score"`
	Feedback          string   `json:"feedback"`
	Strengths         []string `json:"strengths"`
	Improvements      []string `json:"improvements"`
	FollowUpQuestions []string `json:"followUpQuestions"`
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || gjson.ParseBytes(raw).Type == gjson.Null
}

func required(fields map[string]string) map[string]string {
	errs := map[string]string{}
	for name, v := range fields {
		if blank(v) {
			errs[name] = "required"
		}
	}
	return errs
}
