package usecase

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/fadilmartias/careermate-api/internal/model"
	"github.com/fadilmartias/careermate-api/internal/service"
	"github.com/tidwall/gjson"
)

const (
	questionsMaxTokens = 2048
	evaluateMaxTokens  = 512
	nextQuestionTokens = 256
	reportMaxTokens    = 1024
)

// InterviewUsecase keeps no session state: every call works only on what
// the caller sends.
type InterviewUsecase struct {
	llm     service.LLMGateway
	prompts *service.PromptBuilder
	names   *service.NameService
}

func NewInterviewUsecase(llm service.LLMGateway, prompts *service.PromptBuilder, names *service.NameService) *InterviewUsecase {
	return &InterviewUsecase{llm: llm, prompts: prompts, names: names}
}

func (uc *InterviewUsecase) StartInterview(ctx context.Context, resumeText string) ([]model.InterviewQuestion, error) {
	reply, err := uc.llm.Complete(ctx, service.CompletionRequest{
		Prompt:       uc.prompts.BuildQuestionGenerationPrompt(resumeText),
		SystemPrompt: service.SystemInterviewer,
		MaxTokens:    questionsMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate questions: %w", err)
	}
	return parseQuestions(reply)
}

func (uc *InterviewUsecase) EvaluateAnswer(ctx context.Context, question, answer, resumeText string) (model.AnswerEvaluation, error) {
	reply, err := uc.llm.Complete(ctx, service.CompletionRequest{
		Prompt:       uc.prompts.BuildAnswerEvaluationPrompt(question, answer, resumeText),
		SystemPrompt: service.SystemEvaluator,
		MaxTokens:    evaluateMaxTokens,
	})
	if err != nil {
		return model.AnswerEvaluation{}, fmt.Errorf("failed to evaluate answer: %w", err)
	}
	return parseEvaluation(reply), nil
}

// NextQuestion opens the interview when history is empty and otherwise
// continues it with exactly one question.
func (uc *InterviewUsecase) NextQuestion(ctx context.Context, resumeText string, history []model.ChatTurn, userIntro *string) (string, error) {
	reply, err := uc.llm.Complete(ctx, service.CompletionRequest{
		Prompt:       uc.prompts.BuildNextQuestionPrompt(resumeText, history, userIntro),
		SystemPrompt: service.SystemInterviewer,
		MaxTokens:    nextQuestionTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate next question: %w", err)
	}

	question := cleanQuestion(reply)
	if question == "" {
		return "", fmt.Errorf("model returned an empty question")
	}
	return question, nil
}

// FinalReport falls back to the name found in the resume when the caller
// gives none.
func (uc *InterviewUsecase) FinalReport(ctx context.Context, items []model.InterviewItem, userName, resumeText string) (string, error) {
	userName = strings.TrimSpace(userName)
	if userName == "" && strings.TrimSpace(resumeText) != "" && uc.names != nil {
		if name, ok := uc.names.ExtractName(resumeText); ok {
			userName = name
		}
	}

	reply, err := uc.llm.Complete(ctx, service.CompletionRequest{
		Prompt:       uc.prompts.BuildFinalReportPrompt(items, userName),
		SystemPrompt: service.SystemEvaluator,
		MaxTokens:    reportMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate report: %w", err)
	}
	return strings.TrimSpace(reply), nil
}

// GenerateQuestions serves clients that send a structured resume summary.
func (uc *InterviewUsecase) GenerateQuestions(ctx context.Context, info model.ResumeInfo) ([]model.InterviewQuestion, error) {
	reply, err := uc.llm.Complete(ctx, service.CompletionRequest{
		Prompt:       uc.prompts.BuildLegacyQuestionsPrompt(info),
		SystemPrompt: service.SystemInterviewer,
		MaxTokens:    questionsMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate questions: %w", err)
	}
	return parseQuestions(reply)
}

func (uc *InterviewUsecase) LegacyEvaluate(ctx context.Context, question, answer string) (model.AnswerEvaluation, error) {
	reply, err := uc.llm.Complete(ctx, service.CompletionRequest{
		Prompt:       uc.prompts.BuildLegacyEvaluationPrompt(question, answer),
		SystemPrompt: service.SystemEvaluator,
		MaxTokens:    evaluateMaxTokens,
	})
	if err != nil {
		return model.AnswerEvaluation{}, fmt.Errorf("failed to evaluate answer: %w", err)
	}
	return parseEvaluation(reply), nil
}

// EstimatedTime allows three to five minutes per question.
func EstimatedTime(questions int) string {
	return fmt.Sprintf("%d-%d minutes", questions*3, questions*5)
}

// parseQuestions accepts a bare array or {"questions": [...]}, with either
// objects or plain strings as elements.
func parseQuestions(reply string) ([]model.InterviewQuestion, error) {
	doc, ok := parseModelJSON(reply)
	if !ok {
		log.Printf("unparseable question reply: %q", reply)
		return nil, fmt.Errorf("failed to parse generated questions")
	}
	if doc.IsObject() {
		doc = doc.Get("questions")
	}
	if !doc.IsArray() {
		return nil, fmt.Errorf("failed to parse generated questions: no question list")
	}

	var questions []model.InterviewQuestion
	for _, item := range doc.Array() {
		var q model.InterviewQuestion
		if item.IsObject() {
			q = model.InterviewQuestion{
				Question:    strings.TrimSpace(item.Get("question").String()),
				Answer:      strings.TrimSpace(item.Get("answer").String()),
				Difficulty:  strings.TrimSpace(item.Get("difficulty").String()),
				MainSubject: strings.TrimSpace(item.Get("main_subject").String()),
			}
		} else if item.Type == gjson.String {
			q.Question = strings.TrimSpace(item.String())
		}
		if q.Question != "" {
			questions = append(questions, q)
		}
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("failed to parse generated questions: empty list")
	}
	return questions, nil
}

// parseEvaluation never fails: a reply that is not JSON becomes the feedback
// of a zero score.
func parseEvaluation(reply string) model.AnswerEvaluation {
	doc, ok := parseModelJSON(reply)
	if !ok || !doc.IsObject() {
		return model.AnswerEvaluation{
			Score:        0,
			Feedback:     strings.TrimSpace(reply),
			Strengths:    []string{},
			Improvements: []string{},
		}
	}

	score := math.Max(0, math.Min(10, doc.Get("score").Float()))
	eval := model.AnswerEvaluation{
		Score:        score,
		Feedback:     strings.TrimSpace(doc.Get("feedback").String()),
		Strengths:    stringList(doc.Get("strengths")),
		Improvements: stringList(doc.Get("improvements")),
	}
	if f := doc.Get("followUpQuestions"); f.Exists() {
		eval.FollowUpQuestions = stringList(f)
	}
	return eval
}

func cleanQuestion(reply string) string {
	q := strings.TrimSpace(reply)
	if len(q) >= len("question:") && strings.EqualFold(q[:len("question:")], "question:") {
		q = strings.TrimSpace(q[len("question:"):])
	}
	for _, pair := range [][2]string{{`"`, `"`}, {"'", "'"}, {"“", "”"}} {
		if len(q) >= 2 && strings.HasPrefix(q, pair[0]) && strings.HasSuffix(q, pair[1]) {
			q = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(q, pair[0]), pair[1]))
		}
	}
	return q
}
