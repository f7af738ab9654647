package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/fadilmartias/careermate-api/internal/service"
)

const careerFallbackReply = "Sorry, I could not generate a response at this time."

type CareerUsecase struct {
	llm     service.LLMGateway
	prompts *service.PromptBuilder
}

func NewCareerUsecase(llm service.LLMGateway, prompts *service.PromptBuilder) *CareerUsecase {
	return &CareerUsecase{llm: llm, prompts: prompts}
}

func (uc *CareerUsecase) Coach(ctx context.Context, resumeText, jobDescription, userMessage string) (string, error) {
	reply, err := uc.llm.Complete(ctx, service.CompletionRequest{
		Prompt:       uc.prompts.BuildCareerCoachPrompt(resumeText, jobDescription, userMessage),
		SystemPrompt: service.SystemCareerCoach,
	})
	if err != nil {
		return "", fmt.Errorf("career coach failed: %w", err)
	}
	if reply = strings.TrimSpace(reply); reply == "" {
		return careerFallbackReply, nil
	}
	return reply, nil
}
