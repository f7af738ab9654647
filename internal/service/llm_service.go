package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fadilmartias/careermate-api/internal/config"
)

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// ErrQuotaExceeded is wrapped by every gateway when the provider rejects a
// call for rate or quota reasons.
var ErrQuotaExceeded = errors.New("LLM API quota exceeded. Please try again later or upgrade your plan")

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type CompletionRequest struct {
	Prompt       string
	SystemPrompt string
	MaxTokens    int
	// Temperature is optional; nil selects defaultTemperature.
	Temperature *float64
}

// LLMGateway forwards a single prompt to a hosted chat model and returns the
// reply text, or "" when the model produced no content.
type LLMGateway interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// BuildMessages puts the optional system prompt first, then the user prompt.
func BuildMessages(req CompletionRequest) []ChatMessage {
	messages := make([]ChatMessage, 0, 2)
	if req.SystemPrompt != "" {
		messages = append(messages, ChatMessage{Role: RoleSystem, Content: req.SystemPrompt})
	}
	return append(messages, ChatMessage{Role: RoleUser, Content: req.Prompt})
}

const defaultTemperature = 0.7

func withDefaults(req CompletionRequest) CompletionRequest {
	if req.MaxTokens <= 0 {
		req.MaxTokens = 512
	}
	if req.Temperature == nil {
		t := defaultTemperature
		req.Temperature = &t
	}
	return req
}

func isQuotaMessage(msg string) bool {
	msg = strings.ToLower(msg)
	return strings.Contains(msg, "quota") ||
		strings.Contains(msg, "resource_exhausted") ||
		strings.Contains(msg, "resourceexhausted") ||
		strings.Contains(msg, "rate limit")
}

// NewLLMGateway builds the gateway selected by cfg.Provider.
func NewLLMGateway(ctx context.Context, cfg *config.LLMConfig, geminiCfg *config.GeminiConfig) (LLMGateway, error) {
	switch cfg.Provider {
	case config.ProviderGroq, "":
		if cfg.GroqAPIKey == "" {
			return nil, fmt.Errorf("GROQ_API_KEY not set")
		}
		return NewGroqService(cfg.GroqBaseURL, cfg.GroqAPIKey, cfg.GroqModel), nil
	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY not set")
		}
		return NewOpenAIService(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel), nil
	case config.ProviderGemini:
		return NewGeminiService(ctx, geminiCfg)
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.Provider)
	}
}
