package service

import (
	"context"
	"testing"

	"github.com/fadilmartias/careermate-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessages(t *testing.T) {
	assert.Equal(t,
		[]ChatMessage{{Role: RoleUser, Content: "q"}},
		BuildMessages(CompletionRequest{Prompt: "q"}))

	assert.Equal(t,
		[]ChatMessage{{Role: RoleSystem, Content: "s"}, {Role: RoleUser, Content: "q"}},
		BuildMessages(CompletionRequest{Prompt: "q", SystemPrompt: "s"}))
}

func TestWithDefaults(t *testing.T) {
	req := withDefaults(CompletionRequest{})
	assert.Equal(t, 512, req.MaxTokens)
	require.NotNil(t, req.Temperature)
	assert.Equal(t, 0.7, *req.Temperature)

	low := 0.2
	req = withDefaults(CompletionRequest{MaxTokens: 1024, Temperature: &low})
	assert.Equal(t, 1024, req.MaxTokens)
	assert.Equal(t, 0.2, *req.Temperature)

	zero := 0.0
	req = withDefaults(CompletionRequest{Temperature: &zero})
	assert.Equal(t, 0.0, *req.Temperature)
}

func TestNewLLMGateway(t *testing.T) {
	ctx := context.Background()
	gemini := &config.GeminiConfig{}

	gw, err := NewLLMGateway(ctx, &config.LLMConfig{Provider: config.ProviderGroq, GroqAPIKey: "k", GroqBaseURL: "http://localhost"}, gemini)
	require.NoError(t, err)
	assert.IsType(t, &GroqService{}, gw)

	gw, err = NewLLMGateway(ctx, &config.LLMConfig{Provider: config.ProviderOpenAI, OpenAIAPIKey: "k"}, gemini)
	require.NoError(t, err)
	assert.IsType(t, &OpenAIService{}, gw)

	_, err = NewLLMGateway(ctx, &config.LLMConfig{Provider: config.ProviderGroq}, gemini)
	assert.ErrorContains(t, err, "GROQ_API_KEY")

	_, err = NewLLMGateway(ctx, &config.LLMConfig{Provider: config.ProviderGemini}, gemini)
	assert.ErrorContains(t, err, "GEMINI_API_KEY")

	_, err = NewLLMGateway(ctx, &config.LLMConfig{Provider: "cohere"}, gemini)
	assert.Error(t, err)
}

func TestIsQuotaMessage(t *testing.T) {
	assert.True(t, isQuotaMessage("Quota exceeded for metric"))
	assert.True(t, isQuotaMessage("rpc error: code = ResourceExhausted"))
	assert.True(t, isQuotaMessage("Status: RESOURCE_EXHAUSTED"))
	assert.False(t, isQuotaMessage("invalid api key"))
}
