package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIService serves any OpenAI-compatible endpoint through the official SDK.
type OpenAIService struct {
	client *openai.Client
	model  string
}

func NewOpenAIService(apiKey, baseURL, model string) *OpenAIService {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)

	return &OpenAIService{
		client: &client,
		model:  model,
	}
}

func (s *OpenAIService) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	req = withDefaults(req)

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	for _, m := range BuildMessages(req) {
		if m.Role == RoleSystem {
			messages = append(messages, openai.SystemMessage(m.Content))
			continue
		}
		messages = append(messages, openai.UserMessage(m.Content))
	}

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       s.model,
		Messages:    messages,
		MaxTokens:   openai.Int(int64(req.MaxTokens)),
		Temperature: openai.Float(*req.Temperature),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
			return "", fmt.Errorf("openai: %w", ErrQuotaExceeded)
		}
		if isQuotaMessage(err.Error()) {
			return "", fmt.Errorf("openai: %v: %w", err, ErrQuotaExceeded)
		}
		return "", fmt.Errorf("openai chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
