package service

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// GroqService talks to the OpenAI-compatible chat completions endpoint
// exposed by Groq.
type GroqService struct {
	client *resty.Client
	model  string
}

func NewGroqService(baseURL, apiKey, model string) *GroqService {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json")

	return &GroqService{
		client: client,
		model:  model,
	}
}

func (s *GroqService) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	req = withDefaults(req)

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"model":       s.model,
			"messages":    BuildMessages(req),
			"max_tokens":  req.MaxTokens,
			"temperature": *req.Temperature,
		}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("groq request failed: %w", err)
	}

	body := resp.String()
	if resp.StatusCode() == http.StatusTooManyRequests {
		return "", fmt.Errorf("groq: %s: %w", gjson.Get(body, "error.message").String(), ErrQuotaExceeded)
	}
	if resp.IsError() {
		msg := gjson.Get(body, "error.message").String()
		if msg == "" {
			msg = resp.Status()
		}
		if isQuotaMessage(msg) {
			return "", fmt.Errorf("groq: %s: %w", msg, ErrQuotaExceeded)
		}
		return "", fmt.Errorf("groq api returned status %d: %s", resp.StatusCode(), msg)
	}

	content := gjson.Get(body, "choices.0.message.content")
	if !content.Exists() {
		log.Printf("Groq reply without content: %s", body)
		return "", nil
	}
	return content.String(), nil
}
