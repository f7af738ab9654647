package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/fadilmartias/careermate-api/internal/config"
	"google.golang.org/genai"
)

const maxEmbedBytes = 10000

type GeminiService struct {
	Client         *genai.Client
	ChatModel      string
	EmbeddingModel string
}

func NewGeminiService(ctx context.Context, cfg *config.GeminiConfig) (*GeminiService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiService{
		Client:         client,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: cfg.EmbeddingModel,
	}, nil
}

func (s *GeminiService) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	req = withDefaults(req)
	if strings.TrimSpace(req.Prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	genConfig := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(*req.Temperature)),
		MaxOutputTokens: int32(req.MaxTokens),
	}
	if req.SystemPrompt != "" {
		genConfig.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}

	result, err := s.Client.Models.GenerateContent(ctx, s.ChatModel, genai.Text(req.Prompt), genConfig)
	if err != nil {
		return "", s.wrapError("generate content", err)
	}
	if err := s.validateGenerateResponse(result); err != nil {
		log.Printf("Gemini reply without content: %v", err)
		return "", nil
	}
	return result.Text(), nil
}

func (s *GeminiService) ModelName() string {
	return s.EmbeddingModel
}

func (s *GeminiService) Embed(ctx context.Context, text string) ([]float32, error) {
	trimmedText := strings.TrimSpace(text)
	if trimmedText == "" {
		return nil, fmt.Errorf("text for embedding cannot be empty")
	}

	if len(trimmedText) > maxEmbedBytes {
		log.Printf("Warning: text length %d exceeds recommended limit, truncating...", len(trimmedText))
		trimmedText = truncateUTF8(trimmedText, maxEmbedBytes)
	}

	content := []*genai.Content{genai.NewContentFromText(trimmedText, genai.RoleUser)}
	result, err := s.Client.Models.EmbedContent(ctx, s.EmbeddingModel, content, nil)
	if err != nil {
		return nil, s.wrapError("generate embedding", err)
	}
	return s.validateEmbeddingResponse(result)
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func (s *GeminiService) wrapError(op string, err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		return fmt.Errorf("gemini %s: %v: %w", op, err, ErrQuotaExceeded)
	}
	if isQuotaMessage(err.Error()) {
		return fmt.Errorf("gemini %s: %v: %w", op, err, ErrQuotaExceeded)
	}
	return fmt.Errorf("gemini %s failed: %w", op, err)
}

func (s *GeminiService) validateGenerateResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}

	if len(resp.Candidates) == 0 {
		return fmt.Errorf("no candidates in response")
	}

	if resp.Candidates[0].Content == nil {
		return fmt.Errorf("candidate content is nil")
	}

	if len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("no parts in content")
	}

	return nil
}

func (s *GeminiService) validateEmbeddingResponse(resp *genai.EmbedContentResponse) ([]float32, error) {
	if resp == nil {
		return nil, fmt.Errorf("response is nil")
	}

	if len(resp.Embeddings) == 0 {
		return nil, fmt.Errorf("no embeddings returned")
	}

	embeddings := resp.Embeddings[0].Values

	if len(embeddings) == 0 {
		return nil, fmt.Errorf("embedding vector is empty")
	}

	for i, val := range embeddings {
		if math.IsNaN(float64(val)) || math.IsInf(float64(val), 0) {
			return nil, fmt.Errorf("invalid embedding value at index %d: %v", i, val)
		}
	}

	return embeddings, nil
}
