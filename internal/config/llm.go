package config

import (
	"os"
	"strings"
	"sync"
)

const (
	ProviderGroq   = "groq"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

type LLMConfig struct {
	Provider string

	GroqAPIKey  string
	GroqBaseURL string
	GroqModel   string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
}

var (
	llmConfig *LLMConfig
	llmOnce   sync.Once
)

func LoadLLMConfig() *LLMConfig {
	llmOnce.Do(func() {
		llmConfig = &LLMConfig{
			Provider:      strings.ToLower(getEnv("LLM_PROVIDER", ProviderGroq)),
			GroqAPIKey:    os.Getenv("GROQ_API_KEY"),
			GroqBaseURL:   getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
			GroqModel:     getEnv("GROQ_MODEL", "meta-llama/llama-4-scout-17b-16e-instruct"),
			OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
			OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
			OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		}
	})
	return llmConfig
}
