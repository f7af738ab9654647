package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
)

type AppConfig struct {
	Name         string
	Env          string
	Port         string
	BaseURL      string
	AllowOrigins string
	BodyLimitMB  int
	RateLimitMax int
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "development"
			log.Printf("Warning: APP_ENV not set, defaulting to %s", env)
		}
		appConfig = &AppConfig{
			Name:         getEnv("APP_NAME", "CareerMate AI"),
			Env:          env,
			Port:         normalizePort(getEnv("APP_PORT", ":8000")),
			BaseURL:      os.Getenv("APP_URL"),
			AllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "https://hire-mate-ai-green.vercel.app,http://localhost:5173"),
			BodyLimitMB:  getEnvAsInt("BODY_LIMIT_MB", 20),
			RateLimitMax: getEnvAsInt("RATE_LIMIT_MAX", 50),
		}
	})
	return appConfig
}

func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// LLMRateLimitMax is the per-minute budget for model-backed routes: half the
// global budget, never below one request.
func (c *AppConfig) LLMRateLimitMax() int {
	return max(c.RateLimitMax/2, 1)
}

// normalizePort accepts both "8000" and ":8000".
func normalizePort(port string) string {
	if port == "" || strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}
