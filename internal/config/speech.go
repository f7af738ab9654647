package config

import (
	"os"
	"sync"
	"time"
)

type SpeechConfig struct {
	APIKey            string
	Language          string
	FFmpegPath        string
	CalibrationWindow time.Duration
}

var (
	speechConfig *SpeechConfig
	speechOnce   sync.Once
)

func LoadSpeechConfig() *SpeechConfig {
	speechOnce.Do(func() {
		speechConfig = &SpeechConfig{
			APIKey:            os.Getenv("GOOGLE_SPEECH_API_KEY"),
			Language:          getEnv("SPEECH_LANGUAGE", "en-US"),
			FFmpegPath:        getEnv("FFMPEG_PATH", "ffmpeg"),
			CalibrationWindow: time.Duration(getEnvAsInt("SPEECH_CALIBRATION_MS", 500)) * time.Millisecond,
		}
	})
	return speechConfig
}
