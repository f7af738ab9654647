package usecase

import (
	"context"

	"github.com/fadilmartias/careermate-api/internal/service"
)

type SpeechUsecase struct {
	speech *service.SpeechService
}

func NewSpeechUsecase(speech *service.SpeechService) *SpeechUsecase {
	return &SpeechUsecase{speech: speech}
}

func (uc *SpeechUsecase) SpeechToText(ctx context.Context, filename string, data []byte) (service.SpeechResult, error) {
	return uc.speech.Transcribe(ctx, data, service.FormatFromFilename(filename))
}
