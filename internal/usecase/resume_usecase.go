package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/fadilmartias/careermate-api/internal/service"
	"github.com/fadilmartias/careermate-api/internal/util"
)

type ResumeTextExtractor interface {
	ExtractResumeText(filename string, data []byte) (string, error)
}

type ResumeUsecase struct {
	extractor  ResumeTextExtractor
	similarity *service.SimilarityService
	names      *service.NameService
}

func NewResumeUsecase(extractor ResumeTextExtractor, similarity *service.SimilarityService, names *service.NameService) *ResumeUsecase {
	return &ResumeUsecase{extractor: extractor, similarity: similarity, names: names}
}

// AnalyzeResume returns the ATS score (0-100) and the extracted text. An
// unreadable PDF is not an error; it simply scores 0.
func (uc *ResumeUsecase) AnalyzeResume(ctx context.Context, filename string, data []byte, jobDescription string) (float64, string, error) {
	text, err := uc.extractor.ExtractResumeText(filename, data)
	if err != nil {
		var unsupported *util.UnsupportedFileError
		if errors.As(err, &unsupported) {
			return 0, "", util.NewFormError(err.Error(), map[string]string{"resume": "must be a .pdf, .docx or .txt file"})
		}
		return 0, "", fmt.Errorf("failed to extract resume text: %w", err)
	}
	if text == "" {
		log.Printf("no text extracted from %s", filename)
	}

	sim, err := uc.similarity.Similarity(ctx, text, jobDescription)
	if err != nil {
		return 0, "", fmt.Errorf("failed to score resume: %w", err)
	}
	return service.ATSScore(sim), text, nil
}

// ExtractName returns "" when the text has no person entity.
func (uc *ResumeUsecase) ExtractName(resumeText string) string {
	name, _ := uc.names.ExtractName(resumeText)
	return name
}
