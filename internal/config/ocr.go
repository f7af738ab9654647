package config

import "sync"

type OCRConfig struct {
	TesseractPath string
	Language      string
}

var (
	ocrConfig *OCRConfig
	ocrOnce   sync.Once
)

func LoadOCRConfig() *OCRConfig {
	ocrOnce.Do(func() {
		ocrConfig = &OCRConfig{
			TesseractPath: getEnv("TESSERACT_PATH", "tesseract"),
			Language:      getEnv("OCR_LANGUAGE", "eng"),
		}
	})
	return ocrConfig
}
