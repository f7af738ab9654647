package handler

import (
	"io"
	"log"

	"github.com/fadilmartias/careermate-api/internal/service"
	"github.com/fadilmartias/careermate-api/internal/usecase"
	"github.com/gofiber/fiber/v2"
)

type SpeechHandler struct {
	uc *usecase.SpeechUsecase
}

func NewSpeechHandler(uc *usecase.SpeechUsecase) *SpeechHandler {
	return &SpeechHandler{uc: uc}
}

// SpeechToText answers with {success, text, error} on every path.
func (h *SpeechHandler) SpeechToText(c *fiber.Ctx) error {
	file, err := c.FormFile("audio")
	if err != nil {
		return speechError(c, fiber.StatusBadRequest, "audio file is required")
	}
	f, err := file.Open()
	if err != nil {
		return speechError(c, fiber.StatusInternalServerError, "Error processing audio: "+err.Error())
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return speechError(c, fiber.StatusInternalServerError, "Error processing audio: "+err.Error())
	}
	log.Printf("Received audio file: %s (%d bytes)", file.Filename, len(data))

	result, err := h.uc.SpeechToText(c.UserContext(), file.Filename, data)
	if err != nil {
		log.Printf("speech-to-text failed: %v", err)
		return speechError(c, fiber.StatusInternalServerError, "Error processing audio: "+err.Error())
	}
	if !result.Success {
		return c.Status(fiber.StatusBadRequest).JSON(result)
	}
	return c.JSON(result)
}

func speechError(c *fiber.Ctx, code int, msg string) error {
	return c.Status(code).JSON(service.SpeechResult{Success: false, Text: "", Error: &msg})
}
