package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/repositories"
	"alfredoptarigan/resume-analyzer/internal/services"
)

const (
	MsgUnsupportedFileType = "Only PDF files are supported."
	MsgPDFExtraction       = "Could not extract text from PDF."
	MsgCompletion          = "AI provider request failed."
	MsgInvalidJSON         = "AI response was not valid JSON"
	MsgUnexpectedSchema    = "AI response did not match the expected schema"
	MsgAnalysisNotFound    = "Analysis not found"
	MsgInternal            = "Internal server error"
)

// ErrorHandler renders every error as {"error": message}. Only *fiber.Error
// messages reach the client; anything else becomes a generic 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if !errors.As(err, &fe) {
		log.Printf("❌ %s %s: %v", c.Method(), c.Path(), err)
		fe = fiber.NewError(fiber.StatusInternalServerError, MsgInternal)
	}

	return c.Status(fe.Code).JSON(models.ErrorResponse{Error: fe.Message})
}

// toFiberError maps service errors onto HTTP status codes.
func toFiberError(err error) error {
	switch {
	case errors.Is(err, services.ErrEmptyInput):
		return fiber.NewError(fiber.StatusBadRequest, "resume and job_description are required")
	case errors.Is(err, services.ErrUnsupportedFileType):
		return fiber.NewError(fiber.StatusUnsupportedMediaType, MsgUnsupportedFileType)
	case errors.Is(err, services.ErrPDFExtraction):
		return fiber.NewError(fiber.StatusUnprocessableEntity, MsgPDFExtraction)
	case errors.Is(err, services.ErrInvalidJSON):
		return fiber.NewError(fiber.StatusInternalServerError, MsgInvalidJSON)
	case errors.Is(err, services.ErrUnexpectedSchema):
		return fiber.NewError(fiber.StatusBadGateway, MsgUnexpectedSchema)
	case errors.Is(err, services.ErrCompletion):
		return fiber.NewError(fiber.StatusBadGateway, MsgCompletion)
	case errors.Is(err, repositories.ErrAnalysisNotFound):
		return fiber.NewError(fiber.StatusNotFound, MsgAnalysisNotFound)
	default:
		return err
	}
}
