package handlers

import (
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

const AnalysisIDHeader = "X-Analysis-ID"

type AnalyzeHandler struct {
	analyzer    services.AnalyzerService
	maxFileSize int64
}

func NewAnalyzeHandler(analyzer services.AnalyzerService, maxFileSize int64) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer:    analyzer,
		maxFileSize: maxFileSize,
	}
}

// HandleAnalyzePDF accepts a multipart form with a "file" PDF and a
// "job_description" field.
func (h *AnalyzeHandler) HandleAnalyzePDF(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file is required")
	}

	jobDescription := c.FormValue("job_description")
	if strings.TrimSpace(jobDescription) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "job_description is required")
	}

	if fileHeader.Size > h.maxFileSize {
		return fiber.NewError(fiber.StatusRequestEntityTooLarge,
			fmt.Sprintf("File too large. Max size: %d bytes", h.maxFileSize))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("failed to read uploaded file: %w", err)
	}

	outcome, err := h.analyzer.AnalyzePDF(c.UserContext(), services.PDFUpload{
		Data:        data,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(fiber.HeaderContentType),
	}, jobDescription)
	if err != nil {
		return toFiberError(err)
	}

	return respondWithOutcome(c, outcome)
}

// HandleAnalyzeText accepts {"resume": "...", "job_description": "..."}.
func (h *AnalyzeHandler) HandleAnalyzeText(c *fiber.Ctx) error {
	var req models.AnalyzeTextRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	outcome, err := h.analyzer.AnalyzeText(c.UserContext(), req.Resume, req.JobDescription)
	if err != nil {
		return toFiberError(err)
	}

	return respondWithOutcome(c, outcome)
}

func respondWithOutcome(c *fiber.Ctx, outcome *models.AnalysisOutcome) error {
	if outcome.RecordID != "" {
		c.Set(AnalysisIDHeader, outcome.RecordID)
	}
	return c.JSON(outcome.Result)
}
