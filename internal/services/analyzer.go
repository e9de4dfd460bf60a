package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/repositories"
)

type AnalyzerService interface {
	AnalyzeText(ctx context.Context, resume, jobDescription string) (*models.AnalysisOutcome, error)
	AnalyzePDF(ctx context.Context, upload PDFUpload, jobDescription string) (*models.AnalysisOutcome, error)
}

// PDFUpload is a resume file as received from a client.
type PDFUpload struct {
	Data        []byte
	FileName    string
	ContentType string
}

type analyzerService struct {
	completion    CompletionClient
	pdfParser     PDFParserService
	promptBuilder *PromptBuilder
	cache         ResultCache
	history       repositories.AnalysisRepository
	logger        *slog.Logger
}

// NewAnalyzerService wires the pipeline. A nil cache or history disables
// that step.
func NewAnalyzerService(
	completion CompletionClient,
	pdfParser PDFParserService,
	cache ResultCache,
	history repositories.AnalysisRepository,
	logger *slog.Logger,
) AnalyzerService {
	if cache == nil {
		cache = NewNopCache()
	}
	if history == nil {
		history = repositories.NewNopAnalysisRepository()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &analyzerService{
		completion:    completion,
		pdfParser:     pdfParser,
		promptBuilder: NewPromptBuilder(),
		cache:         cache,
		history:       history,
		logger:        logger,
	}
}

func (a *analyzerService) AnalyzeText(ctx context.Context, resume, jobDescription string) (*models.AnalysisOutcome, error) {
	if strings.TrimSpace(resume) == "" || strings.TrimSpace(jobDescription) == "" {
		return nil, ErrEmptyInput
	}

	return a.analyze(ctx, resume, jobDescription, models.AnalysisMeta{Source: models.SourceText})
}

func (a *analyzerService) AnalyzePDF(ctx context.Context, upload PDFUpload, jobDescription string) (*models.AnalysisOutcome, error) {
	if !IsPDFContentType(upload.ContentType) {
		return nil, fmt.Errorf("%w: got %q", ErrUnsupportedFileType, upload.ContentType)
	}
	if strings.TrimSpace(jobDescription) == "" {
		return nil, ErrEmptyInput
	}

	resumeText, err := a.pdfParser.ExtractText(upload.Data)
	if err != nil {
		a.logger.Warn("pdf extraction failed", "file", upload.FileName, "bytes", len(upload.Data), "error", err)
		return nil, err
	}

	return a.analyze(ctx, resumeText, jobDescription, models.AnalysisMeta{
		Source:       models.SourcePDF,
		OriginalName: upload.FileName,
	})
}

func (a *analyzerService) analyze(ctx context.Context, resumeText, jobDescription string, meta models.AnalysisMeta) (*models.AnalysisOutcome, error) {
	prompt := a.promptBuilder.BuildAnalysisPrompt(resumeText, jobDescription)
	key := CacheKey(a.completion.Provider(), a.completion.Model(), prompt)

	result, cached := a.cache.Get(ctx, key)
	if !cached {
		raw, err := a.completion.Complete(ctx, prompt)
		if err != nil {
			a.logger.Error("completion failed", "provider", a.completion.Provider(), "model", a.completion.Model(), "error", err)
			return nil, err
		}

		result, err = ParseAnalysis(raw)
		if err != nil {
			a.logger.Warn("model reply rejected", "provider", a.completion.Provider(), "reply_bytes", len(raw), "error", err)
			return nil, err
		}

		if err := a.cache.Set(ctx, key, result); err != nil {
			a.logger.Warn("failed to cache analysis result", "error", err)
		}
	}

	outcome := &models.AnalysisOutcome{Result: *result, Cached: cached}
	outcome.RecordID = a.record(ctx, resumeText, jobDescription, meta, result)

	a.logger.Info("analysis completed",
		"source", meta.Source,
		"match_score", result.MatchScore,
		"cached", cached,
		"record_id", outcome.RecordID,
	)

	return outcome, nil
}

// record writes the history entry and returns its id, or "" when nothing was
// stored. Failures are logged only.
func (a *analyzerService) record(ctx context.Context, resumeText, jobDescription string, meta models.AnalysisMeta, result *models.AnalysisResult) string {
	analysis := &models.Analysis{
		Source:           meta.Source,
		OriginalName:     meta.OriginalName,
		JobDescription:   jobDescription,
		ResumeCharacters: utf8.RuneCountInString(resumeText),
		Provider:         a.completion.Provider(),
		Model:            a.completion.Model(),
		MatchScore:       result.MatchScore,
		Strengths:        result.Strengths,
		MissingSkills:    result.MissingSkills,
		Suggestions:      result.Suggestions,
	}

	if err := a.history.Create(ctx, analysis); err != nil {
		a.logger.Warn("failed to record analysis history", "error", err)
		return ""
	}
	if analysis.ID == uuid.Nil {
		return ""
	}
	return analysis.ID.String()
}
