package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/services"
)

var (
	filePath     string
	jobText      string
	jobFilePath  string
	outputFormat string
	debug        bool
)

var rootCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a resume PDF against a job description",
	Long: "analyze extracts the text of a resume PDF, asks the configured language model " +
		"to compare it with a job description and prints the structured result.",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runAnalyze,
}

func init() {
	rootCmd.Flags().StringVarP(&filePath, "file", "f", "", "path to the resume PDF")
	rootCmd.Flags().StringVarP(&jobText, "job", "j", "", "job description text")
	rootCmd.Flags().StringVar(&jobFilePath, "job-file", "", "path to a file containing the job description")
	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", formatJSON, "output format: json or yaml")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")

	_ = rootCmd.MarkFlagRequired("file")
	rootCmd.MarkFlagsMutuallyExclusive("job", "job-file")
	rootCmd.MarkFlagsOneRequired("job", "job-file")
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelWarn
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	if err := validateFormat(outputFormat); err != nil {
		return err
	}

	jobDescription, err := readJobDescription(jobText, jobFilePath)
	if err != nil {
		return err
	}

	logger := setupLogger(debug)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	completion, err := services.NewCompletionClient(ctx, cfg.LLM)
	if err != nil {
		return err
	}

	cache := services.NewNopCache()
	if cfg.Cache.RedisAddr != "" {
		cache = services.NewRedisCache(services.RedisCacheOptions{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
			TTL:      cfg.Cache.TTL,
		}, logger)
	}

	pdfParser := services.NewPDFParserService()
	content, err := pdfParser.ExtractTextFromFile(filePath)
	if err != nil {
		return err
	}
	logger.Debug("resume extracted", "file", content.FilePath, "pages", content.PageCount, "chars", len(content.Text))

	analyzer := services.NewAnalyzerService(completion, pdfParser, cache, nil, logger)
	outcome, err := analyzer.AnalyzeText(ctx, content.Text, jobDescription)
	if err != nil {
		return err
	}

	return writeResult(cmd.OutOrStdout(), &outcome.Result, outputFormat)
}

func readJobDescription(text, path string) (string, error) {
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read job description: %w", err)
		}
		text = string(b)
	}
	if strings.TrimSpace(text) == "" {
		return "", errors.New("job description is empty")
	}
	return text, nil
}
