package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/pdftest"
	"alfredoptarigan/resume-analyzer/internal/repositories"
)

type stubCompletion struct {
	reply   string
	err     error
	calls   int
	prompts []string
}

func (s *stubCompletion) Complete(_ context.Context, prompt string) (string, error) {
	s.calls++
	s.prompts = append(s.prompts, prompt)
	return s.reply, s.err
}

func (s *stubCompletion) Provider() string { return "stub" }

func (s *stubCompletion) Model() string { return "stub-model" }

type memoryCache struct {
	mu      sync.Mutex
	entries map[string]models.AnalysisResult
	setErr  error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]models.AnalysisResult{}}
}

func (m *memoryCache) Get(_ context.Context, key string) (*models.AnalysisResult, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	return &r, true
}

func (m *memoryCache) Set(_ context.Context, key string, result *models.AnalysisResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.entries[key] = *result
	return nil
}

type mockAnalysisRepo struct {
	created   []*models.Analysis
	createErr error
}

func (m *mockAnalysisRepo) Create(_ context.Context, a *models.Analysis) error {
	if m.createErr != nil {
		return m.createErr
	}
	a.ID = uuid.New()
	m.created = append(m.created, a)
	return nil
}

func (m *mockAnalysisRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Analysis, error) {
	for _, a := range m.created {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, errors.New("not found")
}

const validReply = `{"match_score":81,"strengths":["Go","PostgreSQL"],"missing_skills":["Kafka"],"suggestions":["Quantify impact"]}`

func silentLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestAnalyzer(completion CompletionClient, cache ResultCache, repo *mockAnalysisRepo) AnalyzerService {
	var history repositories.AnalysisRepository
	if repo != nil {
		history = repo
	}
	return NewAnalyzerService(completion, NewPDFParserService(), cache, history, silentLogger())
}

func TestAnalyzeText_PassesReplyThrough(t *testing.T) {
	completion := &stubCompletion{reply: validReply}
	analyzer := newTestAnalyzer(completion, nil, nil)

	outcome, err := analyzer.AnalyzeText(context.Background(), "Go developer", "Need Go")
	if err != nil {
		t.Fatalf("AnalyzeText: %v", err)
	}

	want := models.AnalysisResult{
		MatchScore:    81,
		Strengths:     []string{"Go", "PostgreSQL"},
		MissingSkills: []string{"Kafka"},
		Suggestions:   []string{"Quantify impact"},
	}
	if !reflect.DeepEqual(outcome.Result, want) {
		t.Errorf("result = %+v, want %+v", outcome.Result, want)
	}
	if outcome.RecordID != "" {
		t.Errorf("RecordID = %q, want empty with history disabled", outcome.RecordID)
	}
	if completion.calls != 1 {
		t.Errorf("completion calls = %d, want 1", completion.calls)
	}
	if !strings.Contains(completion.prompts[0], "Resume:\nGo developer\n") {
		t.Errorf("prompt does not carry the resume: %q", completion.prompts[0])
	}
}

func TestAnalyzeText_EmptyInput(t *testing.T) {
	completion := &stubCompletion{reply: validReply}
	analyzer := newTestAnalyzer(completion, nil, nil)

	for _, tc := range [][2]string{{"", "job"}, {"resume", ""}, {"   ", "job"}, {"resume", "\n\t"}} {
		if _, err := analyzer.AnalyzeText(context.Background(), tc[0], tc[1]); !errors.Is(err, ErrEmptyInput) {
			t.Errorf("AnalyzeText(%q, %q) err = %v, want ErrEmptyInput", tc[0], tc[1], err)
		}
	}
	if completion.calls != 0 {
		t.Errorf("completion called %d times for empty input", completion.calls)
	}
}

func TestAnalyzeText_CompletionErrorPropagates(t *testing.T) {
	completion := &stubCompletion{err: ErrCompletion}
	analyzer := newTestAnalyzer(completion, nil, nil)

	_, err := analyzer.AnalyzeText(context.Background(), "r", "j")
	if !errors.Is(err, ErrCompletion) {
		t.Fatalf("err = %v, want ErrCompletion", err)
	}
}

func TestAnalyzeText_InvalidReply(t *testing.T) {
	completion := &stubCompletion{reply: "Sure! ```json {}```"}
	cache := newMemoryCache()
	repo := &mockAnalysisRepo{}
	analyzer := newTestAnalyzer(completion, cache, repo)

	_, err := analyzer.AnalyzeText(context.Background(), "r", "j")
	if !errors.Is(err, ErrInvalidJSON) {
		t.Fatalf("err = %v, want ErrInvalidJSON", err)
	}
	if len(cache.entries) != 0 {
		t.Error("invalid reply was cached")
	}
	if len(repo.created) != 0 {
		t.Error("invalid reply was recorded")
	}
}

func TestAnalyzeText_CacheHitSkipsCompletion(t *testing.T) {
	completion := &stubCompletion{reply: validReply}
	cache := newMemoryCache()
	analyzer := newTestAnalyzer(completion, cache, nil)

	first, err := analyzer.AnalyzeText(context.Background(), "resume", "job")
	if err != nil {
		t.Fatal(err)
	}
	second, err := analyzer.AnalyzeText(context.Background(), "resume", "job")
	if err != nil {
		t.Fatal(err)
	}

	if completion.calls != 1 {
		t.Errorf("completion calls = %d, want 1", completion.calls)
	}
	if first.Cached || !second.Cached {
		t.Errorf("cached flags = %v, %v; want false, true", first.Cached, second.Cached)
	}
	if !reflect.DeepEqual(first.Result, second.Result) {
		t.Errorf("cached result differs: %+v vs %+v", first.Result, second.Result)
	}

	if _, err := analyzer.AnalyzeText(context.Background(), "other resume", "job"); err != nil {
		t.Fatal(err)
	}
	if completion.calls != 2 {
		t.Errorf("completion calls = %d after a different prompt, want 2", completion.calls)
	}
}

func TestAnalyzeText_CacheWriteFailureIsNotFatal(t *testing.T) {
	cache := newMemoryCache()
	cache.setErr = errors.New("redis down")
	analyzer := newTestAnalyzer(&stubCompletion{reply: validReply}, cache, nil)

	if _, err := analyzer.AnalyzeText(context.Background(), "r", "j"); err != nil {
		t.Fatalf("AnalyzeText: %v", err)
	}
}

func TestAnalyzeText_RecordsHistory(t *testing.T) {
	repo := &mockAnalysisRepo{}
	analyzer := newTestAnalyzer(&stubCompletion{reply: validReply}, nil, repo)

	outcome, err := analyzer.AnalyzeText(context.Background(), "résumé", "job")
	if err != nil {
		t.Fatal(err)
	}

	if len(repo.created) != 1 {
		t.Fatalf("created %d records, want 1", len(repo.created))
	}
	rec := repo.created[0]
	if outcome.RecordID != rec.ID.String() {
		t.Errorf("RecordID = %q, want %q", outcome.RecordID, rec.ID)
	}
	if rec.Source != models.SourceText || rec.ResumeCharacters != 6 || rec.Provider != "stub" || rec.Model != "stub-model" {
		t.Errorf("record = %+v", rec)
	}
	if rec.MatchScore != 81 || rec.JobDescription != "job" {
		t.Errorf("record result = %+v", rec)
	}
}

func TestAnalyzeText_HistoryFailureIsNotFatal(t *testing.T) {
	repo := &mockAnalysisRepo{createErr: errors.New("db down")}
	analyzer := newTestAnalyzer(&stubCompletion{reply: validReply}, nil, repo)

	outcome, err := analyzer.AnalyzeText(context.Background(), "r", "j")
	if err != nil {
		t.Fatalf("AnalyzeText: %v", err)
	}
	if outcome.RecordID != "" {
		t.Errorf("RecordID = %q, want empty", outcome.RecordID)
	}
}

func TestAnalyzePDF_ExtractsAndAnalyzes(t *testing.T) {
	completion := &stubCompletion{reply: validReply}
	repo := &mockAnalysisRepo{}
	analyzer := newTestAnalyzer(completion, nil, repo)

	outcome, err := analyzer.AnalyzePDF(context.Background(), PDFUpload{
		Data:        pdftest.Build("Jane Doe", "Go engineer"),
		FileName:    "jane.pdf",
		ContentType: "application/pdf",
	}, "Backend role")
	if err != nil {
		t.Fatalf("AnalyzePDF: %v", err)
	}

	if outcome.Result.MatchScore != 81 {
		t.Errorf("MatchScore = %v", outcome.Result.MatchScore)
	}
	resume := pageText(t, "Jane Doe") + pageText(t, "Go engineer")
	if !strings.Contains(completion.prompts[0], "Resume:\n"+resume+"\n\nJob Description:\nBackend role\n") {
		t.Errorf("prompt = %q", completion.prompts[0])
	}
	if repo.created[0].Source != models.SourcePDF || repo.created[0].OriginalName != "jane.pdf" {
		t.Errorf("record = %+v", repo.created[0])
	}
}

func TestAnalyzePDF_RejectsNonPDF(t *testing.T) {
	completion := &stubCompletion{reply: validReply}
	analyzer := newTestAnalyzer(completion, nil, nil)

	for _, ct := range []string{"text/plain", "image/png", ""} {
		_, err := analyzer.AnalyzePDF(context.Background(), PDFUpload{
			Data:        pdftest.Build("x"),
			ContentType: ct,
		}, "job")
		if !errors.Is(err, ErrUnsupportedFileType) {
			t.Errorf("content type %q: err = %v, want ErrUnsupportedFileType", ct, err)
		}
	}
	if completion.calls != 0 {
		t.Error("completion called for a rejected upload")
	}
}

func TestAnalyzePDF_UnreadablePDF(t *testing.T) {
	completion := &stubCompletion{reply: validReply}
	analyzer := newTestAnalyzer(completion, nil, nil)

	_, err := analyzer.AnalyzePDF(context.Background(), PDFUpload{
		Data:        []byte("%PDF-1.4\nbroken"),
		ContentType: "application/pdf",
	}, "job")
	if !errors.Is(err, ErrPDFExtraction) {
		t.Fatalf("err = %v, want ErrPDFExtraction", err)
	}
	if completion.calls != 0 {
		t.Error("completion called for an unreadable PDF")
	}
}
