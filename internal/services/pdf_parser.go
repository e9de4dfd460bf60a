package services

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

const pdfMediaType = "application/pdf"

type PDFParserService interface {
	ExtractText(data []byte) (string, error)
	ExtractTextFromFile(filePath string) (*PDFContent, error)
}

type PDFContent struct {
	Text      string
	PageCount int
	FilePath  string
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

// IsPDFContentType reports whether a declared content type names a PDF.
// Parameters such as charset are ignored.
func IsPDFContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.EqualFold(mediaType, pdfMediaType)
}

func (p *pdfParserService) ExtractText(data []byte) (string, error) {
	text, _, err := extractPages(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	return text, nil
}

func (p *pdfParserService) ExtractTextFromFile(filePath string) (*PDFContent, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat PDF: %w", err)
	}

	text, pages, err := extractPages(f, info.Size())
	if err != nil {
		return nil, err
	}

	return &PDFContent{
		Text:      text,
		PageCount: pages,
		FilePath:  filePath,
	}, nil
}

// extractPages concatenates the plain text of every page in order, with no
// separator between pages. The pdf package reports malformed input by
// panicking, so that is turned into ErrPDFExtraction as well.
func extractPages(src io.ReaderAt, size int64) (text string, pages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, pages = "", 0
			err = fmt.Errorf("%w: %v", ErrPDFExtraction, r)
		}
	}()

	r, err := pdf.NewReader(src, size)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrPDFExtraction, err)
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() || page.V.Key("Contents").IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", 0, fmt.Errorf("%w: page %d: %v", ErrPDFExtraction, pageIndex, err)
		}
		textBuilder.WriteString(pageText)
	}

	text = textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return "", totalPage, fmt.Errorf("%w: no text content found", ErrPDFExtraction)
	}

	return text, totalPage, nil
}
