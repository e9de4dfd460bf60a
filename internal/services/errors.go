package services

import "errors"

var (
	ErrEmptyInput          = errors.New("resume and job description are required")
	ErrUnsupportedFileType = errors.New("only PDF files are supported")
	ErrPDFExtraction       = errors.New("could not extract text from PDF")
	ErrCompletion          = errors.New("completion request failed")
	ErrInvalidJSON         = errors.New("AI response was not valid JSON")
	ErrUnexpectedSchema    = errors.New("AI response did not match the expected schema")
)
